// Package storage reads input documents from and writes output documents to
// local files, HTTP URLs and S3 objects.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/alnah/go-bbox/internal/fileutil"
)

// Sentinel errors for storage operations.
var (
	ErrInputNotFound   = errors.New("input not found")
	ErrNotPDF          = errors.New("input is not a PDF document")
	ErrReadInput       = errors.New("failed to read input")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrInputTooLarge   = errors.New("input exceeds maximum size")
	ErrInvalidLocation = errors.New("invalid location")
)

// MaxInputSize bounds documents read into memory.
const MaxInputSize = 512 << 20

// PDFMIME is the media type every input must be detected as.
const PDFMIME = "application/pdf"

// S3Client is the subset of the S3 API used for transfers.
type S3Client interface {
	manager.DownloadAPIClient
	manager.UploadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Store resolves locations to bytes and back. The zero value is not usable;
// create with New.
type Store struct {
	httpClient *http.Client
	s3         S3Client
	newS3      func(ctx context.Context) (S3Client, error)
	logger     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient replaces the HTTP client used for URL inputs.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) {
		s.httpClient = c
	}
}

// WithS3Client sets the S3 client instead of loading the default AWS config.
func WithS3Client(c S3Client) Option {
	return func(s *Store) {
		s.s3 = c
	}
}

// WithLogger sets the logger for transfer diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a Store. The S3 client is created on first use from the
// default AWS credential chain.
func New(opts ...Option) *Store {
	s := &Store{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		newS3:      defaultS3Client,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultS3Client(ctx context.Context) (S3Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *Store) s3Client(ctx context.Context) (S3Client, error) {
	if s.s3 == nil {
		c, err := s.newS3(ctx)
		if err != nil {
			return nil, err
		}
		s.s3 = c
	}
	return s.s3, nil
}

// Read loads the document at loc (local path, http(s) URL or s3://bucket/key)
// and checks that it is a PDF.
func (s *Store) Read(ctx context.Context, loc string) ([]byte, error) {
	var data []byte
	var err error

	switch {
	case fileutil.IsS3(loc):
		data, err = s.readS3(ctx, loc)
	case fileutil.IsURL(loc):
		data, err = s.readHTTP(ctx, loc)
	default:
		data, err = readLocal(loc)
	}
	if err != nil {
		return nil, err
	}

	if err := DetectPDF(data); err != nil {
		return nil, fmt.Errorf("%w: %s", err, loc)
	}
	s.logger.Debug().Str("input", loc).Int("bytes", len(data)).Msg("input loaded")
	return data, nil
}

// DetectPDF checks the magic bytes of data.
func DetectPDF(data []byte) error {
	mtype := mimetype.Detect(data)
	if !mtype.Is(PDFMIME) {
		return fmt.Errorf("%w (detected %s)", ErrNotPDF, mtype.String())
	}
	return nil
}

// DetectedType returns the media type of data, for hints.
func DetectedType(data []byte) string {
	return mimetype.Detect(data).String()
}

func readLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrReadInput, path)
	}
	if info.Size() > MaxInputSize {
		return nil, fmt.Errorf("%w: %s (%s)", ErrInputTooLarge, path, fileutil.HumanSize(info.Size()))
	}
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return data, nil
}

func (s *Store) readHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, url)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrReadInput, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %s", ErrInputTooLarge, url)
	}
	return data, nil
}

// ParseS3 splits s3://bucket/key.
func ParseS3(loc string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(loc, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if rest == loc || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q (want s3://bucket/key)", ErrInvalidLocation, loc)
	}
	return parts[0], parts[1], nil
}

func (s *Store) readS3(ctx context.Context, loc string) ([]byte, error) {
	bucket, key, err := ParseS3(loc)
	if err != nil {
		return nil, err
	}
	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3ReadError(loc, err)
	}
	if size := aws.ToInt64(head.ContentLength); size > MaxInputSize {
		return nil, fmt.Errorf("%w: %s (%s)", ErrInputTooLarge, loc, fileutil.HumanSize(size))
	}

	buf := manager.NewWriteAtBuffer(nil)
	downloader := manager.NewDownloader(client)
	n, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3ReadError(loc, err)
	}
	// The object may have been replaced since HeadObject.
	if n > MaxInputSize {
		return nil, fmt.Errorf("%w: %s", ErrInputTooLarge, loc)
	}
	s.logger.Debug().Str("bucket", bucket).Str("key", key).Int64("bytes", n).Msg("downloaded from S3")
	return buf.Bytes(), nil
}

func s3ReadError(loc string, err error) error {
	if isS3NotFound(err) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, loc)
	}
	return fmt.Errorf("%w: %s: %v", ErrReadInput, loc, err)
}

// Write stores the output produced by write at loc. Local files are written
// atomically; S3 objects are uploaded only after write succeeds. It returns
// the number of bytes written.
func (s *Store) Write(ctx context.Context, loc string, write func(io.Writer) error) (int64, error) {
	switch {
	case fileutil.IsURL(loc):
		return 0, fmt.Errorf("%w: cannot write to %s (use a local path or s3://)", ErrWriteOutput, loc)
	case fileutil.IsS3(loc):
		return s.writeS3(ctx, loc, write)
	}

	var n int64
	err := fileutil.WriteAtomic(loc, 0o644, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		err := write(cw)
		n = cw.n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrWriteOutput, loc, err)
	}
	return n, nil
}

func (s *Store) writeS3(ctx context.Context, loc string, write func(io.Writer) error) (int64, error) {
	bucket, key, err := ParseS3(loc)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrWriteOutput, loc, err)
	}
	size := int64(buf.Len())

	client, err := s.s3Client(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	uploader := manager.NewUploader(client)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        &buf,
		ContentType: aws.String(PDFMIME),
	}); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrWriteOutput, loc, err)
	}
	s.logger.Debug().Str("bucket", bucket).Str("key", key).Int64("bytes", size).Msg("uploaded to S3")
	return size, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
