package main

import (
	"errors"
	"strings"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/config"
	"github.com/alnah/go-bbox/internal/fontmetrics"
	"github.com/alnah/go-bbox/internal/hints"
	"github.com/alnah/go-bbox/internal/storage"
)

// hintedError carries a hint computed where the context was known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches hint to err. An empty hint returns err unchanged.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

func pageRangeHint(total int) string { return hints.ForPageRange(total) }

func configHint(name string) string { return hints.ForConfigNotFound(config.SearchPaths(name)) }

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var h *hintedError
	if errors.As(err, &h) {
		return h.hint
	}

	switch {
	case errors.Is(err, storage.ErrNotPDF):
		return hints.ForNotPDF(detectedFrom(err))
	case errors.Is(err, storage.ErrWriteOutput):
		if strings.Contains(err.Error(), "s3://") {
			return hints.ForS3()
		}
		return hints.ForOutputDirectory()
	case errors.Is(err, storage.ErrReadInput) && strings.Contains(err.Error(), "s3://"):
		return hints.ForS3()
	case errors.Is(err, bbox.ErrInvalidFont):
		return hints.ForTextFont(fontmetrics.Names())
	case errors.Is(err, bbox.ErrUnsupportedBackend):
		return hints.ForRasterizer()
	}
	return ""
}

// detectedFrom extracts the MIME type from a storage.ErrNotPDF message of the
// form "... (detected <mime>)".
func detectedFrom(err error) string {
	msg := err.Error()
	i := strings.LastIndex(msg, "detected ")
	if i < 0 {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(msg[i+len("detected "):]), ")")
}
