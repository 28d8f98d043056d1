package main

// Notes:
// - This file holds the fakes shared by the command tests: an in-memory
//   store, a backend that records pages, and a scripted confirmer.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/storage"
)

// ---------------------------------------------------------------------------
// Fake Store - In-memory inputs and outputs
// ---------------------------------------------------------------------------

type fakeStore struct {
	mu      sync.Mutex
	inputs  map[string][]byte
	outputs map[string][]byte
}

func newFakeStore(inputs map[string][]byte) *fakeStore {
	return &fakeStore{inputs: inputs, outputs: map[string][]byte{}}
}

func (s *fakeStore) Read(_ context.Context, loc string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.inputs[loc]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrInputNotFound, loc)
	}
	return data, nil
}

func (s *fakeStore) Write(_ context.Context, loc string, write func(io.Writer) error) (int64, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", storage.ErrWriteOutput, loc, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[loc] = buf.Bytes()
	return int64(buf.Len()), nil
}

func (s *fakeStore) output(loc string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.outputs[loc]
	return data, ok
}

// ---------------------------------------------------------------------------
// Fake Backend - Letter-size pages, records bordered indices
// ---------------------------------------------------------------------------

type fakeBackend struct {
	pages   int
	title   string
	caps    bbox.Capabilities
	openErr error

	mu       sync.Mutex
	bordered []int
}

func newFakeBackend(pages int) *fakeBackend {
	return &fakeBackend{
		pages: pages,
		caps:  bbox.Capabilities{EmbedVector: true, MergeBasic: true},
	}
}

func (b *fakeBackend) Capabilities() bbox.Capabilities { return b.caps }

func (b *fakeBackend) Open(_ context.Context, _ []byte) (bbox.Document, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &fakeDocument{backend: b}, nil
}

type fakeDocument struct {
	backend *fakeBackend
}

func (d *fakeDocument) PageCount() int { return d.backend.pages }

func (d *fakeDocument) PageSize(index int) (bbox.Size, error) {
	if index < 0 || index >= d.backend.pages {
		return bbox.Size{}, fmt.Errorf("page %d out of range", index)
	}
	return bbox.Size{Width: 612, Height: 792}, nil
}

func (d *fakeDocument) Title() string { return d.backend.title }

func (d *fakeDocument) BeginPage(index int, _ bbox.Size) (bbox.PageWriter, error) {
	return &fakePageWriter{backend: d.backend, index: index}, nil
}

func (d *fakeDocument) Write(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-1.7 bordered\n")
	return err
}

func (d *fakeDocument) Close() error { return nil }

type fakePageWriter struct {
	backend *fakeBackend
	index   int
}

func (w *fakePageWriter) PlaceContent(*bbox.PagePlan) error { return nil }
func (w *fakePageWriter) DrawBorder(*bbox.PagePlan) error   { return nil }
func (w *fakePageWriter) DrawText(*bbox.PagePlan) error     { return nil }

func (w *fakePageWriter) Commit() error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	w.backend.bordered = append(w.backend.bordered, w.index)
	return nil
}

func (b *fakeBackend) borderedPages() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.bordered...)
}

// ---------------------------------------------------------------------------
// Fake Confirmer - Scripted answer
// ---------------------------------------------------------------------------

type fakeConfirmer struct {
	answer bool
	err    error
	asked  bool
}

func (c *fakeConfirmer) Confirm(io.Writer) (bool, error) {
	c.asked = true
	return c.answer, c.err
}

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv returns an environment with buffers, no BBOX_* variables, and the
// given store and backend.
func testEnv(store Store, backend bbox.Backend) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:     func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   bytes.NewReader(nil),
		Getenv:  func(string) string { return "" },
		Environ: func() []string { return nil },
		Store:   store,
		Backend: backend,
	}, stdout, stderr
}

// mapEnv returns Getenv and Environ functions backed by vars.
func mapEnv(vars map[string]string) (func(string) string, func() []string) {
	return func(k string) string { return vars[k] }, func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
}

// fakePDF is accepted by the fake backend; the fake store skips detection.
var fakePDF = []byte("%PDF-1.7\n%fake\n")
