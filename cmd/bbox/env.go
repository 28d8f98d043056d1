package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/storage"
)

// Store reads inputs and writes outputs.
type Store interface {
	Read(ctx context.Context, loc string) ([]byte, error)
	Write(ctx context.Context, loc string, write func(io.Writer) error) (int64, error)
}

// Compile-time interface implementation check.
var _ Store = (*storage.Store)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment variables, storage and the PDF backend.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Stdin   io.Reader
	Getenv  func(string) string
	Environ func() []string

	// Store is created from the logger when nil.
	Store Store
	// Backend is the default pdfcpu backend when nil.
	Backend bbox.Backend
	// Confirmer is the terminal prompt when nil.
	Confirmer Confirmer
	// Interactive enables the progress bar and the prompt.
	Interactive bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	}
}
