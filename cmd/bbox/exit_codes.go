package main

import (
	"errors"
	"os"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/config"
	"github.com/alnah/go-bbox/internal/storage"
)

// Exit codes for the bbox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// 130 is the shell convention for termination by SIGINT.
const (
	ExitSuccess   = 0   // Document written
	ExitGeneral   = 1   // General/unexpected error
	ExitUsage     = 2   // Invalid flags, config, or settings
	ExitIO        = 3   // Input missing or unreadable, output not writable
	ExitBackend   = 4   // PDF could not be opened, rendered, or written
	ExitCancelled = 130 // Declined at the prompt or interrupted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Cancellation (exit 130)
	if bbox.IsCancelled(err) || errors.Is(err, ErrDeclined) {
		return ExitCancelled
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, storage.ErrInputNotFound) ||
		errors.Is(err, storage.ErrNotPDF) ||
		errors.Is(err, storage.ErrReadInput) ||
		errors.Is(err, storage.ErrInputTooLarge) ||
		errors.Is(err, storage.ErrWriteOutput) ||
		errors.Is(err, bbox.ErrEmptyInput) {
		return ExitIO
	}

	// Backend errors (exit 4)
	if errors.Is(err, bbox.ErrOpenDocument) ||
		errors.Is(err, bbox.ErrRender) ||
		errors.Is(err, bbox.ErrWriteDocument) ||
		errors.Is(err, bbox.ErrUnsupportedBackend) {
		return ExitBackend
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, storage.ErrInvalidLocation) ||
		errors.Is(err, bbox.ErrNoPagesSelected) ||
		errors.Is(err, bbox.ErrInvalidColor) ||
		errors.Is(err, bbox.ErrInvalidStyle) ||
		errors.Is(err, bbox.ErrInvalidQuality) ||
		errors.Is(err, bbox.ErrInvalidUnit) ||
		errors.Is(err, bbox.ErrInvalidPosition) ||
		errors.Is(err, bbox.ErrInvalidLocation) ||
		errors.Is(err, bbox.ErrInvalidFont) ||
		errors.Is(err, bbox.ErrInvalidBorder) ||
		errors.Is(err, bbox.ErrInvalidText) ||
		errors.Is(err, bbox.ErrInvalidDPI) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrSameFile) {
		return ExitUsage
	}

	return ExitGeneral
}
