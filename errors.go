package bbox

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput         = errors.New("PDF input cannot be empty")
	ErrOpenDocument       = errors.New("failed to open PDF document")
	ErrRender             = errors.New("page rendering failed")
	ErrWriteDocument      = errors.New("failed to write PDF document")
	ErrUnsupportedBackend = errors.New("backend cannot render the requested strategy")
	ErrCancelled          = errors.New("processing cancelled")

	// Page selection errors.
	ErrNoPagesSelected = errors.New("no valid pages selected")

	// Settings validation errors.
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidStyle    = errors.New("invalid border style")
	ErrInvalidQuality  = errors.New("invalid quality mode")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidPosition = errors.New("invalid text position")
	ErrInvalidLocation = errors.New("invalid text location")
	ErrInvalidFont     = errors.New("invalid font family")
	ErrInvalidBorder   = errors.New("invalid border settings")
	ErrInvalidText     = errors.New("invalid text settings")
	ErrInvalidDPI      = errors.New("invalid DPI")
)
