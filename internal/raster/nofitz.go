//go:build !cgo || nofitz

package raster

// Unavailable is the rasterizer of builds without MuPDF.
type Unavailable struct{}

// New returns a rasterizer that cannot render.
func New() Rasterizer {
	return Unavailable{}
}

func (Unavailable) Available() bool { return false }

func (Unavailable) Open([]byte) (Document, error) { return nil, ErrUnavailable }
