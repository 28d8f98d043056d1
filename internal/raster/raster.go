// Package raster renders PDF pages to bitmaps for the high and medium quality
// modes. The MuPDF-backed implementation needs cgo; builds with the nofitz tag
// or without cgo get a Rasterizer that reports itself unavailable.
package raster

import (
	"errors"
	"image"
	"image/draw"
	"math"
)

// ErrUnavailable is returned by Open when no rendering engine is compiled in.
var ErrUnavailable = errors.New("rasterizer not available in this build")

// MaxPixels caps the size of a single rendered page. Larger requests are
// rendered at the highest zoom that fits.
const MaxPixels = 100_000_000

// Rasterizer opens documents for rendering.
type Rasterizer interface {
	// Available reports whether Open can succeed.
	Available() bool
	Open(pdf []byte) (Document, error)
}

// Document is an opened document whose pages can be rendered.
type Document interface {
	NumPages() int
	// Render draws the zero-based page at zoom times 72 dpi, without alpha.
	Render(index int, zoom float64) (image.Image, error)
	Close() error
}

// ClampZoom lowers zoom so that a page of w by h points renders to at most
// MaxPixels pixels. Non-positive zooms become 1.
func ClampZoom(zoom, w, h float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	if w <= 0 || h <= 0 {
		return zoom
	}
	if px := w * zoom * h * zoom; px > MaxPixels {
		zoom *= math.Sqrt(MaxPixels / px)
	}
	return zoom
}

// RGB returns the pixels of img as packed 8-bit RGB rows, dropping alpha.
func RGB(img image.Image) (pix []byte, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}

	pix = make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}
	return pix, width, height
}
