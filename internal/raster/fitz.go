//go:build cgo && !nofitz

package raster

import (
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Fitz renders pages with MuPDF through go-fitz.
type Fitz struct{}

// New returns the MuPDF rasterizer.
func New() Rasterizer {
	return Fitz{}
}

// Available always returns true since MuPDF is linked in.
func (Fitz) Available() bool { return true }

// Open loads pdf into MuPDF.
func (Fitz) Open(pdf []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

// fitzDocument serializes access: a MuPDF context is not safe for concurrent use.
type fitzDocument struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func (d *fitzDocument) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

func (d *fitzDocument) Render(index int, zoom float64) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", index+1, d.doc.NumPage())
	}
	img, err := d.doc.ImageDPI(index, 72*zoom)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index+1, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}
