package bbox

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alnah/go-bbox/internal/pdfdoc"
	"github.com/alnah/go-bbox/internal/raster"
)

// Compile-time interface implementation checks.
var (
	_ Backend    = (*pdfBackend)(nil)
	_ Document   = (*pdfDocument)(nil)
	_ PageWriter = (*pdfdoc.PageWriter)(nil)
)

// pdfBackend rewrites documents with pdfcpu and rasterizes with MuPDF when
// the build includes it.
type pdfBackend struct {
	b *pdfdoc.Backend
}

// NewPDFBackend returns the default backend. Vector embedding and merging are
// always available; rasterization depends on the build.
func NewPDFBackend(logger zerolog.Logger) Backend {
	return &pdfBackend{b: pdfdoc.NewBackend(raster.New(), logger)}
}

func (p *pdfBackend) Capabilities() Capabilities {
	return Capabilities{
		EmbedVector: true,
		Rasterize:   p.b.CanRasterize(),
		MergeBasic:  true,
	}
}

func (p *pdfBackend) Open(ctx context.Context, pdf []byte) (Document, error) {
	doc, err := p.b.Open(ctx, pdf)
	if err != nil {
		return nil, err
	}
	return &pdfDocument{doc}, nil
}

type pdfDocument struct {
	*pdfdoc.Document
}

func (d *pdfDocument) BeginPage(index int, size Size) (PageWriter, error) {
	pw, err := d.Document.BeginPage(index, size)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
