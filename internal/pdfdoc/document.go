package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"

	"github.com/alnah/go-bbox/internal/layout"
	"github.com/alnah/go-bbox/internal/raster"
)

// Sentinel errors for document operations.
var (
	ErrNoPages          = errors.New("document has no pages")
	ErrPageOutOfRange   = errors.New("page index out of range")
	ErrPageCommitted    = errors.New("page already committed")
	ErrNoRasterizer     = errors.New("rasterizer not available")
	ErrContentNotPlaced = errors.New("content must be placed before committing")
)

// Backend opens documents with pdfcpu. Raster strategies use the given
// rasterizer.
type Backend struct {
	rasterizer raster.Rasterizer
	logger     zerolog.Logger
}

// NewBackend creates a backend. r may be nil, which disables rasterization.
func NewBackend(r raster.Rasterizer, logger zerolog.Logger) *Backend {
	return &Backend{rasterizer: r, logger: logger}
}

// CanRasterize reports whether raster strategies are available.
func (b *Backend) CanRasterize() bool {
	return b.rasterizer != nil && b.rasterizer.Available()
}

// Open parses pdf. Validation problems are logged, not fatal: relaxed
// validation already tolerates most real-world damage, and anything pdfcpu
// could read can usually be rewritten.
func (b *Backend) Open(ctx context.Context, pdf []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		b.logger.Warn().Err(err).Msg("PDF did not validate, continuing")
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	if pctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	return &Document{
		ctx:    pctx,
		src:    pdf,
		raster: b.rasterizer,
		logger: b.logger,
		frames: make(map[int]Frame),
	}, nil
}

// Document is a PDF being rewritten. Pages never begun are written unchanged.
type Document struct {
	ctx    *model.Context
	src    []byte
	raster raster.Rasterizer
	rdoc   raster.Document
	logger zerolog.Logger
	frames map[int]Frame
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Title returns the Info dictionary title, or "".
func (d *Document) Title() string { return d.ctx.Title }

// PageSize returns the displayed size of the zero-based page: its crop box,
// turned by /Rotate.
func (d *Document) PageSize(index int) (layout.Size, error) {
	_, f, _, err := d.page(index)
	if err != nil {
		return layout.Size{}, err
	}
	return f.Size(), nil
}

// PageFrame returns the visible frame of the zero-based page.
func (d *Document) PageFrame(index int) (Frame, error) {
	_, f, _, err := d.page(index)
	return f, err
}

func (d *Document) page(index int) (types.Dict, Frame, *model.InheritedPageAttrs, error) {
	if index < 0 || index >= d.ctx.PageCount {
		return nil, Frame{}, nil, fmt.Errorf("%w: %d (document has %d)", ErrPageOutOfRange, index+1, d.ctx.PageCount)
	}
	page, _, inh, err := d.ctx.PageDict(index+1, true)
	if err != nil {
		return nil, Frame{}, nil, fmt.Errorf("loading page %d: %w", index+1, err)
	}
	if page == nil {
		return nil, Frame{}, nil, fmt.Errorf("loading page %d: missing page dictionary", index+1)
	}
	// Frames are cached so a page keeps the frame it was planned with after
	// its dictionary is rewritten.
	f, ok := d.frames[index]
	if !ok {
		f = pageFrame(d.ctx, page, inh)
		d.frames[index] = f
	}
	return page, f, inh, nil
}

// BeginPage starts rewriting the zero-based page.
func (d *Document) BeginPage(index int, _ layout.Size) (*PageWriter, error) {
	page, f, inh, err := d.page(index)
	if err != nil {
		return nil, err
	}
	return &PageWriter{
		doc:      d,
		index:    index,
		page:     page,
		inh:      inh,
		frame:    f,
		xobjects: types.Dict{},
	}, nil
}

// Write serializes the document.
func (d *Document) Write(w io.Writer) error {
	if err := api.WriteContext(d.ctx, w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// Close releases the rasterizer's copy of the document, if one was opened.
func (d *Document) Close() error {
	if d.rdoc == nil {
		return nil
	}
	err := d.rdoc.Close()
	d.rdoc = nil
	return err
}

// rasterDocument opens the source bytes for rendering on first use.
func (d *Document) rasterDocument() (raster.Document, error) {
	if d.rdoc != nil {
		return d.rdoc, nil
	}
	if d.raster == nil || !d.raster.Available() {
		return nil, ErrNoRasterizer
	}
	rd, err := d.raster.Open(d.src)
	if err != nil {
		return nil, err
	}
	d.rdoc = rd
	return rd, nil
}
