package bbox

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/alnah/go-bbox/internal/layout"
)

// Processor borders the pages of PDF documents.
// Create with NewProcessor and call Process once per document. A Processor
// holds no per-document state and may be reused.
type Processor struct {
	backend  Backend
	logger   zerolog.Logger
	progress func(done, total int)
}

// Option configures a Processor.
type Option func(*Processor)

// WithBackend replaces the pdfcpu/go-fitz backend.
func WithBackend(b Backend) Option {
	return func(p *Processor) {
		p.backend = b
	}
}

// WithLogger sets the logger for warnings and per-page debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// WithProgress registers a callback invoked after each committed page.
func WithProgress(fn func(done, total int)) Option {
	return func(p *Processor) {
		p.progress = fn
	}
}

// NewProcessor creates a Processor backed by pdfcpu, with go-fitz
// rasterization when it is available.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.backend == nil {
		p.backend = NewPDFBackend(p.logger)
	}
	return p
}

// Input is one document to border.
type Input struct {
	PDF      []byte
	Settings *Settings // nil means DefaultSettings()
}

// Result summarizes a completed run.
type Result struct {
	TotalPages int
	Pages      []int // zero-based indices that were bordered
	Decision   Decision
	Title      string
	Warnings   []string
}

// Process borders the selected pages of in.PDF and writes the document to w.
// Nothing is written to w unless every page succeeds. Cancelling ctx stops
// between pages.
func (p *Processor) Process(ctx context.Context, in Input, w io.Writer) (*Result, error) {
	if len(in.PDF) == 0 {
		return nil, ErrEmptyInput
	}
	s := in.Settings
	if s == nil {
		s = DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	decision, err := Decide(s.Quality.Mode, p.backend.Capabilities())
	if err != nil {
		return nil, err
	}
	res.Decision = decision
	if decision.Warning != "" {
		p.warn(res, decision.Warning)
	}

	doc, err := p.backend.Open(ctx, in.PDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	defer func() { _ = doc.Close() }()

	res.TotalPages = doc.PageCount()
	pages, warnings := SelectPages(s.Pages, res.TotalPages)
	for _, msg := range warnings {
		p.warn(res, msg)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %q in a %d-page document", ErrNoPagesSelected, s.Pages, res.TotalPages)
	}
	res.Pages = pages
	res.Title = doc.Title()

	p.logger.Debug().
		Int("total_pages", res.TotalPages).
		Int("selected", len(pages)).
		Str("quality", decision.Effective.String()).
		Str("strategy", decision.Strategy.String()).
		Msg("processing document")

	for ordinal, index := range pages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		if err := p.processPage(doc, s, decision, res, index, ordinal, len(pages)); err != nil {
			return nil, err
		}
		if p.progress != nil {
			p.progress(ordinal+1, len(pages))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if err := doc.Write(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	return res, nil
}

// DocumentInfo describes a document without modifying it.
type DocumentInfo struct {
	PageCount int
	Title     string
	FirstPage Size
}

// Inspect opens pdf and reports its page count, metadata title and first page
// size, so callers can show a summary before processing.
func (p *Processor) Inspect(ctx context.Context, pdf []byte) (*DocumentInfo, error) {
	if len(pdf) == 0 {
		return nil, ErrEmptyInput
	}
	doc, err := p.backend.Open(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	defer func() { _ = doc.Close() }()

	info := &DocumentInfo{PageCount: doc.PageCount(), Title: doc.Title()}
	if info.PageCount > 0 {
		size, err := doc.PageSize(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
		}
		info.FirstPage = size
	}
	return info, nil
}

// pageState tracks how far a page got. States only move forward.
type pageState int

const (
	stateSelected pageState = iota
	stateTransformComputed
	stateContentPlaced
	stateBorderDrawn
	stateTextPlaced
	stateCommitted
)

func (s pageState) String() string {
	switch s {
	case stateTransformComputed:
		return "transform computed"
	case stateContentPlaced:
		return "content placed"
	case stateBorderDrawn:
		return "border drawn"
	case stateTextPlaced:
		return "text placed"
	case stateCommitted:
		return "committed"
	default:
		return "selected"
	}
}

// processPage runs one page through the state machine.
func (p *Processor) processPage(doc Document, s *Settings, d Decision, res *Result, index, ordinal, count int) error {
	state := stateSelected
	fail := func(err error) error {
		return fmt.Errorf("%w: page %d after %s: %v", ErrRender, index+1, state, err)
	}

	size, err := doc.PageSize(index)
	if err != nil {
		return fail(err)
	}
	plan, warnings := s.Plan(size, d, index, ordinal, count, res.Title)
	for _, msg := range warnings {
		p.warn(res, msg)
	}
	state = stateTransformComputed

	pw, err := doc.BeginPage(index, size)
	if err != nil {
		return fail(err)
	}
	if err := pw.PlaceContent(plan); err != nil {
		return fail(err)
	}
	state = stateContentPlaced

	if err := pw.DrawBorder(plan); err != nil {
		return fail(err)
	}
	state = stateBorderDrawn

	if len(plan.Texts) > 0 {
		if err := pw.DrawText(plan); err != nil {
			return fail(err)
		}
		state = stateTextPlaced
	}

	if err := pw.Commit(); err != nil {
		return fail(err)
	}
	state = stateCommitted

	p.logger.Debug().
		Int("page", index+1).
		Float64("scale_x", plan.Transform.ScaleX).
		Float64("scale_y", plan.Transform.ScaleY).
		Int("texts", len(plan.Texts)).
		Stringer("state", state).
		Msg("page bordered")
	return nil
}

// Plan computes everything needed to render one page: transform, border
// outline and text anchors. It returns warnings for degenerate geometry.
func (s *Settings) Plan(size Size, d Decision, index, ordinal, count int, docTitle string) (*PagePlan, []string) {
	var warnings []string

	t := layout.ComputeTransform(size, s.Border.Spacing(), s.Quality.PreserveRatio)
	if t.Degenerate {
		warnings = append(warnings, fmt.Sprintf(
			"page %d: margins (%.1f pt total per side) leave no room for content on a %.1fx%.1f pt page",
			index+1, s.Border.OuterMargin+s.Border.InnerPadding, size.Width, size.Height))
	}

	rect := layout.BorderRect(size, s.Border.OuterMargin)
	border := layout.BuildBorderPath(rect, s.Border.Style, s.Border.CornerRadius, s.Border.LineWidth)
	if rect.Empty() {
		warnings = append(warnings, fmt.Sprintf("page %d: outer margin %.1f pt leaves no room for the border", index+1, s.Border.OuterMargin))
	} else if s.Border.Style == StyleRounded && s.Border.CornerRadius < 0 {
		warnings = append(warnings, fmt.Sprintf("page %d: corner radius %.1f pt is negative, drawing square corners", index+1, s.Border.CornerRadius))
	} else if s.Border.Style == StyleRounded && s.Border.CornerRadius > 0 && border.Radius < s.Border.CornerRadius {
		warnings = append(warnings, fmt.Sprintf("page %d: corner radius %.1f pt clamped to %.1f pt", index+1, s.Border.CornerRadius, border.Radius))
	}

	plan := &PagePlan{
		Index:       index,
		Size:        size,
		Transform:   t,
		Strategy:    d.Strategy,
		Border:      border,
		BorderColor: s.Border.Color,
		Texts:       s.textItems(size, ordinal, count, docTitle),
	}
	if d.Strategy == StrategyRaster {
		plan.Zoom = rasterZoom(d.Effective, s.Quality.DPI, t)
	}
	return plan, warnings
}

func (p *Processor) warn(res *Result, msg string) {
	res.Warnings = append(res.Warnings, msg)
	p.logger.Warn().Msg(msg)
}

// IsCancelled reports whether err stems from cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
