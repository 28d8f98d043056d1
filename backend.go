package bbox

import (
	"context"
	"fmt"
	"io"
	"math"
)

// Capabilities is what a backend can do with a page's original content.
type Capabilities struct {
	EmbedVector bool // place the page as a scaled vector object
	Rasterize   bool // paint a rendered image of the page
	MergeBasic  bool // transform the content stream and merge the overlay
}

// Backend opens documents for bordering.
type Backend interface {
	Capabilities() Capabilities
	Open(ctx context.Context, pdf []byte) (Document, error)
}

// Document is an opened PDF being rewritten in place. Pages that are never
// passed to BeginPage are written out unchanged.
type Document interface {
	PageCount() int
	PageSize(index int) (Size, error)
	// Title returns the metadata title, or "" if there is none.
	Title() string
	BeginPage(index int, size Size) (PageWriter, error)
	Write(w io.Writer) error
	Close() error
}

// PageWriter receives the drawing steps for one page, in order.
type PageWriter interface {
	PlaceContent(plan *PagePlan) error
	DrawBorder(plan *PagePlan) error
	DrawText(plan *PagePlan) error
	Commit() error
}

// Decision is the strategy chosen for a run.
type Decision struct {
	Requested QualityMode
	Effective QualityMode
	Strategy  Strategy

	// Warning is set when the requested mode had to be downgraded.
	Warning string
}

// Decide maps a quality mode onto a strategy the backend supports. Modes the
// backend cannot serve fall back to QualityStandard with a warning.
func Decide(mode QualityMode, caps Capabilities) (Decision, error) {
	d := Decision{Requested: mode, Effective: mode}

	switch mode {
	case QualityOriginal:
		if caps.EmbedVector {
			d.Strategy = StrategyVector
			return d, nil
		}
		d.Warning = "vector embedding unavailable, using standard quality"
	case QualityHigh, QualityMedium:
		if caps.Rasterize {
			d.Strategy = StrategyRaster
			return d, nil
		}
		d.Warning = "rasterizer unavailable, using standard quality"
	case QualityStandard:
	default:
		return d, fmt.Errorf("%w: %d", ErrInvalidQuality, int(mode))
	}

	if !caps.MergeBasic {
		return d, fmt.Errorf("%w: %s", ErrUnsupportedBackend, StrategyMerge)
	}
	d.Effective = QualityStandard
	d.Strategy = StrategyMerge
	return d, nil
}

// rasterZoom is the zoom factor relative to 72 dpi at which a page is
// rendered so that the painted image keeps the requested resolution after
// scaling. Stretched pages use the larger axis scale.
func rasterZoom(mode QualityMode, dpi int, t Transform) float64 {
	scale := math.Max(t.ScaleX, t.ScaleY)
	if mode == QualityHigh {
		return scale * float64(dpi) / 72
	}
	return scale * 2
}
