package layout

import (
	"fmt"
	"math"
)

// Color is an RGB triple with components in [0,1].
type Color struct {
	R, G, B float64
}

// Strategy is how a page's original content is carried into the output.
type Strategy int

const (
	// StrategyMerge wraps the page's content stream in a transform and merges
	// the overlay into it. Needs only the container library.
	StrategyMerge Strategy = iota
	// StrategyVector embeds the original page as a scaled form object.
	StrategyVector
	// StrategyRaster paints a rendered image of the page.
	StrategyRaster
)

func (s Strategy) String() string {
	switch s {
	case StrategyVector:
		return "vector"
	case StrategyRaster:
		return "raster"
	default:
		return "merge"
	}
}

// TextItem is a run of text anchored on the page.
type TextItem struct {
	Text     string
	Font     string
	FontSize float64
	Color    Color
	Origin   Point
}

// PagePlan is everything a backend needs to render one page.
type PagePlan struct {
	// Index is the zero-based page index in the source document.
	Index     int
	Size      Size
	Transform Transform
	Strategy  Strategy

	// Zoom is the raster zoom factor relative to 72 dpi; set only for
	// StrategyRaster.
	Zoom float64

	Border      Path
	BorderColor Color
	Texts       []TextItem
}

// RGB255 returns the components scaled to 0..255 and rounded.
func (c Color) RGB255() (r, g, b int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Valid reports whether every component lies in [0,1].
func (c Color) Valid() bool {
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	return in(c.R) && in(c.G) && in(c.B)
}

func to255(v float64) int {
	n := int(math.Round(v * 255))
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return n
}
