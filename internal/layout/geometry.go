// Package layout holds the pure geometry behind bordering a page: the content
// transform, the border outline and text anchors. Nothing here touches a PDF.
//
// All coordinates are PDF user-space points with the origin at the bottom-left
// corner of the page and y growing upward.
package layout

import "math"

// MinScale is the floor applied to a content scale when the margins leave no
// room for content. It keeps the transform invertible.
const MinScale = 0.001

// Size is a page size in points.
type Size struct {
	Width  float64
	Height float64
}

// Point is a position in page space.
type Point struct {
	X, Y float64
}

// FlipY converts a bottom-left origin point into a top-left origin point for a
// page of the given height.
func (p Point) FlipY(pageHeight float64) Point {
	return Point{X: p.X, Y: pageHeight - p.Y}
}

// Rect is an axis-aligned rectangle given by its lower-left and upper-right
// corners.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Transform places the original page content inside the border.
// It maps a content point (x, y) to (ScaleX*x + TranslateX, ScaleY*y + TranslateY).
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64

	// Degenerate is set when the margins consume the whole page and the scale
	// had to be floored at MinScale.
	Degenerate bool
}

// Apply maps a content point to page space.
func (t Transform) Apply(p Point) Point {
	return Point{X: t.ScaleX*p.X + t.TranslateX, Y: t.ScaleY*p.Y + t.TranslateY}
}

// Bounds returns the page-space box covered by content of the given size.
func (t Transform) Bounds(page Size) Rect {
	return Rect{
		X0: t.TranslateX,
		Y0: t.TranslateY,
		X1: t.TranslateX + page.Width*t.ScaleX,
		Y1: t.TranslateY + page.Height*t.ScaleY,
	}
}

// Matrix returns the transform as the six PDF matrix operands [a b c d e f].
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.ScaleX, 0, 0, t.ScaleY, t.TranslateX, t.TranslateY}
}

// Identity reports whether t leaves content untouched within tol.
func (t Transform) Identity(tol float64) bool {
	return math.Abs(t.ScaleX-1) <= tol && math.Abs(t.ScaleY-1) <= tol &&
		math.Abs(t.TranslateX) <= tol && math.Abs(t.TranslateY) <= tol
}

// Spacing is the distance from the page edge to the border (Outer) and from
// the border to the content (Inner), both in points.
type Spacing struct {
	Outer float64
	Inner float64
}

// Total is the full inset of the content from the page edge.
func (s Spacing) Total() float64 { return s.Outer + s.Inner }

// ComputeTransform derives the scale and translation that fit a page of the
// given size inside the spacing. With preserve set the content is scaled
// uniformly and centered; otherwise each axis is stretched independently and
// the content sits flush against the inset.
func ComputeTransform(page Size, sp Spacing, preserve bool) Transform {
	total := sp.Total()
	availW := page.Width - 2*total
	availH := page.Height - 2*total

	var t Transform
	if availW <= 0 || availH <= 0 || page.Width <= 0 || page.Height <= 0 {
		t.Degenerate = true
	}

	scaleX := safeRatio(availW, page.Width)
	scaleY := safeRatio(availH, page.Height)

	if preserve {
		scale := math.Min(scaleX, scaleY)
		t.ScaleX, t.ScaleY = scale, scale
		t.TranslateX = total + (availW-page.Width*scale)/2
		t.TranslateY = total + (availH-page.Height*scale)/2
		return t
	}

	t.ScaleX, t.ScaleY = scaleX, scaleY
	t.TranslateX, t.TranslateY = total, total
	return t
}

// safeRatio returns num/den floored at MinScale.
func safeRatio(num, den float64) float64 {
	if den <= 0 {
		return MinScale
	}
	r := num / den
	if r < MinScale || math.IsNaN(r) {
		return MinScale
	}
	return r
}

// BorderRect returns the rectangle the border is stroked along. It depends
// only on the outer margin: inner padding changes the content scale, never
// the frame.
func BorderRect(page Size, outerMargin float64) Rect {
	return Rect{
		X0: outerMargin,
		Y0: outerMargin,
		X1: page.Width - outerMargin,
		Y1: page.Height - outerMargin,
	}
}

// ContentRect returns the box content may occupy after scaling.
func ContentRect(page Size, sp Spacing) Rect {
	total := sp.Total()
	return Rect{
		X0: total,
		Y0: total,
		X1: page.Width - total,
		Y1: page.Height - total,
	}
}

// Renderable reports whether the spacing leaves positive room for content on
// a page of the given size.
func Renderable(page Size, sp Spacing) bool {
	return 2*sp.Total() < math.Min(page.Width, page.Height)
}
