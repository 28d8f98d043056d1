package pdfdoc

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-bbox/internal/layout"
)

// Frame is the visible area of a page: the crop box clipped to the media
// box, shown with the page rotation applied. Layout happens in frame space,
// whose origin is the lower-left corner of the page as a viewer displays it.
type Frame struct {
	Box    layout.Rect // default user space
	Rotate int         // clockwise degrees: 0, 90, 180 or 270
}

// Size is the displayed page size.
func (f Frame) Size() layout.Size {
	if f.Rotate == 90 || f.Rotate == 270 {
		return layout.Size{Width: f.Box.Height(), Height: f.Box.Width()}
	}
	return layout.Size{Width: f.Box.Width(), Height: f.Box.Height()}
}

// Matrix maps frame space into default user space.
func (f Frame) Matrix() [6]float64 {
	b := f.Box
	switch f.Rotate {
	case 90:
		return [6]float64{0, 1, -1, 0, b.X1, b.Y0}
	case 180:
		return [6]float64{-1, 0, 0, -1, b.X1, b.Y1}
	case 270:
		return [6]float64{0, -1, 1, 0, b.X0, b.Y1}
	}
	return [6]float64{1, 0, 0, 1, b.X0, b.Y0}
}

// ContentMatrix maps the original page into the scaled content area: from
// user space into frame space, through t, and back.
func ContentMatrix(t layout.Transform, f Frame) [6]float64 {
	m := f.Matrix()
	scale := [6]float64{t.ScaleX, 0, 0, t.ScaleY, t.TranslateX, t.TranslateY}
	return multiply(multiply(invert(m), scale), m)
}

var identity = [6]float64{1, 0, 0, 1, 0, 0}

// multiply returns the matrix applying a, then b.
func multiply(a, b [6]float64) [6]float64 {
	return [6]float64{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// invert inverts m. Frame matrices are rotations plus a translation, so
// the determinant is never zero.
func invert(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[1]*m[2]
	return [6]float64{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}
}

// pageFrame resolves the visible frame of a page. A crop box that misses the
// media box entirely is ignored.
func pageFrame(ctx *model.Context, page types.Dict, inh *model.InheritedPageAttrs) Frame {
	media := mediaBox(ctx, page, inh)
	f := Frame{Box: media, Rotate: pageRotation(ctx, page, inh)}
	if crop, ok := cropBox(ctx, page, inh); ok {
		if visible := intersect(crop, media); !visible.Empty() {
			f.Box = visible
		}
	}
	return f
}

// cropBox returns the page's own crop box, then the inherited one.
func cropBox(ctx *model.Context, page types.Dict, inh *model.InheritedPageAttrs) (layout.Rect, bool) {
	if r, ok := rectFrom(ctx, page["CropBox"]); ok {
		return r, true
	}
	if inh != nil && inh.CropBox != nil {
		r := layout.Rect{
			X0: min(inh.CropBox.LL.X, inh.CropBox.UR.X),
			Y0: min(inh.CropBox.LL.Y, inh.CropBox.UR.Y),
			X1: max(inh.CropBox.LL.X, inh.CropBox.UR.X),
			Y1: max(inh.CropBox.LL.Y, inh.CropBox.UR.Y),
		}
		return r, !r.Empty()
	}
	return layout.Rect{}, false
}

// pageRotation returns /Rotate normalized to 0, 90, 180 or 270. Values that
// are not multiples of 90 are invalid and read as 0.
func pageRotation(ctx *model.Context, page types.Dict, inh *model.InheritedPageAttrs) int {
	r := 0
	if o, ok := page["Rotate"]; ok && o != nil {
		if o, err := ctx.Dereference(o); err == nil {
			if v, ok := number(o); ok {
				r = int(v)
			}
		}
	} else if inh != nil {
		r = inh.Rotate
	}
	return normalizeRotation(r)
}

func normalizeRotation(r int) int {
	if r%90 != 0 {
		return 0
	}
	r %= 360
	if r < 0 {
		r += 360
	}
	return r
}

func intersect(a, b layout.Rect) layout.Rect {
	return layout.Rect{
		X0: max(a.X0, b.X0),
		Y0: max(a.Y0, b.Y0),
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
	}
}
