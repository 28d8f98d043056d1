package pdfdoc

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-bbox/internal/layout"
	"github.com/alnah/go-bbox/internal/raster"
)

// PageWriter rebuilds one page. Calls must follow the order PlaceContent,
// DrawBorder, DrawText, Commit; DrawBorder and DrawText are optional.
type PageWriter struct {
	doc   *Document
	index int
	page  types.Dict
	inh   *model.InheritedPageAttrs
	frame Frame

	strategy  layout.Strategy
	placed    bool
	committed bool

	resources types.Dict
	xobjects  types.Dict
	fonts     *FontSet

	// merge keeps the original streams between prefix and suffix.
	prefix   types.Object
	original []types.Object

	body    Stream
	overlay Stream
}

// PlaceContent carries the original page content into the output using the
// plan's strategy.
func (w *PageWriter) PlaceContent(plan *layout.PagePlan) error {
	if w.committed {
		return ErrPageCommitted
	}
	w.strategy = plan.Strategy

	var err error
	switch plan.Strategy {
	case layout.StrategyVector:
		err = w.placeVector(plan)
	case layout.StrategyRaster:
		err = w.placeRaster(plan)
	default:
		err = w.placeMerge(plan)
	}
	if err != nil {
		return fmt.Errorf("%s placement: %w", plan.Strategy, err)
	}
	w.placed = true
	return nil
}

// placeVector wraps the page content in a form XObject sharing the page's
// resources and draws it through the content matrix.
func (w *PageWriter) placeVector(plan *layout.PagePlan) error {
	ctx := w.doc.ctx
	content, err := decodedContent(ctx, w.page)
	if err != nil {
		return err
	}

	entries := types.Dict{
		"Type":    types.Name("XObject"),
		"Subtype": types.Name("Form"),
		"BBox":    rectArray(w.frame.Box),
	}
	if res := resourcesObject(w.page, w.inh); res != nil {
		entries["Resources"] = res
	}
	ref, err := newStream(ctx, content, entries)
	if err != nil {
		return err
	}

	w.resources = types.Dict{}
	w.xobjects[formName] = ref
	w.body.Save().Concat(ContentMatrix(plan.Transform, w.frame)).Do(formName).Restore()
	return nil
}

// placeMerge keeps the original streams and brackets them with a transform.
func (w *PageWriter) placeMerge(plan *layout.PagePlan) error {
	ctx := w.doc.ctx
	items, err := contentItems(ctx, w.page)
	if err != nil {
		return err
	}
	res, err := cloneDict(ctx, resourcesObject(w.page, w.inh))
	if err != nil {
		return fmt.Errorf("reading page resources: %w", err)
	}

	var prefix Stream
	// The clip keeps content outside the crop box hidden once it is scaled
	// into view.
	prefix.Save().Concat(ContentMatrix(plan.Transform, w.frame)).Rect(w.frame.Box).Clip()
	ref, err := newStream(ctx, prefix.Bytes(), nil)
	if err != nil {
		return err
	}

	w.resources = res
	w.prefix = ref
	w.original = items
	return nil
}

// placeRaster renders the page and paints the bitmap over the content area.
func (w *PageWriter) placeRaster(plan *layout.PagePlan) error {
	rd, err := w.doc.rasterDocument()
	if err != nil {
		return err
	}
	size := w.frame.Size()
	zoom := raster.ClampZoom(plan.Zoom, size.Width, size.Height)
	img, err := rd.Render(w.index, zoom)
	if err != nil {
		return err
	}
	pix, pw, ph := raster.RGB(img)
	if pw == 0 || ph == 0 {
		return fmt.Errorf("rendered page %d is empty", w.index+1)
	}
	w.doc.logger.Debug().
		Int("page", w.index+1).
		Float64("zoom", zoom).
		Int("width", pw).
		Int("height", ph).
		Msg("page rasterized")

	ref, err := newStream(w.doc.ctx, pix, types.Dict{
		"Type":             types.Name("XObject"),
		"Subtype":          types.Name("Image"),
		"Width":            types.Integer(pw),
		"Height":           types.Integer(ph),
		"ColorSpace":       types.Name("DeviceRGB"),
		"BitsPerComponent": types.Integer(8),
	})
	if err != nil {
		return err
	}

	b := plan.Transform.Bounds(plan.Size)
	w.resources = types.Dict{}
	w.xobjects[imageName] = ref
	// The rasterizer renders the page as displayed, so the image is
	// painted in frame space.
	w.body.Save().
		Transform(w.frame.Matrix()).
		Concat([6]float64{b.Width(), 0, 0, b.Height(), b.X0, b.Y0}).
		Do(imageName).
		Restore()
	return nil
}

// DrawBorder appends the border outline to the overlay.
func (w *PageWriter) DrawBorder(plan *layout.PagePlan) error {
	if w.committed {
		return ErrPageCommitted
	}
	WriteBorder(&w.overlay, plan.Border, plan.BorderColor)
	return nil
}

// DrawText appends the plan's text items to the overlay.
func (w *PageWriter) DrawText(plan *layout.PagePlan) error {
	if w.committed {
		return ErrPageCommitted
	}
	if !w.placed {
		return ErrContentNotPlaced
	}
	if w.fonts == nil {
		existing, err := cloneDict(w.doc.ctx, w.resources["Font"])
		if err != nil {
			return fmt.Errorf("reading font resources: %w", err)
		}
		w.fonts = NewFontSet(existing)
	}
	WriteTexts(&w.overlay, plan.Texts, w.fonts)
	return nil
}

// Commit writes the new content stream and resources into the page.
func (w *PageWriter) Commit() error {
	if w.committed {
		return ErrPageCommitted
	}
	if !w.placed {
		return ErrContentNotPlaced
	}
	ctx := w.doc.ctx

	var out Stream
	if w.strategy == layout.StrategyMerge && w.prefix != nil {
		out.Restore()
	} else {
		out.Raw(w.body.Bytes())
	}
	if w.overlay.Len() > 0 {
		out.Save().Transform(w.frame.Matrix()).Raw(w.overlay.Bytes()).Restore()
	}

	if err := w.mergeResources(); err != nil {
		return err
	}
	ref, err := newStream(ctx, out.Bytes(), nil)
	if err != nil {
		return err
	}

	if w.prefix != nil {
		contents := types.Array{w.prefix}
		contents = append(contents, w.original...)
		w.page["Contents"] = append(contents, ref)
	} else {
		w.page["Contents"] = ref
	}
	w.page["Resources"] = w.resources
	w.committed = true
	return nil
}

func (w *PageWriter) mergeResources() error {
	ctx := w.doc.ctx
	if len(w.xobjects) > 0 {
		xo, err := cloneDict(ctx, w.resources["XObject"])
		if err != nil {
			return fmt.Errorf("reading XObject resources: %w", err)
		}
		for k, v := range w.xobjects {
			xo[k] = v
		}
		w.resources["XObject"] = xo
	}
	if w.fonts != nil && w.fonts.Len() > 0 {
		fonts, err := cloneDict(ctx, w.resources["Font"])
		if err != nil {
			return fmt.Errorf("reading font resources: %w", err)
		}
		w.fonts.MergeInto(fonts)
		w.resources["Font"] = fonts
	}
	return nil
}
