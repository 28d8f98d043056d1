package pdfdoc

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-bbox/internal/layout"
)

// US Letter, used when a page declares no usable media box.
var letter = layout.Rect{X1: 612, Y1: 792}

func number(o types.Object) (float64, bool) {
	switch v := o.(type) {
	case types.Float:
		return float64(v), true
	case types.Integer:
		return float64(v), true
	}
	return 0, false
}

// rectFrom reads a four-number array, normalizing the corner order.
func rectFrom(ctx *model.Context, o types.Object) (layout.Rect, bool) {
	if o == nil {
		return layout.Rect{}, false
	}
	o, err := ctx.Dereference(o)
	if err != nil {
		return layout.Rect{}, false
	}
	arr, ok := o.(types.Array)
	if !ok || len(arr) != 4 {
		return layout.Rect{}, false
	}
	var v [4]float64
	for i, item := range arr {
		item, err := ctx.Dereference(item)
		if err != nil {
			return layout.Rect{}, false
		}
		if v[i], ok = number(item); !ok {
			return layout.Rect{}, false
		}
	}
	r := layout.Rect{
		X0: min(v[0], v[2]), Y0: min(v[1], v[3]),
		X1: max(v[0], v[2]), Y1: max(v[1], v[3]),
	}
	return r, !r.Empty()
}

func rectArray(r layout.Rect) types.Array {
	return types.Array{types.Float(r.X0), types.Float(r.Y0), types.Float(r.X1), types.Float(r.Y1)}
}

// mediaBox returns the page's own media box, then the inherited one, then
// Letter.
func mediaBox(ctx *model.Context, page types.Dict, inh *model.InheritedPageAttrs) layout.Rect {
	if r, ok := rectFrom(ctx, page["MediaBox"]); ok {
		return r
	}
	if inh != nil && inh.MediaBox != nil {
		r := layout.Rect{X0: inh.MediaBox.LL.X, Y0: inh.MediaBox.LL.Y, X1: inh.MediaBox.UR.X, Y1: inh.MediaBox.UR.Y}
		if !r.Empty() {
			return r
		}
	}
	return letter
}

// resourcesObject returns the page resources as stored, keeping indirect
// references intact so form XObjects can share them.
func resourcesObject(page types.Dict, inh *model.InheritedPageAttrs) types.Object {
	if o, ok := page["Resources"]; ok && o != nil {
		return o
	}
	if inh != nil && inh.Resources != nil {
		return inh.Resources
	}
	return nil
}

// cloneDict dereferences o and returns a shallow copy of the dictionary, or
// an empty one when o is absent.
func cloneDict(ctx *model.Context, o types.Object) (types.Dict, error) {
	out := types.Dict{}
	if o == nil {
		return out, nil
	}
	d, err := ctx.DereferenceDict(o)
	if err != nil {
		return nil, err
	}
	for k, v := range d {
		out[k] = v
	}
	return out, nil
}

// contentItems lists the page's content streams as stored in /Contents.
func contentItems(ctx *model.Context, page types.Dict) ([]types.Object, error) {
	o, ok := page["Contents"]
	if !ok || o == nil {
		return nil, nil
	}
	if ref, isRef := o.(types.IndirectRef); isRef {
		d, err := ctx.Dereference(ref)
		if err != nil {
			return nil, fmt.Errorf("resolving page contents: %w", err)
		}
		if arr, isArr := d.(types.Array); isArr {
			return arr, nil
		}
		return []types.Object{ref}, nil
	}
	if arr, isArr := o.(types.Array); isArr {
		return arr, nil
	}
	return []types.Object{o}, nil
}

// decodedContent concatenates the decoded content streams of a page.
func decodedContent(ctx *model.Context, page types.Dict) ([]byte, error) {
	items, err := contentItems(ctx, page)
	if err != nil {
		return nil, err
	}
	var out []byte
	for i, item := range items {
		o, err := ctx.Dereference(item)
		if err != nil {
			return nil, fmt.Errorf("resolving content stream %d: %w", i, err)
		}
		sd, ok := o.(types.StreamDict)
		if !ok {
			return nil, fmt.Errorf("content stream %d is %T, not a stream", i, o)
		}
		if len(sd.Content) == 0 && len(sd.Raw) > 0 {
			if err := sd.Decode(); err != nil {
				return nil, fmt.Errorf("decoding content stream %d: %w", i, err)
			}
		}
		out = append(out, sd.Content...)
		out = append(out, '\n')
	}
	return out, nil
}

// newStream adds a Flate-compressed stream object to the document.
func newStream(ctx *model.Context, content []byte, entries types.Dict) (types.IndirectRef, error) {
	sd, err := ctx.NewStreamDictForBuf(content)
	if err != nil {
		return types.IndirectRef{}, err
	}
	for k, v := range entries {
		sd.Dict[k] = v
	}
	if err := sd.Encode(); err != nil {
		return types.IndirectRef{}, fmt.Errorf("encoding stream: %w", err)
	}
	ref, err := ctx.IndRefForNewObject(*sd)
	if err != nil {
		return types.IndirectRef{}, err
	}
	return *ref, nil
}
