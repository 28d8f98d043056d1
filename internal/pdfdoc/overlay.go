package pdfdoc

import (
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-bbox/internal/layout"
)

// Resource names are prefixed to stay clear of names already on the page.
const (
	resourcePrefix = "BBx"
	formName       = resourcePrefix + "Src"
	imageName      = resourcePrefix + "Img"
)

// WriteBorder strokes the border outline.
func WriteBorder(s *Stream, p layout.Path, c layout.Color) {
	if p.Kind == layout.PathRect && p.Rect.Empty() {
		return
	}
	if p.Kind == layout.PathPolyline && len(p.Segments) == 0 {
		return
	}

	s.Save().StrokeColor(c).LineWidth(p.LineWidth).Dash(p.Dash)
	switch p.Kind {
	case layout.PathPolyline:
		s.MoveTo(p.Segments[0].From)
		for _, seg := range p.Segments {
			s.LineTo(seg.To)
		}
		s.ClosePath()
	default:
		s.Rect(p.Rect)
	}
	s.Stroke().Restore()
}

// WriteTexts shows each text item with a font registered in fonts.
func WriteTexts(s *Stream, items []layout.TextItem, fonts *FontSet) {
	for _, it := range items {
		name := fonts.Add(it.Font)
		s.Save().FillColor(it.Color)
		s.Text(name, it.FontSize, it.Origin, it.Text)
		s.Restore()
	}
}

// FontSet assigns resource names to standard fonts used on a page.
type FontSet struct {
	taken map[string]bool // names already present in the page's font resources
	names map[string]string
	order []string
}

// NewFontSet returns an empty set avoiding the names in existing.
func NewFontSet(existing types.Dict) *FontSet {
	taken := make(map[string]bool, len(existing))
	for k := range existing {
		taken[k] = true
	}
	return &FontSet{taken: taken, names: make(map[string]string)}
}

// Add returns the resource name for base, registering it on first use.
func (f *FontSet) Add(base string) string {
	if name, ok := f.names[base]; ok {
		return name
	}
	var name string
	for i := len(f.order) + 1; ; i++ {
		name = resourcePrefix + "F" + strconv.Itoa(i)
		if !f.taken[name] {
			break
		}
	}
	f.taken[name] = true
	f.names[base] = name
	f.order = append(f.order, base)
	return name
}

// Len reports how many fonts were registered.
func (f *FontSet) Len() int { return len(f.order) }

// MergeInto adds a font dictionary for every registered font to fonts.
func (f *FontSet) MergeInto(fonts types.Dict) {
	for _, base := range f.order {
		fonts[f.names[base]] = fontDict(base)
	}
}

// fontDict describes a standard 14 font. Symbol and ZapfDingbats carry their
// own built-in encodings.
func fontDict(base string) types.Dict {
	d := types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(base),
	}
	if base != "Symbol" && base != "ZapfDingbats" {
		d["Encoding"] = types.Name("WinAnsiEncoding")
	}
	return d
}
