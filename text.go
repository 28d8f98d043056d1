package bbox

import (
	"strconv"
	"strings"

	"github.com/alnah/go-bbox/internal/fontmetrics"
	"github.com/alnah/go-bbox/internal/layout"
)

// FormatPageNumber substitutes {n} and {total} in format. A format without
// {n} renders nothing, since a label that never changes is not a page number.
func FormatPageNumber(format string, n, total int) string {
	if !strings.Contains(format, "{n}") {
		return ""
	}
	return strings.NewReplacer(
		"{n}", strconv.Itoa(n),
		"{total}", strconv.Itoa(total),
	).Replace(format)
}

// Label returns the page-number text for the processed page at ordinal
// (zero-based position among count processed pages). ok is false for pages
// inside the skipped head or tail.
func (p *PageNumbers) Label(ordinal, count int) (text string, ok bool) {
	if !p.Enabled {
		return "", false
	}
	if ordinal < p.SkipFirst || ordinal >= count-p.SkipLast {
		return "", false
	}
	n := p.StartNumber + (ordinal - p.SkipFirst)
	total := count - p.SkipFirst - p.SkipLast
	text = FormatPageNumber(p.Format, n, total)
	return text, text != ""
}

// TextFor returns the title for the processed page at ordinal, falling back to
// docTitle when no explicit text is configured.
func (t *Title) TextFor(ordinal int, docTitle string) (string, bool) {
	if !t.Enabled {
		return "", false
	}
	if t.OnlyFirstPage && ordinal != 0 {
		return "", false
	}
	text := t.Text
	if text == "" {
		text = docTitle
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// place anchors text on a page of the given size.
func (tp *TextPlacement) place(text string, page Size, outerMargin float64) TextItem {
	width := fontmetrics.TextWidth(text, tp.FontFamily, tp.FontSize)
	origin := layout.Anchor(layout.TextBox{
		Position:    tp.Position,
		Location:    tp.Location,
		Page:        page,
		OuterMargin: outerMargin,
		Width:       width,
		Height:      tp.FontSize,
		Margin:      tp.Margin,
	})
	return TextItem{
		Text:     text,
		Font:     tp.FontFamily,
		FontSize: tp.FontSize,
		Color:    tp.FontColor,
		Origin:   origin,
	}
}

// textItems collects the page number and title for one processed page.
func (s *Settings) textItems(page Size, ordinal, count int, docTitle string) []TextItem {
	var items []TextItem
	if text, ok := s.PageNumbers.Label(ordinal, count); ok {
		items = append(items, s.PageNumbers.place(text, page, s.Border.OuterMargin))
	}
	if text, ok := s.Title.TextFor(ordinal, docTitle); ok {
		items = append(items, s.Title.place(text, page, s.Border.OuterMargin))
	}
	return items
}
