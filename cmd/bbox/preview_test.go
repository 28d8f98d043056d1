package main

// Notes:
// - renderPreview: grid dimensions, style glyphs, ratio labels and legend.
// - colorLabel: threshold names, named colors, and the light glyph for white.
// - progressBar: rendering at start, middle and completion.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alnah/go-bbox"
)

// ---------------------------------------------------------------------------
// TestRenderPreview - ASCII page preview
// ---------------------------------------------------------------------------

func TestRenderPreview_Grid(t *testing.T) {
	t.Parallel()

	out := renderPreview(previewParams{
		outerRatio:    0.06,
		innerRatio:    0.03,
		color:         bbox.Black,
		style:         bbox.StyleSolid,
		preserveRatio: true,
	})

	grid, _, ok := strings.Cut(out, "\nLegend:")
	if !ok {
		t.Fatalf("preview has no legend:\n%s", out)
	}
	rows := strings.Split(strings.TrimRight(grid, "\n"), "\n")
	if len(rows) != previewHeight {
		t.Fatalf("rows = %d, want %d", len(rows), previewHeight)
	}
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != previewWidth {
			t.Errorf("row %d has %d cells, want %d", i, n, previewWidth)
		}
	}
	if !strings.Contains(grid, "PDF CONTENT") {
		t.Error("preview should label the content area")
	}
	if !strings.Contains(grid, "← preserved →") {
		t.Error("preview should show the preserved ratio label")
	}
}

func TestRenderPreview_Styles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   bbox.BorderStyle
		want    string
		wantDoc string
	}{
		{"rounded", bbox.StyleRounded, "╭", "rounded corners"},
		{"dashed", bbox.StyleDashed, "┆", "dashed"},
		{"solid", bbox.StyleSolid, "█", "solid"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := renderPreview(previewParams{outerRatio: 0.05, innerRatio: 0.02, color: bbox.Black, style: tt.style})
			if !strings.Contains(out, tt.want) {
				t.Errorf("preview should contain %q", tt.want)
			}
			if !strings.Contains(out, tt.wantDoc) {
				t.Errorf("legend should mention %q", tt.wantDoc)
			}
			if !strings.Contains(out, "← scaled →") {
				t.Error("stretched content should be labeled scaled")
			}
		})
	}
}

func TestRenderPreview_ExtremeRatios(t *testing.T) {
	t.Parallel()

	for _, ratio := range []float64{0, 0.001, 1, 10} {
		out := renderPreview(previewParams{outerRatio: ratio, innerRatio: ratio, color: bbox.Black, style: bbox.StyleSolid})
		if !strings.Contains(out, "PDF CONTENT") {
			t.Errorf("ratio %v: preview lost its content label", ratio)
		}
	}
}

// ---------------------------------------------------------------------------
// TestColorLabel - Legend names and glyphs
// ---------------------------------------------------------------------------

func TestColorLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		color     bbox.Color
		wantName  string
		wantGlyph string
	}{
		{"black", bbox.Black, "black", "█"},
		{"white", bbox.Color{R: 1, G: 1, B: 1}, "white", "░"},
		{"dark gray", bbox.Color{R: 0.1, G: 0.1, B: 0.1}, "black", "█"},
		{"pure red", bbox.Color{R: 1}, "red", "█"},
		{"teal", bbox.Color{R: 0.2, G: 0.5, B: 0.5}, "rgb(51,128,128)", "█"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, glyph := colorLabel(tt.color)
			if name != tt.wantName || glyph != tt.wantGlyph {
				t.Errorf("colorLabel(%+v) = (%q, %q), want (%q, %q)", tt.color, name, glyph, tt.wantName, tt.wantGlyph)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestProgressBar - Single-line progress
// ---------------------------------------------------------------------------

func TestProgressBar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := newProgressBar(&buf)

	p.update(1, 4)
	if got := buf.String(); got != "\r["+strings.Repeat("#", 10)+strings.Repeat("-", 30)+"] 1/4 pages" {
		t.Errorf("partial = %q", got)
	}

	buf.Reset()
	p.update(4, 4)
	if got := buf.String(); got != "\r["+strings.Repeat("#", 40)+"] 4/4 pages\n" {
		t.Errorf("complete = %q", got)
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newProgressBar(&buf).update(0, 0)
	if !strings.HasSuffix(buf.String(), "0/0 pages\n") {
		t.Errorf("zero total = %q", buf.String())
	}
}
