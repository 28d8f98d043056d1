package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-bbox"
)

// Preview grid, in characters.
const (
	previewWidth  = 60
	previewHeight = 30
)

// previewParams are the ratios of margins to the shorter page side.
type previewParams struct {
	outerRatio    float64
	innerRatio    float64
	color         bbox.Color
	style         bbox.BorderStyle
	preserveRatio bool
}

// colorLabel names a color for the legend and picks its glyph. Light colors
// use a lighter glyph so they stay visible.
func colorLabel(c bbox.Color) (name string, glyph string) {
	r, g, b := int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255))
	glyph = "█"
	switch {
	case r > 200 && g > 200 && b > 200:
		name, glyph = "white", "░"
	case r < 50 && g < 50 && b < 50:
		name = "black"
	case r > 200 && g < 100 && b < 100:
		name = "red"
	case r < 100 && g > 200 && b < 100:
		name = "green"
	case r < 100 && g < 100 && b > 200:
		name = "blue"
	default:
		name = fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
	}
	if n := bbox.ColorName(c); n != "" {
		name = n
	}
	return name, glyph
}

// renderPreview draws the page edge, the border and the content area boundary
// as text.
func renderPreview(p previewParams) string {
	short := float64(min(previewWidth, previewHeight))
	outer := max(2, min(int(p.outerRatio*short), 8))
	inner := outer + max(1, min(int(p.innerRatio*20), 4))

	colorName, glyph := colorLabel(p.color)
	hGlyph, vGlyph := glyph, glyph
	switch p.style {
	case bbox.StyleDashed:
		hGlyph, vGlyph = "─", "┆"
	case bbox.StyleDotted:
		hGlyph, vGlyph = "·", "·"
	}
	broken := p.style == bbox.StyleDashed || p.style == bbox.StyleDotted

	label := "← preserved →"
	if !p.preserveRatio {
		label = "← scaled →"
	}

	right, bottom := previewWidth-outer-1, previewHeight-outer-1
	innerRight, innerBottom := previewWidth-inner-1, previewHeight-inner-1
	center := previewHeight / 2

	var sb strings.Builder
	for y := 0; y < previewHeight; y++ {
		row := make([]string, previewWidth)
		for x := 0; x < previewWidth; x++ {
			row[x] = " "
			switch {
			case y == 0 || y == previewHeight-1:
				row[x] = "─"
			case x == 0 || x == previewWidth-1:
				row[x] = "│"
			case p.style == bbox.StyleRounded && y == outer && x == outer:
				row[x] = "╭"
			case p.style == bbox.StyleRounded && y == outer && x == right:
				row[x] = "╮"
			case p.style == bbox.StyleRounded && y == bottom && x == outer:
				row[x] = "╰"
			case p.style == bbox.StyleRounded && y == bottom && x == right:
				row[x] = "╯"
			case (y == outer || y == bottom) && x > outer && x < right:
				if !broken || x%2 == 0 {
					row[x] = hGlyph
				}
			case (x == outer || x == right) && y > outer && y < bottom:
				if !broken || y%2 == 0 {
					row[x] = vGlyph
				}
			case (y == inner || y == innerBottom) && x >= inner && x <= innerRight:
				row[x] = "·"
			case (x == inner || x == innerRight) && y >= inner && y <= innerBottom:
				row[x] = "·"
			}
		}
		if y == center {
			overlay(row, "PDF CONTENT")
		} else if y == center+1 {
			overlay(row, label)
		}
		sb.WriteString(strings.Join(row, ""))
		sb.WriteByte('\n')
	}

	styleDesc := p.style.String()
	if p.style == bbox.StyleRounded {
		styleDesc = "rounded corners"
	}
	sb.WriteString("\nLegend:\n")
	sb.WriteString("  ─│ Page edges\n")
	fmt.Fprintf(&sb, "  %s  Border (%s, %s)\n", glyph, colorName, styleDesc)
	sb.WriteString("  ·  Content area boundary\n")
	sb.WriteString("  Outer margin: page edge to border; inner padding: border to content\n")
	return sb.String()
}

// overlay centers text on row, counting runes so arrows take one cell.
func overlay(row []string, text string) {
	runes := []rune(text)
	start := (len(row) - len(runes)) / 2
	for i, r := range runes {
		row[start+i] = string(r)
	}
}
