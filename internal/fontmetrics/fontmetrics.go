// Package fontmetrics measures text set in the PDF standard 14 fonts, using
// the AFM metrics bundled with pdfcpu.
package fontmetrics

import (
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/font"
)

// Standard font names used by the default settings.
const (
	Helvetica     = "Helvetica"
	HelveticaBold = "Helvetica-Bold"
	Courier       = "Courier"
)

// IsStandard reports whether name is one of the standard 14 fonts.
func IsStandard(name string) bool { return font.IsCoreFont(name) }

// Names returns the standard font names, sorted, for help output.
func Names() []string {
	names := font.CoreFontNames()
	sort.Strings(names)
	return names
}

// TextWidth returns the advance width of text in points. Text is measured as
// it is drawn: WinAnsi encoded, one glyph per byte. Fonts outside the
// standard 14 are measured as Helvetica.
func TextWidth(text, name string, size float64) float64 {
	if !font.IsCoreFont(name) {
		name = Helvetica
	}
	var units int
	for _, b := range WinAnsi(text) {
		units += font.CharWidth(name, rune(b))
	}
	return float64(units) * size / 1000
}

// winAnsiExtra maps the characters WinAnsiEncoding places in 0x80-0x9F.
var winAnsiExtra = map[rune]byte{
	'€': 0x80, '‚': 0x82, 'ƒ': 0x83, '„': 0x84, '…': 0x85, '†': 0x86, '‡': 0x87,
	'ˆ': 0x88, '‰': 0x89, 'Š': 0x8A, '‹': 0x8B, 'Œ': 0x8C, 'Ž': 0x8E,
	'‘': 0x91, '’': 0x92, '“': 0x93, '”': 0x94, '•': 0x95, '–': 0x96, '—': 0x97,
	'˜': 0x98, '™': 0x99, 'š': 0x9A, '›': 0x9B, 'œ': 0x9C, 'ž': 0x9E, 'Ÿ': 0x9F,
}

// WinAnsi encodes text with WinAnsiEncoding. Characters outside the
// encoding become '?'.
func WinAnsi(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		switch {
		case r < 0x80 || (r >= 0xA0 && r <= 0xFF):
			out = append(out, byte(r))
		default:
			if b, ok := winAnsiExtra[r]; ok {
				out = append(out, b)
			} else {
				out = append(out, '?')
			}
		}
	}
	return out
}
