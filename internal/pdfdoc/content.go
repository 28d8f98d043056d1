package pdfdoc

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/alnah/go-bbox/internal/fontmetrics"
	"github.com/alnah/go-bbox/internal/layout"
)

// Stream accumulates content stream operators.
type Stream struct {
	buf bytes.Buffer
}

// Bytes returns the operators written so far.
func (s *Stream) Bytes() []byte { return s.buf.Bytes() }

// Len reports the number of bytes written.
func (s *Stream) Len() int { return s.buf.Len() }

func (s *Stream) op(operator string, operands ...float64) *Stream {
	for _, v := range operands {
		s.buf.WriteString(Num(v))
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString(operator)
	s.buf.WriteByte('\n')
	return s
}

// Save pushes the graphics state (q).
func (s *Stream) Save() *Stream { return s.op("q") }

// Restore pops the graphics state (Q).
func (s *Stream) Restore() *Stream { return s.op("Q") }

// Concat multiplies the current matrix by m (cm).
func (s *Stream) Concat(m [6]float64) *Stream {
	return s.op("cm", m[:]...)
}

// Transform is Concat that writes nothing for the identity matrix.
func (s *Stream) Transform(m [6]float64) *Stream {
	if m == identity {
		return s
	}
	return s.Concat(m)
}

// StrokeColor sets the RGB stroking color (RG).
func (s *Stream) StrokeColor(c layout.Color) *Stream {
	return s.op("RG", c.R, c.G, c.B)
}

// FillColor sets the RGB non-stroking color (rg).
func (s *Stream) FillColor(c layout.Color) *Stream {
	return s.op("rg", c.R, c.G, c.B)
}

// LineWidth sets the stroke width (w).
func (s *Stream) LineWidth(w float64) *Stream { return s.op("w", w) }

// Dash sets the dash pattern (d). A solid pattern resets to a continuous line.
func (s *Stream) Dash(p layout.DashPattern) *Stream {
	if p.Solid() {
		s.buf.WriteString("[] 0 d\n")
		return s
	}
	s.buf.WriteString("[" + Num(p.On) + " " + Num(p.Off) + "] 0 d\n")
	return s
}

// Rect appends a rectangle subpath (re).
func (s *Stream) Rect(r layout.Rect) *Stream {
	return s.op("re", r.X0, r.Y0, r.Width(), r.Height())
}

// MoveTo begins a subpath (m).
func (s *Stream) MoveTo(p layout.Point) *Stream { return s.op("m", p.X, p.Y) }

// LineTo appends a straight segment (l).
func (s *Stream) LineTo(p layout.Point) *Stream { return s.op("l", p.X, p.Y) }

// ClosePath closes the current subpath (h).
func (s *Stream) ClosePath() *Stream { return s.op("h") }

// Clip intersects the clipping path with the current path and ends it (W n).
func (s *Stream) Clip() *Stream {
	s.buf.WriteString("W n\n")
	return s
}

// Stroke strokes the current path (S).
func (s *Stream) Stroke() *Stream { return s.op("S") }

// Do paints the named XObject.
func (s *Stream) Do(name string) *Stream {
	s.buf.WriteString("/" + name + " Do\n")
	return s
}

// Text shows a single line of text at origin with the named font resource.
func (s *Stream) Text(font string, size float64, origin layout.Point, text string) *Stream {
	s.buf.WriteString("BT\n/" + font + " " + Num(size) + " Tf\n")
	s.op("Td", origin.X, origin.Y)
	s.buf.WriteString(LiteralString(fontmetrics.WinAnsi(text)) + " Tj\nET\n")
	return s
}

// Raw appends pre-built content.
func (s *Stream) Raw(b []byte) *Stream {
	s.buf.Write(b)
	if len(b) > 0 && b[len(b)-1] != '\n' {
		s.buf.WriteByte('\n')
	}
	return s
}

// Num formats v the way PDF writers usually do: at most four decimals, no
// trailing zeros, no exponent.
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	str := strconv.FormatFloat(v, 'f', 4, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimSuffix(str, ".")
	if str == "-0" {
		return "0"
	}
	return str
}

// LiteralString wraps raw bytes in parentheses, escaping what PDF requires.
func LiteralString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('(')
	for _, c := range b {
		switch c {
		case '(', ')', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c < 0x20 || c > 0x7e {
				sb.WriteString(`\` + strconv.FormatInt(int64(c)|0o1000, 8)[1:])
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
