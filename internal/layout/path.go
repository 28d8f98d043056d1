package layout

import (
	"math"
	"strings"
)

// BorderStyle selects how the border outline is drawn.
type BorderStyle int

const (
	StyleSolid BorderStyle = iota
	StyleDashed
	StyleDotted
	StyleRounded
)

var styleNames = [...]string{
	StyleSolid:   "solid",
	StyleDashed:  "dashed",
	StyleDotted:  "dotted",
	StyleRounded: "rounded",
}

func (s BorderStyle) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// ParseBorderStyle maps a case-insensitive style name to a BorderStyle.
func ParseBorderStyle(name string) (BorderStyle, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range styleNames {
		if n == name {
			return BorderStyle(i), true
		}
	}
	return StyleSolid, false
}

// Rounded-corner approximation constants.
const (
	MaxCornerRadius = 50.0
	ArcSegments     = 10
	arcStepDegrees  = 90.0 / ArcSegments
)

// DashPattern is an on/off stroke pattern in points. The zero value is a
// continuous line.
type DashPattern struct {
	On  float64
	Off float64
}

// Solid reports whether the pattern draws a continuous line.
func (d DashPattern) Solid() bool { return d.On <= 0 || d.Off <= 0 }

// Dash patterns handed to the drawing backend.
var (
	DashedPattern = DashPattern{On: 6, Off: 3}
	DottedPattern = DashPattern{On: 2, Off: 2}
)

// PathKind tells the backend which primitive a Path carries.
type PathKind int

const (
	// PathRect is a single rectangle primitive (Path.Rect).
	PathRect PathKind = iota
	// PathPolyline is a closed chain of straight segments (Path.Segments).
	PathPolyline
)

// Segment is a straight line from From to To.
type Segment struct {
	From, To Point
}

// Path is a closed border outline, always stroked and never filled.
type Path struct {
	Kind      PathKind
	Rect      Rect
	Segments  []Segment
	Dash      DashPattern
	LineWidth float64

	// Radius is the corner radius actually used after clamping; zero for
	// square corners.
	Radius float64
}

// Vertices returns the polyline vertices in drawing order. For a rectangle
// primitive it returns the four corners counter-clockwise from the lower left.
func (p Path) Vertices() []Point {
	if p.Kind == PathRect {
		r := p.Rect
		return []Point{{r.X0, r.Y0}, {r.X1, r.Y0}, {r.X1, r.Y1}, {r.X0, r.Y1}}
	}
	pts := make([]Point, 0, len(p.Segments))
	for _, s := range p.Segments {
		pts = append(pts, s.From)
	}
	return pts
}

// ClampRadius limits a requested corner radius to half the rectangle's
// shorter side and to MaxCornerRadius.
func ClampRadius(r Rect, radius float64) float64 {
	return math.Min(math.Min(radius, r.Width()/2), math.Min(r.Height()/2, MaxCornerRadius))
}

// BuildBorderPath builds the outline for a border rectangle.
func BuildBorderPath(r Rect, style BorderStyle, cornerRadius, lineWidth float64) Path {
	p := Path{Kind: PathRect, Rect: r, LineWidth: lineWidth}

	switch style {
	case StyleDashed:
		p.Dash = DashedPattern
	case StyleDotted:
		p.Dash = DottedPattern
	case StyleRounded:
		if cornerRadius <= 0 {
			return p
		}
		radius := ClampRadius(r, cornerRadius)
		if radius <= 0 {
			return p
		}
		p.Kind = PathPolyline
		p.Radius = radius
		p.Segments = roundedSegments(r, radius)
	}
	return p
}

// roundedSegments walks the rectangle counter-clockwise starting on the
// bottom edge. Each corner is replaced by ArcSegments chords of a circle
// centered at the inset corner.
func roundedSegments(r Rect, radius float64) []Segment {
	segs := make([]Segment, 0, 4+4*ArcSegments)

	corners := []struct {
		edgeFrom, edgeTo Point
		center           Point
		startDeg         float64
	}{
		{Point{r.X0 + radius, r.Y0}, Point{r.X1 - radius, r.Y0}, Point{r.X1 - radius, r.Y0 + radius}, -90},
		{Point{r.X1, r.Y0 + radius}, Point{r.X1, r.Y1 - radius}, Point{r.X1 - radius, r.Y1 - radius}, 0},
		{Point{r.X1 - radius, r.Y1}, Point{r.X0 + radius, r.Y1}, Point{r.X0 + radius, r.Y1 - radius}, 90},
		{Point{r.X0, r.Y1 - radius}, Point{r.X0, r.Y0 + radius}, Point{r.X0 + radius, r.Y0 + radius}, 180},
	}

	for i, c := range corners {
		if c.edgeFrom != c.edgeTo {
			segs = append(segs, Segment{From: c.edgeFrom, To: c.edgeTo})
		}
		next := corners[(i+1)%len(corners)].edgeFrom
		segs = append(segs, arc(c.center, radius, c.startDeg, c.edgeTo, next)...)
	}
	return segs
}

// arc approximates a quarter circle. The first and last points are snapped to
// the adjoining edge endpoints so the outline closes exactly.
func arc(center Point, radius, startDeg float64, first, last Point) []Segment {
	pts := make([]Point, ArcSegments+1)
	for i := range pts {
		rad := (startDeg + float64(i)*arcStepDegrees) * math.Pi / 180
		pts[i] = Point{X: center.X + radius*math.Cos(rad), Y: center.Y + radius*math.Sin(rad)}
	}
	pts[0], pts[ArcSegments] = first, last

	segs := make([]Segment, ArcSegments)
	for i := range segs {
		segs[i] = Segment{From: pts[i], To: pts[i+1]}
	}
	return segs
}
