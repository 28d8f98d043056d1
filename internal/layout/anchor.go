package layout

import (
	"fmt"
	"strings"
)

// HAlign is the horizontal part of a text position.
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical part of a text position.
type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// Position is one of the nine text placements, e.g. "bottom-right".
type Position struct {
	V VAlign
	H HAlign
}

var (
	vNames = map[VAlign]string{AlignTop: "top", AlignBottom: "bottom", AlignMiddle: "center"}
	hNames = map[HAlign]string{AlignLeft: "left", AlignRight: "right", AlignCenter: "center"}
)

func (p Position) String() string {
	v, h := vNames[p.V], hNames[p.H]
	if v == "center" && h == "center" {
		return "center"
	}
	return v + "-" + h
}

// ParsePosition accepts "vertical-horizontal" names such as "top-left",
// "bottom-center" or "center-right", and the bare "center".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "center" || s == "center-center" {
		return Position{V: AlignMiddle, H: AlignCenter}, nil
	}

	vs, hs, ok := strings.Cut(s, "-")
	if !ok {
		return Position{}, fmt.Errorf("position %q: want <top|bottom|center>-<left|right|center>", s)
	}

	var p Position
	switch vs {
	case "top":
		p.V = AlignTop
	case "bottom":
		p.V = AlignBottom
	case "center", "middle":
		p.V = AlignMiddle
	default:
		return Position{}, fmt.Errorf("position %q: unknown vertical part %q", s, vs)
	}
	switch hs {
	case "left":
		p.H = AlignLeft
	case "right":
		p.H = AlignRight
	case "center":
		p.H = AlignCenter
	default:
		return Position{}, fmt.Errorf("position %q: unknown horizontal part %q", s, hs)
	}
	return p, nil
}

// Location says whether text sits inside the border or between the border
// and the page edge.
type Location int

const (
	Inside Location = iota
	Outside
)

func (l Location) String() string {
	if l == Outside {
		return "outside"
	}
	return "inside"
}

// ParseLocation maps "inside" or "outside" to a Location.
func ParseLocation(s string) (Location, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inside":
		return Inside, true
	case "outside":
		return Outside, true
	}
	return Inside, false
}

// TextBox describes where a piece of text should go and how big it is.
type TextBox struct {
	Position    Position
	Location    Location
	Page        Size
	OuterMargin float64
	Width       float64
	Height      float64
	Margin      float64
}

// Anchor returns the baseline origin for the text, bottom-left origin.
// Horizontal centering uses the full page width and vertical centering the
// page mid-line regardless of location.
func Anchor(b TextBox) Point {
	inset := b.Margin
	if b.Location == Inside {
		inset += b.OuterMargin
	}
	left := inset
	right := b.Page.Width - inset
	top := b.Page.Height - inset
	bottom := inset

	var pt Point
	switch b.Position.H {
	case AlignLeft:
		pt.X = left
	case AlignRight:
		pt.X = right - b.Width
	default:
		pt.X = (b.Page.Width - b.Width) / 2
	}
	switch b.Position.V {
	case AlignTop:
		pt.Y = top - b.Height
	case AlignBottom:
		pt.Y = bottom
	default:
		pt.Y = b.Page.Height / 2
	}
	return pt
}
