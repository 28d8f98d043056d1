package bbox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-bbox/internal/layout"
)

// Color is an RGB triple with components in [0,1].
type Color = layout.Color

// Black is the fallback for colors that cannot be parsed.
var Black = Color{}

// namedHex holds the canonical color names. Aliases map onto these in
// colorAliases so that ColorName is stable.
var namedHex = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"lime":      "#00ff00",
	"blue":      "#0000ff",
	"navy":      "#000080",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"gray":      "#808080",
	"silver":    "#c0c0c0",
	"darkgray":  "#a9a9a9",
	"lightgray": "#d3d3d3",
	"maroon":    "#800000",
	"olive":     "#808000",
	"purple":    "#800080",
	"teal":      "#008080",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"gold":      "#ffd700",
	"pink":      "#ffc0cb",
}

var colorAliases = map[string]string{
	"grey":      "gray",
	"darkgrey":  "darkgray",
	"lightgrey": "lightgray",
	"aqua":      "cyan",
	"fuchsia":   "magenta",
}

var (
	namedColors = make(map[string]Color, len(namedHex))
	colorNames  = make(map[Color]string, len(namedHex))
)

func init() {
	for name, hex := range namedHex {
		c, err := parseHex(hex[1:])
		if err != nil {
			panic("bbox: bad named color " + name)
		}
		namedColors[name] = c
		colorNames[c] = name
	}
}

// ParseColor reads a color given as a name ("navy"), a hex string ("#336699",
// "#369" or "336699") or a comma-separated 0-255 triple ("51,102,153",
// optionally wrapped in "rgb(...)"). Invalid input yields Black and an error
// wrapping ErrInvalidColor; callers treat that as a warning.
func ParseColor(s string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return Black, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	if alias, ok := colorAliases[in]; ok {
		in = alias
	}
	if c, ok := namedColors[in]; ok {
		return c, nil
	}

	if strings.Contains(in, ",") {
		c, err := parseTriple(in)
		if err != nil {
			return Black, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return c, nil
	}

	c, err := parseHex(strings.TrimPrefix(in, "#"))
	if err != nil {
		return Black, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return c, nil
}

// ColorName returns the canonical name of c, or "" if c is not a named color.
func ColorName(c Color) string {
	return colorNames[c]
}

// ColorNames returns the recognized color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedHex))
	for n := range namedHex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseHex(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Black, fmt.Errorf("want 3 or 6 hex digits")
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("not a hex number")
	}
	return rgb255(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)), nil
}

func parseTriple(s string) (Color, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Black, fmt.Errorf("want three components, got %d", len(parts))
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Black, fmt.Errorf("component %d is not an integer", i+1)
		}
		if n < 0 || n > 255 {
			return Black, fmt.Errorf("component %d out of range 0-255", i+1)
		}
		v[i] = n
	}
	return rgb255(v[0], v[1], v[2]), nil
}

func rgb255(r, g, b int) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
