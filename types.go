package bbox

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bbox/internal/fontmetrics"
	"github.com/alnah/go-bbox/internal/layout"
)

// Geometry types shared with the layout engine.
type (
	Size        = layout.Size
	Point       = layout.Point
	Rect        = layout.Rect
	Transform   = layout.Transform
	BorderStyle = layout.BorderStyle
	Position    = layout.Position
	Location    = layout.Location
	Strategy    = layout.Strategy
	PagePlan    = layout.PagePlan
	TextItem    = layout.TextItem
	Path        = layout.Path
)

// Border styles.
const (
	StyleSolid   = layout.StyleSolid
	StyleDashed  = layout.StyleDashed
	StyleDotted  = layout.StyleDotted
	StyleRounded = layout.StyleRounded
)

// Text locations relative to the border.
const (
	Inside  = layout.Inside
	Outside = layout.Outside
)

// Rendering strategies.
const (
	StrategyMerge  = layout.StrategyMerge
	StrategyVector = layout.StrategyVector
	StrategyRaster = layout.StrategyRaster
)

// ParseBorderStyle converts a style name to a BorderStyle.
func ParseBorderStyle(s string) (BorderStyle, error) {
	st, ok := layout.ParseBorderStyle(s)
	if !ok {
		return StyleSolid, fmt.Errorf("%w: %q (must be solid, dashed, dotted, or rounded)", ErrInvalidStyle, s)
	}
	return st, nil
}

// ParsePosition converts a name such as "bottom-center" to a Position.
func ParsePosition(s string) (Position, error) {
	p, err := layout.ParsePosition(s)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return p, nil
}

// ParseLocation converts "inside" or "outside" to a Location.
func ParseLocation(s string) (Location, error) {
	l, ok := layout.ParseLocation(s)
	if !ok {
		return Inside, fmt.Errorf("%w: %q (must be inside or outside)", ErrInvalidLocation, s)
	}
	return l, nil
}

// QualityMode selects how original page content is carried into the output.
type QualityMode int

const (
	// QualityOriginal keeps content as vectors, embedded as a scaled object.
	QualityOriginal QualityMode = iota
	// QualityHigh rasterizes at the configured DPI.
	QualityHigh
	// QualityMedium rasterizes at twice the content scale.
	QualityMedium
	// QualityStandard merges the transformed content stream with the border
	// using only the container library.
	QualityStandard
)

var qualityNames = [...]string{
	QualityOriginal: "original",
	QualityHigh:     "high",
	QualityMedium:   "medium",
	QualityStandard: "standard",
}

func (q QualityMode) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return "unknown"
	}
	return qualityNames[q]
}

// Rasterizes reports whether the mode paints a rendered image.
func (q QualityMode) Rasterizes() bool {
	return q == QualityHigh || q == QualityMedium
}

// ParseQualityMode converts a mode name to a QualityMode.
func ParseQualityMode(s string) (QualityMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range qualityNames {
		if n == name {
			return QualityMode(i), nil
		}
	}
	return QualityOriginal, fmt.Errorf("%w: %q (must be original, high, medium, or standard)", ErrInvalidQuality, s)
}

// Unit is a length unit for margins and padding.
type Unit int

const (
	UnitInch Unit = iota
	UnitMM
	UnitPoint
)

// ToPoints converts v in unit u to PDF points.
func (u Unit) ToPoints(v float64) float64 {
	switch u {
	case UnitMM:
		return v * 72 / 25.4
	case UnitPoint:
		return v
	default:
		return v * 72
	}
}

// FromPoints converts points back to unit u.
func (u Unit) FromPoints(pt float64) float64 {
	return pt / u.ToPoints(1)
}

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitPoint:
		return "pt"
	default:
		return "inch"
	}
}

// ParseUnit converts "inch", "mm" or "pt" to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inch", "in":
		return UnitInch, nil
	case "mm":
		return UnitMM, nil
	case "pt":
		return UnitPoint, nil
	}
	return UnitInch, fmt.Errorf("%w: %q (must be inch, mm, or pt)", ErrInvalidUnit, s)
}

// Default values, matching the shipped configuration.
const (
	DefaultDPI          = 300
	DefaultLineWidth    = 1.0
	DefaultCornerRadius = 10.0
	DefaultOuterMargin  = 36.0 // 0.5 inch
	DefaultInnerPadding = 18.0 // 0.25 inch
	DefaultPageFormat   = "Page {n} of {total}"
	MaxDPI              = 1200
)

// BorderSpec describes the frame drawn on each page. Margins are in points.
type BorderSpec struct {
	Style        BorderStyle
	LineWidth    float64
	Color        Color
	CornerRadius float64
	OuterMargin  float64
	InnerPadding float64
}

// Spacing returns the margins in layout form.
func (b BorderSpec) Spacing() layout.Spacing {
	return layout.Spacing{Outer: b.OuterMargin, Inner: b.InnerPadding}
}

// Validate checks that the border can be drawn.
func (b *BorderSpec) Validate() error {
	if b.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive, got %.2f", ErrInvalidBorder, b.LineWidth)
	}
	if b.OuterMargin < 0 || b.InnerPadding < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidBorder)
	}
	if !b.Color.Valid() {
		return fmt.Errorf("%w: color components must be within [0,1]", ErrInvalidColor)
	}
	return nil
}

// Quality configures how content is carried into the output.
type Quality struct {
	Mode          QualityMode
	DPI           int
	PreserveRatio bool
}

// Validate checks the DPI for raster modes.
func (q *Quality) Validate() error {
	if q.Mode.Rasterizes() && (q.DPI <= 0 || q.DPI > MaxDPI) {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidDPI, q.DPI, MaxDPI)
	}
	return nil
}

// TextPlacement is the shared part of page numbers and titles.
type TextPlacement struct {
	Enabled    bool
	Position   Position
	Location   Location
	FontSize   float64
	FontColor  Color
	FontFamily string
	Margin     float64
}

// Validate checks font and size. Disabled placements are always valid.
func (t *TextPlacement) Validate(field string) error {
	if !t.Enabled {
		return nil
	}
	if t.FontSize <= 0 {
		return fmt.Errorf("%w: %s font size must be positive, got %.2f", ErrInvalidText, field, t.FontSize)
	}
	if t.Margin < 0 {
		return fmt.Errorf("%w: %s margin must not be negative", ErrInvalidText, field)
	}
	if !fontmetrics.IsStandard(t.FontFamily) {
		return fmt.Errorf("%w: %s font %q (must be one of %s)", ErrInvalidFont, field, t.FontFamily,
			strings.Join(fontmetrics.Names(), ", "))
	}
	if !t.FontColor.Valid() {
		return fmt.Errorf("%w: %s color components must be within [0,1]", ErrInvalidColor, field)
	}
	return nil
}

// PageNumbers configures page numbering. Format may contain {n} and {total}.
type PageNumbers struct {
	TextPlacement
	Format      string
	StartNumber int
	SkipFirst   int
	SkipLast    int
}

// Validate checks the numbering settings.
func (p *PageNumbers) Validate() error {
	if err := p.TextPlacement.Validate("page numbers"); err != nil {
		return err
	}
	if p.SkipFirst < 0 || p.SkipLast < 0 {
		return fmt.Errorf("%w: page numbers skip counts must not be negative", ErrInvalidText)
	}
	return nil
}

// Title configures the document title. An empty Text falls back to the
// document's metadata title.
type Title struct {
	TextPlacement
	Text          string
	OnlyFirstPage bool
}

// Settings gathers everything the processor needs for one run.
type Settings struct {
	Border      BorderSpec
	Quality     Quality
	PageNumbers PageNumbers
	Title       Title

	// Pages is a page-range expression, e.g. "1-3,7". Empty means all.
	Pages string
}

// DefaultSettings returns the shipped defaults: a rounded black border half
// an inch from the edge, vector-preserving output, no text.
func DefaultSettings() *Settings {
	return &Settings{
		Border: BorderSpec{
			Style:        StyleRounded,
			LineWidth:    DefaultLineWidth,
			Color:        Black,
			CornerRadius: DefaultCornerRadius,
			OuterMargin:  DefaultOuterMargin,
			InnerPadding: DefaultInnerPadding,
		},
		Quality: Quality{
			Mode:          QualityOriginal,
			DPI:           DefaultDPI,
			PreserveRatio: true,
		},
		PageNumbers: PageNumbers{
			TextPlacement: TextPlacement{
				Position:   Position{V: layout.AlignBottom, H: layout.AlignCenter},
				Location:   Outside,
				FontSize:   10,
				FontFamily: fontmetrics.Helvetica,
				Margin:     20,
			},
			Format:      DefaultPageFormat,
			StartNumber: 1,
		},
		Title: Title{
			TextPlacement: TextPlacement{
				Position:   Position{V: layout.AlignTop, H: layout.AlignCenter},
				Location:   Inside,
				FontSize:   12,
				FontFamily: fontmetrics.HelveticaBold,
				Margin:     25,
			},
			OnlyFirstPage: true,
		},
		Pages: "all",
	}
}

// Validate checks all settings. Returns nil if s is nil (nil means defaults).
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}
	if err := s.Border.Validate(); err != nil {
		return err
	}
	if err := s.Quality.Validate(); err != nil {
		return err
	}
	if err := s.PageNumbers.Validate(); err != nil {
		return err
	}
	return s.Title.TextPlacement.Validate("title")
}
