// Package config loads the YAML configuration file and turns it into
// processing settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/fileutil"
	"github.com/alnah/go-bbox/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTextLength    = 500  // title text, page-number format
	MaxPagesLength   = 1000 // page-range expression
	MaxColorLength   = 32   // "rgb(255, 255, 255)" or a color name
	MaxLogPathLength = 4096
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-bbox"

// Config mirrors the YAML file. Colors and enums stay strings here; Settings
// converts and validates them.
type Config struct {
	Border      BorderConfig      `yaml:"border"`
	Spacing     SpacingConfig     `yaml:"spacing"`
	Quality     QualityConfig     `yaml:"quality"`
	PageNumbers PageNumbersConfig `yaml:"page_numbers"`
	Title       TitleConfig       `yaml:"title"`
	Processing  ProcessingConfig  `yaml:"processing"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// BorderConfig defines the frame.
type BorderConfig struct {
	Style        string  `yaml:"style"` // solid, dashed, dotted, rounded
	Width        float64 `yaml:"width"` // points
	Color        string  `yaml:"color"` // name, hex, or "r,g,b" 0-255
	CornerRadius float64 `yaml:"corner_radius"`
}

// SpacingConfig defines margins, in Unit.
type SpacingConfig struct {
	OuterMargin  float64 `yaml:"outer_margin"`
	InnerPadding float64 `yaml:"inner_padding"`
	Unit         string  `yaml:"unit"` // inch, mm, pt
}

// QualityConfig defines how content is carried over.
type QualityConfig struct {
	Mode          string `yaml:"mode"` // original, high, medium, standard
	DPI           int    `yaml:"dpi"`
	PreserveRatio bool   `yaml:"preserve_ratio"`
}

// PageNumbersConfig defines page numbering.
type PageNumbersConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Format      string  `yaml:"format"`   // {n} and {total} placeholders
	Position    string  `yaml:"position"` // e.g. bottom-center
	Location    string  `yaml:"location"` // inside, outside
	FontSize    float64 `yaml:"font_size"`
	FontColor   string  `yaml:"font_color"`
	FontFamily  string  `yaml:"font_family"`
	Margin      float64 `yaml:"margin"` // points
	StartNumber int     `yaml:"start_number"`
	SkipFirst   int     `yaml:"skip_first"`
	SkipLast    int     `yaml:"skip_last"`
}

// TitleConfig defines the title.
type TitleConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Text          string  `yaml:"text"` // empty = document metadata title
	Position      string  `yaml:"position"`
	Location      string  `yaml:"location"`
	FontSize      float64 `yaml:"font_size"`
	FontColor     string  `yaml:"font_color"`
	FontFamily    string  `yaml:"font_family"`
	Margin        float64 `yaml:"margin"`
	OnlyFirstPage bool    `yaml:"only_first_page"`
}

// textConfig is the placement shared by page numbers and title.
type textConfig struct {
	enabled    bool
	position   string
	location   string
	fontSize   float64
	fontColor  string
	fontFamily string
	margin     float64
}

func (p PageNumbersConfig) text() textConfig {
	return textConfig{p.Enabled, p.Position, p.Location, p.FontSize, p.FontColor, p.FontFamily, p.Margin}
}

func (t TitleConfig) text() textConfig {
	return textConfig{t.Enabled, t.Position, t.Location, t.FontSize, t.FontColor, t.FontFamily, t.Margin}
}

// ProcessingConfig defines page selection and prompting.
type ProcessingConfig struct {
	Pages   string `yaml:"pages"`
	Confirm bool   `yaml:"confirm"`
}

// LoggingConfig defines the diagnostic log.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the shipped configuration.
func DefaultConfig() *Config {
	return &Config{
		Border: BorderConfig{
			Style:        "rounded",
			Width:        bbox.DefaultLineWidth,
			Color:        "0,0,0",
			CornerRadius: bbox.DefaultCornerRadius,
		},
		Spacing: SpacingConfig{
			OuterMargin:  0.5,
			InnerPadding: 0.25,
			Unit:         "inch",
		},
		Quality: QualityConfig{
			Mode:          "original",
			DPI:           bbox.DefaultDPI,
			PreserveRatio: true,
		},
		PageNumbers: PageNumbersConfig{
			Format:      bbox.DefaultPageFormat,
			Position:    "bottom-center",
			Location:    "outside",
			FontSize:    10,
			FontColor:   "0,0,0",
			FontFamily:  "Helvetica",
			Margin:      20,
			StartNumber: 1,
		},
		Title: TitleConfig{
			Position:      "top-center",
			Location:      "inside",
			FontSize:      12,
			FontColor:     "0,0,0",
			FontFamily:    "Helvetica-Bold",
			Margin:        25,
			OnlyFirstPage: true,
		},
		Processing: ProcessingConfig{
			Pages:   "all",
			Confirm: true,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks field lengths. Enum and range checks happen in Settings,
// where the values are converted.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"border.color", c.Border.Color, MaxColorLength},
		{"page_numbers.format", c.PageNumbers.Format, MaxTextLength},
		{"page_numbers.font_color", c.PageNumbers.FontColor, MaxColorLength},
		{"title.text", c.Title.Text, MaxTextLength},
		{"title.font_color", c.Title.FontColor, MaxColorLength},
		{"processing.pages", c.Processing.Pages, MaxPagesLength},
		{"logging.file", c.Logging.File, MaxLogPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("logging: rotation limits must not be negative")
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Settings converts the configuration to processing settings. Unparsable
// colors fall back to black and are reported as warnings; every other invalid
// value is an error.
func (c *Config) Settings() (*bbox.Settings, []string, error) {
	var warnings []string
	color := func(field, v string) bbox.Color {
		col, err := bbox.ParseColor(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using black", field, err))
		}
		return col
	}

	unit, err := bbox.ParseUnit(c.Spacing.Unit)
	if err != nil {
		return nil, nil, fmt.Errorf("spacing.unit: %w", err)
	}
	style, err := bbox.ParseBorderStyle(c.Border.Style)
	if err != nil {
		return nil, nil, fmt.Errorf("border.style: %w", err)
	}
	mode, err := bbox.ParseQualityMode(c.Quality.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("quality.mode: %w", err)
	}

	s := &bbox.Settings{
		Border: bbox.BorderSpec{
			Style:        style,
			LineWidth:    c.Border.Width,
			Color:        color("border.color", c.Border.Color),
			CornerRadius: c.Border.CornerRadius,
			OuterMargin:  unit.ToPoints(c.Spacing.OuterMargin),
			InnerPadding: unit.ToPoints(c.Spacing.InnerPadding),
		},
		Quality: bbox.Quality{
			Mode:          mode,
			DPI:           c.Quality.DPI,
			PreserveRatio: c.Quality.PreserveRatio,
		},
		PageNumbers: bbox.PageNumbers{
			Format:      c.PageNumbers.Format,
			StartNumber: c.PageNumbers.StartNumber,
			SkipFirst:   c.PageNumbers.SkipFirst,
			SkipLast:    c.PageNumbers.SkipLast,
		},
		Title: bbox.Title{
			Text:          c.Title.Text,
			OnlyFirstPage: c.Title.OnlyFirstPage,
		},
		Pages: c.Processing.Pages,
	}

	s.PageNumbers.TextPlacement, err = c.PageNumbers.text().placement("page_numbers", color)
	if err != nil {
		return nil, nil, err
	}
	s.Title.TextPlacement, err = c.Title.text().placement("title", color)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	return s, warnings, nil
}

func (t textConfig) placement(field string, color func(field, v string) bbox.Color) (bbox.TextPlacement, error) {
	pos, err := bbox.ParsePosition(t.position)
	if err != nil {
		return bbox.TextPlacement{}, fmt.Errorf("%s.position: %w", field, err)
	}
	loc, err := bbox.ParseLocation(t.location)
	if err != nil {
		return bbox.TextPlacement{}, fmt.Errorf("%s.location: %w", field, err)
	}
	return bbox.TextPlacement{
		Enabled:    t.enabled,
		Position:   pos,
		Location:   loc,
		FontSize:   t.fontSize,
		FontColor:  color(field+".font_color", t.fontColor),
		FontFamily: t.fontFamily,
		Margin:     t.margin,
	}, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name, on top of
// DefaultConfig so partial files are fine.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, string, error) {
	if nameOrPath == "" {
		return nil, "", ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, "", err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, "", fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, configPath, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, configPath, nil
}

// SearchPaths lists where a config name is looked up, in order: the current
// directory, then the user config directory, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
