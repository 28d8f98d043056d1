package config

// Notes:
// - LoadConfig by name searches the working directory; those subtests chdir
//   into a temp dir and cannot run in parallel.
// - The user config directory branch is exercised only through SearchPaths.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-bbox"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Shipped defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Border.Style != "rounded" {
		t.Errorf("Border.Style = %q, want rounded", cfg.Border.Style)
	}
	if cfg.Spacing.OuterMargin != 0.5 || cfg.Spacing.InnerPadding != 0.25 || cfg.Spacing.Unit != "inch" {
		t.Errorf("Spacing = %+v, want 0.5/0.25 inch", cfg.Spacing)
	}
	if cfg.Quality.Mode != "original" || cfg.Quality.DPI != 300 || !cfg.Quality.PreserveRatio {
		t.Errorf("Quality = %+v", cfg.Quality)
	}
	if cfg.PageNumbers.Enabled || cfg.Title.Enabled {
		t.Error("text overlays should be disabled by default")
	}
	if cfg.Processing.Pages != "all" || !cfg.Processing.Confirm {
		t.Errorf("Processing = %+v", cfg.Processing)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDefaultConfig_MatchesDefaultSettings(t *testing.T) {
	t.Parallel()

	got, warnings, err := DefaultConfig().Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := bbox.DefaultSettings()
	if got.Border != want.Border {
		t.Errorf("Border = %+v, want %+v", got.Border, want.Border)
	}
	if got.Quality != want.Quality {
		t.Errorf("Quality = %+v, want %+v", got.Quality, want.Quality)
	}
	if got.PageNumbers != want.PageNumbers {
		t.Errorf("PageNumbers = %+v, want %+v", got.PageNumbers, want.PageNumbers)
	}
	if got.Title != want.Title {
		t.Errorf("Title = %+v, want %+v", got.Title, want.Title)
	}
	if got.Pages != want.Pages {
		t.Errorf("Pages = %q, want %q", got.Pages, want.Pages)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength - Length limits
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(*Config) {}, nil},
		{"long title", func(c *Config) { c.Title.Text = strings.Repeat("x", MaxTextLength+1) }, ErrFieldTooLong},
		{"long pages", func(c *Config) { c.Processing.Pages = strings.Repeat("1,", MaxPagesLength) }, ErrFieldTooLong},
		{"long color", func(c *Config) { c.Border.Color = strings.Repeat("f", MaxColorLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("negative rotation limit", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Logging.MaxBackups = -1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfig_Settings - Conversion to processing settings
// ---------------------------------------------------------------------------

func TestConfig_Settings(t *testing.T) {
	t.Parallel()

	t.Run("converts units to points", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			unit  string
			outer float64
			want  float64
		}{
			{"inch", 1, 72},
			{"mm", 25.4, 72},
			{"pt", 20, 20},
		}
		for _, tt := range tests {
			tt := tt
			cfg := DefaultConfig()
			cfg.Spacing.Unit = tt.unit
			cfg.Spacing.OuterMargin = tt.outer
			s, _, err := cfg.Settings()
			if err != nil {
				t.Fatalf("%s: Settings() error = %v", tt.unit, err)
			}
			if diff := s.Border.OuterMargin - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("%s: OuterMargin = %v, want %v", tt.unit, s.Border.OuterMargin, tt.want)
			}
		}
	})

	t.Run("invalid color warns and falls back to black", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Border.Color = "not-a-color"
		cfg.Title.FontColor = "300,0,0"
		s, warnings, err := cfg.Settings()
		if err != nil {
			t.Fatalf("Settings() error = %v", err)
		}
		if s.Border.Color != bbox.Black || s.Title.FontColor != bbox.Black {
			t.Errorf("colors = %v / %v, want black", s.Border.Color, s.Title.FontColor)
		}
		if len(warnings) != 2 {
			t.Fatalf("warnings = %v, want 2", warnings)
		}
		if !strings.HasPrefix(warnings[0], "border.color") || !strings.HasPrefix(warnings[1], "title.font_color") {
			t.Errorf("warnings = %v", warnings)
		}
	})

	t.Run("parses named colors and enums", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Border.Style = "dashed"
		cfg.Border.Color = "navy"
		cfg.Quality.Mode = "high"
		cfg.PageNumbers.Enabled = true
		cfg.PageNumbers.Position = "top-right"
		cfg.PageNumbers.Location = "inside"
		s, _, err := cfg.Settings()
		if err != nil {
			t.Fatalf("Settings() error = %v", err)
		}
		if s.Border.Style != bbox.StyleDashed {
			t.Errorf("Style = %v, want dashed", s.Border.Style)
		}
		if bbox.ColorName(s.Border.Color) != "navy" {
			t.Errorf("Color = %v, want navy", s.Border.Color)
		}
		if s.Quality.Mode != bbox.QualityHigh {
			t.Errorf("Mode = %v, want high", s.Quality.Mode)
		}
		if s.PageNumbers.Location != bbox.Inside || !s.PageNumbers.Enabled {
			t.Errorf("PageNumbers = %+v", s.PageNumbers.TextPlacement)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad unit", func(c *Config) { c.Spacing.Unit = "furlong" }, bbox.ErrInvalidUnit},
		{"bad style", func(c *Config) { c.Border.Style = "wavy" }, bbox.ErrInvalidStyle},
		{"bad quality", func(c *Config) { c.Quality.Mode = "ultra" }, bbox.ErrInvalidQuality},
		{"bad position", func(c *Config) { c.PageNumbers.Position = "middle" }, bbox.ErrInvalidPosition},
		{"bad location", func(c *Config) { c.Title.Location = "above" }, bbox.ErrInvalidLocation},
		{"bad width", func(c *Config) { c.Border.Width = 0 }, bbox.ErrInvalidBorder},
		{"bad dpi for raster", func(c *Config) { c.Quality.Mode = "high"; c.Quality.DPI = 0 }, bbox.ErrInvalidDPI},
		{"bad font", func(c *Config) { c.Title.Enabled = true; c.Title.FontFamily = "Comic Sans" }, bbox.ErrInvalidFont},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, _, err := cfg.Settings()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, _, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `border:
  style: dotted
page_numbers:
  enabled: true
  format: "{n}"
`)

		cfg, got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}
		if cfg.Border.Style != "dotted" {
			t.Errorf("Border.Style = %q, want dotted", cfg.Border.Style)
		}
		if cfg.Border.CornerRadius != 10 {
			t.Errorf("Border.CornerRadius = %v, want default 10", cfg.Border.CornerRadius)
		}
		if !cfg.PageNumbers.Enabled || cfg.PageNumbers.Format != "{n}" {
			t.Errorf("PageNumbers = %+v", cfg.PageNumbers)
		}
		if cfg.PageNumbers.FontFamily != "Helvetica" {
			t.Errorf("PageNumbers.FontFamily = %q, want default Helvetica", cfg.PageNumbers.FontFamily)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "empty.yaml", "\n")
		cfg, _, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Quality.Mode != "original" {
			t.Errorf("Quality.Mode = %q, want original", cfg.Quality.Mode)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, _, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "border: [unclosed")
		_, _, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "border:\n  thickness: 3\n")
		_, _, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "toolong.yaml",
			"title:\n  text: \""+strings.Repeat("a", MaxTextLength+1)+"\"\n")
		_, _, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("name resolves in working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "print.yml", "quality:\n  mode: standard\n")
		chdirForTest(t, dir)

		cfg, path, err := LoadConfig("print")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if path != "print.yml" {
			t.Errorf("path = %q, want print.yml", path)
		}
		if cfg.Quality.Mode != "standard" {
			t.Errorf("Quality.Mode = %q, want standard", cfg.Quality.Mode)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		chdirForTest(t, t.TempDir())

		_, _, err := LoadConfig("nope")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nope.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("bbox")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "bbox.yaml" || paths[1] != "bbox.yml" {
		t.Errorf("local candidates = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDir) {
			t.Errorf("path %q should be under %s", p, AppDir)
		}
	}
}

func TestConfig_Marshal(t *testing.T) {
	t.Parallel()

	data, err := DefaultConfig().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{"border:", "page_numbers:", "only_first_page:", "max_age_days:"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("output missing %q:\n%s", key, data)
		}
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
