package main

// Notes:
// - resolvePaths: positional and --output combinations, default naming,
//   remote inputs, and overwrite protection.
// - mergeFlags: only flags set on the command line override the config;
//   disable flags win over enable flags.
// - resolveConfig: explicit names must exist, the implicit default may not.
// - loggerOptions: -q and -v override the configured level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-bbox/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolvePaths - Input and output selection
// ---------------------------------------------------------------------------

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		positional []string
		flagOutput string
		wantIn     string
		wantOut    string
		wantErr    error
	}{
		{"input only", []string{"doc.pdf"}, "", "doc.pdf", "doc_bordered.pdf", nil},
		{"input and output", []string{"doc.pdf", "out.pdf"}, "", "doc.pdf", "out.pdf", nil},
		{"output flag", []string{"doc.pdf"}, "out.pdf", "doc.pdf", "out.pdf", nil},
		{"same output twice", []string{"doc.pdf", "out.pdf"}, "out.pdf", "doc.pdf", "out.pdf", nil},
		{"s3 output", []string{"doc.pdf", "s3://bucket/out.pdf"}, "", "doc.pdf", "s3://bucket/out.pdf", nil},
		{"remote with output", []string{"https://example.com/a.pdf", "a.pdf"}, "", "https://example.com/a.pdf", "a.pdf", nil},
		{"no input", nil, "", "", "", ErrNoInput},
		{"conflicting outputs", []string{"doc.pdf", "a.pdf"}, "b.pdf", "", "", ErrUsage},
		{"too many", []string{"a.pdf", "b.pdf", "c.pdf"}, "", "", "", ErrUsage},
		{"remote without output", []string{"s3://bucket/a.pdf"}, "", "", "", ErrUsage},
		{"overwrite input", []string{"doc.pdf", "./doc.pdf"}, "", "", "", ErrSameFile},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, out, err := resolvePaths(tt.positional, tt.flagOutput)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in != tt.wantIn || out != tt.wantOut {
				t.Errorf("got (%q, %q), want (%q, %q)", in, out, tt.wantIn, tt.wantOut)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config precedence
// ---------------------------------------------------------------------------

func parseForMerge(t *testing.T, args ...string) *convertFlags {
	t.Helper()
	env, _, _ := testEnv(nil, nil)
	f, _, err := parseConvertFlags(args, env)
	if err != nil {
		t.Fatalf("parseConvertFlags(%v): %v", args, err)
	}
	return f
}

func TestMergeFlags_UnsetFlagsKeepConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Border.Width = 3
	cfg.Spacing.OuterMargin = 1
	cfg.Quality.Mode = "high"

	mergeFlags(parseForMerge(t, "in.pdf"), cfg)

	if cfg.Border.Width != 3 {
		t.Errorf("Border.Width = %v, want 3", cfg.Border.Width)
	}
	if cfg.Spacing.OuterMargin != 1 {
		t.Errorf("Spacing.OuterMargin = %v, want 1", cfg.Spacing.OuterMargin)
	}
	if cfg.Quality.Mode != "high" {
		t.Errorf("Quality.Mode = %q, want high", cfg.Quality.Mode)
	}
}

func TestMergeFlags_ZeroValuesApplyWhenSet(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergeFlags(parseForMerge(t, "--outer", "0", "--inner", "0", "--corner-radius", "0"), cfg)

	if cfg.Spacing.OuterMargin != 0 || cfg.Spacing.InnerPadding != 0 {
		t.Errorf("spacing = %+v, want zero margins", cfg.Spacing)
	}
	if cfg.Border.CornerRadius != 0 {
		t.Errorf("CornerRadius = %v, want 0", cfg.Border.CornerRadius)
	}
}

func TestMergeFlags_Overrides(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	f := parseForMerge(t,
		"--border-style", "dotted",
		"--border-width", "2.5",
		"--border-color", "navy",
		"--unit", "mm",
		"--quality", "medium",
		"--dpi", "150",
		"--no-preserve-ratio",
		"--pn-format", "{n}",
		"--pn-position", "top-right",
		"--pn-start", "5",
		"--title-text", "Report",
		"--title-all-pages",
		"--pages", "1-2",
		"-y",
		"--log-level", "debug",
	)
	mergeFlags(f, cfg)

	checks := []struct {
		name      string
		got, want any
	}{
		{"Border.Style", cfg.Border.Style, "dotted"},
		{"Border.Width", cfg.Border.Width, 2.5},
		{"Border.Color", cfg.Border.Color, "navy"},
		{"Spacing.Unit", cfg.Spacing.Unit, "mm"},
		{"Quality.Mode", cfg.Quality.Mode, "medium"},
		{"Quality.DPI", cfg.Quality.DPI, 150},
		{"Quality.PreserveRatio", cfg.Quality.PreserveRatio, false},
		{"PageNumbers.Enabled", cfg.PageNumbers.Enabled, true},
		{"PageNumbers.Format", cfg.PageNumbers.Format, "{n}"},
		{"PageNumbers.Position", cfg.PageNumbers.Position, "top-right"},
		{"PageNumbers.StartNumber", cfg.PageNumbers.StartNumber, 5},
		{"Title.Enabled", cfg.Title.Enabled, true},
		{"Title.Text", cfg.Title.Text, "Report"},
		{"Title.OnlyFirstPage", cfg.Title.OnlyFirstPage, false},
		{"Processing.Pages", cfg.Processing.Pages, "1-2"},
		{"Processing.Confirm", cfg.Processing.Confirm, false},
		{"Logging.Level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestMergeFlags_DisableWins(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergeFlags(parseForMerge(t, "--page-numbers", "--no-page-numbers", "--title-text", "x", "--no-title"), cfg)

	if cfg.PageNumbers.Enabled {
		t.Error("PageNumbers.Enabled = true, want false")
	}
	if cfg.Title.Enabled {
		t.Error("Title.Enabled = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Explicit and implicit config files
// ---------------------------------------------------------------------------

func TestResolveConfig_ExplicitMissing(t *testing.T) {
	t.Parallel()

	_, _, err := resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if hintFor(err) == "" {
		t.Error("missing config should carry a hint")
	}
}

func TestResolveConfig_FlagBeatsEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.yaml")
	envPath := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(flagPath, []byte("border:\n  width: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("border:\n  width: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := resolveConfig(flagPath, envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != flagPath {
		t.Errorf("path = %q, want %q", path, flagPath)
	}
	if cfg.Border.Width != 4 {
		t.Errorf("Border.Width = %v, want 4", cfg.Border.Width)
	}

	cfg, _, err = resolveConfig("", envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Border.Width != 9 {
		t.Errorf("Border.Width from env config = %v, want 9", cfg.Border.Width)
	}
}

func TestResolveConfig_ImplicitDefault(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := resolveConfig("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	if cfg.Border.Style != config.DefaultConfig().Border.Style {
		t.Errorf("Border.Style = %q, want default", cfg.Border.Style)
	}
}

// ---------------------------------------------------------------------------
// TestLoggerOptions - Console level selection
// ---------------------------------------------------------------------------

func TestLoggerOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"config level", nil, "warn"},
		{"verbose", []string{"-v"}, "debug"},
		{"quiet", []string{"-q"}, "error"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(nil, nil)
			f := parseForMerge(t, tt.args...)
			opts := loggerOptions(f, config.DefaultConfig(), env)
			if opts.Level != tt.want {
				t.Errorf("Level = %q, want %q", opts.Level, tt.want)
			}
			if opts.Console != env.Stderr {
				t.Error("console writer should be env.Stderr")
			}
		})
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
