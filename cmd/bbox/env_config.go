package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-bbox/internal/config"
)

const envPrefix = "BBOX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // BBOX_CONFIG: config file name or path
	Quality     string // BBOX_QUALITY: original, high, medium, standard
	DPI         int    // BBOX_DPI: render resolution
	Pages       string // BBOX_PAGES: page range
	Unit        string // BBOX_UNIT: inch, mm, pt
	BorderStyle string // BBOX_BORDER_STYLE
	BorderColor string // BBOX_BORDER_COLOR
	LogLevel    string // BBOX_LOG_LEVEL
	LogFile     string // BBOX_LOG_FILE
	MetricsFile string // BBOX_METRICS_FILE
	Yes         bool   // BBOX_YES: skip the confirmation prompt
}

// knownEnvVars lists valid BBOX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BBOX_CONFIG":       true,
	"BBOX_QUALITY":      true,
	"BBOX_DPI":          true,
	"BBOX_PAGES":        true,
	"BBOX_UNIT":         true,
	"BBOX_BORDER_STYLE": true,
	"BBOX_BORDER_COLOR": true,
	"BBOX_LOG_LEVEL":    true,
	"BBOX_LOG_FILE":     true,
	"BBOX_METRICS_FILE": true,
	"BBOX_YES":          true,
}

// envSource resolves variables from the process environment first, then from
// a dotenv file. The process environment always wins.
type envSource struct {
	getenv  func(string) string
	environ func() []string
	dotenv  map[string]string
}

// newEnvSource reads path with godotenv. A missing file is not an error.
func newEnvSource(env *Environment, path string) (*envSource, error) {
	src := &envSource{getenv: env.Getenv, environ: env.Environ}
	if path == "" {
		return src, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return src, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUsage, path, err)
	}
	src.dotenv = values
	return src, nil
}

func (s *envSource) get(name string) string {
	if v := s.getenv(name); v != "" {
		return v
	}
	return s.dotenv[name]
}

// names returns every BBOX_* variable visible from either source, sorted.
func (s *envSource) names() []string {
	seen := map[string]bool{}
	for _, kv := range s.environ() {
		if strings.HasPrefix(kv, envPrefix) {
			seen[strings.SplitN(kv, "=", 2)[0]] = true
		}
	}
	for k := range s.dotenv {
		if strings.HasPrefix(k, envPrefix) {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized BBOX_* values.
func loadEnvConfig(src *envSource) *envConfig {
	cfg := &envConfig{
		ConfigPath:  src.get("BBOX_CONFIG"),
		Quality:     src.get("BBOX_QUALITY"),
		Pages:       src.get("BBOX_PAGES"),
		Unit:        src.get("BBOX_UNIT"),
		BorderStyle: src.get("BBOX_BORDER_STYLE"),
		BorderColor: src.get("BBOX_BORDER_COLOR"),
		LogLevel:    src.get("BBOX_LOG_LEVEL"),
		LogFile:     src.get("BBOX_LOG_FILE"),
		MetricsFile: src.get("BBOX_METRICS_FILE"),
	}

	if dpi := src.get("BBOX_DPI"); dpi != "" {
		if d, err := strconv.Atoi(dpi); err == nil && d > 0 {
			cfg.DPI = d
		}
	}
	if yes := src.get("BBOX_YES"); yes != "" {
		cfg.Yes, _ = strconv.ParseBool(yes)
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized BBOX_* variables.
// Helps catch typos like BBOX_QUALTY instead of BBOX_QUALITY.
func warnUnknownEnvVars(w io.Writer, src *envSource) {
	for _, name := range src.names() {
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Quality != "" {
		cfg.Quality.Mode = env.Quality
	}
	if env.DPI > 0 {
		cfg.Quality.DPI = env.DPI
	}
	if env.Pages != "" {
		cfg.Processing.Pages = env.Pages
	}
	if env.Unit != "" {
		cfg.Spacing.Unit = env.Unit
	}
	if env.BorderStyle != "" {
		cfg.Border.Style = env.BorderStyle
	}
	if env.BorderColor != "" {
		cfg.Border.Color = env.BorderColor
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Logging.File = env.LogFile
	}
	if env.Yes {
		cfg.Processing.Confirm = false
	}
}
