package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/config"
	"github.com/alnah/go-bbox/internal/fileutil"
	"github.com/alnah/go-bbox/internal/logger"
	"github.com/alnah/go-bbox/internal/metrics"
	"github.com/alnah/go-bbox/internal/storage"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput  = errors.New("no input specified")
	ErrSameFile = errors.New("output would overwrite the input")
)

// defaultConfigName is looked up when neither --config nor BBOX_CONFIG is set.
const defaultConfigName = "bbox"

// runConvert borders one document: resolve settings, show them, confirm,
// process, write.
func runConvert(ctx context.Context, args []string, env *Environment) (err error) {
	start := env.Now()

	flags, positional, err := parseConvertFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	input, output, err := resolvePaths(positional, flags.output)
	if err != nil {
		return err
	}

	src, err := newEnvSource(env, flags.common.envFile)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr, src)
	envCfg := loadEnvConfig(src)

	cfg, cfgPath, err := resolveConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	settings, warnings, err := cfg.Settings()
	if err != nil {
		return err
	}

	log, closeLog, err := logger.Init(loggerOptions(flags, cfg, env))
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	log = log.With().Str("run_id", uuid.NewString()).Logger()
	if cfgPath != "" {
		log.Debug().Str("config", cfgPath).Msg("config loaded")
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	metricsFile := flags.run.metricsFile
	if metricsFile == "" {
		metricsFile = envCfg.MetricsFile
	}
	var rec *metrics.Recorder
	if metricsFile != "" {
		rec = metrics.New()
		rec.AddWarnings(len(warnings))
		defer func() {
			result := "success"
			switch {
			case bbox.IsCancelled(err) || errors.Is(err, ErrDeclined):
				result = "cancelled"
			case err != nil:
				result = "error"
			}
			rec.ObserveRun(result, env.Now().Sub(start))
			if werr := rec.WriteFile(metricsFile); werr != nil {
				log.Warn().Err(werr).Str("file", metricsFile).Msg("writing metrics failed")
			}
		}()
	}

	store := env.Store
	if store == nil {
		store = storage.New(storage.WithLogger(log))
	}
	backend := env.Backend
	if backend == nil {
		backend = bbox.NewPDFBackend(log)
	}

	pdf, err := store.Read(ctx, input)
	if err != nil {
		return err
	}

	var opts []bbox.Option
	opts = append(opts, bbox.WithBackend(backend), bbox.WithLogger(log))
	showProgress := env.Interactive && !flags.common.quiet
	if showProgress {
		opts = append(opts, bbox.WithProgress(newProgressBar(env.Stdout).update))
	}
	proc := bbox.NewProcessor(opts...)

	info, err := proc.Inspect(ctx, pdf)
	if err != nil {
		return err
	}
	pages, _ := bbox.SelectPages(settings.Pages, info.PageCount)
	if len(pages) == 0 {
		return withHint(fmt.Errorf("%w: %q", bbox.ErrNoPagesSelected, settings.Pages), pageRangeHint(info.PageCount))
	}

	if !flags.common.quiet {
		printSettings(env.Stdout, summary{
			input:     input,
			output:    output,
			inputSize: int64(len(pdf)),
			cfg:       cfg,
			settings:  settings,
			info:      info,
			pages:     pages,
			caps:      backend.Capabilities(),
		})
	}

	if cfg.Processing.Confirm && !flags.run.yes {
		if c := confirmerFor(env); c != nil {
			ok, cerr := c.Confirm(env.Stdout)
			if cerr != nil {
				return fmt.Errorf("%w: %v", ErrDeclined, cerr)
			}
			if !ok {
				return ErrDeclined
			}
		} else {
			log.Debug().Msg("no terminal, skipping confirmation")
		}
	}

	var res *bbox.Result
	var procErr error
	written, err := store.Write(ctx, output, func(w io.Writer) error {
		res, procErr = proc.Process(ctx, bbox.Input{PDF: pdf, Settings: settings}, w)
		return procErr
	})
	if procErr != nil {
		// The store wraps callback errors as write failures; the processing
		// error decides the exit code.
		return procErr
	}
	if err != nil {
		return err
	}

	if rec != nil {
		rec.AddPages(res.Decision.Strategy.String(), len(res.Pages))
		rec.AddWarnings(len(res.Warnings))
		rec.SetSizes(int64(len(pdf)), written)
	}

	if !flags.common.quiet {
		printResult(env.Stdout, output, int64(len(pdf)), written, res, env.Now().Sub(start), flags.common.verbose)
	}
	return nil
}

// resolvePaths reads <input> [output] from positional args or --output.
func resolvePaths(positional []string, flagOutput string) (string, string, error) {
	if len(positional) == 0 {
		return "", "", fmt.Errorf("%w: usage: bbox <input.pdf> [output.pdf]", ErrNoInput)
	}
	if len(positional) > 2 {
		return "", "", fmt.Errorf("%w: unexpected arguments %v", ErrUsage, positional[2:])
	}

	input := positional[0]
	output := flagOutput
	if len(positional) == 2 {
		if output != "" && output != positional[1] {
			return "", "", fmt.Errorf("%w: output given twice (%s, %s)", ErrUsage, positional[1], output)
		}
		output = positional[1]
	}
	if output == "" {
		if fileutil.IsRemote(input) {
			return "", "", fmt.Errorf("%w: output path required for remote input %s", ErrUsage, input)
		}
		output = fileutil.DefaultOutputPath(input)
	}
	if fileutil.SamePath(input, output) {
		return "", "", fmt.Errorf("%w: %s", ErrSameFile, output)
	}
	return input, output, nil
}

// resolveConfig loads the named config, or ./bbox.yaml and the user config
// directory when no name is given. Only an explicit name that cannot be found
// is an error.
func resolveConfig(flagName, envName string) (*config.Config, string, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		cfg, path, err := config.LoadConfig(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), "", nil
		}
		return cfg, path, err
	}

	cfg, path, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, "", withHint(fmt.Errorf("loading config: %w", err), configHint(name))
	}
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, path, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	set := flags.changed
	if set == nil {
		set = func(string) bool { return false }
	}

	// Border
	if set("border-style") {
		cfg.Border.Style = flags.border.style
	}
	if set("border-width") {
		cfg.Border.Width = flags.border.width
	}
	if set("border-color") {
		cfg.Border.Color = flags.border.color
	}
	if set("corner-radius") {
		cfg.Border.CornerRadius = flags.border.radius
	}

	// Spacing
	if set("outer") {
		cfg.Spacing.OuterMargin = flags.spacing.outer
	}
	if set("inner") {
		cfg.Spacing.InnerPadding = flags.spacing.inner
	}
	if set("unit") {
		cfg.Spacing.Unit = flags.spacing.unit
	}

	// Quality
	if set("quality") {
		cfg.Quality.Mode = flags.quality.mode
	}
	if set("dpi") {
		cfg.Quality.DPI = flags.quality.dpi
	}
	if flags.quality.noPreserveRatio {
		cfg.Quality.PreserveRatio = false
	}

	// Page numbers
	pn := &cfg.PageNumbers
	if flags.pageNumbers.enabled {
		pn.Enabled = true
	}
	if set("pn-format") {
		pn.Format = flags.pageNumbers.format
		pn.Enabled = true
	}
	if set("pn-position") {
		pn.Position = flags.pageNumbers.position
	}
	if set("pn-location") {
		pn.Location = flags.pageNumbers.location
	}
	if set("pn-font-size") {
		pn.FontSize = flags.pageNumbers.fontSize
	}
	if set("pn-color") {
		pn.FontColor = flags.pageNumbers.fontColor
	}
	if set("pn-font") {
		pn.FontFamily = flags.pageNumbers.font
	}
	if set("pn-start") {
		pn.StartNumber = flags.pageNumbers.start
	}
	if set("pn-skip-first") {
		pn.SkipFirst = flags.pageNumbers.skipFirst
	}
	if set("pn-skip-last") {
		pn.SkipLast = flags.pageNumbers.skipLast
	}

	// Title
	ti := &cfg.Title
	if flags.title.enabled {
		ti.Enabled = true
	}
	if set("title-text") {
		ti.Text = flags.title.text
		ti.Enabled = true
	}
	if set("title-position") {
		ti.Position = flags.title.position
	}
	if set("title-location") {
		ti.Location = flags.title.location
	}
	if set("title-font-size") {
		ti.FontSize = flags.title.fontSize
	}
	if set("title-color") {
		ti.FontColor = flags.title.fontColor
	}
	if set("title-font") {
		ti.FontFamily = flags.title.font
	}
	if flags.title.allPages {
		ti.OnlyFirstPage = false
	}

	// Processing and logging
	if set("pages") {
		cfg.Processing.Pages = flags.run.pages
	}
	if flags.run.yes {
		cfg.Processing.Confirm = false
	}
	if set("log-level") {
		cfg.Logging.Level = flags.run.logLevel
	}
	if set("log-file") {
		cfg.Logging.File = flags.run.logFile
	}

	// Disable flags
	if flags.pageNumbers.disabled {
		pn.Enabled = false
	}
	if flags.title.disabled {
		ti.Enabled = false
	}
}

// loggerOptions derives the console level from -q/-v and the config.
func loggerOptions(flags *convertFlags, cfg *config.Config, env *Environment) logger.Options {
	level := cfg.Logging.Level
	switch {
	case flags.common.verbose:
		level = zerolog.DebugLevel.String()
	case flags.common.quiet:
		level = zerolog.ErrorLevel.String()
	}
	return logger.Options{
		Level:      level,
		Pretty:     true,
		Console:    env.Stderr,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
}

// elapsed formats d for the summary line.
func elapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
