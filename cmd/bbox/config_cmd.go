package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-bbox/internal/config"
)

// runConfigCmd prints the effective configuration: file, then environment.
// Flags of the convert command are not applied.
func runConfigCmd(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	var defaults bool
	addCommonFlags(fs, &common)
	fs.BoolVar(&defaults, "defaults", false, "print the built-in defaults only")
	fs.Usage = func() { printConfigUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	cfg := config.DefaultConfig()
	if !defaults {
		src, err := newEnvSource(env, common.envFile)
		if err != nil {
			return err
		}
		warnUnknownEnvVars(env.Stderr, src)
		envCfg := loadEnvConfig(src)

		var path string
		cfg, path, err = resolveConfig(common.config, envCfg.ConfigPath)
		if err != nil {
			return err
		}
		applyEnvConfig(envCfg, cfg)
		if path != "" && !common.quiet {
			fmt.Fprintf(env.Stdout, "# loaded from %s\n", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, _, err := cfg.Settings(); err != nil {
		return err
	}

	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
