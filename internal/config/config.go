// Package config resolves icon-extract settings from the environment and the
// command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/ironsheep/icon-extract/internal/icon"
)

// envConfig holds the environment-backed defaults. Flags override them.
type envConfig struct {
	TargetHex string  `env:"ICON_EXTRACT_TARGET_HEX" envDefault:"#FFB300"`
	Threshold float64 `env:"ICON_EXTRACT_THRESHOLD" envDefault:"250"`
	Margin    int     `env:"ICON_EXTRACT_MARGIN" envDefault:"20"`
	MaxSize   int     `env:"ICON_EXTRACT_MAX_SIZE" envDefault:"0"`
	LogLevel  string  `env:"ICON_EXTRACT_LOG_LEVEL" envDefault:"info"`
}

// Config is the fully resolved configuration for one run.
type Config struct {
	InputPath  string
	OutputPath string
	Options    icon.Options
	Debug      bool
}

// ParseEnv loads environment defaults only. The server uses it, since it
// takes no positional arguments.
func ParseEnv() (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg := Config{
		Options: icon.Options{
			TargetHex: envCfg.TargetHex,
			Threshold: envCfg.Threshold,
			Margin:    envCfg.Margin,
			MaxSize:   envCfg.MaxSize,
		},
		Debug: strings.EqualFold(envCfg.LogLevel, "debug"),
	}
	return cfg, cfg.validate()
}

// ParseConfig resolves configuration from the environment, then applies flags
// and the positional <input> <output> arguments from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Options.TargetHex, "color", cfg.Options.TargetHex, "target color as #RRGGBB (default: ICON_EXTRACT_TARGET_HEX or #FFB300)")
	fs.Float64Var(&cfg.Options.Threshold, "threshold", cfg.Options.Threshold, "pixels with (R+G+B)/3 below this are icon content (default: ICON_EXTRACT_THRESHOLD or 250)")
	fs.IntVar(&cfg.Options.Margin, "margin", cfg.Options.Margin, "padding in pixels around the detected content (default: ICON_EXTRACT_MARGIN or 20)")
	fs.IntVar(&cfg.Options.MaxSize, "max-size", cfg.Options.MaxSize, "downscale the icon so neither side exceeds this (0 = keep size)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() != 2 {
		return Config{}, fmt.Errorf("expected <input> <output>, got %d argument(s)", fs.NArg())
	}
	cfg.InputPath = fs.Arg(0)
	cfg.OutputPath = fs.Arg(1)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Options.Margin < 0 {
		return errors.New("margin must be non-negative")
	}
	if c.Options.MaxSize < 0 {
		return errors.New("max-size must be non-negative")
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
