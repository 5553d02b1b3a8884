package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/shockwave/pkg/shockwave"
)

// Environment variables read by LoadConfig.
const (
	EnvContrast  = "SHOCKWAVE_CONTRAST"
	EnvSharpness = "SHOCKWAVE_SHARPNESS"
	EnvFormat    = "SHOCKWAVE_FORMAT"
	EnvLogLevel  = "SHOCKWAVE_LOG_LEVEL"
)

// Config holds the settings resolved before command-line flags are applied.
type Config struct {
	Params   shockwave.Params
	Format   string // output format name; empty infers it from the output path
	LogLevel string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{Params: shockwave.DefaultParams(), LogLevel: "info"}
}

// LoadConfig starts from DefaultConfig, loads the given .env files (missing files are skipped,
// variables already set in the environment win) and then applies the SHOCKWAVE_* variables.
func LoadConfig(envFiles ...string) (Config, error) {
	cfg := DefaultConfig()
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return cfg, cfg.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvContrast); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: expected a number, got %q", EnvContrast, v)
		}
		c.Params.Contrast = f
	}
	if v, ok := lookup(EnvSharpness); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: expected a number, got %q", EnvSharpness, v)
		}
		c.Params.Sharpness = f
	}
	if v, ok := lookup(EnvFormat); ok && strings.TrimSpace(v) != "" {
		if _, err := shockwave.ParseFormat(v); err != nil {
			return fmt.Errorf("%s: %w", EnvFormat, err)
		}
		c.Format = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	return nil
}
