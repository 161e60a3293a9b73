// Package config loads mirvm.toml, the optional project file holding
// default execution limits and output settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for from the working directory up.
const FileName = "mirvm.toml"

// Config mirrors mirvm.toml.
type Config struct {
	Run    RunConfig    `toml:"run"`
	Output OutputConfig `toml:"output"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type RunConfig struct {
	MaxDepth int  `toml:"max_depth"`
	MaxSteps int  `toml:"max_steps"`
	Jobs     int  `toml:"jobs"`
	Trace    bool `toml:"trace"`
}

type OutputConfig struct {
	Color string `toml:"color"`
	Debug bool   `toml:"debug"`
}

// Default returns the settings used when no mirvm.toml exists.
func Default() Config {
	return Config{
		Run: RunConfig{
			Jobs: runtime.GOMAXPROCS(0),
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Find walks from startDir to the filesystem root looking for mirvm.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes mirvm.toml starting at startDir. Missing files
// yield Default().
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile decodes path over the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.Run.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("[run].max_depth must be >= 0, got %d", c.Run.MaxDepth))
	}
	if c.Run.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("[run].max_steps must be >= 0, got %d", c.Run.MaxSteps))
	}
	if c.Run.Jobs < 1 {
		errs = append(errs, fmt.Errorf("[run].jobs must be >= 1, got %d", c.Run.Jobs))
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color))
	}
	return errors.Join(errs...)
}
