// Package config reads typenv.toml, the optional project file of the typenv tool
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cottand/typenv/internal/log"
)

const FileName = "typenv.toml"

type Config struct {
	// Root is the directory holding the config file; relative paths are resolved against it
	Root    string        `toml:"-"`
	Log     LogConfig     `toml:"log"`
	Externs ExternsConfig `toml:"externs"`
}

type LogConfig struct {
	// Level is a slog level name, like "debug" or "warn+2"
	Level string `toml:"level"`
	// Sections below warn level to emit; nil keeps the defaults
	Sections []string `toml:"sections"`
}

// ExternsConfig lists the externs loaded when no files are given on the command line
type ExternsConfig struct {
	Dir   string   `toml:"dir"`
	Files []string `toml:"files"`
}

func Default() Config {
	return Config{Log: LogConfig{Level: "warn"}}
}

// Find looks for typenv.toml in startDir and its parents
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
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes the config file at path on top of Default.
// Keys it does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, fmt.Errorf("%s: [log].level: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// LoadFrom finds and loads the config file above startDir, or returns Default when there is none
func LoadFrom(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelWarn, nil
	}
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// ConfigureLogging applies the [log] table to the default logger
func (c Config) ConfigureLogging() error {
	level, err := c.SlogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if c.Log.Sections != nil {
		log.EnableSections(c.Log.Sections...)
	}
	return nil
}

// ExternsDir is the externs directory resolved against Root, or "" when unset
func (c Config) ExternsDir() string {
	if c.Externs.Dir == "" {
		return ""
	}
	return c.resolve(c.Externs.Dir)
}

// ExternsFiles returns the configured externs files resolved against Root
func (c Config) ExternsFiles() []string {
	out := make([]string, 0, len(c.Externs.Files))
	for _, f := range c.Externs.Files {
		out = append(out, c.resolve(f))
	}
	return out
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
