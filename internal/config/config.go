// Package config loads pdfscout settings from a YAML file and the
// environment. Precedence is defaults, then file, then environment; the CLI
// applies flags on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/logging"
)

// ErrConfigNotFound is returned when an explicitly named config file does
// not exist
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the config file looked for in the working directory
const FileName = "pdfscout.yaml"

// Output formats
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatNull  = "null"
)

// Config holds every setting
type Config struct {
	Roots          []string `yaml:"roots"`
	Detect         string   `yaml:"detect"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
	OneFileSystem  bool     `yaml:"one_file_system"`
	MaxDepth       int      `yaml:"max_depth"`
	Exclude        []string `yaml:"exclude,omitempty"`
	Parallel       bool     `yaml:"parallel"`
	FastWalk       bool     `yaml:"fastwalk"`
	Workers        int      `yaml:"workers"`
	Format         string   `yaml:"format"`
	Canonical      bool     `yaml:"canonical"`
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Detect:         string(detect.ModeExtension),
		FollowSymlinks: true,
		Workers:        8,
		Format:         FormatPlain,
	}
}

// Load builds a Config from defaults, the config file and the environment.
// An empty path loads ./pdfscout.yaml when present; a named path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Config.WithError(err).Warn("ignoring unreadable .env")
	}

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := cfg.loadFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return cfg, err
		}
	} else {
		logging.Config.WithField("path", path).Info("loaded config file")
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadFile overlays the YAML file at path onto c
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	// Relative roots in a config file are relative to the file
	base := filepath.Dir(path)
	for i, root := range c.Roots {
		if root != "" && !filepath.IsAbs(root) {
			c.Roots[i] = filepath.Join(base, root)
		}
	}
	return nil
}

// applyEnv overlays PDFSCOUT_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("PDFSCOUT_ROOTS"); v != "" {
		c.Roots = filepath.SplitList(v)
	}
	c.Detect = envOr("PDFSCOUT_DETECT", c.Detect)
	c.FollowSymlinks = envBool("PDFSCOUT_FOLLOW_SYMLINKS", c.FollowSymlinks)
	c.OneFileSystem = envBool("PDFSCOUT_ONE_FILE_SYSTEM", c.OneFileSystem)
	c.MaxDepth = envInt("PDFSCOUT_MAX_DEPTH", c.MaxDepth)
	if v := os.Getenv("PDFSCOUT_EXCLUDE"); v != "" {
		c.Exclude = splitComma(v)
	}
	c.Parallel = envBool("PDFSCOUT_PARALLEL", c.Parallel)
	c.FastWalk = envBool("PDFSCOUT_FASTWALK", c.FastWalk)
	c.Workers = envInt("PDFSCOUT_WORKERS", c.Workers)
	c.Format = envOr("PDFSCOUT_FORMAT", c.Format)
	c.Canonical = envBool("PDFSCOUT_CANONICAL", c.Canonical)
}

// Validate checks settings that do not depend on the filesystem.
// Roots are validated by the enumerator.
func (c Config) Validate() error {
	if _, err := detect.ParseMode(c.Detect); err != nil {
		return err
	}
	switch c.Format {
	case FormatPlain, FormatJSON, FormatNull:
	default:
		return fmt.Errorf("unknown format %q (want plain, json or null)", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logging.Config.WithField("key", key).Warn("ignoring non-integer value")
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logging.Config.WithField("key", key).Warn("ignoring non-boolean value")
	}
	return fallback
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
