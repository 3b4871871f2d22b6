// Package config handles configuration loading and validation for tandem.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/tandemhq/tandem/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	// GitPath is the git executable used by the diff backend.
	GitPath string `yaml:"git_path"`
	// Ignore lists glob patterns (doublestar syntax) for paths excluded
	// from the changed-file list, e.g. "vendor/**" or "*.lock".
	Ignore []string `yaml:"ignore"`
	// Theme selects a built-in color palette.
	Theme  string       `yaml:"theme"`
	Scroll ScrollConfig `yaml:"scroll"`
	Loader LoaderConfig `yaml:"loader"`
	// CommentLineWidth is the max width comments wrap to in the comment
	// lane.
	CommentLineWidth int `yaml:"comment_line_width"`
	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// ScrollConfig tunes the scroll synchronization engine.
type ScrollConfig struct {
	// AnchorFraction is the viewport fraction used as the sync reference
	// point. Must be in (0, 1).
	AnchorFraction float64 `yaml:"anchor_fraction"`
	// ApplyThresholdPx suppresses corrective scrolls below this size.
	ApplyThresholdPx float64 `yaml:"apply_threshold_px"`
	// EchoWindowPx is the tolerance for recognizing programmatic echoes.
	EchoWindowPx float64 `yaml:"echo_window_px"`
	// QuietPeriodMS is how long one pane holds scroll authority after its
	// last event.
	QuietPeriodMS int `yaml:"quiet_period_ms"`
}

// QuietPeriod returns the quiet period as a duration.
func (s ScrollConfig) QuietPeriod() time.Duration {
	return time.Duration(s.QuietPeriodMS) * time.Millisecond
}

// LoaderConfig tunes progressive alignment loading.
type LoaderConfig struct {
	// BatchSize is the number of alignments revealed per idle batch.
	BatchSize int `yaml:"batch_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitPath: "git",
		Theme:   "tokyo-night",
		Scroll: ScrollConfig{
			AnchorFraction:   1.0 / 3.0,
			ApplyThresholdPx: 2,
			EchoWindowPx:     3,
			QuietPeriodMS:    150,
		},
		Loader: LoaderConfig{
			BatchSize: 20,
		},
		CommentLineWidth: 80,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tandem", "config.yml")
}

// Load reads configuration from the given path, merged over defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	if c.Scroll.AnchorFraction <= 0 || c.Scroll.AnchorFraction >= 1 {
		return fmt.Errorf("scroll.anchor_fraction must be in (0, 1), got %v", c.Scroll.AnchorFraction)
	}
	if c.Scroll.ApplyThresholdPx < 0 {
		return fmt.Errorf("scroll.apply_threshold_px must be >= 0")
	}
	if c.Scroll.EchoWindowPx < 0 {
		return fmt.Errorf("scroll.echo_window_px must be >= 0")
	}
	if c.Scroll.QuietPeriodMS < 0 {
		return fmt.Errorf("scroll.quiet_period_ms must be >= 0")
	}
	if c.Loader.BatchSize <= 0 {
		return fmt.Errorf("loader.batch_size must be > 0")
	}
	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

// Ignored reports whether a path matches any ignore pattern.
func (c Config) Ignored(path string) bool {
	for _, pattern := range c.Ignore {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
