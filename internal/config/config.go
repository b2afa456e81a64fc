// Package config loads and validates the swayblur configuration file.
//
// The configuration is YAML, by default at ~/.config/swayblur/config.yaml:
//
//	blur-strength: 20
//	animation-duration: 10
//	outputs:
//	  eDP-1:
//	    image: ~/Pictures/wallpaper.png
//	    filter: nearest
//	    anchor: center
//	    scaling-mode: fill
//
// Outputs without an image are valid; they simply never animate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default global parameters, applied when the config file omits them.
const (
	DefaultBlurStrength      = 20
	DefaultAnimationDuration = 10
	DefaultLogLevel          = "info"
)

// Output holds the per-monitor wallpaper settings. Filter, Anchor and
// ScalingMode are passed through opaquely to the display sink.
type Output struct {
	Image       string `yaml:"image"`
	Filter      string `yaml:"filter"`
	Anchor      string `yaml:"anchor"`
	ScalingMode string `yaml:"scaling-mode"`
}

// Config represents the full swayblur configuration.
type Config struct {
	BlurStrength      int               `yaml:"blur-strength"`
	AnimationDuration int               `yaml:"animation-duration"`
	LogLevel          string            `yaml:"log-level"`
	StatusPort        int               `yaml:"status-port"`
	Outputs           map[string]Output `yaml:"outputs"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "swayblur", "config.yaml"), nil
}

// Load reads and validates the config file at path. Wallpaper paths are
// home-expanded and checked for readability; a broken output is a fatal
// configuration error, surfaced here before anything subscribes to events.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		BlurStrength:      DefaultBlurStrength,
		AnimationDuration: DefaultAnimationDuration,
		LogLevel:          DefaultLogLevel,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for name, out := range cfg.Outputs {
		if out.Image == "" {
			continue
		}
		expanded, err := expandHome(out.Image)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", name, err)
		}
		out.Image = expanded
		cfg.Outputs[name] = out
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BlurStrength <= 0 {
		return fmt.Errorf("blur-strength must be a positive integer, got %d", c.BlurStrength)
	}
	if c.AnimationDuration <= 0 {
		return fmt.Errorf("animation-duration must be a positive integer, got %d", c.AnimationDuration)
	}
	// The schedule step is blur-strength / animation-duration, truncated. A
	// duration above the strength would make the step zero and the schedule
	// could not increase.
	if c.AnimationDuration > c.BlurStrength {
		return fmt.Errorf("animation-duration (%d) must not exceed blur-strength (%d)",
			c.AnimationDuration, c.BlurStrength)
	}
	if c.StatusPort < 0 || c.StatusPort > 65535 {
		return fmt.Errorf("status-port must be between 0 and 65535, got %d", c.StatusPort)
	}

	for name, out := range c.Outputs {
		if out.Image == "" {
			continue
		}
		f, err := os.Open(out.Image)
		if err != nil {
			return fmt.Errorf("output %s: wallpaper is not readable: %w", name, err)
		}
		f.Close()
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}
