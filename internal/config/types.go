// Package config defines the figpie configuration file and its embedded
// defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedOnce   sync.Once
	embeddedConfig Config
	embeddedErr    error
)

// ErrInvalid marks a configuration that parsed but cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the merged figpie configuration: embedded defaults, then the
// config file, then FIGPIE_* environment variables, then flags.
type Config struct {
	UI   UIConfig   `mapstructure:"ui" yaml:"ui"`
	Keys KeysConfig `mapstructure:"keys" yaml:"keys"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

// UIConfig controls the interactive menu.
type UIConfig struct {
	Tick    time.Duration `mapstructure:"tick" yaml:"tick"`
	NoColor bool          `mapstructure:"no_color" yaml:"no_color"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
}

// ThemeConfig holds ANSI-256 or hex colors. Empty fields keep the default.
type ThemeConfig struct {
	Accent   string `mapstructure:"accent" yaml:"accent"`
	Key      string `mapstructure:"key" yaml:"key"`
	Value    string `mapstructure:"value" yaml:"value"`
	Dim      string `mapstructure:"dim" yaml:"dim"`
	Status   string `mapstructure:"status" yaml:"status"`
	Error    string `mapstructure:"error" yaml:"error"`
	Success  string `mapstructure:"success" yaml:"success"`
	Footer   string `mapstructure:"footer" yaml:"footer"`
	HeaderBG string `mapstructure:"header_bg" yaml:"header_bg"`
}

// KeysConfig names the reserved action keys.
type KeysConfig struct {
	Back string `mapstructure:"back" yaml:"back"`
	Quit string `mapstructure:"quit" yaml:"quit"`
}

// LogConfig selects the debug log. An empty File disables it.
type LogConfig struct {
	Level int8   `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded defaults once.
func Default() (Config, error) {
	embeddedOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedErr
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.UI.Tick <= 0 {
		return fmt.Errorf("%w: ui.tick must be positive, got %s", ErrInvalid, c.UI.Tick)
	}
	if c.Keys.Back == "" || c.Keys.Quit == "" {
		return fmt.Errorf("%w: keys.back and keys.quit must be set", ErrInvalid)
	}
	if c.Keys.Back == c.Keys.Quit {
		return fmt.Errorf("%w: keys.back and keys.quit are both %q", ErrInvalid, c.Keys.Back)
	}
	return nil
}
