package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oakwood-commons/figpie/internal/config"
	"github.com/oakwood-commons/figpie/pkg/settings"
)

const (
	configFileName = "config"
	configFileType = "yaml"
)

// resolveConfigDir returns $XDG_CONFIG_HOME/figpie, or ~/.config/figpie when
// XDG_CONFIG_HOME is unset.
func resolveConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, settings.CliBinaryName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", settings.CliBinaryName)
	}
	return ""
}

// loadConfig layers the embedded defaults, then the config file, then
// FIGPIE_* environment variables. An explicit path must exist; the file in
// the user config directory is optional.
func loadConfig(explicit string) (config.Config, error) {
	var cfg config.Config

	v := viper.New()
	v.SetConfigType(configFileType)
	if err := v.ReadConfig(bytes.NewReader(config.DefaultYAML())); err != nil {
		return cfg, fmt.Errorf("read default config: %w", err)
	}
	v.SetEnvPrefix(settings.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.MergeInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", explicit, err)
		}
	} else if dir := resolveConfigDir(); dir != "" {
		v.SetConfigName(configFileName)
		v.AddConfigPath(dir)
		if err := v.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if f := flags.Lookup("no-color"); f != nil && f.Changed {
		cfg.UI.NoColor = noColor
	}
	if f := flags.Lookup("tick"); f != nil && f.Changed {
		cfg.UI.Tick = tick
	}
	if f := flags.Lookup("debug-log"); f != nil && f.Changed {
		cfg.Log.File = debugLog
	}
	if debug {
		cfg.Log.Level = -1
	}
}
