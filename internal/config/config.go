// Package config loads todoterm configuration.
//
// Values are resolved in priority order:
//  1. Built-in defaults
//  2. Config file ($XDG_CONFIG_HOME/todoterm/config.toml, or --config)
//  3. Environment variables (TODOTERM_STORE_PATH, TODOTERM_LOG_LEVEL, ...)
//  4. CLI flags bound by the caller
//
// Each level overrides the previous one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ihatemodels/todoterm/internal/store"
)

const (
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "TODOTERM"

	// AppName names the config directory.
	AppName = "todoterm"

	// FileName is the config file inside the config directory.
	FileName = "config.toml"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Viper keys.
const (
	KeyConfigFile = "config"
	KeyStorePath  = "store.path"
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
	KeyKeys       = "keys"
)

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`   // debug|info|warn|error
	Format string `toml:"format" mapstructure:"format"` // text|json|logfmt
}

// Config holds all application configuration.
type Config struct {
	// File is the config file that was read, empty if none.
	File        string
	StorePath   string
	Log         LogConfig
	Keybindings *Keybindings
}

// Keys returns the keybindings for convenient access.
func (c *Config) Keys() *Keybindings {
	return c.Keybindings
}

// Dir returns the user-level config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultFile returns the user-level config file path.
func DefaultFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	if path, err := store.DefaultPath(); err == nil {
		v.SetDefault(KeyStorePath, path)
	}
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Prepare registers defaults and environment variables on v without
// reading any config file.
func Prepare(v *viper.Viper) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ConfigFile returns the config file v points at: the explicit one if set,
// otherwise the user-level default.
func ConfigFile(v *viper.Viper) (string, error) {
	if explicit := strings.TrimSpace(v.GetString(KeyConfigFile)); explicit != "" {
		return ExpandPath(explicit), nil
	}
	return DefaultFile()
}

// Load resolves configuration from v. Flags must already be bound to v.
// An explicitly requested config file must exist; the default one may not.
func Load(v *viper.Viper) (*Config, error) {
	Prepare(v)

	explicit := strings.TrimSpace(v.GetString(KeyConfigFile))
	if explicit != "" {
		v.SetConfigFile(ExpandPath(explicit))
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	kb := DefaultKeybindings()
	if err := v.UnmarshalKey(KeyKeys, kb); err != nil {
		return nil, fmt.Errorf("parsing keybindings: %w", err)
	}
	merged := mergeWithDefaults(kb)

	cfg := &Config{
		File:      v.ConfigFileUsed(),
		StorePath: ExpandPath(v.GetString(KeyStorePath)),
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
		Keybindings: &merged,
	}
	if cfg.StorePath == "" {
		return nil, errors.New("store path is empty")
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
