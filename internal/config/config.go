// Package config loads lineshell configuration from flags, environment variables,
// .env files and an optional YAML config file.
// Priority (highest to lowest): flags > environment > .env file > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"lineshell/pkg/shelltypes"
)

// EnvPrefix is the prefix of every environment variable read by lineshell.
const EnvPrefix = "LINESHELL"

// Configuration keys. They double as flag names.
const (
	KeyLevel    = "level"
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyPrompt   = "prompt"
	KeyColor    = "color"
	KeyConfig   = "config"
	KeyEnvFile  = "env-file"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective configuration.
type Config struct {
	Level    shelltypes.Level `yaml:"-"`
	LevelRaw string           `yaml:"level"`
	LogLevel string           `yaml:"log-level"`
	LogFile  string           `yaml:"log-file,omitempty"`
	Prompt   string           `yaml:"prompt"`
	Color    string           `yaml:"color"`
	File     string           `yaml:"config,omitempty"`
	EnvFile  string           `yaml:"env-file,omitempty"`
}

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLevel, "info")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyPrompt, "> ")
	v.SetDefault(KeyColor, ColorAuto)
	v.SetDefault(KeyConfig, "")
	v.SetDefault(KeyEnvFile, ".env")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the .env file and config file named by v, then builds and validates
// the Config. A missing .env file is not an error; a missing explicit config file is.
func Load(v *viper.Viper) (*Config, error) {
	if err := loadDotEnv(v.GetString(KeyEnvFile)); err != nil {
		return nil, err
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		LevelRaw: v.GetString(KeyLevel),
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		Prompt:   v.GetString(KeyPrompt),
		Color:    strings.ToLower(v.GetString(KeyColor)),
		File:     v.GetString(KeyConfig),
		EnvFile:  v.GetString(KeyEnvFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv exports the variables of path into the process environment without
// overriding variables that are already set.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks levels and color mode, and fills Level.
func (c *Config) Validate() error {
	level, err := shelltypes.ParseLevel(c.LevelRaw)
	if err != nil {
		return fmt.Errorf("%s: %w", KeyLevel, err)
	}
	c.Level = level
	c.LevelRaw = strings.ToLower(level.String())

	if _, err := shelltypes.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: invalid mode %q (expected auto|always|never)", KeyColor, c.Color)
	}
	return nil
}

// ColorEnabled decides whether severity colors are written to out.
func (c *Config) ColorEnabled(out io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return Profile(out) != termenv.Ascii
	}
}

// Profile returns the color profile of out as detected by termenv.
func Profile(out io.Writer) termenv.Profile {
	return termenv.NewOutput(out).EnvColorProfile()
}

// YAML returns the effective configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
