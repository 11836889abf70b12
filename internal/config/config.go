// Package config loads gonifti settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the gonifti configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Read    ReadConfig    `mapstructure:"read" yaml:"read"`
}

// LoggingConfig controls the logrus logger.
type LoggingConfig struct {
	// Level is the minimum level logged.
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error" yaml:"level"`

	// Format is "text" or "json".
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
}

// OutputConfig controls how headers are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=text table json yaml" yaml:"format"`
}

// ReadConfig controls how much of a file is read.
type ReadConfig struct {
	// Limit is the number of leading bytes read from a file.
	Limit int64 `mapstructure:"limit" validate:"gte=4" yaml:"limit"`
}

// Defaults.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultOutputFormat = "text"
	DefaultReadLimit    = 1024
)

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (GONIFTI_*)
//  2. Configuration file
//  3. Default values
//
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// setupViper configures viper with environment variables, defaults and the
// config file location.
func setupViper(v *viper.Viper, configPath string) {
	// Example: GONIFTI_LOGGING_LEVEL=debug
	v.SetEnvPrefix("GONIFTI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("read.limit", DefaultReadLimit)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "gonifti"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}
