// Package config loads the function's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

type Config struct {
	Table                string `mapstructure:"table"`
	Region               string `mapstructure:"region"`
	Endpoint             string `mapstructure:"endpoint"`
	SkipSchemaValidation bool   `mapstructure:"skip_schema_validation"`
	LogLevel             string `mapstructure:"log_level"`
	LogFormat            string `mapstructure:"log_format"`
}

// envBindings maps config keys to the environment variables they are read
// from. TABLE is the variable the deployment stack sets on the function.
var envBindings = map[string]string{
	"table":                  "TABLE",
	"region":                 "AWS_REGION",
	"endpoint":               "DYNAMODB_ENDPOINT",
	"skip_schema_validation": "SKIP_SCHEMA_VALIDATION",
	"log_level":              "LOG_LEVEL",
	"log_format":             "LOG_FORMAT",
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("skip_schema_validation", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatJSON)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.LogFormat = strings.ToLower(config.LogFormat)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Table == "" {
		return errors.New("TABLE must be set to the name of the user table")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		return fmt.Errorf("invalid LOG_FORMAT %q, expected %s or %s", c.LogFormat, LogFormatJSON, LogFormatText)
	}

	return nil
}

// NewLogger builds the function logger. JSON output suits CloudWatch Logs;
// text output is meant for local runs.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if c.LogFormat == LogFormatText {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
