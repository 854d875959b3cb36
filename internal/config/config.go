// Package config loads thaiemotion settings from a YAML file, a .env file
// and THAIEMOTION_* environment variables, in that order of precedence from
// lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/thaiemotion"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THAIEMOTION_"

// Model kinds.
const (
	ModelNone   = ""
	ModelMaxent = "maxent"
	ModelVader  = "vader"
)

// ErrInvalidConfig is returned when validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete command configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Model    ModelConfig    `yaml:"model"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// AnalysisConfig holds the analyzer settings.
type AnalysisConfig struct {
	Mode            string  `yaml:"mode" validate:"oneof=single multi"`
	Threshold       float64 `yaml:"threshold" validate:"gte=0,lte=1"`
	UseModel        bool    `yaml:"use_model"`
	Workers         int     `yaml:"workers" validate:"gte=0"`
	TextField       string  `yaml:"text_field" validate:"required"`
	PatternFile     string  `yaml:"pattern_file"`
	DedupeThreshold float64 `yaml:"dedupe_threshold" validate:"gt=0,lte=1"`
	NegationGuard   bool    `yaml:"negation_guard"`
}

// ModelConfig selects the external sentiment model.
type ModelConfig struct {
	Kind string `yaml:"kind" validate:"omitempty,oneof=maxent vader"`
	Path string `yaml:"path" validate:"required_if=Kind maxent"`
}

// LoggingConfig holds logrus settings.
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format     string `yaml:"format" validate:"oneof=json text"`
	OutputFile string `yaml:"output_file"`
}

// MetricsConfig holds the Prometheus endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Mode:            string(thaiemotion.Single),
			Threshold:       thaiemotion.DefaultThreshold,
			TextField:       "text",
			DedupeThreshold: thaiemotion.DefaultDedupeThreshold,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. A missing file at path leaves the
// defaults in place; an empty path skips the file.
func Load(path string, logger *logrus.Logger) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.WithField("path", path).Debug("Config file not found, using defaults")
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config file %s: %w", path, err)
			}
			logger.WithField("path", path).Debug("Loaded config file")
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			logger.WithError(err).Warn("Failed to load .env file")
		} else {
			logger.Debug("Loaded .env file")
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	a := &c.Analysis
	a.Mode = getEnv("MODE", a.Mode)
	a.Threshold = getEnvFloat("THRESHOLD", a.Threshold)
	a.UseModel = getEnvBool("USE_MODEL", a.UseModel)
	a.Workers = getEnvInt("WORKERS", a.Workers)
	a.TextField = getEnv("TEXT_FIELD", a.TextField)
	a.PatternFile = getEnv("PATTERN_FILE", a.PatternFile)
	a.DedupeThreshold = getEnvFloat("DEDUPE_THRESHOLD", a.DedupeThreshold)
	a.NegationGuard = getEnvBool("NEGATION_GUARD", a.NegationGuard)

	c.Model.Kind = getEnv("MODEL", c.Model.Kind)
	c.Model.Path = getEnv("MODEL_PATH", c.Model.Path)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.OutputFile = getEnv("LOG_OUTPUT_FILE", c.Logging.OutputFile)

	c.Metrics.Addr = getEnv("METRICS_ADDR", c.Metrics.Addr)
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// AnalyzerConfig returns the analyzer part of the configuration.
func (c *Config) AnalyzerConfig() thaiemotion.Config {
	return thaiemotion.Config{
		Mode:      thaiemotion.Mode(c.Analysis.Mode),
		Threshold: c.Analysis.Threshold,
		UseModel:  c.Analysis.UseModel,
		Workers:   c.Analysis.Workers,

		NegationGuard: c.Analysis.NegationGuard,
	}
}

// ToOptions loads the pattern file and model the configuration names and
// returns the matching analyzer options. reg may be nil to skip metrics.
func (c *Config) ToOptions(logger *logrus.Logger, reg prometheus.Registerer) ([]thaiemotion.Option, error) {
	opts := []thaiemotion.Option{thaiemotion.WithLogger(logger)}
	if reg != nil {
		opts = append(opts, thaiemotion.WithMetrics(reg))
	}

	if c.Analysis.PatternFile != "" {
		pt, err := thaiemotion.LoadPatternFile(c.Analysis.PatternFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, thaiemotion.WithPatternTable(pt))
	}

	switch c.Model.Kind {
	case ModelMaxent:
		m, err := thaiemotion.LoadMaxentModel(c.Model.Path)
		if err != nil {
			return nil, fmt.Errorf("loading maxent model: %w", err)
		}
		opts = append(opts, thaiemotion.WithModel(m))
	case ModelVader:
		opts = append(opts, thaiemotion.WithModel(thaiemotion.NewVaderModel()))
	}
	return opts, nil
}

// ApplyLogging configures logger from the logging section.
func (c *Config) ApplyLogging(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", c.Logging.Level, err)
	}
	logger.SetLevel(level)

	if c.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	}

	if c.Logging.OutputFile != "" {
		f, err := os.OpenFile(c.Logging.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", c.Logging.OutputFile, err)
		}
		logger.SetOutput(f)
	} else {
		logger.SetOutput(os.Stderr)
	}
	return nil
}

// Helper function to get an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Helper function to get a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}

	switch strings.ToLower(value) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	default:
		return defaultValue
	}
}

// Helper function to get an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable and converts it to float64
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}
