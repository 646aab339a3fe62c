// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. DOCFIELDS_OCR_ENABLED.
const EnvPrefix = "DOCFIELDS"

// LogConfig controls the logging adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// OCRConfig controls the OCR fallback path.
type OCRConfig struct {
	Enabled         bool   `mapstructure:"enabled" yaml:"enabled"`
	Binary          string `mapstructure:"binary" yaml:"binary"`
	Language        string `mapstructure:"language" yaml:"language"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxConcurrent   int    `mapstructure:"max_concurrent" yaml:"max_concurrent"`
	MinCharsPerPage int    `mapstructure:"min_chars_per_page" yaml:"min_chars_per_page"`
	WorkDir         string `mapstructure:"work_dir" yaml:"work_dir"`
}

// ExtractionConfig holds the empirically chosen field thresholds.
type ExtractionConfig struct {
	SupplierMinLength int `mapstructure:"supplier_min_length" yaml:"supplier_min_length"`
	SupplierLetterRun int `mapstructure:"supplier_letter_run" yaml:"supplier_letter_run"`
	CustomerMinLength int `mapstructure:"customer_min_length" yaml:"customer_min_length"`
	DispatchMinLength int `mapstructure:"dispatch_min_length" yaml:"dispatch_min_length"`
	MaxContacts       int `mapstructure:"max_contacts" yaml:"max_contacts"`
	// VocabularyFile overrides keyword lists; empty searches for vocabulary.yaml.
	VocabularyFile string `mapstructure:"vocabulary_file" yaml:"vocabulary_file"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Host                  string  `mapstructure:"host" yaml:"host"`
	Port                  int     `mapstructure:"port" yaml:"port"`
	MaxUploadMB           int     `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" yaml:"request_timeout_seconds"`
	RequestsPerSecond     float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst                 int     `mapstructure:"burst" yaml:"burst"`
}

// CacheConfig controls the server-side result cache.
type CacheConfig struct {
	Enabled        bool `mapstructure:"enabled" yaml:"enabled"`
	TTLMinutes     int  `mapstructure:"ttl_minutes" yaml:"ttl_minutes"`
	CleanupMinutes int  `mapstructure:"cleanup_minutes" yaml:"cleanup_minutes"`
}

// BatchConfig controls directory processing.
type BatchConfig struct {
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Format  string `mapstructure:"format" yaml:"format"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	OCR        OCRConfig        `mapstructure:"ocr" yaml:"ocr"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then DOCFIELDS_* environment variables.
// When configFile is empty the usual locations are searched.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.docfields")
		v.AddConfigPath(".docfields")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// File and environment values overlay the defaults.
	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.binary", "ocrmypdf")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.timeout_seconds", 120)
	v.SetDefault("ocr.max_concurrent", 2)
	v.SetDefault("ocr.min_chars_per_page", 30)
	v.SetDefault("ocr.work_dir", "")

	v.SetDefault("extraction.supplier_min_length", 5)
	v.SetDefault("extraction.supplier_letter_run", 3)
	v.SetDefault("extraction.customer_min_length", 3)
	v.SetDefault("extraction.dispatch_min_length", 2)
	v.SetDefault("extraction.max_contacts", 3)
	v.SetDefault("extraction.vocabulary_file", "")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.max_upload_mb", 16)
	v.SetDefault("server.request_timeout_seconds", 180)
	v.SetDefault("server.requests_per_second", 5.0)
	v.SetDefault("server.burst", 10)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("cache.cleanup_minutes", 60)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.format", "json")
}

var batchFormats = map[string]bool{"json": true, "yaml": true, "csv": true, "xlsx": true}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.OCR.Enabled && config.OCR.Binary == "" {
		return fmt.Errorf("ocr.binary required when OCR is enabled")
	}

	if config.OCR.TimeoutSeconds < 1 || config.OCR.TimeoutSeconds > 3600 {
		return fmt.Errorf("ocr.timeout_seconds must be between 1 and 3600, got: %d", config.OCR.TimeoutSeconds)
	}

	if config.OCR.MaxConcurrent < 1 {
		return fmt.Errorf("ocr.max_concurrent must be at least 1, got: %d", config.OCR.MaxConcurrent)
	}

	if config.OCR.MinCharsPerPage < 0 {
		return fmt.Errorf("ocr.min_chars_per_page must not be negative, got: %d", config.OCR.MinCharsPerPage)
	}

	if config.Extraction.MaxContacts < 1 {
		return fmt.Errorf("extraction.max_contacts must be at least 1, got: %d", config.Extraction.MaxContacts)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be at least 1, got: %d", config.Server.MaxUploadMB)
	}

	if config.Server.RequestsPerSecond <= 0 {
		return fmt.Errorf("server.requests_per_second must be positive, got: %f", config.Server.RequestsPerSecond)
	}

	if config.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got: %d", config.Batch.Workers)
	}

	if !batchFormats[config.Batch.Format] {
		return fmt.Errorf("invalid batch format: %s (must be json, yaml, csv or xlsx)", config.Batch.Format)
	}

	return nil
}
