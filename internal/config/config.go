// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by MergeWithDefaults(Defaults()).
const (
	DefaultDataDir               = "data"
	DefaultPort                  = "8080"
	DefaultCorrectionProvider    = "languagetool"
	DefaultLanguageToolURL       = "https://api.languagetoolplus.com"
	DefaultCorrectionTimeout     = "10s"
	DefaultCorrectionConcurrency = 4
	DefaultGradient              = "auto"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Storage
	DataDir     string `json:"data_dir,omitempty"`     // Directory holding resumes.json and generated PDFs
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; replaces resumes.json when set

	// Correction
	CorrectionProvider    string `json:"correction_provider,omitempty"`    // languagetool, gemini or none
	LanguageToolURL       string `json:"languagetool_url,omitempty"`       // LanguageTool server base URL
	LanguageToolUsername  string `json:"languagetool_username,omitempty"`  // LanguageTool premium username
	LanguageToolAPIKey    string `json:"languagetool_api_key,omitempty"`   // LanguageTool premium API key
	GeminiAPIKey          string `json:"gemini_api_key,omitempty"`         // Gemini API key
	GeminiModel           string `json:"gemini_model,omitempty"`           // Overrides the Gemini model
	CorrectionTimeout     string `json:"correction_timeout,omitempty"`     // Per-request timeout, e.g. "10s"
	CorrectionConcurrency int    `json:"correction_concurrency,omitempty"` // Parallel correction requests

	// Rendering
	Gradient string `json:"gradient,omitempty"` // auto, on or off

	// Server
	Port string `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields empty. LT_USERNAME and LT_API_KEY are accepted as aliases for
// the LanguageTool credentials.
func FromEnv() Config {
	cfg := Config{
		DataDir:              os.Getenv("DATA_DIR"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		CorrectionProvider:   os.Getenv("CORRECTION_PROVIDER"),
		LanguageToolURL:      os.Getenv("LANGUAGETOOL_URL"),
		LanguageToolUsername: firstEnv("LANGUAGETOOL_USERNAME", "LT_USERNAME"),
		LanguageToolAPIKey:   firstEnv("LANGUAGETOOL_API_KEY", "LT_API_KEY"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          os.Getenv("GEMINI_MODEL"),
		CorrectionTimeout:    os.Getenv("CORRECTION_TIMEOUT"),
		Gradient:             os.Getenv("GRADIENT"),
		Port:                 os.Getenv("PORT"),
	}
	if n, err := strconv.Atoi(os.Getenv("CORRECTION_CONCURRENCY")); err == nil {
		cfg.CorrectionConcurrency = n
	}
	return cfg
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:               DefaultDataDir,
		CorrectionProvider:    DefaultCorrectionProvider,
		LanguageToolURL:       DefaultLanguageToolURL,
		CorrectionTimeout:     DefaultCorrectionTimeout,
		CorrectionConcurrency: DefaultCorrectionConcurrency,
		Gradient:              DefaultGradient,
		Port:                  DefaultPort,
	}
}

// Validate checks that the configuration has valid values.
// Empty fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	switch strings.ToLower(c.CorrectionProvider) {
	case "", "languagetool", "gemini", "none":
	default:
		return fmt.Errorf("config error: 'correction_provider' must be one of languagetool, gemini, none (got %q)", c.CorrectionProvider)
	}

	switch strings.ToLower(c.Gradient) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("config error: 'gradient' must be one of auto, on, off (got %q)", c.Gradient)
	}

	if c.CorrectionTimeout != "" {
		d, err := time.ParseDuration(c.CorrectionTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'correction_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'correction_timeout' must be positive")
		}
	}

	if c.CorrectionConcurrency < 0 {
		return fmt.Errorf("config error: 'correction_concurrency' must be non-negative")
	}

	if c.Port != "" {
		if p, err := strconv.Atoi(c.Port); err != nil || p < 0 || p > 65535 {
			return fmt.Errorf("config error: invalid 'port': %s", c.Port)
		}
	}

	if strings.EqualFold(c.CorrectionProvider, "gemini") && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required when correction_provider is gemini")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Chained calls give the receiver the highest precedence.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.DataDir, defaults.DataDir)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.CorrectionProvider, defaults.CorrectionProvider)
	fill(&result.LanguageToolURL, defaults.LanguageToolURL)
	fill(&result.LanguageToolUsername, defaults.LanguageToolUsername)
	fill(&result.LanguageToolAPIKey, defaults.LanguageToolAPIKey)
	fill(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	fill(&result.GeminiModel, defaults.GeminiModel)
	fill(&result.CorrectionTimeout, defaults.CorrectionTimeout)
	fill(&result.Gradient, defaults.Gradient)
	fill(&result.Port, defaults.Port)

	// Int fields: use default if zero
	if result.CorrectionConcurrency == 0 {
		result.CorrectionConcurrency = defaults.CorrectionConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout returns the parsed correction timeout, or zero if it is unset or
// invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.CorrectionTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Resolve layers file, environment and built-in defaults under c and
// validates the result. An empty path skips the file.
func (c *Config) Resolve(path string) (Config, error) {
	result := *c
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		result = result.MergeWithDefaults(*fileCfg)
	}
	result = result.MergeWithDefaults(FromEnv())
	result = result.MergeWithDefaults(Defaults())

	if err := result.Validate(); err != nil {
		return Config{}, err
	}
	return result, nil
}

// ResumeDir is where generated PDFs are written.
func (c *Config) ResumeDir() string {
	return filepath.Join(c.DataDir, "resumes")
}
