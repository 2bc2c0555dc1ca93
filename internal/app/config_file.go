package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	BaseURL   string `yaml:"baseURL" json:"baseURL"`
	UserAgent string `yaml:"userAgent" json:"userAgent"`

	Fetch struct {
		Timeout         time.Duration `yaml:"timeout" json:"timeout"`
		Attempts        int           `yaml:"attempts" json:"attempts"`
		RequestInterval time.Duration `yaml:"requestInterval" json:"requestInterval"`
	} `yaml:"fetch" json:"fetch"`

	Offsets string `yaml:"offsets" json:"offsets"`
	Format  string `yaml:"format" json:"format"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their flag default. Flags should already
// have been parsed; this lets file config supply defaults while preserving
// explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.BaseURL == "" || cfg.BaseURL == baseURLDefault) && fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == defaultUserAgent()) && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if (cfg.Timeout == 0 || cfg.Timeout == timeoutDefault) && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if (cfg.Attempts == 0 || cfg.Attempts == attemptsDefault) && fc.Fetch.Attempts != 0 {
		cfg.Attempts = fc.Fetch.Attempts
	}
	if (cfg.RequestInterval == 0 || cfg.RequestInterval == requestIntervalDefault) && fc.Fetch.RequestInterval > 0 {
		cfg.RequestInterval = fc.Fetch.RequestInterval
	}
	if cfg.OffsetsPath == "" && fc.Offsets != "" {
		cfg.OffsetsPath = fc.Offsets
	}
	if (cfg.Format == "" || cfg.Format == formatDefault) && fc.Format != "" {
		cfg.Format = strings.ToLower(fc.Format)
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation of required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return errors.New("config: base URL is required")
	}
	if cfg.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	if cfg.RequestInterval < 0 {
		return errors.New("config: request interval must not be negative")
	}
	if !validFormat(cfg.Format) {
		return fmt.Errorf("config: unknown output format %q (want one of %s)", cfg.Format, strings.Join(Formats, ", "))
	}
	return nil
}
