package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables recognised by ApplyEnvToConfig and ApplyEnvOverrides.
const (
	EnvBaseURL         = "TRACKERMETA_BASE_URL"
	EnvUserAgent       = "TRACKERMETA_USER_AGENT"
	EnvTimeout         = "TRACKERMETA_TIMEOUT"
	EnvAttempts        = "TRACKERMETA_ATTEMPTS"
	EnvRequestInterval = "TRACKERMETA_RATE"
	EnvOffsets         = "TRACKERMETA_OFFSETS"
	EnvFormat          = "TRACKERMETA_FORMAT"
	EnvVerbose         = "VERBOSE"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv(EnvBaseURL)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv(EnvUserAgent)
	}
	if cfg.OffsetsPath == "" {
		cfg.OffsetsPath = os.Getenv(EnvOffsets)
	}
	if cfg.Format == "" {
		cfg.Format = strings.ToLower(os.Getenv(EnvFormat))
	}
	if cfg.Timeout == 0 {
		if d, ok := envDuration(EnvTimeout); ok {
			cfg.Timeout = d
		}
	}
	if cfg.RequestInterval == 0 {
		if d, ok := envDuration(EnvRequestInterval); ok {
			cfg.RequestInterval = d
		}
	}
	if cfg.Attempts == 0 {
		if n, ok := envInt(EnvAttempts); ok {
			cfg.Attempts = n
		}
	}
	if !cfg.Verbose {
		if b, ok := envBool(EnvVerbose); ok {
			cfg.Verbose = b
		}
	}
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This is used to let env take
// precedence over values coming from a config file while still allowing flags
// to remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvOffsets); v != "" {
		cfg.OffsetsPath = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if d, ok := envDuration(EnvTimeout); ok {
		cfg.Timeout = d
	}
	if d, ok := envDuration(EnvRequestInterval); ok {
		cfg.RequestInterval = d
	}
	if n, ok := envInt(EnvAttempts); ok {
		cfg.Attempts = n
	}
	if b, ok := envBool(EnvVerbose); ok {
		cfg.Verbose = b
	}
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
