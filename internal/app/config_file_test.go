package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	p := writeFile(t, "trackermeta.yaml", `
baseURL: http://mirror.example
fetch:
  timeout: 15s
  attempts: -1
  requestInterval: 1s
offsets: offsets.yaml
format: csv
`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.BaseURL != "http://mirror.example" || fc.Fetch.Timeout != 15*time.Second || fc.Fetch.Attempts != -1 {
		t.Fatalf("unexpected file config %+v", fc)
	}
	if fc.Fetch.RequestInterval != time.Second || fc.Offsets != "offsets.yaml" || fc.Format != "csv" {
		t.Fatalf("unexpected file config %+v", fc)
	}
}

func TestLoadConfigFile_JSONAndUnknownExtension(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.conf"} {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, name, `{"baseURL": "http://json.example", "format": "yaml"}`)
			fc, err := LoadConfigFile(p)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if fc.BaseURL != "http://json.example" || fc.Format != "yaml" {
				t.Fatalf("unexpected file config %+v", fc)
			}
		})
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	p := writeFile(t, "bad.yaml", "fetch: [unclosed")
	if _, err := LoadConfigFile(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	var fc FileConfig
	fc.BaseURL = "http://file.example"
	fc.Fetch.Timeout = 10 * time.Second
	fc.Fetch.Attempts = 4
	fc.Format = "JSON"

	// Defaults are replaced by file values.
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	if cfg.BaseURL != "http://file.example" || cfg.Timeout != 10*time.Second || cfg.Attempts != 4 || cfg.Format != FormatJSON {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	// Explicit flag values are kept.
	cfg = DefaultConfig()
	cfg.BaseURL = "http://flag.example"
	cfg.Attempts = 2
	ApplyFileConfig(&cfg, fc)
	if cfg.BaseURL != "http://flag.example" || cfg.Attempts != 2 {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	tests := map[string]func(*Config){
		"empty base url":   func(c *Config) { c.BaseURL = " " },
		"zero timeout":     func(c *Config) { c.Timeout = 0 },
		"negative rate":    func(c *Config) { c.RequestInterval = -time.Second },
		"unknown format":   func(c *Config) { c.Format = "xml" },
		"empty format too": func(c *Config) { c.Format = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := ValidateConfig(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
