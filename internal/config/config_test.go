package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_MissingURL(t *testing.T) {
	cfg := Config{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing solr.url")
	}
	if err.Error() != "solr.url is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_BadURLs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no scheme", Config{Solr: SolrConfig{URL: "localhost:8983/solr"}}},
		{"ftp scheme", Config{Solr: SolrConfig{URL: "ftp://localhost/solr"}}},
		{"no host", Config{Solr: SolrConfig{URL: "http:///solr"}}},
		{"bad admin url", Config{Solr: SolrConfig{URL: "http://localhost:8983/solr/core0", AdminURL: "admin"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		t.Run("level="+level, func(t *testing.T) {
			cfg := Config{
				Solr:    SolrConfig{URL: "http://localhost:8983/solr/core0"},
				Logging: LoggingConfig{Level: level},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for level %q: %v", level, err)
			}
		})
	}

	cfg := Config{
		Solr:    SolrConfig{URL: "http://localhost:8983/solr/core0"},
		Logging: LoggingConfig{Level: "verbose"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	expected := `logging.level must be one of debug, info, warn, error, got "verbose"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Solr.TimeoutSec != 60 {
		t.Errorf("expected TimeoutSec=60, got %d", cfg.Solr.TimeoutSec)
	}
	if cfg.Solr.MaxQueryLength != 1024 {
		t.Errorf("expected MaxQueryLength=1024, got %d", cfg.Solr.MaxQueryLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{Solr: SolrConfig{TimeoutSec: 5, MaxQueryLength: 4096}}
	cfg.ApplyDefaults()

	if cfg.Solr.TimeoutSec != 5 {
		t.Errorf("expected TimeoutSec=5, got %d", cfg.Solr.TimeoutSec)
	}
	if cfg.Solr.MaxQueryLength != 4096 {
		t.Errorf("expected MaxQueryLength=4096, got %d", cfg.Solr.MaxQueryLength)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("SOLRCTL_TEST_URL", "http://search.internal:8983/solr/books")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := []byte(`solr:
  url: ${SOLRCTL_TEST_URL}
  timeout_sec: ${SOLRCTL_TEST_TIMEOUT:-15}
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Solr.URL != "http://search.internal:8983/solr/books" {
		t.Errorf("unexpected url %q", cfg.Solr.URL)
	}
	if cfg.Solr.TimeoutSec != 15 {
		t.Errorf("expected TimeoutSec=15, got %d", cfg.Solr.TimeoutSec)
	}
	if cfg.Solr.MaxQueryLength != 1024 {
		t.Errorf("expected default MaxQueryLength, got %d", cfg.Solr.MaxQueryLength)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected level %q", cfg.Logging.Level)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solr:\n  timeout_sec: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Solr.URL == "" {
		t.Error("expected a url in the local config")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
