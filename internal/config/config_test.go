package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Search.SuggestionLimit != search.DefaultSuggestionLimit {
		t.Errorf("expected suggestion limit %d, got %d", search.DefaultSuggestionLimit, cfg.Search.SuggestionLimit)
	}
	if len(cfg.MatchFields()) != len(search.DefaultFields) {
		t.Errorf("expected all match fields by default, got %v", cfg.MatchFields())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(CorpusEnv, "")
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := NewConfig()
	cfg.Corpus = "/data/quotes.yaml"
	cfg.Search.MatchMode = string(search.ModeFullText)
	cfg.Search.MatchFields = []string{"text", "author"}
	cfg.Metrics.Addr = "127.0.0.1:9464"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Corpus != cfg.Corpus {
		t.Errorf("expected corpus %s, got %s", cfg.Corpus, loaded.Corpus)
	}
	if loaded.Search.MatchMode != string(search.ModeFullText) {
		t.Errorf("expected fulltext mode, got %s", loaded.Search.MatchMode)
	}
	if got := loaded.MatchFields(); len(got) != 2 || got[1] != search.FieldAuthor {
		t.Errorf("unexpected match fields: %v", got)
	}
	if loaded.Metrics.Addr != cfg.Metrics.Addr {
		t.Errorf("expected metrics addr %s, got %s", cfg.Metrics.Addr, loaded.Metrics.Addr)
	}
}

func TestLoadFromFillsDefaults(t *testing.T) {
	t.Setenv(CorpusEnv, "")
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("corpus: quotes.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.LogLevel != "warn" {
		t.Errorf("expected defaults, got backend=%s level=%s", cfg.Storage.Backend, cfg.LogLevel)
	}
	if cfg.Storage.RedisPrefix != "quote-discovery:" {
		t.Errorf("unexpected redis prefix %q", cfg.Storage.RedisPrefix)
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv(CorpusEnv, "/env/quotes.json")
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("corpus: file.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Corpus != "/env/quotes.json" {
		t.Errorf("expected env override, got %s", cfg.Corpus)
	}
}

func TestLoadFromEnhancedErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yml"))
		var notFound *ConfigNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ConfigNotFoundError, got %v", err)
		}
		if !strings.Contains(err.Error(), "config init") {
			t.Errorf("error should mention config init, got: %v", err)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read any file")
		}
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte("corpus: x\n"), 0000); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFrom(path)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
		if !strings.Contains(err.Error(), "chmod 644") {
			t.Errorf("error should suggest chmod fix, got: %v", err)
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte("storage: [unclosed\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFrom(path)
		var invalid *InvalidConfigError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidConfigError, got %v", err)
		}
		if !strings.Contains(err.Error(), ".bak") {
			t.Errorf("error should mention backup, got: %v", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte("storage:\n  backend: postgres\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFrom(path)
		if err == nil || !strings.Contains(err.Error(), "postgres") {
			t.Errorf("expected backend validation error, got %v", err)
		}
	})
}

func TestLoadOrCreateMissingFile(t *testing.T) {
	t.Setenv(CorpusEnv, "/env/quotes.json")
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Corpus != "/env/quotes.json" {
		t.Errorf("expected env corpus, got %s", cfg.Corpus)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("LoadOrCreate should not write a file")
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	first := NewConfig()
	first.Corpus = "first.json"
	if err := Save(first, path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("first save should not create a backup")
	}

	second := NewConfig()
	second.Corpus = "second.json"
	if err := Save(second, path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if !strings.Contains(string(bak), "first.json") {
		t.Errorf("backup should hold the previous config, got %s", bak)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") || strings.Contains(e.Name(), ".write-test-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestSaveValidatesBeforeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := NewConfig()
	cfg.Search.MatchMode = "fuzzy"

	err := Save(cfg, path)
	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"redis without url", func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.RedisURL = " " }, "redis_url"},
		{"memory backend", func(c *Config) { c.Storage.Backend = BackendMemory }, ""},
		{"unknown field", func(c *Config) { c.Search.MatchFields = []string{"tags"} }, "tags"},
		{"field case-insensitive", func(c *Config) { c.Search.MatchFields = []string{" Text "} }, ""},
		{"negative limit", func(c *Config) { c.Search.SuggestionLimit = -1 }, "suggestion_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/quotes.json"); got != filepath.Join(home, "quotes.json") {
		t.Errorf("unexpected expansion: %s", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %s", got)
	}
}
