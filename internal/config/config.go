/*
Package config handles loading and saving quote-discovery configuration.

Configuration is stored in ~/.quote-discovery.yml.

Schema:

	corpus: ~/quotes.json
	log_level: warn
	storage:
	  backend: sqlite          # sqlite | redis | memory
	  sqlite_path: ~/.quote-discovery/state.db
	  redis_url: redis://localhost:6379/0
	  redis_prefix: "quote-discovery:"
	search:
	  match_mode: substring    # substring | fulltext
	  match_fields: [text, author, category, collection]
	  suggestion_limit: 8
	metrics:
	  addr: ""
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/storage"
)

// CorpusEnv overrides the configured corpus path.
const CorpusEnv = "QUOTE_DISCOVERY_CORPUS"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config represents the root configuration structure.
type Config struct {
	// Corpus is the path of the quotes file (.json, .yaml or .yml).
	Corpus string `yaml:"corpus"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// SearchConfig tunes matching.
type SearchConfig struct {
	MatchMode       string   `yaml:"match_mode"`
	MatchFields     []string `yaml:"match_fields"`
	SuggestionLimit int      `yaml:"suggestion_limit"`
}

// MetricsConfig configures the Prometheus endpoint served by "serve".
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	fields := make([]string, len(search.DefaultFields))
	for i, f := range search.DefaultFields {
		fields[i] = string(f)
	}
	return &Config{
		LogLevel: "warn",
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			SQLitePath:  "~/.quote-discovery/state.db",
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: storage.DefaultRedisPrefix,
		},
		Search: SearchConfig{
			MatchMode:       string(search.ModeSubstring),
			MatchFields:     fields,
			SuggestionLimit: search.DefaultSuggestionLimit,
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.quote-discovery.yml
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".quote-discovery.yml"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadOrCreate reads path, or the default path when empty. A missing file
// yields the defaults without writing anything.
func LoadOrCreate(path string) (*Config, error) {
	if path == "" {
		p, err := GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := LoadFrom(path)
	var notFound *ConfigNotFoundError
	if errors.As(err, &notFound) {
		cfg = NewConfig()
		cfg.applyEnv()
		return cfg, nil
	}
	return cfg, err
}

// MatchFields converts the configured names to search fields.
func (c *Config) MatchFields() []search.Field {
	out := make([]search.Field, 0, len(c.Search.MatchFields))
	for _, f := range c.Search.MatchFields {
		out = append(out, search.Field(strings.ToLower(strings.TrimSpace(f))))
	}
	return out
}

// CorpusPath returns the corpus path with ~ expanded.
func (c *Config) CorpusPath() string { return ExpandHome(c.Corpus) }

// SQLitePath returns the database path with ~ expanded.
func (c *Config) SQLitePath() string { return ExpandHome(c.Storage.SQLitePath) }

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(CorpusEnv)); v != "" {
		c.Corpus = v
	}
}

// fillDefaults sets zero-valued fields to their defaults.
func (c *Config) fillDefaults() {
	def := NewConfig()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = def.Storage.SQLitePath
	}
	if c.Storage.RedisURL == "" {
		c.Storage.RedisURL = def.Storage.RedisURL
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = def.Storage.RedisPrefix
	}
	if c.Search.MatchMode == "" {
		c.Search.MatchMode = def.Search.MatchMode
	}
	if len(c.Search.MatchFields) == 0 {
		c.Search.MatchFields = def.Search.MatchFields
	}
	if c.Search.SuggestionLimit == 0 {
		c.Search.SuggestionLimit = def.Search.SuggestionLimit
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
