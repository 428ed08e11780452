package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

// Validate checks enumerated values and bounds.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch c.Storage.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Storage.RedisURL) == "" {
			return fmt.Errorf("storage.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("storage.backend %q: must be sqlite, redis or memory", c.Storage.Backend)
	}

	switch search.MatchMode(c.Search.MatchMode) {
	case search.ModeSubstring, search.ModeFullText:
	default:
		return fmt.Errorf("search.match_mode %q: must be substring or fulltext", c.Search.MatchMode)
	}

	for _, f := range c.MatchFields() {
		switch f {
		case search.FieldText, search.FieldAuthor, search.FieldCategory, search.FieldCollection:
		default:
			return fmt.Errorf("search.match_fields: unknown field %q", f)
		}
	}

	if c.Search.SuggestionLimit < 0 {
		return fmt.Errorf("search.suggestion_limit must not be negative")
	}
	return nil
}
