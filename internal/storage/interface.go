/*
Package storage implements the persistence port for engine state.

The engine stores three JSON blobs (history, saved searches, analytics)
under fixed keys in a key-value store. Backends are SQLite (default,
modernc.org/sqlite, CGo-free), Redis, and an in-memory map used by tests
and the "memory" backend. The SQLite backend degrades to a no-op store when
the database cannot be opened, so callers keep working with in-memory state.
*/
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// KV is the get/set capability the engine persists through.
type KV interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backend.
	Close() error
}

// SQLiteStore implements KV on a single SQLite table.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
	logger   *zap.Logger
}

// DefaultSQLitePath returns ~/.quote-discovery/state.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".quote-discovery", "state.db"), nil
}

// NewSQLiteStore creates a store for the database at dbPath. An empty path
// uses DefaultSQLitePath. Call Init before use.
func NewSQLiteStore(dbPath string, logger *zap.Logger) *SQLiteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("sqlite")

	if dbPath == "" {
		p, err := DefaultSQLitePath()
		if err != nil {
			logger.Warn("sqlite storage disabled", zap.Error(err))
			return &SQLiteStore{enabled: false, logger: logger}
		}
		dbPath = p
	}

	return &SQLiteStore{
		dbPath:  dbPath,
		enabled: true,
		logger:  logger,
	}
}

// Init opens the database and runs migrations.
//
// If initialization fails, the store is disabled and subsequent operations
// become no-ops.
func (s *SQLiteStore) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.disable(initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.disable(initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.disable(initErr)
			return
		}
	})

	return initErr
}

func (s *SQLiteStore) disable(err error) {
	s.enabled = false
	s.logger.Warn("sqlite storage disabled", zap.String("path", s.dbPath), zap.Error(err))
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

// Enabled reports whether the store is backed by an open database.
func (s *SQLiteStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && s.db != nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.db = nil
	return nil
}
