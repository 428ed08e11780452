package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/config"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/storage"
)

// app is everything one command invocation needs.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	kv         storage.KV
	session    *engine.Session
	corpusPath string
}

// openApp loads configuration, opens storage and the engine, and loads the
// corpus when one is configured.
func openApp(ctx context.Context, opts *rootOptions, stderr io.Writer, extra ...engine.Option) (*app, error) {
	cfg, err := config.LoadOrCreate(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return nil, err
	}

	kv, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	e := engine.New(ctx, kv, append(engineOptions(cfg, logger), extra...)...)
	a := &app{
		cfg:        cfg,
		logger:     logger,
		kv:         kv,
		session:    engine.NewSession(e),
		corpusPath: cfg.CorpusPath(),
	}
	if opts.corpusPath != "" {
		a.corpusPath = config.ExpandHome(opts.corpusPath)
	}

	if a.corpusPath != "" {
		if err := a.reloadCorpus(); err != nil {
			a.Close()
			return nil, err
		}
	} else {
		logger.Warn("no corpus configured", zap.String("env", config.CorpusEnv))
	}
	return a, nil
}

// loadCorpus reads the corpus file without applying it.
func (a *app) loadCorpus() (*corpus.Document, error) {
	if a.corpusPath == "" {
		return nil, errors.New("no corpus configured")
	}
	return corpus.LoadFile(a.corpusPath)
}

// reloadCorpus reads the corpus file and hands it to the engine. Rejected
// entries are logged and skipped.
func (a *app) reloadCorpus() error {
	doc, err := a.loadCorpus()
	if err != nil {
		return err
	}
	issues := a.session.UpdateData(doc.Quotes, doc.Collections)
	for _, issue := range issues {
		a.logger.Warn("corpus entry rejected", zap.Error(issue))
	}
	a.logger.Debug("corpus loaded",
		zap.String("path", a.corpusPath),
		zap.Int("quotes", len(doc.Quotes)),
		zap.Int("collections", len(doc.Collections)),
		zap.Int("rejected", len(issues)))
	return nil
}

// Close flushes pending writes, then closes storage.
func (a *app) Close() error {
	err := a.session.Close()
	if kvErr := a.kv.Close(); kvErr != nil && err == nil {
		err = kvErr
	}
	a.logger.Sync()
	return err
}

// withApp opens the app for the duration of fn.
func withApp(ctx context.Context, opts *rootOptions, stderr io.Writer, fn func(*app) error, extra ...engine.Option) error {
	a, err := openApp(ctx, opts, stderr, extra...)
	if err != nil {
		return err
	}
	runErr := fn(a)
	if closeErr := a.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}

// newLogger builds a console logger writing to w at the named level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// openStorage returns the configured backend. SQLite degrades to a no-op
// store when it cannot be opened; an unreachable Redis falls back to memory.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendRedis:
		rs, err := storage.ConnectRedis(ctx, cfg.Storage.RedisURL, cfg.Storage.RedisPrefix)
		if err != nil {
			logger.Warn("redis unavailable, state will not persist", zap.Error(err))
			return storage.NewMemoryStore(), nil
		}
		return rs, nil
	case config.BackendSQLite, "":
		store := storage.NewSQLiteStore(cfg.SQLitePath(), logger)
		if err := store.Init(); err != nil {
			logger.Warn("state will not persist", zap.Error(err))
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// engineOptions maps configuration onto engine options.
func engineOptions(cfg *config.Config, logger *zap.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logger),
		engine.WithMatchFields(cfg.MatchFields()...),
		engine.WithMatchMode(search.MatchMode(cfg.Search.MatchMode)),
		engine.WithSuggestionLimit(cfg.Search.SuggestionLimit),
	}
}
