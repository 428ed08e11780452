package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/bulk"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

// QuoteActions are single-quote side effects implemented by the caller.
type QuoteActions interface {
	Speak(ctx context.Context, q corpus.Quote) error
	SaveAsImage(ctx context.Context, q corpus.Quote) error
}

type options struct {
	logger          *zap.Logger
	now             func() time.Time
	mutator         bulk.Mutator
	downloader      bulk.Downloader
	actions         QuoteActions
	fields          []search.Field
	mode            search.MatchMode
	suggestionLimit int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMutator sets the collaborator used by mutating bulk operations.
func WithMutator(m bulk.Mutator) Option {
	return func(o *options) { o.mutator = m }
}

// WithDownloader sets the collaborator that receives exports.
func WithDownloader(d bulk.Downloader) Option {
	return func(o *options) { o.downloader = d }
}

// WithQuoteActions sets the speak and save-as-image collaborator.
func WithQuoteActions(a QuoteActions) Option {
	return func(o *options) { o.actions = a }
}

// WithMatchFields sets the fields the free-text query is matched against.
func WithMatchFields(fields ...search.Field) Option {
	return func(o *options) {
		if len(fields) > 0 {
			o.fields = append([]search.Field{}, fields...)
		}
	}
}

// WithMatchMode selects substring or full-text matching.
func WithMatchMode(m search.MatchMode) Option {
	return func(o *options) {
		if m != "" {
			o.mode = m
		}
	}
}

// WithSuggestionLimit caps the number of suggestions.
func WithSuggestionLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.suggestionLimit = n
		}
	}
}

func defaultOptions() options {
	return options{
		logger:          zap.NewNop(),
		now:             time.Now,
		fields:          search.DefaultFields,
		mode:            search.ModeSubstring,
		suggestionLimit: search.DefaultSuggestionLimit,
	}
}
