package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

// Kind is the bulk action.
type Kind string

const (
	KindAddToCollection      Kind = "addToCollection"
	KindRemoveFromCollection Kind = "removeFromCollection"
	KindExport               Kind = "export"
	KindDelete               Kind = "delete"
)

var (
	// ErrNoCollaborator is returned when the collaborator an operation needs
	// was not configured.
	ErrNoCollaborator = errors.New("bulk collaborator not configured")

	// ErrMissingTarget is returned for collection operations without a
	// target collection id.
	ErrMissingTarget = errors.New("bulk operation requires a target collection")

	// ErrUnknownKind is returned for an unrecognized operation kind.
	ErrUnknownKind = errors.New("unknown bulk operation")
)

// Mutator performs per-quote mutations on the caller's data.
type Mutator interface {
	RemoveQuote(ctx context.Context, id string) error
	AddToCollection(ctx context.Context, collectionID string, q corpus.Quote) error
	RemoveFromCollection(ctx context.Context, collectionID, quoteID string) error
}

// Downloader receives the serialized export document.
type Downloader interface {
	Download(ctx context.Context, filename string, data []byte) error
}

// Operation is one bulk request.
type Operation struct {
	Kind         Kind   `json:"kind"`
	CollectionID string `json:"collectionId,omitempty"`
}

// ItemError records the failure of a single id.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Result is the aggregate outcome of one operation.
type Result struct {
	Kind      Kind        `json:"kind"`
	Filename  string      `json:"filename,omitempty"`
	Succeeded []string    `json:"succeeded"`
	Failed    []ItemError `json:"failed"`
}

// Input is the engine state an operation reads.
type Input struct {
	Selected []string
	View     *corpus.View
	Results  []corpus.Quote
	Criteria search.Criteria
}

// Executor dispatches bulk operations to collaborators.
type Executor struct {
	mutator    Mutator
	downloader Downloader
	now        func() time.Time
	logger     *zap.Logger
}

// NewExecutor creates an executor. Either collaborator may be nil; operations
// needing it then fail with ErrNoCollaborator.
func NewExecutor(m Mutator, d Downloader, now func() time.Time, logger *zap.Logger) *Executor {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{mutator: m, downloader: d, now: now, logger: logger}
}

// Run executes op. Mutating kinds call the collaborator once per selected id
// in selection order and every id is attempted; per-item failures land in
// Result.Failed. The returned error is reserved for failures of the whole
// operation.
func (e *Executor) Run(ctx context.Context, op Operation, in Input) (Result, error) {
	res := Result{Kind: op.Kind, Succeeded: []string{}, Failed: []ItemError{}}
	if in.View == nil {
		in.View = corpus.Empty()
	}

	switch op.Kind {
	case KindExport:
		return e.export(ctx, res, in)
	case KindDelete:
		if e.mutator == nil {
			return res, ErrNoCollaborator
		}
		return e.each(res, in.Selected, func(id string) error {
			return e.mutator.RemoveQuote(ctx, id)
		}), nil
	case KindAddToCollection:
		if e.mutator == nil {
			return res, ErrNoCollaborator
		}
		if op.CollectionID == "" {
			return res, ErrMissingTarget
		}
		return e.each(res, in.Selected, func(id string) error {
			q, ok := in.View.Quote(id)
			if !ok {
				return corpus.ErrQuoteNotFound
			}
			return e.mutator.AddToCollection(ctx, op.CollectionID, q)
		}), nil
	case KindRemoveFromCollection:
		if e.mutator == nil {
			return res, ErrNoCollaborator
		}
		if op.CollectionID == "" {
			return res, ErrMissingTarget
		}
		return e.each(res, in.Selected, func(id string) error {
			return e.mutator.RemoveFromCollection(ctx, op.CollectionID, id)
		}), nil
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownKind, op.Kind)
	}
}

func (e *Executor) each(res Result, ids []string, apply func(id string) error) Result {
	for _, id := range ids {
		if err := apply(id); err != nil {
			e.logger.Warn("bulk item failed",
				zap.String("kind", string(res.Kind)),
				zap.String("id", id),
				zap.Error(err))
			res.Failed = append(res.Failed, ItemError{ID: id, Error: err.Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}

func (e *Executor) export(ctx context.Context, res Result, in Input) (Result, error) {
	if e.downloader == nil {
		return res, ErrNoCollaborator
	}

	quotes := in.Results
	if len(in.Selected) > 0 {
		quotes = make([]corpus.Quote, 0, len(in.Selected))
		for _, id := range in.Selected {
			if q, ok := in.View.Quote(id); ok {
				quotes = append(quotes, q)
			}
		}
	}

	now := e.now()
	data, err := MarshalExport(NewExportDocument(quotes, in.Criteria, now))
	if err != nil {
		return res, fmt.Errorf("encode export: %w", err)
	}
	res.Filename = ExportFilename(now)
	if err := e.downloader.Download(ctx, res.Filename, data); err != nil {
		return res, fmt.Errorf("download export: %w", err)
	}
	for _, q := range quotes {
		res.Succeeded = append(res.Succeeded, q.ID)
	}
	return res, nil
}

// ExportQuote is the exported projection of one quote.
type ExportQuote struct {
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	IsLiked   bool      `json:"isLiked"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportDocument is the file handed to the downloader.
type ExportDocument struct {
	ExportedAt  time.Time              `json:"exportedAt"`
	TotalQuotes int                    `json:"totalQuotes"`
	SearchQuery string                 `json:"searchQuery"`
	Filters     search.AdvancedFilters `json:"filters"`
	Quotes      []ExportQuote          `json:"quotes"`
}

// NewExportDocument builds the export for quotes found with c.
func NewExportDocument(quotes []corpus.Quote, c search.Criteria, now time.Time) ExportDocument {
	doc := ExportDocument{
		ExportedAt:  now.UTC(),
		TotalQuotes: len(quotes),
		SearchQuery: c.Query,
		Filters:     c.Advanced.Clone(),
		Quotes:      make([]ExportQuote, 0, len(quotes)),
	}
	for _, q := range quotes {
		doc.Quotes = append(doc.Quotes, ExportQuote{
			Text:      q.Text,
			Author:    q.Author,
			Category:  q.Category,
			IsLiked:   q.IsLiked,
			CreatedAt: q.CreatedAt,
		})
	}
	return doc
}

// MarshalExport encodes doc with two-space indentation.
func MarshalExport(doc ExportDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ExportFilename is the download name for an export made at now.
func ExportFilename(now time.Time) string {
	return "quotes-export-" + now.Format(time.DateOnly) + ".json"
}
