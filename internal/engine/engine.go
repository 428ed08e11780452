/*
Package engine is the quote discovery engine facade.

An Engine owns the corpus snapshot, the last search and its results, the
history ring, saved searches, analytics, and the bulk selection. State is
loaded from a storage.KV once at construction and written back after every
mutation through a background persister; persistence failures are logged
and never surface to callers.

An Engine is not safe for concurrent use. Servers wrap it in a Session.
*/
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/analytics"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/bulk"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/recommend"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/storage"
)

// Persistence keys.
const (
	KeyHistory   = "search_history"
	KeySaved     = "saved_searches"
	KeyAnalytics = "search_analytics"
)

// loadTimeout bounds each blob read at construction.
const loadTimeout = 5 * time.Second

// Engine is the discovery engine for one user session.
type Engine struct {
	opts   options
	logger *zap.Logger

	searcher  *search.Searcher
	history   *history.Ring
	saved     *history.SavedStore
	analytics *analytics.Aggregator
	selection *bulk.Selection
	executor  *bulk.Executor
	persister *storage.Persister

	criteria  search.Criteria
	results   []corpus.Quote
	panelOpen bool

	subscribers    []subscriber
	nextSubscriber int
	closed         bool
}

// New creates an engine with an empty corpus and restores history, saved
// searches and analytics from kv. Missing or corrupt blobs start empty. A
// nil kv keeps state in memory only.
func New(ctx context.Context, kv storage.KV, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if kv == nil {
		kv = storage.NewMemoryStore()
	}

	e := &Engine{
		opts:      o,
		logger:    o.logger.Named("engine"),
		history:   history.NewRing(history.Capacity),
		saved:     history.NewSavedStore(nil, o.now),
		analytics: analytics.NewAggregator(),
		selection: bulk.NewSelection(),
		criteria:  search.Criteria{Advanced: search.DefaultAdvancedFilters()},
		results:   []corpus.Quote{},
	}
	e.executor = bulk.NewExecutor(o.mutator, o.downloader, o.now, e.logger)
	e.searcher = e.newSearcher(corpus.Empty())

	var entries []history.Entry
	if e.load(ctx, kv, KeyHistory, &entries) {
		e.history.Restore(entries)
	}
	var saved []history.SavedSearch
	if e.load(ctx, kv, KeySaved, &saved) {
		e.saved.Restore(saved)
	}
	var snap analytics.Snapshot
	if e.load(ctx, kv, KeyAnalytics, &snap) {
		e.analytics.Restore(snap)
	}

	e.persister = storage.NewPersister(kv, o.logger)
	return e
}

func (e *Engine) newSearcher(view *corpus.View) *search.Searcher {
	return search.NewSearcher(view, search.Options{
		Fields:          e.opts.fields,
		Mode:            e.opts.mode,
		SuggestionLimit: e.opts.suggestionLimit,
		Logger:          e.logger,
	})
}

// load reads key into dst, reporting whether dst was filled.
func (e *Engine) load(ctx context.Context, kv storage.KV, key string, dst any) bool {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	data, found, err := kv.Get(ctx, key)
	if err != nil {
		e.logger.Warn("failed to load state, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		e.logger.Warn("corrupt state, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (e *Engine) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		e.logger.Warn("failed to encode state", zap.String("key", key), zap.Error(err))
		return
	}
	e.persister.Enqueue(key, data)
}

func (e *Engine) persistHistory()   { e.persist(KeyHistory, e.history.Entries()) }
func (e *Engine) persistSaved()     { e.persist(KeySaved, e.saved.List()) }
func (e *Engine) persistAnalytics() { e.persist(KeyAnalytics, e.analytics.Snapshot()) }

// UpdateData replaces the corpus snapshot. Invalid quotes and collections
// are dropped and reported. The current results are recomputed against the
// new corpus without recording a search.
func (e *Engine) UpdateData(quotes []corpus.Quote, collections []corpus.Collection) []error {
	view, errs := corpus.NewView(quotes, collections)
	for _, err := range errs {
		e.logger.Warn("rejected corpus entry", zap.Error(err))
	}

	old := e.searcher
	e.searcher = e.newSearcher(view)
	if err := old.Close(); err != nil {
		e.logger.Warn("failed to close previous index", zap.Error(err))
	}
	e.results = e.searcher.Search(e.criteria)

	e.emit(Event{Kind: EventCorpusUpdated, Count: view.Len()})
	return errs
}

// View returns the current corpus snapshot.
func (e *Engine) View() *corpus.View { return e.searcher.View() }

// Criteria returns a copy of the last searched criteria.
func (e *Engine) Criteria() search.Criteria { return e.criteria.Clone() }

// Search runs c against the corpus and makes the result the current result
// list. Searches that express intent are recorded in history and analytics;
// others return no results and record nothing.
func (e *Engine) Search(c search.Criteria) []corpus.Quote {
	e.criteria = c.Clone()
	e.results = e.searcher.Search(e.criteria)

	if !c.HasIntent() {
		return e.Results()
	}

	label := c.Label()
	e.history.Push(history.Entry{Query: label, Timestamp: e.opts.now(), ResultCount: len(e.results)})
	e.analytics.Record(label, e.results)
	e.persistHistory()
	e.persistAnalytics()

	searchesTotal.Inc()
	searchResults.Observe(float64(len(e.results)))

	e.emit(Event{Kind: EventSearchExecuted, Query: label, Count: len(e.results)})
	e.emit(Event{Kind: EventHistoryChanged, Count: e.history.Len()})
	e.emit(Event{Kind: EventAnalyticsChanged})
	return e.Results()
}

// Results returns a copy of the current result list.
func (e *Engine) Results() []corpus.Quote {
	return append([]corpus.Quote{}, e.results...)
}

// Suggest returns completions for partial.
func (e *Engine) Suggest(partial string) []string {
	return e.searcher.Suggest(partial)
}

// History returns recent searches, newest first.
func (e *Engine) History() []history.Entry { return e.history.Entries() }

// ClearHistory empties the history ring.
func (e *Engine) ClearHistory() {
	e.history.Clear()
	e.persistHistory()
	e.emit(Event{Kind: EventHistoryChanged})
}

// RemoveHistoryEntry deletes one entry by query, reporting whether it existed.
func (e *Engine) RemoveHistoryEntry(query string) bool {
	if !e.history.Remove(query) {
		return false
	}
	e.persistHistory()
	e.emit(Event{Kind: EventHistoryChanged, Count: e.history.Len()})
	return true
}

// SaveSearch stores c under name.
func (e *Engine) SaveSearch(name string, c search.Criteria) (history.SavedSearch, error) {
	s, err := e.saved.Save(name, c)
	if err != nil {
		return history.SavedSearch{}, err
	}
	e.persistSaved()
	e.emit(Event{Kind: EventSavedSearchesChanged, Count: e.saved.Len()})
	return s, nil
}

// LoadSavedSearch applies the saved search with id, incrementing its use
// count, and runs it.
func (e *Engine) LoadSavedSearch(id string) (history.SavedSearch, []corpus.Quote, error) {
	s, err := e.saved.Load(id)
	if err != nil {
		return history.SavedSearch{}, nil, err
	}
	e.persistSaved()
	e.emit(Event{Kind: EventSavedSearchesChanged, Count: e.saved.Len()})
	return s, e.Search(s.Criteria()), nil
}

// DeleteSavedSearch removes the saved search with id.
func (e *Engine) DeleteSavedSearch(id string) error {
	if err := e.saved.Delete(id); err != nil {
		return err
	}
	e.persistSaved()
	e.emit(Event{Kind: EventSavedSearchesChanged, Count: e.saved.Len()})
	return nil
}

// RenameSavedSearch changes a saved search's name.
func (e *Engine) RenameSavedSearch(id, name string) (history.SavedSearch, error) {
	s, err := e.saved.Rename(id, name)
	if err != nil {
		return history.SavedSearch{}, err
	}
	e.persistSaved()
	e.emit(Event{Kind: EventSavedSearchesChanged, Count: e.saved.Len()})
	return s, nil
}

// SavedSearches lists saved searches in creation order.
func (e *Engine) SavedSearches() []history.SavedSearch { return e.saved.List() }

// Analytics returns the current analytics snapshot.
func (e *Engine) Analytics() analytics.Snapshot { return e.analytics.Snapshot() }

// ResetAnalytics forgets all analytics.
func (e *Engine) ResetAnalytics() {
	e.analytics.Reset()
	e.persistAnalytics()
	e.emit(Event{Kind: EventAnalyticsChanged})
}

// Insights derives insights from analytics, history and the corpus.
func (e *Engine) Insights() analytics.SearchInsights {
	return analytics.Insights(e.analytics.Snapshot(), e.View(), e.history.Entries(), e.opts.now())
}

// Recommendations generates recommendations for query. An empty query skips
// the similar generator.
func (e *Engine) Recommendations(query string) []recommend.Recommendation {
	return recommend.Recommendations(e.View(), query, e.Insights().FavoriteAuthor)
}

// Related resolves content related to the quote with id.
func (e *Engine) Related(id string) (recommend.Related, error) {
	return recommend.ResolveRelated(e.View(), id)
}

// Selection returns the selected ids in selection order.
func (e *Engine) Selection() []string { return e.selection.IDs() }

// Select adds id to the selection.
func (e *Engine) Select(id string) {
	if e.selection.Add(id) {
		e.emit(Event{Kind: EventSelectionChanged, Count: e.selection.Len()})
	}
}

// Deselect removes id from the selection.
func (e *Engine) Deselect(id string) {
	if e.selection.Remove(id) {
		e.emit(Event{Kind: EventSelectionChanged, Count: e.selection.Len()})
	}
}

// ToggleSelection flips id and returns whether it is now selected.
func (e *Engine) ToggleSelection(id string) bool {
	on := e.selection.Toggle(id)
	e.emit(Event{Kind: EventSelectionChanged, Count: e.selection.Len()})
	return on
}

// SelectAll selects every quote in the current result list.
func (e *Engine) SelectAll() {
	ids := make([]string, len(e.results))
	for i, q := range e.results {
		ids[i] = q.ID
	}
	e.selection.SelectAll(ids)
	e.emit(Event{Kind: EventSelectionChanged, Count: e.selection.Len()})
}

// ClearSelection empties the selection.
func (e *Engine) ClearSelection() {
	e.selection.Clear()
	e.emit(Event{Kind: EventSelectionChanged})
}

// OpenBulkPanel marks the bulk operation panel open.
func (e *Engine) OpenBulkPanel() { e.panelOpen = true }

// CloseBulkPanel marks the bulk operation panel closed.
func (e *Engine) CloseBulkPanel() { e.panelOpen = false }

// BulkPanelOpen reports whether the bulk operation panel is open.
func (e *Engine) BulkPanelOpen() bool { return e.panelOpen }

// RunBulk applies op to the selection. Export with an empty selection uses
// the current results. The selection is cleared and the panel closed
// whatever the outcome.
func (e *Engine) RunBulk(ctx context.Context, op bulk.Operation) (bulk.Result, error) {
	res, err := e.executor.Run(ctx, op, bulk.Input{
		Selected: e.selection.IDs(),
		View:     e.View(),
		Results:  e.results,
		Criteria: e.criteria,
	})

	e.selection.Clear()
	e.panelOpen = false

	kind := string(op.Kind)
	bulkItemsTotal.WithLabelValues(kind, "succeeded").Add(float64(len(res.Succeeded)))
	bulkItemsTotal.WithLabelValues(kind, "failed").Add(float64(len(res.Failed)))
	if err != nil {
		e.logger.Warn("bulk operation failed", zap.String("kind", kind), zap.Error(err))
	}

	e.emit(Event{Kind: EventSelectionChanged})
	e.emit(Event{Kind: EventBulkCompleted, Bulk: &res})
	return res, err
}

// Speak reads the quote with id aloud through the configured collaborator.
func (e *Engine) Speak(ctx context.Context, id string) error {
	return e.quoteAction(id, "speak", func(a QuoteActions, q corpus.Quote) error {
		return a.Speak(ctx, q)
	})
}

// SaveAsImage renders the quote with id through the configured collaborator.
func (e *Engine) SaveAsImage(ctx context.Context, id string) error {
	return e.quoteAction(id, "save as image", func(a QuoteActions, q corpus.Quote) error {
		return a.SaveAsImage(ctx, q)
	})
}

func (e *Engine) quoteAction(id, name string, fn func(QuoteActions, corpus.Quote) error) error {
	if e.opts.actions == nil {
		return bulk.ErrNoCollaborator
	}
	q, ok := e.View().Quote(id)
	if !ok {
		return corpus.ErrQuoteNotFound
	}
	if err := fn(e.opts.actions, q); err != nil {
		return fmt.Errorf("%s %s: %w", name, id, err)
	}
	return nil
}

// Close flushes pending writes and releases the search index. The KV passed
// to New is not closed.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.persister.Stop()
	return e.searcher.Close()
}
