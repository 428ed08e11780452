package engine

import (
	"context"
	"sync"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/analytics"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/bulk"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/recommend"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

// Session serializes access to one Engine. Every method holds the lock for
// its whole duration, including bulk operations.
type Session struct {
	mu sync.Mutex
	e  *Engine
}

// NewSession wraps e. e must not be used directly afterwards.
func NewSession(e *Engine) *Session {
	return &Session{e: e}
}

// Do runs fn with exclusive access to the engine.
func (s *Session) Do(fn func(*Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.e)
}

func (s *Session) UpdateData(quotes []corpus.Quote, collections []corpus.Collection) []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.UpdateData(quotes, collections)
}

func (s *Session) Search(c search.Criteria) []corpus.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Search(c)
}

func (s *Session) Suggest(partial string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Suggest(partial)
}

func (s *Session) History() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.History()
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.e.ClearHistory()
}

func (s *Session) SaveSearch(name string, c search.Criteria) (history.SavedSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.SaveSearch(name, c)
}

func (s *Session) LoadSavedSearch(id string) (history.SavedSearch, []corpus.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.LoadSavedSearch(id)
}

func (s *Session) DeleteSavedSearch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.DeleteSavedSearch(id)
}

func (s *Session) RenameSavedSearch(id, name string) (history.SavedSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.RenameSavedSearch(id, name)
}

func (s *Session) SavedSearches() []history.SavedSearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.SavedSearches()
}

func (s *Session) Analytics() analytics.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Analytics()
}

func (s *Session) Insights() analytics.SearchInsights {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Insights()
}

func (s *Session) Recommendations(query string) []recommend.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Recommendations(query)
}

func (s *Session) Related(id string) (recommend.Related, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Related(id)
}

func (s *Session) RunBulk(ctx context.Context, op bulk.Operation) (bulk.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.RunBulk(ctx, op)
}

// Close closes the engine.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Close()
}
