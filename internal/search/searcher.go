package search

import (
	"strings"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// Options configure a Searcher.
type Options struct {
	Fields          []Field
	Mode            MatchMode
	SuggestionLimit int
	Logger          *zap.Logger
}

// Searcher runs the full discovery pipeline over one corpus snapshot.
type Searcher struct {
	view        *corpus.View
	fields      []Field
	mode        MatchMode
	fulltext    *Indexer
	suggestions *SuggestionIndex
	logger      *zap.Logger
}

// NewSearcher prepares indexes for view. If the full-text index cannot be
// built the searcher falls back to substring matching.
func NewSearcher(view *corpus.View, opts Options) *Searcher {
	if view == nil {
		view = corpus.Empty()
	}
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Searcher{
		view:        view,
		fields:      append([]Field(nil), fields...),
		mode:        ModeSubstring,
		suggestions: NewSuggestionIndex(view, opts.SuggestionLimit),
		logger:      logger,
	}

	if opts.Mode == ModeFullText {
		idx, err := NewIndexer(view)
		if err != nil {
			logger.Warn("full-text index unavailable, using substring matching", zap.Error(err))
		} else {
			s.fulltext = idx
			s.mode = ModeFullText
		}
	}
	return s
}

// View returns the snapshot this searcher was built for.
func (s *Searcher) View() *corpus.View { return s.view }

// Mode returns the effective match mode.
func (s *Searcher) Mode() MatchMode { return s.mode }

// Search matches, filters and sorts. It returns an empty list when the
// criteria carry no search intent.
func (s *Searcher) Search(c Criteria) []corpus.Quote {
	if !c.HasIntent() {
		return []corpus.Quote{}
	}

	results := s.match(c.Query, c.Advanced.BooleanSearch)
	results = FilterStructured(s.view, results, c.Filters)
	results = FilterDateRange(results, c.Advanced.DateRange)
	results = FilterLength(results, c.Advanced.QuoteLength)
	Sort(results, c.Advanced.SortBy, c.Advanced.SortOrder)
	return results
}

// Suggest returns completions for a partial query.
func (s *Searcher) Suggest(partial string) []string {
	return s.suggestions.Suggest(partial)
}

func (s *Searcher) match(rawQuery string, b BooleanSearch) []corpus.Quote {
	needle := strings.ToLower(strings.TrimSpace(rawQuery))

	var hits map[string]struct{}
	useIndex := false
	if needle != "" && s.fulltext != nil {
		ids, err := s.fulltext.MatchIDs(needle, s.fields)
		if err != nil {
			s.logger.Warn("full-text match failed, using substring matching", zap.Error(err))
		} else {
			hits, useIndex = ids, true
		}
	}

	out := make([]corpus.Quote, 0)
	for _, q := range s.view.Quotes() {
		if needle != "" {
			var ok bool
			if useIndex {
				_, ok = hits[q.ID]
				if !ok && hasField(s.fields, FieldCollection) {
					ok = matchesCollectionName(s.view, q.ID, needle)
				}
			} else {
				ok = MatchesText(s.view, q, needle, s.fields)
			}
			if !ok {
				continue
			}
		}
		if !MatchesBoolean(q, b) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Close releases the full-text index, if any.
func (s *Searcher) Close() error {
	if s.fulltext != nil {
		return s.fulltext.Close()
	}
	return nil
}

func hasField(fields []Field, f Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}
