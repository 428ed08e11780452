package search

import (
	"strings"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// DefaultSuggestionLimit caps the number of completions returned.
const DefaultSuggestionLimit = 8

type suggestion struct {
	value string
	lower string
}

// SuggestionIndex holds the distinct text, author and category values of a
// corpus in first-encountered order.
type SuggestionIndex struct {
	entries []suggestion
	limit   int
}

// NewSuggestionIndex builds the index. A non-positive limit uses the default.
func NewSuggestionIndex(view *corpus.View, limit int) *SuggestionIndex {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	idx := &SuggestionIndex{limit: limit}
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		idx.entries = append(idx.entries, suggestion{value: v, lower: strings.ToLower(v)})
	}
	for _, q := range view.Quotes() {
		add(q.Text)
		add(q.Author)
		add(q.Category)
	}
	return idx
}

// Suggest returns up to the limit of indexed values containing partial,
// case-insensitively. A blank partial yields nothing.
func (s *SuggestionIndex) Suggest(partial string) []string {
	needle := strings.ToLower(strings.TrimSpace(partial))
	out := []string{}
	if needle == "" {
		return out
	}
	for _, e := range s.entries {
		if strings.Contains(e.lower, needle) {
			out = append(out, e.value)
			if len(out) == s.limit {
				break
			}
		}
	}
	return out
}

// Len returns the number of distinct indexed values.
func (s *SuggestionIndex) Len() int { return len(s.entries) }
