package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// FilterStructured applies the author, category, collection and liked filters.
func FilterStructured(view *corpus.View, quotes []corpus.Quote, f Filters) []corpus.Quote {
	if !f.Active() {
		return quotes
	}
	out := make([]corpus.Quote, 0, len(quotes))
	for _, q := range quotes {
		if f.Author != "" && q.Author != f.Author {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.CollectionID != "" && !view.InCollection(f.CollectionID, q.ID) {
			continue
		}
		switch f.Liked {
		case LikedOnly:
			if !q.IsLiked {
				continue
			}
		case UnlikedOnly:
			if q.IsLiked {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// FilterDateRange keeps quotes created within the inclusive range.
func FilterDateRange(quotes []corpus.Quote, r DateRange) []corpus.Quote {
	if r.Start == nil && r.End == nil {
		return quotes
	}
	out := make([]corpus.Quote, 0, len(quotes))
	for _, q := range quotes {
		if r.Start != nil && q.CreatedAt.Before(*r.Start) {
			continue
		}
		if r.End != nil && q.CreatedAt.After(*r.End) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// FilterLength keeps quotes with min <= len(text) <= max. A min above a
// positive max yields nothing.
func FilterLength(quotes []corpus.Quote, r LengthRange) []corpus.Quote {
	if r.Min <= 0 && r.Max <= 0 {
		return quotes
	}
	out := make([]corpus.Quote, 0, len(quotes))
	for _, q := range quotes {
		n := TextLength(q)
		if n < r.Min {
			continue
		}
		if r.Max > 0 && n > r.Max {
			continue
		}
		out = append(out, q)
	}
	return out
}

// TextLength is the length used by the length filter and sort.
func TextLength(q corpus.Quote) int {
	return utf8.RuneCountInString(q.Text)
}

// Sort orders quotes in place. Relevance keeps the incoming order.
func Sort(quotes []corpus.Quote, key SortKey, order SortOrder) {
	var cmp func(a, b corpus.Quote) int
	switch key {
	case SortDate:
		cmp = func(a, b corpus.Quote) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortAuthor:
		cmp = func(a, b corpus.Quote) int { return strings.Compare(a.Author, b.Author) }
	case SortCategory:
		cmp = func(a, b corpus.Quote) int { return strings.Compare(a.Category, b.Category) }
	case SortLength:
		cmp = func(a, b corpus.Quote) int { return TextLength(a) - TextLength(b) }
	default:
		return
	}

	if order == OrderAsc {
		sort.SliceStable(quotes, func(i, j int) bool { return cmp(quotes[i], quotes[j]) < 0 })
		return
	}
	sort.SliceStable(quotes, func(i, j int) bool { return cmp(quotes[i], quotes[j]) > 0 })
}
