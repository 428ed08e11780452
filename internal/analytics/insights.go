package analytics

import (
	"time"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
)

// TrendDays is the number of calendar days covered by search trends.
const TrendDays = 7

// TrendDay is the number of searches on one calendar day.
type TrendDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// SearchInsights are derived on demand and never persisted.
type SearchInsights struct {
	FavoriteAuthor        string     `json:"favoriteAuthor"`
	FavoriteCategory      string     `json:"favoriteCategory"`
	MostQuotedAuthor      string     `json:"mostQuotedAuthor"`
	SearchTrends          []TrendDay `json:"searchTrends"`
	UniqueAuthorsCount    int        `json:"uniqueAuthorsCount"`
	UniqueCategoriesCount int        `json:"uniqueCategoriesCount"`
}

// Insights computes favorites from the analytics snapshot, corpus-wide
// counts from view, and the 7-day trend from history entries. Days are
// calendar days in now's location, oldest first.
func Insights(s Snapshot, view *corpus.View, entries []history.Entry, now time.Time) SearchInsights {
	out := SearchInsights{SearchTrends: trends(entries, now)}

	// Distributions are kept sorted, so the head is the argmax.
	if len(s.PopularAuthors) > 0 {
		out.FavoriteAuthor = s.PopularAuthors[0].Author
	}
	if len(s.PopularCategories) > 0 {
		out.FavoriteCategory = s.PopularCategories[0].Category
	}

	if view == nil {
		return out
	}
	authorCounts := make(map[string]int)
	categories := make(map[string]struct{})
	best := 0
	for _, q := range view.Quotes() {
		if q.Author != "" {
			authorCounts[q.Author]++
			if c := authorCounts[q.Author]; c > best {
				best = c
				out.MostQuotedAuthor = q.Author
			}
		}
		if q.Category != "" {
			categories[q.Category] = struct{}{}
		}
	}
	out.UniqueAuthorsCount = len(authorCounts)
	out.UniqueCategoriesCount = len(categories)
	return out
}

func trends(entries []history.Entry, now time.Time) []TrendDay {
	loc := now.Location()
	y, m, d := now.Date()
	days := make([]TrendDay, TrendDays)
	index := make(map[string]int, TrendDays)
	for i := 0; i < TrendDays; i++ {
		day := time.Date(y, m, d-(TrendDays-1-i), 0, 0, 0, 0, loc)
		key := day.Format(time.DateOnly)
		days[i] = TrendDay{Date: key}
		index[key] = i
	}
	for _, e := range entries {
		if i, ok := index[e.Timestamp.In(loc).Format(time.DateOnly)]; ok {
			days[i].Count++
		}
	}
	return days
}
