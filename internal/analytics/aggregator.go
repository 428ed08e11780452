/*
Package analytics keeps running statistics over executed searches and derives
insights from them.

The author and category distributions are rebuilt from the result set of the
most recent search and are not accumulated across searches. "Popular" in
those two tables therefore means "frequent in the last query". Search counts
and the average result count are cumulative.
*/
package analytics

import (
	"sort"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// DistributionSize is how many authors and categories are kept per search.
const DistributionSize = 5

// SearchCount is how many times a query string was executed.
type SearchCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// AuthorCount is the number of results by one author.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// CategoryCount is the number of results in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Snapshot is the persisted analytics blob.
type Snapshot struct {
	PopularSearches   []SearchCount   `json:"popularSearches"`
	PopularAuthors    []AuthorCount   `json:"popularAuthors"`
	PopularCategories []CategoryCount `json:"popularCategories"`
	TotalSearches     int             `json:"totalSearches"`
	AverageResults    float64         `json:"averageResults"`
}

// Aggregator accumulates search statistics. Not safe for concurrent use.
type Aggregator struct {
	searches   map[string]int
	authors    []AuthorCount
	categories []CategoryCount
	total      int
	average    float64
}

// NewAggregator returns an aggregator with no recorded searches.
func NewAggregator() *Aggregator {
	return &Aggregator{searches: make(map[string]int)}
}

// Record observes one executed search with the given label and results.
func (a *Aggregator) Record(query string, results []corpus.Quote) {
	a.total++
	n := float64(a.total)
	a.average = (a.average*(n-1) + float64(len(results))) / n
	a.searches[query]++

	a.authors = topAuthors(results)
	a.categories = topCategories(results)
}

// TotalSearches returns the number of recorded searches.
func (a *Aggregator) TotalSearches() int { return a.total }

// AverageResults returns the running mean of result counts.
func (a *Aggregator) AverageResults() float64 { return a.average }

// TopSearches returns up to n queries by descending count, ties broken by
// query. n <= 0 returns all.
func (a *Aggregator) TopSearches(n int) []SearchCount {
	out := make([]SearchCount, 0, len(a.searches))
	for q, c := range a.searches {
		out = append(out, SearchCount{Query: q, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Query < out[j].Query
	})
	return limit(out, n)
}

// TopAuthors returns up to n authors from the last search. n <= 0 returns all.
func (a *Aggregator) TopAuthors(n int) []AuthorCount {
	return limit(append([]AuthorCount{}, a.authors...), n)
}

// TopCategories returns up to n categories from the last search. n <= 0
// returns all.
func (a *Aggregator) TopCategories(n int) []CategoryCount {
	return limit(append([]CategoryCount{}, a.categories...), n)
}

// Snapshot returns a copy of the current state.
func (a *Aggregator) Snapshot() Snapshot {
	return Snapshot{
		PopularSearches:   a.TopSearches(0),
		PopularAuthors:    a.TopAuthors(0),
		PopularCategories: a.TopCategories(0),
		TotalSearches:     a.total,
		AverageResults:    a.average,
	}
}

// Reset forgets everything.
func (a *Aggregator) Reset() {
	a.searches = make(map[string]int)
	a.authors = nil
	a.categories = nil
	a.total = 0
	a.average = 0
}

// Restore replaces the state with a persisted snapshot. Non-positive counts
// and a negative total are discarded.
func (a *Aggregator) Restore(s Snapshot) {
	a.Reset()
	for _, sc := range s.PopularSearches {
		if sc.Count > 0 {
			a.searches[sc.Query] += sc.Count
		}
	}
	for _, ac := range s.PopularAuthors {
		if ac.Count > 0 && ac.Author != "" {
			a.authors = append(a.authors, ac)
		}
	}
	for _, cc := range s.PopularCategories {
		if cc.Count > 0 && cc.Category != "" {
			a.categories = append(a.categories, cc)
		}
	}
	if s.TotalSearches > 0 {
		a.total = s.TotalSearches
		a.average = s.AverageResults
		if a.average < 0 {
			a.average = 0
		}
	}
}

func topAuthors(results []corpus.Quote) []AuthorCount {
	var out []AuthorCount
	index := make(map[string]int)
	for _, q := range results {
		if q.Author == "" {
			continue
		}
		if i, ok := index[q.Author]; ok {
			out[i].Count++
			continue
		}
		index[q.Author] = len(out)
		out = append(out, AuthorCount{Author: q.Author, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return limit(out, DistributionSize)
}

func topCategories(results []corpus.Quote) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, q := range results {
		if q.Category == "" {
			continue
		}
		if i, ok := index[q.Category]; ok {
			out[i].Count++
			continue
		}
		index[q.Category] = len(out)
		out = append(out, CategoryCount{Category: q.Category, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return limit(out, DistributionSize)
}

func limit[T any](s []T, n int) []T {
	if s == nil {
		s = []T{}
	}
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
