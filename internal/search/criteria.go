/*
Package search implements the quote discovery pipeline.

A search runs free-text and boolean matching over the corpus, then applies
structured filters, the date range, the length range and finally the sort,
always in that order.
*/
package search

import (
	"strings"
	"time"
)

// Field names a quote attribute the free-text matcher looks at.
type Field string

const (
	FieldText       Field = "text"
	FieldAuthor     Field = "author"
	FieldCategory   Field = "category"
	FieldCollection Field = "collection"
)

// DefaultFields is the field set used when none is configured.
var DefaultFields = []Field{FieldText, FieldAuthor, FieldCategory, FieldCollection}

// MatchMode selects how the free-text query is matched.
type MatchMode string

const (
	// ModeSubstring keeps quotes whose fields contain the query, case-insensitively.
	ModeSubstring MatchMode = "substring"

	// ModeFullText keeps quotes whose analyzed fields match every query token.
	ModeFullText MatchMode = "fulltext"
)

// LikedState filters on the liked flag.
type LikedState string

const (
	LikedAny    LikedState = ""
	LikedOnly   LikedState = "liked"
	UnlikedOnly LikedState = "unliked"
)

// SortKey is the attribute results are ordered by.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortAuthor    SortKey = "author"
	SortCategory  SortKey = "category"
	SortLength    SortKey = "length"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilteredSearchLabel stands in for the query when only filters were used.
const FilteredSearchLabel = "Filtered search"

// Filters are the structured equality filters.
type Filters struct {
	Author       string     `json:"author,omitempty"`
	Category     string     `json:"category,omitempty"`
	CollectionID string     `json:"collectionId,omitempty"`
	Liked        LikedState `json:"liked,omitempty"`
}

// Active reports whether any equality filter is set.
func (f Filters) Active() bool {
	return f.Author != "" || f.Category != "" || f.CollectionID != "" || f.Liked != LikedAny
}

// DateRange bounds createdAt inclusively. A nil bound is unbounded.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// LengthRange bounds the text length in characters. Max == 0 means no upper bound.
type LengthRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BooleanSearch holds AND / NOT / OR term lists matched against text or author.
type BooleanSearch struct {
	MustInclude []string `json:"mustInclude"`
	MustExclude []string `json:"mustExclude"`
	AnyOf       []string `json:"anyOf"`
}

// Active reports whether any non-blank term is present.
func (b BooleanSearch) Active() bool {
	return len(cleanTerms(b.MustInclude)) > 0 ||
		len(cleanTerms(b.MustExclude)) > 0 ||
		len(cleanTerms(b.AnyOf)) > 0
}

// AdvancedFilters is the caller-held advanced search configuration.
type AdvancedFilters struct {
	DateRange     DateRange     `json:"dateRange"`
	QuoteLength   LengthRange   `json:"quoteLength"`
	BooleanSearch BooleanSearch `json:"booleanSearch"`
	SortBy        SortKey       `json:"sortBy"`
	SortOrder     SortOrder     `json:"sortOrder"`
}

// DefaultAdvancedFilters returns unbounded ranges sorted by relevance.
func DefaultAdvancedFilters() AdvancedFilters {
	return AdvancedFilters{
		BooleanSearch: BooleanSearch{
			MustInclude: []string{},
			MustExclude: []string{},
			AnyOf:       []string{},
		},
		SortBy:    SortRelevance,
		SortOrder: OrderDesc,
	}
}

// Active reports whether any range bound or boolean term is set. Sorting is
// not a filter.
func (a AdvancedFilters) Active() bool {
	return a.DateRange.Start != nil ||
		a.DateRange.End != nil ||
		a.QuoteLength.Min > 0 ||
		a.QuoteLength.Max > 0 ||
		a.BooleanSearch.Active()
}

// Criteria is everything a caller specifies for one search.
type Criteria struct {
	Query    string          `json:"query"`
	Filters  Filters         `json:"filters"`
	Advanced AdvancedFilters `json:"advanced"`
}

// HasIntent reports whether the caller asked for anything. Searches without
// intent return no results.
func (c Criteria) HasIntent() bool {
	return strings.TrimSpace(c.Query) != "" || c.Filters.Active() || c.Advanced.Active()
}

// Label is the string recorded in history and analytics for this search.
func (c Criteria) Label() string {
	if q := strings.TrimSpace(c.Query); q != "" {
		return c.Query
	}
	return FilteredSearchLabel
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy so snapshots do not alias caller-held slices.
func (a AdvancedFilters) Clone() AdvancedFilters {
	out := a
	if a.DateRange.Start != nil {
		s := *a.DateRange.Start
		out.DateRange.Start = &s
	}
	if a.DateRange.End != nil {
		e := *a.DateRange.End
		out.DateRange.End = &e
	}
	out.BooleanSearch = BooleanSearch{
		MustInclude: append([]string{}, a.BooleanSearch.MustInclude...),
		MustExclude: append([]string{}, a.BooleanSearch.MustExclude...),
		AnyOf:       append([]string{}, a.BooleanSearch.AnyOf...),
	}
	return out
}

// Clone returns a deep copy of the criteria.
func (c Criteria) Clone() Criteria {
	c.Advanced = c.Advanced.Clone()
	return c
}
