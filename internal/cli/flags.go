package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

// criteriaFlags collects the search filters shared by search, saved save
// and export.
type criteriaFlags struct {
	author     string
	category   string
	collection string
	liked      string
	from       string
	to         string
	minLength  int
	maxLength  int
	must       []string
	exclude    []string
	anyOf      []string
	sortBy     string
	sortOrder  string
}

func (f *criteriaFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.author, "author", "", "Only quotes by this author (exact match)")
	fs.StringVar(&f.category, "category", "", "Only quotes in this category (exact match)")
	fs.StringVar(&f.collection, "collection", "", "Only quotes in the collection with this ID")
	fs.StringVar(&f.liked, "liked", "", "Liked state: liked or unliked")
	fs.StringVar(&f.from, "from", "", "Created on or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Created on or before this date (YYYY-MM-DD, inclusive)")
	fs.IntVar(&f.minLength, "min-length", 0, "Minimum quote length in characters")
	fs.IntVar(&f.maxLength, "max-length", 0, "Maximum quote length in characters (0 = no limit)")
	fs.StringSliceVar(&f.must, "must", nil, "Terms that must all appear in text or author")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "Terms that must not appear in text or author")
	fs.StringSliceVar(&f.anyOf, "any", nil, "At least one of these terms must appear")
	fs.StringVar(&f.sortBy, "sort", string(search.SortRelevance), "Sort by: relevance, date, author, category, length")
	fs.StringVar(&f.sortOrder, "order", string(search.OrderDesc), "Sort order: asc or desc")
}

// criteria builds search criteria from the flags and the query words.
func (f *criteriaFlags) criteria(args []string) (search.Criteria, error) {
	c := search.Criteria{
		Query:    joinArgs(args),
		Advanced: search.DefaultAdvancedFilters(),
	}
	c.Filters = search.Filters{
		Author:       f.author,
		Category:     f.category,
		CollectionID: f.collection,
	}

	switch search.LikedState(f.liked) {
	case search.LikedAny, search.LikedOnly, search.UnlikedOnly:
		c.Filters.Liked = search.LikedState(f.liked)
	default:
		return c, fmt.Errorf("--liked must be liked or unliked, got %q", f.liked)
	}

	if f.from != "" {
		start, err := time.ParseInLocation(time.DateOnly, f.from, time.Local)
		if err != nil {
			return c, fmt.Errorf("--from: %w", err)
		}
		c.Advanced.DateRange.Start = &start
	}
	if f.to != "" {
		day, err := time.ParseInLocation(time.DateOnly, f.to, time.Local)
		if err != nil {
			return c, fmt.Errorf("--to: %w", err)
		}
		end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		c.Advanced.DateRange.End = &end
	}

	if f.minLength < 0 || f.maxLength < 0 {
		return c, fmt.Errorf("length bounds must not be negative")
	}
	c.Advanced.QuoteLength = search.LengthRange{Min: f.minLength, Max: f.maxLength}

	if f.must != nil {
		c.Advanced.BooleanSearch.MustInclude = f.must
	}
	if f.exclude != nil {
		c.Advanced.BooleanSearch.MustExclude = f.exclude
	}
	if f.anyOf != nil {
		c.Advanced.BooleanSearch.AnyOf = f.anyOf
	}

	switch search.SortKey(f.sortBy) {
	case search.SortRelevance, search.SortDate, search.SortAuthor, search.SortCategory, search.SortLength:
		c.Advanced.SortBy = search.SortKey(f.sortBy)
	default:
		return c, fmt.Errorf("--sort: unknown key %q", f.sortBy)
	}
	switch search.SortOrder(f.sortOrder) {
	case search.OrderAsc, search.OrderDesc:
		c.Advanced.SortOrder = search.SortOrder(f.sortOrder)
	default:
		return c, fmt.Errorf("--order must be asc or desc, got %q", f.sortOrder)
	}
	return c, nil
}
