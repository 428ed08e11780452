package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func fixtureView(t *testing.T) *corpus.View {
	t.Helper()
	quotes := []corpus.Quote{
		{ID: "1", Text: "Be bold", Author: "A", Category: "courage", CreatedAt: day(1)},
		{ID: "2", Text: "Stay humble", Author: "B", Category: "wisdom", CreatedAt: day(2), IsLiked: true},
		{ID: "3", Text: "Bold moves win the day", Author: "C", CreatedAt: day(3)},
		{ID: "4", Text: "Humble and bold at once", Author: "A", Category: "courage", CreatedAt: day(4), IsLiked: true},
	}
	collections := []corpus.Collection{
		{ID: "c1", Name: "Morning Motivation", QuoteIDs: []string{"2", "3"}},
	}
	v, rejected := corpus.NewView(quotes, collections)
	require.Empty(t, rejected)
	return v
}

func ids(quotes []corpus.Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.ID
	}
	return out
}

func TestSearch_QueryScenario(t *testing.T) {
	v, _ := corpus.NewView([]corpus.Quote{
		{ID: "1", Text: "Be bold", Author: "A", Category: "courage"},
		{ID: "2", Text: "Stay humble", Author: "B", Category: "wisdom"},
	}, nil)
	s := NewSearcher(v, Options{})

	got := s.Search(Criteria{Query: "bold", Advanced: DefaultAdvancedFilters()})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearch_MustExcludeScenario(t *testing.T) {
	v, _ := corpus.NewView([]corpus.Quote{
		{ID: "1", Text: "Be bold", Author: "A", Category: "courage"},
		{ID: "2", Text: "Stay humble", Author: "B", Category: "wisdom"},
	}, nil)
	s := NewSearcher(v, Options{})

	adv := DefaultAdvancedFilters()
	adv.BooleanSearch.MustExclude = []string{"humble"}
	got := s.Search(Criteria{Advanced: adv})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearch_NoIntentReturnsEmpty(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	got := s.Search(Criteria{Query: "   ", Advanced: DefaultAdvancedFilters()})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	adv := DefaultAdvancedFilters()
	adv.SortBy = SortLength
	assert.Empty(t, s.Search(Criteria{Advanced: adv}), "sorting alone is not intent")
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})
	adv := DefaultAdvancedFilters()

	assert.Equal(t, []string{"1", "3", "4"}, ids(s.Search(Criteria{Query: "BOLD", Advanced: adv})))
	assert.Equal(t, []string{"2"}, ids(s.Search(Criteria{Query: "wis", Advanced: adv})))
	assert.Equal(t, []string{"2", "3"}, ids(s.Search(Criteria{Query: "motivation", Advanced: adv})))
}

func TestSearch_FieldSetIsConfigurable(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{Fields: []Field{FieldText}})

	got := s.Search(Criteria{Query: "motivation", Advanced: DefaultAdvancedFilters()})
	assert.Empty(t, got)
}

func TestSearch_AuthorFilterReturnsExactSubset(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	got := s.Search(Criteria{Filters: Filters{Author: "A"}, Advanced: DefaultAdvancedFilters()})
	require.Equal(t, []string{"1", "4"}, ids(got))
	for _, q := range got {
		assert.Equal(t, "A", q.Author)
	}
}

func TestSearch_StructuredFilters(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})
	adv := DefaultAdvancedFilters()

	assert.Equal(t, []string{"1", "4"}, ids(s.Search(Criteria{Filters: Filters{Category: "courage"}, Advanced: adv})))
	assert.Equal(t, []string{"2", "3"}, ids(s.Search(Criteria{Filters: Filters{CollectionID: "c1"}, Advanced: adv})))
	assert.Equal(t, []string{"2", "4"}, ids(s.Search(Criteria{Filters: Filters{Liked: LikedOnly}, Advanced: adv})))
	assert.Equal(t, []string{"1", "3"}, ids(s.Search(Criteria{Filters: Filters{Liked: UnlikedOnly}, Advanced: adv})))
}

func TestSearch_BooleanClauses(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	adv := DefaultAdvancedFilters()
	adv.BooleanSearch.MustInclude = []string{"bold", "HUMBLE"}
	assert.Equal(t, []string{"4"}, ids(s.Search(Criteria{Advanced: adv})))

	adv = DefaultAdvancedFilters()
	adv.BooleanSearch.AnyOf = []string{"stay", "moves"}
	assert.Equal(t, []string{"2", "3"}, ids(s.Search(Criteria{Advanced: adv})))

	adv = DefaultAdvancedFilters()
	adv.BooleanSearch.AnyOf = []string{"bold"}
	adv.BooleanSearch.MustExclude = []string{"humble"}
	assert.Equal(t, []string{"1", "3"}, ids(s.Search(Criteria{Advanced: adv})))
}

func TestSearch_BooleanMatchesAuthor(t *testing.T) {
	q := corpus.Quote{Text: "nothing here", Author: "Seneca"}
	assert.True(t, MatchesBoolean(q, BooleanSearch{MustInclude: []string{"seneca"}}))
	assert.False(t, MatchesBoolean(q, BooleanSearch{MustExclude: []string{"SEN"}}))
	assert.True(t, MatchesBoolean(q, BooleanSearch{AnyOf: []string{" ", ""}}), "blank terms are ignored")
}

func TestSearch_DateRangeInclusive(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	start, end := day(2), day(3)
	adv := DefaultAdvancedFilters()
	adv.DateRange = DateRange{Start: &start, End: &end}
	assert.Equal(t, []string{"2", "3"}, ids(s.Search(Criteria{Advanced: adv})))

	adv.DateRange = DateRange{Start: &end}
	assert.Equal(t, []string{"3", "4"}, ids(s.Search(Criteria{Advanced: adv})))
}

func TestSearch_LengthRange(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	adv := DefaultAdvancedFilters()
	adv.QuoteLength = LengthRange{Min: 7, Max: 11}
	assert.Equal(t, []string{"1", "2"}, ids(s.Search(Criteria{Advanced: adv})))

	adv.QuoteLength = LengthRange{Min: 20, Max: 5}
	assert.Empty(t, s.Search(Criteria{Advanced: adv}), "min above max yields nothing")
}

func TestSearch_SortByLengthAscending(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{})

	adv := DefaultAdvancedFilters()
	adv.SortBy = SortLength
	adv.SortOrder = OrderAsc
	got := s.Search(Criteria{Filters: Filters{Liked: LikedAny}, Query: "e", Advanced: adv})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, TextLength(got[i-1]), TextLength(got[i]))
	}
}

func TestSort_Keys(t *testing.T) {
	base := fixtureView(t).Quotes()
	clone := func() []corpus.Quote { return append([]corpus.Quote(nil), base...) }

	q := clone()
	Sort(q, SortRelevance, OrderAsc)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(q))

	q = clone()
	Sort(q, SortDate, OrderDesc)
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(q))

	q = clone()
	Sort(q, SortAuthor, OrderAsc)
	assert.Equal(t, []string{"1", "4", "2", "3"}, ids(q))

	q = clone()
	Sort(q, SortCategory, OrderAsc)
	assert.Equal(t, "3", q[0].ID, "empty category sorts first ascending")
	assert.Equal(t, "2", q[3].ID)
}

func TestSearch_FullTextMode(t *testing.T) {
	s := NewSearcher(fixtureView(t), Options{Mode: ModeFullText})
	defer s.Close()

	require.Equal(t, ModeFullText, s.Mode())
	adv := DefaultAdvancedFilters()

	assert.Equal(t, []string{"1", "3", "4"}, ids(s.Search(Criteria{Query: "Bold", Advanced: adv})))
	assert.Equal(t, []string{"4"}, ids(s.Search(Criteria{Query: "humble bold", Advanced: adv})))
	assert.Equal(t, []string{"2", "3"}, ids(s.Search(Criteria{Query: "morning", Advanced: adv})), "collection names still match by substring")
}

func TestIndexer_Count(t *testing.T) {
	idx, err := NewIndexer(fixtureView(t))
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)
}

func TestCriteria_Label(t *testing.T) {
	assert.Equal(t, "bold", Criteria{Query: "bold"}.Label())
	assert.Equal(t, FilteredSearchLabel, Criteria{Filters: Filters{Author: "A"}}.Label())
}
