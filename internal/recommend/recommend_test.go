package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

func view(t *testing.T, quotes []corpus.Quote, collections []corpus.Collection) *corpus.View {
	t.Helper()
	v, errs := corpus.NewView(quotes, collections)
	require.Empty(t, errs)
	return v
}

func ids(quotes []corpus.Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.ID
	}
	return out
}

func recIDs(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Quote.ID
	}
	return out
}

func sampleQuotes() []corpus.Quote {
	return []corpus.Quote{
		{ID: "1", Text: "Be bold", Author: "A", IsLiked: true},
		{ID: "2", Text: "Bold is a choice", Author: "B"},
		{ID: "3", Text: "Fortune favors the bold", Author: "C"},
		{ID: "4", Text: "Boldness has genius", Author: "D", IsLiked: true},
		{ID: "5", Text: "Quiet strength", Author: "A", IsLiked: true},
		{ID: "6", Text: "Another by A", Author: "A"},
	}
}

func TestRecommendations_GeneratorOrderAndCap(t *testing.T) {
	v := view(t, sampleQuotes(), nil)

	got := Recommendations(v, "bold", "A")
	require.Len(t, got, MaxRecommendations)

	assert.Equal(t, []string{"1", "2", "3", "1", "4"}, recIDs(got))
	for i, r := range got[:3] {
		assert.Equal(t, TypeSimilar, r.Type, "item %d", i)
		assert.Equal(t, "Similar to 'bold'", r.Reason)
		assert.Equal(t, 0.8, r.Score)
	}
	for _, r := range got[3:] {
		assert.Equal(t, TypeTrending, r.Type)
		assert.Equal(t, "Popular in your collection", r.Reason)
		assert.Equal(t, 0.9, r.Score)
	}
}

func TestRecommendations_DiscoveryWhenRoom(t *testing.T) {
	v := view(t, sampleQuotes(), nil)

	got := Recommendations(v, "", "A")
	require.Len(t, got, 3)
	assert.Equal(t, TypeTrending, got[0].Type)
	assert.Equal(t, TypeTrending, got[1].Type)

	last := got[2]
	assert.Equal(t, TypeDiscovery, last.Type)
	assert.Equal(t, "6", last.Quote.ID, "discovery skips liked quotes")
	assert.Equal(t, "From your favorite author: A", last.Reason)
	assert.Equal(t, 0.7, last.Score)
}

func TestRecommendations_SkippedGenerators(t *testing.T) {
	v := view(t, []corpus.Quote{{ID: "1", Text: "plain", Author: "A"}}, nil)

	assert.Empty(t, Recommendations(v, "   ", ""))
	assert.Empty(t, Recommendations(corpus.Empty(), "x", "A"))
	assert.Empty(t, Recommendations(nil, "x", "A"))
}

func TestRecommendations_SimilarMatchesAuthor(t *testing.T) {
	v := view(t, []corpus.Quote{
		{ID: "1", Text: "nothing here", Author: "Maya Angelou"},
		{ID: "2", Text: "maya is not the author", Author: "X"},
	}, nil)

	got := Recommendations(v, "MAYA", "")
	assert.Equal(t, []string{"1", "2"}, recIDs(got))
}

func TestResolveRelated(t *testing.T) {
	quotes := []corpus.Quote{
		{ID: "f", Text: "Courage, dear heart", Author: "Lewis", Category: "courage"},
		{ID: "a1", Text: "Different words", Author: "Lewis"},
		{ID: "c1", Text: "Other text", Author: "X", Category: "courage"},
		{ID: "s1", Text: "Some courage today!", Author: "Y"},
		{ID: "m1", Text: "Member text", Author: "Z"},
		{ID: "a2", Text: "More words", Author: "Lewis"},
		{ID: "a3", Text: "Yet more", Author: "Lewis"},
		{ID: "a4", Text: "Too many", Author: "Lewis"},
	}
	collections := []corpus.Collection{
		{ID: "col", Name: "Favorites", QuoteIDs: []string{"m1", "f", "c1"}},
		{ID: "other", Name: "Other", QuoteIDs: []string{"s1"}},
	}
	v := view(t, quotes, collections)

	got, err := ResolveRelated(v, "f")
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(got.SameAuthor))
	assert.Equal(t, []string{"c1"}, ids(got.SameCategory))
	assert.Equal(t, []string{"c1", "m1"}, ids(got.SameCollection))
	assert.Equal(t, []string{"a1", "s1", "a2"}, ids(got.SimilarQuotes))

	for _, list := range [][]corpus.Quote{got.SameAuthor, got.SameCategory, got.SameCollection, got.SimilarQuotes} {
		assert.NotContains(t, ids(list), "f")
		assert.LessOrEqual(t, len(list), RelatedCap)
	}
}

func TestResolveRelated_EmptyCategoryAndNoCollections(t *testing.T) {
	v := view(t, []corpus.Quote{
		{ID: "1", Text: "alone", Author: "A"},
		{ID: "2", Text: "also no category", Author: "B"},
	}, nil)

	got, err := ResolveRelated(v, "1")
	require.NoError(t, err)
	assert.Empty(t, got.SameCategory)
	assert.Empty(t, got.SameCollection)
	assert.NotNil(t, got.SameCollection)
}

func TestResolveRelated_UnknownQuote(t *testing.T) {
	_, err := ResolveRelated(corpus.Empty(), "missing")
	assert.ErrorIs(t, err, corpus.ErrQuoteNotFound)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"be", "bold"}, tokens("  Be, bold!! "))
	assert.Equal(t, "", firstToken("... !!"))
}
