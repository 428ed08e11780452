/*
Package recommend generates heuristic recommendations and resolves content
related to a single quote.
*/
package recommend

import (
	"fmt"
	"strings"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// Type identifies the generator a recommendation came from.
type Type string

const (
	TypeSimilar   Type = "similar"
	TypeTrending  Type = "trending"
	TypeDiscovery Type = "discovery"
)

const (
	// MaxRecommendations caps the concatenated list.
	MaxRecommendations = 5

	similarCap   = 3
	trendingCap  = 2
	discoveryCap = 1

	similarScore   = 0.8
	trendingScore  = 0.9
	discoveryScore = 0.7

	trendingReason = "Popular in your collection"
)

// Recommendation is one suggested quote. Score is informational and does
// not affect ordering.
type Recommendation struct {
	Type   Type         `json:"type"`
	Quote  corpus.Quote `json:"quote"`
	Reason string       `json:"reason"`
	Score  float64      `json:"score"`
}

// Recommendations concatenates the similar, trending and discovery
// generators in that order and truncates to MaxRecommendations. A blank
// query skips similar; a blank favoriteAuthor skips discovery.
func Recommendations(view *corpus.View, query, favoriteAuthor string) []Recommendation {
	out := make([]Recommendation, 0, MaxRecommendations)
	if view == nil {
		return out
	}
	quotes := view.Quotes()

	if needle := strings.ToLower(strings.TrimSpace(query)); needle != "" {
		reason := fmt.Sprintf("Similar to '%s'", query)
		out = appendMatching(out, quotes, similarCap, TypeSimilar, reason, similarScore, func(q corpus.Quote) bool {
			return strings.Contains(strings.ToLower(q.Text), needle) ||
				strings.Contains(strings.ToLower(q.Author), needle)
		})
	}

	out = appendMatching(out, quotes, trendingCap, TypeTrending, trendingReason, trendingScore, func(q corpus.Quote) bool {
		return q.IsLiked
	})

	if favoriteAuthor != "" {
		reason := "From your favorite author: " + favoriteAuthor
		out = appendMatching(out, quotes, discoveryCap, TypeDiscovery, reason, discoveryScore, func(q corpus.Quote) bool {
			return q.Author == favoriteAuthor && !q.IsLiked
		})
	}

	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func appendMatching(out []Recommendation, quotes []corpus.Quote, limit int, typ Type, reason string, score float64, keep func(corpus.Quote) bool) []Recommendation {
	n := 0
	for _, q := range quotes {
		if n == limit {
			break
		}
		if keep(q) {
			out = append(out, Recommendation{Type: typ, Quote: q, Reason: reason, Score: score})
			n++
		}
	}
	return out
}
