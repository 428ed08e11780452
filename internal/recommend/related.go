package recommend

import (
	"strings"
	"unicode"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// RelatedCap caps each related list.
const RelatedCap = 3

// Related holds the four independent lists for one focal quote. A quote may
// appear in several lists; none contains the focal quote.
type Related struct {
	SameAuthor     []corpus.Quote `json:"sameAuthor"`
	SameCategory   []corpus.Quote `json:"sameCategory"`
	SameCollection []corpus.Quote `json:"sameCollection"`
	SimilarQuotes  []corpus.Quote `json:"similarQuotes"`
}

// ResolveRelated computes related content for the quote with id. Lists are
// in corpus order.
func ResolveRelated(view *corpus.View, id string) (Related, error) {
	focal, ok := view.Quote(id)
	if !ok {
		return Related{}, corpus.ErrQuoteNotFound
	}

	sharedCollections := view.CollectionsOf(id)
	token := firstToken(focal.Text)

	out := Related{
		SameAuthor:     []corpus.Quote{},
		SameCategory:   []corpus.Quote{},
		SameCollection: []corpus.Quote{},
		SimilarQuotes:  []corpus.Quote{},
	}
	for _, q := range view.Quotes() {
		if q.ID == focal.ID {
			continue
		}
		sameAuthor := q.Author == focal.Author
		if sameAuthor {
			out.SameAuthor = capped(out.SameAuthor, q)
		}
		if focal.Category != "" && q.Category == focal.Category {
			out.SameCategory = capped(out.SameCategory, q)
		}
		for _, c := range sharedCollections {
			if view.InCollection(c.ID, q.ID) {
				out.SameCollection = capped(out.SameCollection, q)
				break
			}
		}
		if sameAuthor || (token != "" && hasToken(q.Text, token)) {
			out.SimilarQuotes = capped(out.SimilarQuotes, q)
		}
	}
	return out, nil
}

func capped(list []corpus.Quote, q corpus.Quote) []corpus.Quote {
	if len(list) >= RelatedCap {
		return list
	}
	return append(list, q)
}

func tokens(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func firstToken(text string) string {
	if t := tokens(text); len(t) > 0 {
		return t[0]
	}
	return ""
}

func hasToken(text, token string) bool {
	for _, t := range tokens(text) {
		if t == token {
			return true
		}
	}
	return false
}
