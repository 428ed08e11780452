package search

import (
	"strings"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// MatchesText reports whether q contains the lowercased needle in any of
// the given fields.
func MatchesText(view *corpus.View, q corpus.Quote, needle string, fields []Field) bool {
	for _, f := range fields {
		switch f {
		case FieldText:
			if strings.Contains(strings.ToLower(q.Text), needle) {
				return true
			}
		case FieldAuthor:
			if strings.Contains(strings.ToLower(q.Author), needle) {
				return true
			}
		case FieldCategory:
			if q.Category != "" && strings.Contains(strings.ToLower(q.Category), needle) {
				return true
			}
		case FieldCollection:
			if matchesCollectionName(view, q.ID, needle) {
				return true
			}
		}
	}
	return false
}

func matchesCollectionName(view *corpus.View, quoteID, needle string) bool {
	for _, c := range view.CollectionsOf(quoteID) {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return true
		}
	}
	return false
}

// MatchesBoolean evaluates the AND / NOT / OR clauses against text or author.
// The clauses combine by AND; an empty anyOf list is vacuously true.
func MatchesBoolean(q corpus.Quote, b BooleanSearch) bool {
	text := strings.ToLower(q.Text)
	author := strings.ToLower(q.Author)
	has := func(term string) bool {
		return strings.Contains(text, term) || strings.Contains(author, term)
	}

	for _, term := range cleanTerms(b.MustInclude) {
		if !has(term) {
			return false
		}
	}
	for _, term := range cleanTerms(b.MustExclude) {
		if has(term) {
			return false
		}
	}

	anyOf := cleanTerms(b.AnyOf)
	if len(anyOf) == 0 {
		return true
	}
	for _, term := range anyOf {
		if has(term) {
			return true
		}
	}
	return false
}
