package corpus

import (
	"fmt"
	"strings"
)

// View is an immutable, validated snapshot of the corpus.
type View struct {
	quotes      []Quote
	byID        map[string]int
	collections []viewCollection
	collByID    map[string]int

	// memberOf maps a quote id to indexes into collections, in collection order.
	memberOf map[string][]int
}

type viewCollection struct {
	Collection
	members map[string]struct{}
}

// IngestError describes an entry rejected at the ingestion boundary.
type IngestError struct {
	Kind   string // "quote" or "collection"
	Index  int
	ID     string
	Reason string
}

func (e *IngestError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q (index %d): %s", e.Kind, e.ID, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s at index %d: %s", e.Kind, e.Index, e.Reason)
}

// Empty returns a view with no quotes and no collections.
func Empty() *View {
	v, _ := NewView(nil, nil)
	return v
}

// NewView validates quotes and collections and builds a snapshot.
//
// Malformed entries are coerced where a sensible default exists and rejected
// otherwise. Rejections are returned alongside the view; they never prevent
// the rest of the corpus from being ingested.
func NewView(quotes []Quote, collections []Collection) (*View, []error) {
	v := &View{
		quotes:   make([]Quote, 0, len(quotes)),
		byID:     make(map[string]int, len(quotes)),
		collByID: make(map[string]int, len(collections)),
		memberOf: make(map[string][]int),
	}
	var rejected []error

	for i, q := range quotes {
		q.ID = strings.TrimSpace(q.ID)
		q.Text = strings.TrimSpace(q.Text)
		q.Author = strings.TrimSpace(q.Author)
		q.Category = strings.TrimSpace(q.Category)
		q.Source = strings.TrimSpace(q.Source)

		if q.ID == "" {
			rejected = append(rejected, &IngestError{Kind: "quote", Index: i, Reason: "empty id"})
			continue
		}
		if q.Text == "" {
			rejected = append(rejected, &IngestError{Kind: "quote", Index: i, ID: q.ID, Reason: "empty text"})
			continue
		}
		if _, dup := v.byID[q.ID]; dup {
			rejected = append(rejected, &IngestError{Kind: "quote", Index: i, ID: q.ID, Reason: "duplicate id"})
			continue
		}
		if q.Author == "" {
			q.Author = UnknownAuthor
		}
		if q.Tags == nil {
			q.Tags = []string{}
		} else {
			q.Tags = append([]string(nil), q.Tags...)
		}

		v.byID[q.ID] = len(v.quotes)
		v.quotes = append(v.quotes, q)
	}

	for i, c := range collections {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			rejected = append(rejected, &IngestError{Kind: "collection", Index: i, Reason: "empty id"})
			continue
		}
		if _, dup := v.collByID[c.ID]; dup {
			rejected = append(rejected, &IngestError{Kind: "collection", Index: i, ID: c.ID, Reason: "duplicate id"})
			continue
		}

		vc := viewCollection{
			Collection: Collection{ID: c.ID, Name: c.Name, QuoteIDs: make([]string, 0, len(c.QuoteIDs))},
			members:    make(map[string]struct{}, len(c.QuoteIDs)),
		}
		idx := len(v.collections)
		for _, qid := range c.QuoteIDs {
			qid = strings.TrimSpace(qid)
			if _, known := v.byID[qid]; !known {
				continue
			}
			if _, seen := vc.members[qid]; seen {
				continue
			}
			vc.members[qid] = struct{}{}
			vc.QuoteIDs = append(vc.QuoteIDs, qid)
			v.memberOf[qid] = append(v.memberOf[qid], idx)
		}

		v.collByID[c.ID] = idx
		v.collections = append(v.collections, vc)
	}

	return v, rejected
}

// Len returns the number of ingested quotes.
func (v *View) Len() int { return len(v.quotes) }

// Quotes returns all quotes in ingestion order. The slice must not be modified.
func (v *View) Quotes() []Quote { return v.quotes }

// Quote looks up a quote by id.
func (v *View) Quote(id string) (Quote, bool) {
	i, ok := v.byID[id]
	if !ok {
		return Quote{}, false
	}
	return v.quotes[i], true
}

// Collections returns a copy of all collections in ingestion order.
func (v *View) Collections() []Collection {
	out := make([]Collection, len(v.collections))
	for i, c := range v.collections {
		out[i] = c.Collection
	}
	return out
}

// Collection looks up a collection by id.
func (v *View) Collection(id string) (Collection, bool) {
	i, ok := v.collByID[id]
	if !ok {
		return Collection{}, false
	}
	return v.collections[i].Collection, true
}

// InCollection reports whether the quote belongs to the collection.
func (v *View) InCollection(collectionID, quoteID string) bool {
	i, ok := v.collByID[collectionID]
	if !ok {
		return false
	}
	_, member := v.collections[i].members[quoteID]
	return member
}

// CollectionsOf returns the collections containing the quote.
func (v *View) CollectionsOf(quoteID string) []Collection {
	idxs := v.memberOf[quoteID]
	out := make([]Collection, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, v.collections[i].Collection)
	}
	return out
}
