package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// Indexer is an in-memory full-text index over one corpus snapshot.
// It only answers membership; result order always comes from the corpus.
type Indexer struct {
	bleveIndex bleve.Index
	size       int
}

// NewIndexer builds a Bleve index for every quote in the view.
func NewIndexer(view *corpus.View) (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	batch := index.NewBatch()
	for _, q := range view.Quotes() {
		doc := map[string]interface{}{
			"text":     q.Text,
			"author":   q.Author,
			"category": q.Category,
		}
		if err := batch.Index(q.ID, doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index quote %s: %w", q.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to batch index quotes: %w", err)
	}

	return &Indexer{bleveIndex: index, size: view.Len()}, nil
}

// buildIndexMapping maps the three text attributes with the standard analyzer.
func buildIndexMapping() mapping.IndexMapping {
	quoteMapping := bleve.NewDocumentMapping()
	for _, name := range []string{"text", "author", "category"} {
		quoteMapping.AddFieldMappingsAt(name, bleve.NewTextFieldMapping())
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", quoteMapping)
	return indexMapping
}

// MatchIDs returns the ids of quotes where at least one of the indexed
// fields matches every token of text.
func (i *Indexer) MatchIDs(text string, fields []Field) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if i.size == 0 {
		return ids, nil
	}

	var clauses []query.Query
	for _, f := range fields {
		if f == FieldCollection {
			continue
		}
		mq := bleve.NewMatchQuery(text)
		mq.SetField(string(f))
		mq.SetOperator(query.MatchQueryOperatorAnd)
		clauses = append(clauses, mq)
	}
	if len(clauses) == 0 {
		return ids, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(clauses...), i.size, 0, false)
	results, err := i.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}
	for _, hit := range results.Hits {
		ids[hit.ID] = struct{}{}
	}
	return ids, nil
}

// Count returns the number of indexed quotes.
func (i *Indexer) Count() (uint64, error) {
	n, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return n, nil
}

// Close releases the index.
func (i *Indexer) Close() error {
	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}
	return nil
}
