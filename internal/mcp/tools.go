package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
)

type toolHandler func(args json.RawMessage) (interface{}, error)

func (s *Server) tools() map[string]toolHandler {
	return map[string]toolHandler{
		"quotes_search":         s.toolSearch,
		"quotes_suggest":        s.toolSuggest,
		"quotes_history":        s.toolHistory,
		"quotes_save_search":    s.toolSaveSearch,
		"quotes_load_search":    s.toolLoadSearch,
		"quotes_delete_search":  s.toolDeleteSearch,
		"quotes_saved_searches": s.toolSavedSearches,
		"quotes_analytics":      s.toolAnalytics,
		"quotes_insights":       s.toolInsights,
		"quotes_recommend":      s.toolRecommend,
		"quotes_related":        s.toolRelated,
		"quotes_reload_corpus":  s.toolReloadCorpus,
	}
}

// searchResult is the payload for tools that run a search.
type searchResult struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []corpus.Quote `json:"results"`
}

func newSearchResult(label string, quotes []corpus.Quote) searchResult {
	if quotes == nil {
		quotes = []corpus.Quote{}
	}
	return searchResult{Query: label, Count: len(quotes), Results: quotes}
}

func (s *Server) toolSearch(args json.RawMessage) (interface{}, error) {
	c, err := criteriaArgs(args)
	if err != nil {
		return nil, err
	}
	results := s.session.Search(c)
	s.logger.Debug("search", zap.String("query", c.Query), zap.Int("results", len(results)))
	return newSearchResult(c.Label(), results), nil
}

func (s *Server) toolSuggest(args json.RawMessage) (interface{}, error) {
	var in struct {
		Partial string `json:"partial"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	suggestions := s.session.Suggest(in.Partial)
	if suggestions == nil {
		suggestions = []string{}
	}
	return map[string]interface{}{"suggestions": suggestions}, nil
}

func (s *Server) toolHistory(args json.RawMessage) (interface{}, error) {
	var in struct {
		Clear bool `json:"clear"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Clear {
		s.session.ClearHistory()
	}
	entries := s.session.History()
	if entries == nil {
		entries = []history.Entry{}
	}
	return map[string]interface{}{"history": entries}, nil
}

func (s *Server) toolSaveSearch(args json.RawMessage) (interface{}, error) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	c, err := criteriaArgs(args)
	if err != nil {
		return nil, err
	}
	return s.session.SaveSearch(in.Name, c)
}

func (s *Server) toolLoadSearch(args json.RawMessage) (interface{}, error) {
	id, err := idArg(args)
	if err != nil {
		return nil, err
	}
	saved, results, err := s.session.LoadSavedSearch(id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"savedSearch": saved,
		"search":      newSearchResult(saved.Criteria().Label(), results),
	}, nil
}

func (s *Server) toolDeleteSearch(args json.RawMessage) (interface{}, error) {
	id, err := idArg(args)
	if err != nil {
		return nil, err
	}
	if err := s.session.DeleteSavedSearch(id); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": id}, nil
}

func (s *Server) toolSavedSearches(json.RawMessage) (interface{}, error) {
	saved := s.session.SavedSearches()
	if saved == nil {
		saved = []history.SavedSearch{}
	}
	return map[string]interface{}{"savedSearches": saved}, nil
}

func (s *Server) toolAnalytics(args json.RawMessage) (interface{}, error) {
	var in struct {
		Reset bool `json:"reset"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Reset {
		if err := s.session.Do(func(e *engine.Engine) error {
			e.ResetAnalytics()
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return s.session.Analytics(), nil
}

func (s *Server) toolInsights(json.RawMessage) (interface{}, error) {
	return s.session.Insights(), nil
}

func (s *Server) toolRecommend(args json.RawMessage) (interface{}, error) {
	var in struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return map[string]interface{}{"recommendations": s.session.Recommendations(in.Query)}, nil
}

func (s *Server) toolRelated(args json.RawMessage) (interface{}, error) {
	id, err := idArg(args)
	if err != nil {
		return nil, err
	}
	return s.session.Related(id)
}

func (s *Server) toolReloadCorpus(json.RawMessage) (interface{}, error) {
	if s.reload == nil {
		return nil, errors.New("corpus reload is not configured")
	}
	doc, err := s.reload()
	if err != nil {
		return nil, fmt.Errorf("reload corpus: %w", err)
	}
	issues := s.session.UpdateData(doc.Quotes, doc.Collections)
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Error())
	}
	if len(issues) > 0 {
		s.logger.Warn("corpus reloaded with issues", zap.Int("issues", len(issues)))
	}
	return map[string]interface{}{
		"quotes":      len(doc.Quotes),
		"collections": len(doc.Collections),
		"issues":      messages,
	}, nil
}

func idArg(args json.RawMessage) (string, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.ID) == "" {
		return "", fmt.Errorf("%w: id is required", errInvalidArguments)
	}
	return in.ID, nil
}

// criteriaSchema describes the search criteria accepted by several tools.
func criteriaSchema() map[string]interface{} {
	stringList := map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "Case-insensitive text matched against text, author, category and collection names",
		},
		"filters": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"author":       map[string]interface{}{"type": "string"},
				"category":     map[string]interface{}{"type": "string"},
				"collectionId": map[string]interface{}{"type": "string"},
				"liked":        map[string]interface{}{"type": "string", "enum": []string{"", "liked", "unliked"}},
			},
		},
		"advanced": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"dateRange": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"start": map[string]interface{}{"type": "string", "format": "date-time"},
						"end":   map[string]interface{}{"type": "string", "format": "date-time"},
					},
				},
				"quoteLength": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"min": map[string]interface{}{"type": "integer"},
						"max": map[string]interface{}{"type": "integer", "description": "0 means no upper bound"},
					},
				},
				"booleanSearch": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"mustInclude": stringList,
						"mustExclude": stringList,
						"anyOf":       stringList,
					},
				},
				"sortBy":    map[string]interface{}{"type": "string", "enum": []string{"relevance", "date", "author", "category", "length"}},
				"sortOrder": map[string]interface{}{"type": "string", "enum": []string{"asc", "desc"}},
			},
		},
	}
}

func idSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{"type": "string", "description": description},
		},
		"required": []string{"id"},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

func toolDefinitions() []map[string]interface{} {
	saveProps := criteriaSchema()
	saveProps["name"] = map[string]interface{}{"type": "string", "description": "Display name for the saved search"}

	return []map[string]interface{}{
		{
			"name":        "quotes_search",
			"description": "Search the quote corpus with a query, equality filters and advanced filters. Records history and analytics when the search has intent.",
			"inputSchema": map[string]interface{}{"type": "object", "properties": criteriaSchema()},
		},
		{
			"name":        "quotes_suggest",
			"description": "Suggest authors, categories and quote prefixes for a partial query.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"partial": map[string]interface{}{"type": "string"},
				},
				"required": []string{"partial"},
			},
		},
		{
			"name":        "quotes_history",
			"description": "List recent searches, newest first. Set clear to empty the history first.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"clear": map[string]interface{}{"type": "boolean"},
				},
			},
		},
		{
			"name":        "quotes_save_search",
			"description": "Save the given query and filters under a name.",
			"inputSchema": map[string]interface{}{"type": "object", "properties": saveProps, "required": []string{"name"}},
		},
		{
			"name":        "quotes_load_search",
			"description": "Run a saved search and increment its use count.",
			"inputSchema": idSchema("Saved search ID"),
		},
		{
			"name":        "quotes_delete_search",
			"description": "Delete a saved search.",
			"inputSchema": idSchema("Saved search ID"),
		},
		{
			"name":        "quotes_saved_searches",
			"description": "List saved searches in creation order.",
			"inputSchema": emptySchema(),
		},
		{
			"name":        "quotes_analytics",
			"description": "Show search analytics. Set reset to clear them first.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"reset": map[string]interface{}{"type": "boolean"},
				},
			},
		},
		{
			"name":        "quotes_insights",
			"description": "Derive favorites, corpus statistics and the seven-day search trend.",
			"inputSchema": emptySchema(),
		},
		{
			"name":        "quotes_recommend",
			"description": "Recommend up to five quotes: similar to the query, liked quotes and unliked quotes by the favorite author.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{"type": "string"},
				},
			},
		},
		{
			"name":        "quotes_related",
			"description": "Quotes sharing an author, category, collection or first word with the given quote.",
			"inputSchema": idSchema("Quote ID"),
		},
		{
			"name":        "quotes_reload_corpus",
			"description": "Re-read the corpus file and rebuild the search index.",
			"inputSchema": emptySchema(),
		},
	}
}
