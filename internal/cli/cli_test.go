package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/config"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/storage"
)

const testCorpus = `{
  "quotes": [
    {"id": "1", "text": "Be bold", "author": "A", "category": "courage", "createdAt": "2024-05-01T09:00:00Z"},
    {"id": "2", "text": "Stay humble", "author": "B", "category": "wisdom", "isLiked": true, "createdAt": "2024-05-10T09:00:00Z"},
    {"id": "3", "text": "Bold moves win", "author": "A", "category": "courage", "createdAt": "2024-05-20T09:00:00Z"}
  ],
  "collections": [
    {"id": "c1", "name": "Morning", "quoteIds": ["2"]}
  ]
}`

// setupWorkspace writes a corpus and a config using SQLite state in a temp
// dir, and returns the config path.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv(config.CorpusEnv, "")
	dir := t.TempDir()

	corpusPath := filepath.Join(dir, "quotes.json")
	if err := os.WriteFile(corpusPath, []byte(testCorpus), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Corpus = corpusPath
	cfg.LogLevel = "error"
	cfg.Storage.SQLitePath = filepath.Join(dir, "state.db")
	cfgPath := filepath.Join(dir, "config.yml")
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCmd()
	want := []string{"search", "suggest", "history", "saved", "analytics", "insights",
		"recommend", "related", "export", "serve", "config", "version"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "corpus", "log-level"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag %q not registered", flag)
		}
	}
}

func TestSearchPersistsHistory(t *testing.T) {
	cfgPath := setupWorkspace(t)

	var results []struct {
		ID string `json:"id"`
	}
	out := mustRun(t, cfgPath, "search", "bold", "--json")
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	mustRun(t, cfgPath, "search", "--liked", "liked")

	var entries []struct {
		Query       string `json:"query"`
		ResultCount int    `json:"resultCount"`
	}
	out = mustRun(t, cfgPath, "history", "--json")
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0].Query != search.FilteredSearchLabel || entries[1].Query != "bold" || entries[1].ResultCount != 2 {
		t.Errorf("unexpected history: %+v", entries)
	}

	mustRun(t, cfgPath, "history", "remove", "bold")
	if _, err := runCLI(t, cfgPath, "history", "remove", "bold"); err == nil {
		t.Error("removing a missing entry should fail")
	}

	mustRun(t, cfgPath, "history", "clear")
	if out := mustRun(t, cfgPath, "history"); !strings.Contains(out, "No recent searches") {
		t.Errorf("expected empty history, got %q", out)
	}
}

func TestSearchWithoutIntent(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out := mustRun(t, cfgPath, "search", "  ")
	if !strings.Contains(out, "Nothing to search for") {
		t.Errorf("unexpected output: %q", out)
	}
	if out := mustRun(t, cfgPath, "history"); !strings.Contains(out, "No recent searches") {
		t.Errorf("search without intent should not be recorded, got %q", out)
	}
}

func TestSearchTextOutput(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out := mustRun(t, cfgPath, "search", "--author", "A", "--sort", "date", "--order", "asc")
	if !strings.Contains(out, `2 results for "Filtered search"`) {
		t.Errorf("missing header: %q", out)
	}
	if strings.Index(out, "Be bold") > strings.Index(out, "Bold moves win") {
		t.Errorf("expected ascending date order: %q", out)
	}
}

func TestSearchFlagValidation(t *testing.T) {
	cfgPath := setupWorkspace(t)

	tests := [][]string{
		{"search", "--liked", "maybe"},
		{"search", "--from", "05/01/2024"},
		{"search", "--sort", "popularity"},
		{"search", "--order", "up"},
		{"search", "--min-length", "-1"},
	}
	for _, args := range tests {
		if _, err := runCLI(t, cfgPath, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestCriteriaFlags(t *testing.T) {
	f := criteriaFlags{
		to:        "2024-05-20",
		from:      "2024-05-01",
		must:      []string{"life"},
		sortBy:    "length",
		sortOrder: "asc",
		maxLength: 40,
	}
	c, err := f.criteria([]string{"be", "bold"})
	if err != nil {
		t.Fatalf("criteria failed: %v", err)
	}
	if c.Query != "be bold" {
		t.Errorf("unexpected query %q", c.Query)
	}

	wantEnd := time.Date(2024, 5, 20, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
	if c.Advanced.DateRange.End == nil || !c.Advanced.DateRange.End.Equal(wantEnd) {
		t.Errorf("end date should cover the whole day, got %v", c.Advanced.DateRange.End)
	}
	if c.Advanced.DateRange.Start == nil || c.Advanced.DateRange.Start.Day() != 1 {
		t.Errorf("unexpected start %v", c.Advanced.DateRange.Start)
	}
	if c.Advanced.BooleanSearch.MustExclude == nil || len(c.Advanced.BooleanSearch.MustExclude) != 0 {
		t.Errorf("unset term lists should stay empty, got %v", c.Advanced.BooleanSearch.MustExclude)
	}
	if c.Advanced.SortBy != search.SortLength || c.Advanced.QuoteLength.Max != 40 {
		t.Errorf("unexpected advanced filters %+v", c.Advanced)
	}
}

func TestSavedSearchCommands(t *testing.T) {
	cfgPath := setupWorkspace(t)

	if out := mustRun(t, cfgPath, "saved", "list"); !strings.Contains(out, "No saved searches") {
		t.Errorf("expected no saved searches, got %q", out)
	}
	mustRun(t, cfgPath, "saved", "save", "Bold ones", "bold")
	if _, err := runCLI(t, cfgPath, "saved", "save", "   "); err == nil {
		t.Error("blank name should be rejected")
	}

	var saved []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		UseCount int    `json:"useCount"`
	}
	out := mustRun(t, cfgPath, "saved", "list", "--json")
	if err := json.Unmarshal([]byte(out), &saved); err != nil || len(saved) != 1 {
		t.Fatalf("unexpected saved list: %v\n%s", err, out)
	}
	id := saved[0].ID

	out = mustRun(t, cfgPath, "saved", "load", id)
	if !strings.Contains(out, "Bold ones: 2 results") {
		t.Errorf("unexpected load output: %q", out)
	}

	mustRun(t, cfgPath, "saved", "rename", id, "Brave", "ones")
	out = mustRun(t, cfgPath, "saved", "list", "--json")
	if err := json.Unmarshal([]byte(out), &saved); err != nil || len(saved) != 1 {
		t.Fatalf("unexpected saved list: %v\n%s", err, out)
	}
	if saved[0].Name != "Brave ones" || saved[0].UseCount != 1 {
		t.Errorf("expected renamed search used once, got %+v", saved[0])
	}

	mustRun(t, cfgPath, "saved", "delete", id)
	if _, err := runCLI(t, cfgPath, "saved", "delete", id); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestAnalyticsAndInsightsCommands(t *testing.T) {
	cfgPath := setupWorkspace(t)
	mustRun(t, cfgPath, "search", "bold")
	mustRun(t, cfgPath, "search", "bold")
	mustRun(t, cfgPath, "search", "humble")

	var snap struct {
		TotalSearches   int `json:"totalSearches"`
		PopularSearches []struct {
			Query string `json:"query"`
			Count int    `json:"count"`
		} `json:"popularSearches"`
	}
	out := mustRun(t, cfgPath, "analytics", "--json")
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if snap.TotalSearches != 3 || len(snap.PopularSearches) == 0 || snap.PopularSearches[0].Query != "bold" {
		t.Errorf("unexpected analytics: %+v", snap)
	}

	var in struct {
		FavoriteAuthor     string `json:"favoriteAuthor"`
		MostQuotedAuthor   string `json:"mostQuotedAuthor"`
		UniqueAuthorsCount int    `json:"uniqueAuthorsCount"`
		SearchTrends       []struct {
			Date string `json:"date"`
		} `json:"searchTrends"`
	}
	out = mustRun(t, cfgPath, "insights", "--json")
	if err := json.Unmarshal([]byte(out), &in); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if in.FavoriteAuthor != "B" || in.MostQuotedAuthor != "A" || in.UniqueAuthorsCount != 2 || len(in.SearchTrends) != 7 {
		t.Errorf("unexpected insights: %+v", in)
	}

	mustRun(t, cfgPath, "analytics", "reset")
	if out := mustRun(t, cfgPath, "analytics"); !strings.Contains(out, "No searches recorded") {
		t.Errorf("expected reset analytics, got %q", out)
	}
}

func TestRecommendAndRelatedCommands(t *testing.T) {
	cfgPath := setupWorkspace(t)

	var recs []struct {
		Type string `json:"type"`
	}
	out := mustRun(t, cfgPath, "recommend", "bold", "--json")
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(recs) != 3 || recs[0].Type != "similar" || recs[2].Type != "trending" {
		t.Errorf("unexpected recommendations: %+v", recs)
	}

	out = mustRun(t, cfgPath, "related", "1")
	if !strings.Contains(out, "Same author (1)") || !strings.Contains(out, "Bold moves win") {
		t.Errorf("unexpected related output: %q", out)
	}
	if _, err := runCLI(t, cfgPath, "related", "missing"); err == nil {
		t.Error("unknown quote should fail")
	}
}

func TestSuggestCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out := mustRun(t, cfgPath, "suggest", "bol")
	if !strings.Contains(out, "Be bold") || !strings.Contains(out, "Bold moves win") {
		t.Errorf("unexpected suggestions: %q", out)
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)
	output := filepath.Join(t.TempDir(), "nested", "bold.json")

	out := mustRun(t, cfgPath, "export", "bold", "--output", output)
	if !strings.Contains(out, "Exported 2 quotes") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	var doc struct {
		TotalQuotes int    `json:"totalQuotes"`
		SearchQuery string `json:"searchQuery"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid export: %v", err)
	}
	if doc.TotalQuotes != 2 || doc.SearchQuery != "bold" {
		t.Errorf("unexpected export document: %+v", doc)
	}
	if _, err := os.Stat(output + ".lock"); !os.IsNotExist(err) {
		t.Error("lock file left behind")
	}

	mustRun(t, cfgPath, "export", "--ids", "3,missing,1", "--output", output)
	data, _ = os.ReadFile(output)
	if err := json.Unmarshal(data, &doc); err != nil || doc.TotalQuotes != 2 {
		t.Errorf("expected two selected quotes exported, got %+v (%v)", doc, err)
	}

	if _, err := runCLI(t, cfgPath, "export"); err == nil {
		t.Error("export without query, filter or ids should fail")
	}
}

func TestFileDownloaderLocked(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")

	lock, err := acquireFileLock(target)
	if err != nil {
		t.Fatalf("acquireFileLock failed: %v", err)
	}
	defer releaseFileLock(lock)

	d := &fileDownloader{path: target}
	if err := d.Download(context.Background(), "ignored.json", []byte("{}")); err == nil {
		t.Error("expected lock conflict")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("locked export should not be written")
	}
}

func TestConfigCommands(t *testing.T) {
	t.Setenv(config.CorpusEnv, "")
	cfgPath := filepath.Join(t.TempDir(), "qd.yml")

	mustRun(t, cfgPath, "config", "init", "--corpus", "/data/quotes.json")
	if _, err := runCLI(t, cfgPath, "config", "init"); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
	mustRun(t, cfgPath, "config", "init", "--force")
	if _, err := os.Stat(cfgPath + ".bak"); err != nil {
		t.Errorf("forced init should keep a backup: %v", err)
	}

	out := mustRun(t, cfgPath, "config", "show")
	if !strings.Contains(out, "backend: sqlite") || !strings.Contains(out, "match_mode: substring") {
		t.Errorf("unexpected config output: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, filepath.Join(t.TempDir(), "unused.yml"), "version")
	if !strings.Contains(out, "Version:") || !strings.Contains(out, "Commit:") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestHTTPRouter(t *testing.T) {
	e := engine.New(context.Background(), storage.NewMemoryStore())
	session := engine.NewSession(e)
	defer session.Close()

	srv := httptest.NewServer(newHTTPRouter(session))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("invalid health JSON: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || health["status"] != "ok" {
		t.Errorf("unexpected health response %d %v", resp.StatusCode, health)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "quote_discovery_searches_total") {
		t.Error("metrics endpoint should expose search counter")
	}
}

func TestOpenStorageBackends(t *testing.T) {
	logger, err := newLogger("error", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Storage.Backend = config.BackendMemory
	kv, err := openStorage(context.Background(), cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.(*storage.MemoryStore); !ok {
		t.Errorf("expected memory store, got %T", kv)
	}

	cfg.Storage.Backend = config.BackendRedis
	cfg.Storage.RedisURL = "not a url"
	kv, err = openStorage(context.Background(), cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.(*storage.MemoryStore); !ok {
		t.Errorf("unreachable redis should fall back to memory, got %T", kv)
	}

	cfg.Storage.Backend = "postgres"
	if _, err := openStorage(context.Background(), cfg, logger); err == nil {
		t.Error("unknown backend should fail")
	}

	if _, err := newLogger("loud", io.Discard); err == nil {
		t.Error("invalid level should fail")
	}
}
