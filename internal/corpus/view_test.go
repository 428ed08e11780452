package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView_CoercesAndRejects(t *testing.T) {
	quotes := []Quote{
		{ID: "1", Text: "  Be bold ", Author: " A ", Category: "courage"},
		{ID: "", Text: "no id"},
		{ID: "2", Text: "   "},
		{ID: "1", Text: "duplicate"},
		{ID: "3", Text: "Stay humble"},
	}

	v, rejected := NewView(quotes, nil)

	require.Len(t, rejected, 3)
	assert.Equal(t, 2, v.Len())

	q, ok := v.Quote("1")
	require.True(t, ok)
	assert.Equal(t, "Be bold", q.Text)
	assert.Equal(t, "A", q.Author)
	assert.NotNil(t, q.Tags)

	q3, ok := v.Quote("3")
	require.True(t, ok)
	assert.Equal(t, UnknownAuthor, q3.Author)

	var ie *IngestError
	require.True(t, errors.As(rejected[2], &ie))
	assert.Equal(t, "duplicate id", ie.Reason)
}

func TestNewView_Collections(t *testing.T) {
	quotes := []Quote{
		{ID: "1", Text: "a"},
		{ID: "2", Text: "b"},
	}
	collections := []Collection{
		{ID: "c1", Name: "Morning", QuoteIDs: []string{"1", "ghost", "1", "2"}},
		{ID: "", Name: "broken"},
		{ID: "c2", Name: "Evening", QuoteIDs: []string{"2"}},
	}

	v, rejected := NewView(quotes, collections)
	require.Len(t, rejected, 1)

	c1, ok := v.Collection("c1")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, c1.QuoteIDs)

	assert.True(t, v.InCollection("c1", "1"))
	assert.False(t, v.InCollection("c2", "1"))
	assert.False(t, v.InCollection("missing", "1"))

	of := v.CollectionsOf("2")
	require.Len(t, of, 2)
	assert.Equal(t, "c1", of[0].ID)
	assert.Equal(t, "c2", of[1].ID)
}

func TestEmpty(t *testing.T) {
	v := Empty()
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Collections())
}

func TestLoadFile_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "quotes.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"quotes": [{"id": "1", "text": "Be bold", "author": "A", "isLiked": true, "createdAt": "2024-05-01T10:00:00Z"}],
		"collections": [{"id": "c1", "name": "Fav", "quoteIds": ["1"]}]
	}`), 0644))

	doc, err := LoadFile(jsonPath)
	require.NoError(t, err)
	require.Len(t, doc.Quotes, 1)
	assert.True(t, doc.Quotes[0].IsLiked)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), doc.Quotes[0].CreatedAt.UTC())
	assert.Equal(t, []string{"1"}, doc.Collections[0].QuoteIDs)

	yamlPath := filepath.Join(dir, "quotes.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
quotes:
  - id: "1"
    text: Stay humble
    author: B
    isLiked: false
collections:
  - id: c1
    name: Fav
    quoteIds: ["1"]
`), 0644))

	doc, err = LoadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, doc.Quotes, 1)
	assert.Equal(t, "Stay humble", doc.Quotes[0].Text)
	assert.Equal(t, "Fav", doc.Collections[0].Name)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
