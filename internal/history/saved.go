package history

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
)

var (
	// ErrNotFound is returned for an unknown saved search id.
	ErrNotFound = errors.New("saved search not found")

	// ErrEmptyName is returned when saving or renaming with a blank name.
	ErrEmptyName = errors.New("saved search name is empty")
)

// SavedSearch is a named snapshot of a query and its filters.
type SavedSearch struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Query     string                 `json:"query"`
	Filters   search.Filters         `json:"filters"`
	Advanced  search.AdvancedFilters `json:"advancedFilters"`
	CreatedAt time.Time              `json:"createdAt"`
	UseCount  int                    `json:"useCount"`
}

// Criteria returns the stored search as criteria ready to execute.
func (s SavedSearch) Criteria() search.Criteria {
	return search.Criteria{
		Query:    s.Query,
		Filters:  s.Filters,
		Advanced: s.Advanced.Clone(),
	}
}

// SavedStore holds saved searches in creation order.
type SavedStore struct {
	items []SavedSearch
	newID func() string
	now   func() time.Time
}

// NewSavedStore creates an empty store. Nil generators fall back to UUIDv7
// ids and the wall clock.
func NewSavedStore(newID func() string, now func() time.Time) *SavedStore {
	if newID == nil {
		newID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	if now == nil {
		now = time.Now
	}
	return &SavedStore{newID: newID, now: now}
}

// Save snapshots c under name.
func (s *SavedStore) Save(name string, c search.Criteria) (SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedSearch{}, ErrEmptyName
	}
	c = c.Clone()
	saved := SavedSearch{
		ID:        s.newID(),
		Name:      name,
		Query:     c.Query,
		Filters:   c.Filters,
		Advanced:  c.Advanced,
		CreatedAt: s.now(),
	}
	s.items = append(s.items, saved)
	return saved, nil
}

// Load marks the saved search as used and returns it.
func (s *SavedStore) Load(id string) (SavedSearch, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return SavedSearch{}, ErrNotFound
	}
	s.items[idx].UseCount++
	return s.copyAt(idx), nil
}

// Get returns the saved search without touching its use count.
func (s *SavedStore) Get(id string) (SavedSearch, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return SavedSearch{}, ErrNotFound
	}
	return s.copyAt(idx), nil
}

// Rename changes the display name.
func (s *SavedStore) Rename(id, name string) (SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedSearch{}, ErrEmptyName
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return SavedSearch{}, ErrNotFound
	}
	s.items[idx].Name = name
	return s.copyAt(idx), nil
}

// Delete removes the saved search. Confirmation is the caller's job.
func (s *SavedStore) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// List returns copies in creation order.
func (s *SavedStore) List() []SavedSearch {
	out := make([]SavedSearch, len(s.items))
	for i := range s.items {
		out[i] = s.copyAt(i)
	}
	return out
}

// Len returns the number of saved searches.
func (s *SavedStore) Len() int { return len(s.items) }

// Restore replaces the contents with persisted saved searches. Entries
// without an id are dropped and negative counters are reset to zero.
func (s *SavedStore) Restore(items []SavedSearch) {
	s.items = s.items[:0]
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		if it.UseCount < 0 {
			it.UseCount = 0
		}
		s.items = append(s.items, it)
	}
}

func (s *SavedStore) copyAt(i int) SavedSearch {
	out := s.items[i]
	out.Advanced = out.Advanced.Clone()
	return out
}

func (s *SavedStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
