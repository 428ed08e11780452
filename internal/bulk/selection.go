/*
Package bulk applies one action to every quote in a selection set.

Mutating operations call a caller-supplied collaborator once per selected id
and isolate failures per item. Export serializes the selection, or the
current results when nothing is selected, and hands the document to a
download collaborator.
*/
package bulk

// Selection is an ordered set of quote ids. Iteration follows insertion
// order. Not safe for concurrent use.
type Selection struct {
	ids   []string
	index map[string]int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{index: make(map[string]int)}
}

// Add inserts id, reporting whether it was new.
func (s *Selection) Add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id, reporting whether it was present.
func (s *Selection) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

// Toggle flips membership and returns the new state.
func (s *Selection) Toggle(id string) bool {
	if s.Remove(id) {
		return false
	}
	s.Add(id)
	return true
}

// Contains reports membership.
func (s *Selection) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy in insertion order.
func (s *Selection) IDs() []string {
	return append([]string{}, s.ids...)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
	s.index = make(map[string]int)
}

// SelectAll replaces the contents with ids.
func (s *Selection) SelectAll(ids []string) {
	s.Clear()
	for _, id := range ids {
		s.Add(id)
	}
}
