/*
Package history keeps the recent-search ring and the named saved searches.

Neither type is safe for concurrent use; the engine owns them and callers
that share an engine must serialize access.
*/
package history

import "time"

// Capacity is the maximum number of history entries retained.
const Capacity = 10

// Entry is one executed search.
type Entry struct {
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"resultCount"`
}

// Ring holds the most recent searches, newest first, deduplicated by exact
// query string.
type Ring struct {
	entries  []Entry
	capacity int
}

// NewRing creates an empty ring. A non-positive capacity uses Capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Ring{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Push records e at the front. An entry with the same query is replaced
// rather than duplicated; the oldest entry is evicted when full.
func (r *Ring) Push(e Entry) {
	if idx := r.indexOf(e.Query); idx >= 0 {
		r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	}
	if len(r.entries) == r.capacity {
		r.entries = r.entries[:r.capacity-1]
	}
	r.entries = append(r.entries, Entry{})
	copy(r.entries[1:], r.entries[:len(r.entries)-1])
	r.entries[0] = e
}

// Entries returns a copy, newest first.
func (r *Ring) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Ring) Len() int { return len(r.entries) }

// Capacity returns the maximum size.
func (r *Ring) Capacity() int { return r.capacity }

// Remove deletes the entry for query, reporting whether one existed.
func (r *Ring) Remove(query string) bool {
	idx := r.indexOf(query)
	if idx < 0 {
		return false
	}
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	return true
}

// Clear empties the ring.
func (r *Ring) Clear() {
	r.entries = r.entries[:0]
}

// Restore replaces the contents with persisted entries, assumed newest
// first. Duplicates after the first occurrence and overflow are dropped.
func (r *Ring) Restore(entries []Entry) {
	r.entries = r.entries[:0]
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Query]; dup {
			continue
		}
		seen[e.Query] = struct{}{}
		r.entries = append(r.entries, e)
		if len(r.entries) == r.capacity {
			break
		}
	}
}

func (r *Ring) indexOf(query string) int {
	for i := range r.entries {
		if r.entries[i].Query == query {
			return i
		}
	}
	return -1
}
