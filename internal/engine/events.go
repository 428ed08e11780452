package engine

import "github.com/SravanKumarPolu/Boostlly-sub001/internal/bulk"

// EventKind names a state change.
type EventKind string

const (
	EventCorpusUpdated        EventKind = "corpus_updated"
	EventSearchExecuted       EventKind = "search_executed"
	EventHistoryChanged       EventKind = "history_changed"
	EventSavedSearchesChanged EventKind = "saved_searches_changed"
	EventAnalyticsChanged     EventKind = "analytics_changed"
	EventSelectionChanged     EventKind = "selection_changed"
	EventBulkCompleted        EventKind = "bulk_completed"
)

// Event is delivered to subscribers after the mutation it describes.
type Event struct {
	Kind EventKind

	// Query is the history label for EventSearchExecuted.
	Query string

	// Count is the result count for EventSearchExecuted, the quote count
	// for EventCorpusUpdated and the selection size for EventSelectionChanged.
	Count int

	// Bulk is set for EventBulkCompleted.
	Bulk *bulk.Result
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a function that
// removes it. Events are delivered synchronously in subscription order;
// fn must not call back into the engine.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.nextSubscriber++
	id := e.nextSubscriber
	e.subscribers = append(e.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(ev Event) {
	for _, s := range append([]subscriber{}, e.subscribers...) {
		s.fn(ev)
	}
}
