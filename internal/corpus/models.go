/*
Package corpus holds the read-only snapshot of quotes and collections the
discovery engine searches over.

The caller owns the data. Every time its quotes or collections change it
hands a fresh snapshot to the engine, which validates the entries once at
this boundary so downstream components never see missing fields.
*/
package corpus

import (
	"errors"
	"time"
)

// UnknownAuthor replaces an empty author during ingestion.
const UnknownAuthor = "Unknown"

// ErrQuoteNotFound is returned when an id does not resolve in the current view.
var ErrQuoteNotFound = errors.New("quote not found")

// Quote is a single entry of the user's personal collection.
type Quote struct {
	// ID uniquely identifies the quote within the corpus.
	ID string `json:"id" yaml:"id"`

	// Text is the quote body.
	Text string `json:"text" yaml:"text"`

	// Author is who said or wrote it.
	Author string `json:"author" yaml:"author"`

	// Category is optional; empty means uncategorized.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Tags are free-form labels.
	Tags []string `json:"tags" yaml:"tags"`

	// IsLiked marks the quote as a favorite.
	IsLiked bool `json:"isLiked" yaml:"isLiked"`

	// CreatedAt is when the quote entered the collection.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// Source names the provider the quote came from.
	Source string `json:"source" yaml:"source"`
}

// Collection is a named group of quotes.
type Collection struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	QuoteIDs []string `json:"quoteIds" yaml:"quoteIds"`
}

// Document is the on-disk corpus shape read by LoadFile.
type Document struct {
	Quotes      []Quote      `json:"quotes" yaml:"quotes"`
	Collections []Collection `json:"collections" yaml:"collections"`
}
