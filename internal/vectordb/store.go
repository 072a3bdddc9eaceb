// Package vectordb provides a thin contract over a persistent vector
// collection keyed by id, supporting reset, bulk insert, and
// nearest-neighbor query.
package vectordb

import (
	"context"
	"errors"
)

var (
	// ErrAddFailed indicates a store contract violation during Add:
	// empty or duplicate ids, missing vectors, or a dimension mismatch
	// with the collection's established dimension.
	ErrAddFailed = errors.New("vectordb: add failed")

	// ErrCollectionNotFound indicates an Open of a collection that does
	// not exist in the store.
	ErrCollectionNotFound = errors.New("vectordb: collection not found")
)

// Entry is one persisted record: a unique id, the chunk text, and its
// embedding vector. Entries are never mutated after insertion.
type Entry struct {
	ID     string
	Text   string
	Vector []float32
}

// Match is one nearest-neighbor query result. Distance is the cosine
// distance in [0,2]; smaller means nearer.
type Match struct {
	ID       string
	Text     string
	Distance float32
}

// Store manages named collections.
type Store interface {
	// Reset deletes any existing collection with that name (no error if
	// absent) and creates a fresh empty one.
	Reset(ctx context.Context, name string) (Collection, error)

	// Open returns an existing collection or ErrCollectionNotFound.
	Open(ctx context.Context, name string) (Collection, error)
}

// Collection is a resettable bag of entries searchable by vector. A
// collection is single-writer: Add must not run concurrently with another
// Add or Query on the same collection; concurrent Query calls against a
// stable collection are safe.
type Collection interface {
	// Add appends all entries. The first Add fixes the collection's vector
	// dimension; any later mismatch fails with ErrAddFailed before
	// anything is inserted.
	Add(ctx context.Context, entries []Entry) error

	// Query returns up to k entries ordered by ascending distance, ties
	// broken by ascending id. k <= 0 or an empty collection yields an
	// empty result; k beyond the collection size returns everything.
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)

	// Count returns the number of stored entries.
	Count() int
}
