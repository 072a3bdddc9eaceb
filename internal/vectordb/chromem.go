package vectordb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// ChromemStore implements Store using chromem-go. With a path it is
// disk-backed and survives process restarts; without one it is in-memory
// (used by tests).
type ChromemStore struct {
	db *chromem.DB
}

// NewChromemStore creates a persistent store rooted at path.
func NewChromemStore(path string) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", path, err)
	}
	return &ChromemStore{db: db}, nil
}

// NewMemoryStore creates a non-persistent store.
func NewMemoryStore() *ChromemStore {
	return &ChromemStore{db: chromem.NewDB()}
}

// precomputedOnly guards against accidental text queries: every vector in
// a collection is supplied by the caller, never computed by the store.
func precomputedOnly(context.Context, string) ([]float32, error) {
	return nil, errors.New("vectordb: collection stores precomputed vectors only")
}

func (s *ChromemStore) Reset(ctx context.Context, name string) (Collection, error) {
	if err := s.db.DeleteCollection(name); err != nil {
		return nil, fmt.Errorf("deleting collection %q: %w", name, err)
	}
	col, err := s.db.CreateCollection(name, nil, precomputedOnly)
	if err != nil {
		return nil, fmt.Errorf("creating collection %q: %w", name, err)
	}
	return &chromemCollection{col: col}, nil
}

func (s *ChromemStore) Open(ctx context.Context, name string) (Collection, error) {
	col := s.db.GetCollection(name, precomputedOnly)
	if col == nil {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	return &chromemCollection{col: col}, nil
}

type chromemCollection struct {
	col *chromem.Collection

	mu  sync.Mutex
	dim int // established by the first Add; 0 means not yet fixed
}

func (c *chromemCollection) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Validate the whole batch before inserting anything, so a failed Add
	// leaves no partial state behind.
	dim := c.dim
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: entry with empty id", ErrAddFailed)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrAddFailed, e.ID)
		}
		seen[e.ID] = struct{}{}
		if len(e.Vector) == 0 {
			return fmt.Errorf("%w: entry %q has no vector", ErrAddFailed, e.ID)
		}
		if dim == 0 {
			dim = len(e.Vector)
		} else if len(e.Vector) != dim {
			return fmt.Errorf("%w: entry %q has dimension %d, collection dimension is %d",
				ErrAddFailed, e.ID, len(e.Vector), dim)
		}
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Text,
			Embedding: e.Vector,
		}
	}
	if err := c.col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("%w: %v", ErrAddFailed, err)
	}
	c.dim = dim
	return nil
}

func (c *chromemCollection) Query(ctx context.Context, vector []float32, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	count := c.col.Count()
	if count == 0 {
		return nil, nil
	}
	if c.dim != 0 && len(vector) != c.dim {
		return nil, fmt.Errorf("vectordb: query vector has dimension %d, collection dimension is %d",
			len(vector), c.dim)
	}

	// chromem's top-k heap breaks similarity ties arbitrarily, so rank the
	// full collection and cut at k to keep ordering deterministic.
	results, err := c.col.QueryEmbedding(ctx, vector, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vectordb: query: %w", err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			ID:       r.ID,
			Text:     r.Content,
			Distance: 1 - r.Similarity,
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

func (c *chromemCollection) Count() int {
	return c.col.Count()
}
