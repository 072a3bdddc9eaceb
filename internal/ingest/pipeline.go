// Package ingest runs the document ingestion pipeline: load, chunk, embed,
// store. Each stage is synchronous; any failure is fatal to the run.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/docqa/internal/chunker"
	"github.com/ziadkadry99/docqa/internal/embeddings"
	"github.com/ziadkadry99/docqa/internal/loader"
	"github.com/ziadkadry99/docqa/internal/progress"
	"github.com/ziadkadry99/docqa/internal/vectordb"
)

// State identifies the pipeline stage.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateChunking  State = "chunking"
	StateEmbedding State = "embedding"
	StateStoring   State = "storing"
	StateReady     State = "ready"
	StateFailed    State = "failed"
)

// ErrEmptyDocument indicates a document that loaded but contained no text.
var ErrEmptyDocument = errors.New("ingest: document contains no text")

// LoadFunc loads a document; loader.Load is the production implementation.
type LoadFunc func(path string) (*loader.Document, error)

// Options configures one ingestion run.
type Options struct {
	Collection   string
	IDPrefix     string // defaults to "chunk"
	ChunkSize    int
	ChunkOverlap int
}

// Result reports the outcome of a run.
type Result struct {
	State      State
	Chunks     int
	Collection string
	Duration   time.Duration
}

// Pipeline sequences load -> chunk -> embed -> store for one document.
// Every run resets the target collection; there is no incremental mode.
type Pipeline struct {
	load     LoadFunc
	embedder embeddings.Embedder
	store    vectordb.Store
	opts     Options
	reporter progress.Reporter
	state    State
}

// New creates a Pipeline. A nil load falls back to loader.Load.
func New(load LoadFunc, embedder embeddings.Embedder, store vectordb.Store, opts Options) *Pipeline {
	if load == nil {
		load = loader.Load
	}
	if opts.IDPrefix == "" {
		opts.IDPrefix = "chunk"
	}
	return &Pipeline{
		load:     load,
		embedder: embedder,
		store:    store,
		opts:     opts,
		reporter: progress.NopReporter{},
		state:    StateIdle,
	}
}

// SetReporter sets the progress reporter.
func (p *Pipeline) SetReporter(r progress.Reporter) {
	if r != nil {
		p.reporter = r
	}
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	return p.state
}

// Run ingests the document at path. Load failures (missing file,
// unsupported type, parse error, empty document) degrade to a zero-chunk
// result with the typed error attached and the collection left untouched;
// failures in later stages abort the run after the collection reset.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	fail := func(err error) (*Result, error) {
		p.state = StateFailed
		return &Result{
			State:      StateFailed,
			Chunks:     0,
			Collection: p.opts.Collection,
			Duration:   time.Since(start),
		}, err
	}

	p.state = StateLoading
	doc, err := p.load(path)
	if err != nil {
		return fail(err)
	}
	if doc.Text == "" {
		return fail(fmt.Errorf("%w: %s", ErrEmptyDocument, path))
	}

	p.state = StateChunking
	chunks, err := chunker.Split(doc.Text, chunker.Options{
		ChunkSize:    p.opts.ChunkSize,
		ChunkOverlap: p.opts.ChunkOverlap,
	})
	if err != nil {
		return fail(fmt.Errorf("chunking %s: %w", path, err))
	}
	if len(chunks) == 0 {
		return fail(fmt.Errorf("%w: %s", ErrEmptyDocument, path))
	}

	p.state = StateEmbedding
	p.reporter.Start(len(chunks))
	p.reporter.Update(0, "embedding chunks")
	vectors, err := p.embedder.Embed(ctx, chunker.Texts(chunks))
	if err != nil {
		return fail(fmt.Errorf("embedding %d chunks: %w", len(chunks), err))
	}
	if len(vectors) != len(chunks) {
		return fail(fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks)))
	}
	p.reporter.Update(len(chunks), "storing chunks")

	p.state = StateStoring
	col, err := p.store.Reset(ctx, p.opts.Collection)
	if err != nil {
		return fail(fmt.Errorf("resetting collection %q: %w", p.opts.Collection, err))
	}
	entries := make([]vectordb.Entry, len(chunks))
	for i, c := range chunks {
		entries[i] = vectordb.Entry{
			ID:     fmt.Sprintf("%s_%d", p.opts.IDPrefix, c.Index),
			Text:   c.Text,
			Vector: vectors[i],
		}
	}
	if err := col.Add(ctx, entries); err != nil {
		return fail(fmt.Errorf("storing %d chunks: %w", len(entries), err))
	}
	p.reporter.Finish()

	p.state = StateReady
	return &Result{
		State:      StateReady,
		Chunks:     len(chunks),
		Collection: p.opts.Collection,
		Duration:   time.Since(start),
	}, nil
}
