// Package retriever finds the document chunks most relevant to a query by
// embedding the query and running a nearest-neighbor search.
package retriever

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/docqa/internal/embeddings"
	"github.com/ziadkadry99/docqa/internal/vectordb"
)

// Result pairs a chunk text with its similarity to the query. Similarity is
// 1 minus cosine distance, so it lies in [-1,1] with 1 meaning identical.
type Result struct {
	Text       string
	Similarity float32
}

// Retriever combines a query embedder with a vector collection.
type Retriever struct {
	embedder   embeddings.Embedder
	collection vectordb.Collection
}

// New creates a Retriever over the given collection.
func New(embedder embeddings.Embedder, collection vectordb.Collection) *Retriever {
	return &Retriever{embedder: embedder, collection: collection}
}

// Retrieve returns up to k results ordered by descending similarity. An
// empty collection yields an empty result.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vecs))
	}

	matches, err := r.collection.Query(ctx, vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	// Distance ascending is similarity descending; the store's order holds.
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Text:       m.Text,
			Similarity: 1 - m.Distance,
		}
	}
	return results, nil
}

// Texts returns just the result texts, in ranked order.
func Texts(results []Result) []string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return texts
}
