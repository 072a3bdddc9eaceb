// Package llm provides text generation backends for answer synthesis.
package llm

import (
	"context"
	"errors"
)

// ErrBackendUnavailable indicates the generation backend could not be
// reached or returned a non-success status. Callers may treat it as
// recoverable: a failed generation should not abort an interactive session.
var ErrBackendUnavailable = errors.New("llm: generation backend unavailable")

// Generator produces a complete text response for a prompt in a single
// non-streaming request.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}
