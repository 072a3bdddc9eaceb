// Package answer assembles grounding prompts from retrieved chunks and
// delegates answer generation to a backend.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziadkadry99/docqa/internal/llm"
)

const instruction = `You are a helpful assistant answering questions based on the provided context.
Use ONLY the information from the context below to answer the question.
If the answer cannot be found in the context, say "I cannot find this information in the provided document."`

// Orchestrator turns a question plus context chunks into an answer string.
type Orchestrator struct {
	generator llm.Generator
}

// New creates an Orchestrator over the given generation backend.
func New(generator llm.Generator) *Orchestrator {
	return &Orchestrator{generator: generator}
}

// BuildPrompt produces the deterministic grounding prompt: enumerated
// context chunks in the order given, the instruction to answer only from
// context, then the question.
func BuildPrompt(question string, contextChunks []string) string {
	labeled := make([]string, len(contextChunks))
	for i, chunk := range contextChunks {
		labeled[i] = fmt.Sprintf("Context %d:\n%s", i+1, chunk)
	}

	return fmt.Sprintf("%s\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer:",
		instruction, strings.Join(labeled, "\n\n"), question)
}

// Answer generates an answer grounded in the given chunks. It never fails:
// when the backend is unreachable the returned string describes the error,
// so callers display it uniformly with normal answers and an interactive
// session survives a bad backend call.
func (o *Orchestrator) Answer(ctx context.Context, question string, contextChunks []string) string {
	prompt := BuildPrompt(question, contextChunks)

	text, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error reaching the generation backend: %v\nMake sure it is running.", err)
	}
	return text
}
