package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/docqa/internal/llm"
)

type stubGenerator struct {
	lastPrompt string
	response   string
	err        error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubGenerator) Name() string { return "stub" }

func TestBuildPromptEnumeratesChunksInOrder(t *testing.T) {
	prompt := BuildPrompt("What is ML?", []string{"first chunk", "second chunk"})

	iFirst := strings.Index(prompt, "Context 1:\nfirst chunk")
	iSecond := strings.Index(prompt, "Context 2:\nsecond chunk")
	if iFirst < 0 || iSecond < 0 {
		t.Fatalf("prompt missing labeled chunks:\n%s", prompt)
	}
	if iFirst > iSecond {
		t.Error("chunks are out of order in the prompt")
	}
	if !strings.Contains(prompt, "Use ONLY the information from the context below") {
		t.Error("prompt missing grounding instruction")
	}
	if !strings.Contains(prompt, "Question: What is ML?") {
		t.Error("prompt missing the question")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("prompt does not end with the answer cue")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	chunks := []string{"a", "b", "c"}
	if BuildPrompt("q", chunks) != BuildPrompt("q", chunks) {
		t.Error("identical inputs produced different prompts")
	}
}

func TestAnswerDelegatesToBackend(t *testing.T) {
	gen := &stubGenerator{response: "42"}
	o := New(gen)

	got := o.Answer(context.Background(), "what is the answer?", []string{"the answer is 42"})
	if got != "42" {
		t.Errorf("Answer: got %q", got)
	}
	if !strings.Contains(gen.lastPrompt, "the answer is 42") {
		t.Error("backend prompt missing the context chunk")
	}
}

func TestAnswerDegradesOnBackendFailure(t *testing.T) {
	gen := &stubGenerator{err: llm.ErrBackendUnavailable}
	o := New(gen)

	got := o.Answer(context.Background(), "q", []string{"ctx"})
	if got == "" {
		t.Fatal("Answer returned empty string on failure")
	}
	if !strings.Contains(got, "generation backend") {
		t.Errorf("failure answer does not describe the error: %q", got)
	}
}

func TestAnswerFailureIsNotAnError(t *testing.T) {
	// The displayable-failure contract: even a wrapped error surfaces as a
	// plain string, never a panic or empty answer.
	gen := &stubGenerator{err: errors.New("connection refused")}
	o := New(gen)
	if got := o.Answer(context.Background(), "q", nil); !strings.Contains(got, "connection refused") {
		t.Errorf("failure answer missing cause: %q", got)
	}
}
