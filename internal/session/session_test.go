package session

import (
	"context"
	"strings"
	"testing"

	"github.com/ziadkadry99/docqa/internal/answer"
	"github.com/ziadkadry99/docqa/internal/retriever"
	"github.com/ziadkadry99/docqa/internal/vectordb"
)

// echoEmbedder returns the same vector for every text, so each query
// matches every stored chunk equally.
type echoEmbedder struct{}

func (echoEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (echoEmbedder) Dimensions() int { return 2 }
func (echoEmbedder) Name() string    { return "echo" }

// countingGenerator records how many prompts it was asked to complete.
type countingGenerator struct {
	calls int
}

func (g *countingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	return "generated answer", nil
}

func (g *countingGenerator) Name() string { return "counting" }

func newTestSession(t *testing.T) (*Session, *countingGenerator) {
	t.Helper()
	ctx := context.Background()

	store := vectordb.NewMemoryStore()
	col, err := store.Reset(ctx, "docs")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	err = col.Add(ctx, []vectordb.Entry{
		{ID: "chunk_0", Text: "Go is a statically typed language.", Vector: []float32{1, 0}},
		{ID: "chunk_1", Text: "Goroutines are lightweight threads.", Vector: []float32{0, 1}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	gen := &countingGenerator{}
	r := retriever.New(echoEmbedder{}, col)
	return New(r, answer.New(gen), 2), gen
}

func TestIsSentinel(t *testing.T) {
	for _, input := range []string{"quit", "exit", "q", "QUIT", "Exit", "  q  ", "\tquit\n"} {
		if !IsSentinel(input) {
			t.Errorf("IsSentinel(%q) = false, want true", input)
		}
	}
	for _, input := range []string{"", "quit now", "question", "qq", "exits"} {
		if IsSentinel(input) {
			t.Errorf("IsSentinel(%q) = true, want false", input)
		}
	}
}

func TestAskReturnsAnswerWithSources(t *testing.T) {
	s, gen := newTestSession(t)

	ex, err := s.Ask(context.Background(), "What is Go?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ex == nil {
		t.Fatal("Ask returned nil exchange for a real question")
	}
	if ex.Answer != "generated answer" {
		t.Errorf("Answer: got %q", ex.Answer)
	}
	if len(ex.Sources) != 2 {
		t.Errorf("Sources: got %d, want 2", len(ex.Sources))
	}
	if gen.calls != 1 {
		t.Errorf("generator calls: got %d, want 1", gen.calls)
	}
}

func TestAskBlankQuestionIsNoOp(t *testing.T) {
	s, gen := newTestSession(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		ex, err := s.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("Ask(%q): %v", q, err)
		}
		if ex != nil {
			t.Errorf("Ask(%q) produced an exchange", q)
		}
	}
	if gen.calls != 0 {
		t.Errorf("blank questions reached the generator %d times", gen.calls)
	}
}

func TestRunBatch(t *testing.T) {
	s, gen := newTestSession(t)

	var shown []string
	err := s.RunBatch(context.Background(), []string{"first?", "", "second?"}, func(ex *Exchange) {
		shown = append(shown, ex.Question)
	})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(shown) != 2 || shown[0] != "first?" || shown[1] != "second?" {
		t.Errorf("displayed exchanges: %v", shown)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls: got %d, want 2", gen.calls)
	}
}

func TestRunInteractiveStopsOnSentinel(t *testing.T) {
	s, gen := newTestSession(t)

	in := strings.NewReader("What is Go?\nquit\nnever reached\n")
	var out strings.Builder
	var shown int
	err := s.RunInteractive(context.Background(), in, &out, func(*Exchange) { shown++ })
	if err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}
	if shown != 1 {
		t.Errorf("displayed %d exchanges, want 1", shown)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls: got %d, want 1", gen.calls)
	}
	if !strings.Contains(out.String(), "Goodbye") {
		t.Error("missing farewell message")
	}
}

func TestRunInteractiveSkipsBlankLines(t *testing.T) {
	s, gen := newTestSession(t)

	in := strings.NewReader("\n   \nexit\n")
	var out strings.Builder
	err := s.RunInteractive(context.Background(), in, &out, nil)
	if err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("blank lines reached the generator %d times", gen.calls)
	}
	// One prompt per line read, including the blanks.
	if got := strings.Count(out.String(), "Your question: "); got != 3 {
		t.Errorf("prompt printed %d times, want 3", got)
	}
}

func TestRunInteractiveEndsOnEOF(t *testing.T) {
	s, _ := newTestSession(t)

	in := strings.NewReader("What is Go?\n")
	var out strings.Builder
	if err := s.RunInteractive(context.Background(), in, &out, nil); err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}
}
