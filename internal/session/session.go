// Package session drives per-question retrieval and answer generation, in
// batch mode or as an interactive loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/docqa/internal/answer"
	"github.com/ziadkadry99/docqa/internal/retriever"
)

// sentinels end an interactive session; matched after trimming and
// case-folding the input.
var sentinels = map[string]struct{}{
	"quit": {},
	"exit": {},
	"q":    {},
}

// IsSentinel reports whether input terminates an interactive session.
func IsSentinel(input string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// Exchange is the outcome of one question: the answer plus the source
// chunks it was grounded in. Nothing is retained across exchanges.
type Exchange struct {
	Question string
	Answer   string
	Sources  []retriever.Result
}

// Session answers questions against one ingested collection.
type Session struct {
	retriever    *retriever.Retriever
	orchestrator *answer.Orchestrator
	topK         int
}

// New creates a Session retrieving topK chunks per question.
func New(r *retriever.Retriever, o *answer.Orchestrator, topK int) *Session {
	return &Session{retriever: r, orchestrator: o, topK: topK}
}

// Ask runs the per-question procedure. A blank question is a no-op and
// returns nil without error.
func (s *Session) Ask(ctx context.Context, question string) (*Exchange, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, nil
	}

	sources, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	ans := s.orchestrator.Answer(ctx, question, retriever.Texts(sources))
	return &Exchange{
		Question: question,
		Answer:   ans,
		Sources:  sources,
	}, nil
}

// RunBatch answers a fixed list of questions once, passing each exchange to
// display. Blank questions are skipped.
func (s *Session) RunBatch(ctx context.Context, questions []string, display func(*Exchange)) error {
	for _, q := range questions {
		ex, err := s.Ask(ctx, q)
		if err != nil {
			return err
		}
		if ex != nil && display != nil {
			display(ex)
		}
	}
	return nil
}

// RunInteractive reads one question per line from in until a sentinel
// (quit, exit, q) or EOF. Blank lines keep the loop running without a
// retrieval/answer cycle.
func (s *Session) RunInteractive(ctx context.Context, in io.Reader, out io.Writer, display func(*Exchange)) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Your question: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading question: %w", err)
			}
			return nil // EOF ends the session
		}
		line := scanner.Text()
		if IsSentinel(line) {
			fmt.Fprintln(out, "Ending Q&A session. Goodbye!")
			return nil
		}

		ex, err := s.Ask(ctx, line)
		if err != nil {
			return err
		}
		if ex != nil && display != nil {
			display(ex)
		}
	}
}
