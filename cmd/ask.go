package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docqa/internal/answer"
	"github.com/ziadkadry99/docqa/internal/config"
	"github.com/ziadkadry99/docqa/internal/embeddings"
	"github.com/ziadkadry99/docqa/internal/retriever"
	"github.com/ziadkadry99/docqa/internal/session"
	"github.com/ziadkadry99/docqa/internal/vectordb"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]...",
	Short: "Ask questions about an ingested document",
	Long: `Answers one or more questions against the ingested collection. Each
question is embedded, the most similar chunks are retrieved, and the
answer is generated strictly from that context. With no questions, or
with --interactive, starts a Q&A loop (quit, exit, or q to leave).`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolP("interactive", "i", false, "start an interactive Q&A session")
	askCmd.Flags().Int("top-k", 0, "chunks retrieved per question (overrides config)")
	askCmd.Flags().String("collection", "", "collection to query (overrides config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if topK, _ := cmd.Flags().GetInt("top-k"); topK > 0 {
		cfg.TopK = topK
	}
	if collection, _ := cmd.Flags().GetString("collection"); collection != "" {
		cfg.Collection = collection
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector store at %s: %w", cfg.DataDir, err)
	}

	s, err := newSession(cfg, embedder, store)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Querying collection %q, top %d chunks per question\n",
			cfg.Collection, cfg.TopK)
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive || len(args) == 0 {
		return s.RunInteractive(ctx, os.Stdin, os.Stdout, displayExchange)
	}
	return s.RunBatch(ctx, args, displayExchange)
}

// newSession opens the configured collection and wires the retriever and
// answer orchestrator into a Q&A session.
func newSession(cfg *config.Config, embedder embeddings.Embedder, store vectordb.Store) (*session.Session, error) {
	ctx := context.Background()
	col, err := store.Open(ctx, cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("opening collection %q: %w\nRun `docqa ingest` first", cfg.Collection, err)
	}
	if col.Count() == 0 {
		return nil, fmt.Errorf("collection %q is empty; run `docqa ingest` first", cfg.Collection)
	}

	generator, err := createGeneratorFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	r := retriever.New(embedder, col)
	return session.New(r, answer.New(generator), cfg.TopK), nil
}

// displayExchange prints an answer followed by its source chunks.
func displayExchange(ex *session.Exchange) {
	fmt.Printf("\nAnswer: %s\n", ex.Answer)
	if len(ex.Sources) == 0 {
		return
	}
	fmt.Printf("\nSources (%d chunks):\n", len(ex.Sources))
	for i, src := range ex.Sources {
		fmt.Printf("  %d. [%.1f%% similar] %s\n", i+1, src.Similarity*100, snippet(src.Text, 120))
	}
	fmt.Println()
}

// snippet flattens and truncates chunk text for one-line display.
func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
