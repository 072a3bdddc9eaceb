package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docqa/internal/history"
	"github.com/ziadkadry99/docqa/internal/ingest"
	"github.com/ziadkadry99/docqa/internal/progress"
	"github.com/ziadkadry99/docqa/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a document into the vector database",
	Long: `Loads a document (txt, md, or pdf), splits it into overlapping chunks,
embeds each chunk, and stores the result in a local collection. Every
ingest replaces the collection's previous content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Int("chunk-size", 0, "chunk size in characters (overrides config)")
	ingestCmd.Flags().Int("chunk-overlap", -1, "chunk overlap in characters (overrides config)")
	ingestCmd.Flags().String("collection", "", "target collection name (overrides config)")
	ingestCmd.Flags().Bool("ask", false, "start an interactive Q&A session after ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if size, _ := cmd.Flags().GetInt("chunk-size"); size > 0 {
		cfg.ChunkSize = size
	}
	if overlap, _ := cmd.Flags().GetInt("chunk-overlap"); overlap >= 0 {
		cfg.ChunkOverlap = overlap
	}
	if collection, _ := cmd.Flags().GetString("collection"); collection != "" {
		cfg.Collection = collection
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	path, err := documentPath(args)
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting %s into %q (chunk size %d, overlap %d, embedder %s)\n",
			path, cfg.Collection, cfg.ChunkSize, cfg.ChunkOverlap, embedder.Name())
	}

	store, err := vectordb.NewChromemStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector store at %s: %w", cfg.DataDir, err)
	}

	pipeline := ingest.New(nil, embedder, store, ingest.Options{
		Collection:   cfg.Collection,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})
	pipeline.SetReporter(progress.NewReporter())

	result, runErr := pipeline.Run(ctx, path)
	recordHistory(ctx, cfg.HistoryDB, history.Run{
		Path:           path,
		Collection:     cfg.Collection,
		ChunkSize:      cfg.ChunkSize,
		ChunkOverlap:   cfg.ChunkOverlap,
		ChunkCount:     result.Chunks,
		EmbeddingModel: cfg.EmbeddingModel,
		Duration:       result.Duration,
		Outcome:        outcomeString(runErr),
	})
	if runErr != nil {
		return fmt.Errorf("ingesting %s: %w", path, runErr)
	}

	fmt.Printf("Ingested %s: %d chunks into collection %q in %s\n",
		path, result.Chunks, result.Collection, result.Duration.Round(time.Millisecond))

	// Offer a Q&A session right away; --ask skips the prompt.
	startAsking, _ := cmd.Flags().GetBool("ask")
	if !startAsking {
		confirm := promptui.Prompt{
			Label:     "Start asking questions now",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err == nil {
			startAsking = true
		}
	}
	if !startAsking {
		return nil
	}

	s, err := newSession(cfg, embedder, store)
	if err != nil {
		return err
	}
	return s.RunInteractive(ctx, os.Stdin, os.Stdout, displayExchange)
}

// documentPath resolves the document argument, prompting when absent.
func documentPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	prompt := promptui.Prompt{
		Label: "Path to the document",
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("path is required")
			}
			return nil
		},
	}
	path, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("document path: %w", err)
	}
	return path, nil
}

// recordHistory saves the run outcome. History is best effort; a failure
// here must not fail the ingest.
func recordHistory(ctx context.Context, dbPath string, run history.Run) {
	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.Record(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record ingestion run: %v\n", err)
	}
}

func outcomeString(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
