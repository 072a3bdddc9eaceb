package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docqa/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent ingestion runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No ingestion runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		status := r.Outcome
		if status == "ok" {
			status = fmt.Sprintf("%d chunks in %s", r.ChunkCount, r.Duration.Round(time.Millisecond))
		} else {
			status = "failed: " + status
		}
		fmt.Printf("%s  %s -> %s  (size %d, overlap %d)  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Path, r.Collection, r.ChunkSize, r.ChunkOverlap, status)
	}
	return nil
}
