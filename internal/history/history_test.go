package history

import (
	"context"
	"testing"
	"time"
)

func TestRecordAndGet(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	id, err := s.Record(ctx, Run{
		Path:           "notes.md",
		Collection:     "documents",
		ChunkSize:      500,
		ChunkOverlap:   50,
		ChunkCount:     12,
		EmbeddingModel: "nomic-embed-text",
		Duration:       1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatal("Record returned empty id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Path != "notes.md" || got.Collection != "documents" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.ChunkCount != 12 {
		t.Errorf("chunk_count: got %d, want 12", got.ChunkCount)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("duration: got %v", got.Duration)
	}
	if got.Outcome != "ok" {
		t.Errorf("outcome defaults to ok, got %q", got.Outcome)
	}
}

func TestListNewestFirst(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Record(ctx, Run{
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			Path:       "doc.txt",
			Collection: "documents",
			ChunkSize:  500,
			ChunkCount: i + 1,
		})
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].ChunkCount != 3 || runs[2].ChunkCount != 1 {
		t.Errorf("runs not newest first: %d, %d, %d",
			runs[0].ChunkCount, runs[1].ChunkCount, runs[2].ChunkCount)
	}
}

func TestListLimit(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Record(ctx, Run{Path: "d", Collection: "c", ChunkSize: 100}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	runs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestRecordFailedRun(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	id, err := s.Record(ctx, Run{
		Path:       "missing.pdf",
		Collection: "documents",
		ChunkSize:  500,
		Outcome:    "document not found",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Outcome != "document not found" {
		t.Errorf("outcome: got %q", got.Outcome)
	}
	if got.ChunkCount != 0 {
		t.Errorf("failed run chunk_count: got %d, want 0", got.ChunkCount)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}
