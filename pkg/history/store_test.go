package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/decker502/dragonsweeper/pkg/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationIdempotency(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		if err := s.Migrate(); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	games := []Record{
		{Width: 12, Height: 8, MinesPercentage: 0.2, Seed: 1, Outcome: engine.Defeat,
			Tally: map[int]int{1: 3}, FinishedAt: base},
		{Width: 4, Height: 4, MinesPercentage: 0.05, Seed: ^uint64(0), Outcome: engine.Victory, Perfect: true,
			Tally: map[int]int{1: 2, 2: 1}, FinishedAt: base.Add(time.Minute)},
		{Width: 16, Height: 10, MinesPercentage: 0.4, Seed: 3, Outcome: engine.Victory,
			Tally: map[int]int{}, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, g := range games {
		stored, err := s.Record(ctx, g)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if stored.ID == "" {
			t.Fatal("Record did not assign an ID")
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d records, want 2", len(recent))
	}
	if recent[0].Seed != 3 || recent[1].Seed != ^uint64(0) {
		t.Fatalf("unexpected order: seeds %d, %d", recent[0].Seed, recent[1].Seed)
	}

	got := recent[1]
	if got.Outcome != engine.Victory || !got.Perfect || got.Width != 4 || got.MinesPercentage != 0.05 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Tally[1] != 2 || got.Tally[2] != 1 {
		t.Errorf("tally round trip: %v", got.Tally)
	}
	if !got.FinishedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, base.Add(time.Minute))
	}
}

func TestRecordRejectsInProgress(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Record(context.Background(), Record{Outcome: engine.InProgress}); err == nil {
		t.Fatal("expected error recording an unfinished game")
	}
}

func TestSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary on empty store: %v", err)
	}
	if sum != (Summary{}) {
		t.Fatalf("empty summary = %+v", sum)
	}

	for _, g := range []Record{
		{Outcome: engine.Victory, Perfect: true},
		{Outcome: engine.Victory},
		{Outcome: engine.Defeat},
	} {
		if _, err := s.Record(ctx, g); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sum, err = s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := Summary{Played: 3, Won: 2, Perfect: 1}
	if sum != want {
		t.Fatalf("Summary = %+v, want %+v", sum, want)
	}
}

func TestNewRecord(t *testing.T) {
	cfg := engine.Config{Width: 4, Height: 4, MinesPercentage: 0.4}
	s, err := engine.NewGame(cfg, engine.NewRand(3))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, ok := NewRecord(s, 3); ok {
		t.Fatal("NewRecord succeeded for a game in progress")
	}

	s.Dig(0, 0)
	board := s.Board()
	for r := 0; r < board.Height() && !s.Outcome().Terminal(); r++ {
		for c := 0; c < board.Width(); c++ {
			if tile, _ := board.Tile(r, c); tile.Mine {
				s.Dig(r, c)
				break
			}
		}
	}

	rec, ok := NewRecord(s, 3)
	if !ok {
		t.Fatal("NewRecord failed for a finished game")
	}
	if rec.Outcome != s.Outcome() || rec.Seed != 3 || rec.Width != 4 || len(rec.Tally) != engine.MaxAdjacency {
		t.Fatalf("unexpected record %+v", rec)
	}
}
