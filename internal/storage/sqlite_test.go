package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	runs := []Run{
		{Strategy: "wise-snake", Finder: "deep", Seed: 1, Moves: 900, Score: 16000, MaxTile: 1024, Duration: 1500 * time.Millisecond},
		{Strategy: "wise-snake", Finder: "deep", Seed: 2, Moves: 400, Score: 5000, MaxTile: 512},
		{Strategy: "wise-snake", Finder: "deep", Seed: 3, Moves: 1500, Score: 26000, MaxTile: 2048, Won: true},
		{Strategy: "maxtile", Finder: "best", Seed: 1, Moves: 100, Score: 900, MaxTile: 128},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("wise-snake", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	if top[0].Score != 26000 || top[1].Score != 16000 || top[2].Score != 5000 {
		t.Errorf("Runs not in expected order: %v", top)
	}
	if !top[0].Won || top[1].Won {
		t.Error("Won flag was not round-tripped")
	}
	if top[1].Duration != 1500*time.Millisecond {
		t.Errorf("Expected duration 1.5s, got %v", top[1].Duration)
	}
	if top[0].Seed != 3 || top[0].MaxTile != 2048 || top[0].Moves != 1500 {
		t.Errorf("Unexpected top run: %+v", top[0])
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across strategies, got %d", len(all))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Strategy: "chain", Finder: "best", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("chain", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreStrategyStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.StrategyStats("snake", "deep")
	if err != nil {
		t.Fatalf("StrategyStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.WinRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(Run{Strategy: "snake", Finder: "deep", Moves: 100, Score: 1000, MaxTile: 256})
	store.SaveRun(Run{Strategy: "snake", Finder: "deep", Moves: 300, Score: 3000, MaxTile: 2048, Won: true})
	store.SaveRun(Run{Strategy: "snake", Finder: "best", Moves: 50, Score: 500, MaxTile: 64})

	stats, err := store.StrategyStats("snake", "deep")
	if err != nil {
		t.Fatalf("StrategyStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Wins != 1 {
		t.Errorf("Expected 2 runs and 1 win, got %+v", stats)
	}
	if stats.HighScore != 3000 || stats.AvgScore != 2000 || stats.AvgMoves != 200 {
		t.Errorf("Unexpected aggregates: %+v", stats)
	}
	if stats.BestTile != 2048 {
		t.Errorf("Expected best tile 2048, got %d", stats.BestTile)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("Expected win rate 0.5, got %g", stats.WinRate())
	}
}

func TestStoreAllStrategyStats(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(Run{Strategy: "maxtile", Finder: "best", Score: 100})
	store.SaveRun(Run{Strategy: "wise-snake", Finder: "deep", Score: 9000})
	store.SaveRun(Run{Strategy: "wise-snake", Finder: "deep", Score: 7000})

	all, err := store.AllStrategyStats()
	if err != nil {
		t.Fatalf("AllStrategyStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(all))
	}
	if all[0].Strategy != "wise-snake" || all[0].Runs != 2 || all[0].AvgScore != 8000 {
		t.Errorf("Unexpected first group: %+v", all[0])
	}
	if all[1].Strategy != "maxtile" {
		t.Errorf("Unexpected second group: %+v", all[1])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(Run{Strategy: "chain", Finder: "best", Score: 100})
	store.SaveRun(Run{Strategy: "chain", Finder: "deep", Score: 200})
	store.SaveRun(Run{Strategy: "locus", Finder: "best", Score: 300})

	if err := store.ClearRuns("chain"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	chain, _ := store.TopRuns("chain", 10)
	if len(chain) != 0 {
		t.Errorf("Expected 0 chain runs after clear, got %d", len(chain))
	}
	locus, _ := store.TopRuns("locus", 10)
	if len(locus) != 1 {
		t.Errorf("Locus runs should not be affected by clearing chain")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	all, _ := store.TopRuns("", 10)
	if len(all) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(all))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
