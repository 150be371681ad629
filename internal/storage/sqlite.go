// Package storage provides SQLite-based persistence for finished bot runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished game. Per-move history is not stored.
type Run struct {
	ID        int64
	Strategy  string
	Finder    string
	Seed      int64
	Moves     int
	Score     int
	MaxTile   int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			strategy TEXT NOT NULL,
			finder TEXT NOT NULL,
			seed INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy, finder);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(strategy, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (strategy, finder, seed, moves, score, max_tile, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Strategy, r.Finder, r.Seed, r.Moves, r.Score, r.MaxTile, r.Won, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs, ordered by score descending.
// An empty strategy matches every strategy.
func (s *Store) TopRuns(strategy string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, strategy, finder, seed, moves, score, max_tile, won, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR strategy = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		strategy, strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Strategy, &r.Finder, &r.Seed, &r.Moves, &r.Score,
			&r.MaxTile, &r.Won, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the runs of one strategy, or every run when strategy is
// empty.
func (s *Store) ClearRuns(strategy string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR strategy = ?", strategy, strategy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for a strategy and finder pair.
type RunStats struct {
	Strategy   string
	Finder     string
	Runs       int
	Wins       int
	HighScore  int
	AvgScore   float64
	BestTile   int
	AvgMoves   float64
	LastPlayed time.Time
}

// WinRate returns the share of won runs.
func (rs RunStats) WinRate() float64 {
	if rs.Runs == 0 {
		return 0
	}
	return float64(rs.Wins) / float64(rs.Runs)
}

// StrategyStats retrieves aggregated statistics for one strategy and finder.
func (s *Store) StrategyStats(strategy, finder string) (*RunStats, error) {
	stats := &RunStats{Strategy: strategy, Finder: finder}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(AVG(moves), 0), MAX(created_at)
		 FROM runs WHERE strategy = ? AND finder = ?`,
		strategy, finder,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStrategyStats retrieves statistics for every strategy and finder pair
// that has been run, ordered by average score descending.
func (s *Store) AllStrategyStats() ([]RunStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy, finder, COUNT(*), SUM(won), MAX(score), AVG(score),
		        MAX(max_tile), AVG(moves), MAX(created_at)
		 FROM runs
		 GROUP BY strategy, finder
		 ORDER BY AVG(score) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all strategy stats: %w", err)
	}
	defer rows.Close()

	var all []RunStats
	for rows.Next() {
		var rs RunStats
		var lastPlayed any
		if err := rows.Scan(&rs.Strategy, &rs.Finder, &rs.Runs, &rs.Wins, &rs.HighScore, &rs.AvgScore,
			&rs.BestTile, &rs.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		rs.LastPlayed = parseTime(lastPlayed)
		all = append(all, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
