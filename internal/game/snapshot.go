package game

import "github.com/ob-ivan/bot2048/internal/board"

// StateType represents the current game state.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StateGameOver StateType = "game_over"
	StateWin      StateType = "win"
)

// Snapshot captures the game state for determinism testing and reporting.
type Snapshot struct {
	Moves   int
	Score   int
	Board   board.Board
	MaxTile int
	State   StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWin
	case g.over:
		state = StateGameOver
	}

	return Snapshot{
		Moves:   g.moves,
		Score:   g.score,
		Board:   g.board,
		MaxTile: g.board.Max().Value,
		State:   state,
	}
}
