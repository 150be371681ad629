package transform

import (
	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/memo"
)

// MoveKey identifies a move from a given board.
type MoveKey struct {
	Code      board.Code
	Direction board.Direction
}

// Cached memoizes an inner mutator by (board code, direction).
type Cached struct {
	inner Mutator
	table *memo.Table[MoveKey, board.Board]
}

// NewCached wraps inner. A nil inner means Plain.
func NewCached(inner Mutator, table *memo.Table[MoveKey, board.Board]) *Cached {
	if inner == nil {
		inner = Plain{}
	}
	return &Cached{inner: inner, table: table}
}

// Move implements Mutator.
func (c *Cached) Move(b board.Board, dir board.Direction) board.Board {
	return c.table.Do(MoveKey{Code: b.Code(), Direction: dir}, func() board.Board {
		return c.inner.Move(b, dir)
	})
}

// Stats reports cache activity.
func (c *Cached) Stats() memo.Stats {
	return c.table.Stats()
}
