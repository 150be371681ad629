// Package strategy holds the board evaluation heuristics. Each strategy is a
// pure function from a board to a quality score where higher is better.
// Layered heuristics are decorators wrapping an inner strategy.
package strategy

import (
	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/memo"
)

// Strategy scores a board.
type Strategy interface {
	Evaluate(b board.Board) float64
	Name() string
}

// MaxTile scores a board by its highest tile.
type MaxTile struct{}

func (MaxTile) Name() string { return "maxtile" }

// Evaluate implements Strategy.
func (MaxTile) Evaluate(b board.Board) float64 {
	return float64(b.Max().Value)
}

// EmptyChain adds max tile times the number of empty cells to the inner score.
type EmptyChain struct {
	Inner Strategy
}

func (EmptyChain) Name() string { return "empty-chain" }

// Evaluate implements Strategy.
func (s EmptyChain) Evaluate(b board.Board) float64 {
	return s.Inner.Evaluate(b) + float64(b.Max().Value*b.EmptyCount())
}

// Locus subtracts a penalty depending on where the max tile sits: nothing
// in a corner, half its value on a side, its full value in the middle.
type Locus struct {
	Inner Strategy
}

func (Locus) Name() string { return "locus" }

// Evaluate implements Strategy.
func (s Locus) Evaluate(b board.Board) float64 {
	return s.Inner.Evaluate(b) - LocusPenalty(b.Max())
}

// LocusPenalty returns the positional penalty for a tile.
func LocusPenalty(vp board.ValuePoint) float64 {
	switch board.LocusOf(vp.Point) {
	case board.Corner:
		return 0
	case board.Side:
		return float64(vp.Value) / 2
	default:
		return float64(vp.Value)
	}
}

// EvalKey identifies an evaluation of a board. It carries no strategy
// identity: a table stores the scores of exactly one strategy instance.
type EvalKey struct {
	Code board.Code
}

// Cached memoizes an inner strategy by board code. The table must not be
// shared with another Cached: strategies with equal names can still score
// differently (snake with zigzag or gravity weights).
type Cached struct {
	inner Strategy
	table *memo.Table[EvalKey, float64]
}

// NewCached wraps inner with table.
func NewCached(inner Strategy, table *memo.Table[EvalKey, float64]) *Cached {
	return &Cached{inner: inner, table: table}
}

// Name returns the inner strategy name.
func (c *Cached) Name() string { return c.inner.Name() }

// Evaluate implements Strategy.
func (c *Cached) Evaluate(b board.Board) float64 {
	return c.table.Do(EvalKey{Code: b.Code()}, func() float64 {
		return c.inner.Evaluate(b)
	})
}

// Stats reports cache activity.
func (c *Cached) Stats() memo.Stats {
	return c.table.Stats()
}
