// Package search picks a move direction: one-ply best move selection and a
// two-ply adversarial search over every opponent spawn.
package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/memo"
	"github.com/ob-ivan/bot2048/internal/strategy"
	"github.com/ob-ivan/bot2048/internal/transform"
)

// QualityMove pairs a direction with the quality search assigned to it.
type QualityMove struct {
	Direction board.Direction
	Quality   float64
}

func (m QualityMove) String() string {
	return fmt.Sprintf("%s:%g", m.Direction, m.Quality)
}

// Finder chooses a move for a board. ok is false when no direction changes
// the board.
type Finder interface {
	Find(b board.Board) (move QualityMove, ok bool)
}

// Best sorts moves by ascending quality and returns the last one, so among
// equal qualities the move enumerated latest wins.
func Best(moves []QualityMove) (QualityMove, bool) {
	if len(moves) == 0 {
		return QualityMove{}, false
	}
	sorted := make([]QualityMove, len(moves))
	copy(sorted, moves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quality < sorted[j].Quality
	})
	return sorted[len(sorted)-1], true
}

// BestMoveFinder scores every effective move with a strategy and keeps the
// best one.
type BestMoveFinder struct {
	Mutator  transform.Mutator
	Strategy strategy.Strategy
	Logger   *log.Logger
}

// Find implements Finder.
func (f BestMoveFinder) Find(b board.Board) (QualityMove, bool) {
	candidates := transform.Candidates(mutatorOrPlain(f.Mutator), b)
	moves := make([]QualityMove, 0, len(candidates))
	for _, c := range candidates {
		q := f.Strategy.Evaluate(c.Board)
		if f.Logger != nil {
			f.Logger.Debug("candidate", "direction", c.Direction, "code", c.Board.Code(), "quality", q)
		}
		moves = append(moves, QualityMove{Direction: c.Direction, Quality: q})
	}
	return Best(moves)
}

// SpawnKey identifies a spawn placed on a board.
type SpawnKey struct {
	Code  board.Code
	Spawn board.ValuePoint
}

// SpawnValues are the tiles the opponent may place.
var SpawnValues = [...]int{2, 4}

// Opponents lists every possible spawn on b: each empty cell in row-major
// order, each with every spawn value.
func Opponents(b board.Board) []board.ValuePoint {
	empty := b.EmptyCells()
	result := make([]board.ValuePoint, 0, len(empty)*len(SpawnValues))
	for _, p := range empty {
		for _, v := range SpawnValues {
			result = append(result, board.ValuePoint{Point: p, Value: v})
		}
	}
	return result
}

// Spawn places the tile described by vp on b.
func Spawn(b board.Board, vp board.ValuePoint) board.Board {
	return b.With(vp.Point, vp.Value)
}

// DeepMoveFinder looks one opponent turn ahead. For every effective move
// the opponent spawns are taken from the board before the move and laid
// over the moved board, replacing whatever the move left in that cell; each
// resulting board is scored by Inner and the move keeps its worst score.
// The move with the best worst case wins.
type DeepMoveFinder struct {
	Mutator transform.Mutator
	Inner   Finder
	Spawns  *memo.Table[SpawnKey, board.Board]
	Logger  *log.Logger
}

// Find implements Finder.
func (f DeepMoveFinder) Find(b board.Board) (QualityMove, bool) {
	opponents := Opponents(b)
	candidates := transform.Candidates(mutatorOrPlain(f.Mutator), b)
	moves := make([]QualityMove, 0, len(candidates))
	for _, c := range candidates {
		q := f.worstCase(c.Board, opponents)
		if f.Logger != nil {
			f.Logger.Debug("deep candidate", "direction", c.Direction, "code", c.Board.Code(), "worst", q)
		}
		moves = append(moves, QualityMove{Direction: c.Direction, Quality: q})
	}
	return Best(moves)
}

// worstCase returns the lowest reply quality over every spawn. A spawned
// board with no reply scores 0. With no spawns at all (the board before the
// move was full) the reply quality on the moved board itself is used.
func (f DeepMoveFinder) worstCase(moved board.Board, opponents []board.ValuePoint) float64 {
	if len(opponents) == 0 {
		return f.replyQuality(moved)
	}
	worst := math.Inf(1)
	for _, vp := range opponents {
		worst = min(worst, f.replyQuality(f.spawn(moved, vp)))
	}
	return worst
}

func (f DeepMoveFinder) replyQuality(b board.Board) float64 {
	if reply, ok := f.Inner.Find(b); ok {
		return reply.Quality
	}
	return 0
}

func (f DeepMoveFinder) spawn(b board.Board, vp board.ValuePoint) board.Board {
	return f.Spawns.Do(SpawnKey{Code: b.Code(), Spawn: vp}, func() board.Board {
		return Spawn(b, vp)
	})
}

func mutatorOrPlain(m transform.Mutator) transform.Mutator {
	if m == nil {
		return transform.Plain{}
	}
	return m
}
