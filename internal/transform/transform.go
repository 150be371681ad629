// Package transform implements the slide-and-merge rules. Every direction is
// built from one primitive, SlideLeft, composed with transpose and flips.
package transform

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ob-ivan/bot2048/internal/board"
)

const size = board.Size

type grid = [size][size]int

// slideRow slides and merges a single row to the left.
// Returns the updated row and the score gained from merges.
func slideRow(row [size]int) (result [size]int, score int) {
	w := 0
	for r := 0; r < size; r++ {
		v := row[r]
		if v == 0 {
			continue
		}

		// Find next non-empty cell
		n := r + 1
		for n < size && row[n] == 0 {
			n++
		}

		if n < size && row[n] == v {
			// Merge and skip the consumed tile
			result[w] = v * 2
			score += v * 2
			r = n
		} else {
			result[w] = v
		}
		w++
	}
	return result, score
}

func slideLeft(cells grid) (grid, int) {
	var out grid
	total := 0
	for i := range size {
		row, score := slideRow(cells[i])
		out[i] = row
		total += score
	}
	return out, total
}

func transpose(cells grid) grid {
	var out grid
	for i := range size {
		for j := range size {
			out[i][j] = cells[j][i]
		}
	}
	return out
}

func flipHorizontal(cells grid) grid {
	var out grid
	for i := range size {
		for j := range size {
			out[i][j] = cells[i][size-1-j]
		}
	}
	return out
}

func flipVertical(cells grid) grid {
	var out grid
	for i := range size {
		out[i] = cells[size-1-i]
	}
	return out
}

func move(cells grid, dir board.Direction) (grid, int) {
	switch dir {
	case board.Left:
		return slideLeft(cells)
	case board.Right:
		out, score := slideLeft(flipHorizontal(cells))
		return flipHorizontal(out), score
	case board.Up:
		out, score := slideLeft(transpose(cells))
		return transpose(out), score
	case board.Down:
		out, score := slideLeft(flipHorizontal(transpose(cells)))
		return transpose(flipHorizontal(out)), score
	default:
		panic(fmt.Sprintf("transform: unknown direction %d", int(dir)))
	}
}

// SlideLeft slides all tiles left, merging equal neighbours once.
func SlideLeft(b board.Board) board.Board {
	out, _ := slideLeft(b.Cells())
	return b.Next(out)
}

// Transpose mirrors the board over its main diagonal.
func Transpose(b board.Board) board.Board {
	return b.Next(transpose(b.Cells()))
}

// FlipHorizontal mirrors the board left to right.
func FlipHorizontal(b board.Board) board.Board {
	return b.Next(flipHorizontal(b.Cells()))
}

// FlipVertical mirrors the board top to bottom.
func FlipVertical(b board.Board) board.Board {
	return b.Next(flipVertical(b.Cells()))
}

// Move returns the board after sliding in dir.
func Move(b board.Board, dir board.Direction) board.Board {
	out, _ := move(b.Cells(), dir)
	return b.Next(out)
}

// MoveScored returns the board after sliding in dir and the points gained
// from merges.
func MoveScored(b board.Board, dir board.Direction) (board.Board, int) {
	out, score := move(b.Cells(), dir)
	return b.Next(out), score
}

// Mutator computes the result of a move.
type Mutator interface {
	Move(b board.Board, dir board.Direction) board.Board
}

// Plain computes every move directly.
type Plain struct{}

// Move implements Mutator.
func (Plain) Move(b board.Board, dir board.Direction) board.Board {
	return Move(b, dir)
}

// Candidate is the outcome of an effective move.
type Candidate struct {
	Direction board.Direction
	Board     board.Board
}

// Candidates returns the effective moves from b in board.All order. A
// direction that leaves the board unchanged is not a candidate.
func Candidates(m Mutator, b board.Board) []Candidate {
	all := lo.Map(board.All[:], func(dir board.Direction, _ int) Candidate {
		return Candidate{Direction: dir, Board: m.Move(b, dir)}
	})
	return lo.Filter(all, func(c Candidate, _ int) bool {
		return !c.Board.Equals(b)
	})
}

// CanMove reports whether any direction changes b.
func CanMove(b board.Board) bool {
	return len(Candidates(Plain{}, b)) > 0
}
