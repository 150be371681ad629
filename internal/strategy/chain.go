package strategy

import (
	"github.com/ob-ivan/bot2048/internal/board"
)

// visited is a set of cells indexed row-major. It is passed by value so each
// branch of the search owns its copy.
type visited uint16

func (v visited) has(p board.Point) bool {
	return v&(1<<p.Index()) != 0
}

func (v visited) with(p board.Point) visited {
	return v | 1<<p.Index()
}

// Chain rewards a monotonically non-increasing path leading away from the
// max tile. From the current cell every unvisited neighbour that is not
// larger is explored:
//
//   - an empty neighbour ends the branch with sum+1,
//   - an equal neighbour ends it with sum+2*value-1,
//   - a smaller neighbour continues the chain with sum+value.
//
// A cell with nothing left to explore ends the branch with sum+value. The
// score is the best branch.
type Chain struct{}

func (Chain) Name() string { return "chain" }

// Evaluate implements Strategy.
func (Chain) Evaluate(b board.Board) float64 {
	top := b.Max()
	if top.Value == 0 {
		return 0
	}
	return float64(chainFrom(b, top.Point, 0, visited(0).with(top.Point)))
}

func chainFrom(b board.Board, p board.Point, sum int, seen visited) int {
	next := explorable(b, p, seen)
	if len(next) == 0 {
		return sum + b.At(p)
	}
	return bestBranch(b, p, sum, seen, next)
}

// explorable lists the unvisited neighbours that do not exceed p's tile.
func explorable(b board.Board, p board.Point, seen visited) []board.Point {
	v := b.At(p)
	result := make([]board.Point, 0, 4)
	for _, n := range p.Neighbours() {
		if seen.has(n) || b.At(n) > v {
			continue
		}
		result = append(result, n)
	}
	return result
}

func bestBranch(b board.Board, p board.Point, sum int, seen visited, next []board.Point) int {
	if len(next) == 0 {
		panic("strategy: chain branch without explorable neighbours")
	}
	v := b.At(p)
	best := 0
	for i, n := range next {
		var score int
		switch nv := b.At(n); {
		case nv == 0:
			score = sum + 1
		case nv == v:
			score = sum + 2*v - 1
		default:
			score = chainFrom(b, n, sum+v, seen.with(n))
		}
		if i == 0 || score > best {
			best = score
		}
	}
	return best
}
