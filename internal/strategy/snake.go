package strategy

import (
	"fmt"
	"slices"

	"github.com/ob-ivan/bot2048/internal/board"
)

// Weights assigns a multiplier to every cell.
type Weights [board.Size][board.Size]float64

// ZigZag weights a serpentine path starting at the top-left corner: the top
// row runs left to right, the next one right to left, and so on, with the
// first cell of the path weighted highest.
func ZigZag() Weights {
	var w Weights
	rank := board.Size*board.Size - 1
	for i := range board.Size {
		for k := range board.Size {
			j := k
			if i%2 == 1 {
				j = board.Size - 1 - k
			}
			w[i][j] = float64(rank)
			rank--
		}
	}
	return w
}

// Gravity weights every cell by its row index, pulling big tiles down.
func Gravity() Weights {
	var w Weights
	for i := range board.Size {
		for j := range board.Size {
			w[i][j] = float64(i)
		}
	}
	return w
}

// WeightsByName returns a named weight table.
func WeightsByName(name string) (Weights, error) {
	switch name {
	case "", "zigzag":
		return ZigZag(), nil
	case "gravity":
		return Gravity(), nil
	}
	return Weights{}, fmt.Errorf("strategy: unknown snake pattern %q", name)
}

// Scale multiplies every weight by k.
func (w Weights) Scale(k float64) Weights {
	for i := range board.Size {
		for j := range board.Size {
			w[i][j] *= k
		}
	}
	return w
}

// Snake adds the weighted tile sum to the inner score, rewarding tiles laid
// out in descending order along the weight path.
type Snake struct {
	Inner   Strategy
	Weights Weights
}

func (Snake) Name() string { return "snake" }

// Evaluate implements Strategy.
func (s Snake) Evaluate(b board.Board) float64 {
	bonus := board.Fold(b, 0.0, func(acc float64, c board.ValuePoint) float64 {
		return acc + float64(c.Value)*s.Weights[c.Row][c.Col]
	})
	return s.Inner.Evaluate(b) + bonus
}

// Axis selects which filled-cell counts the trap check looks at.
type Axis string

const (
	AxisRows Axis = "rows"
	AxisCols Axis = "cols"
)

// DefaultTrap is the row fill pattern WiseSnake steers away from.
var DefaultTrap = []int{0, 3, 4, 4}

// WiseSnake scores 0 when the board's fill counts match the trap pattern and
// defers to the inner strategy otherwise.
type WiseSnake struct {
	Inner Strategy
	Trap  []int
	Axis  Axis
}

func (WiseSnake) Name() string { return "wise-snake" }

// Evaluate implements Strategy.
func (s WiseSnake) Evaluate(b board.Board) float64 {
	if s.Trapped(b) {
		return 0
	}
	return s.Inner.Evaluate(b)
}

// Trapped reports whether b matches the trap pattern.
func (s WiseSnake) Trapped(b board.Board) bool {
	if len(s.Trap) != board.Size {
		return false
	}
	counts := b.RowCounts()
	if s.Axis == AxisCols {
		counts = b.ColCounts()
	}
	return slices.Equal(counts[:], s.Trap)
}
