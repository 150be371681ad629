package board

import "fmt"

// Point is a cell coordinate, 0-indexed.
type Point struct {
	Row, Col int
}

// In reports whether the point lies on the board.
func (p Point) In() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Neighbours returns the orthogonally adjacent points that lie on the board,
// in up, left, right, down order.
func (p Point) Neighbours() []Point {
	candidates := [4]Point{
		{p.Row - 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
		{p.Row + 1, p.Col},
	}
	result := make([]Point, 0, 4)
	for _, n := range candidates {
		if n.In() {
			result = append(result, n)
		}
	}
	return result
}

// Index returns the row-major index of the point.
func (p Point) Index() int {
	return p.Row*Size + p.Col
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ValuePoint is a point with a tile value attached. It marks the maximum tile
// of a board as well as a candidate spawn.
type ValuePoint struct {
	Point
	Value int
}

func (vp ValuePoint) String() string {
	return fmt.Sprintf("%d-%d-%d", vp.Row, vp.Col, vp.Value)
}

// Locus is the positional category of a cell.
type Locus int

const (
	Corner Locus = iota
	Side
	Middle
)

func (l Locus) String() string {
	switch l {
	case Corner:
		return "corner"
	case Side:
		return "side"
	default:
		return "middle"
	}
}

// LocusOf returns whether p is a corner, side or middle cell.
func LocusOf(p Point) Locus {
	edges := 0
	if p.Row == 0 || p.Row == Size-1 {
		edges++
	}
	if p.Col == 0 || p.Col == Size-1 {
		edges++
	}
	switch edges {
	case 2:
		return Corner
	case 1:
		return Side
	default:
		return Middle
	}
}
