// Package board defines the immutable 4x4 tile grid the bot reasons about,
// together with the canonical code used to compare and cache boards.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// ErrInvalidBoard is wrapped by every validation failure.
var ErrInvalidBoard = errors.New("board: invalid board")

// ValidationError describes why a board was rejected at construction.
type ValidationError struct {
	Row, Col int
	Value    int
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return "board: " + e.Reason
	}
	return fmt.Sprintf("board: cell (%d,%d) = %d: %s", e.Row, e.Col, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBoard
}

type codeCell struct {
	code  Code
	ready bool
}

// Board is an immutable grid of tile values. Every cell is 0 (empty) or a
// power of two not smaller than 2. Boards are compared with Equals, not ==.
type Board struct {
	cells [Size][Size]int
	conv  *Converter
	code  *codeCell
}

// New validates rows and builds a board using a fresh converter.
func New(rows [][]int) (Board, error) {
	return NewWith(NewConverter(), rows)
}

// NewWith validates rows and builds a board sharing conv.
func NewWith(conv *Converter, rows [][]int) (Board, error) {
	if len(rows) != Size {
		return Board{}, &ValidationError{Row: -1, Reason: fmt.Sprintf("expected %d rows, got %d", Size, len(rows))}
	}
	var cells [Size][Size]int
	for i, row := range rows {
		if len(row) != Size {
			return Board{}, &ValidationError{Row: -1, Reason: fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), Size)}
		}
		copy(cells[i][:], row)
	}
	return FromCells(conv, cells)
}

// FromCells validates a fixed-size grid and builds a board sharing conv.
func FromCells(conv *Converter, cells [Size][Size]int) (Board, error) {
	for i := range Size {
		for j := range Size {
			if !validTile(cells[i][j]) {
				return Board{}, &ValidationError{Row: i, Col: j, Value: cells[i][j], Reason: fmt.Sprintf("not 0 or a power of two in [2, %d]", MaxTile)}
			}
		}
	}
	if conv == nil {
		conv = NewConverter()
	}
	return Board{cells: cells, conv: conv, code: &codeCell{}}, nil
}

// Parse reads a board from text. Rows are separated by '/', ';' or newlines
// and cells by commas or whitespace, e.g. "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0".
func Parse(conv *Converter, s string) (Board, error) {
	lines := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ';' || r == '\n'
	})
	rows := make([][]int, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Board{}, &ValidationError{Row: -1, Reason: fmt.Sprintf("cannot parse %q: %v", f, err)}
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if conv == nil {
		conv = NewConverter()
	}
	return NewWith(conv, rows)
}

// validTile reports whether v is 0 or 2^k with 1 <= k and 2^k <= MaxTile.
func validTile(v int) bool {
	return v == 0 || (v >= 2 && v <= MaxTile && v&(v-1) == 0)
}

// Value returns the tile at row i, column j.
func (b Board) Value(i, j int) int {
	return b.cells[i][j]
}

// At returns the tile at p.
func (b Board) At(p Point) int {
	return b.cells[p.Row][p.Col]
}

// Cells returns a copy of the grid.
func (b Board) Cells() [Size][Size]int {
	return b.cells
}

// Converter returns the converter the board was built with.
func (b Board) Converter() *Converter {
	if b.conv == nil {
		return NewConverter()
	}
	return b.conv
}

// Next returns a board holding cells that shares b's converter. Cells are
// not validated: callers must only pass grids produced by moving or merging
// valid tiles.
func (b Board) Next(cells [Size][Size]int) Board {
	return Board{cells: cells, conv: b.Converter(), code: &codeCell{}}
}

// With returns a copy of b with the tile at p replaced by value. It panics
// if value is not a valid tile.
func (b Board) With(p Point, value int) Board {
	if !validTile(value) {
		panic(fmt.Sprintf("board: cannot place %d at %v", value, p))
	}
	cells := b.cells
	cells[p.Row][p.Col] = value
	return b.Next(cells)
}

// Equals compares boards cell by cell.
func (b Board) Equals(other Board) bool {
	return b.cells == other.cells
}

// Code returns the canonical code, computing it on first use.
func (b Board) Code() Code {
	if b.code == nil {
		return b.Converter().Encode(&b.cells)
	}
	if !b.code.ready {
		b.code.code = b.Converter().Encode(&b.cells)
		b.code.ready = true
	}
	return b.code.code
}

// Fold reduces the board over every cell in row-major order.
func Fold[T any](b Board, init T, visit func(acc T, cell ValuePoint) T) T {
	acc := init
	for i := range Size {
		for j := range Size {
			acc = visit(acc, ValuePoint{Point: Point{i, j}, Value: b.cells[i][j]})
		}
	}
	return acc
}

// Max returns the first highest tile in row-major order.
func (b Board) Max() ValuePoint {
	return Fold(b, ValuePoint{}, func(best ValuePoint, c ValuePoint) ValuePoint {
		if c.Value > best.Value {
			return c
		}
		return best
	})
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (b Board) EmptyCells() []Point {
	return Fold(b, []Point(nil), func(acc []Point, c ValuePoint) []Point {
		if c.Value == 0 {
			acc = append(acc, c.Point)
		}
		return acc
	})
}

// EmptyCount returns the number of empty cells.
func (b Board) EmptyCount() int {
	return Fold(b, 0, func(n int, c ValuePoint) int {
		if c.Value == 0 {
			n++
		}
		return n
	})
}

// RowCounts returns the number of filled cells in each row.
func (b Board) RowCounts() [Size]int {
	var counts [Size]int
	for i := range Size {
		for j := range Size {
			if b.cells[i][j] != 0 {
				counts[i]++
			}
		}
	}
	return counts
}

// ColCounts returns the number of filled cells in each column.
func (b Board) ColCounts() [Size]int {
	var counts [Size]int
	for i := range Size {
		for j := range Size {
			if b.cells[i][j] != 0 {
				counts[j]++
			}
		}
	}
	return counts
}

// String formats the board in the form accepted by Parse.
func (b Board) String() string {
	var sb strings.Builder
	for i := range Size {
		if i > 0 {
			sb.WriteByte('/')
		}
		for j := range Size {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(b.cells[i][j]))
		}
	}
	return sb.String()
}
