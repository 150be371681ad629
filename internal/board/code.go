package board

import "fmt"

// Code is the canonical encoding of a board: one symbol per cell in row-major
// order, where the symbol is log2 of the cell value in base 36.
type Code string

const symbols = "0123456789abcdefghijklmnopqrstuvwxyz"

// MaxTile is the largest tile the code alphabet can encode.
const MaxTile = 1 << (len(symbols) - 1)

// Converter memoizes log2 and symbol lookups for tile values. The tables
// grow as new tile magnitudes show up. A Converter is owned by a single
// session and is not safe for concurrent use.
type Converter struct {
	logs    map[int]int
	symbols map[int]byte
}

// NewConverter returns a converter seeded with log2(0) = log2(1) = 0.
func NewConverter() *Converter {
	return &Converter{
		logs:    map[int]int{0: 0, 1: 0},
		symbols: map[int]byte{0: '0', 1: '0'},
	}
}

// Log2 returns log2(value) computed by halving. It panics when value is not
// 0 or a power of two.
func (c *Converter) Log2(value int) int {
	if l, ok := c.logs[value]; ok {
		return l
	}
	if value < 0 || value%2 != 0 {
		panic(fmt.Sprintf("board: log2 of %d which is not a power of two", value))
	}
	l := 1 + c.Log2(value/2)
	c.logs[value] = l
	return l
}

// Symbol returns the code symbol for a tile value.
func (c *Converter) Symbol(value int) byte {
	if s, ok := c.symbols[value]; ok {
		return s
	}
	l := c.Log2(value)
	if l >= len(symbols) {
		panic(fmt.Sprintf("board: tile %d is beyond the code alphabet", value))
	}
	c.symbols[value] = symbols[l]
	return symbols[l]
}

// Encode builds the canonical code of the given cells.
func (c *Converter) Encode(cells *[Size][Size]int) Code {
	var buf [Size * Size]byte
	for i := range Size {
		for j := range Size {
			buf[i*Size+j] = c.Symbol(cells[i][j])
		}
	}
	return Code(buf[:])
}
