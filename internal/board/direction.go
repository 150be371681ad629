package board

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Down Direction = iota
	Left
	Right
	Up
)

// All lists every direction in enumeration order. Search relies on this order
// for deterministic tie-breaking.
var All = [...]Direction{Down, Left, Right, Up}

// String returns a lowercase name for the direction.
func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Down && d <= Up
}

// ParseDirection parses a direction name (case-insensitive, single letters allowed).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	}
	return 0, fmt.Errorf("board: unknown direction %q", s)
}
