// Package game is a seeded 2048 simulator. It stands in for the live game
// the bot plays: it reads boards, accepts moves and reports the end of the
// game.
package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/config"
	"github.com/ob-ivan/bot2048/internal/transform"
)

// Game simulates a 2048 game.
type Game struct {
	cfg    config.GameConfig
	rng    *rand.Rand
	conv   *board.Converter
	logger *log.Logger

	board board.Board
	score int
	moves int
	won   bool
	over  bool
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger sets the logger used for move traces.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a game and deals the first two tiles.
func New(cfg config.GameConfig, seed int64, opts ...Option) *Game {
	g := &Game{cfg: cfg, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(seed)
	return g
}

// Reset restarts the game with a new seed.
func (g *Game) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.conv = board.NewConverter()
	g.board, _ = board.FromCells(g.conv, [board.Size][board.Size]int{})
	g.score = 0
	g.moves = 0
	g.won = false
	g.over = false

	// Spawn initial tiles (2 tiles)
	g.spawnTile()
	g.spawnTile()
}

// Load replaces the board, e.g. to resume from a known position.
func (g *Game) Load(b board.Board) {
	g.board = b
	g.won = g.cfg.Target > 0 && b.Max().Value >= g.cfg.Target
	g.over = !transform.CanMove(b)
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (g *Game) spawnTile() {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return
	}

	// Pick random empty cell
	cell := empty[g.rng.Intn(len(empty))]

	// Determine value (90% 2, 10% 4 by default)
	value := 2
	if g.rng.Float64() < g.cfg.Spawn4 {
		value = 4
	}

	g.board = g.board.With(cell, value)
}

// Read returns the current board.
func (g *Game) Read() (board.Board, error) {
	return g.board, nil
}

// Apply plays dir. A move that changes nothing is ignored and spawns nothing.
func (g *Game) Apply(dir board.Direction) {
	if g.over || g.won {
		return
	}

	next, gained := transform.MoveScored(g.board, dir)
	if next.Equals(g.board) {
		g.logger.Debug("ignored no-op move", "direction", dir)
		return
	}

	g.board = next
	g.score += gained
	g.moves++
	g.logger.Debug("key", "code", KeyCode(dir), "direction", dir, "score", g.score)

	if g.cfg.Target > 0 && g.board.Max().Value >= g.cfg.Target {
		g.won = true
		return
	}

	g.spawnTile()

	if !transform.CanMove(g.board) {
		g.over = true
	}
}

// IsOver reports whether the game has ended, by losing or by reaching the
// target tile.
func (g *Game) IsOver() bool {
	return g.over || g.won
}

// Won reports whether the target tile was reached.
func (g *Game) Won() bool {
	return g.won
}

// Score returns the points gained by merges so far.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of effective moves played.
func (g *Game) Moves() int {
	return g.moves
}

// KeyCode returns the arrow key code a browser would receive for dir.
func KeyCode(dir board.Direction) int {
	switch dir {
	case board.Down:
		return 40
	case board.Left:
		return 37
	case board.Right:
		return 39
	case board.Up:
		return 38
	default:
		panic(fmt.Sprintf("game: no key for direction %d", int(dir)))
	}
}
