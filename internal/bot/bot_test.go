package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/config"
	"github.com/ob-ivan/bot2048/internal/engine"
	"github.com/ob-ivan/bot2048/internal/game"
)

// fakeGame ends after a fixed number of applied moves.
type fakeGame struct {
	board   board.Board
	readErr error
	limit   int
	applied []board.Direction
}

func (g *fakeGame) Read() (board.Board, error) { return g.board, g.readErr }
func (g *fakeGame) Apply(d board.Direction)     { g.applied = append(g.applied, d) }
func (g *fakeGame) IsOver() bool                { return g.limit > 0 && len(g.applied) >= g.limit }

type deciderFunc func(board.Board) (board.Direction, bool)

func (f deciderFunc) Decide(b board.Board) (board.Direction, bool) { return f(b) }

func always(d board.Direction) Decider {
	return deciderFunc(func(board.Board) (board.Direction, bool) { return d, true })
}

func newFake(t *testing.T, limit int) *fakeGame {
	t.Helper()
	b, err := board.Parse(nil, "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0")
	require.NoError(t, err)
	return &fakeGame{board: b, limit: limit}
}

func TestTurnAppliesDecision(t *testing.T) {
	g := newFake(t, 0)
	b := ForGame(g, always(board.Up), config.BotConfig{})

	moved, err := b.Turn()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []board.Direction{board.Up}, g.applied)
}

func TestTurnOnFinishedGame(t *testing.T) {
	g := newFake(t, 1)
	g.applied = []board.Direction{board.Left}
	b := ForGame(g, always(board.Up), config.BotConfig{})

	moved, err := b.Turn()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Len(t, g.applied, 1)
}

func TestTurnReadError(t *testing.T) {
	g := newFake(t, 0)
	g.readErr = board.ErrInvalidBoard
	b := ForGame(g, always(board.Up), config.BotConfig{})

	_, err := b.Turn()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrInvalidBoard)
	assert.Empty(t, g.applied)
}

func TestRunUntilGameOver(t *testing.T) {
	g := newFake(t, 5)
	res, err := ForGame(g, always(board.Left), config.BotConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopGameOver, res.Reason)
	assert.Equal(t, 5, res.Moves)
}

func TestRunNoMove(t *testing.T) {
	g := newFake(t, 0)
	stuck := deciderFunc(func(board.Board) (board.Direction, bool) { return 0, false })
	res, err := ForGame(g, stuck, config.BotConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopNoMove, res.Reason)
	assert.Zero(t, res.Moves)
}

func TestRunMaxMoves(t *testing.T) {
	g := newFake(t, 0)
	res, err := ForGame(g, always(board.Down), config.BotConfig{MaxMoves: 3}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopMaxMoves, res.Reason)
	assert.Equal(t, 3, res.Moves)
}

func TestRunReadErrorStops(t *testing.T) {
	g := newFake(t, 0)
	g.readErr = errors.New("surface gone")
	res, err := ForGame(g, always(board.Down), config.BotConfig{}).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, StopStopped, res.Reason)
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := newFake(t, 0)
	cancelling := deciderFunc(func(board.Board) (board.Direction, bool) {
		cancel()
		return board.Right, true
	})
	res, err := ForGame(g, cancelling, config.BotConfig{Interval: time.Hour}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, StopStopped, res.Reason)
	assert.Equal(t, 1, res.Moves, "the turn in flight completes")
}

func TestStop(t *testing.T) {
	g := newFake(t, 0)
	var b *Bot
	stopping := deciderFunc(func(board.Board) (board.Direction, bool) {
		b.Stop()
		b.Stop()
		return board.Left, true
	})
	b = ForGame(g, stopping, config.BotConfig{Interval: time.Hour})

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopStopped, res.Reason)
	assert.Equal(t, 1, res.Moves)
}

func TestRunWithInterval(t *testing.T) {
	g := newFake(t, 3)
	res, err := ForGame(g, always(board.Left), config.BotConfig{Interval: time.Millisecond}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopGameOver, res.Reason)
	assert.Equal(t, 3, res.Moves)
}

func TestRunPlaysSimulatedGame(t *testing.T) {
	cfg := config.Default()
	g := game.New(cfg.Game, 7)
	e, err := engine.New(cfg.Engine)
	require.NoError(t, err)

	res, err := ForGame(g, e, config.BotConfig{MaxMoves: 40}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, g.Moves(), res.Moves)
	assert.LessOrEqual(t, res.Moves, 40)
	assert.Equal(t, res.Moves, e.Stats().Decisions-boolToInt(res.Reason == StopNoMove))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
