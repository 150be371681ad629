// Package bot drives a decision engine against a game: read the board,
// decide, press the key, repeat until the game ends or the bot is stopped.
package bot

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/config"
)

// BoardSource observes the current board.
type BoardSource interface {
	Read() (board.Board, error)
}

// ActionSink delivers a move to the game.
type ActionSink interface {
	Apply(board.Direction)
}

// TerminalDetector reports whether the game has ended.
type TerminalDetector interface {
	IsOver() bool
}

// Decider picks a move for a board. ok is false when there is nothing to play.
type Decider interface {
	Decide(board.Board) (dir board.Direction, ok bool)
}

// Game is a collaborator that plays all three roles, such as game.Game.
type Game interface {
	BoardSource
	ActionSink
	TerminalDetector
}

// StopReason tells why a run ended.
type StopReason string

const (
	StopGameOver StopReason = "game_over"
	StopNoMove   StopReason = "no_move"
	StopMaxMoves StopReason = "max_moves"
	StopStopped  StopReason = "stopped"
)

// Result summarizes a run.
type Result struct {
	Moves    int
	Reason   StopReason
	Duration time.Duration
}

// Bot runs the turn loop.
type Bot struct {
	source   BoardSource
	sink     ActionSink
	detector TerminalDetector
	decider  Decider
	cfg      config.BotConfig
	logger   *log.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// Option customizes a Bot.
type Option func(*Bot)

// WithLogger sets the logger used for turn traces.
func WithLogger(l *log.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// New creates a bot over separate collaborators.
func New(source BoardSource, sink ActionSink, detector TerminalDetector, decider Decider, cfg config.BotConfig, opts ...Option) *Bot {
	b := &Bot{
		source:   source,
		sink:     sink,
		detector: detector,
		decider:  decider,
		cfg:      cfg,
		logger:   log.New(io.Discard),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ForGame creates a bot over a collaborator that plays every role.
func ForGame(g Game, decider Decider, cfg config.BotConfig, opts ...Option) *Bot {
	return New(g, g, g, decider, cfg, opts...)
}

// Turn plays a single move. It reports false when the game is over or the
// decider has nothing to play.
func (b *Bot) Turn() (bool, error) {
	if b.detector.IsOver() {
		return false, nil
	}

	current, err := b.source.Read()
	if err != nil {
		return false, fmt.Errorf("bot: read board: %w", err)
	}

	dir, ok := b.decider.Decide(current)
	if !ok {
		b.logger.Debug("no move", "board", current)
		return false, nil
	}

	b.logger.Debug("turn", "board", current, "direction", dir)
	b.sink.Apply(dir)
	return true, nil
}

// Run plays turns every cfg.Interval until the game ends, the decider gives
// up, MaxMoves is reached, ctx is cancelled or Stop is called. The first turn
// is played immediately. A zero interval plays turns back to back.
func (b *Bot) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{}
	finish := func(reason StopReason) Result {
		res.Reason = reason
		res.Duration = time.Since(start)
		b.logger.Info("run finished", "moves", res.Moves, "reason", reason, "duration", res.Duration)
		return res
	}

	var tick <-chan time.Time
	if b.cfg.Interval > 0 {
		ticker := time.NewTicker(b.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if b.detector.IsOver() {
			return finish(StopGameOver), nil
		}
		if b.cfg.MaxMoves > 0 && res.Moves >= b.cfg.MaxMoves {
			return finish(StopMaxMoves), nil
		}

		moved, err := b.Turn()
		if err != nil {
			return finish(StopStopped), err
		}
		if !moved {
			if b.detector.IsOver() {
				return finish(StopGameOver), nil
			}
			return finish(StopNoMove), nil
		}
		res.Moves++

		select {
		case <-ctx.Done():
			return finish(StopStopped), nil
		case <-b.stop:
			return finish(StopStopped), nil
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return finish(StopStopped), nil
			case <-b.stop:
				return finish(StopStopped), nil
			case <-tick:
			}
		}
	}
}

// Stop ends a running loop after the current turn. It is safe to call more
// than once and from another goroutine.
func (b *Bot) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}
