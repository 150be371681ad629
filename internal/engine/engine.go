// Package engine wires the board, transform, strategy and search layers
// into a per-session decision maker. An Engine owns its caches and is
// discarded at the end of a session; it is not safe for concurrent use.
package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/config"
	"github.com/ob-ivan/bot2048/internal/memo"
	"github.com/ob-ivan/bot2048/internal/registry"
	"github.com/ob-ivan/bot2048/internal/search"
	"github.com/ob-ivan/bot2048/internal/strategy"
	"github.com/ob-ivan/bot2048/internal/transform"
)

// Stats summarizes a session.
type Stats struct {
	Decisions int
	NoMove    int // stuck boards
	Gated     int // moves refused by the quality gate
	Moves     memo.Stats
	Evals     memo.Stats
	Spawns    memo.Stats
}

// Engine decides moves for one game session.
type Engine struct {
	cfg      config.EngineConfig
	strategy strategy.Strategy
	finder   search.Finder
	logger   *log.Logger

	moves  *memo.Table[transform.MoveKey, board.Board]
	evals  *memo.Table[strategy.EvalKey, float64]
	spawns *memo.Table[search.SpawnKey, board.Board]

	decisions, noMove, gated int
}

// Option customizes an Engine.
type Option func(*options)

type options struct {
	logger *log.Logger
	rng    *rand.Rand
}

// WithLogger sets the logger used for decision traces.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand makes the random finder reproducible.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// New builds an engine from cfg.
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	weights, err := strategy.WeightsByName(cfg.Snake.Pattern)
	if err != nil {
		return nil, err
	}
	scale := cfg.Snake.Scale
	if scale == 0 {
		scale = 1
	}
	params := registry.Params{
		Snake:     weights.Scale(scale),
		Trap:      cfg.Trap.Counts,
		TrapAxis:  strategy.Axis(cfg.Trap.Axis),
		TrapCheck: cfg.Trap.Enabled,
	}
	if params.TrapAxis == "" {
		params.TrapAxis = strategy.AxisRows
	}

	base, err := registry.CreateStrategy(cfg.Strategy, params)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, logger: o.logger}
	if cfg.Cache.Policy != config.CacheOff {
		e.moves = memo.New[transform.MoveKey, board.Board](cfg.Cache.Capacity)
		e.evals = memo.New[strategy.EvalKey, float64](cfg.Cache.Capacity)
		e.spawns = memo.New[search.SpawnKey, board.Board](cfg.Cache.Capacity)
	}
	e.strategy = strategy.NewCached(base, e.evals)

	e.finder, err = registry.CreateFinder(cfg.Finder, registry.FinderEnv{
		Mutator:  transform.NewCached(transform.Plain{}, e.moves),
		Strategy: e.strategy,
		Spawns:   e.spawns,
		Rand:     o.rng,
		Logger:   o.logger,
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Decide returns the direction to play on b. ok is false when no direction
// changes the board or when the best move scores below GateRatio times the
// quality of b itself.
func (e *Engine) Decide(b board.Board) (dir board.Direction, ok bool) {
	if e.cfg.Cache.Policy == config.CacheDecision {
		e.clear()
	}
	e.decisions++

	best, found := e.finder.Find(b)
	if !found {
		e.noMove++
		e.logger.Debug("no effective move", "board", b)
		return 0, false
	}

	if e.cfg.GateRatio > 0 && e.cfg.Finder != "random" {
		current := e.strategy.Evaluate(b)
		if best.Quality < current*e.cfg.GateRatio {
			e.gated++
			e.logger.Debug("move below quality gate", "board", b, "move", best, "current", current)
			return 0, false
		}
	}

	e.logger.Debug("decided", "board", b, "move", best)
	return best.Direction, true
}

// Strategy returns the engine's (cached) strategy.
func (e *Engine) Strategy() strategy.Strategy {
	return e.strategy
}

// Stats returns session counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Decisions: e.decisions,
		NoMove:    e.noMove,
		Gated:     e.gated,
		Moves:     e.moves.Stats(),
		Evals:     e.evals.Stats(),
		Spawns:    e.spawns.Stats(),
	}
}

// Reset drops every cached result, ending the session's memory.
func (e *Engine) Reset() {
	e.clear()
}

func (e *Engine) clear() {
	e.moves.Clear()
	e.evals.Clear()
	e.spawns.Clear()
}
