// Package config provides YAML-based configuration loading for the bot:
// the decision engine, the simulated game and the turn loop.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ob-ivan/bot2048/internal/board"
)

// Config is the complete bot configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Game   GameConfig   `yaml:"game"`
	Bot    BotConfig    `yaml:"bot"`
}

// EngineConfig selects and tunes the decision engine.
type EngineConfig struct {
	Strategy  string      `yaml:"strategy"`   // registry strategy name
	Finder    string      `yaml:"finder"`     // "best", "deep" or "random"
	GateRatio float64     `yaml:"gate_ratio"` // refuse moves scoring below ratio * current quality; 0 disables
	Snake     SnakeConfig `yaml:"snake"`
	Trap      TrapConfig  `yaml:"trap"`
	Cache     CacheConfig `yaml:"cache"`
}

// SnakeConfig defines the snake bonus weights.
type SnakeConfig struct {
	Pattern string  `yaml:"pattern"` // "zigzag" or "gravity"
	Scale   float64 `yaml:"scale"`
}

// TrapConfig defines the fill pattern the wise snake avoids.
type TrapConfig struct {
	Enabled bool   `yaml:"enabled"`
	Axis    string `yaml:"axis"` // "rows" or "cols"
	Counts  []int  `yaml:"counts"`
}

// CachePolicy decides how long memoized results live.
type CachePolicy string

const (
	CacheDecision CachePolicy = "decision" // cleared before every decision
	CacheSession  CachePolicy = "session"  // kept for the whole session
	CacheOff      CachePolicy = "off"
)

// CacheConfig defines memoization lifetime and size.
type CacheConfig struct {
	Policy   CachePolicy `yaml:"policy"`
	Capacity int         `yaml:"capacity"` // entries per table, 0 = unbounded
}

// GameConfig defines the simulated game.
type GameConfig struct {
	Spawn4 float64 `yaml:"spawn4"` // probability of spawning 4 instead of 2
	Target int     `yaml:"target"` // tile that wins the run, 0 = endless
}

// BotConfig defines the turn loop.
type BotConfig struct {
	Interval time.Duration `yaml:"interval"`
	MaxMoves int           `yaml:"max_moves"` // 0 = until the game ends
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks ranges and enumerations. Strategy and finder names are
// checked when the engine is built.
func (c Config) Validate() error {
	e := c.Engine
	if e.Strategy == "" || e.Finder == "" {
		return fmt.Errorf("%w: engine strategy and finder are required", ErrInvalidConfig)
	}
	if e.GateRatio < 0 {
		return fmt.Errorf("%w: gate_ratio %g is negative", ErrInvalidConfig, e.GateRatio)
	}
	switch e.Snake.Pattern {
	case "", "zigzag", "gravity":
	default:
		return fmt.Errorf("%w: unknown snake pattern %q", ErrInvalidConfig, e.Snake.Pattern)
	}
	switch e.Trap.Axis {
	case "", "rows", "cols":
	default:
		return fmt.Errorf("%w: unknown trap axis %q", ErrInvalidConfig, e.Trap.Axis)
	}
	if e.Trap.Enabled && len(e.Trap.Counts) != board.Size {
		return fmt.Errorf("%w: trap counts need %d entries, got %d", ErrInvalidConfig, board.Size, len(e.Trap.Counts))
	}
	for _, n := range e.Trap.Counts {
		if n < 0 || n > board.Size {
			return fmt.Errorf("%w: trap count %d out of range", ErrInvalidConfig, n)
		}
	}
	switch e.Cache.Policy {
	case CacheDecision, CacheSession, CacheOff:
	default:
		return fmt.Errorf("%w: unknown cache policy %q", ErrInvalidConfig, e.Cache.Policy)
	}
	if e.Cache.Capacity < 0 {
		return fmt.Errorf("%w: cache capacity %d is negative", ErrInvalidConfig, e.Cache.Capacity)
	}
	if c.Game.Spawn4 < 0 || c.Game.Spawn4 > 1 {
		return fmt.Errorf("%w: spawn4 %g outside [0, 1]", ErrInvalidConfig, c.Game.Spawn4)
	}
	if t := c.Game.Target; t != 0 && (t < 4 || t&(t-1) != 0) {
		return fmt.Errorf("%w: target %d is not a power of two", ErrInvalidConfig, t)
	}
	if c.Bot.Interval < 0 || c.Bot.MaxMoves < 0 {
		return fmt.Errorf("%w: bot interval and max_moves must not be negative", ErrInvalidConfig)
	}
	return nil
}
