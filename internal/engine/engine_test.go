package engine

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/config"
)

func parse(t *testing.T, s string) board.Board {
	t.Helper()
	b, err := board.Parse(nil, s)
	require.NoError(t, err)
	return b
}

func newEngine(t *testing.T, modify func(*config.EngineConfig), opts ...Option) *Engine {
	t.Helper()
	cfg := config.Default().Engine
	if modify != nil {
		modify(&cfg)
	}
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func TestDecideEmptyBoard(t *testing.T) {
	for _, finder := range []string{"best", "deep", "random"} {
		t.Run(finder, func(t *testing.T) {
			e := newEngine(t, func(c *config.EngineConfig) { c.Finder = finder })
			_, ok := e.Decide(parse(t, "0,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0"))
			assert.False(t, ok)
			assert.Equal(t, 1, e.Stats().NoMove)
		})
	}
}

func TestDecideStuckBoard(t *testing.T) {
	e := newEngine(t, nil)
	_, ok := e.Decide(parse(t, "2,4,2,4/4,2,4,2/2,4,2,4/4,2,4,2"))
	assert.False(t, ok)
}

func TestDecideOnlyLegalMove(t *testing.T) {
	e := newEngine(t, func(c *config.EngineConfig) { c.GateRatio = 0 })
	dir, ok := e.Decide(parse(t, "2,4,2,4/0,0,0,0/0,0,0,0/0,0,0,0"))
	require.True(t, ok)
	assert.Equal(t, board.Down, dir)
}

func TestDecideIsDeterministic(t *testing.T) {
	boards := []string{
		"2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0",
		"2,4,8,16/4,8,16,32/8,16,32,64/0,2,2,8",
		"0,2,0,4/2,0,8,0/0,16,0,2/4,0,2,128",
	}
	for _, finder := range []string{"best", "deep"} {
		for _, s := range boards {
			b := parse(t, s)
			d1, ok1 := newEngine(t, func(c *config.EngineConfig) { c.Finder = finder }).Decide(b)
			d2, ok2 := newEngine(t, func(c *config.EngineConfig) { c.Finder = finder }).Decide(b)
			assert.Equal(t, ok1, ok2, "%s %s", finder, s)
			assert.Equal(t, d1, d2, "%s %s", finder, s)
		}
	}
}

func TestQualityGate(t *testing.T) {
	b := parse(t, "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0")

	// Max tile goes from 2 to 4 after the merge.
	pass := newEngine(t, func(c *config.EngineConfig) {
		c.Strategy = "maxtile"
		c.Finder = "best"
		c.GateRatio = 0.5
	})
	dir, ok := pass.Decide(b)
	require.True(t, ok)
	// Left and right both make a 4; right comes later in enumeration.
	assert.Equal(t, board.Right, dir)

	refuse := newEngine(t, func(c *config.EngineConfig) {
		c.Strategy = "maxtile"
		c.Finder = "best"
		c.GateRatio = 3
	})
	_, ok = refuse.Decide(b)
	assert.False(t, ok)
	assert.Equal(t, 1, refuse.Stats().Gated)
}

func TestCachePolicy(t *testing.T) {
	b := parse(t, "0,2,0,4/2,0,8,0/0,16,0,2/4,0,2,128")

	session := newEngine(t, func(c *config.EngineConfig) { c.Cache.Policy = config.CacheSession })
	session.Decide(b)
	first := session.Stats().Evals.Misses
	session.Decide(b)
	assert.Equal(t, first, session.Stats().Evals.Misses, "session cache should answer the repeat")
	assert.Positive(t, session.Stats().Evals.Hits)

	perDecision := newEngine(t, func(c *config.EngineConfig) { c.Cache.Policy = config.CacheDecision })
	perDecision.Decide(b)
	first = perDecision.Stats().Evals.Misses
	perDecision.Decide(b)
	assert.Equal(t, 2*first, perDecision.Stats().Evals.Misses, "decision cache should be cleared")

	off := newEngine(t, func(c *config.EngineConfig) { c.Cache.Policy = config.CacheOff })
	d1, ok1 := off.Decide(b)
	d2, ok2 := session.Decide(b)
	assert.Equal(t, ok2, ok1)
	assert.Equal(t, d2, d1)
	assert.Zero(t, off.Stats().Evals.Misses)
}

func TestCacheCapacityBoundsTables(t *testing.T) {
	e := newEngine(t, func(c *config.EngineConfig) {
		c.Cache.Policy = config.CacheSession
		c.Cache.Capacity = 16
	})
	e.Decide(parse(t, "0,2,0,4/2,0,8,0/0,16,0,2/4,0,2,128"))
	stats := e.Stats()
	assert.LessOrEqual(t, stats.Evals.Size, 16)
	assert.LessOrEqual(t, stats.Spawns.Size, 16)
	assert.Positive(t, stats.Spawns.Evictions)

	e.Reset()
	assert.Zero(t, e.Stats().Evals.Size)
}

func TestNewRejectsUnknownNames(t *testing.T) {
	cfg := config.Default().Engine
	cfg.Strategy = "nope"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.Default().Engine
	cfg.Finder = "nope"
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = config.Default().Engine
	cfg.Snake.Pattern = "spiral"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRandomFinderWithSeed(t *testing.T) {
	b := parse(t, "0,0,0,0/0,2,0,0/0,0,0,0/0,0,0,0")
	pick := func() board.Direction {
		e := newEngine(t, func(c *config.EngineConfig) { c.Finder = "random" }, WithRand(rand.New(rand.NewSource(7))))
		dir, ok := e.Decide(b)
		require.True(t, ok)
		return dir
	}
	assert.Equal(t, pick(), pick())
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	e := newEngine(t, func(c *config.EngineConfig) { c.Finder = "best" }, WithLogger(logger))
	_, ok := e.Decide(parse(t, "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0"))
	require.True(t, ok)
	assert.Contains(t, buf.String(), "candidate")
	assert.Contains(t, buf.String(), "decided")
}
