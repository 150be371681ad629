// Package registry maps strategy and finder names to factories, so the CLI
// and configuration can select them without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/memo"
	"github.com/ob-ivan/bot2048/internal/search"
	"github.com/ob-ivan/bot2048/internal/strategy"
	"github.com/ob-ivan/bot2048/internal/transform"
)

// Params tunes the layered strategies.
type Params struct {
	Snake     strategy.Weights
	Trap      []int
	TrapAxis  strategy.Axis
	TrapCheck bool
}

// StrategyFactory builds a strategy from params.
type StrategyFactory func(p Params) strategy.Strategy

// FinderEnv carries what a finder needs. Everything in it belongs to a
// single engine session.
type FinderEnv struct {
	Mutator  transform.Mutator
	Strategy strategy.Strategy
	Spawns   *memo.Table[search.SpawnKey, board.Board]
	Rand     *rand.Rand
	Logger   *log.Logger
}

// FinderFactory builds a finder for a session.
type FinderFactory func(env FinderEnv) search.Finder

// Info describes a registered entry.
type Info struct {
	Name        string
	Description string
}

type strategyEntry struct {
	info    Info
	factory StrategyFactory
}

type finderEntry struct {
	info    Info
	factory FinderFactory
}

// The maps are filled by init functions and only read afterwards.
var (
	strategies = make(map[string]strategyEntry)
	finders    = make(map[string]finderEntry)
	mu         sync.RWMutex
)

// RegisterStrategy adds a strategy factory.
// Panics if a strategy with the same name is already registered.
func RegisterStrategy(name, description string, f StrategyFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := strategies[name]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", name))
	}
	strategies[name] = strategyEntry{info: Info{Name: name, Description: description}, factory: f}
}

// RegisterFinder adds a finder factory.
// Panics if a finder with the same name is already registered.
func RegisterFinder(name, description string, f FinderFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := finders[name]; exists {
		panic(fmt.Sprintf("registry: finder %q already registered", name))
	}
	finders[name] = finderEntry{info: Info{Name: name, Description: description}, factory: f}
}

// Strategies returns every registered strategy, sorted by name.
func Strategies() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(strategies))
	for _, e := range strategies {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Finders returns every registered finder, sorted by name.
func Finders() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(finders))
	for _, e := range finders {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// CreateStrategy instantiates a strategy by name.
// Returns an error if the name is not registered.
func CreateStrategy(name string, p Params) (strategy.Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", name)
	}
	return e.factory(p), nil
}

// CreateFinder instantiates a finder by name.
// Returns an error if the name is not registered.
func CreateFinder(name string, env FinderEnv) (search.Finder, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := finders[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown finder %q", name)
	}
	return e.factory(env), nil
}

// StrategyExists checks if a strategy with the given name is registered.
func StrategyExists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := strategies[name]
	return ok
}

// FinderExists checks if a finder with the given name is registered.
func FinderExists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := finders[name]
	return ok
}
