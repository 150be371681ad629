package registry

import (
	"github.com/ob-ivan/bot2048/internal/search"
	"github.com/ob-ivan/bot2048/internal/strategy"
)

func init() {
	RegisterStrategy("maxtile", "Highest tile on the board", func(Params) strategy.Strategy {
		return strategy.MaxTile{}
	})
	RegisterStrategy("chain", "Descending chain from the max tile", func(Params) strategy.Strategy {
		return strategy.Chain{}
	})
	RegisterStrategy("empty-chain", "Chain plus max tile per empty cell", func(Params) strategy.Strategy {
		return emptyChain()
	})
	RegisterStrategy("locus", "Empty chain minus max tile position penalty", func(Params) strategy.Strategy {
		return locus()
	})
	RegisterStrategy("snake", "Locus plus weighted snake order bonus", func(p Params) strategy.Strategy {
		return snake(p)
	})
	RegisterStrategy("wise-snake", "Snake that refuses a known trap fill pattern", func(p Params) strategy.Strategy {
		trap := p.Trap
		if !p.TrapCheck {
			trap = nil
		}
		return strategy.WiseSnake{Inner: snake(p), Trap: trap, Axis: p.TrapAxis}
	})

	RegisterFinder("best", "One-ply best move", func(env FinderEnv) search.Finder {
		f := onePly(env)
		f.Logger = env.Logger
		return f
	})
	RegisterFinder("deep", "Two-ply search, worst case over opponent spawns", func(env FinderEnv) search.Finder {
		return search.DeepMoveFinder{
			Mutator: env.Mutator,
			Inner:   onePly(env),
			Spawns:  env.Spawns,
			Logger:  env.Logger,
		}
	})
	RegisterFinder("random", "Uniformly random effective move", func(env FinderEnv) search.Finder {
		return search.RandomFinder{Mutator: env.Mutator, Rand: env.Rand}
	})
}

func emptyChain() strategy.Strategy {
	return strategy.EmptyChain{Inner: strategy.Chain{}}
}

func locus() strategy.Strategy {
	return strategy.Locus{Inner: emptyChain()}
}

func snake(p Params) strategy.Strategy {
	return strategy.Snake{Inner: locus(), Weights: p.Snake}
}

func onePly(env FinderEnv) search.BestMoveFinder {
	return search.BestMoveFinder{Mutator: env.Mutator, Strategy: env.Strategy}
}
