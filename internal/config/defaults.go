package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bot2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Strategy:  "wise-snake",
			Finder:    "deep",
			GateRatio: 0.5,
			Snake: SnakeConfig{
				Pattern: "zigzag",
				Scale:   1.0,
			},
			Trap: TrapConfig{
				Enabled: true,
				Axis:    "rows",
				Counts:  []int{0, 3, 4, 4},
			},
			Cache: CacheConfig{
				Policy:   CacheDecision,
				Capacity: 0,
			},
		},
		Game: GameConfig{
			Spawn4: 0.10,
			Target: 0,
		},
		Bot: BotConfig{
			Interval: 100 * time.Millisecond,
			MaxMoves: 0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
