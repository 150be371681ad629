// bot2048 plays the 2048 sliding-tile game with a pluggable decision engine.
//
// Usage:
//
//	bot2048 decide <board>   - Print the move the engine picks for a board
//	bot2048 play             - Let the bot play a simulated game
//	bot2048 bench            - Play many games in parallel and report statistics
//	bot2048 list             - List available strategies and finders
//	bot2048 results          - Show recorded runs
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.bot2048/runs.db)
//	--config <path>      - Path to a custom config YAML
//	--log-level <level>  - debug, info, warn or error
//	--strategy, --finder - Override the configured engine
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"lukechampine.com/frand"

	"github.com/ob-ivan/bot2048/internal/config"
	"github.com/ob-ivan/bot2048/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagStrategy string
	flagFinder   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bot2048",
	Short: "bot2048 - A decision engine that plays 2048",
	Long: `bot2048 observes a 2048 board, scores every move with a pluggable
evaluation strategy and plays the best one.

Available commands:
  decide   - Pick a move for a given board
  play     - Play a simulated game
  bench    - Benchmark a strategy over many games
  list     - Show strategies and finders
  results  - View recorded runs

Examples:
  bot2048 decide "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0"
  bot2048 play --seed 42
  bot2048 bench --games 50 --strategy snake --finder best
  bot2048 results wise-snake`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bot2048/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "Evaluation strategy (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFinder, "finder", "", "Move finder (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resultsCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using warn\n", flagLogLevel)
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bot2048",
		Level:           level,
	})
}

// loadConfig loads the configuration and applies command line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagStrategy != "" {
		cfg.Engine.Strategy = flagStrategy
	}
	if flagFinder != "" {
		cfg.Engine.Finder = flagFinder
	}
	return cfg
}

// openStore opens the runs database. Failures are logged and the command
// goes on without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	return store
}

// resolveSeed returns --seed, or a random seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return randomSeed()
}

func randomSeed() int64 {
	return int64(frand.Uint64n(1<<62)) + 1
}

// colorOutput reports whether stdout is a terminal.
func colorOutput() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
