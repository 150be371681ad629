package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ob-ivan/bot2048/internal/bot"
	"github.com/ob-ivan/bot2048/internal/engine"
	"github.com/ob-ivan/bot2048/internal/game"
	"github.com/ob-ivan/bot2048/internal/storage"
)

var (
	flagOnce     bool
	flagNoSave   bool
	flagMaxMoves int
	flagTarget   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Let the bot play a simulated game",
	Long: `Play a seeded 2048 game with the configured engine, one move per
bot interval, and record the run.

Examples:
  bot2048 play
  bot2048 play --seed 42 --target 2048
  bot2048 play --once --seed 7
  bot2048 play --strategy maxtile --finder best --no-save`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagOnce, "once", false, "Play a single turn and print the board")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
	playCmd.Flags().IntVar(&flagMaxMoves, "max-moves", -1, "Stop after this many moves (overrides config)")
	playCmd.Flags().IntVar(&flagTarget, "target", -1, "Tile that wins the game, 0 = endless (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	if flagMaxMoves >= 0 {
		cfg.Bot.MaxMoves = flagMaxMoves
	}
	if flagTarget >= 0 {
		cfg.Game.Target = flagTarget
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := resolveSeed()
	g := game.New(cfg.Game, seed, game.WithLogger(logger))
	e, err := engine.New(cfg.Engine, engine.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}
	b := bot.ForGame(g, e, cfg.Bot, bot.WithLogger(logger))

	color := colorOutput()

	if flagOnce {
		before := g.Snapshot().Board
		fmt.Println(game.Render(before, color))
		fmt.Println()
		moved, err := b.Turn()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !moved {
			fmt.Println("No move.")
			return
		}
		fmt.Println(game.Render(g.Snapshot().Board, color))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting game", "seed", seed, "strategy", cfg.Engine.Strategy, "finder", cfg.Engine.Finder)
	res, runErr := b.Run(ctx)

	snap := g.Snapshot()
	fmt.Println(game.Render(snap.Board, color))
	fmt.Println()
	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Result:   %s (%s)\n", snap.State, res.Reason)
	fmt.Printf("Moves:    %d\n", snap.Moves)
	fmt.Printf("Score:    %d\n", snap.Score)
	fmt.Printf("Max tile: %d\n", snap.MaxTile)

	stats := e.Stats()
	logger.Debug("engine stats",
		"decisions", stats.Decisions,
		"gated", stats.Gated,
		"eval_hits", stats.Evals.Hits,
		"eval_misses", stats.Evals.Misses)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running bot: %v\n", runErr)
		os.Exit(1)
	}

	if flagNoSave {
		return
	}
	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.Run{
		Strategy: cfg.Engine.Strategy,
		Finder:   cfg.Engine.Finder,
		Seed:     seed,
		Moves:    snap.Moves,
		Score:    snap.Score,
		MaxTile:  snap.MaxTile,
		Won:      g.Won(),
		Duration: res.Duration,
	}); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
