package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/ob-ivan/bot2048/internal/bot"
	"github.com/ob-ivan/bot2048/internal/engine"
	"github.com/ob-ivan/bot2048/internal/game"
	"github.com/ob-ivan/bot2048/internal/storage"
)

var (
	flagGames    int
	flagParallel int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark a strategy over many games",
	Long: `Play several simulated games in parallel with no delay between moves
and report score statistics. With --seed, game i uses seed+i.

Examples:
  bot2048 bench --games 20
  bot2048 bench --games 100 --parallel 8 --strategy snake --finder best
  bot2048 bench --seed 1 --games 10 --no-save`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	benchCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Games played at once")
	benchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the runs")
}

type benchRun struct {
	seed   int64
	result bot.Result
	snap   game.Snapshot
	won    bool
}

func runBench(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	if flagGames <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --games must be positive")
		os.Exit(1)
	}
	if flagParallel <= 0 {
		flagParallel = 1
	}

	botCfg := cfg.Bot
	botCfg.Interval = 0

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runs := make([]benchRun, flagGames)
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(flagParallel)

	for i := range flagGames {
		seed := randomSeed()
		if flagSeed != 0 {
			seed = flagSeed + int64(i)
		}
		grp.Go(func() error {
			gameLogger := logger.With("game", i, "seed", seed)
			g := game.New(cfg.Game, seed)
			e, err := engine.New(cfg.Engine, engine.WithLogger(gameLogger))
			if err != nil {
				return err
			}
			res, err := bot.ForGame(g, e, botCfg, bot.WithLogger(gameLogger)).Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			runs[i] = benchRun{seed: seed, result: res, snap: g.Snapshot(), won: g.Won()}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scores := make([]float64, len(runs))
	tiles := make(map[int]int)
	wins := 0
	for i, r := range runs {
		scores[i] = float64(r.snap.Score)
		tiles[r.snap.MaxTile]++
		if r.won {
			wins++
		}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	sort.Float64s(scores)
	median := stat.Quantile(0.5, stat.Empirical, scores, nil)

	fmt.Printf("Strategy: %s / %s\n", cfg.Engine.Strategy, cfg.Engine.Finder)
	fmt.Printf("Games:    %d\n", len(runs))
	fmt.Printf("Score:    mean %.1f  stddev %.1f  median %.0f  min %.0f  max %.0f\n",
		mean, std, median, scores[0], scores[len(scores)-1])
	if cfg.Game.Target > 0 {
		fmt.Printf("Wins:     %d (%.1f%%)\n", wins, 100*float64(wins)/float64(len(runs)))
	}

	fmt.Println()
	fmt.Printf("  %-8s  %s\n", "Max tile", "Games")
	fmt.Printf("  %-8s  %s\n", "--------", "-----")
	values := make([]int, 0, len(tiles))
	for v := range tiles {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	for _, v := range values {
		fmt.Printf("  %-8d  %d\n", v, tiles[v])
	}

	if flagNoSave {
		return
	}
	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()

	for _, r := range runs {
		if _, err := store.SaveRun(storage.Run{
			Strategy: cfg.Engine.Strategy,
			Finder:   cfg.Engine.Finder,
			Seed:     r.seed,
			Moves:    r.snap.Moves,
			Score:    r.snap.Score,
			MaxTile:  r.snap.MaxTile,
			Won:      r.won,
			Duration: r.result.Duration,
		}); err != nil {
			logger.Warn("could not save run", "error", err)
			return
		}
	}
}
