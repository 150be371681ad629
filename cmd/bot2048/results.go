package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ob-ivan/bot2048/internal/registry"
	"github.com/ob-ivan/bot2048/internal/storage"
)

var (
	flagTop   int
	flagStats bool
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [strategy]",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs, optionally for one strategy, or
aggregate statistics per strategy and finder.

Examples:
  bot2048 results
  bot2048 results wise-snake --top 20
  bot2048 results --stats
  bot2048 results snake --finder best --stats
  bot2048 results chain --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagTop, "top", 10, "Number of runs to show")
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show statistics per strategy and finder")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the selected runs")
}

func runResults(cmd *cobra.Command, args []string) {
	strategyName := ""
	if len(args) == 1 {
		strategyName = args[0]
		if !registry.StrategyExists(strategyName) {
			fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", strategyName)
			fmt.Fprintln(os.Stderr, "Run 'bot2048 list' to see available strategies.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(strategyName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Runs cleared.")
	case flagStats && strategyName != "":
		printStrategyStats(store, strategyName)
	case flagStats:
		printStats(store)
	default:
		printTopRuns(store, strategyName)
	}
}

func printTopRuns(store *storage.Store, strategyName string) {
	runs, err := store.TopRuns(strategyName, flagTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if strategyName == "" {
		fmt.Println("Best Runs")
	} else {
		fmt.Printf("Best Runs - %s\n", strategyName)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bot2048 play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-6s  %-8s  %-20s  %s\n",
		"Rank", "Strategy", "Finder", "Score", "Moves", "Max tile", "Seed", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-6s  %-8s  %-20s  %s\n",
		"----", "--------", "------", "-----", "-----", "--------", "----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-6s  %-8d  %-6d  %-8d  %-20d  %s\n",
			i+1, r.Strategy, r.Finder, r.Score, r.Moves, r.MaxTile, r.Seed, dateStr)
	}
}

func printStrategyStats(store *storage.Store, strategyName string) {
	finder := loadConfig().Engine.Finder
	rs, err := store.StrategyStats(strategyName, finder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Statistics - %s / %s\n", strategyName, finder)
	fmt.Println()
	if rs.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	fmt.Printf("  Runs:        %d\n", rs.Runs)
	fmt.Printf("  Best score:  %d\n", rs.HighScore)
	fmt.Printf("  Avg score:   %.1f\n", rs.AvgScore)
	fmt.Printf("  Avg moves:   %.1f\n", rs.AvgMoves)
	fmt.Printf("  Max tile:    %d\n", rs.BestTile)
	fmt.Printf("  Win rate:    %.0f%%\n", 100*rs.WinRate())
	fmt.Printf("  Last played: %s\n", rs.LastPlayed.Format("2006-01-02 15:04"))
}

func printStats(store *storage.Store) {
	all, err := store.AllStrategyStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-6s  %-5s  %-10s  %-8s  %-8s  %s\n",
		"Strategy", "Finder", "Runs", "Avg score", "Best", "Max tile", "Win rate")
	fmt.Printf("  %-12s  %-6s  %-5s  %-10s  %-8s  %-8s  %s\n",
		"--------", "------", "----", "---------", "----", "--------", "--------")

	for _, rs := range all {
		fmt.Printf("  %-12s  %-6s  %-5d  %-10.1f  %-8d  %-8d  %.0f%%\n",
			rs.Strategy, rs.Finder, rs.Runs, rs.AvgScore, rs.HighScore, rs.BestTile, 100*rs.WinRate())
	}
}
