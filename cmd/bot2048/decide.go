package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/engine"
	"github.com/ob-ivan/bot2048/internal/game"
)

var flagShow bool

var decideCmd = &cobra.Command{
	Use:   "decide [board]",
	Short: "Pick a move for a board",
	Long: `Print the direction the engine plays on a board. Rows are separated
by '/' or ';', cells by commas or spaces. Without an argument, boards are
read from stdin, one per line. "none" is printed when there is no move.

Examples:
  bot2048 decide "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0"
  bot2048 decide --finder best --show "0,2,0,4/2,0,8,0/0,16,0,2/4,0,2,128"
  cat boards.txt | bot2048 decide`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDecide,
}

func init() {
	decideCmd.Flags().BoolVar(&flagShow, "show", false, "Render each board before its move")
}

func runDecide(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()

	e, err := engine.New(cfg.Engine, engine.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		b, err := board.Parse(nil, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printDecision(e, b)
		return
	}

	src := game.NewReaderSource(os.Stdin)
	for {
		b, err := src.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printDecision(e, b)
	}
}

func printDecision(e *engine.Engine, b board.Board) {
	if flagShow {
		fmt.Println(game.Render(b, colorOutput()))
	}
	dir, ok := e.Decide(b)
	if !ok {
		fmt.Println("none")
		return
	}
	fmt.Println(dir)
}
