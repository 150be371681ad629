package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ob-ivan/bot2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available strategies and finders",
	Long:  `Shows every evaluation strategy and move finder the engine can be built with.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	printInfos("Strategies", registry.Strategies())
	fmt.Println()
	printInfos("Finders", registry.Finders())
	fmt.Println()
	fmt.Println("Run 'bot2048 play --strategy <name> --finder <name>' to try one.")
}

func printInfos(title string, infos []registry.Info) {
	fmt.Printf("%s:\n", title)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, info := range infos {
		if len(info.Name) > maxNameLen {
			maxNameLen = len(info.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, info := range infos {
		fmt.Printf("  %-*s  %s\n", maxNameLen, info.Name, info.Description)
	}
}
