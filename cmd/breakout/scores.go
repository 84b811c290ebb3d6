package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aetherbreakout/internal/platform/tui"
	"github.com/vovakirdan/aetherbreakout/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagPlayer      string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the best runs recorded locally and over SSH.

Examples:
  breakout scores
  breakout scores --limit 25
  breakout scores --player alice
  breakout scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a scrollable table")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs by this player")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open runs database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, flagLimit, width, height)
	}

	var runs []storage.Run
	if flagPlayer != "" {
		runs, err = store.PlayerRuns(flagPlayer, flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}

	fmt.Println("Aether Breakout - Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Be the first to play!")
		return nil
	}

	fmt.Printf("%-6s %-10s %-6s %-16s %s\n", "RANK", "SCORE", "LEVEL", "PLAYER", "DATE")
	fmt.Printf("%-6s %-10s %-6s %-16s %s\n", "----", "-----", "-----", "------", "----")
	for _, row := range tui.RunRows(runs) {
		fmt.Printf("%-6s %-10s %-6s %-16s %s\n", row[0], row[1], row[2], row[3], row[4])
	}

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best level: %d\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.BestLevel)
	return nil
}
