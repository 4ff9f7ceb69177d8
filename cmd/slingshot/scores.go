package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/games/slingshot"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/platform/tui"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

var (
	flagScoresTable bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 finished-campaign scores.

Examples:
  slingshot scores
  slingshot scores --table
  slingshot scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Browse all scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	const gameID = slingshot.GameID
	title := slingshot.New().Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("cannot open scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if flagScoresTable {
		cfg := runtimeConfig()
		if err := tui.RunScoreboard(store, gameID, title, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fatalf("cannot retrieve scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Clear every level with 'slingshot play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
