package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tui-tilematch/internal/storage"
)

var (
	flagLimit    int
	flagClear    bool
	flagResultID string
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recent results and best scores",
	Long: `Display the most recent games, the best scores and overall statistics
from the results database.

Examples:
  tilematch results
  tilematch results --limit 20
  tilematch results --db ./results.db
  tilematch results --id 6f1c2a9e-...
  tilematch results --clear`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results per list")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored results")
	resultsCmd.Flags().StringVar(&flagResultID, "id", "", "Show a single result")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening results database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(tilematch.GameID); err != nil {
			fatalf("clearing results: %v", err)
		}
		fmt.Println("Results cleared.")
		return
	}

	if flagResultID != "" {
		showResult(store, flagResultID)
		return
	}

	stats, err := store.Stats(tilematch.GameID)
	if err != nil {
		fatalf("reading stats: %v", err)
	}

	fmt.Println("Tile Match - Results")
	fmt.Println()

	if stats.Games == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilematch play' to record the first one!")
		return
	}

	fmt.Printf("  Games: %d  Wins: %d  Losses: %d  Win rate: %.0f%%\n",
		stats.Games, stats.Wins, stats.Losses, stats.WinRate()*100)
	fmt.Printf("  Average: %.1f", stats.AvgScore)
	if stats.FewestWinMoves > 0 {
		fmt.Printf("  Fewest moves to win: %d", stats.FewestWinMoves)
	}
	fmt.Println()
	fmt.Println()

	top, err := store.TopScores(tilematch.GameID, flagLimit)
	if err != nil {
		fatalf("retrieving top scores: %v", err)
	}
	fmt.Println("Best scores")
	printResults(top)
	if best, err := store.HighScore(tilematch.GameID); err == nil {
		fmt.Printf("  Best: %d\n", best)
	}
	fmt.Println()

	recent, err := store.RecentResults(tilematch.GameID, flagLimit)
	if err != nil {
		fatalf("retrieving recent results: %v", err)
	}
	fmt.Println("Recent games")
	printResults(recent)
}

func printResults(results []storage.Result) {
	// Print header
	fmt.Printf("  %-4s  %-6s  %-9s  %-5s  %-4s  %-6s  %-20s  %s\n",
		"#", "Score", "Result", "Moves", "Left", "Time", "Seed", "Date")

	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %-9s  %-5d  %-4d  %-6s  %-20d  %s\n",
			i+1, r.Score, r.Outcome, r.Moves, r.Remaining,
			r.Duration.Round(time.Second), r.BoardSeed, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func showResult(store *storage.Store, id string) {
	r, err := store.Result(id)
	if err != nil {
		fatalf("retrieving result: %v", err)
	}
	if r == nil {
		fatalf("no result with id %q", id)
	}

	fmt.Printf("Result %s\n", r.ID)
	fmt.Printf("  Outcome:   %s\n", r.Outcome)
	fmt.Printf("  Score:     %d (%d matches)\n", r.Score, r.Matches)
	fmt.Printf("  Moves:     %d\n", r.Moves)
	fmt.Printf("  Tiles:     %d dealt, %d left\n", r.Tiles, r.Remaining)
	fmt.Printf("  Time:      %s\n", r.Duration.Round(time.Second))
	fmt.Printf("  Session:   %s\n", r.Session)
	fmt.Printf("  Played:    %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Board:     tilematch deal --seed %d\n", r.BoardSeed)
}
