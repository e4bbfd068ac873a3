package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tui-tilematch/internal/platform/tui"
	"github.com/vovakirdan/tui-tilematch/internal/registry"
	"github.com/vovakirdan/tui-tilematch/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title screen",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a board ends, Esc returns to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  tilematch menu
  tilematch menu --fps 60
  tilematch menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	settings := loadConfig()
	logger, closeLog := fileLogger("tilematch")
	defer closeLog()

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig(settings.Timing.TickRate)
	session := localSession()
	logger.Info("session started", "session", session)

	// Menu loop
loop:
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceResults:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				break loop
			}

		case tui.ChoicePlay:
			game, err := registry.Create(tilematch.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}

			backToMenu, err := tui.Run(game, store, logger, session, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
			if !backToMenu {
				break loop
			}
			// A fixed seed only applies to the first board
			cfg.Seed = 0

		default:
			break loop
		}
	}

	logger.Info("session ended", "session", session)

	// Cleanup
	if store != nil {
		store.Close()
	}
}
