package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tilematch/internal/core"
	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tui-tilematch/internal/platform/tui"
	"github.com/vovakirdan/tui-tilematch/internal/registry"
	"github.com/vovakirdan/tui-tilematch/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a board",
	Long: `Start playing in this terminal.

Controls:
  Arrows/hjkl  - Move cursor between free tiles
  Tab          - Next free tile
  Enter/Click  - Pick tile
  R            - New board (after game over)
  Esc/B        - Leave the board
  Q/Ctrl+C     - Quit

Examples:
  tilematch play
  tilematch play --seed 42
  tilematch play --config ./my-tilematch.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := fileLogger("tilematch")
	defer closeLog()

	game, err := registry.Create(tilematch.GameID)
	if err != nil {
		fatalf("creating game: %v", err)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, logger, localSession(), runtimeConfig(cfg.Timing.TickRate))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatalf("running game: %v", runErr)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(tickRate int) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     flagSeed,
	}
}

// localSession names a terminal session in stored results.
func localSession() string {
	return "local-" + uuid.NewString()[:8]
}
