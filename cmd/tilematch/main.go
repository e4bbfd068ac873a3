// tilematch is a layered tile-matching puzzle for the terminal.
//
// Usage:
//
//	tilematch play              - Play a board in this terminal
//	tilematch menu              - Start screen with results, replaying until quit
//	tilematch deal              - Print a generated board without playing
//	tilematch results           - Show recent results and best scores
//	tilematch serve             - Start SSH server for remote play
//	tilematch config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.tilematch/results.db)
//	--config <path>     - Use a specific config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination for interactive modes
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilematch/internal/config"
	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilematch",
	Short: "Tile Match - a layered tile-matching puzzle in your terminal",
	Long: `Tile Match deals a board of stacked tiles. Pick uncovered tiles into a
tray of seven slots; three of a kind leave the tray. Clear the board to win,
fill the tray and the game is lost.

Available commands:
  play     - Play a board directly
  menu     - Start screen with results
  deal     - Print a generated board
  results  - View recent results and best scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  tilematch play
  tilematch play --seed 42
  tilematch deal --seed 42 --format yaml
  tilematch serve --ssh :2222
  tilematch results
  tilematch config --defaults`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = timing.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilematch/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tilematch/tilematch.log", "Log file for interactive modes")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads settings and hands them to the game package.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	tilematch.SetConfig(cfg)
	return cfg
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatalf("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger opens --log-file for interactive modes, where the alt screen owns
// the terminal. Logging is dropped when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if path == "" {
		return newLogger(io.Discard, prefix), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
