package main

import (
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilematch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the title screen.
Results are stored per-server (all users share the same history).

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.tilematch/host_key

Examples:
  tilematch serve                           # Listen on server.address from config
  tilematch serve --ssh :2222               # Listen on port 2222
  tilematch serve --host-key ./my_host_key  # Use specific host key
  tilematch serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: server.address from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default: server.idle_timeout_minutes)")
}

func runServe(_ *cobra.Command, _ []string) {
	settings := loadConfig()
	logger := newLogger(os.Stderr, "tilematch-ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.DBPath = flagDBPath
	cfg.TickRate = settings.Timing.TickRate
	cfg.Logger = logger

	if settings.Server.Address != "" {
		cfg.Address = settings.Server.Address
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}

	cfg.HostKeyPath = settings.Server.HostKeyPath
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}

	if settings.Server.IdleTimeoutMinutes > 0 {
		cfg.IdleTimeout = settings.Server.IdleTimeout()
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	logger.Info("connect with", "command", "ssh localhost -p "+port(server.Addr()), "idle_timeout", cfg.IdleTimeout)

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}

// port extracts the port from host:port, for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
