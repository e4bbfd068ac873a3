// Package config provides YAML-based configuration loading for Tile Match.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tilematch/internal/core"
)

// Config contains all user-tunable settings.
type Config struct {
	Timing  TimingConfig  `yaml:"timing"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
}

// TimingConfig controls presentation pacing. The rules never wait; these
// values only delay when the platform shows their results.
type TimingConfig struct {
	TickRate     int `yaml:"tick_rate"`
	MatchDelayMS int `yaml:"match_delay_ms"`
	LoseDelayMS  int `yaml:"lose_delay_ms"`
}

// DisplayConfig controls how tiles are drawn in the terminal.
type DisplayConfig struct {
	ShowBlocked bool          `yaml:"show_blocked"` // Draw covered tiles dimmed instead of hiding their face
	Theme       []SymbolStyle `yaml:"theme"`
}

// SymbolStyle maps a tile symbol to a single terminal glyph and color.
type SymbolStyle struct {
	Symbol string `yaml:"symbol"`
	Glyph  string `yaml:"glyph"`
	Color  string `yaml:"color"`
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// MatchDelay returns how long a match stays visible.
func (t TimingConfig) MatchDelay() time.Duration {
	return time.Duration(t.MatchDelayMS) * time.Millisecond
}

// LoseDelay returns the pause before the game over overlay.
func (t TimingConfig) LoseDelay() time.Duration {
	return time.Duration(t.LoseDelayMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Validate checks that the config can drive a game.
func (c Config) Validate() error {
	var errs []error

	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Timing.MatchDelayMS < 0 {
		errs = append(errs, fmt.Errorf("timing.match_delay_ms must not be negative, got %d", c.Timing.MatchDelayMS))
	}
	if c.Timing.LoseDelayMS < 0 {
		errs = append(errs, fmt.Errorf("timing.lose_delay_ms must not be negative, got %d", c.Timing.LoseDelayMS))
	}

	seen := make(map[string]bool)
	for i, st := range c.Display.Theme {
		if st.Symbol == "" {
			errs = append(errs, fmt.Errorf("display.theme[%d]: symbol is empty", i))
		}
		if seen[st.Symbol] {
			errs = append(errs, fmt.Errorf("display.theme[%d]: duplicate symbol %q", i, st.Symbol))
		}
		seen[st.Symbol] = true
		if utf8.RuneCountInString(st.Glyph) != 1 {
			errs = append(errs, fmt.Errorf("display.theme[%d]: glyph %q must be a single character", i, st.Glyph))
		}
		if _, ok := core.ParseColor(st.Color); !ok {
			errs = append(errs, fmt.Errorf("display.theme[%d]: unknown color %q", i, st.Color))
		}
	}

	return errors.Join(errs...)
}
