package config

import (
	_ "embed"
)

//go:embed defaults/tilematch.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// Mirrors defaults/tilematch.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			TickRate:     30,
			MatchDelayMS: 400,
			LoseDelayMS:  300,
		},
		Display: DisplayConfig{
			ShowBlocked: true,
			Theme: []SymbolStyle{
				{Symbol: "🍎", Glyph: "A", Color: "bright_red"},
				{Symbol: "🍊", Glyph: "O", Color: "orange"},
				{Symbol: "🍋", Glyph: "L", Color: "bright_yellow"},
				{Symbol: "🍇", Glyph: "G", Color: "magenta"},
				{Symbol: "🍓", Glyph: "S", Color: "red"},
				{Symbol: "🌸", Glyph: "B", Color: "bright_magenta"},
				{Symbol: "🌺", Glyph: "H", Color: "bright_blue"},
				{Symbol: "🍀", Glyph: "C", Color: "bright_green"},
				{Symbol: "🔥", Glyph: "F", Color: "yellow"},
				{Symbol: "⭐", Glyph: "*", Color: "bright_white"},
			},
		},
		Server: ServerConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
