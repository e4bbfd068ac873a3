package tilematch

import (
	"github.com/vovakirdan/tui-tilematch/internal/config"
	"github.com/vovakirdan/tui-tilematch/internal/core"
)

// Style is how one symbol is drawn in a terminal cell.
// Emoji are two cells wide in most terminals, so the board uses a single
// glyph plus a colour instead.
type Style struct {
	Glyph rune
	Color core.Color
}

// Theme maps symbols to their terminal style.
type Theme map[Symbol]Style

// unknownStyle is used for symbols missing from every theme.
var unknownStyle = Style{Glyph: '?', Color: core.ColorWhite}

// NewTheme builds a theme from config entries layered over the built-in
// theme. Entries with an unusable glyph or colour keep the built-in style.
func NewTheme(entries []config.SymbolStyle) Theme {
	theme := make(Theme, len(Symbols))
	apply := func(list []config.SymbolStyle) {
		for _, e := range list {
			glyph := []rune(e.Glyph)
			color, ok := core.ParseColor(e.Color)
			if len(glyph) != 1 || !ok {
				continue
			}
			theme[Symbol(e.Symbol)] = Style{Glyph: glyph[0], Color: color}
		}
	}

	apply(config.DefaultConfig().Display.Theme)
	apply(entries)
	return theme
}

// Style returns the style for s.
func (t Theme) Style(s Symbol) Style {
	if st, ok := t[s]; ok {
		return st
	}
	return unknownStyle
}
