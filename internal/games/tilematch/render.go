package tilematch

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/tui-tilematch/internal/core"
)

// Terminal layout. Board coordinates are scaled by cellW x cellH screen
// cells; each tile is drawn as a tileW-wide "[G]" label.
const (
	cellW    = 4
	cellH    = 2
	tileW    = 3
	hudRows  = 2
	trayRows = 3
	slotW    = 4

	boardW = (Grid+1+BoardOffsetX)*cellW + tileW
	boardH = (Grid-1)*cellH + cellH/2 + 1 // Odd layers reach row Grid-0.5

	trayW = MaxTraySize*slotW + 3

	minScreenW = boardW + 2
	minScreenH = hudRows + boardH + 1 + trayRows
)

// Tile faces.
const (
	coveredGlyph = '▒'
	emptySlot    = '·'
)

// boardOrigin returns the top-left screen cell of the board area.
func (g *Game) boardOrigin() (int, int) {
	return (g.screenW - boardW) / 2, hudRows
}

// tileRect returns the screen cells covered by t.
func (g *Game) tileRect(t Tile) core.Rect {
	ox, oy := g.boardOrigin()
	x := ox + int(math.Round((t.Col+BoardOffsetX)*cellW))
	y := oy + int(math.Round(t.Row*cellH))
	return core.NewRect(x, y, tileW, 1)
}

// drawOrder returns the live tiles bottom layer first.
func (g *Game) drawOrder() []Tile {
	var out []Tile
	for _, t := range g.state.Tiles {
		if !t.Removed {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Tile) int {
		return cmp.Or(cmp.Compare(a.Layer, b.Layer), cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})
	return out
}

// tileAt returns the ID of the top-most tile drawn at (x, y), or "".
func (g *Game) tileAt(x, y int) string {
	order := g.drawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if g.tileRect(order[i]).Contains(x, y) {
			return order[i].ID
		}
	}
	return ""
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	if g.state.Phase != PhaseStart {
		g.renderBoard(dst)
		g.renderTray(dst)
	}
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and remaining tile count.
func (g *Game) renderHUD(dst *core.Screen) {
	ox, _ := g.boardOrigin()

	dst.DrawTextCentered(0, "TILE MATCH")
	if g.state.Phase == PhaseStart {
		return
	}

	dst.DrawText(ox, 1, fmt.Sprintf("Score: %d", g.state.Score()))

	moves := fmt.Sprintf("Moves: %d", g.state.Moves)
	dst.DrawText(ox+(boardW-len(moves))/2, 1, moves)

	tiles := fmt.Sprintf("Tiles: %d", Remaining(g.state.Tiles))
	dst.DrawText(ox+boardW-len(tiles), 1, tiles)
}

// renderBoard draws every live tile, lower layers first.
func (g *Game) renderBoard(dst *core.Screen) {
	for _, t := range g.drawOrder() {
		r := g.tileRect(t)
		style := g.theme.Style(t.Symbol)

		glyph, glyphColor, frame := style.Glyph, style.Color, core.ColorWhite
		if IsTileBlocked(t, g.state.Tiles) {
			frame, glyphColor = core.ColorGray, core.ColorGray
			if !g.showBlocked {
				glyph = coveredGlyph
			}
		}

		left, right := '[', ']'
		if t.ID == g.cursor && g.state.Phase == PhasePlaying {
			left, right = '>', '<'
			frame = core.ColorBrightYellow
		}

		dst.SetColored(r.X, r.Y, left, frame)
		dst.SetColored(r.X+1, r.Y, glyph, glyphColor)
		dst.SetColored(r.X+2, r.Y, right, frame)
	}
}

// renderTray draws the seven tray slots below the board.
func (g *Game) renderTray(dst *core.Screen) {
	x := (g.screenW - trayW) / 2
	y := hudRows + boardH + 1
	// The matched set stays highlighted until it is resolved
	highlight, border := 0, core.ColorDefault
	if g.state.Phase == PhaseResolving {
		highlight, border = tileSetSize, core.ColorBrightGreen
	} else if len(g.state.Tray) == MaxTraySize-1 {
		border = core.ColorBrightRed // One slot left
	}
	dst.DrawBoxColored(core.NewRect(x, y, trayW, trayRows), border)

	for i := range MaxTraySize {
		sx := x + 2 + i*slotW
		if i >= len(g.state.Tray) {
			dst.SetColored(sx+1, y+1, emptySlot, core.ColorGray)
			continue
		}

		t := g.state.Tray[i]
		style := g.theme.Style(t.Symbol)
		frame := core.ColorWhite
		if highlight > 0 && t.Symbol == g.state.LastMatch {
			frame = core.ColorBrightGreen
			highlight--
		}
		dst.SetColored(sx, y+1, '[', frame)
		dst.SetColored(sx+1, y+1, style.Glyph, style.Color)
		dst.SetColored(sx+2, y+1, ']', frame)
	}

	count := fmt.Sprintf(" %d/%d ", len(g.state.Tray), MaxTraySize)
	dst.DrawText(x+trayW-len(count)-1, y, count)
}

// renderOverlays draws the start screen and the end of game panels.
func (g *Game) renderOverlays(dst *core.Screen) {
	ox, oy := g.boardOrigin()
	cx, cy := core.NewRect(ox, oy, boardW, boardH).Center()

	switch g.state.Phase {
	case PhaseStart:
		g.drawOverlay(dst, cx, cy, core.ColorBrightCyan,
			"TILE MATCH",
			"",
			"Pick uncovered tiles to move them to the tray.",
			"Three alike in the tray are cleared.",
			fmt.Sprintf("Fill all %d slots and the game is lost.", MaxTraySize),
			"",
			"Press Enter to start")

	case PhaseWon:
		g.drawOverlay(dst, cx, cy, core.ColorBrightGreen,
			"YOU WIN!",
			fmt.Sprintf("Score: %d  Moves: %d", g.state.Score(), g.state.Moves),
			"R: Play again  B: Menu")

	case PhaseLost:
		if g.loseIn > 0 {
			return
		}
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed,
			"NO MORE SPACE",
			fmt.Sprintf("Tiles left: %d  Score: %d", Remaining(g.state.Tiles), g.state.Score()),
			"R: Play again  B: Menu")
	}
}

// drawOverlay draws a centered text box. The border and the first line use
// accent.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, accent core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(
		core.Clamp(centerX-boxW/2, 0, max(g.screenW-boxW, 0)),
		core.Clamp(centerY-boxH/2, 0, max(g.screenH-boxH, 0)),
		boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, accent)

	for i, line := range lines {
		x := box.X + (boxW-len([]rune(line)))/2
		if i == 0 {
			dst.DrawTextColored(x, box.Y+1, line, accent)
			continue
		}
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Tab: Next | Enter/Click: Pick | R: Restart | B: Menu | Q: Quit"
}
