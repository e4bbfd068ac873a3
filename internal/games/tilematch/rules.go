package tilematch

import "math"

// IsTileBlocked reports whether tile cannot be picked.
// A removed tile is always blocked. Otherwise it is blocked when a live tile
// on a strictly higher layer overlaps it visually.
func IsTileBlocked(tile Tile, all []Tile) bool {
	if tile.Removed {
		return true
	}

	for _, other := range all {
		if other.Removed || other.Layer <= tile.Layer {
			continue
		}
		if math.Abs(other.Col-tile.Col) < BlockThreshold &&
			math.Abs(other.Row-tile.Row) < BlockThreshold {
			return true
		}
	}
	return false
}

// AddToTray returns a new tray with tile inserted.
// A tile whose symbol is already present goes right after that symbol's run,
// anything else goes to the end.
func AddToTray(tray Tray, tile Tile) Tray {
	out := make(Tray, 0, len(tray)+1)

	insertAt := len(tray)
	for i, t := range tray {
		if t.Symbol != tile.Symbol {
			continue
		}
		insertAt = i + 1
		for insertAt < len(tray) && tray[insertAt].Symbol == tile.Symbol {
			insertAt++
		}
		break
	}

	out = append(out, tray[:insertAt]...)
	out = append(out, tile)
	out = append(out, tray[insertAt:]...)
	return out
}

// MatchResult is the outcome of CheckMatch.
type MatchResult struct {
	Matched bool
	Symbol  Symbol // Empty when nothing matched
	Tray    Tray
}

// CheckMatch clears one set of three from the tray.
// The first symbol in tray order with at least three tiles loses its first
// three tiles. At most one symbol is resolved per call.
func CheckMatch(tray Tray) MatchResult {
	counts := make(map[Symbol]int)
	var order []Symbol
	for _, t := range tray {
		if counts[t.Symbol] == 0 {
			order = append(order, t.Symbol)
		}
		counts[t.Symbol]++
	}

	for _, s := range order {
		if counts[s] < tileSetSize {
			continue
		}

		out := make(Tray, 0, len(tray)-tileSetSize)
		removed := 0
		for _, t := range tray {
			if t.Symbol == s && removed < tileSetSize {
				removed++
				continue
			}
			out = append(out, t)
		}
		return MatchResult{Matched: true, Symbol: s, Tray: out}
	}

	return MatchResult{Tray: tray}
}

// CheckWin reports whether every tile has left the board.
func CheckWin(tiles []Tile) bool {
	for _, t := range tiles {
		if !t.Removed {
			return false
		}
	}
	return true
}

// CheckLose reports whether the tray is full.
func CheckLose(tray Tray) bool {
	return len(tray) >= MaxTraySize
}
