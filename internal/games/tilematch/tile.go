// Package tilematch implements a layered tile-matching puzzle.
//
// Tiles sit on overlapping depth layers of an 8x8 grid plus two side reserve
// stacks. Picking an uncovered tile moves it into a 7-slot tray; three tiles
// with the same symbol in the tray are cleared. The board is won when every
// tile is gone and lost when the tray fills up.
//
// The rules (board generation, occlusion, tray handling and the state
// machine) are pure functions over plain values. Game wraps them for the
// platform layer.
package tilematch

import "fmt"

// Board geometry and tray limits.
const (
	Grid      = 8 // Main board is Grid x Grid cells
	MaxLayers = 8 // Depth of each side stack

	TileSpacing  = 44 // Distance between tile centers (reference units)
	TileSize     = 40 // Tile edge length (reference units)
	BoardOffsetX = 3  // Columns reserved left of the board for the left stack

	MaxTraySize = 7
)

// BlockThreshold is the visual distance below which two tiles overlap.
// Centers closer than one tile width on both axes are stacked.
const BlockThreshold = float64(TileSize) / float64(TileSpacing)

// Symbol is the face of a tile.
type Symbol string

// Symbols is the fixed alphabet. Boards reuse it in order once it runs out.
var Symbols = []Symbol{"🍎", "🍊", "🍋", "🍇", "🍓", "🌸", "🌺", "🍀", "🔥", "⭐"}

// Tile is one piece on the board. Only Removed changes after generation.
type Tile struct {
	ID        string
	Symbol    Symbol
	Col       float64 // Visual column, may be offset by 0.5
	Row       float64 // Visual row, may be offset by 0.5 or staircased
	GridCol   int     // Logical column; side stacks use -2 and Grid+1
	GridRow   int
	Layer     int // 0 is the bottom layer
	Removed   bool
	SideStack bool
}

// Tray is the ordered holding area for picked tiles.
type Tray []Tile

// tileID formats the sequential identifier of the n-th tile.
func tileID(n int) string {
	return fmt.Sprintf("tile-%d", n)
}

// Remaining counts tiles still on the board.
func Remaining(tiles []Tile) int {
	n := 0
	for _, t := range tiles {
		if !t.Removed {
			n++
		}
	}
	return n
}

// FindTile returns the index of the tile with the given ID, or -1.
func FindTile(tiles []Tile, id string) int {
	for i := range tiles {
		if tiles[i].ID == id {
			return i
		}
	}
	return -1
}

// SymbolCounts tallies tiles per symbol.
func SymbolCounts(tiles []Tile) map[Symbol]int {
	counts := make(map[Symbol]int)
	for _, t := range tiles {
		counts[t.Symbol]++
	}
	return counts
}
