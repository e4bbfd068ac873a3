package tilematch

import (
	"math/rand"

	"github.com/vovakirdan/tui-tilematch/internal/core"
)

// GroupShape fixes the depth and width of one depth group.
type GroupShape struct {
	MaxLayer  int
	TopRadius int
}

// Groups are the three clusters every board is built from.
var Groups = []GroupShape{
	{MaxLayer: 7, TopRadius: 3}, // Deep
	{MaxLayer: 4, TopRadius: 2}, // Medium
	{MaxLayer: 2, TopRadius: 1}, // Shallow
}

// Board generation limits.
const (
	centerMin       = 2
	centerSpan      = 4 // Centers fall in [centerMin, centerMin+centerSpan)
	centerMinDist   = 3 // Manhattan distance between group centers
	centerAttempts  = 50
	minMainPosition = 30
	tileSetSize     = 3
)

// fallbackGroup replaces a board that came out too small.
var fallbackGroup = struct {
	Col, Row int
	Shape    GroupShape
}{Col: 4, Row: 4, Shape: GroupShape{MaxLayer: 7, TopRadius: 3}}

// GenerateTiles builds a fresh board.
//
// The result always has a multiple of three tiles and every symbol appears
// a multiple of three times. Side stack tiles are never trimmed.
func GenerateTiles(rng *rand.Rand) []Tile {
	main := layoutGroups(rng, Groups)
	all := append(main, GenerateSideStacks()...)
	all = trimToSets(Shuffle(rng, all))

	symbols := Shuffle(rng, symbolPool(len(all)/tileSetSize))
	all = Shuffle(rng, all)

	tiles := make([]Tile, len(all))
	for i, p := range all {
		tiles[i] = Tile{
			ID:        tileID(i),
			Symbol:    symbols[i],
			Col:       p.Col,
			Row:       p.Row,
			GridCol:   p.GridCol,
			GridRow:   p.GridRow,
			Layer:     p.Layer,
			SideStack: p.SideStack,
		}
	}
	return tiles
}

// layoutGroups places one depth group per shape around spaced centers.
// A layout with fewer than minMainPosition positions is replaced by the
// fallback group. The built-in shapes always clear that floor.
func layoutGroups(rng *rand.Rand, shapes []GroupShape) []Position {
	centers := pickCenters(rng, len(shapes))

	var main []Position
	for i, g := range shapes {
		main = append(main, GenerateDepthGroup(rng, centers[i].Col, centers[i].Row, g.MaxLayer, g.TopRadius)...)
	}

	if len(main) < minMainPosition {
		fb := fallbackGroup
		main = GenerateDepthGroup(rng, fb.Col, fb.Row, fb.Shape.MaxLayer, fb.Shape.TopRadius)
	}
	return main
}

// pickCenters draws n group centers that keep their distance where possible.
// After centerAttempts misses the last draw is accepted anyway.
func pickCenters(rng *rand.Rand, n int) []cell {
	centers := make([]cell, 0, n)
	for range n {
		var c cell
		for attempt := 1; ; attempt++ {
			c = cell{
				Col: centerMin + rng.Intn(centerSpan),
				Row: centerMin + rng.Intn(centerSpan),
			}
			if attempt >= centerAttempts || !tooClose(c, centers) {
				break
			}
		}
		centers = append(centers, c)
	}
	return centers
}

// tooClose reports whether c is within centerMinDist of any accepted center.
func tooClose(c cell, centers []cell) bool {
	for _, o := range centers {
		if core.Abs(o.Col-c.Col)+core.Abs(o.Row-c.Row) < centerMinDist {
			return true
		}
	}
	return false
}

// trimToSets drops main board positions until the count divides into sets.
// The first non-side position goes first; only when none is left is the
// last position popped.
func trimToSets(positions []Position) []Position {
	for len(positions)%tileSetSize != 0 {
		idx := -1
		for i, p := range positions {
			if !p.SideStack {
				idx = i
				break
			}
		}
		if idx == -1 {
			positions = positions[:len(positions)-1]
			continue
		}
		positions = append(positions[:idx], positions[idx+1:]...)
	}
	return positions
}

// symbolPool returns sets triples of symbols, cycling through the alphabet.
func symbolPool(sets int) []Symbol {
	pool := make([]Symbol, 0, sets*tileSetSize)
	for i := range sets {
		s := Symbols[i%len(Symbols)]
		pool = append(pool, s, s, s)
	}
	return pool
}
