package tilematch

import (
	"math"
	"math/rand"
)

// Side stack geometry.
const (
	sideStackBaseRow = 1.5
	sideStackGridRow = 1   // Logical row of both stacks
	sideStackStep    = 0.3 // Visual rise per layer
)

// Density ranges for depth group layers: [min, min+spread).
const (
	denseMin    = 0.75
	sparseMin   = 0.25
	densitySpan = 0.15
)

// Position is a slot on the board before a symbol is assigned.
type Position struct {
	Col       float64
	Row       float64
	GridCol   int
	GridRow   int
	Layer     int
	SideStack bool
}

// cell is an integer grid coordinate.
type cell struct {
	Col, Row int
}

// GenerateDepthGroup builds one cluster of positions over layers 0..maxLayer.
//
// The footprint radius grows with the layer index, reaching topRadius at
// maxLayer. The two highest layers are dense, the rest sparse. Odd layers
// are shifted half a cell on both axes so each tile rests on the corners of
// the tiles below it.
func GenerateDepthGroup(rng *rand.Rand, centerCol, centerRow, maxLayer, topRadius int) []Position {
	var positions []Position

	for layer := 0; layer <= maxLayer; layer++ {
		progress := 1.0
		if maxLayer > 0 {
			progress = float64(layer) / float64(maxLayer)
		}
		radius := int(math.Round(float64(topRadius) * progress))
		if radius < 0 {
			radius = 0
		}

		candidates := squareCells(centerCol, centerRow, radius)

		var density float64
		if layer >= maxLayer-1 {
			density = denseMin + rng.Float64()*densitySpan
		} else {
			density = sparseMin + rng.Float64()*densitySpan
		}

		shuffled := Shuffle(rng, candidates)

		minCount := 0
		if layer == maxLayer {
			minCount = 1
		}
		count := max(minCount, int(math.Floor(float64(len(candidates))*density)))
		count = min(count, len(shuffled))

		offset := 0.0
		if layer%2 == 1 {
			offset = 0.5
		}

		for _, c := range shuffled[:count] {
			positions = append(positions, Position{
				Col:     float64(c.Col) + offset,
				Row:     float64(c.Row) + offset,
				GridCol: c.Col,
				GridRow: c.Row,
				Layer:   layer,
			})
		}
	}

	return positions
}

// squareCells lists the in-bounds cells within Chebyshev distance radius.
func squareCells(centerCol, centerRow, radius int) []cell {
	var cells []cell
	for r := centerRow - radius; r <= centerRow+radius; r++ {
		for c := centerCol - radius; c <= centerCol+radius; c++ {
			if r >= 0 && r < Grid && c >= 0 && c < Grid {
				cells = append(cells, cell{Col: c, Row: r})
			}
		}
	}
	return cells
}

// GenerateSideStacks builds the left and right reserve stacks.
// Layer 0 is drawn lowest on screen and the top layer highest, so the
// staircase shows how deep each stack still is.
func GenerateSideStacks() []Position {
	positions := make([]Position, 0, 2*MaxLayers)

	for _, col := range []int{-2, Grid + 1} {
		for layer := 0; layer < MaxLayers; layer++ {
			positions = append(positions, Position{
				Col:       float64(col),
				Row:       sideStackBaseRow + float64(MaxLayers-1-layer)*sideStackStep,
				GridCol:   col,
				GridRow:   sideStackGridRow,
				Layer:     layer,
				SideStack: true,
			})
		}
	}

	return positions
}
