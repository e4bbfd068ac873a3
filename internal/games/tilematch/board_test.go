package tilematch

import (
	"fmt"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-tilematch/internal/core"
)

func TestGenerateTilesInvariants(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		tiles := GenerateTiles(rand.New(rand.NewSource(seed)))

		if len(tiles)%3 != 0 {
			t.Fatalf("seed %d: %d tiles, not a multiple of 3", seed, len(tiles))
		}
		if len(tiles) < minMainPosition {
			t.Fatalf("seed %d: only %d tiles", seed, len(tiles))
		}

		for sym, n := range SymbolCounts(tiles) {
			if n%3 != 0 {
				t.Fatalf("seed %d: symbol %s appears %d times", seed, sym, n)
			}
			if !slices.Contains(Symbols, sym) {
				t.Fatalf("seed %d: unknown symbol %q", seed, sym)
			}
		}

		side := 0
		for i, tile := range tiles {
			if tile.ID != fmt.Sprintf("tile-%d", i) {
				t.Fatalf("seed %d: tile %d has id %q", seed, i, tile.ID)
			}
			if tile.Removed {
				t.Fatalf("seed %d: tile %s starts removed", seed, tile.ID)
			}
			if tile.SideStack {
				side++
			}
		}
		if side != 2*MaxLayers {
			t.Fatalf("seed %d: %d side stack tiles, want %d", seed, side, 2*MaxLayers)
		}

		free := 0
		for _, tile := range tiles {
			if !IsTileBlocked(tile, tiles) {
				free++
			}
		}
		if free == 0 {
			t.Fatalf("seed %d: no pickable tile on a fresh board", seed)
		}
	}
}

func TestGenerateTilesDeterministic(t *testing.T) {
	a := GenerateTiles(rand.New(rand.NewSource(2024)))
	b := GenerateTiles(rand.New(rand.NewSource(2024)))

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same board")
	}

	c := GenerateTiles(rand.New(rand.NewSource(2025)))
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical boards")
	}
}

func TestTrimToSets(t *testing.T) {
	main := Position{Col: 1, Row: 1}
	side := Position{Col: -2, Row: 1.5, SideStack: true}

	tests := []struct {
		name      string
		in        []Position
		wantLen   int
		wantSides int
	}{
		{"already divisible", []Position{main, main, main}, 3, 0},
		{"drops main first", []Position{side, side, side, main}, 3, 3},
		{"drops two mains", []Position{main, side, main, side, side}, 3, 3},
		{"only sides pops last", []Position{side, side, side, side}, 3, 3},
		{"empty", nil, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := trimToSets(slices.Clone(tc.in))
			if len(out) != tc.wantLen {
				t.Fatalf("len = %d, want %d", len(out), tc.wantLen)
			}
			sides := 0
			for _, p := range out {
				if p.SideStack {
					sides++
				}
			}
			if sides != tc.wantSides {
				t.Errorf("side positions = %d, want %d", sides, tc.wantSides)
			}
		})
	}
}

func TestSymbolPoolCycles(t *testing.T) {
	pool := symbolPool(12)
	if len(pool) != 36 {
		t.Fatalf("len(pool) = %d, want 36", len(pool))
	}

	counts := make(map[Symbol]int)
	for _, s := range pool {
		counts[s]++
	}
	for i, s := range Symbols {
		want := 3
		if i < 2 {
			want = 6 // Wrapped around
		}
		if counts[s] != want {
			t.Errorf("symbol %s appears %d times, want %d", s, counts[s], want)
		}
	}
}

func TestPickCentersRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for range 100 {
		centers := pickCenters(rng, len(Groups))
		if len(centers) != len(Groups) {
			t.Fatalf("got %d centers, want %d", len(centers), len(Groups))
		}
		for _, c := range centers {
			if c.Col < centerMin || c.Col >= centerMin+centerSpan ||
				c.Row < centerMin || c.Row >= centerMin+centerSpan {
				t.Fatalf("center %+v out of range", c)
			}
		}
	}
}

// scriptedSource feeds Intn(centerSpan) the given values in order and
// repeats the last one when the script runs out.
type scriptedSource struct {
	values []int64
	calls  int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[min(s.calls, len(s.values)-1)]
	s.calls++
	// Intn of a power of two masks the top 31 bits of Int63
	return v << 32
}

func (s *scriptedSource) Seed(int64) {}

func TestPickCentersRedrawsCloseCenters(t *testing.T) {
	src := &scriptedSource{values: []int64{
		0, 0, // (2,2)
		1, 0, // (3,2): distance 1, redrawn
		0, 2, // (2,4): distance 2, redrawn
		3, 3, // (5,5): distance 6, kept
	}}

	centers := pickCenters(rand.New(src), 2)

	want := []cell{{Col: 2, Row: 2}, {Col: 5, Row: 5}}
	if !reflect.DeepEqual(centers, want) {
		t.Errorf("centers = %+v, want %+v", centers, want)
	}
	if src.calls != 8 {
		t.Errorf("drew %d values, want 8", src.calls)
	}
}

func TestPickCentersAcceptsLastDrawAfterCap(t *testing.T) {
	src := &scriptedSource{values: []int64{0}}

	centers := pickCenters(rand.New(src), 3)

	for i, c := range centers {
		if c != (cell{Col: 2, Row: 2}) {
			t.Errorf("center %d = %+v, want {2 2}", i, c)
		}
	}
	// One draw for the first center, centerAttempts for each of the others
	if want := 2 * (1 + 2*centerAttempts); src.calls != want {
		t.Errorf("drew %d values, want %d", src.calls, want)
	}
}

func TestPickCentersSpacing(t *testing.T) {
	for seed := int64(1); seed <= 500; seed++ {
		centers := pickCenters(rand.New(rand.NewSource(seed)), len(Groups))

		// A free cell always exists for the second center
		a, b := centers[0], centers[1]
		if d := core.Abs(a.Col-b.Col) + core.Abs(a.Row-b.Row); d < centerMinDist {
			t.Fatalf("seed %d: centers %+v and %+v are %d apart", seed, a, b, d)
		}
	}
}

func TestLayoutGroupsFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// A single one-cell group is far below the floor
	positions := layoutGroups(rng, []GroupShape{{MaxLayer: 0, TopRadius: 0}})

	if len(positions) < minMainPosition {
		t.Fatalf("got %d positions, want at least %d", len(positions), minMainPosition)
	}

	fb := fallbackGroup
	topLayer := 0
	for _, p := range positions {
		if dist := max(core.Abs(p.GridCol-fb.Col), core.Abs(p.GridRow-fb.Row)); dist > fb.Shape.TopRadius {
			t.Fatalf("position %+v outside the fallback group", p)
		}
		topLayer = max(topLayer, p.Layer)
	}
	if topLayer != fb.Shape.MaxLayer {
		t.Errorf("top layer = %d, want %d", topLayer, fb.Shape.MaxLayer)
	}
}

func TestLayoutGroupsMeetsFloor(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		positions := layoutGroups(rand.New(rand.NewSource(seed)), Groups)
		if len(positions) < minMainPosition {
			t.Fatalf("seed %d: %d main positions", seed, len(positions))
		}
	}
}
