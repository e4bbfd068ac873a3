package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tilematch/internal/config"
	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
)

func testReport(t *testing.T, seed int64) boardReport {
	t.Helper()
	tiles := tilematch.GenerateTiles(rand.New(rand.NewSource(seed)))
	return newBoardReport(seed, tiles, tilematch.NewTheme(config.DefaultConfig().Display.Theme))
}

func TestBoardReportTotals(t *testing.T) {
	for _, seed := range []int64{1, 42, 1234} {
		r := testReport(t, seed)

		if r.Side != 2*tilematch.MaxLayers {
			t.Errorf("seed %d: Side = %d, want %d", seed, r.Side, 2*tilematch.MaxLayers)
		}
		if r.Free == 0 || r.Free > r.Tiles {
			t.Errorf("seed %d: Free = %d of %d tiles", seed, r.Free, r.Tiles)
		}

		layerSum := 0
		for _, l := range r.Layers {
			layerSum += l.Tiles
		}
		if layerSum != r.Tiles {
			t.Errorf("seed %d: layers sum to %d, want %d", seed, layerSum, r.Tiles)
		}

		symbolSum := 0
		for _, s := range r.Symbols {
			if s.Count%3 != 0 {
				t.Errorf("seed %d: symbol %s dealt %d times", seed, s.Symbol, s.Count)
			}
			symbolSum += s.Count
		}
		if symbolSum != r.Tiles {
			t.Errorf("seed %d: symbols sum to %d, want %d", seed, symbolSum, r.Tiles)
		}

		if len(r.Heights) != tilematch.Grid || len(r.Top) != tilematch.Grid {
			t.Fatalf("seed %d: map has %d/%d rows", seed, len(r.Heights), len(r.Top))
		}
		for i := range r.Heights {
			if len(r.Heights[i]) != tilematch.Grid {
				t.Errorf("seed %d: height row %q", seed, r.Heights[i])
			}
			// Empty cells match between both maps
			for j, h := range r.Heights[i] {
				if (h == '.') != ([]rune(r.Top[i])[j] == '.') {
					t.Errorf("seed %d: cell (%d,%d) empty in one map only", seed, j, i)
				}
			}
		}
	}
}

func TestBoardReportDeterministic(t *testing.T) {
	a := testReport(t, 99)
	b := testReport(t, 99)

	var bufA, bufB bytes.Buffer
	printBoardReport(&bufA, a)
	printBoardReport(&bufB, b)

	if bufA.String() != bufB.String() {
		t.Error("same seed should print the same board")
	}
	if !strings.HasPrefix(bufA.String(), "Board 99:") {
		t.Errorf("unexpected header: %q", strings.SplitN(bufA.String(), "\n", 2)[0])
	}
}

func TestBoardReportYAML(t *testing.T) {
	r := testReport(t, 7)

	data, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"seed", "tiles", "free", "side_stack_tiles", "heights", "top", "layers", "symbols"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("yaml output missing %q", key)
		}
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"nonsense", "nonsense"},
	}

	for _, tc := range tests {
		if got := port(tc.addr); got != tc.want {
			t.Errorf("port(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
