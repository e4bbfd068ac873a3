package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
)

var flagFormat string

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Generate a board and print it",
	Long: `Generate a board without playing it and print the stack height of every
cell, the top symbol of every cell and how many tiles of each symbol were dealt.

The board seed stored with every result reproduces that board here.

Examples:
  tilematch deal
  tilematch deal --seed 42
  tilematch deal --seed 42 --format yaml`,
	Args: cobra.NoArgs,
	Run:  runDeal,
}

func init() {
	dealCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or yaml")
}

// boardReport describes a dealt board.
type boardReport struct {
	Seed    int64          `yaml:"seed"`
	Tiles   int            `yaml:"tiles"`
	Free    int            `yaml:"free"`
	Side    int            `yaml:"side_stack_tiles"`
	Heights []string       `yaml:"heights"`
	Top     []string       `yaml:"top"`
	Layers  []layerCount   `yaml:"layers"`
	Symbols []symbolReport `yaml:"symbols"`
}

type layerCount struct {
	Layer int `yaml:"layer"`
	Tiles int `yaml:"tiles"`
}

type symbolReport struct {
	Symbol string `yaml:"symbol"`
	Glyph  string `yaml:"glyph"`
	Count  int    `yaml:"count"`
}

func runDeal(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tiles := tilematch.GenerateTiles(rand.New(rand.NewSource(seed)))
	report := newBoardReport(seed, tiles, tilematch.NewTheme(cfg.Display.Theme))

	switch flagFormat {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			fatalf("encoding board: %v", err)
		}
		enc.Close()
	case "text":
		printBoardReport(os.Stdout, report)
	default:
		fatalf("unknown format %q (want text or yaml)", flagFormat)
	}
}

// newBoardReport summarizes tiles dealt from seed.
func newBoardReport(seed int64, tiles []tilematch.Tile, theme tilematch.Theme) boardReport {
	r := boardReport{Seed: seed, Tiles: len(tiles)}

	// Highest main board tile per cell
	var top [tilematch.Grid][tilematch.Grid]*tilematch.Tile
	layers := make(map[int]int)

	for i := range tiles {
		t := &tiles[i]
		layers[t.Layer]++
		if !tilematch.IsTileBlocked(*t, tiles) {
			r.Free++
		}
		if t.SideStack {
			r.Side++
			continue
		}
		if cur := top[t.GridRow][t.GridCol]; cur == nil || t.Layer > cur.Layer {
			top[t.GridRow][t.GridCol] = t
		}
	}

	for row := range tilematch.Grid {
		var heights, faces strings.Builder
		for col := range tilematch.Grid {
			t := top[row][col]
			if t == nil {
				heights.WriteRune('.')
				faces.WriteRune('.')
				continue
			}
			heights.WriteString(fmt.Sprint(t.Layer + 1))
			faces.WriteRune(theme.Style(t.Symbol).Glyph)
		}
		r.Heights = append(r.Heights, heights.String())
		r.Top = append(r.Top, faces.String())
	}

	for layer := range tilematch.MaxLayers {
		if layers[layer] > 0 {
			r.Layers = append(r.Layers, layerCount{Layer: layer, Tiles: layers[layer]})
		}
	}

	counts := tilematch.SymbolCounts(tiles)
	symbols := make([]tilematch.Symbol, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	// Alphabet order, not map order
	slices.SortFunc(symbols, func(a, b tilematch.Symbol) int {
		return slices.Index(tilematch.Symbols, a) - slices.Index(tilematch.Symbols, b)
	})
	for _, s := range symbols {
		r.Symbols = append(r.Symbols, symbolReport{
			Symbol: string(s),
			Glyph:  string(theme.Style(s).Glyph),
			Count:  counts[s],
		})
	}

	return r
}

func printBoardReport(w io.Writer, r boardReport) {
	fmt.Fprintf(w, "Board %d: %d tiles (%d in side stacks), %d free\n", r.Seed, r.Tiles, r.Side, r.Free)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-*s  %s\n", tilematch.Grid, "Height", "Top")
	for i := range r.Heights {
		fmt.Fprintf(w, "  %-*s  %s\n", tilematch.Grid, r.Heights[i], r.Top[i])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-5s  %s\n", "Layer", "Tiles")
	for _, l := range r.Layers {
		fmt.Fprintf(w, "  %-5d  %d\n", l.Layer, l.Tiles)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-6s  %-5s  %s\n", "Symbol", "Glyph", "Count")
	for _, s := range r.Symbols {
		fmt.Fprintf(w, "  %-6s  %-5s  %d\n", s.Symbol, s.Glyph, s.Count)
	}
}
