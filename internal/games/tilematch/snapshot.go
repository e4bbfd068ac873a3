package tilematch

import "time"

// Snapshot captures the game for determinism tests and result records.
type Snapshot struct {
	Tick      uint64
	Phase     string
	BoardSeed int64 // Reproduces the board with GenerateTiles
	Total     int   // Tiles dealt
	Remaining int
	Tray      []Symbol
	Cursor    string
	Moves     int
	Matches   int
	Score     int
	Elapsed   time.Duration // Play time since the deal
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	tray := make([]Symbol, len(g.state.Tray))
	for i, t := range g.state.Tray {
		tray[i] = t.Symbol
	}

	var elapsed time.Duration
	if g.state.Phase != PhaseStart && g.tickRate > 0 {
		end := g.tick
		if g.state.Phase.Over() {
			end = g.endedAt
		}
		elapsed = time.Duration(end-g.dealtAt) * time.Second / time.Duration(g.tickRate)
	}

	return Snapshot{
		Tick:      g.tick,
		Phase:     g.state.Phase.String(),
		BoardSeed: g.boardSeed,
		Total:     len(g.state.Tiles),
		Remaining: Remaining(g.state.Tiles),
		Tray:      tray,
		Cursor:    g.cursor,
		Moves:     g.state.Moves,
		Matches:   g.state.Matches,
		Score:     g.state.Score(),
		Elapsed:   elapsed,
	}
}
