package tilematch

import (
	"math/rand"
	"reflect"
	"testing"
)

// flatBoard lays tiles side by side on layer 0 so every tile is pickable.
func flatBoard(symbols ...Symbol) []Tile {
	tiles := make([]Tile, len(symbols))
	for i, s := range symbols {
		tiles[i] = mkTile(tileID(i), s, float64(i%Grid), float64(i/Grid), 0)
	}
	return tiles
}

func started(tiles []Tile) State {
	s, _ := Transition(NewState(), StartEvent{Tiles: tiles})
	return s
}

func mustPick(t *testing.T, s State, id string) (State, []Effect) {
	t.Helper()
	next, effects := Transition(s, PickEvent{TileID: id})
	if next.Moves != s.Moves+1 {
		t.Fatalf("pick %s was not applied (phase %s)", id, s.Phase)
	}
	return next, effects
}

func TestStartEvent(t *testing.T) {
	tiles := flatBoard(symA, symA, symA)
	s, effects := Transition(NewState(), StartEvent{Tiles: tiles})

	if s.Phase != PhasePlaying {
		t.Errorf("phase = %s, want playing", s.Phase)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
	if len(s.Tray) != 0 || s.Moves != 0 || s.Matches != 0 {
		t.Errorf("fresh state not empty: %+v", s)
	}

	tiles[0].Removed = true
	if s.Tiles[0].Removed {
		t.Error("state shares the caller's tile slice")
	}
}

func TestPickIgnored(t *testing.T) {
	board := []Tile{
		mkTile("under", symA, 1, 1, 0),
		mkTile("over", symB, 1.5, 1.5, 1),
	}
	s := started(board)

	tests := []struct {
		name  string
		state State
		id    string
	}{
		{"before start", NewState(), "over"},
		{"unknown id", s, "tile-404"},
		{"blocked tile", s, "under"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, effects := Transition(tc.state, PickEvent{TileID: tc.id})
			if !reflect.DeepEqual(next, tc.state) || effects != nil {
				t.Errorf("pick %q changed state: %+v, %v", tc.id, next, effects)
			}
		})
	}

	picked, _ := mustPick(t, s, "over")
	if again, _ := Transition(picked, PickEvent{TileID: "over"}); !reflect.DeepEqual(again, picked) {
		t.Error("picking a removed tile should be ignored")
	}
}

func TestPickDoesNotMutateInput(t *testing.T) {
	s := started(flatBoard(symA, symB))
	next, _ := mustPick(t, s, "tile-0")

	if s.Tiles[0].Removed || len(s.Tray) != 0 || s.Moves != 0 {
		t.Errorf("original state mutated: %+v", s)
	}
	if !next.Tiles[0].Removed || len(next.Tray) != 1 {
		t.Errorf("next state missing pick: %+v", next)
	}
}

func TestPickedTileEntersTrayAsPicked(t *testing.T) {
	s := started(flatBoard(symA, symB))
	next, _ := mustPick(t, s, "tile-1")

	got := next.Tray[0]
	want := s.Tiles[1]
	if got != want {
		t.Errorf("tray tile = %+v, want the board tile as picked %+v", got, want)
	}
	if got.Removed {
		t.Error("tray tile should not carry the board's removed flag")
	}
	if idx := FindTile(next.Tiles, "tile-1"); !next.Tiles[idx].Removed {
		t.Error("board tile should be removed")
	}
}

func TestMatchResolveCycle(t *testing.T) {
	s := started(flatBoard(symA, symB, symA, symA))

	s, _ = mustPick(t, s, "tile-0")
	s, _ = mustPick(t, s, "tile-1")
	s, effects := mustPick(t, s, "tile-2")
	if len(effects) != 0 || s.Phase != PhasePlaying {
		t.Fatalf("no match yet, got phase %s effects %v", s.Phase, effects)
	}

	s, effects = mustPick(t, s, "tile-3")
	wantEffects := []Effect{MatchFound{Symbol: symA}, ScheduleResolve{}}
	if !reflect.DeepEqual(effects, wantEffects) {
		t.Errorf("effects = %v, want %v", effects, wantEffects)
	}
	if s.Phase != PhaseResolving {
		t.Fatalf("phase = %s, want resolving", s.Phase)
	}
	if got := traySymbols(s.Tray); !reflect.DeepEqual(got, []Symbol{symA, symA, symA, symB}) {
		t.Errorf("tray on display = %v", got)
	}
	if got := traySymbols(s.Pending); !reflect.DeepEqual(got, []Symbol{symB}) {
		t.Errorf("pending tray = %v", got)
	}
	if s.Matches != 1 || s.Score() != 30 || s.LastMatch != symA {
		t.Errorf("matches=%d score=%d last=%q", s.Matches, s.Score(), s.LastMatch)
	}

	// Board is empty but the win waits for the resolve
	s, effects = Transition(s, ResolveEvent{})
	if s.Phase != PhaseWon || !reflect.DeepEqual(effects, []Effect{GameWon{}}) {
		t.Errorf("after resolve: phase %s effects %v, want won", s.Phase, effects)
	}
	if got := traySymbols(s.Tray); !reflect.DeepEqual(got, []Symbol{symB}) {
		t.Errorf("tray after resolve = %v", got)
	}
}

func TestPicksIgnoredWhileResolving(t *testing.T) {
	s := started(flatBoard(symA, symA, symA, symB, symB, symB))
	s, _ = mustPick(t, s, "tile-0")
	s, _ = mustPick(t, s, "tile-1")
	s, _ = mustPick(t, s, "tile-2")

	if s.Phase != PhaseResolving {
		t.Fatalf("phase = %s, want resolving", s.Phase)
	}
	next, effects := Transition(s, PickEvent{TileID: "tile-3"})
	if !reflect.DeepEqual(next, s) || effects != nil {
		t.Error("pick during resolving should be ignored")
	}

	s, effects = Transition(s, ResolveEvent{})
	if s.Phase != PhasePlaying || effects != nil || len(s.Tray) != 0 {
		t.Errorf("after resolve: phase %s tray %d effects %v", s.Phase, len(s.Tray), effects)
	}
	if _, effects := Transition(s, ResolveEvent{}); effects != nil {
		t.Error("resolve outside resolving phase should be ignored")
	}
}

func TestLoseWhenTrayFills(t *testing.T) {
	board := flatBoard(Symbols[0], Symbols[1], Symbols[2], Symbols[3], Symbols[4], Symbols[5], Symbols[6], Symbols[7])
	s := started(board)

	var effects []Effect
	for i := range MaxTraySize {
		s, effects = mustPick(t, s, tileID(i))
		if i < MaxTraySize-1 && s.Phase != PhasePlaying {
			t.Fatalf("pick %d: phase %s, want playing", i, s.Phase)
		}
	}

	if s.Phase != PhaseLost || !reflect.DeepEqual(effects, []Effect{GameLost{}}) {
		t.Errorf("phase %s effects %v, want lost", s.Phase, effects)
	}
	if _, effects := Transition(s, PickEvent{TileID: tileID(7)}); effects != nil {
		t.Error("picks after losing should be ignored")
	}
}

func TestWinTakesPrecedenceOverFullTray(t *testing.T) {
	s := State{
		Phase: PhasePlaying,
		Tiles: []Tile{mkTile("last", Symbols[6], 0, 0, 0)},
		Tray:  trayOf(Symbols[0], Symbols[1], Symbols[2], Symbols[3], Symbols[4], Symbols[5]),
	}

	next, effects := Transition(s, PickEvent{TileID: "last"})
	if len(next.Tray) != MaxTraySize {
		t.Fatalf("tray len = %d, want %d", len(next.Tray), MaxTraySize)
	}
	if next.Phase != PhaseWon || !reflect.DeepEqual(effects, []Effect{GameWon{}}) {
		t.Errorf("phase %s effects %v, want won", next.Phase, effects)
	}
}

func TestRestartFromAnyPhase(t *testing.T) {
	s := State{Phase: PhaseLost, Moves: 9, Matches: 2, Tray: trayOf(symA)}
	next, _ := Transition(s, StartEvent{Tiles: flatBoard(symB, symB, symB)})

	if next.Phase != PhasePlaying || next.Moves != 0 || next.Matches != 0 || len(next.Tray) != 0 {
		t.Errorf("restart did not reset: %+v", next)
	}
}

// playGreedy drives a board to the end, preferring tiles that complete sets.
func playGreedy(t *testing.T, tiles []Tile) (State, int) {
	t.Helper()
	s := started(tiles)
	total := len(tiles)

	for step := 0; step < 10*total; step++ {
		switch s.Phase {
		case PhaseWon, PhaseLost:
			return s, total
		case PhaseResolving:
			if got := Remaining(s.Tiles) + len(s.Pending) + 3*s.Matches; got != total {
				t.Fatalf("tile count drifted to %d of %d", got, total)
			}
			s, _ = Transition(s, ResolveEvent{})
			continue
		}

		if got := Remaining(s.Tiles) + len(s.Tray) + 3*s.Matches; got != total {
			t.Fatalf("tile count drifted to %d of %d", got, total)
		}

		inTray := SymbolCounts(s.Tray)
		best, bestScore := "", -1
		for _, tile := range s.Tiles {
			if IsTileBlocked(tile, s.Tiles) {
				continue
			}
			if score := inTray[tile.Symbol]; score > bestScore {
				best, bestScore = tile.ID, score
			}
		}
		if best == "" {
			t.Fatalf("no pickable tile with %d left", Remaining(s.Tiles))
		}
		s, _ = mustPick(t, s, best)
		if len(s.Tray) > MaxTraySize {
			t.Fatalf("tray overflowed: %d", len(s.Tray))
		}
	}

	t.Fatal("game did not finish")
	return s, total
}

func TestGreedyPlayReachesTerminalPhase(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		s, _ := playGreedy(t, GenerateTiles(rand.New(rand.NewSource(seed))))
		if !s.Phase.Over() {
			t.Fatalf("seed %d ended in phase %s", seed, s.Phase)
		}
		if s.Phase == PhaseWon && Remaining(s.Tiles) != 0 {
			t.Fatalf("seed %d won with %d tiles left", seed, Remaining(s.Tiles))
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	a, _ := playGreedy(t, GenerateTiles(rand.New(rand.NewSource(77))))
	b, _ := playGreedy(t, GenerateTiles(rand.New(rand.NewSource(77))))

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and same picks should end in the same state")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
		over  bool
	}{
		{PhaseStart, "start", false},
		{PhasePlaying, "playing", false},
		{PhaseResolving, "resolving", false},
		{PhaseWon, "won", true},
		{PhaseLost, "lost", true},
		{Phase(99), "unknown", false},
	}

	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
		if got := tc.phase.Over(); got != tc.over {
			t.Errorf("Phase(%d).Over() = %v, want %v", tc.phase, got, tc.over)
		}
	}
}
