package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tilematch/internal/config"
	"github.com/vovakirdan/tui-tilematch/internal/core"
	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tui-tilematch/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 30, Seed: 2024}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelPlaysToResult(t *testing.T) {
	store := openStore(t)
	game := tilematch.NewWithConfig(config.DefaultConfig())
	m := NewGameModel(game, store, nil, "tester", testRuntime())
	m.Init()

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	for tick := 0; tick < 5000 && !m.gameState.GameOver; tick++ {
		m = send(t, m, enter)
		m = send(t, m, TickMsg(time.Now()))
	}
	if !m.gameState.GameOver {
		t.Fatal("board did not finish")
	}

	// Extra ticks after the end must not store the result twice
	for range 5 {
		m = send(t, m, TickMsg(time.Now()))
	}

	results, err := store.RecentResults(tilematch.GameID, 10)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("stored %d results, want 1", len(results))
	}

	r := results[0]
	snap := game.Snapshot()
	if r.Session != "tester" || r.BoardSeed != snap.BoardSeed || r.Moves != snap.Moves || r.Score != snap.Score {
		t.Errorf("stored %+v, snapshot %+v", r, snap)
	}
	wantOutcome := storage.OutcomeLost
	if m.gameState.Won {
		wantOutcome = storage.OutcomeWon
	}
	if r.Outcome != wantOutcome {
		t.Errorf("Outcome = %q, want %q", r.Outcome, wantOutcome)
	}
}

func TestGameModelBackAbandons(t *testing.T) {
	store := openStore(t)
	game := tilematch.NewWithConfig(config.DefaultConfig())
	m := NewGameModel(game, store, nil, "tester", testRuntime())
	m.Init()

	// Start, then pick one tile
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg(time.Now()))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Fatal("esc should go back to the menu")
	}

	results, err := store.RecentResults(tilematch.GameID, 10)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 1 || results[0].Outcome != storage.OutcomeAbandoned {
		t.Fatalf("results = %+v, want one abandoned game", results)
	}
}

func TestGameModelQuitWithoutMovesStoresNothing(t *testing.T) {
	store := openStore(t)
	m := NewGameModel(tilematch.NewWithConfig(config.DefaultConfig()), store, nil, "tester", testRuntime())
	m.Init()

	m = send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	results, err := store.RecentResults(tilematch.GameID, 10)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("stored %d results for an untouched board", len(results))
	}
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	game := tilematch.NewWithConfig(config.DefaultConfig())
	m := NewGameModel(game, nil, nil, "tester", testRuntime())
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg(time.Now()))
	seed := game.Snapshot().BoardSeed

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = send(t, m, TickMsg(time.Now()))

	if game.Snapshot().BoardSeed != seed || game.Snapshot().Phase != "playing" {
		t.Error("resize should keep the current board")
	}
	if !strings.Contains(m.View(), "Tiles:") {
		t.Error("view should show the HUD")
	}
}

func TestResultFromSnapshot(t *testing.T) {
	snap := tilematch.Snapshot{
		BoardSeed: 77,
		Total:     54,
		Remaining: 12,
		Moves:     40,
		Matches:   9,
		Score:     270,
		Elapsed:   3 * time.Minute,
	}

	r := ResultFromSnapshot(tilematch.GameID, "bob", storage.OutcomeLost, snap)
	want := storage.Result{
		GameID:    tilematch.GameID,
		Session:   "bob",
		Outcome:   storage.OutcomeLost,
		Score:     270,
		Moves:     40,
		Matches:   9,
		Tiles:     54,
		Remaining: 12,
		BoardSeed: 77,
		Duration:  3 * time.Minute,
	}
	if r != want {
		t.Errorf("ResultFromSnapshot() = %+v, want %+v", r, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{12*time.Minute + 5*time.Second, "12:05"},
	}

	for _, tc := range tests {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestMenuChoices(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Chosen() != ChoiceResults {
		t.Errorf("Chosen() = %d, want results", m.Chosen())
	}

	q, _ := NewMenuModel(nil, testRuntime()).Update(runeKey('q'))
	if q.(MenuModel).Chosen() != ChoiceQuit {
		t.Error("q should choose quit")
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	for i, score := range []int{90, 270, 180} {
		_, err := store.SaveResult(storage.Result{
			GameID:  tilematch.GameID,
			Session: "tester",
			Outcome: storage.OutcomeLost,
			Score:   score,
			Moves:   10 + i,
		})
		if err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.view != ViewTop || len(m.results) != 3 || m.results[0].Score != 270 {
		t.Fatalf("top view = %+v", m.results)
	}
	if m.stats == nil || m.stats.Games != 3 {
		t.Errorf("stats = %+v, want 3 games", m.stats)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != ViewRecent || len(m.results) != 3 {
		t.Fatalf("after tab: view %d with %d results", m.view, len(m.results))
	}
	if !strings.Contains(m.View(), "RESULTS") {
		t.Error("view should show the title")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.results) != 0 || m.loadErr != nil {
		t.Errorf("results = %v, err = %v", m.results, m.loadErr)
	}
	if m.View() == "" {
		t.Error("view should render without a store")
	}
}
