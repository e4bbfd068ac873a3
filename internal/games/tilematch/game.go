package tilematch

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tilematch/internal/config"
	"github.com/vovakirdan/tui-tilematch/internal/core"
	"github.com/vovakirdan/tui-tilematch/internal/registry"
)

// GameID is the registry identifier and the game_id stored with results.
const GameID = "tilematch"

// Game wraps the rules engine for the platform: cursor, mouse hit testing,
// presentation delays and rendering.
type Game struct {
	rng  *rand.Rand
	tick uint64

	state     State
	boardSeed int64
	dealtAt   uint64
	endedAt   uint64

	cursor    string // ID of the tile under the keyboard cursor
	resolveIn int    // Ticks until the shown match is resolved
	loseIn    int    // Ticks until the lose overlay appears

	theme       Theme
	showBlocked bool
	matchDelay  time.Duration
	loseDelay   time.Duration
	tickRate    int

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level settings shared by games created through the registry.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultConfig()
)

// SetConfig replaces the settings used by New.
func SetConfig(cfg config.Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

func currentConfig() config.Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a game using the settings from SetConfig.
func New() *Game {
	return NewWithConfig(currentConfig())
}

// NewWithConfig creates a game with explicit settings.
func NewWithConfig(cfg config.Config) *Game {
	return &Game{
		theme:       NewTheme(cfg.Display.Theme),
		showBlocked: cfg.Display.ShowBlocked,
		matchDelay:  cfg.Timing.MatchDelay(),
		loseDelay:   cfg.Timing.LoseDelay(),
		tickRate:    cfg.Timing.TickRate,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tile Match"
}

// Reset seeds the game and returns to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.state = NewState()
	g.boardSeed = 0
	g.dealtAt = 0
	g.endedAt = 0
	g.cursor = ""
	g.resolveIn = 0
	g.loseIn = 0
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.state.Phase.Over() {
		g.deal()
		return core.StepResult{State: g.State()}
	}

	switch g.state.Phase {
	case PhaseStart:
		if in.Has(core.ActionSelect) || len(in.Clicks) > 0 {
			g.deal()
		}

	case PhasePlaying:
		if in.Empty() {
			break
		}
		g.handleCursor(in)
		if in.Has(core.ActionSelect) && g.cursor != "" {
			g.apply(PickEvent{TileID: g.cursor})
		}
		for _, c := range in.Clicks {
			if g.state.Phase != PhasePlaying {
				break
			}
			if id := g.tileAt(c.X, c.Y); id != "" {
				g.cursor = id
				g.apply(PickEvent{TileID: id})
			}
		}

	case PhaseResolving:
		g.resolveIn--
		if g.resolveIn <= 0 {
			g.apply(ResolveEvent{})
		}

	case PhaseLost:
		if g.loseIn > 0 {
			g.loseIn--
		}
	}

	return core.StepResult{State: g.State()}
}

// deal starts a new board from the next seed of the session RNG.
func (g *Game) deal() {
	g.boardSeed = g.rng.Int63()
	tiles := GenerateTiles(rand.New(rand.NewSource(g.boardSeed)))

	g.dealtAt = g.tick
	g.resolveIn = 0
	g.loseIn = 0
	g.cursor = ""
	g.apply(StartEvent{Tiles: tiles})
}

// apply runs one transition and schedules the effects it asks for.
func (g *Game) apply(ev Event) {
	next, effects := Transition(g.state, ev)
	if next.Phase.Over() && !g.state.Phase.Over() {
		g.endedAt = g.tick
	}
	g.state = next

	for _, e := range effects {
		switch e.(type) {
		case ScheduleResolve:
			g.resolveIn = g.delayTicks(g.matchDelay)
		case GameLost:
			g.loseIn = g.delayTicks(g.loseDelay)
		}
	}

	g.fixCursor()
}

// delayTicks converts a delay into simulation ticks, at least one.
func (g *Game) delayTicks(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds()*float64(g.tickRate))))
}

// pickable returns the live, uncovered tiles in reading order.
func (g *Game) pickable() []Tile {
	var out []Tile
	for _, t := range g.state.Tiles {
		if !IsTileBlocked(t, g.state.Tiles) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b Tile) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})
	return out
}

// handleCursor moves the keyboard cursor between pickable tiles.
func (g *Game) handleCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	case in.Has(core.ActionNext):
		g.cycleCursor(1)
	case in.Has(core.ActionPrev):
		g.cycleCursor(-1)
	}
}

// moveCursor jumps to the closest pickable tile in direction (dx, dy).
// Tiles off the axis of travel count double.
func (g *Game) moveCursor(dx, dy int) {
	idx := FindTile(g.state.Tiles, g.cursor)
	if idx < 0 {
		g.fixCursor()
		return
	}
	from := g.state.Tiles[idx]

	best, bestDist := "", math.MaxFloat64
	for _, t := range g.pickable() {
		along := (t.Col-from.Col)*float64(dx) + (t.Row-from.Row)*float64(dy)
		if along <= 0 {
			continue
		}
		across := math.Abs((t.Col-from.Col)*float64(dy)) + math.Abs((t.Row-from.Row)*float64(dx))
		if d := along + 2*across; d < bestDist {
			best, bestDist = t.ID, d
		}
	}
	if best != "" {
		g.cursor = best
	}
}

// cycleCursor steps through pickable tiles in reading order.
func (g *Game) cycleCursor(step int) {
	tiles := g.pickable()
	if len(tiles) == 0 {
		g.cursor = ""
		return
	}

	at := slices.IndexFunc(tiles, func(t Tile) bool { return t.ID == g.cursor })
	if at < 0 {
		g.cursor = tiles[0].ID
		return
	}
	g.cursor = tiles[(at+step+len(tiles))%len(tiles)].ID
}

// fixCursor keeps the cursor on a pickable tile, moving it to the nearest
// one when its tile was taken or covered.
func (g *Game) fixCursor() {
	tiles := g.pickable()
	if len(tiles) == 0 {
		g.cursor = ""
		return
	}
	if slices.ContainsFunc(tiles, func(t Tile) bool { return t.ID == g.cursor }) {
		return
	}

	idx := FindTile(g.state.Tiles, g.cursor)
	if idx < 0 {
		g.cursor = tiles[0].ID
		return
	}
	from := g.state.Tiles[idx]

	nearest := slices.MinFunc(tiles, func(a, b Tile) int {
		return cmp.Compare(distSq(a, from), distSq(b, from))
	})
	g.cursor = nearest.ID
}

func distSq(a, b Tile) float64 {
	dc, dr := a.Col-b.Col, a.Row-b.Row
	return dc*dc + dr*dr
}

// Cursor returns the ID of the tile under the keyboard cursor.
func (g *Game) Cursor() string {
	return g.cursor
}

// State returns the summary for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score(),
		Moves:    g.state.Moves,
		Matches:  g.state.Matches,
		GameOver: g.state.Phase.Over(),
		Won:      g.state.Phase == PhaseWon,
	}
}
