package tilematch

// Phase is the coarse game status.
type Phase int

const (
	PhaseStart     Phase = iota // No board yet
	PhasePlaying                // Waiting for a pick
	PhaseResolving              // A match is on display; picks are ignored
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseResolving:
		return "resolving"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == PhaseWon || p == PhaseLost
}

// PointsPerTile is the score for each tile cleared by a match.
const PointsPerTile = 10

// State is a full snapshot of one game. Transition never mutates it.
type State struct {
	Phase   Phase
	Tiles   []Tile
	Tray    Tray // What the player sees
	Pending Tray // Tray after the match on display, applied by ResolveEvent

	Moves     int
	Matches   int
	LastMatch Symbol
}

// NewState returns the state before the first board is dealt.
func NewState() State {
	return State{Phase: PhaseStart}
}

// Score is the number of points earned so far.
func (s State) Score() int {
	return s.Matches * tileSetSize * PointsPerTile
}

// Event is an input to Transition.
type Event interface {
	event()
}

// StartEvent deals a new board. Valid from any phase.
type StartEvent struct {
	Tiles []Tile
}

// PickEvent is the player choosing a tile on the board.
type PickEvent struct {
	TileID string
}

// ResolveEvent ends the match display started by ScheduleResolve.
type ResolveEvent struct{}

func (StartEvent) event()   {}
func (PickEvent) event()    {}
func (ResolveEvent) event() {}

// Effect is a side effect requested by Transition for the caller to carry out.
type Effect interface {
	effect()
}

// ScheduleResolve asks the caller to send ResolveEvent after its match delay.
type ScheduleResolve struct{}

// MatchFound reports a set of three leaving the tray.
type MatchFound struct {
	Symbol Symbol
}

// GameWon reports that the board was cleared.
type GameWon struct{}

// GameLost reports that the tray filled up.
type GameLost struct{}

func (ScheduleResolve) effect() {}
func (MatchFound) effect()      {}
func (GameWon) effect()         {}
func (GameLost) effect()        {}

// Transition applies ev to s and returns the next state with any effects.
// Events that do not apply to the current phase return s unchanged.
func Transition(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case StartEvent:
		return State{
			Phase: PhasePlaying,
			Tiles: cloneTiles(e.Tiles),
			Tray:  Tray{},
		}, nil

	case PickEvent:
		if s.Phase != PhasePlaying {
			return s, nil
		}
		return pick(s, e.TileID)

	case ResolveEvent:
		if s.Phase != PhaseResolving {
			return s, nil
		}
		return resolve(s)
	}

	return s, nil
}

// pick moves a tile from the board to the tray.
func pick(s State, id string) (State, []Effect) {
	idx := FindTile(s.Tiles, id)
	if idx < 0 || IsTileBlocked(s.Tiles[idx], s.Tiles) {
		return s, nil
	}

	next := s
	next.Tiles = cloneTiles(s.Tiles)
	next.Tiles[idx].Removed = true
	next.Moves++

	// The tray gets the tile as it was picked, still live
	tray := AddToTray(s.Tray, s.Tiles[idx])
	next.Tray = tray

	if m := CheckMatch(tray); m.Matched {
		next.Phase = PhaseResolving
		next.Pending = m.Tray
		next.Matches++
		next.LastMatch = m.Symbol
		return next, []Effect{MatchFound{Symbol: m.Symbol}, ScheduleResolve{}}
	}

	// Win is checked against the updated board before the tray limit
	if CheckWin(next.Tiles) {
		next.Phase = PhaseWon
		return next, []Effect{GameWon{}}
	}
	if CheckLose(tray) {
		next.Phase = PhaseLost
		return next, []Effect{GameLost{}}
	}

	return next, nil
}

// resolve applies the pending tray after a match.
func resolve(s State) (State, []Effect) {
	next := s
	next.Tray = s.Pending
	next.Pending = nil

	if CheckWin(next.Tiles) {
		next.Phase = PhaseWon
		return next, []Effect{GameWon{}}
	}

	next.Phase = PhasePlaying
	return next, nil
}

func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}
