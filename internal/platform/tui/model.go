package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tilematch/internal/core"
	"github.com/vovakirdan/tui-tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tui-tilematch/internal/registry"
	"github.com/vovakirdan/tui-tilematch/internal/storage"
)

// helpRows is the height of the help bar under the game screen.
const helpRows = 1

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	session    string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
	saved      bool // Result stored for the current board
	boardSeed  int64
	quitOnBack bool // Standalone program: going back ends it
}

// NewGameModel creates a new game model.
// store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, session string, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		store:      store,
		logger:     logger,
		session:    session,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config minus the help bar.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 0)
	return cfg
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame, 0)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.abandon()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)

	// Keep the board; only games that cannot follow a resize are reset
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.observe(prev)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// observe logs progress and stores the result once a board is finished.
func (m *GameModel) observe(prev core.GameState) {
	tg, ok := m.game.(*tilematch.Game)
	if !ok {
		return
	}
	snap := tg.Snapshot()

	if snap.BoardSeed != m.boardSeed && snap.Phase != tilematch.PhaseStart.String() {
		m.boardSeed = snap.BoardSeed
		m.saved = false
		m.logger.Info("board dealt", "session", m.session, "seed", snap.BoardSeed, "tiles", snap.Total)
	}

	if m.gameState.Matches > prev.Matches {
		m.logger.Debug("match", "session", m.session, "matches", m.gameState.Matches, "remaining", snap.Remaining)
	}

	if m.gameState.GameOver && !m.saved {
		outcome := storage.OutcomeLost
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.logger.Info("game over", "session", m.session, "outcome", outcome,
			"score", snap.Score, "moves", snap.Moves, "elapsed", snap.Elapsed.Round(time.Second))
		m.saveResult(snap, outcome)
	}
}

// abandon stores a board the player leaves mid-game.
func (m *GameModel) abandon() {
	tg, ok := m.game.(*tilematch.Game)
	if !ok || m.saved || m.gameState.GameOver || m.gameState.Moves == 0 {
		return
	}
	snap := tg.Snapshot()
	m.logger.Info("game abandoned", "session", m.session, "moves", snap.Moves, "remaining", snap.Remaining)
	m.saveResult(snap, storage.OutcomeAbandoned)
}

// saveResult writes one result. Storage failures only cost persistence.
func (m *GameModel) saveResult(snap tilematch.Snapshot, outcome storage.Outcome) {
	m.saved = true
	if m.store == nil {
		return
	}

	id, err := m.store.SaveResult(ResultFromSnapshot(m.game.ID(), m.session, outcome, snap))
	if err != nil {
		m.logger.Warn("could not save result", "error", err)
		return
	}
	m.logger.Debug("result saved", "id", id)
}

// ResultFromSnapshot converts a finished board into a storage record.
func ResultFromSnapshot(gameID, session string, outcome storage.Outcome, snap tilematch.Snapshot) storage.Result {
	return storage.Result{
		GameID:    gameID,
		Session:   session,
		Outcome:   outcome,
		Score:     snap.Score,
		Moves:     snap.Moves,
		Matches:   snap.Matches,
		Tiles:     snap.Total,
		Remaining: snap.Remaining,
		BoardSeed: snap.BoardSeed,
		Duration:  snap.Elapsed,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".tilematch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || (m.backToMenu && m.quitOnBack) {
		return ""
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone game program. It returns when the player quits
// or goes back to the menu; backToMenu reports which.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, session string, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, store, logger, session, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks pick tiles
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
