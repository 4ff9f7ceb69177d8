package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/registry"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

// LevelSelector is implemented by games that can start at a given level.
type LevelSelector interface {
	SelectLevel(i int)
}

// GameFactory creates the game for a new play-through.
type GameFactory func() (registry.Game, error)

// SessionModel runs the level list and the game it starts: list -> game -> list.
// It backs both `play --select` and SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	title     string
	entries   []LevelEntry
	newGame   GameFactory
	menu      LevelSelectModel
	gameModel *GameModel
	err       error
	quitting  bool
}

// NewSessionModel creates a session over the given levels.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, title string, entries []LevelEntry, newGame GameFactory) SessionModel {
	return SessionModel{
		store:   store,
		config:  cfg,
		title:   title,
		entries: entries,
		newGame: newGame,
		menu:    NewLevelSelectModel(title, entries, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(LevelSelectModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	idx := m.menu.Selected()
	if idx < 0 {
		return m, cmd
	}

	game, err := m.newGame()
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	gm := NewGameModel(game, m.store, m.config).WithBack()
	initCmd := gm.Init()
	if sel, ok := game.(LevelSelector); ok {
		sel.SelectLevel(idx)
	}
	m.gameModel = &gm
	return m, initCmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = NewLevelSelectModel(m.title, m.entries, m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.gameModel != nil {
		return m.gameModel.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs the level list and games full-screen until the user quits.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, title string, entries []LevelEntry, newGame GameFactory) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, title, entries, newGame),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}
