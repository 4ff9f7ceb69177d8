package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
)

// LevelEntry is one row of the level list.
type LevelEntry struct {
	ID      string
	Targets int
	Blocks  int
}

// EntriesFromLevels summarizes a campaign for the level list.
func EntriesFromLevels(levels []level.SimLevel) []LevelEntry {
	entries := make([]LevelEntry, len(levels))
	for i, l := range levels {
		entries[i] = LevelEntry{ID: l.ID, Targets: len(l.Targets), Blocks: len(l.Boxes)}
	}
	return entries
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuItemStyle  = lipgloss.NewStyle()
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// LevelSelectModel lets the player pick the level to start from.
type LevelSelectModel struct {
	title    string
	entries  []LevelEntry
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	selected int
}

// NewLevelSelectModel creates a level list.
func NewLevelSelectModel(title string, entries []LevelEntry, width, height int) LevelSelectModel {
	h := help.New()
	h.Width = width
	return LevelSelectModel{
		title:    title,
		entries:  entries,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     h,
		selected: -1,
	}
}

// Init initializes the level list.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level list.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.entries) > 0 {
				m.selected = m.cursor
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText("No levels available. Please create levels in the editor.", m.width))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		cursor, style := "  ", menuItemStyle
		if i == m.cursor {
			cursor, style = "> ", menuCurStyle
		}
		line := fmt.Sprintf("%s%2d. %-24s %2d pigs %3d blocks", cursor, i+1, truncate(e.ID, 24), e.Targets, e.Blocks)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen level index, or -1.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
