// Package tui implements the interactive code browser.
package tui

import (
	"context"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/tui/themes"
	"github.com/Veraticus/codevault/internal/vault"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateBrowse State = iota
	StateConfirmClear
)

// Model holds the browser state. Vault contents are re-read after every
// mutation; the model keeps only the derived view.
type Model struct {
	ctx        context.Context
	lastError  error
	vault      *vault.Vault
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	help       help.Model
	status     string
	categories []string
	stats      []model.CategoryStats
	groups     []model.CodeGroup
	rows       []model.Code
	tab        int
	cursor     int
	width      int
	height     int
	state      State
	quitting   bool
}

// New creates a browser over v.
func New(ctx context.Context, v *vault.Vault, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Copier == nil {
		cfg.Copier = cli.ClipboardCopier{}
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:    ctx,
		vault:  v,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		width:  cfg.Width,
		height: cfg.Height,
		state:  StateBrowse,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case actionDoneMsg:
		m.lastError = nil
		m.status = msg.status
		m.refresh()
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		m.status = msg.context + " failed"
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateConfirmClear {
			return m.handleConfirmKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(1)

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(-1)

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Copy):
		if code, ok := m.selected(); ok {
			return m, m.copyCode(code)
		}

	case key.Matches(msg, m.keymap.Toggle):
		if code, ok := m.selected(); ok {
			return m, m.toggleCode(code)
		}

	case key.Matches(msg, m.keymap.Delete):
		if code, ok := m.selected(); ok {
			return m, m.deleteCode(code)
		}

	case key.Matches(msg, m.keymap.ClearUsed):
		if category, ok := m.activeCategory(); ok {
			m.state = StateConfirmClear
			m.status = "Clear used codes from " + category + "? (y/n)"
		}
	}

	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.state = StateBrowse
		if category, ok := m.activeCategory(); ok {
			return m, m.clearUsed(category)
		}
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateBrowse
		m.status = "Cancelled"
	}
	return m, nil
}

// refresh rebuilds the derived view from the vault and clamps the
// selection.
func (m *Model) refresh() {
	m.categories = m.vault.Categories()
	m.stats = m.vault.Stats()

	if len(m.categories) == 0 {
		m.tab = 0
		m.groups = nil
		m.rows = nil
		m.cursor = 0
		return
	}
	if m.tab >= len(m.categories) {
		m.tab = len(m.categories) - 1
	}

	m.groups = m.vault.View(m.categories[m.tab])
	rows := make([]model.Code, 0, len(m.rows))
	for _, g := range m.groups {
		rows = append(rows, g.Codes...)
	}
	m.rows = rows

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) switchTab(delta int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	m.tab = ((m.tab+delta)%n + n) % n
	m.cursor = 0
	m.status = ""
	m.refresh()
}

func (m Model) activeCategory() (string, bool) {
	if len(m.categories) == 0 {
		return "", false
	}
	return m.categories[m.tab], true
}

func (m Model) selected() (model.Code, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Code{}, false
	}
	return m.rows[m.cursor], true
}
