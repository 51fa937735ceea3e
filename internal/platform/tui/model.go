// Package tui provides the Bubble Tea front-end for sea battle, both for
// a local terminal and for SSH sessions via Wish.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/games/seabattle"
	"github.com/vovakirdan/seabattle/internal/protocol"
	"github.com/vovakirdan/seabattle/internal/storage"
)

// Options configures a Model.
type Options struct {
	Layout   seabattle.Layout
	Store    *storage.Store // nil disables saving results
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
	Frontend string // recorded with saved results
}

// Model is the Bubble Tea model for one player's matches against the bot.
// Key presses become selection events fed to the match, exactly as clicks
// in an acme window would.
type Model struct {
	match   *seabattle.Match
	buf     *Buffer
	layout  seabattle.Layout
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	front   string
	started time.Time
	saved   bool
	matchID string

	keys     KeyMap
	help     help.Model
	err      error
	quitting bool
}

// NewModel creates a model with a fresh match.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Frontend == "" {
		opts.Frontend = "tui"
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	m := Model{
		layout: opts.Layout,
		store:  opts.Store,
		logger: opts.Logger,
		config: opts.Runtime,
		front:  opts.Frontend,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = opts.Runtime.ScreenW
	m.newMatch()
	return m
}

func (m *Model) newMatch() {
	m.buf = &Buffer{}
	m.match = seabattle.NewMatch(m.buf, seabattle.NewSeededBot(m.config.Seed), m.layout)
	m.started = time.Now()
	m.saved = false
	m.matchID = ""
	m.err = m.match.Start()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.match.Finished() {
			m.config.Seed = time.Now().UnixNano()
			m.newMatch()
		}
		return m, nil
	}

	text, ok := m.keys.ClickText(msg)
	if !ok {
		return m, nil
	}
	if err := m.click(text); err != nil {
		m.err = err
		m.logger.Error("match display failed", "error", err)
	}
	return m, nil
}

// click feeds text to the match as a selection event line.
func (m *Model) click(text string) error {
	line := protocol.Encode(protocol.Selection(text))
	if err := m.match.Handle(protocol.Decode([]byte(line))); err != nil {
		return err
	}
	if m.match.Finished() && !m.saved {
		m.saveResult()
	}
	return nil
}

// saveResult records the finished match once.
func (m *Model) saveResult() {
	m.saved = true
	sum := m.match.Summary()
	m.logger.Info("match finished",
		"outcome", sum.Outcome,
		"human_shots", sum.HumanShots,
		"bot_shots", sum.BotShots,
	)
	if m.store == nil {
		return
	}
	id, err := m.store.SaveSummary(sum, m.front, m.config.Seed, time.Since(m.started))
	if err != nil {
		m.logger.Warn("could not save match result", "error", err)
		return
	}
	m.matchID = id
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SEA BATTLE"))
	b.WriteString("\n\n")

	b.WriteString(RenderBoard(m.buf.Lines(), m.layout.Glyphs))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.match.Finished() {
		b.WriteString(dim.Render("Press r for a new match."))
	} else {
		b.WriteString(dim.Render(fmt.Sprintf("Clicks: %-2s", m.match.Window())))
	}
	b.WriteString("\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))

	// Center in the terminal once its size is known
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, b.String())
}

// Match returns the current match.
func (m Model) Match() *seabattle.Match {
	return m.match
}

// MatchID returns the stored ID of the finished match, if it was saved.
func (m Model) MatchID() string {
	return m.matchID
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
