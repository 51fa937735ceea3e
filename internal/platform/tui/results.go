package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/seabattle/internal/storage"
)

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for browsing match history.
type ResultsModel struct {
	records  []storage.MatchRecord
	totals   storage.Totals
	table    table.Model
	help     help.Model
	keys     ResultsKeyMap
	width    int
	height   int
	quitting bool
}

// NewResultsModel creates a results model over already loaded records.
func NewResultsModel(records []storage.MatchRecord, totals storage.Totals, width, height int) ResultsModel {
	m := ResultsModel{
		records: records,
		totals:  totals,
		keys:    DefaultResultsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Winner", Width: 7},
		{Title: "Shots", Width: 6},
		{Title: "Hits", Width: 5},
		{Title: "Bot", Width: 6},
		{Title: "Via", Width: 5},
		{Title: "Time", Width: 6},
	}

	height := m.height - 10 // Leave room for header, totals and help
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the records.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Outcome,
			fmt.Sprintf("%d", r.HumanShots),
			fmt.Sprintf("%d", r.HumanHits),
			fmt.Sprintf("%d/%d", r.BotHits, r.BotShots),
			r.Frontend,
			fmt.Sprintf("%ds", r.Duration),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("MATCH HISTORY"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Played %d  You %d  Bot %d  Avg shots to win %.1f\n\n",
		m.totals.Played, m.totals.HumanWins, m.totals.BotWins, m.totals.AvgShotsToWin))

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No matches recorded yet.\nPlay one to start the history!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunResults loads recent matches from store and shows them.
func RunResults(store *storage.Store, limit, width, height int) error {
	records, err := store.RecentMatches(limit)
	if err != nil {
		return err
	}
	totals, err := store.Totals()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewResultsModel(records, totals, width, height),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
