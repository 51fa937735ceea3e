package seabattle

import (
	"fmt"

	"github.com/vovakirdan/seabattle/internal/protocol"
)

// Phase is the stage a match is in. Phases only move forward.
type Phase int

const (
	PhasePlacement Phase = iota
	PhaseShooting
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "Placement"
	case PhaseShooting:
		return "Shooting"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Outcome says who won a finished match.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHumanWon
	OutcomeBotWon
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeHumanWon:
		return "human"
	case OutcomeBotWon:
		return "bot"
	default:
		return "unknown"
	}
}

// Summary counts resolved shots. Repeat shots at a resolved square are
// not counted.
type Summary struct {
	Outcome    Outcome
	HumanShots int
	HumanHits  int
	BotShots   int
	BotHits    int
}

// Match is one game between the human and the bot. It owns both boards,
// the click accumulator and the phase; nothing else mutates them.
//
// A hit keeps the turn for whoever fired, for the human and the bot alike.
// The win check runs after every single hit, before the same side fires
// again.
type Match struct {
	display Display
	bot     *Bot
	layout  Layout

	player *Board
	enemy  *Board // the bot's board
	acc    Accumulator

	phase   Phase
	summary Summary
}

// NewMatch creates a match in the placement phase. The bot places its
// ships immediately.
func NewMatch(d Display, bot *Bot, layout Layout) *Match {
	m := &Match{
		display: d,
		bot:     bot,
		layout:  layout,
		player:  NewBoard(),
		enemy:   NewBoard(),
		phase:   PhasePlacement,
	}
	bot.PlaceShips(m.enemy)
	return m
}

// Start draws the initial empty boards.
func (m *Match) Start() error {
	return m.render()
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Outcome returns who won, or OutcomeNone while the match is running.
func (m *Match) Outcome() Outcome {
	return m.summary.Outcome
}

// Finished reports whether the match has ended.
func (m *Match) Finished() bool {
	return m.phase == PhaseFinished
}

// Summary returns shot statistics so far.
func (m *Match) Summary() Summary {
	return m.summary
}

// PlayerBoard returns the human's board. Callers must not mutate it.
func (m *Match) PlayerBoard() *Board {
	return m.player
}

// BotBoard returns the bot's board. Callers must not mutate it.
func (m *Match) BotBoard() *Board {
	return m.enemy
}

// Window returns the accumulator's current contents.
func (m *Match) Window() string {
	return m.acc.Window()
}

// Handle processes one decoded event to completion, including any bot
// turn it triggers. Invalid and unrelated events are ignored, and a
// finished match ignores everything. Errors come from the Display only.
func (m *Match) Handle(ev protocol.Event) error {
	if m.phase == PhaseFinished || !ev.Valid {
		return nil
	}

	switch ev.Class {
	case protocol.ClassCommand:
		if err := m.display.ForwardRawEvent(ev.Passthrough()); err != nil {
			return fmt.Errorf("seabattle: forward event: %w", err)
		}
		return nil
	case protocol.ClassSelection:
		return m.handleSelection(ev.Text)
	}
	return nil
}

func (m *Match) handleSelection(text string) error {
	if !m.acc.Offer(text) {
		return nil
	}
	c, ok := m.acc.Coord()
	if !ok {
		return nil
	}

	switch m.phase {
	case PhasePlacement:
		return m.place(c)
	case PhaseShooting:
		return m.shoot(c)
	}
	return nil
}

func (m *Match) place(c Coord) error {
	if m.player.Ships() >= ShipQuota || m.player.Square(c) != SquareEmpty {
		return nil
	}

	m.player.PlaceShip(c)
	if m.player.Ships() == ShipQuota {
		m.phase = PhaseShooting
	}
	return m.render()
}

func (m *Match) shoot(c Coord) error {
	switch m.enemy.ResolveShot(c) {
	case ShotAlreadyResolved:
		return nil

	case ShotHit:
		m.summary.HumanShots++
		m.summary.HumanHits++
		if m.enemy.AllSunk() {
			return m.finish(OutcomeHumanWon)
		}
		return m.render()

	default: // miss, the bot fires until it misses or wins
		m.summary.HumanShots++
		if m.botTurn() {
			return m.finish(OutcomeBotWon)
		}
		return m.render()
	}
}

// botTurn fires at the human's board until a miss. It reports whether the
// bot sank the last ship.
func (m *Match) botTurn() bool {
	for {
		c := m.bot.ChooseShot(m.player)
		result := m.player.ResolveShot(c)
		m.summary.BotShots++
		if result != ShotHit {
			return false
		}
		m.summary.BotHits++
		if m.player.AllSunk() {
			return true
		}
	}
}

func (m *Match) finish(o Outcome) error {
	m.phase = PhaseFinished
	m.summary.Outcome = o

	status := m.layout.Messages.HumanWon
	if o == OutcomeBotWon {
		status = m.layout.Messages.BotWon
	}
	if err := m.draw(true, status); err != nil {
		return err
	}
	if err := m.display.RequestTerminate(); err != nil {
		return fmt.Errorf("seabattle: terminate: %w", err)
	}
	return nil
}

func (m *Match) render() error {
	status := m.layout.Messages.Shooting
	if m.phase == PhasePlacement {
		status = m.layout.Messages.placement(ShipQuota - m.player.Ships())
	}
	return m.draw(false, status)
}

func (m *Match) draw(revealBot bool, status string) error {
	lines := RenderBoards(m.player, m.enemy, revealBot, status, m.layout)
	if err := m.display.Render(lines); err != nil {
		return fmt.Errorf("seabattle: render: %w", err)
	}
	if err := m.display.MarkClean(); err != nil {
		return fmt.Errorf("seabattle: mark clean: %w", err)
	}
	return nil
}
