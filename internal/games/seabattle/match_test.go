package seabattle

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/seabattle/internal/protocol"
)

// recordingDisplay keeps every call the match makes.
type recordingDisplay struct {
	renders    [][]string
	cleans     int
	forwarded  []string
	terminated int
	err        error
}

func (d *recordingDisplay) Render(lines []string) error {
	if d.err != nil {
		return d.err
	}
	d.renders = append(d.renders, lines)
	return nil
}

func (d *recordingDisplay) MarkClean() error {
	d.cleans++
	return nil
}

func (d *recordingDisplay) ForwardRawEvent(s string) error {
	d.forwarded = append(d.forwarded, s)
	return nil
}

func (d *recordingDisplay) RequestTerminate() error {
	d.terminated++
	return nil
}

func (d *recordingDisplay) last() string {
	if len(d.renders) == 0 {
		return ""
	}
	return strings.Join(d.renders[len(d.renders)-1], "\n")
}

// newTestMatch returns a match whose bot ships sit at botShips and whose
// bot always fires at unresolved square number k (mod the count).
func newTestMatch(t *testing.T, k int64, botShips ...string) (*Match, *recordingDisplay) {
	t.Helper()
	d := &recordingDisplay{}
	m := NewMatch(d, constBot(k), DefaultLayout())
	m.enemy = NewBoard()
	for _, s := range botShips {
		m.enemy.PlaceShip(MustCoord(s))
	}
	return m, d
}

func click(t *testing.T, m *Match, text string) {
	t.Helper()
	line := fmt.Sprintf("event M L 10 11 0 0 0 1 %s '' ''\n", text)
	if err := m.Handle(protocol.Decode([]byte(line))); err != nil {
		t.Fatalf("Handle(%q) failed: %v", text, err)
	}
}

func clickCoord(t *testing.T, m *Match, coord string) {
	t.Helper()
	click(t, m, coord[:1])
	click(t, m, coord[1:])
}

func TestMatchStartRendersPlacement(t *testing.T) {
	m, d := newTestMatch(t, 0, "B1", "B3", "C2", "D1")
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if m.Phase() != PhasePlacement {
		t.Errorf("Phase() = %v, expected Placement", m.Phase())
	}
	if len(d.renders) != 1 || d.cleans != 1 {
		t.Errorf("expected one render and one clean, got %d and %d", len(d.renders), d.cleans)
	}
	if !strings.Contains(d.last(), "4 left") {
		t.Errorf("placement prompt missing from:\n%s", d.last())
	}
	if strings.ContainsRune(d.last(), '#') {
		t.Errorf("bot ships should be hidden:\n%s", d.last())
	}
}

func TestMatchPlacementQuota(t *testing.T) {
	m, d := newTestMatch(t, 1, "B1", "B3", "C2", "D1")

	for i, coord := range []string{"A1", "B2", "C3"} {
		clickCoord(t, m, coord)
		if m.PlayerBoard().Ships() != i+1 {
			t.Fatalf("after %s: Ships() = %d, expected %d", coord, m.PlayerBoard().Ships(), i+1)
		}
		if m.Phase() != PhasePlacement {
			t.Fatalf("after %s: Phase() = %v, expected Placement", coord, m.Phase())
		}
	}

	// Re-selecting an occupied square changes nothing.
	renders := len(d.renders)
	clickCoord(t, m, "B2")
	if m.PlayerBoard().Ships() != 3 || len(d.renders) != renders {
		t.Errorf("duplicate placement mutated the match")
	}

	clickCoord(t, m, "D4")
	if m.Phase() != PhaseShooting {
		t.Fatalf("Phase() = %v, expected Shooting after 4 ships", m.Phase())
	}

	// A fifth coordinate is a shot now, never a fifth ship.
	clickCoord(t, m, "B1")
	if m.PlayerBoard().Ships() != ShipQuota {
		t.Errorf("Ships() = %d, expected %d", m.PlayerBoard().Ships(), ShipQuota)
	}
	if m.BotBoard().Square(MustCoord("B1")) != SquareHit {
		t.Errorf("B1 on the bot board should be hit")
	}
}

func TestMatchIgnoresNoise(t *testing.T) {
	m, d := newTestMatch(t, 0, "B1", "B3", "C2", "D1")

	events := []string{
		"garbage",
		"event K I 1 2 0 0 0 1 A '' ''",
		"event M L 1 2 0 0 0 2 A1 '' ''",
		"event M L 1 2 0 0 0 1 E '' ''",
		"event M L 1 2 0 0 0 1 5 '' ''",
	}
	for _, line := range events {
		if err := m.Handle(protocol.Decode([]byte(line))); err != nil {
			t.Fatalf("Handle(%q) failed: %v", line, err)
		}
	}

	if len(d.renders) != 0 || m.PlayerBoard().Ships() != 0 {
		t.Errorf("noise mutated the match: %d renders, %d ships", len(d.renders), m.PlayerBoard().Ships())
	}
	if m.Window() != "E5" {
		t.Errorf("Window() = %q, expected E5", m.Window())
	}
}

func TestMatchForwardsCommands(t *testing.T) {
	m, d := newTestMatch(t, 0, "B1", "B3", "C2", "D1")

	for _, line := range []string{
		"event M x 30 33 0 0 0 3 Del '' ''",
		"event M X 4 9 0 0 0 5 Snarf '' ''",
	} {
		if err := m.Handle(protocol.Decode([]byte(line))); err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
	}

	expected := []string{"Mx30 33", "MX4 9"}
	if len(d.forwarded) != len(expected) {
		t.Fatalf("forwarded %v, expected %v", d.forwarded, expected)
	}
	for i := range expected {
		if d.forwarded[i] != expected[i] {
			t.Errorf("forwarded[%d] = %q, expected %q", i, d.forwarded[i], expected[i])
		}
	}
	if len(d.renders) != 0 {
		t.Error("commands should not render")
	}
}

func TestMatchHitKeepsTurn(t *testing.T) {
	m, d := newTestMatch(t, 0, "C3", "A4", "B4", "D2")
	for _, coord := range []string{"A1", "B2", "C4", "D4"} {
		clickCoord(t, m, coord)
	}
	renders := len(d.renders)

	clickCoord(t, m, "C3")

	if m.BotBoard().Square(MustCoord("C3")) != SquareHit {
		t.Error("C3 should be hit")
	}
	if m.Phase() != PhaseShooting {
		t.Errorf("Phase() = %v, expected Shooting", m.Phase())
	}
	if m.Summary().BotShots != 0 {
		t.Errorf("bot fired %d shots after a human hit", m.Summary().BotShots)
	}
	if len(d.renders) != renders+1 {
		t.Errorf("a hit should render once")
	}
}

func TestMatchRepeatShotIsNoop(t *testing.T) {
	m, d := newTestMatch(t, 1, "B1", "B3", "C2", "D1")
	for _, coord := range []string{"A1", "B2", "C3", "D4"} {
		clickCoord(t, m, coord)
	}

	clickCoord(t, m, "A2")
	before := m.Summary()
	renders := len(d.renders)

	clickCoord(t, m, "A2")
	if m.Summary() != before {
		t.Errorf("repeat shot changed summary: %+v -> %+v", before, m.Summary())
	}
	if len(d.renders) != renders {
		t.Error("repeat shot should not render")
	}
}

func TestMatchHumanWins(t *testing.T) {
	m, d := newTestMatch(t, 1, "B1", "B3", "C2", "D1")

	for _, coord := range []string{"A1", "B2", "C3", "D4"} {
		clickCoord(t, m, coord)
	}
	if m.Phase() != PhaseShooting {
		t.Fatalf("Phase() = %v, expected Shooting", m.Phase())
	}

	// Miss: the bot fires once at A2, which is water, and the turn returns.
	clickCoord(t, m, "A1")
	if m.BotBoard().Square(MustCoord("A1")) != SquareMiss {
		t.Fatal("A1 on the bot board should be a miss")
	}
	if s := m.Summary(); s.BotShots != 1 || s.BotHits != 0 {
		t.Fatalf("bot took %d shots with %d hits, expected 1 and 0", s.BotShots, s.BotHits)
	}
	if m.PlayerBoard().Square(MustCoord("A2")) != SquareMiss {
		t.Error("bot should have missed at A2")
	}

	for i, coord := range []string{"B1", "B3", "C2", "D1"} {
		clickCoord(t, m, coord)
		if i < 3 && m.Finished() {
			t.Fatalf("match finished early after %s", coord)
		}
	}

	if !m.Finished() || m.Outcome() != OutcomeHumanWon {
		t.Fatalf("Phase() = %v, Outcome() = %v; expected Finished/human", m.Phase(), m.Outcome())
	}
	if d.terminated != 1 {
		t.Errorf("RequestTerminate called %d times, expected 1", d.terminated)
	}
	if !strings.Contains(d.last(), "You won!") {
		t.Errorf("final render missing outcome:\n%s", d.last())
	}

	expected := Summary{Outcome: OutcomeHumanWon, HumanShots: 5, HumanHits: 4, BotShots: 1}
	if m.Summary() != expected {
		t.Errorf("Summary() = %+v, expected %+v", m.Summary(), expected)
	}

	// The engine is inert now.
	renders := len(d.renders)
	clickCoord(t, m, "A3")
	if err := m.Handle(protocol.Decode([]byte("event M x 0 3 0 0 0 3 Del '' ''"))); err != nil {
		t.Fatal(err)
	}
	if len(d.renders) != renders || len(d.forwarded) != 0 {
		t.Error("finished match should ignore events")
	}
	if m.BotBoard().Square(MustCoord("A3")) != SquareEmpty {
		t.Error("finished match should not resolve shots")
	}
}

func TestMatchBotWinsOnStreak(t *testing.T) {
	// The bot always fires at the first unresolved square, so it sinks a
	// top row fleet in one streak.
	m, d := newTestMatch(t, 0, "B1", "B3", "C2", "D1")
	for _, coord := range []string{"A1", "A2", "A3", "A4"} {
		clickCoord(t, m, coord)
	}

	clickCoord(t, m, "D4")

	if m.Outcome() != OutcomeBotWon {
		t.Fatalf("Outcome() = %v, expected bot", m.Outcome())
	}
	if s := m.Summary(); s.BotShots != 4 || s.BotHits != 4 {
		t.Errorf("bot took %d shots with %d hits, expected 4 and 4", s.BotShots, s.BotHits)
	}
	// No shot after the winning one.
	if m.PlayerBoard().Square(MustCoord("B1")) != SquareEmpty {
		t.Error("bot kept firing after winning")
	}
	final := d.last()
	if !strings.Contains(final, "The bot won.") {
		t.Errorf("final render missing outcome:\n%s", final)
	}
	if !strings.Contains(final, "#") {
		t.Errorf("final render should reveal the bot's ships:\n%s", final)
	}
	if d.terminated != 1 {
		t.Errorf("RequestTerminate called %d times, expected 1", d.terminated)
	}
}

func TestMatchBotTurnEndsOnMiss(t *testing.T) {
	m, _ := newTestMatch(t, 0, "B1", "B3", "C2", "D1")
	for _, coord := range []string{"A1", "B2", "C3", "D4"} {
		clickCoord(t, m, coord)
	}

	// Bot fires A1 (hit) then A2 (miss).
	clickCoord(t, m, "A3")
	s := m.Summary()
	if s.BotShots != 2 || s.BotHits != 1 {
		t.Errorf("bot took %d shots with %d hits, expected 2 and 1", s.BotShots, s.BotHits)
	}
	if m.Phase() != PhaseShooting {
		t.Errorf("Phase() = %v, expected Shooting", m.Phase())
	}
}

func TestMatchDisplayError(t *testing.T) {
	m, d := newTestMatch(t, 0, "B1", "B3", "C2", "D1")
	d.err = errors.New("window gone")

	click(t, m, "A")
	err := m.Handle(protocol.Decode([]byte("event M L 1 2 0 0 0 1 1 '' ''")))
	if !errors.Is(err, d.err) {
		t.Errorf("Handle() error = %v, expected to wrap %v", err, d.err)
	}
}

func TestRenderBoardsLayout(t *testing.T) {
	player := NewBoard()
	player.PlaceShip(MustCoord("A1"))
	bot := NewBoard()
	bot.PlaceShip(MustCoord("B2"))
	bot.PlaceShip(MustCoord("C3"))
	bot.ResolveShot(MustCoord("C3"))
	bot.ResolveShot(MustCoord("D4"))

	lines := RenderBoards(player, bot, false, "status", DefaultLayout())
	expected := []string{
		"  Bot          You",
		"  1 2 3 4      1 2 3 4",
		"A . . . .    A # . . .",
		"B . . . .    B . . . .",
		"C . . X .    C . . . .",
		"D . . . o    D . . . .",
		"",
		"status",
	}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d:\n%s", len(lines), len(expected), strings.Join(lines, "\n"))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}

	revealed := RenderBoards(player, bot, true, "", DefaultLayout())
	if revealed[3] != "B . # . .    B . . . ." {
		t.Errorf("revealed line = %q", revealed[3])
	}
}

// acme expands a plain click to the surrounding word, so every label must
// be a word of its own.
func TestRenderBoardsLabelsAreSeparateWords(t *testing.T) {
	lines := RenderBoards(NewBoard(), NewBoard(), false, "", DefaultLayout())

	header := strings.Fields(lines[gridTop])
	if strings.Join(header, ",") != "1,2,3,4,1,2,3,4" {
		t.Errorf("column header words = %q", header)
	}
	for row := range BoardSize {
		words := strings.Fields(lines[FirstRowLine+row])
		label := string(rowLabels[row])
		if len(words) != 2*(BoardSize+1) || words[0] != label || words[BoardSize+1] != label {
			t.Errorf("row %s words = %q", label, words)
		}
	}
}
