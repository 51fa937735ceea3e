package seabattle

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/seabattle/internal/core"
)

// Glyphs are the characters drawn for each square state.
type Glyphs struct {
	Empty rune
	Ship  rune
	Hit   rune
	Miss  rune
}

// For returns the glyph for s. Hidden ships are drawn as empty water.
func (g Glyphs) For(s Square, hideShips bool) rune {
	switch s {
	case SquareShip:
		if hideShips {
			return g.Empty
		}
		return g.Ship
	case SquareHit:
		return g.Hit
	case SquareMiss:
		return g.Miss
	default:
		return g.Empty
	}
}

// Color returns the display color for s.
func (g Glyphs) Color(s Square) core.Color {
	switch s {
	case SquareShip:
		return core.ColorGreen
	case SquareHit:
		return core.ColorRed
	case SquareMiss:
		return core.ColorGray
	default:
		return core.ColorBlue
	}
}

// Messages holds the status lines shown under the boards.
// "{left}" in Placement is replaced by the number of ships still to place.
type Messages struct {
	Placement string
	Shooting  string
	HumanWon  string
	BotWon    string
}

// Layout controls how a match is drawn.
type Layout struct {
	Glyphs   Glyphs
	Messages Messages
}

// DefaultLayout returns the built-in glyphs and messages.
func DefaultLayout() Layout {
	return Layout{
		Glyphs: Glyphs{Empty: '.', Ship: '#', Hit: 'X', Miss: 'o'},
		Messages: Messages{
			Placement: "Place your ships: {left} left. Click a row letter, then a column digit.",
			Shooting:  "Fire at the bot's grid: click a row letter, then a column digit.",
			HumanWon:  "You won!",
			BotWon:    "The bot won.",
		},
	}
}

// Grid placement within the rendered block. Labels and squares sit one
// blank apart so that acme expands a click on a label to that single
// character rather than a whole "1234" word.
const (
	botGridX    = 0
	playerGridX = 13
	gridTop     = 1 // column header row
	statusGap   = 1
	cellStride  = 2
	gridWidth   = 2 + cellStride*(BoardSize-1) + 1
)

// FirstRowLine is the index of row A in the output of RenderBoards. Rows
// B to D follow it.
const FirstRowLine = gridTop + 1

// RenderBoards lays out the bot's grid (the one the human fires at) next to
// the human's grid, followed by a status line. Bot ships stay hidden unless
// revealBot is set.
func RenderBoards(player, bot *Board, revealBot bool, status string, layout Layout) []string {
	width := playerGridX + gridWidth
	if n := utf8.RuneCountInString(status); n > width {
		width = n
	}
	height := FirstRowLine + BoardSize + statusGap + 1

	s := core.NewScreen(width, height)
	drawGrid(s, botGridX, "Bot", bot, !revealBot, layout.Glyphs)
	drawGrid(s, playerGridX, "You", player, false, layout.Glyphs)
	s.DrawText(0, height-1, status)
	return s.Lines()
}

func drawGrid(s *core.Screen, x int, title string, b *Board, hideShips bool, g Glyphs) {
	s.DrawText(x+2, 0, title)
	for col := range BoardSize {
		s.Set(cellX(x, col), gridTop, rune(colLabels[col]))
	}
	for row := range BoardSize {
		y := FirstRowLine + row
		s.Set(x, y, rune(rowLabels[row]))
		for col := range BoardSize {
			s.Set(cellX(x, col), y, g.For(b.Square(Coord{Row: row, Col: col}), hideShips))
		}
	}
}

func cellX(gridX, col int) int {
	return gridX + 2 + col*cellStride
}

func (m Messages) placement(left int) string {
	return strings.ReplaceAll(m.Placement, "{left}", strconv.Itoa(left))
}
