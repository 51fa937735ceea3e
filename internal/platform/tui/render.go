package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/games/seabattle"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// glyphColors maps each glyph back to the color of its square.
func glyphColors(g seabattle.Glyphs) map[rune]core.Color {
	return map[rune]core.Color{
		g.Empty: g.Color(seabattle.SquareEmpty),
		g.Ship:  g.Color(seabattle.SquareShip),
		g.Hit:   g.Color(seabattle.SquareHit),
		g.Miss:  g.Color(seabattle.SquareMiss),
	}
}

// RenderBoard styles rendered match lines for the terminal. Glyphs on the
// grid rows are colored by square state; everything else is left plain.
// Adjacent cells with the same color share one style run.
func RenderBoard(lines []string, g seabattle.Glyphs) string {
	colors := glyphColors(g)

	var sb strings.Builder
	for y, line := range lines {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if y < seabattle.FirstRowLine || y >= seabattle.FirstRowLine+seabattle.BoardSize {
			sb.WriteString(line)
			continue
		}

		runes := []rune(line)
		x := 0
		for x < len(runes) {
			startColor := colors[runes[x]]

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < len(runes) && colors[runes[x]] == startColor {
				run.WriteRune(runes[x])
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
