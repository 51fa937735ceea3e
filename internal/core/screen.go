// Package core provides small platform-free building blocks shared by the
// game and its front-ends. It has no external dependencies so game logic
// stays pure and testable.
package core

import (
	"strings"
)

// Screen is a 2D character buffer. Games draw into it with simple rune
// operations and hand the resulting lines to whatever displays them.
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.cells = make([][]rune, height)
	for y := range s.cells {
		s.cells[y] = make([]rune, width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// Row returns the specified row with trailing blanks removed.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return strings.TrimRight(string(s.cells[y]), " ")
}

// Lines returns every row as in Row.
func (s *Screen) Lines() []string {
	lines := make([]string, s.height)
	for y := range s.height {
		lines[y] = s.Row(y)
	}
	return lines
}

// String joins Lines with newlines.
func (s *Screen) String() string {
	return strings.Join(s.Lines(), "\n")
}
