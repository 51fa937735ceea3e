// Package seabattle implements a 4x4 human-vs-bot sea battle driven by
// decoded click events. It holds pure game logic: the platform supplies
// events and a Display and decides what to do when a match finishes.
package seabattle

import "strings"

// BoardSize is the number of rows and columns on a board.
const BoardSize = 4

// ShipQuota is the number of single-square ships each side places.
const ShipQuota = 4

const (
	rowLabels = "ABCD"
	colLabels = "1234"
)

// Coord addresses one square. Row 0 is "A", Col 0 is "1".
type Coord struct {
	Row, Col int
}

// ParseCoord converts a two-character label such as "C3" to a Coord.
// The letter must come first and both characters are case-sensitive.
func ParseCoord(s string) (Coord, bool) {
	if len(s) != 2 {
		return Coord{}, false
	}
	row := strings.IndexByte(rowLabels, s[0])
	col := strings.IndexByte(colLabels, s[1])
	if row < 0 || col < 0 {
		return Coord{}, false
	}
	return Coord{Row: row, Col: col}, true
}

// IsValidCoord reports whether s names one of the 16 squares.
func IsValidCoord(s string) bool {
	_, ok := ParseCoord(s)
	return ok
}

// MustCoord is ParseCoord for literals. It panics on a bad label.
func MustCoord(s string) Coord {
	c, ok := ParseCoord(s)
	if !ok {
		panic("seabattle: bad coordinate " + s)
	}
	return c
}

// String returns the label, e.g. "A1".
func (c Coord) String() string {
	if !c.inBounds() {
		return "??"
	}
	return string([]byte{rowLabels[c.Row], colLabels[c.Col]})
}

func (c Coord) inBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// AllCoords returns every square in row-major order.
func AllCoords() []Coord {
	coords := make([]Coord, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			coords = append(coords, Coord{Row: row, Col: col})
		}
	}
	return coords
}
