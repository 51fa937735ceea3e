package core

// Color represents a foreground color for a rendered glyph.
// Front-ends map it to whatever their terminal or window supports.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorGray
)
