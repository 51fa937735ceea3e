package seabattle

import "unicode/utf8"

// WindowSize is the number of characters the accumulator remembers.
const WindowSize = 2

// Accumulator collects single-character clicks into a sliding window.
// Coordinates are typed one character at a time (letter, then digit), so
// the window holds the last two accepted characters. It is never reset.
type Accumulator struct {
	window []rune
}

// Offer appends text if it is exactly one character and reports whether
// it was accepted. Rejected text leaves the window unchanged.
func (a *Accumulator) Offer(text string) bool {
	if utf8.RuneCountInString(text) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	a.window = append(a.window, r)
	if len(a.window) > WindowSize {
		a.window = a.window[len(a.window)-WindowSize:]
	}
	return true
}

// Window returns the accepted characters, oldest first.
func (a *Accumulator) Window() string {
	return string(a.window)
}

// Coord returns the coordinate named by the window, if it names one.
func (a *Accumulator) Coord() (Coord, bool) {
	return ParseCoord(a.Window())
}
