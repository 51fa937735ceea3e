package seabattle

import "testing"

func TestAccumulatorWindow(t *testing.T) {
	tests := []struct {
		name   string
		offers []string
		window string
	}{
		{"letter then digit", []string{"A", "2"}, "A2"},
		{"oldest dropped", []string{"A", "B", "2"}, "B2"},
		{"single", []string{"C"}, "C"},
		{"two-character text rejected", []string{"A", "2", "B3"}, "A2"},
		{"empty text rejected", []string{"D", ""}, "D"},
		{"multibyte rune accepted", []string{"A", "·"}, "A·"},
		{"digit then letter kept as typed", []string{"1", "A"}, "1A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Accumulator
			for _, s := range tc.offers {
				a.Offer(s)
			}
			if a.Window() != tc.window {
				t.Errorf("Window() = %q, expected %q", a.Window(), tc.window)
			}
		})
	}
}

func TestAccumulatorOfferResult(t *testing.T) {
	var a Accumulator
	if !a.Offer("A") {
		t.Error("single character should be accepted")
	}
	if a.Offer("AB") {
		t.Error("two characters should be rejected")
	}
	if a.Offer("") {
		t.Error("empty text should be rejected")
	}
	if a.Window() != "A" {
		t.Errorf("rejected offers changed window to %q", a.Window())
	}
}

func TestAccumulatorCoord(t *testing.T) {
	var a Accumulator
	a.Offer("1")
	a.Offer("A")
	if _, ok := a.Coord(); ok {
		t.Error(`window "1A" should not form a coordinate`)
	}

	a.Offer("1")
	c, ok := a.Coord()
	if !ok || c != MustCoord("A1") {
		t.Errorf("Coord() = %v, %v; expected A1", c, ok)
	}
}
