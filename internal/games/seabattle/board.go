package seabattle

// Square is the state of one square on a board.
type Square int

const (
	SquareEmpty Square = iota
	SquareShip
	SquareHit
	SquareMiss
)

// String returns a human-readable name for the square state.
func (s Square) String() string {
	switch s {
	case SquareEmpty:
		return "Empty"
	case SquareShip:
		return "Ship"
	case SquareHit:
		return "Hit"
	case SquareMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Resolved reports whether the square has already been shot at.
func (s Square) Resolved() bool {
	return s == SquareHit || s == SquareMiss
}

// ShotResult is the outcome of firing at a square.
type ShotResult int

const (
	ShotMiss ShotResult = iota
	ShotHit
	ShotAlreadyResolved
)

// String returns a human-readable name for the shot result.
func (r ShotResult) String() string {
	switch r {
	case ShotMiss:
		return "Miss"
	case ShotHit:
		return "Hit"
	case ShotAlreadyResolved:
		return "AlreadyResolved"
	default:
		return "Unknown"
	}
}

// Board is one side's grid. The zero value is an empty board.
//
// Hit and Miss are terminal: once a square is resolved it never changes.
// Win detection counts hits landed against ShipQuota, so a Hit square does
// not need to remember that it used to be a ship.
type Board struct {
	squares [BoardSize][BoardSize]Square
	ships   int // ships placed
	hits    int // ships hit
}

// NewBoard returns a board with all squares empty.
func NewBoard() *Board {
	return &Board{}
}

// Square returns the state at c. Out-of-range coordinates read as empty.
func (b *Board) Square(c Coord) Square {
	if !c.inBounds() {
		return SquareEmpty
	}
	return b.squares[c.Row][c.Col]
}

// PlaceShip marks c as a ship. The quota is the caller's concern;
// placing on a non-empty square is ignored.
func (b *Board) PlaceShip(c Coord) {
	if !c.inBounds() || b.squares[c.Row][c.Col] != SquareEmpty {
		return
	}
	b.squares[c.Row][c.Col] = SquareShip
	b.ships++
}

// ResolveShot fires at c. Repeat shots report ShotAlreadyResolved and
// leave the board unchanged.
func (b *Board) ResolveShot(c Coord) ShotResult {
	if !c.inBounds() {
		return ShotAlreadyResolved
	}
	switch b.squares[c.Row][c.Col] {
	case SquareShip:
		b.squares[c.Row][c.Col] = SquareHit
		b.hits++
		return ShotHit
	case SquareEmpty:
		b.squares[c.Row][c.Col] = SquareMiss
		return ShotMiss
	default:
		return ShotAlreadyResolved
	}
}

// Ships returns the number of ships placed.
func (b *Board) Ships() int {
	return b.ships
}

// Hits returns the number of ships hit.
func (b *Board) Hits() int {
	return b.hits
}

// RemainingShips returns the number of squares still in the Ship state.
func (b *Board) RemainingShips() int {
	return b.ships - b.hits
}

// AllSunk reports whether every ship of the full quota has been hit.
func (b *Board) AllSunk() bool {
	return b.hits >= ShipQuota
}

// Unresolved returns the squares that have not been shot at, row-major.
func (b *Board) Unresolved() []Coord {
	var coords []Coord
	for _, c := range AllCoords() {
		if !b.Square(c).Resolved() {
			coords = append(coords, c)
		}
	}
	return coords
}
