package seabattle

import "math/rand"

// Bot is the computer opponent. It places and fires uniformly at random
// and keeps no memory between calls.
type Bot struct {
	rng *rand.Rand
}

// NewBot creates a bot drawing from rng.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng}
}

// NewSeededBot creates a bot with its own source seeded by seed.
func NewSeededBot(seed int64) *Bot {
	return NewBot(rand.New(rand.NewSource(seed)))
}

// PlaceShips puts ShipQuota ships on distinct random squares of a fresh board.
func (bot *Bot) PlaceShips(b *Board) {
	all := AllCoords()
	for _, i := range bot.rng.Perm(len(all))[:ShipQuota] {
		b.PlaceShip(all[i])
	}
}

// ChooseShot picks a random square of b that has not been shot at.
// With correct bookkeeping the game ends before the board runs out of
// targets, so an empty choice is a programming error.
func (bot *Bot) ChooseShot(b *Board) Coord {
	targets := b.Unresolved()
	if len(targets) == 0 {
		panic("seabattle: bot has no legal target")
	}
	return targets[bot.rng.Intn(len(targets))]
}
