package dice

import (
	"math/rand"
	"time"

	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
)

// randomRoller implements Roller with a locally-owned PRNG, seeded once at
// construction rather than through the package-global source
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a dice roller seeded from the clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a dice roller with a fixed seed, for reproducible
// sessions and tests
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, modifier int) (*RollResult, error) {
	if count < 1 {
		return nil, trackererr.InvalidArgumentf("dice count must be at least 1, got %d", count)
	}
	if sides < 1 {
		return nil, trackererr.InvalidArgumentf("die size must be at least 1, got %d", sides)
	}

	rolls := make([]int, count)
	total := 0
	for i := range rolls {
		roll := r.rng.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	return &RollResult{
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
		Rolls:    rolls,
		Total:    total + modifier,
	}, nil
}
