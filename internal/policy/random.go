package policy

import (
	"math/rand"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Random flips a seeded coin every step.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Act(s cartpole.State, t float64) cartpole.Action {
	if r.rng.Float64() < 0.5 {
		return cartpole.Left
	}
	return cartpole.Right
}
