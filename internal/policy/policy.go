// Package policy provides bang-bang action policies for the cart-pole
// runner. Policies only pick a direction; force magnitude is fixed by the
// physics params.
package policy

import (
	"fmt"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

// Names lists the selectable policies in presentation order.
func Names() []string {
	return []string{"pd", "random", "left", "right"}
}

// New builds a policy by name. seed only matters for "random".
func New(name string, seed int64) (sim.Policy, error) {
	switch name {
	case "pd":
		return NewPD(1.0, 0.25), nil
	case "random":
		return NewRandom(seed), nil
	case "left":
		return NewConstant(cartpole.Left), nil
	case "right":
		return NewConstant(cartpole.Right), nil
	default:
		return nil, fmt.Errorf("unknown policy: %s (available: %v)", name, Names())
	}
}
