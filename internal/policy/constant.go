package policy

import "github.com/san-kum/cartpole/internal/cartpole"

// Constant always pushes the same way. Useful as a baseline and for
// trajectory fixtures.
type Constant struct {
	action cartpole.Action
}

func NewConstant(a cartpole.Action) *Constant {
	return &Constant{action: a}
}

func (c *Constant) Act(s cartpole.State, t float64) cartpole.Action {
	return c.action
}
