package policy

import "github.com/san-kum/cartpole/internal/cartpole"

// PD is a proportional-derivative reflex on the pole angle reduced to
// bang-bang control: the sign of the PD output selects the push direction,
// so the cart always moves under the falling pole.
type PD struct {
	Kp float64
	Kd float64
}

func NewPD(kp, kd float64) *PD {
	return &PD{Kp: kp, Kd: kd}
}

func (p *PD) Act(s cartpole.State, t float64) cartpole.Action {
	u := p.Kp*s.Theta + p.Kd*s.ThetaDot
	if u > 0 {
		return cartpole.Right
	}
	return cartpole.Left
}
