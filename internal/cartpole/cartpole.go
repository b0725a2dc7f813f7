package cartpole

import (
	"math"
	"math/rand"
)

// initSpread bounds the uniform perturbation applied to every state
// component at episode start.
const initSpread = 0.05

// Init returns a fresh episode state with x, xDot, theta and thetaDot each
// drawn independently and uniformly from [-initSpread, initSpread): near
// upright, near center, near rest. Four draws are consumed from rng.
func Init(rng *rand.Rand) State {
	return State{
		X:        uniform(rng),
		XDot:     uniform(rng),
		Theta:    uniform(rng),
		ThetaDot: uniform(rng),
	}
}

func uniform(rng *rand.Rand) float64 {
	return initSpread * (2*rng.Float64() - 1)
}

// Step advances s by one timestep under action a and returns the next state.
// It never mutates its arguments.
//
// The acceleration pair is the standard Lagrangian derivation for a pole
// hinged on a cart; the 4/3 factor is the pole's moment of inertia about
// its center combined with the half-length convention. Integration is
// explicit Euler: positions advance with the pre-update velocities. That is
// less stable than semi-implicit Euler but kept deliberately, since changing
// it changes every trajectory.
//
// Termination is evaluated against the post-integration values in strict
// priority order: track bounds, then pole angle (strict inequality against
// the threshold), then step budget.
func Step(s State, a Action, p Params) State {
	totalMass := p.CartMass + p.PoleMass
	poleMassLength := p.PoleMass * p.HalfLength

	force := p.ForceMag
	if a == Left {
		force = -p.ForceMag
	}

	sintheta := math.Sin(s.Theta)
	costheta := math.Cos(s.Theta)

	temp := (force + poleMassLength*s.ThetaDot*s.ThetaDot*sintheta) / totalMass
	thetaAcc := (p.Gravity*sintheta - costheta*temp) /
		(p.HalfLength * (4.0/3.0 - p.PoleMass*costheta*costheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*costheta/totalMass

	next := State{
		X:        s.X + p.Tau*s.XDot,
		XDot:     s.XDot + p.Tau*xAcc,
		Theta:    s.Theta + p.Tau*s.ThetaDot,
		ThetaDot: s.ThetaDot + p.Tau*thetaAcc,
		Steps:    s.Steps + 1,
	}

	thetaLimit := p.ThetaLimitDeg * math.Pi / 180
	switch {
	case next.X < -p.XLimit || next.X > p.XLimit:
		next.Done = true
		next.Outcome = OutOfBounds
	case next.Theta < -thetaLimit || next.Theta > thetaLimit:
		next.Done = true
		next.Outcome = PoleFell
	case next.Steps >= p.MaxSteps:
		next.Done = true
		next.Outcome = MaxSteps
	}

	return next
}
