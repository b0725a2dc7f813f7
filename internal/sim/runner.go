// Package sim drives cart-pole episodes. The core physics is stateless; a
// Runner owns the step loop, threads one episode's states sequentially and
// records the trajectory for callers.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Policy chooses the force direction for the current state. t is the
// simulated time in seconds.
type Policy interface {
	Act(s cartpole.State, t float64) cartpole.Action
}

// Observer receives every pre-step state and the action taken from it.
type Observer interface {
	OnStep(s cartpole.State, a cartpole.Action, t float64)
}

// Episode is a completed (or stopped) run. States holds the start state plus
// one entry per step; Actions and Times are parallel to the steps taken.
type Episode struct {
	States  []cartpole.State
	Actions []cartpole.Action
	Times   []float64
	Outcome cartpole.Outcome
	Steps   int
}

// Final returns the last recorded state.
func (e *Episode) Final() cartpole.State {
	return e.States[len(e.States)-1]
}

type Runner struct {
	params    cartpole.Params
	policy    Policy
	observers []Observer
}

func New(params cartpole.Params, policy Policy) *Runner {
	return &Runner{params: params, policy: policy}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps from start until the episode terminates. Canceling the context
// marks the episode manual_stop and returns the partial trajectory together
// with the context's error.
func (r *Runner) Run(ctx context.Context, start cartpole.State) (*Episode, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	ep := &Episode{
		States:  make([]cartpole.State, 0, r.params.MaxSteps+1),
		Actions: make([]cartpole.Action, 0, r.params.MaxSteps),
		Times:   make([]float64, 0, r.params.MaxSteps+1),
	}

	s := start
	t := 0.0
	ep.States = append(ep.States, s)
	ep.Times = append(ep.Times, t)

	for !s.Done {
		select {
		case <-ctx.Done():
			s.Done = true
			s.Outcome = cartpole.ManualStop
			ep.States[len(ep.States)-1] = s
			ep.Outcome = s.Outcome
			ep.Steps = s.Steps
			return ep, ctx.Err()
		default:
		}

		a := r.policy.Act(s, t)
		for _, obs := range r.observers {
			obs.OnStep(s, a, t)
		}

		s = cartpole.Step(s, a, r.params)
		t += r.params.Tau

		ep.States = append(ep.States, s)
		ep.Actions = append(ep.Actions, a)
		ep.Times = append(ep.Times, t)
	}

	ep.Outcome = s.Outcome
	ep.Steps = s.Steps
	return ep, nil
}

// RunWithCallback steps from start, invoking fn before each step with the
// current state and chosen action. fn returning false stops the episode as
// manual_stop. The final state is returned either way.
func (r *Runner) RunWithCallback(ctx context.Context, start cartpole.State, fn func(s cartpole.State, a cartpole.Action, t float64) bool) (cartpole.State, error) {
	if err := r.validate(); err != nil {
		return start, err
	}

	s := start
	t := 0.0

	for !s.Done {
		select {
		case <-ctx.Done():
			s.Done = true
			s.Outcome = cartpole.ManualStop
			return s, ctx.Err()
		default:
		}

		a := r.policy.Act(s, t)
		if !fn(s, a, t) {
			s.Done = true
			s.Outcome = cartpole.ManualStop
			return s, nil
		}

		s = cartpole.Step(s, a, r.params)
		t += r.params.Tau
	}

	return s, nil
}

func (r *Runner) validate() error {
	if r.policy == nil {
		return fmt.Errorf("runner needs a policy")
	}
	if r.params.Tau <= 0 {
		return fmt.Errorf("tau must be positive, got %f", r.params.Tau)
	}
	if r.params.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", r.params.MaxSteps)
	}
	return nil
}
