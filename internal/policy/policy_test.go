package policy

import (
	"context"
	"testing"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name, 1)
		if err != nil {
			t.Errorf("policy %s: %v", name, err)
		}
		if p == nil {
			t.Errorf("policy %s: nil policy", name)
		}
	}

	if _, err := New("lqr", 1); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestConstant(t *testing.T) {
	c := NewConstant(cartpole.Right)
	s := cartpole.State{Theta: -1.0}
	for i := 0; i < 10; i++ {
		if got := c.Act(s, float64(i)); got != cartpole.Right {
			t.Fatalf("expected right, got %v", got)
		}
	}
}

func TestRandomSeeded(t *testing.T) {
	a := NewRandom(99)
	b := NewRandom(99)
	s := cartpole.State{}
	for i := 0; i < 100; i++ {
		if a.Act(s, 0) != b.Act(s, 0) {
			t.Fatal("same seed produced diverging actions")
		}
	}
}

func TestPDPushesUnderTheLean(t *testing.T) {
	p := NewPD(1.0, 0.25)

	if got := p.Act(cartpole.State{Theta: 0.1}, 0); got != cartpole.Right {
		t.Errorf("leaning right: expected right push, got %v", got)
	}
	if got := p.Act(cartpole.State{Theta: -0.1}, 0); got != cartpole.Left {
		t.Errorf("leaning left: expected left push, got %v", got)
	}
	// Upright but rotating right: act on the derivative term.
	if got := p.Act(cartpole.State{ThetaDot: 0.5}, 0); got != cartpole.Right {
		t.Errorf("rotating right: expected right push, got %v", got)
	}
}

func TestPDSurvivesLongerThanConstant(t *testing.T) {
	params := cartpole.DefaultParams()

	run := func(p sim.Policy) int {
		r := sim.New(params, p)
		ep, err := r.Run(context.Background(), cartpole.State{Theta: 0.02})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return ep.Steps
	}

	pd := run(NewPD(1.0, 0.25))
	left := run(NewConstant(cartpole.Left))

	if pd <= left {
		t.Errorf("pd survived %d steps, constant left %d", pd, left)
	}
}
