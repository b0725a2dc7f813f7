// Package analysis summarizes batches of cart-pole episodes.
package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

// Summary aggregates survival statistics over a batch of episodes.
type Summary struct {
	Episodes   int
	MeanSteps  float64
	StdDev     float64
	MinSteps   int
	MaxSteps   int
	MeanFinalX float64
	Outcomes   map[cartpole.Outcome]int
}

// Rate returns the fraction of episodes ending with the given outcome.
func (s Summary) Rate(o cartpole.Outcome) float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Outcomes[o]) / float64(s.Episodes)
}

// Summarize computes batch statistics. A nil or empty batch yields a zero
// Summary.
func Summarize(episodes []*sim.Episode) Summary {
	if len(episodes) == 0 {
		return Summary{Outcomes: map[cartpole.Outcome]int{}}
	}

	steps := make([]float64, len(episodes))
	finalX := make([]float64, len(episodes))
	outcomes := make(map[cartpole.Outcome]int)

	for i, ep := range episodes {
		steps[i] = float64(ep.Steps)
		finalX[i] = ep.Final().X
		outcomes[ep.Outcome]++
	}

	s := Summary{
		Episodes:   len(episodes),
		MeanSteps:  stat.Mean(steps, nil),
		MinSteps:   int(floats.Min(steps)),
		MaxSteps:   int(floats.Max(steps)),
		MeanFinalX: stat.Mean(finalX, nil),
		Outcomes:   outcomes,
	}
	if len(episodes) > 1 {
		s.StdDev = stat.StdDev(steps, nil)
	}
	return s
}
