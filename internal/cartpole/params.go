package cartpole

// Params holds the physical and episode constants. Immutable per episode.
type Params struct {
	Gravity       float64 // m/s^2
	CartMass      float64 // kg
	PoleMass      float64 // kg
	HalfLength    float64 // distance from pivot to pole center of mass (m)
	ForceMag      float64 // N
	Tau           float64 // integration timestep (s)
	MaxSteps      int
	XLimit        float64 // track half-width (m), symmetric around 0
	ThetaLimitDeg float64 // failure angle (degrees)
}

// DefaultParams returns the standard benchmark constants.
func DefaultParams() Params {
	return Params{
		Gravity:       9.8,
		CartMass:      1.0,
		PoleMass:      0.1,
		HalfLength:    0.5,
		ForceMag:      10.0,
		Tau:           0.02,
		MaxSteps:      500,
		XLimit:        2.4,
		ThetaLimitDeg: 12.0,
	}
}
