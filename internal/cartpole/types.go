package cartpole

// Action selects the direction of the applied force. Magnitude is fixed by
// Params.ForceMag; only the sign varies.
type Action int

const (
	Left Action = iota
	Right
)

func (a Action) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// Outcome reports why an episode ended, or Running while it has not.
type Outcome int

const (
	Running Outcome = iota
	PoleFell
	OutOfBounds
	MaxSteps
	ManualStop
)

func (o Outcome) String() string {
	switch o {
	case PoleFell:
		return "pole_fell"
	case OutOfBounds:
		return "out_of_bounds"
	case MaxSteps:
		return "max_steps"
	case ManualStop:
		return "manual_stop"
	default:
		return "running"
	}
}

// State is one instant of an episode. Done is true iff Outcome != Running.
// Steps counts Step invocations since Init.
type State struct {
	X        float64 // cart position (m)
	XDot     float64 // cart velocity (m/s)
	Theta    float64 // pole angle (rad, 0 = upright)
	ThetaDot float64 // pole angular velocity (rad/s)
	Steps    int
	Done     bool
	Outcome  Outcome
}
