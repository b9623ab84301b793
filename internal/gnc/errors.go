package gnc

import "errors"

// Domain errors for the simulation loop and its configuration.
var (
	// ErrNonPositiveTimestep indicates a zero or negative integration step.
	ErrNonPositiveTimestep = errors.New("gnc: timestep must be positive")

	// ErrNonPositiveDuration indicates a zero or negative run duration.
	ErrNonPositiveDuration = errors.New("gnc: duration must be positive")

	// ErrNonPositiveInterval indicates a zero or negative evaluation interval.
	ErrNonPositiveInterval = errors.New("gnc: evaluation interval must be positive")

	// ErrUnknownScenario indicates a scenario identifier outside the defined set
	// passed to an operation with no degraded path.
	ErrUnknownScenario = errors.New("gnc: unknown scenario")

	// ErrStateDiverged indicates the true state picked up a NaN or Inf.
	ErrStateDiverged = errors.New("gnc: state diverged (NaN or Inf detected)")
)

// TickError wraps an error with the tick on which it occurred.
type TickError struct {
	Tick    int
	Time    float64
	State   SpacecraftState
	Wrapped error
}

func (e *TickError) Error() string {
	return e.Wrapped.Error()
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
