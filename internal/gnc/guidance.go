package gnc

// Scenario identifies a mission profile. Identifiers outside the defined
// set are legal: guidance degrades to an all-zero desired state and the
// evaluator reports success unconditionally, so a run with an unknown
// scenario still completes.
type Scenario string

const (
	// ScenarioRendezvous closes on a hold point 20 km down-range of the
	// target and station-keeps there.
	ScenarioRendezvous Scenario = "RDV"

	// ScenarioTouchAndGo descends to the surface at 10 cm/s for a brief
	// contact.
	ScenarioTouchAndGo Scenario = "TAG"
)

// Scenarios lists the defined scenario identifiers in display order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioRendezvous, ScenarioTouchAndGo}
}

// Known reports whether sc is one of the defined scenarios.
func (sc Scenario) Known() bool {
	switch sc {
	case ScenarioRendezvous, ScenarioTouchAndGo:
		return true
	}
	return false
}

var (
	rendezvousHold = Vec3{X: 20.0}    // km
	touchdownRate  = Vec3{Z: -0.0001} // km/s, 10 cm/s descent
)

// ComputeGuidance maps the estimate and scenario onto a desired state.
// Both defined profiles use fixed references, so the estimate is unused for
// now; it stays in the signature so a trajectory-shaping law can replace
// the fixed references without touching callers.
func ComputeGuidance(est EstimatedState, sc Scenario) DesiredState {
	switch sc {
	case ScenarioRendezvous:
		return DesiredState{Position: rendezvousHold}
	case ScenarioTouchAndGo:
		return DesiredState{Velocity: touchdownRate}
	default:
		return DesiredState{}
	}
}
