package gnc

import "fmt"

// Scenario abort thresholds.
const (
	rendezvousAbortKm  = 10.0 // position error above this fails RDV
	touchAndGoAltKm    = 0.1  // altitude above this past the grace window fails TAG
	touchAndGoGraceSec = 50.0
)

// CheckCriteria evaluates the scenario success criteria against the true
// state at simulation time t. It is purely observational: a false result
// carries a human-readable reason for the log, and the caller decides
// nothing on it; the run always continues.
//
// Rendezvous fails when the distance to the hold point exceeds the abort
// threshold; exactly at the threshold still passes. Touch-and-go fails when
// the vehicle is still above the contact altitude after the descent grace
// window. Unknown scenarios always pass.
func CheckCriteria(s SpacecraftState, t float64, sc Scenario) (bool, string) {
	switch sc {
	case ScenarioRendezvous:
		posErr := s.Position.Sub(rendezvousHold).Norm()
		if posErr > rendezvousAbortKm {
			return false, fmt.Sprintf("position error %.2f km exceeds %.1f km abort threshold", posErr, rendezvousAbortKm)
		}
	case ScenarioTouchAndGo:
		alt := s.Position.Norm()
		if alt > touchAndGoAltKm && t > touchAndGoGraceSec {
			return false, fmt.Sprintf("altitude %.4f km at t=%.1fs, descent behind profile", alt, t)
		}
	}
	return true, ""
}
