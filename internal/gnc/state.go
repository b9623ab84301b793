package gnc

import "math"

// SpacecraftState is the true vehicle state in the target-relative frame.
// Position is in km, velocity in km/s, attitude as roll/pitch/yaw Euler
// angles in rad with each component kept in (-pi, pi], and angular velocity
// in rad/s.
type SpacecraftState struct {
	Position        Vec3
	Velocity        Vec3
	Attitude        Vec3
	AngularVelocity Vec3
}

// IsFinite reports whether every component of the state is finite.
func (s SpacecraftState) IsFinite() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite() &&
		s.Attitude.IsFinite() && s.AngularVelocity.IsFinite()
}

// EstimatedState is a navigation solution. It has the same shape as the true
// state but a distinct type, so an estimate cannot be passed where truth is
// required without an explicit conversion.
type EstimatedState SpacecraftState

// DesiredState is a guidance reference, again shape-identical to the true
// state but distinct in type.
type DesiredState SpacecraftState

// initialState holds the fixed initial conditions applied on every Reset:
// 2500 km down-range with a slow closing drift, level attitude, no rotation.
var initialState = SpacecraftState{
	Position: Vec3{X: 2500.0, Y: 200.0, Z: -50.0},
	Velocity: Vec3{X: 0.1, Y: -0.05, Z: 0.02},
}

// StateModel owns the true spacecraft state and simulation time. It is the
// only component that mutates truth; within a tick, ApplyCommand runs before
// Integrate.
type StateModel struct {
	State SpacecraftState
	Time  float64
}

// NewStateModel returns a state model already reset to the initial
// conditions.
func NewStateModel() *StateModel {
	m := &StateModel{}
	m.Reset()
	return m
}

// Reset restores the fixed initial conditions and rewinds time to zero.
func (m *StateModel) Reset() {
	m.State = initialState
	m.Time = 0
}

// ApplyCommand folds thrust and torque into the velocity states as direct
// increments over dt. The vehicle is modeled with unit mass and unit
// inertia, and the actuators impose no saturation.
func (m *StateModel) ApplyCommand(cmd ActuatorCommand, dt float64) {
	m.State.Velocity = m.State.Velocity.Add(cmd.Thrust.Scale(dt))
	m.State.AngularVelocity = m.State.AngularVelocity.Add(cmd.Torque.Scale(dt))
}

// Integrate advances position and attitude one explicit Euler step and
// rewraps each attitude angle into (-pi, pi].
func (m *StateModel) Integrate(dt float64) {
	m.State.Position = m.State.Position.Add(m.State.Velocity.Scale(dt))
	a := m.State.Attitude.Add(m.State.AngularVelocity.Scale(dt))
	m.State.Attitude = Vec3{X: WrapAngle(a.X), Y: WrapAngle(a.Y), Z: WrapAngle(a.Z)}
	m.Time += dt
}

// WrapAngle maps an angle in radians onto (-pi, pi].
func WrapAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
