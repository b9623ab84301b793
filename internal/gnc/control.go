package gnc

// ActuatorCommand carries one tick's thrust and torque demands. Thrust is a
// direct translational acceleration in km/s^2; torque is an angular
// acceleration in rad/s^2 under the unit-inertia model.
type ActuatorCommand struct {
	Thrust Vec3
	Torque Vec3
}

// Default PD gains. Position control sits near critical damping for the
// slow approach dynamics; attitude control is stiffer.
const (
	DefaultKpPos = 0.01
	DefaultKdPos = 0.1
	DefaultKpAtt = 0.1
	DefaultKdAtt = 0.05
)

// ControlLaw is a proportional-derivative law on the position/velocity and
// attitude/rate error pairs. Commands are unbounded; actuator saturation is
// out of scope for this model.
type ControlLaw struct {
	KpPos float64
	KdPos float64
	KpAtt float64
	KdAtt float64
}

// NewControlLaw returns a control law with the default gains.
func NewControlLaw() *ControlLaw {
	return &ControlLaw{
		KpPos: DefaultKpPos,
		KdPos: DefaultKdPos,
		KpAtt: DefaultKpAtt,
		KdAtt: DefaultKdAtt,
	}
}

// Compute derives the actuator command from the estimated and desired
// states. Errors are desired minus estimated, so the command always pushes
// the vehicle toward the reference.
func (c *ControlLaw) Compute(est EstimatedState, desired DesiredState) ActuatorCommand {
	posErr := desired.Position.Sub(est.Position)
	velErr := desired.Velocity.Sub(est.Velocity)
	attErr := desired.Attitude.Sub(est.Attitude)
	rateErr := desired.AngularVelocity.Sub(est.AngularVelocity)

	return ActuatorCommand{
		Thrust: posErr.Scale(c.KpPos).Add(velErr.Scale(c.KdPos)),
		Torque: attErr.Scale(c.KpAtt).Add(rateErr.Scale(c.KdAtt)),
	}
}
