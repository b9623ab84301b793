// Package gnc provides the guidance, navigation and control stages of the
// closed simulation loop.
//
// The package defines the fixed-shape state types and one component per
// loop stage:
//
//   - [SpacecraftState]: true vehicle state (position, velocity, attitude, rates)
//   - [StateModel]: owns truth, applies commands and integrates with explicit Euler
//   - [SensorModel]: synthesizes noisy measurements from truth
//   - [EstimateState]: pass-through sensor fusion into an [EstimatedState]
//   - [ComputeGuidance]: scenario-dispatched [DesiredState]
//   - [ControlLaw]: PD thrust and torque commands
//   - [CheckCriteria]: scenario success evaluation against truth
//
// # Example
//
//	model := gnc.NewStateModel()
//	sensors := gnc.NewSensorModel(42)
//	law := gnc.NewControlLaw()
//
//	reading := sensors.Sample(model.State)
//	est := gnc.EstimateState(reading, model.State)
//	desired := gnc.ComputeGuidance(est, gnc.ScenarioRendezvous)
//	cmd := law.Compute(est, desired)
//	model.ApplyCommand(cmd, 0.1)
//	model.Integrate(0.1)
//
// # Determinism
//
// The only stochastic stage is [SensorModel]; its generator is seeded at
// construction, so two runs with the same seed and configuration produce
// identical trajectories.
package gnc
