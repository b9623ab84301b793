package gnc

import "math/rand"

// Standard deviations of the additive Gaussian noise per sensor channel.
const (
	sigmaAccel       = 1e-4  // m/s^2
	sigmaGyro        = 1e-6  // rad/s
	sigmaStarTracker = 1e-6  // rad
	sigmaRange       = 0.1   // m
	sigmaRelPosition = 0.001 // km
)

// SensorReading is one tick's synthetic measurement set.
//
// The accelerometer channel is noise about zero: the state model has no
// acceleration state, so there is no true value for it to track. The range
// channel is derived from position magnitude and therefore reported in
// meters, unlike the km relative-position channel.
type SensorReading struct {
	IMUAccel    Vec3    // m/s^2
	IMUGyro     Vec3    // rad/s
	StarTracker Vec3    // rad
	Range       float64 // m
	RelPosition Vec3    // km
}

// SensorModel synthesizes noisy measurements from the true state. The
// random source is owned by the model and seeded at construction, so two
// models built with the same seed replay identical noise sequences.
type SensorModel struct {
	rng *rand.Rand
}

// NewSensorModel returns a sensor model drawing from a generator seeded
// with seed.
func NewSensorModel(seed int64) *SensorModel {
	return &SensorModel{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws one reading from the current true state. Each call consumes
// thirteen normal variates in a fixed channel order.
func (sm *SensorModel) Sample(s SpacecraftState) SensorReading {
	return SensorReading{
		IMUAccel:    sm.noise3(sigmaAccel),
		IMUGyro:     s.AngularVelocity.Add(sm.noise3(sigmaGyro)),
		StarTracker: s.Attitude.Add(sm.noise3(sigmaStarTracker)),
		Range:       s.Position.Norm()*1000.0 + sm.rng.NormFloat64()*sigmaRange,
		RelPosition: s.Position.Add(sm.noise3(sigmaRelPosition)),
	}
}

func (sm *SensorModel) noise3(sigma float64) Vec3 {
	return Vec3{
		X: sm.rng.NormFloat64() * sigma,
		Y: sm.rng.NormFloat64() * sigma,
		Z: sm.rng.NormFloat64() * sigma,
	}
}
