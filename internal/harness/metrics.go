package harness

// Metric accumulates a scalar over the run from per-tick records. Metrics
// are Reset at run start and harvested into Result.Metrics on completion.
type Metric interface {
	Name() string
	Observe(rec LogRecord)
	Value() float64
	Reset()
}

// ThrustEffort reports the mean commanded thrust magnitude, a proxy for
// propellant use.
type ThrustEffort struct {
	name    string
	sum     float64
	samples int
}

func NewThrustEffort() *ThrustEffort {
	return &ThrustEffort{name: "thrust_effort"}
}

func (t *ThrustEffort) Name() string {
	return t.name
}

func (t *ThrustEffort) Observe(rec LogRecord) {
	t.sum += rec.Thrust
	t.samples++
}

func (t *ThrustEffort) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.sum / float64(t.samples)
}

func (t *ThrustEffort) Reset() {
	t.sum = 0
	t.samples = 0
}

// PeakThrust reports the largest single-tick thrust command.
type PeakThrust struct {
	name string
	max  float64
}

func NewPeakThrust() *PeakThrust {
	return &PeakThrust{name: "peak_thrust"}
}

func (p *PeakThrust) Name() string {
	return p.name
}

func (p *PeakThrust) Observe(rec LogRecord) {
	if rec.Thrust > p.max {
		p.max = rec.Thrust
	}
}

func (p *PeakThrust) Value() float64 {
	return p.max
}

func (p *PeakThrust) Reset() {
	p.max = 0
}

// Convergence reports the fraction of ticks whose position error stayed
// below a threshold.
type Convergence struct {
	name      string
	threshold float64
	inside    int
	samples   int
}

func NewConvergence(threshold float64) *Convergence {
	return &Convergence{
		name:      "convergence",
		threshold: threshold,
	}
}

func (c *Convergence) Name() string {
	return c.name
}

func (c *Convergence) Observe(rec LogRecord) {
	c.samples++
	if rec.PosError < c.threshold {
		c.inside++
	}
}

func (c *Convergence) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Convergence) Reset() {
	c.inside = 0
	c.samples = 0
}
