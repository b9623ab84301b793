package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
)

// Phase tracks where a harness is in its lifecycle.
type Phase int

const (
	PhaseInitialized Phase = iota
	PhaseRunning
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Config parameterizes one simulation run.
type Config struct {
	Scenario     gnc.Scenario
	Dt           float64 // s
	Duration     float64 // s
	Seed         int64
	EvalInterval int             // ticks between criteria checks
	Law          *gnc.ControlLaw // nil selects the default gains
}

// Validate rejects configurations the loop cannot run with. Scenario is
// deliberately not checked here: unknown identifiers degrade gracefully.
func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w, got %g", gnc.ErrNonPositiveTimestep, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w, got %g", gnc.ErrNonPositiveDuration, c.Duration)
	}
	if c.EvalInterval <= 0 {
		return fmt.Errorf("%w, got %d", gnc.ErrNonPositiveInterval, c.EvalInterval)
	}
	return nil
}

// Warning records one non-fatal criteria violation.
type Warning struct {
	Tick   int
	Time   float64
	Reason string
}

// Result summarizes a completed (or canceled) run.
type Result struct {
	Scenario   gnc.Scenario
	FinalState gnc.SpacecraftState
	Ticks      int
	Elapsed    float64 // simulated seconds
	Records    []LogRecord
	Stats      Stats
	Metrics    map[string]float64
	Warnings   []Warning
}

// Harness wires the loop stages together and drives them tick by tick:
// sense, estimate, guide, control, actuate, integrate, log, and
// periodically evaluate. It owns the true state and the run log; everything
// downstream sees records only.
type Harness struct {
	cfg     Config
	model   *gnc.StateModel
	sensors *gnc.SensorModel
	law     *gnc.ControlLaw
	log     *RunLog
	logger  *slog.Logger
	metrics []Metric

	phase    Phase
	tick     int
	steps    int
	warnings []Warning
}

// New builds a harness for cfg. The configuration is validated up front so
// a bad dt or duration never reaches the loop.
func New(cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	law := cfg.Law
	if law == nil {
		law = gnc.NewControlLaw()
	}

	steps := int(cfg.Duration / cfg.Dt)
	return &Harness{
		cfg:     cfg,
		model:   gnc.NewStateModel(),
		sensors: gnc.NewSensorModel(cfg.Seed),
		law:     law,
		log:     NewRunLog(steps),
		logger:  slog.Default(),
		steps:   steps,
		phase:   PhaseInitialized,
	}, nil
}

// SetLogger replaces the warning logger. Nil restores the default.
func (h *Harness) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	h.logger = l
}

// AddMetric registers a metric observed once per tick.
func (h *Harness) AddMetric(m Metric) { h.metrics = append(h.metrics, m) }

// Phase reports the current lifecycle phase.
func (h *Harness) Phase() Phase { return h.phase }

// Tick reports how many ticks have completed.
func (h *Harness) Tick() int { return h.tick }

// Steps reports the total tick count for the configured duration.
func (h *Harness) Steps() int { return h.steps }

// Done reports whether all ticks have run.
func (h *Harness) Done() bool { return h.tick >= h.steps }

// Log exposes the run log. Read it only once the run has finished.
func (h *Harness) Log() *RunLog { return h.log }

// Warnings returns the criteria violations recorded so far.
func (h *Harness) Warnings() []Warning { return h.warnings }

// State returns the current true state.
func (h *Harness) State() gnc.SpacecraftState { return h.model.State }

// Time returns the current simulation time in seconds.
func (h *Harness) Time() float64 { return h.model.Time }

// Run executes the full closed loop and returns its result. Cancellation is
// cooperative and only takes effect at tick boundaries, never mid-stage;
// the partial result is returned alongside ctx.Err(). A NaN or Inf in the
// true state aborts the run with a tick-stamped error.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	h.reset()
	h.phase = PhaseRunning

	for i := 0; i < h.steps; i++ {
		select {
		case <-ctx.Done():
			return h.Finish(), ctx.Err()
		default:
		}

		if _, err := h.Step(); err != nil {
			return h.Finish(), err
		}
	}

	return h.Finish(), nil
}

// Step advances the loop exactly one tick and returns the record it logged.
// The stage order within a tick is fixed: a fresh sensor sample feeds the
// estimator, guidance and control run on the estimate, the command is
// applied before integration, and evaluation sees the post-integration
// state.
func (h *Harness) Step() (LogRecord, error) {
	if h.phase == PhaseInitialized {
		h.phase = PhaseRunning
	}

	idx := h.tick
	dt := h.cfg.Dt

	reading := h.sensors.Sample(h.model.State)
	est := gnc.EstimateState(reading, h.model.State)
	desired := gnc.ComputeGuidance(est, h.cfg.Scenario)
	cmd := h.law.Compute(est, desired)

	h.model.ApplyCommand(cmd, dt)
	h.model.Integrate(dt)

	if !h.model.State.IsFinite() {
		return LogRecord{}, &gnc.TickError{
			Tick:    idx,
			Time:    h.model.Time,
			State:   h.model.State,
			Wrapped: gnc.ErrStateDiverged,
		}
	}

	rec := LogRecord{
		Time:     h.model.Time,
		Position: h.model.State.Position,
		Velocity: h.model.State.Velocity,
		PosError: desired.Position.Sub(est.Position).Norm(),
		VelError: desired.Velocity.Sub(est.Velocity).Norm(),
		Thrust:   cmd.Thrust.Norm(),
	}
	h.log.Append(rec)

	for _, m := range h.metrics {
		m.Observe(rec)
	}

	if idx%h.cfg.EvalInterval == 0 {
		if ok, reason := gnc.CheckCriteria(h.model.State, h.model.Time, h.cfg.Scenario); !ok {
			w := Warning{Tick: idx, Time: h.model.Time, Reason: reason}
			h.warnings = append(h.warnings, w)
			h.logger.Warn("scenario criteria violated",
				"scenario", string(h.cfg.Scenario),
				"tick", idx,
				"time", h.model.Time,
				"reason", reason)
		}
	}

	h.tick++
	return rec, nil
}

func (h *Harness) reset() {
	h.model.Reset()
	h.sensors = gnc.NewSensorModel(h.cfg.Seed)
	h.log.Clear()
	h.warnings = nil
	h.tick = 0
	for _, m := range h.metrics {
		m.Reset()
	}
	h.phase = PhaseInitialized
}

// Finish seals the run and assembles its result from the log, metrics and
// warnings collected so far. Callers driving the loop through Step use this
// once Done reports true; Run calls it internally.
func (h *Harness) Finish() *Result {
	h.phase = PhaseComplete

	res := &Result{
		Scenario:   h.cfg.Scenario,
		FinalState: h.model.State,
		Ticks:      h.tick,
		Elapsed:    h.model.Time,
		Records:    h.log.Records(),
		Stats:      h.log.Stats(),
		Metrics:    make(map[string]float64, len(h.metrics)),
		Warnings:   h.warnings,
	}
	for _, m := range h.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
