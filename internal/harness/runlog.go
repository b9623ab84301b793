package harness

import "github.com/ginevracianci/gnc-autonomous-system/internal/gnc"

// LogRecord summarizes one completed tick. Position and velocity are the
// true post-integration values; the error scalars compare that tick's
// guidance reference against the navigation estimate it was computed from.
// Records are immutable once appended.
type LogRecord struct {
	Time     float64
	Position gnc.Vec3
	Velocity gnc.Vec3
	PosError float64 // km, |desired - estimated| position
	VelError float64 // km/s, |desired - estimated| velocity
	Thrust   float64 // km/s^2, commanded thrust magnitude
}

// Stats aggregates error magnitudes across a run.
type Stats struct {
	MeanPosError float64
	MaxPosError  float64
	MeanVelError float64
	MaxVelError  float64
}

// RunLog is the single-writer, append-only record sequence for one run.
// The driver loop is the only writer; readers touch it only after the loop
// has finished.
type RunLog struct {
	records []LogRecord
}

// NewRunLog returns a log with capacity for the expected tick count.
func NewRunLog(capacity int) *RunLog {
	if capacity < 0 {
		capacity = 0
	}
	return &RunLog{records: make([]LogRecord, 0, capacity)}
}

func (l *RunLog) Append(rec LogRecord) { l.records = append(l.records, rec) }

func (l *RunLog) Len() int { return len(l.records) }

// Records exposes the backing slice. Callers must treat it as read-only.
func (l *RunLog) Records() []LogRecord { return l.records }

// Last returns the most recent record, if any.
func (l *RunLog) Last() (LogRecord, bool) {
	if len(l.records) == 0 {
		return LogRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Clear empties the log while keeping its capacity for the next run.
func (l *RunLog) Clear() { l.records = l.records[:0] }

// Stats computes mean and max error magnitudes over the whole log. An
// empty log yields all zeros.
func (l *RunLog) Stats() Stats {
	var s Stats
	if len(l.records) == 0 {
		return s
	}

	var sumPos, sumVel float64
	for _, r := range l.records {
		sumPos += r.PosError
		sumVel += r.VelError
		if r.PosError > s.MaxPosError {
			s.MaxPosError = r.PosError
		}
		if r.VelError > s.MaxVelError {
			s.MaxVelError = r.VelError
		}
	}

	n := float64(len(l.records))
	s.MeanPosError = sumPos / n
	s.MeanVelError = sumVel / n
	return s
}
