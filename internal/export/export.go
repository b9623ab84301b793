package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

// Data is the JSON shape of one exported run.
type Data struct {
	Scenario   string             `json:"scenario"`
	Ticks      int                `json:"ticks"`
	Elapsed    float64            `json:"elapsed"`
	FinalState StateData          `json:"final_state"`
	Stats      StatsData          `json:"stats"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Warnings   int                `json:"warnings"`
	Records    []RecordData       `json:"records"`
}

type StateData struct {
	Position        [3]float64 `json:"position"`
	Velocity        [3]float64 `json:"velocity"`
	Attitude        [3]float64 `json:"attitude"`
	AngularVelocity [3]float64 `json:"angular_velocity"`
}

type StatsData struct {
	MeanPosError float64 `json:"mean_pos_error"`
	MaxPosError  float64 `json:"max_pos_error"`
	MeanVelError float64 `json:"mean_vel_error"`
	MaxVelError  float64 `json:"max_vel_error"`
}

type RecordData struct {
	Time     float64    `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	PosError float64    `json:"pos_error"`
	VelError float64    `json:"vel_error"`
	Thrust   float64    `json:"thrust"`
}

func fromResult(res *harness.Result) Data {
	data := Data{
		Scenario: string(res.Scenario),
		Ticks:    res.Ticks,
		Elapsed:  res.Elapsed,
		FinalState: StateData{
			Position:        vec(res.FinalState.Position.X, res.FinalState.Position.Y, res.FinalState.Position.Z),
			Velocity:        vec(res.FinalState.Velocity.X, res.FinalState.Velocity.Y, res.FinalState.Velocity.Z),
			Attitude:        vec(res.FinalState.Attitude.X, res.FinalState.Attitude.Y, res.FinalState.Attitude.Z),
			AngularVelocity: vec(res.FinalState.AngularVelocity.X, res.FinalState.AngularVelocity.Y, res.FinalState.AngularVelocity.Z),
		},
		Stats: StatsData{
			MeanPosError: res.Stats.MeanPosError,
			MaxPosError:  res.Stats.MaxPosError,
			MeanVelError: res.Stats.MeanVelError,
			MaxVelError:  res.Stats.MaxVelError,
		},
		Metrics:  res.Metrics,
		Warnings: len(res.Warnings),
		Records:  make([]RecordData, len(res.Records)),
	}

	for i, r := range res.Records {
		data.Records[i] = RecordData{
			Time:     r.Time,
			Position: vec(r.Position.X, r.Position.Y, r.Position.Z),
			Velocity: vec(r.Velocity.X, r.Velocity.Y, r.Velocity.Z),
			PosError: r.PosError,
			VelError: r.VelError,
			Thrust:   r.Thrust,
		}
	}
	return data
}

func vec(x, y, z float64) [3]float64 { return [3]float64{x, y, z} }

// WriteJSON writes the full run as indented JSON.
func WriteJSON(w io.Writer, res *harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fromResult(res))
}

// JSONFile writes the run as JSON to path.
func JSONFile(path string, res *harness.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, res)
}

var csvHeader = []string{"time", "px", "py", "pz", "vx", "vy", "vz", "pos_error", "vel_error", "thrust"}

// WriteCSV writes the per-tick records as CSV rows.
func WriteCSV(w io.Writer, res *harness.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, r := range res.Records {
		vals := []float64{
			r.Time,
			r.Position.X, r.Position.Y, r.Position.Z,
			r.Velocity.X, r.Velocity.Y, r.Velocity.Z,
			r.PosError, r.VelError, r.Thrust,
		}
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVFile writes the per-tick records as CSV to path.
func CSVFile(path string, res *harness.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, res)
}
