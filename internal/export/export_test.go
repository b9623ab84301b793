package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

func sampleResult() *harness.Result {
	return &harness.Result{
		Scenario: gnc.ScenarioRendezvous,
		Ticks:    2,
		Elapsed:  0.2,
		FinalState: gnc.SpacecraftState{
			Position: gnc.Vec3{X: 25.0, Y: 1.0, Z: -0.5},
			Velocity: gnc.Vec3{X: -0.1, Y: 0.0, Z: 0.0},
		},
		Records: []harness.LogRecord{
			{Time: 0.1, Position: gnc.Vec3{X: 2500, Y: 200, Z: -50}, Velocity: gnc.Vec3{X: 0.1, Y: -0.05, Z: 0.02}, PosError: 2488.0, VelError: 0.11, Thrust: 24.9},
			{Time: 0.2, Position: gnc.Vec3{X: 2499, Y: 199, Z: -49}, Velocity: gnc.Vec3{X: -2.3, Y: 0.1, Z: 0.05}, PosError: 2486.0, VelError: 2.3, Thrust: 24.8},
		},
		Stats:    harness.Stats{MeanPosError: 2487.0, MaxPosError: 2488.0, MeanVelError: 1.2, MaxVelError: 2.3},
		Metrics:  map[string]float64{"thrust_effort": 24.85},
		Warnings: []harness.Warning{{Tick: 0, Time: 0.1, Reason: "position error 2488.00 km exceeds 10.0 km abort threshold"}},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data Data
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if data.Scenario != "RDV" {
		t.Errorf("scenario = %q, want RDV", data.Scenario)
	}
	if data.Ticks != 2 || len(data.Records) != 2 {
		t.Errorf("expected 2 ticks and 2 records, got %d and %d", data.Ticks, len(data.Records))
	}
	if data.Records[0].Position != [3]float64{2500, 200, -50} {
		t.Errorf("record position = %v", data.Records[0].Position)
	}
	if data.Warnings != 1 {
		t.Errorf("warnings = %d, want 1", data.Warnings)
	}
	if data.Metrics["thrust_effort"] != 24.85 {
		t.Errorf("metric missing from export: %v", data.Metrics)
	}
	if data.Stats.MaxPosError != 2488.0 {
		t.Errorf("stats not carried over: %+v", data.Stats)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "time" || rows[0][7] != "pos_error" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "0.100000" {
		t.Errorf("time cell = %q, want 0.100000", rows[1][0])
	}
	if rows[2][9] != "24.800000" {
		t.Errorf("thrust cell = %q, want 24.800000", rows[2][9])
	}
}

func TestFileExports(t *testing.T) {
	dir := t.TempDir()
	res := sampleResult()

	jsonPath := filepath.Join(dir, "run.json")
	if err := JSONFile(jsonPath, res); err != nil {
		t.Fatalf("JSON file export failed: %v", err)
	}
	csvPath := filepath.Join(dir, "run.csv")
	if err := CSVFile(csvPath, res); err != nil {
		t.Fatalf("CSV file export failed: %v", err)
	}

	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(jsonBytes) {
		t.Error("JSON file is not valid JSON")
	}

	csvBytes, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(csvBytes), "time,px,py,pz") {
		t.Errorf("CSV file starts with %q", string(csvBytes[:20]))
	}
}

func TestExportEmptyRun(t *testing.T) {
	res := &harness.Result{Scenario: gnc.ScenarioTouchAndGo}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("empty run JSON export failed: %v", err)
	}

	buf.Reset()
	if err := WriteCSV(&buf, res); err != nil {
		t.Fatalf("empty run CSV export failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(csvHeader, ",") {
		t.Errorf("empty run CSV = %q, want header only", got)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sampleResult()); err != nil {
		t.Fatalf("SVG export failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Error("missing xml declaration")
	}
	for _, want := range []string{"<svg", "</svg>", `stroke="#00ff00"`, " L"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}

	path := filepath.Join(t.TempDir(), "track.svg")
	if err := SVGFile(path, sampleResult()); err != nil {
		t.Fatalf("SVG file export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Error("svg file truncated")
	}
}

func TestWriteSVGNeedsRecords(t *testing.T) {
	if err := WriteSVG(&bytes.Buffer{}, &harness.Result{}); err == nil {
		t.Error("expected error for a run with no records")
	}
}
