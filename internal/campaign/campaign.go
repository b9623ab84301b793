package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginevracianci/gnc-autonomous-system/internal/config"
	"github.com/ginevracianci/gnc-autonomous-system/internal/export"
	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

// Step is one campaign entry: a full run configuration plus an optional
// path the step's records are exported to. The export format follows the
// file extension, JSON unless it ends in .csv or .svg.
type Step struct {
	config.Config `yaml:",inline"`
	Export        string `yaml:"export"`
}

// Campaign is a scripted sequence of simulation runs loaded from YAML.
// Fields a step leaves out fall back to the defaults.
type Campaign struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Load reads a campaign script from a YAML file.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("campaign %q has no steps", c.Name)
	}

	for i := range c.Steps {
		c.Steps[i].ApplyDefaults()
	}
	return &c, nil
}

// Run executes all steps in order and returns one result per step. The
// standard metrics are attached to every step.
func Run(ctx context.Context, c *Campaign) ([]*harness.Result, error) {
	results := make([]*harness.Result, 0, len(c.Steps))

	for i, step := range c.Steps {
		fmt.Printf("step %d/%d: scenario %s, %.1fs at dt %.3fs\n",
			i+1, len(c.Steps), step.Scenario, step.Duration, step.Dt)

		h, err := harness.New(step.HarnessConfig())
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		h.AddMetric(harness.NewThrustEffort())
		h.AddMetric(harness.NewPeakThrust())

		result, err := h.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.Export != "" {
			if err := exportStep(step.Export, result); err != nil {
				return results, fmt.Errorf("step %d export: %w", i+1, err)
			}
			fmt.Printf("step %d: wrote %s\n", i+1, step.Export)
		}

		results = append(results, result)
	}

	return results, nil
}

func exportStep(path string, res *harness.Result) error {
	switch {
	case strings.HasSuffix(path, ".csv"):
		return export.CSVFile(path, res)
	case strings.HasSuffix(path, ".svg"):
		return export.SVGFile(path, res)
	}
	return export.JSONFile(path, res)
}

// GainSweep runs the same scenario across a range of position stiffness
// values. The damping gain tracks the stiffness to hold the damping ratio
// at one half, so every sweep point stays stable.
type GainSweep struct {
	Scenario gnc.Scenario
	Dt       float64
	Duration float64
	Seed     int64
	KpMin    float64
	KpMax    float64
	NumSteps int
}

// SweepResult summarizes one sweep point.
type SweepResult struct {
	KpPos         float64
	KdPos         float64
	FinalPosError float64
	MeanPosError  float64
	PeakThrust    float64
}

// RunSweep executes the gain sweep and returns one result per gain value.
func RunSweep(ctx context.Context, sweep *GainSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if sweep.KpMin <= 0 || sweep.KpMax < sweep.KpMin {
		return nil, fmt.Errorf("invalid sweep range [%g, %g]", sweep.KpMin, sweep.KpMax)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	gainStep := (sweep.KpMax - sweep.KpMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		kp := sweep.KpMin + float64(i)*gainStep
		kd := math.Sqrt(kp) // damping ratio 0.5

		law := gnc.NewControlLaw()
		law.KpPos = kp
		law.KdPos = kd

		h, err := harness.New(harness.Config{
			Scenario:     sweep.Scenario,
			Dt:           sweep.Dt,
			Duration:     sweep.Duration,
			Seed:         sweep.Seed,
			EvalInterval: config.DefaultEvalInterval,
			Law:          law,
		})
		if err != nil {
			return results, err
		}
		// warning counts land in the results table, not the log
		h.SetLogger(slog.New(slog.DiscardHandler))
		peak := harness.NewPeakThrust()
		h.AddMetric(peak)

		result, err := h.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("sweep point kp=%.4f: %w", kp, err)
		}

		final := 0.0
		if last, ok := lastRecord(result); ok {
			final = last.PosError
		}
		results = append(results, SweepResult{
			KpPos:         kp,
			KdPos:         kd,
			FinalPosError: final,
			MeanPosError:  result.Stats.MeanPosError,
			PeakThrust:    peak.Value(),
		})

		fmt.Printf("sweep %d/%d: kp=%.4f final error %.3f km\n", i+1, sweep.NumSteps, kp, final)
	}

	return results, nil
}

// SeedStudy reruns one scenario under different sensor noise seeds to
// measure trajectory dispersion.
type SeedStudy struct {
	Scenario  gnc.Scenario
	Dt        float64
	Duration  float64
	BaseSeed  int64
	NumTrials int
}

// TrialResult summarizes one dispersion trial.
type TrialResult struct {
	Trial         int
	Seed          int64
	FinalPosError float64
	MaxPosError   float64
	Warnings      int
}

// RunSeedStudy executes NumTrials runs seeded BaseSeed, BaseSeed+1, and so
// on, and returns one result per trial.
func RunSeedStudy(ctx context.Context, study *SeedStudy) ([]TrialResult, error) {
	if study.NumTrials <= 0 {
		return nil, fmt.Errorf("study needs at least 1 trial, got %d", study.NumTrials)
	}

	results := make([]TrialResult, 0, study.NumTrials)

	for trial := 0; trial < study.NumTrials; trial++ {
		seed := study.BaseSeed + int64(trial)

		h, err := harness.New(harness.Config{
			Scenario:     study.Scenario,
			Dt:           study.Dt,
			Duration:     study.Duration,
			Seed:         seed,
			EvalInterval: config.DefaultEvalInterval,
		})
		if err != nil {
			return results, err
		}
		h.SetLogger(slog.New(slog.DiscardHandler))

		result, err := h.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d (seed %d): %w", trial, seed, err)
		}

		final := 0.0
		if last, ok := lastRecord(result); ok {
			final = last.PosError
		}
		results = append(results, TrialResult{
			Trial:         trial,
			Seed:          seed,
			FinalPosError: final,
			MaxPosError:   result.Stats.MaxPosError,
			Warnings:      len(result.Warnings),
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("dispersion: %d/%d trials complete\n", trial+1, study.NumTrials)
		}
	}

	return results, nil
}

// DispersionStats reports the mean and worst final position error across
// trials.
func DispersionStats(results []TrialResult) (mean, worst float64) {
	if len(results) == 0 {
		return 0, 0
	}
	for _, r := range results {
		mean += r.FinalPosError
		if r.FinalPosError > worst {
			worst = r.FinalPosError
		}
	}
	mean /= float64(len(results))
	return mean, worst
}

func lastRecord(res *harness.Result) (harness.LogRecord, bool) {
	if len(res.Records) == 0 {
		return harness.LogRecord{}, false
	}
	return res.Records[len(res.Records)-1], true
}
