package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ginevracianci/gnc-autonomous-system/internal/campaign"
	"github.com/ginevracianci/gnc-autonomous-system/internal/config"
	"github.com/ginevracianci/gnc-autonomous-system/internal/export"
	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
	"github.com/ginevracianci/gnc-autonomous-system/internal/telemetry"
)

var (
	dt           float64
	duration     float64
	seed         int64
	evalInterval int
	kpPos        float64
	kdPos        float64
	kpAtt        float64
	kdAtt        float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Report options
	plot     bool
	jsonPath string
	csvPath  string
	svgPath  string
	// Frame rate for live view
	frameRate int
	// Gain sweep bounds
	kpMin     float64
	kpMax     float64
	numPoints int
	// Dispersion study trials
	trials int
)

// main is the entry point for the hilsim CLI; it registers commands and
// flags and executes the root command. It exits the process with status 1
// if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hilsim",
		Short: "closed-loop gnc simulation harness",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "run one or more scenarios",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScenarios,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	runCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "sensor noise seed")
	runCmd.Flags().IntVar(&evalInterval, "eval-every", config.DefaultEvalInterval, "ticks between criteria checks")
	runCmd.Flags().Float64Var(&kpPos, "kp-pos", gnc.DefaultKpPos, "position proportional gain")
	runCmd.Flags().Float64Var(&kdPos, "kd-pos", gnc.DefaultKdPos, "position derivative gain")
	runCmd.Flags().Float64Var(&kpAtt, "kp-att", gnc.DefaultKpAtt, "attitude proportional gain")
	runCmd.Flags().Float64Var(&kdAtt, "kd-att", gnc.DefaultKdAtt, "attitude derivative gain")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot position error after the run")
	runCmd.Flags().StringVar(&jsonPath, "export-json", "", "write run data to a json file (- for stdout)")
	runCmd.Flags().StringVar(&csvPath, "export-csv", "", "write run data to a csv file (- for stdout)")
	runCmd.Flags().StringVar(&svgPath, "export-svg", "", "write the track as an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s (scenarios: %v)\n", args[0], gnc.Scenarios())
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "sensor noise seed")
	liveCmd.Flags().IntVar(&evalInterval, "eval-every", config.DefaultEvalInterval, "ticks between criteria checks")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	campaignCmd := &cobra.Command{
		Use:   "campaign [file]",
		Short: "run a scripted sequence of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runCampaign,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "sweep position gains and compare runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	sweepCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "sensor noise seed")
	sweepCmd.Flags().Float64Var(&kpMin, "kp-min", 0.002, "lowest position gain")
	sweepCmd.Flags().Float64Var(&kpMax, "kp-max", 0.05, "highest position gain")
	sweepCmd.Flags().IntVar(&numPoints, "points", 8, "number of sweep points")

	monteCmd := &cobra.Command{
		Use:   "montecarlo [scenario]",
		Short: "seed dispersion study",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	monteCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	monteCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "base seed")
	monteCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark the closed loop",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	rootCmd.AddCommand(runCmd, presetsCmd, liveCmd, campaignCmd, sweepCmd, monteCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenarios(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i, name := range args {
		if i > 0 {
			fmt.Println()
		}
		if err := runOne(ctx, cmd, gnc.Scenario(name)); err != nil {
			return err
		}
	}
	return nil
}

func runOne(ctx context.Context, cmd *cobra.Command, sc gnc.Scenario) error {
	// Load preset if specified
	if preset != "" {
		if config.ListPresets(string(sc)) == nil {
			return fmt.Errorf("%w: %s", gnc.ErrUnknownScenario, sc)
		}
		pc := config.GetPreset(string(sc), preset)
		if pc == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(string(sc)))
		}
		dt = pc.Dt
		duration = pc.Duration
		seed = pc.Seed
		evalInterval = pc.EvalInterval
		kpPos, kdPos = pc.Gains.KpPos, pc.Gains.KdPos
		kpAtt, kdAtt = pc.Gains.KpAtt, pc.Gains.KdAtt
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("dt") {
			dt = fc.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = fc.Duration
		}
		if fc.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = fc.Seed
		}
		if !cmd.Flags().Changed("eval-every") {
			evalInterval = fc.EvalInterval
		}
		if !cmd.Flags().Changed("kp-pos") {
			kpPos = fc.Gains.KpPos
		}
		if !cmd.Flags().Changed("kd-pos") {
			kdPos = fc.Gains.KdPos
		}
		if !cmd.Flags().Changed("kp-att") {
			kpAtt = fc.Gains.KpAtt
		}
		if !cmd.Flags().Changed("kd-att") {
			kdAtt = fc.Gains.KdAtt
		}
	}

	law := gnc.NewControlLaw()
	law.KpPos, law.KdPos = kpPos, kdPos
	law.KpAtt, law.KdAtt = kpAtt, kdAtt

	h, err := harness.New(harness.Config{
		Scenario:     sc,
		Dt:           dt,
		Duration:     duration,
		Seed:         seed,
		EvalInterval: evalInterval,
		Law:          law,
	})
	if err != nil {
		return err
	}
	h.AddMetric(harness.NewThrustEffort())
	h.AddMetric(harness.NewPeakThrust())
	h.AddMetric(harness.NewConvergence(10.0))

	if !sc.Known() {
		fmt.Printf("note: %s is not a defined scenario; guidance and criteria are disabled\n", sc)
	}
	fmt.Printf("running %s scenario (%.1fs at dt %.3fs, seed %d)...\n", sc, duration, dt, seed)
	start := time.Now()

	res, err := h.Run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if res != nil && errors.Is(err, context.Canceled) {
			fmt.Println("\ninterrupted, partial results:")
			report(res, elapsed)
		}
		return err
	}

	report(res, elapsed)

	if plot {
		plotErrors(res)
	}
	if jsonPath == "-" {
		if err := export.WriteJSON(os.Stdout, res); err != nil {
			return err
		}
	} else if jsonPath != "" {
		if err := export.JSONFile(jsonPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if csvPath == "-" {
		if err := export.WriteCSV(os.Stdout, res); err != nil {
			return err
		}
	} else if csvPath != "" {
		if err := export.CSVFile(csvPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if svgPath != "" {
		if err := export.SVGFile(svgPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func report(res *harness.Result, elapsed time.Duration) {
	fmt.Printf("completed %d ticks (%.1fs simulated) in %v\n", res.Ticks, res.Elapsed, elapsed)

	p, v := res.FinalState.Position, res.FinalState.Velocity
	fmt.Printf("final position: [%.3f %.3f %.3f] km\n", p.X, p.Y, p.Z)
	fmt.Printf("final velocity: [%.4f %.4f %.4f] km/s\n", v.X, v.Y, v.Z)
	if n := len(res.Records); n > 0 {
		last := res.Records[n-1]
		fmt.Printf("final errors: position %.3f km, velocity %.5f km/s\n", last.PosError, last.VelError)
	}
	fmt.Printf("position error: mean %.3f km, max %.3f km\n", res.Stats.MeanPosError, res.Stats.MaxPosError)
	fmt.Printf("velocity error: mean %.5f km/s, max %.5f km/s\n", res.Stats.MeanVelError, res.Stats.MaxVelError)

	if len(res.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range res.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	if len(res.Warnings) > 0 {
		first := res.Warnings[0]
		fmt.Printf("\n%d criteria warnings, first at t=%.1fs: %s\n", len(res.Warnings), first.Time, first.Reason)
	}
}

func plotErrors(res *harness.Result) {
	if len(res.Records) < 2 {
		return
	}
	data := make([]float64, len(res.Records))
	for i, rec := range res.Records {
		data[i] = rec.PosError
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position error (km)"),
	)
	fmt.Println()
	fmt.Println(graph)
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := telemetry.NewModel(harness.Config{
		Scenario:     gnc.Scenario(args[0]),
		Dt:           dt,
		Duration:     duration,
		Seed:         seed,
		EvalInterval: evalInterval,
	}, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := campaign.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("campaign: %s\n", c.Name)
	if c.Description != "" {
		fmt.Println(c.Description)
	}
	fmt.Println()

	start := time.Now()
	results, err := campaign.Run(ctx, c)
	if err != nil {
		return err
	}

	fmt.Printf("\ncampaign completed in %v\n", time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENARIO\tTICKS\tMEAN_ERR\tMAX_ERR\tWARNINGS")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t%.3f\t%d\n",
			i+1, res.Scenario, res.Ticks, res.Stats.MeanPosError, res.Stats.MaxPosError, len(res.Warnings))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := campaign.RunSweep(ctx, &campaign.GainSweep{
		Scenario: gnc.Scenario(args[0]),
		Dt:       dt,
		Duration: duration,
		Seed:     seed,
		KpMin:    kpMin,
		KpMax:    kpMax,
		NumSteps: numPoints,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KP\tKD\tFINAL_ERR\tMEAN_ERR\tPEAK_THRUST")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.3f\t%.3f\t%.5f\n",
			r.KpPos, r.KdPos, r.FinalPosError, r.MeanPosError, r.PeakThrust)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := campaign.RunSeedStudy(ctx, &campaign.SeedStudy{
		Scenario:  gnc.Scenario(args[0]),
		Dt:        dt,
		Duration:  duration,
		BaseSeed:  seed,
		NumTrials: trials,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tFINAL_ERR\tMAX_ERR\tWARNINGS")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%d\n",
			r.Trial, r.Seed, r.FinalPosError, r.MaxPosError, r.Warnings)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, worst := campaign.DispersionStats(results)
	fmt.Printf("\nfinal error dispersion: mean %.3f km, worst %.3f km\n", mean, worst)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	sc := gnc.Scenario(args[0])

	durations := []float64{10.0, 60.0, 300.0}
	steps := []float64{0.01, 0.05, 0.1}

	fmt.Printf("benchmarking %s\n\n", sc)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tTICKS\tTIME\tTICKS/SEC")

	for _, dur := range durations {
		for _, step := range steps {
			h, err := harness.New(harness.Config{
				Scenario:     sc,
				Dt:           step,
				Duration:     dur,
				Seed:         42,
				EvalInterval: 10,
			})
			if err != nil {
				return err
			}
			// warning output would skew the timings
			h.SetLogger(slog.New(slog.DiscardHandler))

			start := time.Now()
			res, err := h.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			ticksPerSec := float64(res.Ticks) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.3fs\t%d\t%v\t%.0f\n",
				dur, step, res.Ticks, elapsed, ticksPerSec)
		}
	}

	return w.Flush()
}
