package config

// Presets are complete, runnable configurations keyed by scenario then
// preset name. Presets with an empty gains block run the default control
// law.
var Presets = map[string]map[string]*Config{
	"RDV": {
		"nominal": {
			Scenario: "RDV", Dt: 0.1, Duration: 100.0, Seed: 42, EvalInterval: 10,
		},
		"fine": {
			Scenario: "RDV", Dt: 0.05, Duration: 100.0, Seed: 42, EvalInterval: 20,
		},
		"longhaul": {
			Scenario: "RDV", Dt: 0.1, Duration: 300.0, Seed: 42, EvalInterval: 10,
		},
		"stiff": {
			Scenario: "RDV", Dt: 0.1, Duration: 100.0, Seed: 42, EvalInterval: 10,
			Gains: GainsConfig{KpPos: 0.04, KdPos: 0.2, KpAtt: 0.1, KdAtt: 0.05},
		},
	},
	"TAG": {
		"nominal": {
			Scenario: "TAG", Dt: 0.1, Duration: 100.0, Seed: 42, EvalInterval: 10,
		},
		"gentle": {
			Scenario: "TAG", Dt: 0.1, Duration: 200.0, Seed: 42, EvalInterval: 10,
			Gains: GainsConfig{KpPos: 0.005, KdPos: 0.07, KpAtt: 0.1, KdAtt: 0.05},
		},
		"quick": {
			Scenario: "TAG", Dt: 0.05, Duration: 60.0, Seed: 42, EvalInterval: 20,
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
