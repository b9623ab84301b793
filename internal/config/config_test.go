package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "RDV" {
		t.Errorf("expected scenario RDV, got %s", cfg.Scenario)
	}
	if cfg.Dt != 0.1 {
		t.Errorf("expected dt 0.1, got %f", cfg.Dt)
	}
	if cfg.Duration != 100.0 {
		t.Errorf("expected duration 100, got %f", cfg.Duration)
	}
	if cfg.EvalInterval != 10 {
		t.Errorf("expected eval interval 10, got %d", cfg.EvalInterval)
	}
	if cfg.Gains.KpPos != gnc.DefaultKpPos {
		t.Errorf("expected default position gain, got %f", cfg.Gains.KpPos)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "TAG"
	cfg.Dt = 0.05
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scenario: TAG\ndt: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scenario != "TAG" || cfg.Dt != 0.2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Duration != DefaultDuration {
		t.Errorf("expected default duration, got %f", cfg.Duration)
	}
	if cfg.EvalInterval != DefaultEvalInterval {
		t.Errorf("expected default eval interval, got %d", cfg.EvalInterval)
	}
	if cfg.Gains.KdAtt != gnc.DefaultKdAtt {
		t.Errorf("expected default attitude gain, got %f", cfg.Gains.KdAtt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("RDV", "nominal")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scenario != "RDV" || cfg.Duration != 100.0 {
		t.Errorf("unexpected preset contents: %+v", cfg)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("RDV", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("XYZ", "nominal"); cfg != nil {
		t.Error("expected nil for unknown scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("TAG")
	if len(presets) == 0 {
		t.Error("expected presets for TAG")
	}

	if presets := ListPresets("XYZ"); presets != nil {
		t.Error("expected nil for unknown scenario")
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	for scenario, byName := range Presets {
		for name, cfg := range byName {
			hc := cfg.HarnessConfig()
			if err := hc.Validate(); err != nil {
				t.Errorf("preset %s/%s does not validate: %v", scenario, name, err)
			}
			if cfg.Scenario != scenario {
				t.Errorf("preset %s/%s names scenario %q", scenario, name, cfg.Scenario)
			}
		}
	}
}

func TestHarnessConfigBridge(t *testing.T) {
	cfg := DefaultConfig()
	hc := cfg.HarnessConfig()

	if hc.Scenario != gnc.ScenarioRendezvous {
		t.Errorf("scenario = %v, want RDV", hc.Scenario)
	}
	if hc.Law == nil || hc.Law.KpPos != gnc.DefaultKpPos {
		t.Error("default gains not carried into the control law")
	}

	cfg.Gains = GainsConfig{}
	if hc := cfg.HarnessConfig(); hc.Law != nil {
		t.Error("all-zero gains should select the default law")
	}
}
