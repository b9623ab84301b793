package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

const (
	DefaultDt           = 0.1
	DefaultDuration     = 100.0
	DefaultSeed         = 42
	DefaultEvalInterval = 10
)

type Config struct {
	Scenario     string      `yaml:"scenario"`
	Dt           float64     `yaml:"dt"`
	Duration     float64     `yaml:"duration"`
	Seed         int64       `yaml:"seed"`
	EvalInterval int         `yaml:"eval_interval"`
	Gains        GainsConfig `yaml:"gains"`
}

type GainsConfig struct {
	KpPos float64 `yaml:"kp_pos"`
	KdPos float64 `yaml:"kd_pos"`
	KpAtt float64 `yaml:"kp_att"`
	KdAtt float64 `yaml:"kd_att"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:     string(gnc.ScenarioRendezvous),
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Seed:         DefaultSeed,
		EvalInterval: DefaultEvalInterval,
		Gains: GainsConfig{
			KpPos: gnc.DefaultKpPos,
			KdPos: gnc.DefaultKdPos,
			KpAtt: gnc.DefaultKpAtt,
			KdAtt: gnc.DefaultKdAtt,
		},
	}
}

// ApplyDefaults fills zero-valued fields from the default configuration.
// Campaign steps use this so a step only has to name what differs.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Scenario == "" {
		c.Scenario = d.Scenario
	}
	if c.Dt == 0 {
		c.Dt = d.Dt
	}
	if c.Duration == 0 {
		c.Duration = d.Duration
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.EvalInterval == 0 {
		c.EvalInterval = d.EvalInterval
	}
	if c.Gains == (GainsConfig{}) {
		c.Gains = d.Gains
	}
}

// Load reads a YAML config. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HarnessConfig bridges the file-facing config into the run configuration.
// An all-zero gains block selects the default control law.
func (c *Config) HarnessConfig() harness.Config {
	hc := harness.Config{
		Scenario:     gnc.Scenario(c.Scenario),
		Dt:           c.Dt,
		Duration:     c.Duration,
		Seed:         c.Seed,
		EvalInterval: c.EvalInterval,
	}
	if c.Gains != (GainsConfig{}) {
		hc.Law = &gnc.ControlLaw{
			KpPos: c.Gains.KpPos,
			KdPos: c.Gains.KdPos,
			KpAtt: c.Gains.KpAtt,
			KdAtt: c.Gains.KdAtt,
		}
	}
	return hc
}
