package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/symb"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 1.0
	DefaultCRate    = 1.0
	DefaultCutoff   = 3.2
)

type Config struct {
	Model         string         `yaml:"model"`
	Stepper       string         `yaml:"stepper"`
	Dt            float64        `yaml:"dt"`
	Duration      float64        `yaml:"duration"`
	CRate         float64        `yaml:"c_rate"`
	CutoffVoltage float64        `yaml:"cutoff_voltage"`
	ParamsFile    string         `yaml:"params_file"`
	Outputs       []string       `yaml:"outputs"`
	MeshPoints    map[string]int `yaml:"mesh_points"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:         "spme",
		Stepper:       "rk4",
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		CRate:         DefaultCRate,
		CutoffVoltage: DefaultCutoff,
		Outputs: []string{
			"Terminal voltage",
			"Open circuit voltage",
			"X-averaged reaction overpotential",
			"Negative particle surface concentration",
			"Positive particle surface concentration",
		},
	}
}

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

// MeshSpec translates the per-region point overrides into the form
// discretization consumes. Region keys use the canonical names, e.g.
// "negative electrode".
func (c *Config) MeshSpec() geometry.MeshSpec {
	if len(c.MeshPoints) == 0 {
		return nil
	}
	spec := make(geometry.MeshSpec, len(c.MeshPoints))
	for name, n := range c.MeshPoints {
		spec[symb.Region(name)] = n
	}
	return spec
}
