package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cartpole/internal/cartpole"
)

const (
	DefaultPolicy = "pd"
	DefaultFPS    = 50
)

type Config struct {
	Policy  string        `yaml:"policy"`
	Seed    int64         `yaml:"seed"`
	FPS     int           `yaml:"fps"`
	Physics PhysicsConfig `yaml:"physics"`
}

type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	CartMass      float64 `yaml:"cart_mass"`
	PoleMass      float64 `yaml:"pole_mass"`
	HalfLength    float64 `yaml:"half_length"`
	ForceMag      float64 `yaml:"force_mag"`
	Tau           float64 `yaml:"tau"`
	MaxSteps      int     `yaml:"max_steps"`
	XLimit        float64 `yaml:"x_limit"`
	ThetaLimitDeg float64 `yaml:"theta_limit_deg"`
}

func DefaultConfig() *Config {
	p := cartpole.DefaultParams()
	return &Config{
		Policy: DefaultPolicy,
		FPS:    DefaultFPS,
		Physics: PhysicsConfig{
			Gravity:       p.Gravity,
			CartMass:      p.CartMass,
			PoleMass:      p.PoleMass,
			HalfLength:    p.HalfLength,
			ForceMag:      p.ForceMag,
			Tau:           p.Tau,
			MaxSteps:      p.MaxSteps,
			XLimit:        p.XLimit,
			ThetaLimitDeg: p.ThetaLimitDeg,
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

// Params converts the yaml physics section into core params.
func (c *Config) Params() cartpole.Params {
	return cartpole.Params{
		Gravity:       c.Physics.Gravity,
		CartMass:      c.Physics.CartMass,
		PoleMass:      c.Physics.PoleMass,
		HalfLength:    c.Physics.HalfLength,
		ForceMag:      c.Physics.ForceMag,
		Tau:           c.Physics.Tau,
		MaxSteps:      c.Physics.MaxSteps,
		XLimit:        c.Physics.XLimit,
		ThetaLimitDeg: c.Physics.ThetaLimitDeg,
	}
}
