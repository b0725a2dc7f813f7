package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	// The standard benchmark: 12 degree failure angle, 500 step budget.
	"classic": preset(func(c *Config) {}),

	// Longer budget for policies that actually balance.
	"marathon": preset(func(c *Config) {
		c.Physics.MaxSteps = 5000
	}),

	// A sluggish cart; the same force barely moves it.
	"heavy-cart": preset(func(c *Config) {
		c.Physics.CartMass = 5.0
		c.Physics.ForceMag = 20.0
	}),

	// Tight track, generous angle. Position failures dominate.
	"short-track": preset(func(c *Config) {
		c.Physics.XLimit = 0.8
		c.Physics.ThetaLimitDeg = 24.0
	}),

	// Slow pole dynamics; easier to balance, harder to recover.
	"long-pole": preset(func(c *Config) {
		c.Physics.HalfLength = 1.0
		c.Physics.PoleMass = 0.2
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
