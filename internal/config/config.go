package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fibersim/internal/graph"
	"github.com/san-kum/fibersim/internal/muscle"
)

const (
	DefaultTicks          = 600
	DefaultDt             = 1.0 / 60.0
	DefaultIntensity      = 1.0
	DefaultPumpAmount     = 1.0
	DefaultCapPercentage  = 0.66
	DefaultForceThreshold = 0.1
	DefaultCoupling       = 0.05
)

type Config struct {
	Drive          string          `yaml:"drive"`
	Ticks          int             `yaml:"ticks"`
	Dt             float64         `yaml:"dt"`
	Seed           int64           `yaml:"seed"`
	Intensity      float64         `yaml:"intensity"`
	PumpAmount     float64         `yaml:"pump_amount"`
	CapPercentage  float64         `yaml:"cap_percentage"`
	ForceThreshold float64         `yaml:"force_threshold"`
	Coupling       float64         `yaml:"coupling"`
	Fiber          FiberConfig     `yaml:"fiber"`
	Breathing      BreathingConfig `yaml:"breathing"`
	Spasm          SpasmConfig     `yaml:"spasm"`
	Graph          *GraphConfig    `yaml:"graph,omitempty"`
}

// GraphConfig overrides the built-in QWERTY network topology.
type GraphConfig struct {
	Order     string                 `yaml:"order"`
	Neighbors map[string][]string    `yaml:"neighbors"`
	Positions map[string]PointConfig `yaml:"positions"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FiberConfig struct {
	RestingForce     float64 `yaml:"resting_force"`
	MaxForce         float64 `yaml:"max_force"`
	FatigueRate      float64 `yaml:"fatigue_rate"`
	RegenerationRate float64 `yaml:"regeneration_rate"`
	ActinLength      int     `yaml:"actin_length"`
	MyosinHeads      int     `yaml:"myosin_heads"`
}

type BreathingConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
}

type SpasmConfig struct {
	Probability float64 `yaml:"probability"`
	Burst       float64 `yaml:"burst"`
}

func DefaultConfig() *Config {
	p := muscle.DefaultParams()
	return &Config{
		Drive:          "none",
		Ticks:          DefaultTicks,
		Dt:             DefaultDt,
		Intensity:      DefaultIntensity,
		PumpAmount:     DefaultPumpAmount,
		CapPercentage:  DefaultCapPercentage,
		ForceThreshold: DefaultForceThreshold,
		Coupling:       DefaultCoupling,
		Fiber: FiberConfig{
			RestingForce:     p.RestingForce,
			MaxForce:         p.MaxForce,
			FatigueRate:      p.FatigueRate,
			RegenerationRate: p.RegenerationRate,
			ActinLength:      p.ActinLength,
			MyosinHeads:      p.MyosinHeads,
		},
		Breathing: BreathingConfig{
			Amplitude: 0.4,
			Period:    10.0,
		},
		Spasm: SpasmConfig{
			Probability: 0.02,
			Burst:       0.8,
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

// FillDriveDefaults backfills empty breathing and spasm sections from the
// defaults. Presets leave unused drive sections zero; switching the drive
// afterwards must not yield a zero-amplitude driver.
func (c *Config) FillDriveDefaults() {
	def := DefaultConfig()
	if c.Breathing == (BreathingConfig{}) {
		c.Breathing = def.Breathing
	}
	if c.Spasm == (SpasmConfig{}) {
		c.Spasm = def.Spasm
	}
}

// BuildGraph returns the configured network, falling back to the built-in
// QWERTY layout when no override is present.
func (c *Config) BuildGraph() (*graph.Graph, error) {
	if c.Graph == nil {
		return graph.Qwerty(), nil
	}
	positions := make(map[string]graph.Point, len(c.Graph.Positions))
	for id, p := range c.Graph.Positions {
		positions[id] = graph.Point{X: p.X, Y: p.Y}
	}
	return graph.New(c.Graph.Order, c.Graph.Neighbors, positions)
}

// FiberParams converts the fiber section into muscle parameters, filling
// unset fields from the defaults so partial yaml files stay usable.
func (c *Config) FiberParams() muscle.Params {
	p := muscle.DefaultParams()
	if c.Fiber.RestingForce > 0 {
		p.RestingForce = c.Fiber.RestingForce
	}
	if c.Fiber.MaxForce > 0 {
		p.MaxForce = c.Fiber.MaxForce
	}
	if c.Fiber.FatigueRate > 0 {
		p.FatigueRate = c.Fiber.FatigueRate
	}
	if c.Fiber.RegenerationRate > 0 {
		p.RegenerationRate = c.Fiber.RegenerationRate
	}
	if c.Fiber.ActinLength > 0 {
		p.ActinLength = c.Fiber.ActinLength
	}
	if c.Fiber.MyosinHeads > 0 {
		p.MyosinHeads = c.Fiber.MyosinHeads
	}
	return p
}
