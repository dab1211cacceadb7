package config

var Presets = map[string]*Config{
	"calm": {
		Drive: "none", Ticks: 600, Dt: DefaultDt,
		Intensity: 1.0, PumpAmount: 1.0,
		CapPercentage: DefaultCapPercentage, ForceThreshold: DefaultForceThreshold,
		Coupling: DefaultCoupling,
	},
	"breathing": {
		Drive: "breathing", Ticks: 1800, Dt: DefaultDt,
		Intensity: 1.0, PumpAmount: 1.0,
		CapPercentage: DefaultCapPercentage, ForceThreshold: DefaultForceThreshold,
		Coupling:  DefaultCoupling,
		Breathing: BreathingConfig{Amplitude: 0.4, Period: 10.0},
	},
	"spasm": {
		Drive: "spasm", Ticks: 1200, Dt: DefaultDt, Seed: 42,
		Intensity: 1.0, PumpAmount: 1.0,
		CapPercentage: DefaultCapPercentage, ForceThreshold: DefaultForceThreshold,
		Coupling: DefaultCoupling,
		Spasm:    SpasmConfig{Probability: 0.02, Burst: 0.8},
	},
	"fatigue": {
		Drive: "breathing", Ticks: 3600, Dt: DefaultDt,
		Intensity: 1.0, PumpAmount: 1.0,
		CapPercentage: DefaultCapPercentage, ForceThreshold: DefaultForceThreshold,
		Coupling:  0.1,
		Breathing: BreathingConfig{Amplitude: 0.9, Period: 4.0},
		Fiber:     FiberConfig{FatigueRate: 0.3, RegenerationRate: 0.001},
	},
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
