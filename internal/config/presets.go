package config

var Presets = map[string]map[string]*Config{
	"spm": {
		"1c": {
			Model: "spm", Stepper: "rk4", Dt: 0.001, Duration: 1.0,
			CRate: 1.0, CutoffVoltage: 3.2,
		},
		"2c": {
			Model: "spm", Stepper: "rk4", Dt: 0.0005, Duration: 0.5,
			CRate: 2.0, CutoffVoltage: 3.2,
		},
		"gentle": {
			Model: "spm", Stepper: "rk4", Dt: 0.002, Duration: 2.0,
			CRate: 0.5, CutoffVoltage: 3.0,
		},
	},
	"spme": {
		"1c": {
			Model: "spme", Stepper: "rk4", Dt: 0.001, Duration: 1.0,
			CRate: 1.0, CutoffVoltage: 3.2,
		},
		"2c": {
			Model: "spme", Stepper: "rk4", Dt: 0.0005, Duration: 0.5,
			CRate: 2.0, CutoffVoltage: 3.2,
		},
		"fine": {
			Model: "spme", Stepper: "rk4", Dt: 0.0005, Duration: 1.0,
			CRate: 1.0, CutoffVoltage: 3.2,
			MeshPoints: map[string]int{
				"negative electrode": 40,
				"separator":          20,
				"positive electrode": 40,
				"negative particle":  40,
				"positive particle":  40,
			},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
