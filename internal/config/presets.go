package config

var Presets = map[string]map[string]*Config{
	"two-body": {
		"orbit": {
			Fixture: "two-body", Integrator: "rk4", Dt: 0.0001, Duration: 10.0, RecordEvery: 100,
		},
		"symplectic": {
			Fixture: "two-body", Integrator: "leapfrog", Dt: 0.0001, Duration: 10.0, RecordEvery: 100,
		},
		"coarse": {
			Fixture: "two-body", Integrator: "rk2", Dt: 0.001, Duration: 27.14, RecordEvery: 10,
		},
	},
	"figure-eight": {
		"third": {
			Fixture: "figure-eight", Integrator: "rk4", Dt: 0.0001, Duration: 2.1088, RecordEvery: 50,
		},
		"period": {
			Fixture: "figure-eight", Integrator: "rk4", Dt: 0.0001, Duration: 6.3259, RecordEvery: 100,
		},
	},
	"figure-8": {
		"period": {
			Fixture: "figure-8", Integrator: "rk4", Dt: 0.0001, Duration: 6.3259, RecordEvery: 100,
		},
	},
	"broucke-a1": {
		"period": {
			Fixture: "broucke-a1", Integrator: "rk4", Dt: 0.00001, Duration: 6.283213, RecordEvery: 1000,
		},
	},
	"broucke-a2": {
		"period": {
			Fixture: "broucke-a2", Integrator: "rk4", Dt: 0.0001, Duration: 7.702408, RecordEvery: 100,
		},
	},
	"butterfly-1": {
		"period": {
			Fixture: "butterfly-1", Integrator: "rk4", Dt: 0.00001, Duration: 6.2356, RecordEvery: 1000,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(fixture, preset string) *Config {
	fixturePresets, ok := Presets[fixture]
	if !ok {
		return nil
	}
	cfg, ok := fixturePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.ValidateState = true
	return &c
}

func ListPresets(fixture string) []string {
	fixturePresets, ok := Presets[fixture]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fixturePresets))
	for name := range fixturePresets {
		names = append(names, name)
	}
	return names
}
