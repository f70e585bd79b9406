package scenario

import (
	"fmt"
	"sort"
)

// presets are compiled-in scenarios, mostly used for demos and smoke runs.
// kept as constructors so every Preset call gets a fresh value to mutate.
var presets = map[string]func() *Scenario{
	"binary-cores":  binaryCores,
	"sol-like":      solLike,
	"anomaly-field": anomalyField,
}

// Presets lists the built-in scenario names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named built-in scenario.
func Preset(name string) (*Scenario, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have %v)", name, Presets())
	}
	return fn(), nil
}

// binaryCores is two heavy stars in a mutual orbit, each dressed with an
// asteroid cloud. The cores eventually spiral together; their merger is
// past the collapse threshold, so the endgame is a black hole cleaning up
// the leftovers.
func binaryCores() *Scenario {
	return &Scenario{
		Name: "binary-cores",
		Seed: 1,
		Settings: SettingsSpec{
			Gravity:   0.5,
			TimeScale: 1,
			Trails:    true,
		},
		Bodies: []BodySpec{
			{
				Name: "Core A", Category: "star",
				Mass: 10000, Radius: 60,
				Pos: []float64{-500, 0}, Vel: []float64{0, 1.6},
			},
			{
				Name: "Core B", Category: "star",
				Mass: 10000, Radius: 60,
				Pos: []float64{500, 0}, Vel: []float64{0, -1.6},
			},
		},
		Clouds: []CloudSpec{
			{
				Bodies: 150, Center: []float64{-500, 0}, Spread: 250,
				MeanMass: 6, MassStddev: 2, Radius: 3,
				Core: "Core A", Dampening: 0.9,
			},
			{
				Bodies: 150, Center: []float64{500, 0}, Spread: 250,
				MeanMass: 6, MassStddev: 2, Radius: 3,
				Core: "Core B", Dampening: 0.9,
			},
		},
	}
}

// solLike is one dominant star, a few planets on auto-orbits, and a loose
// belt. Quiet enough to watch accretion happen rule by rule.
func solLike() *Scenario {
	return &Scenario{
		Name:      "sol-like",
		Seed:      7,
		AutoOrbit: true,
		Settings: SettingsSpec{
			Gravity:   0.5,
			TimeScale: 1,
			Trails:    true,
		},
		Bodies: []BodySpec{
			{
				Name: "Sol", Category: "star",
				Mass: 20000, Radius: 80,
				Pos: []float64{0, 0},
			},
			{
				Name: "Hermia", Category: "planet",
				Mass: 10, Radius: 8,
				Pos: []float64{300, 0},
			},
			{
				Name: "Thessaly", Category: "planet",
				Mass: 18, Radius: 11,
				Pos: []float64{-520, 0},
			},
			{
				Name: "Oberon", Category: "planet",
				Mass: 14, Radius: 10,
				Pos: []float64{0, 820},
			},
		},
		Clouds: []CloudSpec{
			{
				Bodies: 120, Center: []float64{0, 0}, Spread: 600,
				MeanMass: 4, MassStddev: 1.5, Radius: 2,
				Core: "Sol",
			},
		},
	}
}

// anomalyField drops a linked wormhole pair and a repulsor into an
// otherwise ordinary system, for exercising the anomaly behaviors.
func anomalyField() *Scenario {
	return &Scenario{
		Name:      "anomaly-field",
		Seed:      13,
		AutoOrbit: true,
		Settings: SettingsSpec{
			Gravity:   0.5,
			TimeScale: 1,
			Trails:    true,
		},
		Bodies: []BodySpec{
			{
				Name: "Beacon", Category: "star",
				Mass: 9000, Radius: 55,
				Pos: []float64{0, 0},
			},
			{
				Name: "Gate A", Category: "anomaly", Anomaly: "wormhole",
				Pair: "Gate B",
				Mass: 10, Radius: 45,
				Pos: []float64{-700, 0},
			},
			{
				Name: "Gate B", Category: "anomaly", Anomaly: "wormhole",
				Mass: 10, Radius: 45,
				Pos: []float64{700, 0},
			},
			{
				Name: "Shove", Category: "anomaly", Anomaly: "repulsor",
				Mass: 1500, Radius: 30,
				Pos: []float64{0, 450},
			},
		},
		Clouds: []CloudSpec{
			{
				Bodies: 100, Center: []float64{0, 0}, Spread: 400,
				MeanMass: 5, MassStddev: 2, Radius: 2.5,
				Core: "Beacon", Dampening: 0.95,
			},
		},
	}
}
