package fusion

import (
	"github.com/quillaja/spacesim/internal/sim"
)

// mass and speed thresholds the standard outcome functions switch on.
// simulation units, tuned against the default presets.
const (
	// total stellar mass that collapses a merger into a black hole
	starCollapseMass = 8000
	// total mass at which merged holes or stars go supermassive
	supermassiveMass = 25000
	// white dwarf pair total that detonates instead of merging quietly
	dwarfDetonationMass = 1400
	// neutron star plus star totals beyond this collapse outright
	accretionCollapseMass = 3000
	// asteroid rubble compacts into a moon above this total
	moonAccretionMass = 50
	// moons totalling more than this melt into a planet
	planetAccretionMass = 500
	// brown dwarf pair total that ignites fusion
	ignitionMass = 800
	// per-body mass below which asteroid pairs just stick together
	pebbleMass = 25
	// relative speed beyond which planetary impacts shatter
	planetShatterSpeed = 8.0
	// relative speed beyond which moon strikes crack a planet
	moonShatterSpeed = 10.0
)

// StandardRules returns the default fusion table. Order is significant:
// specific pairings sit above the wildcard absorption rules that would
// otherwise swallow them, and the engine takes the first match.
func StandardRules() []Rule {
	return []Rule{
		{
			Name:         "neutron-pair",
			A:            Cat(sim.NeutronStar),
			B:            Cat(sim.NeutronStar),
			Outcome:      To(sim.BlackHole),
			Tag:          "gamma-ray-burst",
			TimeDilation: 0.2,
		},
		{
			Name:         "pulsar-pair",
			A:            Cat(sim.Pulsar),
			B:            Cat(sim.Pulsar),
			Outcome:      To(sim.Magnetar),
			Tag:          "magnetar-birth",
			TimeDilation: 0.3,
		},
		{
			Name: "dwarf-detonation",
			A:    Cat(sim.WhiteDwarf),
			B:    Cat(sim.WhiteDwarf),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= dwarfDetonationMass {
					return sim.NeutronStar
				}
				return sim.WhiteDwarf
			},
			Tag:          "type-ia",
			TimeDilation: 0.3,
		},
		{
			Name: "neutron-accretion",
			A:    Cat(sim.NeutronStar),
			B:    Cat(sim.Star),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= accretionCollapseMass {
					return sim.BlackHole
				}
				return sim.NeutronStar
			},
			Tag:          "accretion-collapse",
			TimeDilation: 0.5,
		},
		{
			Name: "hole-pair",
			A:    Cat(sim.BlackHole),
			B:    Cat(sim.BlackHole),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= supermassiveMass {
					return sim.SupermassiveBlackHole
				}
				return sim.BlackHole
			},
			Tag:          "black-hole-merger",
			TimeDilation: 0.25,
		},
		{
			Name:         "hypergiant-collapse",
			A:            Cat(sim.RedHypergiant),
			B:            Cat(sim.RedHypergiant),
			Outcome:      To(sim.BlackHole),
			Tag:          "core-collapse",
			TimeDilation: 0.3,
		},
		{
			Name:         "giant-merger",
			A:            Cat(sim.BlueGiant),
			B:            Cat(sim.BlueGiant),
			Outcome:      To(sim.RedHypergiant),
			Tag:          "hypergiant-merger",
			TimeDilation: 0.4,
		},
		{
			Name: "giant-engulf",
			A:    Cat(sim.RedGiant),
			B:    Cat(sim.Star),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= starCollapseMass {
					return sim.BlackHole
				}
				return sim.RedGiant
			},
			Tag:          "engulf",
			TimeDilation: 0.6,
		},
		{
			Name: "stellar-merger",
			A:    Cat(sim.Star),
			B:    Cat(sim.Star),
			Outcome: func(m1, m2, _ float64) sim.Category {
				total := m1 + m2
				switch {
				case total >= supermassiveMass:
					return sim.SupermassiveBlackHole
				case total >= starCollapseMass:
					return sim.BlackHole
				default:
					return sim.Star
				}
			},
			Tag:          "stellar-merger",
			TimeDilation: 0.5,
		},
		{
			Name: "ignition",
			A:    Cat(sim.BrownDwarf),
			B:    Cat(sim.BrownDwarf),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= ignitionMass {
					return sim.Star
				}
				return sim.BrownDwarf
			},
			Tag:          "ignition",
			TimeDilation: 0.6,
		},
		{
			Name:         "star-engulf-planet",
			A:            Cat(sim.Star),
			B:            Cat(sim.Planet),
			Outcome:      To(sim.Star),
			Tag:          "engulf",
			TimeDilation: 0.7,
		},
		{
			Name:         "planet-pair",
			A:            Cat(sim.Planet),
			B:            Cat(sim.Planet),
			Outcome:      To(sim.Planet),
			Tag:          "planetary-collision",
			TimeDilation: 0.5,
			ShouldFragment: func(_, _, v float64) bool {
				return v > planetShatterSpeed
			},
			FragmentCount: 5,
		},
		{
			Name:         "moon-strike",
			A:            Cat(sim.Planet),
			B:            Cat(sim.Moon),
			Outcome:      To(sim.Planet),
			Tag:          "impact",
			TimeDilation: 0.7,
			ShouldFragment: func(_, _, v float64) bool {
				return v > moonShatterSpeed
			},
			FragmentCount: 6,
		},
		{
			Name:         "asteroid-strike",
			A:            Cat(sim.Planet),
			B:            Cat(sim.Asteroid),
			Outcome:      To(sim.Planet),
			Tag:          "impact",
			TimeDilation: 0.8,
		},
		{
			Name: "moon-accretion",
			A:    Cat(sim.Moon),
			B:    Cat(sim.Moon),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= planetAccretionMass {
					return sim.Planet
				}
				return sim.Moon
			},
			Tag:          "accretion",
			TimeDilation: 0.6,
		},
		// light rubble sticks without compacting; the mass gate keeps
		// this row above the general accretion rule for small pairs.
		{
			Name:         "pebble-merge",
			A:            Cat(sim.Asteroid),
			B:            Cat(sim.Asteroid),
			MaxMass:      pebbleMass,
			Outcome:      To(sim.Asteroid),
			Tag:          "pebble-merge",
			TimeDilation: 1.0,
		},
		{
			Name: "asteroid-accretion",
			A:    Cat(sim.Asteroid),
			B:    Cat(sim.Asteroid),
			Outcome: func(m1, m2, _ float64) sim.Category {
				if m1+m2 >= moonAccretionMass {
					return sim.Moon
				}
				return sim.Asteroid
			},
			Tag:          "accretion",
			TimeDilation: 0.8,
		},
		// the broad absorptions close the table. quasar ignition must
		// outrank the supermassive wildcard, or no quasar could ever form.
		{
			Name:         "quasar-ignition",
			A:            Cat(sim.SupermassiveBlackHole),
			B:            Cat(sim.Star),
			Outcome:      To(sim.Quasar),
			Tag:          "quasar-ignition",
			TimeDilation: 0.4,
		},
		{
			Name:         "supermassive-absorb",
			A:            Cat(sim.SupermassiveBlackHole),
			B:            Any,
			Outcome:      To(sim.SupermassiveBlackHole),
			Tag:          "absorb",
			TimeDilation: 0.6,
		},
		{
			Name:         "quasar-absorb",
			A:            Cat(sim.Quasar),
			B:            Any,
			Outcome:      To(sim.Quasar),
			Tag:          "absorb",
			TimeDilation: 0.6,
		},
		{
			Name:         "hole-absorb",
			A:            Cat(sim.BlackHole),
			B:            Any,
			Outcome:      To(sim.BlackHole),
			Tag:          "absorb",
			TimeDilation: 0.5,
		},
	}
}
