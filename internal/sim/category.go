package sim

import (
	"fmt"
	"math/rand"
)

// Category classifies a body. The set is closed: collision rules and fusion
// outcomes dispatch on it, and scenario files name members in kebab-case.
type Category uint8

const (
	Asteroid Category = iota
	Moon
	Planet
	Star
	WhiteDwarf
	BrownDwarf
	NeutronStar
	Pulsar
	Magnetar
	RedGiant
	BlueGiant
	RedHypergiant
	BlackHole
	Quasar
	SupermassiveBlackHole
	Anomaly
)

var categoryNames = [...]string{
	Asteroid:              "asteroid",
	Moon:                  "moon",
	Planet:                "planet",
	Star:                  "star",
	WhiteDwarf:            "white-dwarf",
	BrownDwarf:            "brown-dwarf",
	NeutronStar:           "neutron-star",
	Pulsar:                "pulsar",
	Magnetar:              "magnetar",
	RedGiant:              "red-giant",
	BlueGiant:             "blue-giant",
	RedHypergiant:         "red-hypergiant",
	BlackHole:             "black-hole",
	Quasar:                "quasar",
	SupermassiveBlackHole: "supermassive-black-hole",
	Anomaly:               "anomaly",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory maps a kebab-case name back to its Category.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// display colors, loosely based on stellar classification charts.
// categories map to a fixed hex color so merged bodies look consistent
// regardless of which renderer consumes the snapshots.
var categoryColors = [...]string{
	Asteroid:              "#8a8178",
	Moon:                  "#cfc9c2",
	Planet:                "#4f9ae8",
	Star:                  "#fff4ea",
	WhiteDwarf:            "#f8f7ff",
	BrownDwarf:            "#b07b4f",
	NeutronStar:           "#cad7ff",
	Pulsar:                "#aabfff",
	Magnetar:              "#b9a7ff",
	RedGiant:              "#ff6f4f",
	BlueGiant:             "#9bb0ff",
	RedHypergiant:         "#ff4433",
	BlackHole:             "#1a1a24",
	Quasar:                "#e8d4ff",
	SupermassiveBlackHole: "#0d0d12",
	Anomaly:               "#66ffe0",
}

// Color returns the display color for the category as a hex string.
func (c Category) Color() string {
	if int(c) < len(categoryColors) {
		return categoryColors[c]
	}
	return "#c8c8ff"
}

// catalog prefixes for generated designations, in the spirit of real survey
// catalogs (HD, PSR, WD, ...).
var categoryPrefixes = [...]string{
	Asteroid:              "MPC",
	Moon:                  "SAT",
	Planet:                "KOI",
	Star:                  "HD",
	WhiteDwarf:            "WD",
	BrownDwarf:            "LHS",
	NeutronStar:           "PSR",
	Pulsar:                "PSR",
	Magnetar:              "SGR",
	RedGiant:              "HR",
	BlueGiant:             "HR",
	RedHypergiant:         "VY",
	BlackHole:             "CYG",
	Quasar:                "3C",
	SupermassiveBlackHole: "M",
	Anomaly:               "ANM",
}

var decorativePrefixes = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Tau", "Sigma", "Omega", "Nova",
}

// GenerateName produces a display name for a new body of category c.
// Purely cosmetic: the rng should be a world's cosmetic stream so names
// never perturb physical state.
func GenerateName(c Category, rng *rand.Rand) string {
	prefix := "OBJ"
	if int(c) < len(categoryPrefixes) {
		prefix = categoryPrefixes[c]
	}
	name := fmt.Sprintf("%s-%d", prefix, 1000+rng.Intn(9000))
	if rng.Float64() < 0.3 {
		name = decorativePrefixes[rng.Intn(len(decorativePrefixes))] + " " + name
	}
	return name
}
