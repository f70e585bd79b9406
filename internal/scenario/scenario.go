// Package scenario loads initial-condition files and builds worlds from
// them. Scenarios are TOML: explicit bodies, optional particle clouds, and
// world settings. A few presets are compiled in.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quillaja/spacesim/internal/sim"
)

// Scenario is a declarative initial state plus world settings.
type Scenario struct {
	Name string `mapstructure:"name"`
	// Seed pins the world's random streams; 0 means time-seeded.
	Seed int64 `mapstructure:"seed"`
	// AutoOrbit gives every zero-velocity body a circular orbit around
	// the heaviest body after all bodies are placed.
	AutoOrbit bool `mapstructure:"auto_orbit"`

	Settings SettingsSpec `mapstructure:"settings"`
	Bodies   []BodySpec   `mapstructure:"bodies"`
	Clouds   []CloudSpec  `mapstructure:"clouds"`
}

// SettingsSpec mirrors sim.Settings with file-friendly keys.
type SettingsSpec struct {
	Gravity   float64 `mapstructure:"gravity"`
	TimeScale float64 `mapstructure:"time_scale"`
	Paused    bool    `mapstructure:"paused"`
	Trails    bool    `mapstructure:"trails"`
}

// Settings converts to the runtime type, mapping an unset time scale to 1.
func (s SettingsSpec) Settings() sim.Settings {
	out := sim.Settings{
		Gravity:   s.Gravity,
		TimeScale: s.TimeScale,
		Paused:    s.Paused,
		Trails:    s.Trails,
	}
	if out.TimeScale == 0 {
		out.TimeScale = 1
	}
	return out
}

// BodySpec declares one explicit body.
type BodySpec struct {
	Name     string `mapstructure:"name"`
	Category string `mapstructure:"category"`
	// Anomaly is the subtype for category "anomaly" bodies.
	Anomaly string `mapstructure:"anomaly"`
	// Pair names the partner wormhole. One-sided declarations are fine;
	// links are installed bidirectionally.
	Pair   string    `mapstructure:"pair"`
	Mass   float64   `mapstructure:"mass"`
	Radius float64   `mapstructure:"radius"`
	Pos    []float64 `mapstructure:"pos"`
	Vel    []float64 `mapstructure:"vel"`
}

// CloudSpec declares a randomized particle cloud: positions normally
// distributed around a center, masses normally distributed around a mean.
// With a core named, each particle starts on a circular orbit around it.
type CloudSpec struct {
	Bodies     int       `mapstructure:"bodies"`
	Category   string    `mapstructure:"category"`
	Center     []float64 `mapstructure:"center"`
	Spread     float64   `mapstructure:"spread"`
	MeanMass   float64   `mapstructure:"mean_mass"`
	MassStddev float64   `mapstructure:"mass_stddev"`
	Radius     float64   `mapstructure:"radius"`
	Core       string    `mapstructure:"core"`
	// Dampening scales the orbital speed; below 1 the cloud spirals in.
	Dampening float64 `mapstructure:"dampening"`
}

// Load reads and validates a scenario file. Format follows the extension;
// the presets and docs use TOML.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("settings.gravity", sim.DefaultSettings().Gravity)
	v.SetDefault("settings.time_scale", sim.DefaultSettings().TimeScale)
	v.SetDefault("settings.trails", sim.DefaultSettings().Trails)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var sc Scenario
	if err := v.Unmarshal(&sc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return &sc, nil
}

// Validate checks every declaration before any body is constructed, so a
// bad file is rejected whole instead of building a partial world.
func (sc *Scenario) Validate() error {
	names := make(map[string]*BodySpec, len(sc.Bodies))
	for i := range sc.Bodies {
		bs := &sc.Bodies[i]
		if bs.Name != "" {
			if _, dup := names[bs.Name]; dup {
				return fmt.Errorf("duplicate body name %q", bs.Name)
			}
			names[bs.Name] = bs
		}
	}
	for i := range sc.Bodies {
		if err := sc.Bodies[i].validate(names); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	for i := range sc.Clouds {
		if err := sc.Clouds[i].validate(names); err != nil {
			return fmt.Errorf("cloud %d: %w", i, err)
		}
	}
	return nil
}

func (bs *BodySpec) validate(names map[string]*BodySpec) error {
	cat, err := sim.ParseCategory(bs.Category)
	if err != nil {
		return err
	}
	if bs.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %v", bs.Mass)
	}
	if bs.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", bs.Radius)
	}
	if err := checkVec(bs.Pos, "pos"); err != nil {
		return err
	}
	if err := checkVec(bs.Vel, "vel"); err != nil {
		return err
	}
	if (cat == sim.Anomaly) != (bs.Anomaly != "") {
		return fmt.Errorf("anomaly subtype set on category %q", bs.Category)
	}
	var sub sim.AnomalySubtype
	if bs.Anomaly != "" {
		if sub, err = sim.ParseAnomalySubtype(bs.Anomaly); err != nil {
			return err
		}
		if sub == sim.AnomalyNone {
			return fmt.Errorf("anomaly subtype cannot be %q", bs.Anomaly)
		}
	}
	if bs.Pair != "" {
		if sub != sim.AnomalyWormhole {
			return fmt.Errorf("pair set on non-wormhole body")
		}
		if bs.Name == "" {
			return fmt.Errorf("paired wormhole needs a name")
		}
		partner, ok := names[bs.Pair]
		if !ok {
			return fmt.Errorf("pair %q not found", bs.Pair)
		}
		if partner == bs {
			return fmt.Errorf("wormhole %q pairs with itself", bs.Name)
		}
		if partner.Anomaly != "wormhole" {
			return fmt.Errorf("pair %q is not a wormhole", bs.Pair)
		}
		if partner.Pair != "" && partner.Pair != bs.Name {
			return fmt.Errorf("pair %q already links to %q", bs.Pair, partner.Pair)
		}
	}
	return nil
}

func (cs *CloudSpec) validate(names map[string]*BodySpec) error {
	if cs.Bodies <= 0 {
		return fmt.Errorf("bodies must be positive, got %d", cs.Bodies)
	}
	if cs.Category != "" {
		cat, err := sim.ParseCategory(cs.Category)
		if err != nil {
			return err
		}
		if cat == sim.Anomaly {
			return fmt.Errorf("clouds cannot be anomalies")
		}
	}
	if cs.Spread <= 0 {
		return fmt.Errorf("spread must be positive, got %v", cs.Spread)
	}
	if cs.MeanMass <= 0 {
		return fmt.Errorf("mean_mass must be positive, got %v", cs.MeanMass)
	}
	if cs.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", cs.Radius)
	}
	if err := checkVec(cs.Center, "center"); err != nil {
		return err
	}
	if cs.Core != "" {
		if _, ok := names[cs.Core]; !ok {
			return fmt.Errorf("core %q not found", cs.Core)
		}
	}
	if cs.Dampening < 0 {
		return fmt.Errorf("dampening cannot be negative, got %v", cs.Dampening)
	}
	return nil
}

func checkVec(xs []float64, field string) error {
	if xs != nil && len(xs) != 2 {
		return fmt.Errorf("%s needs exactly 2 components, got %d", field, len(xs))
	}
	return nil
}
