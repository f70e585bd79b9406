package scenario

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/spacesim/internal/orbit"
	"github.com/quillaja/spacesim/internal/sim"
)

// Build constructs a world from the scenario: explicit bodies first, then
// wormhole links, then clouds, then auto-orbit velocities. The resolver
// may be nil for detection-only worlds.
func (sc *Scenario) Build(r sim.Resolver) (*sim.World, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	w := sim.NewWorld(sc.Settings.Settings(), r)
	if sc.Seed != 0 {
		w.Seed(sc.Seed, sc.Seed+1)
	}

	byName := make(map[string]*sim.Body, len(sc.Bodies))
	for i := range sc.Bodies {
		b, err := sc.Bodies[i].build()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if err := w.Add(b); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if sc.Bodies[i].Name != "" {
			byName[sc.Bodies[i].Name] = b
		}
	}

	for i := range sc.Bodies {
		bs := &sc.Bodies[i]
		if bs.Pair == "" {
			continue
		}
		a, b := byName[bs.Name], byName[bs.Pair]
		if a.PairID != 0 {
			// the symmetric declaration already linked this pair
			continue
		}
		if err := sim.LinkWormholes(a, b); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}

	for i := range sc.Clouds {
		if err := buildCloud(w, &sc.Clouds[i], byName); err != nil {
			return nil, fmt.Errorf("cloud %d: %w", i, err)
		}
	}

	if sc.AutoOrbit {
		autoOrbit(w)
	}
	return w, nil
}

func (bs *BodySpec) build() (*sim.Body, error) {
	cat, err := sim.ParseCategory(bs.Category)
	if err != nil {
		return nil, err
	}
	pos, vel := vec(bs.Pos), vec(bs.Vel)
	var b *sim.Body
	if cat == sim.Anomaly {
		sub, err := sim.ParseAnomalySubtype(bs.Anomaly)
		if err != nil {
			return nil, err
		}
		b, err = sim.NewAnomaly(sub, bs.Mass, bs.Radius, pos)
		if err != nil {
			return nil, err
		}
	} else {
		b, err = sim.NewBody(cat, bs.Mass, bs.Radius, pos, vel)
		if err != nil {
			return nil, err
		}
	}
	b.Name = bs.Name
	return b, nil
}

// buildCloud scatters particles around a center with normally distributed
// positions and masses. With a core, each particle gets the circular
// orbital velocity for its distance, scaled by dampening, on top of the
// core's own motion.
func buildCloud(w *sim.World, cs *CloudSpec, byName map[string]*sim.Body) error {
	cat := sim.Asteroid
	if cs.Category != "" {
		var err error
		if cat, err = sim.ParseCategory(cs.Category); err != nil {
			return err
		}
	}
	var core *sim.Body
	if cs.Core != "" {
		core = byName[cs.Core]
	}
	damp := cs.Dampening
	if damp == 0 {
		damp = 1
	}
	center := vec(cs.Center)
	rng := w.Rand()

	for i := 0; i < cs.Bodies; i++ {
		pos := center.Add(mgl64.Vec2{
			rng.NormFloat64() * cs.Spread,
			rng.NormFloat64() * cs.Spread,
		})
		mass := math.Abs(rng.NormFloat64()*cs.MassStddev + cs.MeanMass)
		if mass <= 0 {
			mass = cs.MeanMass
		}
		b, err := sim.NewBody(cat, mass, cs.Radius, pos, mgl64.Vec2{})
		if err != nil {
			return err
		}
		if core != nil {
			b.Vel = orbitalVelocity(w.Settings.Gravity, core, pos).Mul(damp).Add(core.Vel)
		}
		if err := w.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// autoOrbit gives every still body a circular orbit around the heaviest
// non-anomaly body. The heaviest body itself and anything already moving
// are left alone.
func autoOrbit(w *sim.World) {
	var central *sim.Body
	for _, b := range w.Bodies {
		if b.Category == sim.Anomaly {
			continue
		}
		if central == nil || b.Mass > central.Mass {
			central = b
		}
	}
	if central == nil {
		return
	}
	for _, b := range w.Bodies {
		if b == central || b.Category == sim.Anomaly {
			continue
		}
		if b.Vel.Len() != 0 {
			continue
		}
		v := orbitalVelocity(w.Settings.Gravity, central, b.Pos)
		if v.Len() == 0 {
			continue
		}
		b.Vel = v.Add(central.Vel)
	}
}

// orbitalVelocity returns the circular orbit velocity at pos around the
// core, perpendicular to the radial direction, counterclockwise. Zero
// when pos sits on the core.
func orbitalVelocity(g float64, core *sim.Body, pos mgl64.Vec2) mgl64.Vec2 {
	d := pos.Sub(core.Pos)
	r := d.Len()
	if r == 0 {
		return mgl64.Vec2{}
	}
	speed := orbit.Velocity(g, core.Mass, r)
	return mgl64.Vec2{-d.Y(), d.X()}.Mul(speed / r)
}

// vec converts an optional 2-element slice, validated earlier, to a vector.
func vec(xs []float64) mgl64.Vec2 {
	if len(xs) != 2 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{xs[0], xs[1]}
}
