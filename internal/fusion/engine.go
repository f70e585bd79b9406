package fusion

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/spacesim/internal/sim"
)

const (
	// fragments produced when a rule fires without its own count
	defaultFragmentCount = 5
	// half-width of the random angular offset on the fragment ring
	fragmentAngleJitter = 0.35
	// fraction of the impact speed that drives fragment ejection
	fragmentEjectFraction = 0.4
	// floor on the ejection speed scale for slow shatters
	fragmentMinEject = 1.0
)

// debrisCategory is what shattered matter becomes regardless of what the
// parents were.
const debrisCategory = sim.Asteroid

// Engine resolves collision events against an ordered rule table. It
// implements sim.Resolver.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over a copy of the given rules. Panics on a
// rule with no outcome function, a defect no simulation should start with.
func NewEngine(rules []Rule) *Engine {
	for i, r := range rules {
		if r.Outcome == nil {
			panic(fmt.Sprintf("fusion: rule %d (%s) has no outcome", i, r.Name))
		}
	}
	e := &Engine{rules: make([]Rule, len(rules))}
	copy(e.rules, rules)
	return e
}

// Standard returns an engine over StandardRules.
func Standard() *Engine {
	return NewEngine(StandardRules())
}

// Rules exposes the table in match order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Match returns the first rule in table order that applies to the pair.
// ok is false when only the built-in fallback would apply.
func (e *Engine) Match(a, b *sim.Body) (Rule, bool) {
	for _, r := range e.rules {
		if r.Matches(a, b) {
			return r, true
		}
	}
	return Rule{}, false
}

// fallbackFor synthesizes the catch-all rule: the heavier body's category
// survives, ties go to the first of the pair. Built per event because the
// winning category depends on the bodies, not the table.
func fallbackFor(a, b *sim.Body) Rule {
	winner := a.Category
	if b.Mass > a.Mass {
		winner = b.Category
	}
	return Rule{
		Name:         "fallback",
		A:            Any,
		B:            Any,
		Outcome:      To(winner),
		Tag:          "merge",
		TimeDilation: 1.0,
	}
}

// Resolve maps one collision event to its outcome. Every pair resolves:
// an unmatched pair falls through to the synthesized fallback, so there is
// no error path out of here.
func (e *Engine) Resolve(w *sim.World, ev sim.CollisionEvent) sim.CollisionResult {
	rule, ok := e.Match(&ev.A, &ev.B)
	if !ok {
		rule = fallbackFor(&ev.A, &ev.B)
	}
	if rule.ShouldFragment != nil && rule.ShouldFragment(ev.A.Mass, ev.B.Mass, ev.ImpactSpeed) {
		return e.fragment(w, ev, rule)
	}
	return e.merge(w, ev, rule)
}

// merge fuses the pair into one body under the conservation laws: exact
// mass sum, momentum-conserving velocity, mass-weighted position, and a
// radius from summing the parent volumes.
func (e *Engine) merge(w *sim.World, ev sim.CollisionEvent, rule Rule) sim.CollisionResult {
	a, b := &ev.A, &ev.B
	mass := a.Mass + b.Mass
	cat := rule.Outcome(a.Mass, b.Mass, ev.ImpactSpeed)
	nb := &sim.Body{
		ID:         w.NextID(),
		Name:       sim.GenerateName(cat, w.Cosmetic()),
		Category:   cat,
		Color:      cat.Color(),
		Mass:       mass,
		Radius:     radius(volume(a.Radius) + volume(b.Radius)),
		Pos:        a.Pos.Mul(a.Mass).Add(b.Pos.Mul(b.Mass)).Mul(1 / mass),
		Vel:        a.Vel.Mul(a.Mass).Add(b.Vel.Mul(b.Mass)).Mul(1 / mass),
		Parents:    [2]uint64{a.ID, b.ID},
		FormedBy:   rule.Tag,
		FormedAt:   w.Now(),
		Generation: maxGeneration(a, b) + 1,
	}
	return sim.CollisionResult{
		Created:      []*sim.Body{nb},
		Removed:      [2]uint64{a.ID, b.ID},
		Rule:         rule.Name,
		Tag:          rule.Tag,
		TimeDilation: rule.TimeDilation,
		Event:        ev,
	}
}

// fragment shatters the pair into a ring of debris around the impact
// point. Fragment masses are drawn between 50% and 100% of the even split,
// so the debris field can weigh less than its parents but never more; the
// deficit is treated as vaporized.
func (e *Engine) fragment(w *sim.World, ev sim.CollisionEvent, rule Rule) sim.CollisionResult {
	a, b := &ev.A, &ev.B
	count := rule.FragmentCount
	if count <= 0 {
		count = defaultFragmentCount
	}
	total := a.Mass + b.Mass
	share := total / float64(count)
	avgVel := a.Vel.Add(b.Vel).Mul(0.5)
	ringRadius := a.Radius + b.Radius
	combinedVol := volume(a.Radius) + volume(b.Radius)
	ejectScale := math.Max(fragmentMinEject, ev.ImpactSpeed*fragmentEjectFraction)
	gen := maxGeneration(a, b) + 1
	formed := w.Now()
	rng := w.Rand()

	created := make([]*sim.Body, 0, count)
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + (rng.Float64()-0.5)*fragmentAngleJitter
		sin, cos := math.Sincos(angle)
		dir := mgl64.Vec2{cos, sin}
		mass := share * (0.5 + 0.5*rng.Float64())
		speed := (0.5 + 0.5*rng.Float64()) * ejectScale
		created = append(created, &sim.Body{
			ID:         w.NextID(),
			Name:       sim.GenerateName(debrisCategory, w.Cosmetic()),
			Category:   debrisCategory,
			Color:      debrisCategory.Color(),
			Mass:       mass,
			Radius:     radius(combinedVol * mass / total),
			Pos:        ev.Point.Add(dir.Mul(ringRadius)),
			Vel:        avgVel.Add(dir.Mul(speed)),
			Parents:    [2]uint64{a.ID, b.ID},
			FormedBy:   rule.Tag,
			FormedAt:   formed,
			Generation: gen,
		})
	}
	return sim.CollisionResult{
		Created:      created,
		Removed:      [2]uint64{a.ID, b.ID},
		Rule:         rule.Name,
		Tag:          rule.Tag,
		TimeDilation: rule.TimeDilation,
		Fragmented:   true,
		Event:        ev,
	}
}

// volume of a sphere from its radius.
func volume(radius float64) float64 {
	return (4.0 / 3.0) * math.Pi * math.Pow(radius, 3)
}

// radius of a sphere from its volume.
func radius(volume float64) float64 {
	return math.Pow(volume/((4.0/3.0)*math.Pi), 1.0/3.0)
}

func maxGeneration(a, b *sim.Body) int {
	if a.Generation > b.Generation {
		return a.Generation
	}
	return b.Generation
}
