// Package fusion decides what collisions turn into. An ordered rule table
// maps category pairs to outcomes; the first matching rule wins, and a
// synthesized fallback guarantees every pair resolves.
package fusion

import (
	"github.com/quillaja/spacesim/internal/sim"
)

// Matcher selects bodies by category, or anything when Wildcard is set.
type Matcher struct {
	Wildcard bool
	Category sim.Category
}

// Any matches every category.
var Any = Matcher{Wildcard: true}

// Cat matches exactly one category.
func Cat(c sim.Category) Matcher {
	return Matcher{Category: c}
}

func (m Matcher) matches(c sim.Category) bool {
	return m.Wildcard || m.Category == c
}

// OutcomeFunc maps the colliding masses and relative speed to the merged
// body's category. Pure domain policy: no world state, no randomness.
type OutcomeFunc func(m1, m2, impactSpeed float64) sim.Category

// FragmentFunc reports whether the collision shatters instead of merging.
type FragmentFunc func(m1, m2, impactSpeed float64) bool

// To builds an OutcomeFunc that always yields c. Most rules have a fixed
// product and only a few switch on mass.
func To(c sim.Category) OutcomeFunc {
	return func(_, _, _ float64) sim.Category { return c }
}

// Rule is one row of the fusion table.
//
// A and B match the pair in either order. MinMass and MaxMass, when
// nonzero, gate on each body's individual mass; a rule only matches when
// both bodies pass. Outcome must be set. ShouldFragment is optional; when
// it fires, FragmentCount pieces are produced (0 means the default).
type Rule struct {
	Name string
	A, B Matcher

	MinMass float64
	MaxMass float64

	Outcome      OutcomeFunc
	Tag          string
	TimeDilation float64

	ShouldFragment FragmentFunc
	FragmentCount  int
}

// Matches reports whether the rule applies to the pair, checking both
// orderings and the mass gates.
func (r Rule) Matches(a, b *sim.Body) bool {
	if !r.inMassRange(a.Mass) || !r.inMassRange(b.Mass) {
		return false
	}
	if r.A.matches(a.Category) && r.B.matches(b.Category) {
		return true
	}
	return r.A.matches(b.Category) && r.B.matches(a.Category)
}

func (r Rule) inMassRange(m float64) bool {
	if r.MinMass > 0 && m < r.MinMass {
		return false
	}
	if r.MaxMass > 0 && m > r.MaxMass {
		return false
	}
	return true
}
