package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AnomalySubtype distinguishes the behaviors of anomaly bodies. Ordinary
// bodies carry AnomalyNone.
type AnomalySubtype uint8

const (
	AnomalyNone AnomalySubtype = iota
	AnomalyWormhole
	AnomalyRepulsor
)

var anomalyNames = [...]string{
	AnomalyNone:     "none",
	AnomalyWormhole: "wormhole",
	AnomalyRepulsor: "repulsor",
}

func (s AnomalySubtype) String() string {
	if int(s) < len(anomalyNames) {
		return anomalyNames[s]
	}
	return fmt.Sprintf("anomaly(%d)", uint8(s))
}

// ParseAnomalySubtype maps a scenario-file name to its subtype.
func ParseAnomalySubtype(s string) (AnomalySubtype, error) {
	for i, name := range anomalyNames {
		if s == name {
			return AnomalySubtype(i), nil
		}
	}
	return 0, fmt.Errorf("unknown anomaly subtype %q", s)
}

// maxTrail caps recorded trail points per body.
const maxTrail = 50

// Body is a point mass with a collision radius. Position and velocity use
// mgl64 vectors so integration and force math stay allocation-free.
type Body struct {
	ID       uint64
	Name     string
	Category Category
	Color    string

	Mass   float64
	Radius float64
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2

	// rendering-only position history, bounded to maxTrail points.
	// never feeds back into forces or collisions.
	Trail []mgl64.Vec2

	// anomaly state, zero for ordinary bodies. PairID links a wormhole
	// to its partner; LastTeleport is wall-clock for cooldown checks.
	Subtype      AnomalySubtype
	PairID       uint64
	LastTeleport time.Time

	// merger lineage, zero for primordial bodies.
	Parents    [2]uint64
	FormedBy   string
	FormedAt   time.Time
	Generation int

	// per-tick acceleration accumulator, cleared by the integrator.
	acc mgl64.Vec2
}

// NewBody constructs a validated ordinary body. The id is assigned later
// by the world on Add. Name is left empty for the caller to fill or
// generate. Anomalies go through NewAnomaly instead.
func NewBody(cat Category, mass, radius float64, pos, vel mgl64.Vec2) (*Body, error) {
	if cat == Anomaly {
		return nil, fmt.Errorf("anomaly bodies need a subtype, use NewAnomaly")
	}
	b := &Body{
		Category: cat,
		Color:    cat.Color(),
		Mass:     mass,
		Radius:   radius,
		Pos:      pos,
		Vel:      vel,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewAnomaly constructs a validated anomaly body. Wormholes are created
// unlinked; pair them afterwards with LinkWormholes.
func NewAnomaly(sub AnomalySubtype, mass, radius float64, pos mgl64.Vec2) (*Body, error) {
	if sub == AnomalyNone {
		return nil, fmt.Errorf("anomaly subtype required")
	}
	b := &Body{
		Category: Anomaly,
		Color:    Anomaly.Color(),
		Subtype:  sub,
		Mass:     mass,
		Radius:   radius,
		Pos:      pos,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the physical invariants every live body must satisfy.
func (b *Body) Validate() error {
	if b.Mass <= 0 {
		return fmt.Errorf("body %d: mass must be positive, got %v", b.ID, b.Mass)
	}
	if b.Radius <= 0 {
		return fmt.Errorf("body %d: radius must be positive, got %v", b.ID, b.Radius)
	}
	if (b.Category == Anomaly) != (b.Subtype != AnomalyNone) {
		return fmt.Errorf("body %d: category %v with anomaly subtype %v", b.ID, b.Category, b.Subtype)
	}
	if b.PairID != 0 && b.Subtype != AnomalyWormhole {
		return fmt.Errorf("body %d: pair link on non-wormhole %v", b.ID, b.Subtype)
	}
	return nil
}

// LinkWormholes joins two wormhole bodies bidirectionally. Either may
// already be linked; links are overwritten, not accumulated.
func LinkWormholes(a, b *Body) error {
	if a.Subtype != AnomalyWormhole || b.Subtype != AnomalyWormhole {
		return fmt.Errorf("link requires two wormholes, got %v and %v", a.Subtype, b.Subtype)
	}
	if a.ID == 0 || b.ID == 0 {
		return fmt.Errorf("link requires bodies with assigned ids")
	}
	if a.ID == b.ID {
		return fmt.Errorf("wormhole %d cannot link to itself", a.ID)
	}
	a.PairID = b.ID
	b.PairID = a.ID
	return nil
}

// recordTrail pushes the current position, dropping the oldest point once
// the cap is hit.
func (b *Body) recordTrail() {
	b.Trail = append(b.Trail, b.Pos)
	if len(b.Trail) > maxTrail {
		b.Trail = b.Trail[1:]
	}
}

func (b *Body) clearTrail() {
	b.Trail = b.Trail[:0]
}

// Clone returns a deep copy; the trail backing array is not shared.
func (b *Body) Clone() *Body {
	c := *b
	if b.Trail != nil {
		c.Trail = make([]mgl64.Vec2, len(b.Trail))
		copy(c.Trail, b.Trail)
	}
	return &c
}

// dist is the center distance between two bodies.
func dist(a, b *Body) float64 {
	return a.Pos.Sub(b.Pos).Len()
}
