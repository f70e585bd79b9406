package sim

// Settings are the world-level knobs. They are read every tick, so toggling
// any of them between Step calls takes effect immediately.
type Settings struct {
	// Gravity is the gravitational constant G in simulation units.
	Gravity float64
	// TimeScale is the integration step dt. Values above 1 trade accuracy
	// for speed; it scales motion only, never wall-clock cooldowns.
	TimeScale float64
	// Paused freezes the world: Step becomes a no-op.
	Paused bool
	// Trails enables recording of per-body position history.
	Trails bool
}

// DefaultSettings returns the baseline tuning the presets are balanced for.
func DefaultSettings() Settings {
	return Settings{
		Gravity:   0.5,
		TimeScale: 1.0,
		Trails:    true,
	}
}
