package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/quillaja/spacesim/internal/orbit"
	"github.com/quillaja/spacesim/internal/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scenario file]",
	Short: "Check a scenario file without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().Bool("physics", false, "cross-check orbit math against SI reference values")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if physics, _ := cmd.Flags().GetBool("physics"); physics {
		if err := checkPhysics(cmd); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		return nil
	}

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	w, err := sc.Build(nil)
	if err != nil {
		return err
	}
	cloudBodies := 0
	for _, c := range sc.Clouds {
		cloudBodies += c.Bodies
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"%s: ok\n  bodies: %d declared + %d cloud = %d total\n  gravity %.3g, time scale %.3g\n",
		sc.Name, len(sc.Bodies), cloudBodies, len(w.Bodies),
		w.Settings.Gravity, w.Settings.TimeScale)
	return nil
}

// checkPhysics verifies the orbit helpers against real-world figures:
// low Earth orbit speed, geostationary period, and surface escape
// velocity, each within 1%.
func checkPhysics(cmd *cobra.Command) error {
	const (
		leoAltitude = 400e3    // m
		geoRadius   = 42.164e6 // m
		leoSpeed    = 7670.0   // m/s
		geoPeriod   = 86164.0  // s, one sidereal day
		escapeSpeed = 11186.0  // m/s from Earth's surface
	)
	checks := []struct {
		name      string
		got, want float64
	}{
		{"LEO orbital speed", orbit.Velocity(orbit.G, orbit.EarthMass, orbit.EarthRadius+leoAltitude), leoSpeed},
		{"GEO orbital period", orbit.Period(orbit.G, orbit.EarthMass, geoRadius), geoPeriod},
		{"surface escape speed", orbit.EscapeVelocity(orbit.G, orbit.EarthMass, orbit.EarthRadius), escapeSpeed},
	}

	failed := false
	for _, c := range checks {
		rel := math.Abs(c.got-c.want) / c.want
		status := "ok"
		if rel > 0.01 {
			status = "FAIL"
			failed = true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %12.1f (reference %12.1f, off by %.3f%%) %s\n",
			c.name, c.got, c.want, rel*100, status)
	}
	if failed {
		return fmt.Errorf("physics self-check failed")
	}
	return nil
}
