// Command spacesim runs headless 2D stellar n-body simulations: gravity
// with anomalies, a fusion rule table for collisions, and frame recording
// for external renderers.
package main

import "github.com/quillaja/spacesim/cmd"

func main() {
	cmd.Execute()
}
