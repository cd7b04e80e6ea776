package ising

import (
	"flag"
	"strings"
)

// Bind attaches the configuration to the provided FlagSet. Mode flags take
// the same names accepted by the Parse functions.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "interior side length")
	fs.TextVar(&c.Topology, "topology", c.Topology, "lattice topology (torus, halo)")
	fs.Float64Var(&c.Temperature, "temperature", c.Temperature, "temperature in units of J/k")
	fs.TextVar(&c.Visitation, "visit", c.Visitation, "visitation mode ("+strings.Join(names(VisitationModes(), VisitationMode.String), ", ")+")")
	fs.TextVar(&c.Acceptance, "accept", c.Acceptance, "acceptance rule ("+strings.Join(names(AcceptanceModes(), AcceptanceMode.String), ", ")+")")
	fs.TextVar(&c.Boundary, "boundary", c.Boundary, "boundary rule for halo lattices ("+strings.Join(names(BoundaryModes(), BoundaryMode.String), ", ")+")")
	fs.TextVar(&c.Init, "init", c.Init, "initial pattern (scrambled, up, down)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random stream")
}
