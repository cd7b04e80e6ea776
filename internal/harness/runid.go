package harness

import (
	"fmt"
	"strconv"
	"strings"

	"ising/internal/ising"
)

// RunID builds a descriptive identifier from the experiment parameters, for
// example n64_torus_T2.269_typewriter_M_rule_scrambled_b100_s1000_r10.
// Haloed lattices include the boundary rule after the acceptance rule; the
// temperature-step protocol renders temperatures as T1..T2 and steps as
// T1steps+T2steps.
func RunID(cfg Config) string {
	sim := cfg.Sim
	parts := []string{
		fmt.Sprintf("n%d", sim.Size),
		sim.Topology.String(),
	}
	temp := "T" + formatFloat(sim.Temperature)
	steps := fmt.Sprintf("s%d", cfg.Steps)
	if cfg.Protocol == TemperatureStep {
		temp += ".." + formatFloat(cfg.T2)
		steps += fmt.Sprintf("+%d", cfg.T2Steps)
	}
	parts = append(parts, temp, sim.Visitation.String(), sim.Acceptance.String())
	if sim.Topology == ising.Halo {
		parts = append(parts, sim.Boundary.String())
	}
	parts = append(parts,
		sim.Init.String(),
		fmt.Sprintf("b%d", cfg.BurnIn),
		steps,
		fmt.Sprintf("r%d", cfg.Repetitions),
	)
	return strings.Join(parts, "_")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
