package ising

import (
	"math"
	"strconv"
)

// CriticalTemperature is the exact Onsager critical temperature of the
// square-lattice Ising model, 2/ln(1+√2).
const CriticalTemperature = 2.269185314213022

// Config controls the lattice dimensions, topology, and the three selectable
// strategies.
type Config struct {
	// Size is the side length of the active interior.
	Size     int      `json:"size"`
	Topology Topology `json:"topology"`

	Temperature float64 `json:"temperature"`

	Visitation VisitationMode `json:"visit"`
	Acceptance AcceptanceMode `json:"accept"`
	// Boundary applies to haloed lattices only.
	Boundary BoundaryMode `json:"boundary"`
	Init     InitPattern  `json:"init"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:        64,
		Topology:    Torus,
		Temperature: math.Round(CriticalTemperature*1000) / 1000,
		Visitation:  VisitTypewriter,
		Acceptance:  AcceptMetropolis,
		Boundary:    BoundaryWraparound,
		Init:        InitScrambled,
		Seed:        42,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Size < 1 {
		return invalid("size", strconv.Itoa(c.Size), "must be at least 1")
	}
	if err := checkTemperature(c.Temperature); err != nil {
		return err
	}
	if c.Topology != Torus && c.Topology != Halo {
		return unknown("topology", c.Topology.String())
	}
	if int(c.Visitation) >= len(visitationNames) {
		return unknown("visitation mode", c.Visitation.String())
	}
	if int(c.Acceptance) >= len(acceptanceNames) {
		return unknown("acceptance mode", c.Acceptance.String())
	}
	if int(c.Boundary) >= len(boundaryNames) {
		return unknown("boundary mode", c.Boundary.String())
	}
	if int(c.Init) >= len(initNames) {
		return unknown("init pattern", c.Init.String())
	}
	return nil
}

func checkTemperature(t float64) error {
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return invalid("temperature", strconv.FormatFloat(t, 'g', -1, 64), "must be positive and finite")
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys are ignored; malformed values for known keys are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["size"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return c, invalid("size", v, "must be a positive integer")
		}
		c.Size = parsed
	}
	if v, ok := cfg["topology"]; ok {
		t, err := ParseTopology(v)
		if err != nil {
			return c, err
		}
		c.Topology = t
	}
	if v, ok := cfg["temperature"]; ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, invalid("temperature", v, "not a number")
		}
		if err := checkTemperature(parsed); err != nil {
			return c, err
		}
		c.Temperature = parsed
	}
	if v, ok := cfg["visit"]; ok {
		m, err := ParseVisitation(v)
		if err != nil {
			return c, err
		}
		c.Visitation = m
	}
	if v, ok := cfg["accept"]; ok {
		m, err := ParseAcceptance(v)
		if err != nil {
			return c, err
		}
		c.Acceptance = m
	}
	if v, ok := cfg["boundary"]; ok {
		m, err := ParseBoundary(v)
		if err != nil {
			return c, err
		}
		c.Boundary = m
	}
	if v, ok := cfg["init"]; ok {
		p, err := ParseInit(v)
		if err != nil {
			return c, err
		}
		c.Init = p
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, invalid("seed", v, "not an integer")
		}
		c.Seed = parsed
	}
	return c, nil
}
