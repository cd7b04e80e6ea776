package main

import (
	"flag"

	"ising/internal/ising"
	"ising/internal/scheduler"
)

// Config represents the command-line parameters for the driver.
type Config struct {
	Sim         ising.Config
	Addr        string
	TPS         int
	Granularity string
	Sweeps      int
	Verbose     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:         ising.DefaultConfig(),
		Addr:        ":8080",
		TPS:         30,
		Granularity: scheduler.PerSweep.String(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.Sim.Bind(fs)
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address for the /ws endpoint")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Granularity, "granularity", c.Granularity, "work per tick (sweep, microstep)")
	fs.IntVar(&c.Sweeps, "sweeps", c.Sweeps, "run this many sweeps headless and exit instead of serving")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}
