package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"ising/internal/harness"
)

// tempList collects temperatures from comma-separated or repeated flags.
type tempList []float64

func (l *tempList) String() string {
	parts := make([]string, len(*l))
	for i, t := range *l {
		parts[i] = strconv.FormatFloat(t, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *tempList) Set(value string) error {
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		t, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("bad temperature %q", field)
		}
		*l = append(*l, t)
	}
	return nil
}

// Config represents the command-line parameters for the measurement tool.
type Config struct {
	Run     harness.Config
	Temps   tempList
	Workers int
	Plot    bool
	Series  bool
	JSON    bool
	Bins    int
	Verbose bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Run:     harness.DefaultConfig(),
		Workers: runtime.NumCPU(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.Run.Sim.Bind(fs)
	fs.TextVar(&c.Run.Protocol, "protocol", c.Run.Protocol, "experiment protocol (equilibrium, step)")
	fs.IntVar(&c.Run.BurnIn, "burnin", c.Run.BurnIn, "discarded sweeps before recording")
	fs.IntVar(&c.Run.Steps, "steps", c.Run.Steps, "recorded sweeps (sweeps at the first temperature for -protocol step)")
	fs.IntVar(&c.Run.Repetitions, "reps", c.Run.Repetitions, "independent repetitions")
	fs.BoolVar(&c.Run.StdDev, "stdev", c.Run.StdDev, "report sample standard deviations")
	fs.Float64Var(&c.Run.T2, "t2", c.Run.T2, "second temperature for -protocol step")
	fs.IntVar(&c.Run.T2Steps, "t2steps", c.Run.T2Steps, "recorded sweeps at the second temperature")
	fs.Var(&c.Temps, "temps", "comma-separated temperatures to scan (repeatable)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel experiments during a scan")
	fs.BoolVar(&c.Plot, "plot", c.Plot, "draw the series as an ASCII chart")
	fs.BoolVar(&c.Series, "series", c.Series, "print the per-sweep mean series")
	fs.BoolVar(&c.JSON, "json", c.JSON, "emit results as JSON")
	fs.IntVar(&c.Bins, "hist", c.Bins, "magnetization histogram bins (0 disables)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}
