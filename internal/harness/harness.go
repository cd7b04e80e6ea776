// Package harness runs the Ising engine headlessly for many sweeps and
// repetitions and reduces the readouts to mean series, mean±stdev summaries
// and magnetization histograms.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ising/internal/ising"
)

// ErrDegenerateStatistics is returned when a standard deviation is requested
// over fewer than two recorded sweeps.
var ErrDegenerateStatistics = errors.New("harness: standard deviation needs at least two recorded sweeps")

// Protocol selects the experiment shape.
type Protocol uint8

const (
	// Equilibrium samples at a fixed temperature.
	Equilibrium Protocol = iota
	// TemperatureStep records the relaxation after an instantaneous switch
	// from the configured temperature to T2.
	TemperatureStep
)

func (p Protocol) String() string {
	if p == TemperatureStep {
		return "step"
	}
	return "equilibrium"
}

// ParseProtocol maps "equilibrium" or "step" to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "equilibrium", "eq":
		return Equilibrium, nil
	case "step":
		return TemperatureStep, nil
	}
	return 0, fmt.Errorf("harness: unknown protocol %q", s)
}

// Config describes one experiment.
type Config struct {
	Sim ising.Config `json:"sim"`

	Protocol Protocol `json:"protocol"`
	// BurnIn sweeps are run and discarded before recording starts.
	BurnIn int `json:"burnIn"`
	// Steps is the number of recorded sweeps, or T1 steps for the
	// temperature-step protocol.
	Steps       int `json:"steps"`
	Repetitions int `json:"repetitions"`

	T2      float64 `json:"t2,omitempty"`
	T2Steps int     `json:"t2Steps,omitempty"`

	// StdDev requests sample standard deviations in the summaries.
	StdDev bool `json:"stdDev"`

	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns a fixed-temperature experiment on the default
// lattice.
func DefaultConfig() Config {
	return Config{
		Sim:         ising.DefaultConfig(),
		Protocol:    Equilibrium,
		BurnIn:      100,
		Steps:       1000,
		Repetitions: 10,
		StdDev:      true,
	}
}

// Recorded returns the length of each output series.
func (c Config) Recorded() int {
	if c.Protocol == TemperatureStep {
		return c.Steps + c.T2Steps
	}
	return c.Steps
}

// Validate checks the harness counts and the embedded engine configuration.
func (c Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	switch {
	case c.BurnIn < 0:
		return fmt.Errorf("harness: burn-in %d is negative", c.BurnIn)
	case c.Steps < 0 || c.T2Steps < 0:
		return fmt.Errorf("harness: negative step count")
	case c.Recorded() < 1:
		return fmt.Errorf("harness: no sweeps to record")
	case c.Repetitions < 1:
		return fmt.Errorf("harness: repetitions must be at least 1, got %d", c.Repetitions)
	}
	if c.Protocol == TemperatureStep {
		if c.T2 <= 0 || math.IsInf(c.T2, 0) || math.IsNaN(c.T2) {
			return fmt.Errorf("harness: second temperature %v must be positive and finite", c.T2)
		}
	}
	if c.StdDev && c.Recorded() < 2 {
		return ErrDegenerateStatistics
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Series holds one value per recorded sweep index, averaged over
// repetitions. Energy is per site.
type Series struct {
	Magnetization    []float64 `json:"magnetization"`
	AbsMagnetization []float64 `json:"absMagnetization"`
	LocalCorrelation []float64 `json:"localCorrelation"`
	Energy           []float64 `json:"energy"`
}

func newSeries(n int) Series {
	return Series{
		Magnetization:    make([]float64, n),
		AbsMagnetization: make([]float64, n),
		LocalCorrelation: make([]float64, n),
		Energy:           make([]float64, n),
	}
}

func (s Series) scale(f float64) {
	floats.Scale(f, s.Magnetization)
	floats.Scale(f, s.AbsMagnetization)
	floats.Scale(f, s.LocalCorrelation)
	floats.Scale(f, s.Energy)
}

// Summary is a scalar mean over the recorded sweep index, with the sample
// standard deviation (divisor n-1) when requested.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev,omitempty"`
}

func summarize(xs []float64, withStdDev bool) Summary {
	if !withStdDev {
		return Summary{Mean: stat.Mean(xs, nil)}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Summary{Mean: mean, StdDev: std}
}

// Result is the outcome of one experiment.
type Result struct {
	ID          string  `json:"id"`
	Temperature float64 `json:"temperature"`
	Series      Series  `json:"series"`

	Magnetization    Summary `json:"magnetization"`
	AbsMagnetization Summary `json:"absMagnetization"`
	LocalCorrelation Summary `json:"localCorrelation"`
	Energy           Summary `json:"energy"`

	samples []float64
}

// Samples returns every recorded per-sweep magnetization, across all
// repetitions, in recording order.
func (r *Result) Samples() []float64 { return r.samples }

// Run executes the experiment synchronously. ctx is checked between
// repetitions only; a repetition in progress always completes.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eng, err := ising.NewEngine(cfg.Sim)
	if err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}
	eng.SetObserver(nil)

	log := cfg.logger().With("run", RunID(cfg))
	recorded := cfg.Recorded()
	sums := newSeries(recorded)
	samples := make([]float64, 0, recorded*cfg.Repetitions)

	for rep := 0; rep < cfg.Repetitions; rep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rep > 0 {
			if err := eng.SetTemperature(cfg.Sim.Temperature); err != nil {
				return nil, fmt.Errorf("harness: %w", err)
			}
			eng.Reinitialize()
		}
		for i := 0; i < cfg.BurnIn; i++ {
			eng.Sweep()
		}
		for i := 0; i < recorded; i++ {
			if cfg.Protocol == TemperatureStep && i == cfg.Steps {
				if err := eng.SetTemperature(cfg.T2); err != nil {
					return nil, fmt.Errorf("harness: %w", err)
				}
			}
			eng.Sweep()
			m := record(eng.Lattice(), sums, i)
			samples = append(samples, m)
		}
		log.Debug("repetition done", "rep", rep+1, "of", cfg.Repetitions, "flips", eng.Flips())
	}

	sums.scale(1 / float64(cfg.Repetitions))
	res := &Result{
		ID:               RunID(cfg),
		Temperature:      cfg.Sim.Temperature,
		Series:           sums,
		Magnetization:    summarize(sums.Magnetization, cfg.StdDev),
		AbsMagnetization: summarize(sums.AbsMagnetization, cfg.StdDev),
		LocalCorrelation: summarize(sums.LocalCorrelation, cfg.StdDev),
		Energy:           summarize(sums.Energy, cfg.StdDev),
		samples:          samples,
	}
	return res, nil
}

func record(l *ising.Lattice, into Series, i int) float64 {
	m := ising.Magnetization(l)
	into.Magnetization[i] += m
	into.AbsMagnetization[i] += math.Abs(m)
	into.LocalCorrelation[i] += ising.LocalCorrelation(l)
	into.Energy[i] += float64(ising.Energy(l)) / float64(l.Sites())
	return m
}

func (p Protocol) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Protocol) UnmarshalText(b []byte) error {
	v, err := ParseProtocol(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
