package ising

import (
	"strconv"

	"ising/internal/core"
)

// Engine owns a lattice and the three selected strategies and advances the
// simulation one microstep or one sweep at a time. It is not safe for
// concurrent use; a single caller drives it.
type Engine struct {
	cfg Config

	lattice *Lattice
	shadow  *Lattice
	visited []bool

	rng    core.Source
	seeded bool

	visit    VisitationStrategy
	accept   AcceptanceStrategy
	boundary BoundaryStrategy

	seq    Sequence
	sweeps int
	flips  int

	observer func(*Engine)
}

// Snapshot captures the lattice and readouts after a sweep or microstep.
type Snapshot struct {
	Sweep            int
	Size             int
	GridSize         int
	Haloed           bool
	Cells            []int8
	Visited          []bool
	Magnetization    float64
	LocalCorrelation float64
	Energy           int
}

// NewEngine builds an engine seeded from cfg.Seed and initializes the
// lattice.
func NewEngine(cfg Config) (*Engine, error) {
	e, err := NewEngineWithSource(cfg, core.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	e.seeded = true
	return e, nil
}

// NewEngineWithSource builds an engine drawing all randomness from src.
// Reset keeps using src instead of reseeding.
func NewEngineWithSource(cfg Config, src core.Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	visit, err := NewVisitation(cfg.Visitation)
	if err != nil {
		return nil, err
	}
	accept, err := NewAcceptance(cfg.Acceptance)
	if err != nil {
		return nil, err
	}
	var boundary BoundaryStrategy
	if cfg.Topology == Halo {
		boundary, err = NewBoundary(cfg.Boundary)
		if err != nil {
			return nil, err
		}
	}
	e := &Engine{
		cfg:      cfg,
		lattice:  NewLattice(cfg.Size, cfg.Topology),
		visited:  make([]bool, cfg.Size*cfg.Size),
		rng:      src,
		visit:    visit,
		accept:   accept,
		boundary: boundary,
	}
	e.Reinitialize()
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "ising" }

// Size reports the stored grid dimensions, halo included.
func (e *Engine) Size() core.Size {
	side := e.lattice.GridSize()
	return core.Size{W: side, H: side}
}

// Cells exposes the current grid values, halo included.
func (e *Engine) Cells() []int8 { return e.lattice.Cells() }

// Lattice exposes the live lattice. Callers must not write to it while a
// sweep is in progress.
func (e *Engine) Lattice() *Lattice { return e.lattice }

// Config returns the current configuration, including mode changes made
// after construction.
func (e *Engine) Config() Config { return e.cfg }

// Temperature returns the current temperature.
func (e *Engine) Temperature() float64 { return e.cfg.Temperature }

// Sweeps returns the number of completed sweeps since the last reset.
func (e *Engine) Sweeps() int { return e.sweeps }

// Flips returns the number of committed flips since the last reset.
func (e *Engine) Flips() int { return e.flips }

// InSweep reports whether a sweep has been started by Microstep and not yet
// completed.
func (e *Engine) InSweep() bool { return e.seq != nil }

// Visited returns the row-major interior markers for the current sweep.
func (e *Engine) Visited() []bool { return e.visited }

// SetObserver installs a callback invoked after every completed sweep. A
// nil observer disables notification.
func (e *Engine) SetObserver(fn func(*Engine)) { e.observer = fn }

// Reset reseeds the RNG (for engines built by NewEngine) and reinitializes
// the lattice.
func (e *Engine) Reset(seed int64) {
	e.cfg.Seed = seed
	if e.seeded {
		e.rng = core.NewRNG(seed)
	}
	e.Reinitialize()
}

// Reinitialize replaces the lattice contents from the init pattern using
// the running RNG stream, draws a new reset-time permutation, and rebuilds
// the halo ring. Any partial sweep is discarded.
func (e *Engine) Reinitialize() {
	e.seq = nil
	e.sweeps = 0
	e.flips = 0
	clear(e.visited)
	n := e.lattice.Size()
	e.lattice.Initialize(e.cfg.Init, e.rng)
	e.visit.Reset(n, e.rng)
	if e.boundary != nil {
		e.boundary.Init(e.lattice, e.rng)
	}
}

// Step performs one full sweep.
func (e *Engine) Step() { e.Sweep() }

// Sweep completes the current sweep, starting a new one if none is in
// progress.
func (e *Engine) Sweep() {
	if e.seq == nil {
		e.beginSweep()
	}
	for e.seq.HasNext() {
		e.visitNext()
	}
	e.finishSweep()
}

// Microstep offers exactly one coordinate to the acceptance rule. The sweep
// is completed when its sequence runs out.
func (e *Engine) Microstep() {
	if e.seq == nil {
		e.beginSweep()
	}
	if e.seq.HasNext() {
		e.visitNext()
	}
	if !e.seq.HasNext() {
		e.finishSweep()
	}
}

func (e *Engine) beginSweep() {
	clear(e.visited)
	e.seq = e.visit.Begin(e.lattice.Size(), e.rng)
	if e.visit.Deferred() {
		if e.shadow == nil {
			e.shadow = e.lattice.Clone()
		} else {
			e.shadow.CopyFrom(e.lattice)
		}
	}
}

func (e *Engine) visitNext() {
	c := e.seq.Next()
	e.visited[c.Y*e.lattice.Size()+c.X] = true

	deltaE := e.lattice.DeltaE(c.X, c.Y)
	if !e.accept.Accept(deltaE, e.cfg.Temperature, e.rng) {
		return
	}
	if e.visit.Deferred() {
		e.shadow.Set(c.X, c.Y, -e.lattice.Get(c.X, c.Y))
		return
	}
	e.commit(c.X, c.Y, -e.lattice.Get(c.X, c.Y))
}

func (e *Engine) commit(x, y int, v int8) {
	e.lattice.Set(x, y, v)
	e.flips++
	if e.boundary != nil {
		e.boundary.OnFlip(e.lattice, x, y)
	}
}

func (e *Engine) finishSweep() {
	if e.visit.Deferred() && e.shadow != nil {
		n := e.lattice.Size()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if v := e.shadow.Get(x, y); v != e.lattice.Get(x, y) {
					e.commit(x, y, v)
				}
			}
		}
	}
	if e.boundary != nil {
		e.boundary.Refresh(e.lattice, e.rng)
	}
	e.seq = nil
	e.sweeps++
	if e.observer != nil {
		e.observer(e)
	}
}

// SetTemperature changes the temperature used from the next decision on.
func (e *Engine) SetTemperature(t float64) error {
	if err := checkTemperature(t); err != nil {
		return err
	}
	e.cfg.Temperature = t
	return nil
}

// SetVisitation swaps the visitation strategy. A partially completed sweep
// is committed first so staged flips are never lost.
func (e *Engine) SetVisitation(mode VisitationMode) error {
	visit, err := NewVisitation(mode)
	if err != nil {
		return err
	}
	if e.seq != nil {
		e.finishSweep()
	}
	e.visit = visit
	e.visit.Reset(e.lattice.Size(), e.rng)
	e.cfg.Visitation = mode
	return nil
}

// SetAcceptance swaps the acceptance rule without touching the lattice.
func (e *Engine) SetAcceptance(mode AcceptanceMode) error {
	accept, err := NewAcceptance(mode)
	if err != nil {
		return err
	}
	e.accept = accept
	e.cfg.Acceptance = mode
	return nil
}

// SetBoundary swaps the boundary rule and rewrites the halo ring. It fails
// on a toroidal lattice.
func (e *Engine) SetBoundary(mode BoundaryMode) error {
	if !e.lattice.Haloed() {
		return invalid("boundary mode", mode.String(), "lattice has no halo")
	}
	boundary, err := NewBoundary(mode)
	if err != nil {
		return err
	}
	e.boundary = boundary
	e.boundary.Init(e.lattice, e.rng)
	e.cfg.Boundary = mode
	return nil
}

// SetInitPattern selects the pattern used by the next Reset or
// Reinitialize.
func (e *Engine) SetInitPattern(p InitPattern) error {
	if int(p) >= len(initNames) {
		return unknown("init pattern", p.String())
	}
	e.cfg.Init = p
	return nil
}

// Configure applies a string-encoded update. Recognized keys are
// temperature, visit, accept, boundary, init, and seed.
func (e *Engine) Configure(key, value string) error {
	switch key {
	case "temperature":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(key, value, "not a number")
		}
		return e.SetTemperature(t)
	case "visit":
		m, err := ParseVisitation(value)
		if err != nil {
			return err
		}
		return e.SetVisitation(m)
	case "accept":
		m, err := ParseAcceptance(value)
		if err != nil {
			return err
		}
		return e.SetAcceptance(m)
	case "boundary":
		m, err := ParseBoundary(value)
		if err != nil {
			return err
		}
		return e.SetBoundary(m)
	case "init":
		p, err := ParseInit(value)
		if err != nil {
			return err
		}
		return e.SetInitPattern(p)
	case "seed":
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return invalid(key, value, "not an integer")
		}
		e.cfg.Seed = seed
		return nil
	}
	return unknown("parameter", key)
}

// Snapshot copies the lattice and computes the per-sweep readouts.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Sweep:            e.sweeps,
		Size:             e.lattice.Size(),
		GridSize:         e.lattice.GridSize(),
		Haloed:           e.lattice.Haloed(),
		Cells:            append([]int8(nil), e.lattice.Cells()...),
		Visited:          append([]bool(nil), e.visited...),
		Magnetization:    Magnetization(e.lattice),
		LocalCorrelation: LocalCorrelation(e.lattice),
		Energy:           Energy(e.lattice),
	}
}
