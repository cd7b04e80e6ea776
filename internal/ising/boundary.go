package ising

import "ising/internal/core"

// Cadence reports when a boundary rule rewrites the halo ring.
type Cadence uint8

const (
	// CadenceStatic rules are written once at initialization.
	CadenceStatic Cadence = iota
	// CadenceSweep rules are rebuilt after every sweep.
	CadenceSweep
	// CadenceFlip rules track every committed interior flip.
	CadenceFlip
)

// BoundaryStrategy maintains the halo ring of a haloed lattice.
type BoundaryStrategy interface {
	Mode() BoundaryMode
	Cadence() Cadence
	// Init writes the whole ring, corners included.
	Init(l *Lattice, rng core.Source)
	// Refresh is called once per completed sweep.
	Refresh(l *Lattice, rng core.Source)
	// OnFlip is called after interior site (x, y) changes value.
	OnFlip(l *Lattice, x, y int)
}

// NewBoundary returns the strategy for the given mode.
func NewBoundary(mode BoundaryMode) (BoundaryStrategy, error) {
	switch mode {
	case BoundaryZero:
		return constantBorder{mode: mode, value: Neutral}, nil
	case BoundaryUp:
		return constantBorder{mode: mode, value: 1}, nil
	case BoundaryDown:
		return constantBorder{mode: mode, value: -1}, nil
	case BoundaryRandom:
		return resampledBorder{mode: mode, pick: randomSpin}, nil
	case BoundarySampled:
		return resampledBorder{mode: mode, pick: sampleInterior}, nil
	case BoundaryUnderdog:
		return resampledBorder{mode: mode, pick: func(l *Lattice, rng core.Source) int8 {
			return -sampleInterior(l, rng)
		}}, nil
	case BoundaryWraparound:
		return mirroredBorder{mode: mode}, nil
	case BoundaryTwisted:
		return mirroredBorder{mode: mode, twisted: true}, nil
	}
	return nil, unknown("boundary mode", mode.String())
}

// forEachBorder calls fn for every non-corner halo cell.
func forEachBorder(n int, fn func(x, y int)) {
	for i := 0; i < n; i++ {
		fn(i, -1)
		fn(i, n)
		fn(-1, i)
		fn(n, i)
	}
}

func neutralCorners(l *Lattice) {
	n := l.Size()
	l.Set(-1, -1, Neutral)
	l.Set(n, -1, Neutral)
	l.Set(-1, n, Neutral)
	l.Set(n, n, Neutral)
}

type constantBorder struct {
	mode  BoundaryMode
	value int8
}

func (b constantBorder) Mode() BoundaryMode { return b.mode }
func (b constantBorder) Cadence() Cadence   { return CadenceStatic }

func (b constantBorder) Init(l *Lattice, _ core.Source) {
	forEachBorder(l.Size(), func(x, y int) { l.Set(x, y, b.value) })
	neutralCorners(l)
}

func (constantBorder) Refresh(*Lattice, core.Source) {}
func (constantBorder) OnFlip(*Lattice, int, int)     {}

// resampledBorder draws every border cell independently once per sweep.
type resampledBorder struct {
	mode BoundaryMode
	pick func(l *Lattice, rng core.Source) int8
}

func (b resampledBorder) Mode() BoundaryMode { return b.mode }
func (b resampledBorder) Cadence() Cadence   { return CadenceSweep }

func (b resampledBorder) Init(l *Lattice, rng core.Source) {
	forEachBorder(l.Size(), func(x, y int) { l.Set(x, y, b.pick(l, rng)) })
	neutralCorners(l)
}

func (b resampledBorder) Refresh(l *Lattice, rng core.Source) { b.Init(l, rng) }
func (resampledBorder) OnFlip(*Lattice, int, int)             {}

func randomSpin(_ *Lattice, rng core.Source) int8 {
	if rng.IntN(2) == 1 {
		return 1
	}
	return -1
}

// sampleInterior copies a uniformly chosen interior site, not the
// positionally adjacent one.
func sampleInterior(l *Lattice, rng core.Source) int8 {
	n := l.Size()
	idx := rng.IntN(n * n)
	return l.Get(idx%n, idx/n)
}

// mirroredBorder makes each border cell a copy of the interior cell across
// the lattice. With twisted set, the left and right edges are mirrored
// upside down.
type mirroredBorder struct {
	mode    BoundaryMode
	twisted bool
}

func (b mirroredBorder) Mode() BoundaryMode { return b.mode }
func (b mirroredBorder) Cadence() Cadence   { return CadenceFlip }

func (b mirroredBorder) Init(l *Lattice, _ core.Source) {
	n := l.Size()
	for i := 0; i < n; i++ {
		l.Set(i, -1, l.Get(i, n-1))
		l.Set(i, n, l.Get(i, 0))
		l.Set(-1, i, l.Get(n-1, b.side(n, i)))
		l.Set(n, i, l.Get(0, b.side(n, i)))
	}
	neutralCorners(l)
}

func (mirroredBorder) Refresh(*Lattice, core.Source) {}

// OnFlip copies an edge site's new value into its mirrored halo cell; a
// corner site updates one halo cell per edge it touches.
func (b mirroredBorder) OnFlip(l *Lattice, x, y int) {
	n := l.Size()
	v := l.Get(x, y)
	if y == 0 {
		l.Set(x, n, v)
	}
	if y == n-1 {
		l.Set(x, -1, v)
	}
	if x == 0 {
		l.Set(n, b.side(n, y), v)
	}
	if x == n-1 {
		l.Set(-1, b.side(n, y), v)
	}
}

// side maps a row on the left/right edges to its mirrored row.
func (b mirroredBorder) side(n, y int) int {
	if b.twisted {
		return n - 1 - y
	}
	return y
}
