package ising

import "ising/internal/core"

// Coord addresses an interior site.
type Coord struct {
	X, Y int
}

// Sequence is a finite stream of coordinates for one sweep. Each call to
// VisitationStrategy.Begin returns an independent cursor; sequences never
// share cursor state.
type Sequence interface {
	HasNext() bool
	Next() Coord
	// Len reports the total number of coordinates the sequence emits.
	Len() int
}

// VisitationStrategy produces the coordinate order for each sweep on an n×n
// interior.
type VisitationStrategy interface {
	Mode() VisitationMode
	// Reset prepares any reset-time state, such as the fixed permutation.
	Reset(n int, rng core.Source)
	// Begin returns a fresh sequence for the next sweep.
	Begin(n int, rng core.Source) Sequence
	// Deferred reports whether flips are staged and committed only after
	// the whole sequence is exhausted.
	Deferred() bool
}

// NewVisitation returns the strategy for the given mode.
func NewVisitation(mode VisitationMode) (VisitationStrategy, error) {
	switch mode {
	case VisitTypewriter:
		return &fixedOrder{mode: mode, build: typewriterOrder}, nil
	case VisitCheckerboard:
		return &fixedOrder{mode: mode, build: checkerboardOrder}, nil
	case VisitDiagonal:
		return &fixedOrder{mode: mode, build: diagonalOrder}, nil
	case VisitBoustrophedon:
		return &fixedOrder{mode: mode, build: boustrophedonOrder}, nil
	case VisitSimultaneous:
		return &fixedOrder{mode: mode, build: typewriterOrder, deferred: true}, nil
	case VisitPermuted:
		return &permuted{}, nil
	case VisitRepermuted:
		return &repermuted{}, nil
	case VisitRandom:
		return randomVisit{}, nil
	}
	return nil, unknown("visitation mode", mode.String())
}

// fixedOrder serves a deterministic enumeration that is built once per
// interior size and shared read-only by every sequence.
type fixedOrder struct {
	mode     VisitationMode
	build    func(n int) []Coord
	deferred bool

	n     int
	order []Coord
}

func (f *fixedOrder) Mode() VisitationMode { return f.mode }
func (f *fixedOrder) Deferred() bool       { return f.deferred }

func (f *fixedOrder) Reset(n int, _ core.Source) { f.ensure(n) }

func (f *fixedOrder) Begin(n int, _ core.Source) Sequence {
	f.ensure(n)
	return &sliceSequence{order: f.order}
}

func (f *fixedOrder) ensure(n int) {
	if f.order == nil || f.n != n {
		f.n = n
		f.order = f.build(n)
	}
}

type sliceSequence struct {
	order []Coord
	pos   int
}

func (s *sliceSequence) HasNext() bool { return s.pos < len(s.order) }
func (s *sliceSequence) Len() int      { return len(s.order) }

func (s *sliceSequence) Next() Coord {
	c := s.order[s.pos]
	s.pos++
	return c
}

// indexSequence maps sweep positions through a permutation of linear
// row-major indices.
type indexSequence struct {
	n    int
	perm []int
	pos  int
}

func (s *indexSequence) HasNext() bool { return s.pos < len(s.perm) }
func (s *indexSequence) Len() int      { return len(s.perm) }

func (s *indexSequence) Next() Coord {
	idx := s.perm[s.pos]
	s.pos++
	return Coord{X: idx % s.n, Y: idx / s.n}
}

// permuted reuses the permutation drawn at reset for every sweep.
type permuted struct {
	n    int
	perm []int
}

func (p *permuted) Mode() VisitationMode { return VisitPermuted }
func (p *permuted) Deferred() bool       { return false }

func (p *permuted) Reset(n int, rng core.Source) {
	p.n = n
	p.perm = make([]int, n*n)
	core.Permutation(p.perm, rng)
}

func (p *permuted) Begin(n int, rng core.Source) Sequence {
	if p.perm == nil || p.n != n {
		p.Reset(n, rng)
	}
	return &indexSequence{n: n, perm: p.perm}
}

// repermuted draws a new permutation at the start of every sweep.
type repermuted struct{}

func (repermuted) Mode() VisitationMode   { return VisitRepermuted }
func (repermuted) Deferred() bool         { return false }
func (repermuted) Reset(int, core.Source) {}

func (repermuted) Begin(n int, rng core.Source) Sequence {
	perm := make([]int, n*n)
	core.Permutation(perm, rng)
	return &indexSequence{n: n, perm: perm}
}

// randomVisit draws n*n independent sites with replacement.
type randomVisit struct{}

func (randomVisit) Mode() VisitationMode   { return VisitRandom }
func (randomVisit) Deferred() bool         { return false }
func (randomVisit) Reset(int, core.Source) {}

func (randomVisit) Begin(n int, rng core.Source) Sequence {
	return &randomSequence{n: n, total: n * n, rng: rng}
}

type randomSequence struct {
	n, total int
	drawn    int
	rng      core.Source
}

func (s *randomSequence) HasNext() bool { return s.drawn < s.total }
func (s *randomSequence) Len() int      { return s.total }

func (s *randomSequence) Next() Coord {
	s.drawn++
	idx := s.rng.IntN(s.total)
	return Coord{X: idx % s.n, Y: idx / s.n}
}

func typewriterOrder(n int) []Coord {
	order := make([]Coord, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			order = append(order, Coord{X: x, Y: y})
		}
	}
	return order
}

// checkerboardOrder visits the even sublattice (x+y even) row by row, then
// the odd one.
func checkerboardOrder(n int) []Coord {
	order := make([]Coord, 0, n*n)
	for parity := 0; parity < 2; parity++ {
		for y := 0; y < n; y++ {
			for x := (y + parity) % 2; x < n; x += 2 {
				order = append(order, Coord{X: x, Y: y})
			}
		}
	}
	return order
}

// diagonalOrder walks the anti-diagonals x+y = d from the (0, 0) corner,
// reversing direction on each successive diagonal.
func diagonalOrder(n int) []Coord {
	order := make([]Coord, 0, n*n)
	for d := 0; d <= 2*(n-1); d++ {
		lo := max(0, d-(n-1))
		hi := min(d, n-1)
		if d%2 == 0 {
			for x := lo; x <= hi; x++ {
				order = append(order, Coord{X: x, Y: d - x})
			}
			continue
		}
		for x := hi; x >= lo; x-- {
			order = append(order, Coord{X: x, Y: d - x})
		}
	}
	return order
}

func boustrophedonOrder(n int) []Coord {
	order := make([]Coord, 0, n*n)
	for y := 0; y < n; y++ {
		if y%2 == 0 {
			for x := 0; x < n; x++ {
				order = append(order, Coord{X: x, Y: y})
			}
			continue
		}
		for x := n - 1; x >= 0; x-- {
			order = append(order, Coord{X: x, Y: y})
		}
	}
	return order
}
