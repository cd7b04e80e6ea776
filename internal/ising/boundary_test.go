package ising

import (
	"testing"

	"ising/internal/core"
)

func assertCorners(t *testing.T, l *Lattice) {
	t.Helper()
	n := l.Size()
	for _, c := range []Coord{{-1, -1}, {n, -1}, {-1, n}, {n, n}} {
		if v := l.Get(c.X, c.Y); v != Neutral {
			t.Fatalf("corner %v holds %d", c, v)
		}
	}
}

func borderValues(l *Lattice) []int8 {
	var out []int8
	forEachBorder(l.Size(), func(x, y int) { out = append(out, l.Get(x, y)) })
	return out
}

// assertMirrored checks every border cell against the interior cell it mirrors.
func assertMirrored(t *testing.T, l *Lattice, twisted bool) {
	t.Helper()
	n := l.Size()
	side := func(y int) int {
		if twisted {
			return n - 1 - y
		}
		return y
	}
	for i := 0; i < n; i++ {
		if l.Get(i, -1) != l.Get(i, n-1) || l.Get(i, n) != l.Get(i, 0) {
			t.Fatalf("column %d: top/bottom halo out of sync", i)
		}
		if l.Get(-1, i) != l.Get(n-1, side(i)) || l.Get(n, i) != l.Get(0, side(i)) {
			t.Fatalf("row %d: left/right halo out of sync (twisted=%v)", i, twisted)
		}
	}
}

func TestConstantBorders(t *testing.T) {
	cases := map[BoundaryMode]int8{BoundaryZero: 0, BoundaryUp: 1, BoundaryDown: -1}
	for mode, want := range cases {
		l := NewLattice(4, Halo)
		l.Scramble(core.NewRNG(1))
		b, err := NewBoundary(mode)
		if err != nil {
			t.Fatal(err)
		}
		b.Init(l, nil)
		for _, v := range borderValues(l) {
			if v != want {
				t.Fatalf("%s border holds %d", mode, v)
			}
		}
		assertCorners(t, l)
		if b.Cadence() != CadenceStatic {
			t.Fatalf("%s should be static", mode)
		}
	}
}

func TestSampledAndUnderdogBorders(t *testing.T) {
	l := NewLattice(4, Halo)
	l.Fill(1)
	rng := core.NewRNG(9)

	sampled, _ := NewBoundary(BoundarySampled)
	sampled.Init(l, rng)
	for _, v := range borderValues(l) {
		if v != 1 {
			t.Fatalf("sampled border on an all-up interior holds %d", v)
		}
	}
	assertCorners(t, l)

	underdog, _ := NewBoundary(BoundaryUnderdog)
	underdog.Refresh(l, rng)
	for _, v := range borderValues(l) {
		if v != -1 {
			t.Fatalf("underdog border on an all-up interior holds %d", v)
		}
	}
	assertCorners(t, l)
}

func TestSampledBorderIsNotPositional(t *testing.T) {
	l := NewLattice(3, Halo)
	l.Fill(1)
	l.Set(2, 2, -1)
	src := &cycleSource{floats: []float64{0}, ints: []int{8}}
	sampled, _ := NewBoundary(BoundarySampled)
	sampled.Init(l, src)
	for _, v := range borderValues(l) {
		if v != -1 {
			t.Fatalf("every border cell should copy the drawn site (2,2), got %d", v)
		}
	}
}

func TestRandomBorderIsSpinValued(t *testing.T) {
	l := NewLattice(6, Halo)
	b, _ := NewBoundary(BoundaryRandom)
	b.Init(l, core.NewRNG(4))
	ups := 0
	for _, v := range borderValues(l) {
		if v != 1 && v != -1 {
			t.Fatalf("random border holds %d", v)
		}
		if v == 1 {
			ups++
		}
	}
	if ups == 0 || ups == 24 {
		t.Fatal("random border is uniform")
	}
	assertCorners(t, l)
	if b.Cadence() != CadenceSweep {
		t.Fatal("random border should refresh per sweep")
	}
}

func TestMirroredBordersInit(t *testing.T) {
	for _, twisted := range []bool{false, true} {
		mode := BoundaryWraparound
		if twisted {
			mode = BoundaryTwisted
		}
		l := NewLattice(5, Halo)
		l.Scramble(core.NewRNG(21))
		b, _ := NewBoundary(mode)
		b.Init(l, nil)
		assertMirrored(t, l, twisted)
		assertCorners(t, l)
		if b.Cadence() != CadenceFlip {
			t.Fatalf("%s should track flips", mode)
		}
	}
}

func TestWraparoundMatchesTorus(t *testing.T) {
	const n = 6
	torus := NewLattice(n, Torus)
	torus.Scramble(core.NewRNG(8))
	halo := NewLattice(n, Halo)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			halo.Set(x, y, torus.Get(x, y))
		}
	}
	b, _ := NewBoundary(BoundaryWraparound)
	b.Init(halo, nil)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if torus.DeltaE(x, y) != halo.DeltaE(x, y) {
				t.Fatalf("deltaE(%d,%d) differs between torus and wraparound halo", x, y)
			}
		}
	}
}

func TestMirroredBordersTrackEngineFlips(t *testing.T) {
	for _, mode := range []BoundaryMode{BoundaryWraparound, BoundaryTwisted} {
		cfg := DefaultConfig()
		cfg.Size = 5
		cfg.Topology = Halo
		cfg.Boundary = mode
		cfg.Temperature = 5
		cfg.Visitation = VisitRandom
		e, err := NewEngine(cfg)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 200; i++ {
			e.Microstep()
			assertMirrored(t, e.Lattice(), mode == BoundaryTwisted)
		}
		if e.Flips() == 0 {
			t.Fatalf("%s: no flips happened at high temperature", mode)
		}
	}
}

func TestMirroredBordersAfterSimultaneousCommit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.Topology = Halo
	cfg.Boundary = BoundaryWraparound
	cfg.Visitation = VisitSimultaneous
	cfg.Temperature = 4
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		e.Sweep()
		assertMirrored(t, e.Lattice(), false)
	}
}
