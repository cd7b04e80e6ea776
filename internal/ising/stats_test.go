package ising

import (
	"math"
	"testing"

	"ising/internal/core"
)

func TestStatisticsOfOrderedStates(t *testing.T) {
	const n = 4
	l := NewLattice(n, Torus)
	if m := Magnetization(l); m != 1 {
		t.Fatalf("all-up magnetization %f", m)
	}
	if r := LocalCorrelation(l); r != 1 {
		t.Fatalf("all-up local correlation %f", r)
	}
	if e := Energy(l); e != -2*n*n {
		t.Fatalf("all-up energy %d, expected %d", e, -2*n*n)
	}

	fillCheckerboard(l)
	if m := Magnetization(l); m != 0 {
		t.Fatalf("checkerboard magnetization %f", m)
	}
	if r := LocalCorrelation(l); r != -1 {
		t.Fatalf("checkerboard local correlation %f", r)
	}
	if e := Energy(l); e != 2*n*n {
		t.Fatalf("checkerboard energy %d", e)
	}
}

func TestLocalCorrelationMatchesEnergyOnTorus(t *testing.T) {
	l := NewLattice(9, Torus)
	l.Scramble(core.NewRNG(17))
	r := LocalCorrelation(l)
	e := Energy(l)
	want := -float64(e) / float64(2*l.Sites())
	if math.Abs(r-want) > 1e-12 {
		t.Fatalf("R=%f, expected -E/2N=%f", r, want)
	}
	if r < -1 || r > 1 {
		t.Fatalf("R out of range: %f", r)
	}
}

func TestHaloEnergyCountsBorderBonds(t *testing.T) {
	const n = 3
	l := NewLattice(n, Halo)
	up, _ := NewBoundary(BoundaryUp)
	up.Init(l, nil)
	if e := Energy(l); e != -(2*n*n + 2*n) {
		t.Fatalf("up border energy %d, expected %d", e, -(2*n*n + 2*n))
	}
	zero, _ := NewBoundary(BoundaryZero)
	zero.Init(l, nil)
	if e := Energy(l); e != -2*n*(n-1) {
		t.Fatalf("zero border energy %d, expected %d", e, -2*n*(n-1))
	}
}

func TestFormatReadout(t *testing.T) {
	cases := map[float64]string{
		1:        "+1.000",
		-1:       "-1.000",
		0:        "+0.000",
		-0.0001:  "+0.000",
		0.0004:   "+0.000",
		-0.5:     "-0.500",
		0.99961:  "+1.000",
		0.123456: "+0.123",
	}
	for in, want := range cases {
		if got := FormatReadout(in); got != want {
			t.Errorf("FormatReadout(%v) = %q, expected %q", in, got, want)
		}
	}
}
