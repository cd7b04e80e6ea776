package ising

import (
	"fmt"
	"math"
)

// Magnetization returns the mean interior spin, in [-1, 1].
func Magnetization(l *Lattice) float64 {
	n := l.Size()
	sum := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sum += int(l.Get(x, y))
		}
	}
	return float64(sum) / float64(l.Sites())
}

// LocalCorrelation returns Σ deltaE / 8N, the normalized excess of aligned
// over anti-aligned neighbor pairs, in [-1, 1].
func LocalCorrelation(l *Lattice) float64 {
	n := l.Size()
	sum := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sum += l.DeltaE(x, y)
		}
	}
	return float64(sum) / float64(8*l.Sites())
}

// Energy returns the coupling sum over every bond touching the interior:
// -1 for each aligned pair, +1 for each anti-aligned pair. Bonds to neutral
// halo cells contribute nothing.
func Energy(l *Lattice) int {
	n := l.Size()
	e := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			s := int(l.Get(x, y))
			e -= s * (int(l.Get(x+1, y)) + int(l.Get(x, y+1)))
		}
	}
	if l.Haloed() {
		for i := 0; i < n; i++ {
			e -= int(l.Get(i, 0)) * int(l.Get(i, -1))
			e -= int(l.Get(0, i)) * int(l.Get(-1, i))
		}
	}
	return e
}

// FormatReadout renders v with an explicit sign and three decimals. Values
// that round to zero always print as "+0.000".
func FormatReadout(v float64) string {
	rounded := math.Round(v*1000) / 1000
	if rounded == 0 {
		rounded = 0 // drops the sign of -0
	}
	return fmt.Sprintf("%+.3f", rounded)
}
