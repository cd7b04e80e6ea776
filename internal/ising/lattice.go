package ising

import "ising/internal/core"

// Neutral is the value held by halo cells that take no part in energy
// calculations.
const Neutral int8 = 0

// Neighbors holds the four nearest-neighbor spins of a site.
type Neighbors struct {
	North, South, East, West int8
}

// Sum returns the sum of the four neighbor values.
func (n Neighbors) Sum() int {
	return int(n.North) + int(n.South) + int(n.East) + int(n.West)
}

// Lattice is the spin store. Coordinates are interior-relative: (0, 0) is
// the first active site and, on a haloed lattice, the halo ring sits at -1
// and Size().
type Lattice struct {
	n    int
	topo Topology
	off  int
	grid *core.SpinGrid
}

// NewLattice allocates an n×n interior with the given topology. Interior
// cells start at +1; halo cells start neutral.
func NewLattice(n int, topo Topology) *Lattice {
	if n < 1 {
		n = 1
	}
	l := &Lattice{n: n, topo: topo}
	side := n
	if topo == Halo {
		side = n + 2
		l.off = 1
	}
	l.grid = core.NewSpinGrid(side, side)
	l.Fill(1)
	return l
}

// Size returns the interior side length.
func (l *Lattice) Size() int { return l.n }

// GridSize returns the side length of the stored grid, halo included.
func (l *Lattice) GridSize() int { return l.grid.W }

// Sites returns the number of interior sites.
func (l *Lattice) Sites() int { return l.n * l.n }

// Topology reports the neighbor lookup policy.
func (l *Lattice) Topology() Topology { return l.topo }

// Haloed reports whether the lattice carries a halo ring.
func (l *Lattice) Haloed() bool { return l.topo == Halo }

// Cells exposes the full grid buffer in row-major order, halo included.
func (l *Lattice) Cells() []int8 { return l.grid.Cells() }

// Get returns the value at (x, y). On a torus the coordinates wrap; on a
// haloed lattice they must lie in [-1, Size()].
func (l *Lattice) Get(x, y int) int8 {
	if l.topo == Torus {
		x, y = l.grid.Wrap(x, y)
		return l.grid.At(x, y)
	}
	return l.grid.At(x+l.off, y+l.off)
}

// Set stores v at (x, y) using the same addressing as Get.
func (l *Lattice) Set(x, y int, v int8) {
	if l.topo == Torus {
		x, y = l.grid.Wrap(x, y)
		l.grid.Put(x, y, v)
		return
	}
	l.grid.Put(x+l.off, y+l.off, v)
}

// Flip negates the spin at (x, y).
func (l *Lattice) Flip(x, y int) {
	l.Set(x, y, -l.Get(x, y))
}

// Neighbors returns the four nearest neighbors of interior site (x, y).
// North is y-1 and West is x-1.
func (l *Lattice) Neighbors(x, y int) Neighbors {
	return Neighbors{
		North: l.Get(x, y-1),
		South: l.Get(x, y+1),
		East:  l.Get(x+1, y),
		West:  l.Get(x-1, y),
	}
}

// DeltaE returns the energy change from flipping interior site (x, y),
// 2·s·(N+S+E+W), computed from the lattice as it is right now.
func (l *Lattice) DeltaE(x, y int) int {
	return 2 * int(l.Get(x, y)) * l.Neighbors(x, y).Sum()
}

// Fill sets every interior site to v. Halo cells are left alone.
func (l *Lattice) Fill(v int8) {
	if l.topo == Torus {
		l.grid.Fill(v)
		return
	}
	for y := 0; y < l.n; y++ {
		for x := 0; x < l.n; x++ {
			l.Set(x, y, v)
		}
	}
}

// Scramble sets every interior site to an independent ±1 value.
func (l *Lattice) Scramble(src core.Source) {
	if l.topo == Torus {
		core.FillSpins(src, l.grid.Cells())
		return
	}
	for y := 0; y < l.n; y++ {
		for x := 0; x < l.n; x++ {
			if src.IntN(2) == 1 {
				l.Set(x, y, 1)
			} else {
				l.Set(x, y, -1)
			}
		}
	}
}

// Initialize fills the interior according to the pattern.
func (l *Lattice) Initialize(p InitPattern, src core.Source) {
	switch p {
	case InitUp:
		l.Fill(1)
	case InitDown:
		l.Fill(-1)
	default:
		l.Scramble(src)
	}
}

// Interior returns a row-major copy of the interior spins.
func (l *Lattice) Interior() []int8 {
	out := make([]int8, 0, l.Sites())
	for y := 0; y < l.n; y++ {
		for x := 0; x < l.n; x++ {
			out = append(out, l.Get(x, y))
		}
	}
	return out
}

// CopyFrom overwrites l with src. Both lattices must share size and topology.
func (l *Lattice) CopyFrom(src *Lattice) {
	l.grid.CopyFrom(src.grid)
}

// Clone returns an independent copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{n: l.n, topo: l.topo, off: l.off, grid: l.grid.Clone()}
}
