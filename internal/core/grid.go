package core

// SpinGrid stores a 2D grid of spin values in row-major order.
type SpinGrid struct {
	W, H int
	data []int8
}

// NewSpinGrid allocates a grid with the given dimensions.
func NewSpinGrid(w, h int) *SpinGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &SpinGrid{W: w, H: h, data: make([]int8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *SpinGrid) Cells() []int8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *SpinGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y) without wrapping.
func (g *SpinGrid) At(x, y int) int8 { return g.data[y*g.W+x] }

// Put stores v at (x, y) without wrapping.
func (g *SpinGrid) Put(x, y int, v int8) { g.data[y*g.W+x] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *SpinGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Fill sets every cell to v.
func (g *SpinGrid) Fill(v int8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyFrom overwrites g with the contents of src. Both grids must share
// dimensions.
func (g *SpinGrid) CopyFrom(src *SpinGrid) {
	copy(g.data, src.data)
}

// Clone returns an independent copy of the grid.
func (g *SpinGrid) Clone() *SpinGrid {
	return &SpinGrid{W: g.W, H: g.H, data: append([]int8(nil), g.data...)}
}
