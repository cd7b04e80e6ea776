package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a lattice simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	// Step performs one full sweep.
	Step()
	Cells() []int8
}

// MicroStepper is implemented by simulations that can advance a single
// site update at a time.
type MicroStepper interface {
	Microstep()
}
