package ising

// constSource returns the same draw forever. IntN always yields 0.
type constSource struct {
	f float64
}

func (s constSource) Float64() float64 { return s.f }
func (s constSource) IntN(int) int     { return 0 }

// cycleSource replays a fixed list of draws.
type cycleSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *cycleSource) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *cycleSource) IntN(n int) int {
	v := s.ints[s.ii%len(s.ints)] % n
	s.ii++
	return v
}

func fillCheckerboard(l *Lattice) {
	n := l.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				l.Set(x, y, 1)
			} else {
				l.Set(x, y, -1)
			}
		}
	}
}
