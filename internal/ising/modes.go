package ising

// VisitationMode selects the order in which sites are offered during a sweep.
type VisitationMode uint8

const (
	VisitTypewriter VisitationMode = iota
	VisitCheckerboard
	VisitDiagonal
	VisitBoustrophedon
	VisitPermuted
	VisitRepermuted
	VisitRandom
	VisitSimultaneous
)

var visitationNames = [...]string{
	VisitTypewriter:    "typewriter",
	VisitCheckerboard:  "checkerboard",
	VisitDiagonal:      "diagonal",
	VisitBoustrophedon: "boustrophedon",
	VisitPermuted:      "permuted",
	VisitRepermuted:    "repermuted",
	VisitRandom:        "random",
	VisitSimultaneous:  "simultaneous",
}

func (m VisitationMode) String() string {
	if int(m) < len(visitationNames) {
		return visitationNames[m]
	}
	return "unknown"
}

// VisitationModes lists every visitation mode in declaration order.
func VisitationModes() []VisitationMode {
	modes := make([]VisitationMode, len(visitationNames))
	for i := range modes {
		modes[i] = VisitationMode(i)
	}
	return modes
}

// ParseVisitation maps a mode name to its VisitationMode.
func ParseVisitation(s string) (VisitationMode, error) {
	for i, name := range visitationNames {
		if name == s {
			return VisitationMode(i), nil
		}
	}
	return 0, unknown("visitation mode", s)
}

// AcceptanceMode selects the rule deciding whether a visited spin flips.
type AcceptanceMode uint8

const (
	AcceptMetropolis AcceptanceMode = iota
	AcceptGlauber
	AcceptMetropolisStar
)

var acceptanceNames = [...]string{
	AcceptMetropolis:     "M_rule",
	AcceptGlauber:        "G_rule",
	AcceptMetropolisStar: "M_star_rule",
}

func (m AcceptanceMode) String() string {
	if int(m) < len(acceptanceNames) {
		return acceptanceNames[m]
	}
	return "unknown"
}

// AcceptanceModes lists every acceptance mode in declaration order.
func AcceptanceModes() []AcceptanceMode {
	return []AcceptanceMode{AcceptMetropolis, AcceptGlauber, AcceptMetropolisStar}
}

// ParseAcceptance maps a rule name to its AcceptanceMode.
func ParseAcceptance(s string) (AcceptanceMode, error) {
	for i, name := range acceptanceNames {
		if name == s {
			return AcceptanceMode(i), nil
		}
	}
	return 0, unknown("acceptance mode", s)
}

// BoundaryMode selects how the halo ring of a haloed lattice is populated.
type BoundaryMode uint8

const (
	BoundaryZero BoundaryMode = iota
	BoundaryUp
	BoundaryDown
	BoundaryRandom
	BoundarySampled
	BoundaryUnderdog
	BoundaryWraparound
	BoundaryTwisted
)

var boundaryNames = [...]string{
	BoundaryZero:       "zero",
	BoundaryUp:         "up",
	BoundaryDown:       "down",
	BoundaryRandom:     "random",
	BoundarySampled:    "sampled",
	BoundaryUnderdog:   "underdog",
	BoundaryWraparound: "wraparound",
	BoundaryTwisted:    "twisted",
}

func (m BoundaryMode) String() string {
	if int(m) < len(boundaryNames) {
		return boundaryNames[m]
	}
	return "unknown"
}

// BoundaryModes lists every boundary mode in declaration order.
func BoundaryModes() []BoundaryMode {
	modes := make([]BoundaryMode, len(boundaryNames))
	for i := range modes {
		modes[i] = BoundaryMode(i)
	}
	return modes
}

// ParseBoundary maps a rule name to its BoundaryMode.
func ParseBoundary(s string) (BoundaryMode, error) {
	for i, name := range boundaryNames {
		if name == s {
			return BoundaryMode(i), nil
		}
	}
	return 0, unknown("boundary mode", s)
}

// InitPattern selects the initial lattice contents.
type InitPattern uint8

const (
	InitScrambled InitPattern = iota
	InitUp
	InitDown
)

var initNames = [...]string{
	InitScrambled: "scrambled",
	InitUp:        "up",
	InitDown:      "down",
}

func (p InitPattern) String() string {
	if int(p) < len(initNames) {
		return initNames[p]
	}
	return "unknown"
}

// ParseInit maps a pattern name to its InitPattern.
func ParseInit(s string) (InitPattern, error) {
	for i, name := range initNames {
		if name == s {
			return InitPattern(i), nil
		}
	}
	return 0, unknown("init pattern", s)
}

// Topology selects how neighbors at the lattice edge are found.
type Topology uint8

const (
	// Torus wraps indices modulo the grid size; no halo cells exist.
	Torus Topology = iota
	// Halo surrounds the interior with a one-cell border ring maintained by
	// a boundary rule.
	Halo
)

func (t Topology) String() string {
	switch t {
	case Torus:
		return "torus"
	case Halo:
		return "halo"
	default:
		return "unknown"
	}
}

// ParseTopology maps a topology name to its Topology.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "torus":
		return Torus, nil
	case "halo":
		return Halo, nil
	}
	return 0, unknown("topology", s)
}

func names[T ~uint8](modes []T, str func(T) string) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = str(m)
	}
	return out
}
