package ising

import (
	"math"

	"ising/internal/core"
)

// AcceptanceStrategy decides whether a visited spin flips.
type AcceptanceStrategy interface {
	Mode() AcceptanceMode
	Accept(deltaE int, temperature float64, rng core.Source) bool
}

// NewAcceptance returns the strategy for the given mode.
func NewAcceptance(mode AcceptanceMode) (AcceptanceStrategy, error) {
	switch mode {
	case AcceptMetropolis:
		return metropolis{}, nil
	case AcceptGlauber:
		return glauber{}, nil
	case AcceptMetropolisStar:
		return metropolisStar{}, nil
	}
	return nil, unknown("acceptance mode", mode.String())
}

// BoltzmannWeight returns exp(-deltaE/temperature), clamped to the largest
// finite float64 so a huge negative deltaE at low temperature never yields
// +Inf or NaN.
func BoltzmannWeight(deltaE int, temperature float64) float64 {
	w := math.Exp(-float64(deltaE) / temperature)
	if math.IsInf(w, 1) || math.IsNaN(w) || w > math.MaxFloat64 {
		return math.MaxFloat64
	}
	return w
}

type metropolis struct{}

func (metropolis) Mode() AcceptanceMode { return AcceptMetropolis }

func (metropolis) Accept(deltaE int, temperature float64, rng core.Source) bool {
	if deltaE <= 0 {
		return true
	}
	return rng.Float64() < BoltzmannWeight(deltaE, temperature)
}

type glauber struct{}

func (glauber) Mode() AcceptanceMode { return AcceptGlauber }

func (glauber) Accept(deltaE int, temperature float64, rng core.Source) bool {
	w := BoltzmannWeight(deltaE, temperature)
	return rng.Float64() < w/(1+w)
}

// metropolisStar replaces the forced flip at deltaE == 0 with a fair coin.
type metropolisStar struct{}

func (metropolisStar) Mode() AcceptanceMode { return AcceptMetropolisStar }

func (metropolisStar) Accept(deltaE int, temperature float64, rng core.Source) bool {
	switch {
	case deltaE < 0:
		return true
	case deltaE == 0:
		return rng.Float64() < 0.5
	}
	return rng.Float64() < BoltzmannWeight(deltaE, temperature)
}
