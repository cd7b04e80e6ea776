package harness

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram bins magnetization samples over [-1, 1].
type Histogram struct {
	// Dividers has one more entry than Counts; bin i covers
	// [Dividers[i], Dividers[i+1]).
	Dividers []float64 `json:"dividers"`
	Counts   []float64 `json:"counts"`
}

// NewHistogram bins samples into the given number of equal-width bins over
// [-1, 1]. A sample of exactly +1 lands in the last bin.
func NewHistogram(samples []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, errors.New("harness: histogram needs at least one bin")
	}
	dividers := floats.Span(make([]float64, bins+1), -1, 1)
	dividers[bins] = math.Nextafter(1, 2)

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	counts := make([]float64, bins)
	if len(sorted) > 0 {
		stat.Histogram(counts, dividers, sorted, nil)
	}
	return Histogram{Dividers: dividers, Counts: counts}, nil
}

// Histogram bins the result's magnetization samples.
func (r *Result) Histogram(bins int) (Histogram, error) {
	return NewHistogram(r.samples, bins)
}

// Total returns the number of binned samples.
func (h Histogram) Total() float64 { return floats.Sum(h.Counts) }
