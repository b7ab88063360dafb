package experiment

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
)

// Stats accumulates per-generation cost series and the extreme tours seen
// over the whole experiment
type Stats struct {
	Average []float64
	Min     []float64
	Max     []float64

	Best      *ga.Tour
	BestCost  float64
	Worst     *ga.Tour
	WorstCost float64
}

// Record appends one generation and updates the global extremes.
// A generation minimum replaces the best tour only when strictly cheaper,
// and a maximum replaces the worst tour only when strictly costlier.
func (s *Stats) Record(ev ga.Evaluation, tours []*ga.Tour) {
	s.Average = append(s.Average, ev.Average)
	s.Min = append(s.Min, ev.Min)
	s.Max = append(s.Max, ev.Max)

	if ev.MinIndex >= 0 && (s.Best == nil || ev.Min < s.BestCost) {
		s.Best = tours[ev.MinIndex].Clone()
		s.BestCost = ev.Min
	}
	if ev.MaxIndex >= 0 && (s.Worst == nil || ev.Max > s.WorstCost) {
		s.Worst = tours[ev.MaxIndex].Clone()
		s.WorstCost = ev.Max
	}
}

// Generations returns the number of recorded generations
func (s *Stats) Generations() int {
	return len(s.Average)
}

// ExperimentAverage returns the mean of the per-generation averages
func (s *Stats) ExperimentAverage() float64 {
	if len(s.Average) == 0 {
		return 0
	}
	return stat.Mean(s.Average, nil)
}

// Dispersion returns the mean absolute difference between consecutive
// per-generation averages. Reports have historically labelled this value
// a standard deviation; it is not one.
func (s *Stats) Dispersion() float64 {
	if len(s.Average) < 2 {
		return 0
	}
	diffs := make([]float64, len(s.Average)-1)
	for i := 1; i < len(s.Average); i++ {
		diffs[i-1] = math.Abs(s.Average[i] - s.Average[i-1])
	}
	return stat.Mean(diffs, nil)
}

// Rounded returns the three series rounded to whole units for charting
func (s *Stats) Rounded() (avg, lo, hi []int) {
	return roundAll(s.Average), roundAll(s.Min), roundAll(s.Max)
}

func roundAll(xs []float64) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = int(math.Round(x))
	}
	return out
}
