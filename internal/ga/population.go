package ga

import (
	"fmt"
	"math"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// Tour is one candidate solution: a closed visiting order over the point
// set, stored as indices into the shared point slice.
// A Tour is never modified after it is built; operators return new tours.
type Tour struct {
	Order []int

	cost      float64
	evaluated bool
}

// NewTour wraps an order with an unset cost
func NewTour(order []int) *Tour {
	return &Tour{Order: order}
}

// Len returns the number of stops in the tour
func (t *Tour) Len() int {
	return len(t.Order)
}

// Cost returns the cached cost and whether it has been computed
func (t *Tour) Cost() (float64, bool) {
	return t.cost, t.evaluated
}

// Evaluate computes and caches the cost if it is unset
func (t *Tour) Evaluate(points []geom.Point) (float64, error) {
	if t.evaluated {
		return t.cost, nil
	}
	c := geom.TourCost(points, t.Order)
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCost, c)
	}
	t.cost = c
	t.evaluated = true
	return c, nil
}

// Clone creates a deep copy of a tour, including its cached cost
func (t *Tour) Clone() *Tour {
	order := make([]int, len(t.Order))
	copy(order, t.Order)
	return &Tour{Order: order, cost: t.cost, evaluated: t.evaluated}
}

// Points resolves the tour order against the point slice
func (t *Tour) Points(points []geom.Point) []geom.Point {
	out := make([]geom.Point, len(t.Order))
	for i, idx := range t.Order {
		out[i] = points[idx]
	}
	return out
}

// IsPermutation reports whether order visits each of 0..n-1 exactly once
func IsPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Population manages the evolving set of tours
type Population struct {
	Tours  []*Tour
	Points []geom.Point
	// Size is the length the population is refilled to by Breed
	Size int
}

// NewPopulation builds the greedy starting population. The requested size
// is capped at the number of points.
func NewPopulation(points []geom.Point, size int) *Population {
	tours := Greedy(points, size)
	return &Population{
		Tours:  tours,
		Points: points,
		Size:   len(tours),
	}
}

// Len returns the current number of tours
func (p *Population) Len() int {
	return len(p.Tours)
}

// Evaluation summarizes one pass over the population costs
type Evaluation struct {
	Average float64
	Min     float64
	Max     float64
	// MinIndex and MaxIndex point at the first tour holding each extreme
	MinIndex int
	MaxIndex int
	// Computed counts tours whose cost was unset before the pass
	Computed int
}

// Evaluate fills in missing costs and returns the population extremes
func (p *Population) Evaluate() (Evaluation, error) {
	ev := Evaluation{MinIndex: -1, MaxIndex: -1}
	if len(p.Tours) == 0 {
		return ev, nil
	}

	var sum float64
	for i, t := range p.Tours {
		if !t.evaluated {
			ev.Computed++
		}
		c, err := t.Evaluate(p.Points)
		if err != nil {
			return ev, fmt.Errorf("tour %d: %w", i, err)
		}
		if ev.MinIndex < 0 || c < ev.Min {
			ev.Min = c
			ev.MinIndex = i
		}
		if ev.MaxIndex < 0 || c > ev.Max {
			ev.Max = c
			ev.MaxIndex = i
		}
		sum += c
	}
	ev.Average = sum / float64(len(p.Tours))
	return ev, nil
}

// remove drops the tour at i keeping the order of the rest
func (p *Population) remove(i int) {
	copy(p.Tours[i:], p.Tours[i+1:])
	p.Tours[len(p.Tours)-1] = nil
	p.Tours = p.Tours[:len(p.Tours)-1]
}
