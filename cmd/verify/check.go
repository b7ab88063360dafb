package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/logging"
)

var (
	errNotPermutation = errors.New("order is not a permutation of the points")
	errCostMismatch   = errors.New("saved cost does not match the tour")
)

// CheckResult is the recomputed view of a saved tour
type CheckResult struct {
	Cost float64
	Path string
}

// Check validates a saved tour against its own point set
func Check(saved *logging.TourArtifact, tolerance float64) (CheckResult, error) {
	var res CheckResult
	if err := ga.ValidatePoints(saved.Points); err != nil {
		return res, err
	}
	if !ga.IsPermutation(saved.Order, len(saved.Points)) {
		return res, errNotPermutation
	}

	ids := make([]string, len(saved.Order))
	for i, idx := range saved.Order {
		ids[i] = saved.Points[idx].ID
	}
	res.Path = strings.Join(ids, " -> ")
	res.Cost = geom.TourCost(saved.Points, saved.Order)

	if math.Abs(res.Cost-saved.Cost) > tolerance {
		return res, fmt.Errorf("%w: saved %.6f, recomputed %.6f", errCostMismatch, saved.Cost, res.Cost)
	}
	return res, nil
}
