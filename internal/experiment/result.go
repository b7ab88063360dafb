package experiment

import (
	"fmt"
	"math"
	"strings"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// chartMargin pads the chart range around the best and worst costs
const chartMargin = 10

// Result is the outcome handed to presentation layers
type Result struct {
	Config ga.Config
	State  State
	Points []geom.Point

	// Generations is the number of generations actually run
	Generations int

	Best      *ga.Tour
	BestCost  float64
	Worst     *ga.Tour
	WorstCost float64

	Average []float64
	Min     []float64
	Max     []float64

	ExperimentAverage float64
	// Dispersion is the mean absolute successive difference of Average
	Dispersion float64
}

// Result snapshots the current statistics
func (e *Experiment) Result() *Result {
	s := &e.stats
	return &Result{
		Config:            e.cfg,
		State:             e.state,
		Points:            e.points,
		Generations:       s.Generations(),
		Best:              s.Best,
		BestCost:          s.BestCost,
		Worst:             s.Worst,
		WorstCost:         s.WorstCost,
		Average:           append([]float64(nil), s.Average...),
		Min:               append([]float64(nil), s.Min...),
		Max:               append([]float64(nil), s.Max...),
		ExperimentAverage: s.ExperimentAverage(),
		Dispersion:        s.Dispersion(),
	}
}

// BestPoints returns the best tour as points, or nil before any generation
func (r *Result) BestPoints() []geom.Point {
	if r.Best == nil {
		return nil
	}
	return r.Best.Points(r.Points)
}

// WorstPoints returns the worst tour as points, or nil before any generation
func (r *Result) WorstPoints() []geom.Point {
	if r.Worst == nil {
		return nil
	}
	return r.Worst.Points(r.Points)
}

// ChartBounds returns a y-axis range covering every recorded cost
func (r *Result) ChartBounds() (lower, upper int) {
	lower = int(math.Round(r.BestCost - chartMargin))
	upper = int(math.Round(r.WorstCost + chartMargin))
	return lower, upper
}

// Properties lists the run summary as display lines
func (r *Result) Properties() []string {
	props := []string{
		fmt.Sprintf("Length of Experiment: %d cycles", r.Generations),
		fmt.Sprintf("Mutation Rate: approximately %d mutations every thousand tours", r.Config.MutationsPerThousand),
		fmt.Sprintf("Population Size: %d", r.Config.PopulationSize),
	}
	if r.Best != nil {
		props = append(props,
			fmt.Sprintf("Shortest path: %s", pathString(r.BestPoints())),
			fmt.Sprintf("Shortest path Cost: %.4f", r.BestCost),
		)
	}
	if r.Worst != nil {
		props = append(props,
			fmt.Sprintf("Longest path: %s", pathString(r.WorstPoints())),
			fmt.Sprintf("Longest path Cost: %.4f", r.WorstCost),
		)
	}
	props = append(props,
		fmt.Sprintf("Experiment Average: %.4f", r.ExperimentAverage),
		fmt.Sprintf("Experiment Dispersion: %.4f", r.Dispersion),
	)
	return props
}

func pathString(pts []geom.Point) string {
	ids := make([]string, len(pts))
	for i, p := range pts {
		if p.ID != "" {
			ids[i] = p.ID
		} else {
			ids[i] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
	}
	return strings.Join(ids, " -> ")
}
