// Package experiment drives the generation loop of the genetic TSP solver:
// evaluate, record statistics, cull, breed and mutate, for a fixed number of
// generations.
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// ErrFinished is returned by Step once the experiment left the running states
var ErrFinished = errors.New("experiment: already finished")

// State is the lifecycle stage of an experiment
type State int

const (
	Initializing State = iota
	Running
	Completed
	Cancelled // context done at a generation boundary
	Failed    // an operator returned an error
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Generation is the progress record emitted after each generation
type Generation struct {
	Index     int     `json:"generation"`
	Average   float64 `json:"avg_cost"`
	Min       float64 `json:"min_cost"`
	Max       float64 `json:"max_cost"`
	BestCost  float64 `json:"best_cost"`
	WorstCost float64 `json:"worst_cost"`

	Evaluated    int  `json:"evaluated"`
	Culled       int  `json:"culled"`
	CullDraws    int  `json:"cull_draws"`
	CullFallback bool `json:"cull_fallback"`
	Born         int  `json:"born"`
	Swaps        int  `json:"swaps"`
	Mixes        int  `json:"mixes"`
}

// Option customizes a run
type Option func(*Experiment)

// WithProgress registers a callback invoked after every completed generation
func WithProgress(fn func(Generation)) Option {
	return func(e *Experiment) {
		e.progress = fn
	}
}

// Experiment owns the population for the duration of a run
type Experiment struct {
	cfg    ga.Config
	points []geom.Point
	rng    ga.Rand

	pop   *ga.Population
	stats Stats
	state State
	gen   int

	progress func(Generation)
}

// New validates the inputs and builds the greedy starting population.
// A nil rng falls back to the default seeded generator.
func New(points []geom.Point, cfg ga.Config, rng ga.Rand, opts ...Option) (*Experiment, error) {
	if err := ga.ValidatePoints(points); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = ga.NewRand(0)
	}

	e := &Experiment{
		cfg:    cfg,
		points: points,
		rng:    rng,
		state:  Initializing,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.pop = ga.NewPopulation(points, cfg.PopulationSize)
	e.cfg.PopulationSize = e.pop.Size
	if cfg.Generations == 0 {
		e.state = Completed
	}
	return e, nil
}

// Config returns the effective configuration, with the population size
// capped at the number of points
func (e *Experiment) Config() ga.Config {
	return e.cfg
}

// State returns the current lifecycle stage
func (e *Experiment) State() State {
	return e.state
}

// Population exposes the live population. Callers must not modify it.
func (e *Experiment) Population() *ga.Population {
	return e.pop
}

// Stats returns the statistics gathered so far
func (e *Experiment) Stats() *Stats {
	return &e.stats
}

// Step runs one generation
func (e *Experiment) Step() (Generation, error) {
	if e.state != Initializing && e.state != Running {
		return Generation{}, ErrFinished
	}
	e.state = Running

	g, err := e.step()
	if err != nil {
		e.state = Failed
		return g, fmt.Errorf("generation %d: %w", e.gen, err)
	}

	e.gen++
	if e.gen >= e.cfg.Generations {
		e.state = Completed
	}
	if e.progress != nil {
		e.progress(g)
	}
	return g, nil
}

func (e *Experiment) step() (Generation, error) {
	g := Generation{Index: e.gen}

	// 1. Evaluate
	ev, err := e.pop.Evaluate()
	if err != nil {
		return g, err
	}

	// 2. Record
	e.stats.Record(ev, e.pop.Tours)
	g.Average, g.Min, g.Max = ev.Average, ev.Min, ev.Max
	g.BestCost, g.WorstCost = e.stats.BestCost, e.stats.WorstCost
	g.Evaluated = ev.Computed

	// 3. Cull
	cull, err := e.pop.Cull(e.rng, e.cfg.CullBoundFactor)
	if err != nil {
		return g, err
	}
	g.Culled, g.CullDraws, g.CullFallback = cull.Removed, cull.Draws, cull.Fallback

	// 4. Breed
	born, err := e.pop.Breed(e.rng, e.cfg.CrossoverTransferCount)
	if err != nil {
		return g, err
	}
	g.Born = born

	// 5. Mutate
	mut, err := e.pop.Mutate(e.rng, e.cfg.MutationsPerThousand)
	if err != nil {
		return g, err
	}
	g.Swaps, g.Mixes = mut.Swaps, mut.Mixes

	return g, nil
}

// Run steps until the configured generation count is reached. The context
// is checked between generations only; on cancellation the partial result
// is returned together with the context error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	for e.state == Initializing || e.state == Running {
		if err := ctx.Err(); err != nil {
			e.state = Cancelled
			return e.Result(), err
		}
		if _, err := e.Step(); err != nil {
			return e.Result(), err
		}
	}
	return e.Result(), nil
}

// Run builds an experiment and runs it to completion
func Run(ctx context.Context, points []geom.Point, cfg ga.Config, rng ga.Rand, opts ...Option) (*Result, error) {
	e, err := New(points, cfg, rng, opts...)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
