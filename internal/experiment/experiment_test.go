package experiment

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

func squarePoints() []geom.Point {
	return []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0, Y: 10},
		{ID: "c", X: 10, Y: 10},
		{ID: "d", X: 10, Y: 0},
	}
}

func randomPoints(n int, seed int64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Point{X: rng.Float64() * 500, Y: rng.Float64() * 500}
	}
	return pts
}

func smallConfig(pop, gens int) ga.Config {
	cfg := ga.DefaultConfig()
	cfg.PopulationSize = pop
	cfg.Generations = gens
	return cfg
}

func TestRunSquare(t *testing.T) {
	res, err := Run(context.Background(), squarePoints(), smallConfig(200, 25), ga.NewRand(7))
	require.NoError(t, err)

	assert.Equal(t, Completed, res.State)
	assert.Equal(t, 25, res.Generations)
	assert.Equal(t, 4, res.Config.PopulationSize)
	assert.InDelta(t, 40.0, res.BestCost, 1e-9)
	assert.InDelta(t, 40.0, res.Min[0], 1e-9, "greedy start is already optimal")
	require.True(t, ga.IsPermutation(res.Best.Order, 4))
	require.True(t, ga.IsPermutation(res.Worst.Order, 4))
}

func TestRunReproducible(t *testing.T) {
	pts := randomPoints(35, 1)
	cfg := smallConfig(30, 60)

	a, err := Run(context.Background(), pts, cfg, ga.NewRand(99))
	require.NoError(t, err)
	b, err := Run(context.Background(), pts, cfg, ga.NewRand(99))
	require.NoError(t, err)

	assert.Equal(t, a.Best.Order, b.Best.Order)
	assert.Equal(t, a.Worst.Order, b.Worst.Order)
	assert.Equal(t, a.BestCost, b.BestCost)
	assert.Equal(t, a.WorstCost, b.WorstCost)
	assert.Equal(t, a.Average, b.Average)
	assert.Equal(t, a.Min, b.Min)
	assert.Equal(t, a.Max, b.Max)
	assert.Equal(t, a.Dispersion, b.Dispersion)
}

func TestRunInvariants(t *testing.T) {
	pts := randomPoints(40, 2)
	e, err := New(pts, smallConfig(24, 40), ga.NewRand(3))
	require.NoError(t, err)

	for e.State() != Completed {
		_, err := e.Step()
		require.NoError(t, err)

		pop := e.Population()
		require.Equal(t, 24, pop.Len())
		for i, tour := range pop.Tours {
			require.True(t, ga.IsPermutation(tour.Order, len(pts)), "tour %d", i)
			if c, ok := tour.Cost(); ok {
				require.Equal(t, geom.TourCost(pts, tour.Order), c)
			}
		}
	}

	s := e.Stats()
	require.Equal(t, 40, s.Generations())
	for g := 0; g < s.Generations(); g++ {
		assert.LessOrEqual(t, s.BestCost, s.Min[g])
		assert.GreaterOrEqual(t, s.WorstCost, s.Max[g])
		assert.LessOrEqual(t, s.Min[g], s.Average[g]+1e-9)
		assert.LessOrEqual(t, s.Average[g], s.Max[g]+1e-9)
	}
	assert.InDelta(t, geom.TourCost(pts, s.Best.Order), s.BestCost, 1e-9)
	assert.InDelta(t, geom.TourCost(pts, s.Worst.Order), s.WorstCost, 1e-9)
}

func TestRunSinglePoint(t *testing.T) {
	pts := []geom.Point{{ID: "home", X: 1, Y: 2}}
	res, err := Run(context.Background(), pts, smallConfig(200, 5), ga.NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, Completed, res.State)
	assert.Equal(t, 1, res.Config.PopulationSize)
	assert.Zero(t, res.BestCost)
	assert.Zero(t, res.WorstCost)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, res.Average)
	assert.Zero(t, res.Dispersion)
}

func TestRunCollapsedPopulation(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	e, err := New(pts, smallConfig(200, 5), ga.NewRand(1))
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.ErrorIs(t, err, ga.ErrPopulationCollapsed)
	assert.Equal(t, Failed, e.State())
	assert.Equal(t, 1, res.Generations, "the failing generation was already recorded")

	_, err = e.Step()
	require.ErrorIs(t, err, ErrFinished)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil, ga.DefaultConfig(), nil)
	require.ErrorIs(t, err, ga.ErrNoPoints)

	_, err = New(squarePoints(), smallConfig(0, 10), nil)
	require.ErrorIs(t, err, ga.ErrInvalidConfig)
}

func TestRunZeroGenerations(t *testing.T) {
	res, err := Run(context.Background(), squarePoints(), smallConfig(4, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, Completed, res.State)
	assert.Nil(t, res.Best)
	assert.Nil(t, res.BestPoints())
	assert.NotEmpty(t, res.Properties())
}

func TestRunCancelledBetweenGenerations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen []int
	progress := WithProgress(func(g Generation) {
		seen = append(seen, g.Index)
		if g.Index == 2 {
			cancel()
		}
	})

	res, err := Run(ctx, randomPoints(20, 4), smallConfig(10, 100), ga.NewRand(5), progress)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Cancelled, res.State)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, res.Generations)
	require.NotNil(t, res.Best)
}

func TestProgressCounts(t *testing.T) {
	var gens []Generation
	_, err := Run(context.Background(), randomPoints(30, 6), smallConfig(20, 10), ga.NewRand(2),
		WithProgress(func(g Generation) { gens = append(gens, g) }))
	require.NoError(t, err)
	require.Len(t, gens, 10)

	assert.Equal(t, 20, gens[0].Evaluated, "the greedy population starts unevaluated")
	for i, g := range gens {
		assert.Equal(t, i, g.Index)
		assert.Equal(t, 10, g.Culled)
		assert.Equal(t, 10, g.Born)
		assert.LessOrEqual(t, g.BestCost, g.Min)
		assert.GreaterOrEqual(t, g.WorstCost, g.Max)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initializing", Initializing.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}
