package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossover(t *testing.T) {
	x := NewTour([]int{0, 1, 2, 3, 4})
	y := NewTour([]int{4, 3, 2, 1, 0})

	tests := []struct {
		name  string
		k     int
		start int
		want  []int
	}{
		{"middle", 2, 1, []int{1, 2, 4, 3, 0}},
		{"wraps past end", 2, 4, []int{4, 0, 3, 2, 1}},
		{"single transfer", 1, 3, []int{3, 4, 2, 1, 0}},
		{"transfer clamped to length", 9, 2, []int{2, 3, 4, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := Crossover(x, y, tt.k, &scriptRand{vals: []int{tt.start}})
			assert.Equal(t, tt.want, child.Order)
			_, ok := child.Cost()
			assert.False(t, ok)
		})
	}
}

func TestCrossoverClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 25; n++ {
		for k := 1; k <= 4; k++ {
			x := NewTour(rng.Perm(n))
			y := NewTour(rng.Perm(n))
			child := Crossover(x, y, k, rng)
			require.True(t, IsPermutation(child.Order, n), "n=%d k=%d: %v", n, k, child.Order)
		}
	}
}

func TestCrossoverLeavesParentsIntact(t *testing.T) {
	x := NewTour([]int{0, 1, 2, 3})
	y := NewTour([]int{3, 1, 0, 2})
	Crossover(x, y, 2, &scriptRand{vals: []int{0}})
	assert.Equal(t, []int{0, 1, 2, 3}, x.Order)
	assert.Equal(t, []int{3, 1, 0, 2}, y.Order)
}

func TestBreedRefillsPopulation(t *testing.T) {
	pts := randomPoints(20, 4)
	p := NewPopulation(pts, 10)
	_, err := p.Evaluate()
	require.NoError(t, err)
	_, err = p.Cull(NewRand(3), DefaultCullBoundFactor)
	require.NoError(t, err)
	require.Equal(t, 5, p.Len())

	survivors := append([]*Tour(nil), p.Tours...)
	born, err := p.Breed(NewRand(3), DefaultCrossoverTransferCount)
	require.NoError(t, err)
	assert.Equal(t, 5, born)
	require.Equal(t, 10, p.Len())
	assert.Equal(t, survivors, p.Tours[:5], "survivors keep their slots")

	for _, tour := range p.Tours {
		require.True(t, IsPermutation(tour.Order, len(pts)))
	}
	for _, baby := range p.Tours[5:] {
		_, ok := baby.Cost()
		assert.False(t, ok)
	}
}

func TestBreedUsesOneParentPair(t *testing.T) {
	pts := squarePoints()
	x := NewTour([]int{0, 1, 2, 3})
	y := NewTour([]int{3, 2, 1, 0})
	p := &Population{Points: pts, Size: 4, Tours: []*Tour{x, y}}

	// start draws 0 then 2
	born, err := p.Breed(&scriptRand{vals: []int{0, 2}}, 2)
	require.NoError(t, err)
	require.Equal(t, 2, born)
	assert.Equal(t, []int{0, 1, 3, 2}, p.Tours[2].Order)
	assert.Equal(t, []int{2, 3, 1, 0}, p.Tours[3].Order)
}

func TestBreedCollapsed(t *testing.T) {
	pts := squarePoints()
	p := &Population{Points: pts, Size: 2, Tours: []*Tour{NewTour([]int{0, 1, 2, 3})}}
	_, err := p.Breed(NewRand(1), 2)
	require.ErrorIs(t, err, ErrPopulationCollapsed)
}

func TestBreedFullPopulationIsNoop(t *testing.T) {
	pts := squarePoints()
	p := &Population{Points: pts, Size: 1, Tours: []*Tour{NewTour([]int{0, 1, 2, 3})}}
	born, err := p.Breed(NewRand(1), 2)
	require.NoError(t, err)
	assert.Zero(t, born)
	assert.Equal(t, 1, p.Len())
}
