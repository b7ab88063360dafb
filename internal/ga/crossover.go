package ga

import "fmt"

// Crossover builds a child that starts with k consecutive stops of x taken
// from a random position (wrapping past the end), followed by the
// remaining stops in the order they appear in y.
func Crossover(x, y *Tour, k int, rng Rand) *Tour {
	n := len(x.Order)
	if n == 0 {
		return NewTour(nil)
	}
	k = min(max(k, 0), n)

	child := make([]int, 0, n)
	taken := make([]bool, n)
	start := rng.Intn(n)
	for i := 0; i < k; i++ {
		v := x.Order[(start+i)%n]
		child = append(child, v)
		taken[v] = true
	}
	for _, v := range y.Order {
		if !taken[v] {
			child = append(child, v)
		}
	}

	return NewTour(child)
}

// Breed refills the population to p.Size with children of the two parents
// picked by SelectParents. Children are merged only after the refill, so
// every child is bred from the same population and therefore the same
// parent pair. Returns the number of children added.
func (p *Population) Breed(rng Rand, transfer int) (int, error) {
	need := p.Size - len(p.Tours)
	if need <= 0 {
		return 0, nil
	}
	if len(p.Tours) < 2 {
		return 0, fmt.Errorf("%w: %d tours left, %d children needed", ErrPopulationCollapsed, len(p.Tours), need)
	}
	for i, t := range p.Tours {
		if _, err := t.Evaluate(p.Points); err != nil {
			return 0, fmt.Errorf("tour %d: %w", i, err)
		}
	}

	xi, yi := SelectParents(p.Tours)
	x, y := p.Tours[xi], p.Tours[yi]

	babies := make([]*Tour, 0, need)
	for len(p.Tours)+len(babies) < p.Size {
		babies = append(babies, Crossover(x, y, transfer, rng))
	}
	p.Tours = append(p.Tours, babies...)

	return len(babies), nil
}
