package ga

// SwapTwo returns a copy of t with the stops at a random position and its
// successor (wrapping) exchanged
func SwapTwo(t *Tour, rng Rand) *Tour {
	order := make([]int, len(t.Order))
	copy(order, t.Order)
	n := len(order)
	if n < 2 {
		return NewTour(order)
	}

	i := rng.Intn(n)
	j := (i + 1) % n
	order[i], order[j] = order[j], order[i]
	return NewTour(order)
}

// MixThree returns a copy of t where the stops at a random position and the
// next two (wrapping) are reassigned in a random order. The identity order
// is a possible outcome. Tours shorter than three mix all their positions.
func MixThree(t *Tour, rng Rand) *Tour {
	order := make([]int, len(t.Order))
	copy(order, t.Order)
	n := len(order)
	if n < 2 {
		return NewTour(order)
	}

	first := rng.Intn(n)
	m := min(n, 3)
	positions := make([]int, m)
	pool := make([]int, m)
	for i := 0; i < m; i++ {
		positions[i] = (first + i) % n
		pool[i] = order[positions[i]]
	}

	// draw without replacement, one position at a time
	for _, pos := range positions {
		k := rng.Intn(len(pool))
		order[pos] = pool[k]
		pool = append(pool[:k], pool[k+1:]...)
	}
	return NewTour(order)
}

// MutationReport counts the operators applied in one pass
type MutationReport struct {
	Swaps int
	Mixes int
}

// Mutated returns the total number of tours replaced
func (r MutationReport) Mutated() int {
	return r.Swaps + r.Mixes
}

// Mutate walks the population once. A tour cheaper than every tour before
// it in the pass is kept as is; every other tour mutates when a draw in
// [1, 1000] is below perThousand, choosing SwapTwo or MixThree with equal
// odds. Mutated tours replace the original in place with an unset cost.
func (p *Population) Mutate(rng Rand, perThousand int) (MutationReport, error) {
	var report MutationReport
	var best float64
	haveBest := false

	for i, t := range p.Tours {
		c, err := t.Evaluate(p.Points)
		if err != nil {
			return report, err
		}
		if !haveBest || c < best {
			best = c
			haveBest = true
			continue
		}

		if rng.Intn(1000)+1 >= perThousand {
			continue
		}
		if rng.Intn(2) == 0 {
			p.Tours[i] = SwapTwo(t, rng)
			report.Swaps++
		} else {
			p.Tours[i] = MixThree(t, rng)
			report.Mixes++
		}
	}

	return report, nil
}
