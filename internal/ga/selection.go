package ga

// CullTarget returns the length culling shrinks a population of size to
func CullTarget(size int) int {
	return max(1, size/2)
}

// CullReport describes one culling pass
type CullReport struct {
	Removed int
	Draws   int
	// Fallback is set when the draw bound was hit and the remaining excess
	// was removed costliest first
	Fallback bool
}

// Cull shrinks the population to CullTarget(p.Size) by random sampling.
// Each draw is compared against the cost of the previous draw and removed
// when strictly costlier; the first draw only sets the threshold.
// Sampling stops after boundFactor draws per starting tour, after which the
// costliest tours are removed until the target is met.
func (p *Population) Cull(rng Rand, boundFactor int) (CullReport, error) {
	var report CullReport
	target := CullTarget(p.Size)
	if boundFactor < 1 {
		boundFactor = DefaultCullBoundFactor
	}
	limit := boundFactor * len(p.Tours)

	var threshold float64
	haveThreshold := false
	for len(p.Tours) > target && report.Draws < limit {
		i := rng.Intn(len(p.Tours))
		report.Draws++
		c, err := p.Tours[i].Evaluate(p.Points)
		if err != nil {
			return report, err
		}

		if !haveThreshold {
			threshold = c
			haveThreshold = true
			continue
		}
		if c > threshold {
			p.remove(i)
			report.Removed++
		}
		threshold = c
	}

	for len(p.Tours) > target {
		report.Fallback = true
		worst := 0
		worstCost, err := p.Tours[0].Evaluate(p.Points)
		if err != nil {
			return report, err
		}
		for i := 1; i < len(p.Tours); i++ {
			c, err := p.Tours[i].Evaluate(p.Points)
			if err != nil {
				return report, err
			}
			if c > worstCost {
				worstCost = c
				worst = i
			}
		}
		p.remove(worst)
		report.Removed++
	}

	return report, nil
}

// SelectParents scans tours once and returns the indices of two parents.
// It starts from the first two tours and moves a slot whenever a candidate
// is cheaper than its holder, checking slot x before slot y. The result is
// an approximation of the two cheapest tours, not an exact top two.
// All tours must be evaluated and len(tours) must be at least two.
func SelectParents(tours []*Tour) (x, y int) {
	x, y = 0, 1
	for i, t := range tours {
		if i == x || i == y {
			continue
		}
		if t.cost < tours[x].cost {
			x = i
			continue
		}
		if t.cost < tours[y].cost {
			y = i
		}
	}
	return x, y
}
