package ga

import (
	"slices"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// Greedy builds one tour per starting point for the first
// min(size, len(points)) points
func Greedy(points []geom.Point, size int) []*Tour {
	size = min(size, len(points))
	tours := make([]*Tour, 0, max(size, 0))
	for start := 0; start < size; start++ {
		tours = append(tours, GreedyTour(points, start))
	}
	return tours
}

// GreedyTour grows a closed tour from start. Each step picks the unvisited
// point nearest to the previous pick and inserts it into the edge of the
// partial cycle that lies closest to it.
func GreedyTour(points []geom.Point, start int) *Tour {
	unvisited := make([]int, 0, len(points)-1)
	for i := range points {
		if i != start {
			unvisited = append(unvisited, i)
		}
	}

	path := make([]int, 1, len(points))
	path[0] = start
	prev := start

	for len(unvisited) > 0 {
		// nearest to previous pick; first wins on ties
		pick := 0
		nearest := geom.Distance(points[prev], points[unvisited[0]])
		for i := 1; i < len(unvisited); i++ {
			if d := geom.Distance(points[prev], points[unvisited[i]]); d < nearest {
				nearest = d
				pick = i
			}
		}
		next := unvisited[pick]
		unvisited = slices.Delete(unvisited, pick, pick+1)

		path = insertClosest(points, path, next)
		prev = next
	}

	return NewTour(path)
}

// insertClosest places v between the endpoints of the closest edge of the
// closed path. Paths shorter than two stops have no edge and get v appended.
func insertClosest(points []geom.Point, path []int, v int) []int {
	if len(path) < 2 {
		return append(path, v)
	}

	m := len(path)
	at := 0
	closest := -1.0
	for i := 0; i < m; i++ {
		seg := geom.Segment{A: points[path[i]], B: points[path[(i+1)%m]]}
		d := geom.SegmentDistance(points[v], seg)
		if closest < 0 || d < closest {
			closest = d
			at = i
		}
	}
	return slices.Insert(path, at+1, v)
}
