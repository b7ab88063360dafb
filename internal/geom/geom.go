package geom

import "math"

// Point is a labeled location in the plane
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Segment is an edge between two consecutive tour points
type Segment struct {
	A, B Point
}

// Distance returns the Euclidean distance between p and q
func Distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SegmentDistance returns the distance from p to the closest point of s.
// The projection of p onto the line through s is clamped to the segment,
// so points beyond an endpoint measure to that endpoint.
func SegmentDistance(p Point, s Segment) float64 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, s.A)
	}

	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point{X: s.A.X + t*dx, Y: s.A.Y + t*dy}
	return Distance(p, closest)
}

// TourCost returns the length of the closed cycle visiting points in order.
// Tours with fewer than two stops cost nothing.
func TourCost(points []Point, order []int) float64 {
	n := len(order)
	if n < 2 {
		return 0
	}

	var total float64
	for i := 0; i < n; i++ {
		total += Distance(points[order[i]], points[order[(i+1)%n]])
	}
	return total
}
