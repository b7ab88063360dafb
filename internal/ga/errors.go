package ga

import "errors"

var (
	// ErrNoPoints is returned when an experiment is started without points
	ErrNoPoints = errors.New("ga: empty point set")

	// ErrInvalidPoint is returned for points with NaN or infinite coordinates
	ErrInvalidPoint = errors.New("ga: non-finite point coordinate")

	// ErrInvalidConfig is returned when a Config field is out of range
	ErrInvalidConfig = errors.New("ga: invalid configuration")

	// ErrPopulationCollapsed is returned when breeding is required but fewer
	// than two tours survived culling
	ErrPopulationCollapsed = errors.New("ga: population collapsed below two parents")

	// ErrInvalidCost is returned when a tour evaluates to a negative or
	// non-finite length
	ErrInvalidCost = errors.New("ga: invalid tour cost")
)
