package ga

import (
	"fmt"
	"math/rand"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// Defaults used when a Config is built with DefaultConfig
const (
	DefaultPopulationSize         = 200
	DefaultGenerations            = 1200
	DefaultMutationsPerThousand   = 150
	DefaultCrossoverTransferCount = 2
	DefaultCullBoundFactor        = 4

	// defaultSeed replaces a zero seed so runs stay reproducible
	defaultSeed int64 = 1
)

// Config holds the evolution parameters of one experiment
type Config struct {
	PopulationSize         int
	Generations            int
	MutationsPerThousand   int
	CrossoverTransferCount int
	// CullBoundFactor caps culling draws at this multiple of the population
	// length before the deterministic fallback removes the costliest tours
	CullBoundFactor int
}

// DefaultConfig returns the standard experiment parameters
func DefaultConfig() Config {
	return Config{
		PopulationSize:         DefaultPopulationSize,
		Generations:            DefaultGenerations,
		MutationsPerThousand:   DefaultMutationsPerThousand,
		CrossoverTransferCount: DefaultCrossoverTransferCount,
		CullBoundFactor:        DefaultCullBoundFactor,
	}
}

// Validate checks parameter ranges. It does not clamp PopulationSize to the
// number of points; that happens when the population is built.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 1:
		return fmt.Errorf("%w: population size %d < 1", ErrInvalidConfig, c.PopulationSize)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations %d < 0", ErrInvalidConfig, c.Generations)
	case c.MutationsPerThousand < 0 || c.MutationsPerThousand > 1001:
		return fmt.Errorf("%w: mutations per thousand %d outside [0, 1001]", ErrInvalidConfig, c.MutationsPerThousand)
	case c.CrossoverTransferCount < 1:
		return fmt.Errorf("%w: crossover transfer count %d < 1", ErrInvalidConfig, c.CrossoverTransferCount)
	case c.CullBoundFactor < 1:
		return fmt.Errorf("%w: cull bound factor %d < 1", ErrInvalidConfig, c.CullBoundFactor)
	}
	return nil
}

// ValidatePoints rejects empty point sets and non-finite coordinates
func ValidatePoints(points []geom.Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	for i, p := range points {
		if !p.Finite() {
			return fmt.Errorf("%w: point %d (%q)", ErrInvalidPoint, i, p.ID)
		}
	}
	return nil
}

// Rand is the only source of randomness used by the operators.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n)
	Intn(n int) int
}

// NewRand returns a seeded generator; seed 0 maps to a fixed default
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
