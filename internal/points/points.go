// Package points supplies point sets to the solver: seeded random layouts
// and CSV files.
package points

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// ErrFormat is returned for unreadable CSV rows
var ErrFormat = errors.New("points: bad format")

// Generate places n labeled points uniformly in a width x height area
func Generate(n int, width, height float64, rng *rand.Rand) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Point{
			ID: strconv.Itoa(i),
			X:  rng.Float64() * width,
			Y:  rng.Float64() * height,
		}
	}
	return pts
}

// Load reads points from a CSV file
func Load(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// Read parses rows of "id,x,y" or "x,y". A first row whose coordinates do
// not parse is treated as a header. Rows without an id are labeled by
// their position.
func Read(r io.Reader) ([]geom.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var pts []geom.Point
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}

		p, err := parseRecord(rec, len(pts))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		if !p.Finite() {
			return nil, fmt.Errorf("%w: line %d: non-finite coordinate", ErrFormat, line)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseRecord(rec []string, index int) (geom.Point, error) {
	var id, xs, ys string
	switch len(rec) {
	case 2:
		id, xs, ys = strconv.Itoa(index), rec[0], rec[1]
	case 3:
		id, xs, ys = strings.TrimSpace(rec[0]), rec[1], rec[2]
	default:
		return geom.Point{}, fmt.Errorf("want 2 or 3 fields, got %d", len(rec))
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{ID: id, X: x, Y: y}, nil
}

// Summary describes the spread of a point set
type Summary struct {
	Count   int
	CenterX float64
	CenterY float64
	StdDevX float64
	StdDevY float64
}

// Summarize computes the centroid and per-axis standard deviation
func Summarize(pts []geom.Point) Summary {
	s := Summary{Count: len(pts)}
	if len(pts) == 0 {
		return s
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	s.CenterX, s.StdDevX = stat.PopMeanStdDev(xs, nil)
	s.CenterY, s.StdDevY = stat.PopMeanStdDev(ys, nil)
	return s
}
