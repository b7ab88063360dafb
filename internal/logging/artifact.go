package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/experiment"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// ErrNoTour is returned by SaveTour when the result holds no tour yet
var ErrNoTour = errors.New("logging: no tour to save")

// Tour labels used in artifact files
const (
	LabelBest  = "best"
	LabelWorst = "worst"
)

// TourArtifact is the saved form of a tour together with its point set
type TourArtifact struct {
	RunID       string       `json:"run_id"`
	Label       string       `json:"label"`
	Generations int          `json:"generations"`
	Cost        float64      `json:"cost"`
	Order       []int        `json:"order"`
	Points      []geom.Point `json:"points"`
}

// SaveTour saves the best or worst tour of a result to a file
func SaveTour(path, runID, label string, res *experiment.Result) error {
	tour, cost := res.Best, res.BestCost
	if label == LabelWorst {
		tour, cost = res.Worst, res.WorstCost
	}
	if tour == nil {
		return ErrNoTour
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data := TourArtifact{
		RunID:       runID,
		Label:       label,
		Generations: res.Generations,
		Cost:        cost,
		Order:       tour.Order,
		Points:      res.Points,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadTour loads a tour artifact from a file
func LoadTour(path string) (*TourArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var saved TourArtifact
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}

	return &saved, nil
}
