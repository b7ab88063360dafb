package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/experiment"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

func squareResult(t *testing.T) *experiment.Result {
	t.Helper()
	pts := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0, Y: 10},
		{ID: "c", X: 10, Y: 10},
		{ID: "d", X: 10, Y: 0},
	}
	cfg := ga.DefaultConfig()
	cfg.Generations = 5
	res, err := experiment.Run(context.Background(), pts, cfg, ga.NewRand(1))
	require.NoError(t, err)
	return res
}

func TestLoggerWritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "runs", "run.csv")
	jsonPath := filepath.Join(dir, "runs", "run.jsonl")

	l, err := NewLogger(csvPath, jsonPath)
	require.NoError(t, err)
	_, err = uuid.Parse(l.RunID)
	require.NoError(t, err)

	var console bytes.Buffer
	l.SetConsole(&console, 2, time.Hour)
	require.NoError(t, l.Init())

	for i := 0; i < 4; i++ {
		l.LogGeneration(experiment.Generation{Index: i, Average: 50, Min: 40, Max: 60, BestCost: 40, Culled: 2})
	}
	require.NoError(t, l.Close())

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "generation", rows[0][0])
	assert.Equal(t, []string{"3", "50.0000", "40.0000", "60.0000"}, rows[4][:4])

	jf, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer jf.Close()
	var lines int
	sc := bufio.NewScanner(jf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		assert.Equal(t, l.RunID, rec["run_id"])
		assert.EqualValues(t, lines, rec["generation"])
		assert.EqualValues(t, 2, rec["culled"])
		lines++
	}
	assert.Equal(t, 4, lines)

	assert.Equal(t, 2, strings.Count(console.String(), "Gen "), "console is throttled after the first lines")
}

func TestLoggerBeforeInitIsNoop(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(filepath.Join(dir, "a.csv"), filepath.Join(dir, "a.jsonl"))
	require.NoError(t, err)
	l.LogGeneration(experiment.Generation{Index: 1})
	require.NoError(t, l.Close())
	assert.NoFileExists(t, filepath.Join(dir, "a.csv"))
}

func TestLogSummary(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(filepath.Join(dir, "a.csv"), filepath.Join(dir, "a.jsonl"))
	require.NoError(t, err)

	var console bytes.Buffer
	l.SetConsole(&console, 0, 0)
	l.LogSummary(squareResult(t), time.Second)

	out := console.String()
	assert.Contains(t, out, l.RunID)
	assert.Contains(t, out, "completed after 5 generations")
	assert.Contains(t, out, "Shortest path Cost: 40.0000")
}

func TestSaveAndLoadTour(t *testing.T) {
	res := squareResult(t)
	path := filepath.Join(t.TempDir(), "artifacts", "best.json")

	require.NoError(t, SaveTour(path, "run-1", LabelBest, res))
	saved, err := LoadTour(path)
	require.NoError(t, err)

	assert.Equal(t, "run-1", saved.RunID)
	assert.Equal(t, LabelBest, saved.Label)
	assert.Equal(t, res.Best.Order, saved.Order)
	assert.Equal(t, res.Points, saved.Points)
	assert.InDelta(t, geom.TourCost(saved.Points, saved.Order), saved.Cost, 1e-9)
}

func TestSaveTourWithoutResult(t *testing.T) {
	err := SaveTour(filepath.Join(t.TempDir(), "x.json"), "run", LabelWorst, &experiment.Result{})
	require.ErrorIs(t, err, ErrNoTour)
}
