package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/experiment"
)

// Logger handles all run output: per-generation CSV and JSONL files plus a
// throttled console line
type Logger struct {
	RunID string

	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool

	console  io.Writer
	sometime rate.Sometimes
	err      error
}

// NewLogger creates a new logger with a fresh run ID
func NewLogger(csvPath, jsonPath string) (*Logger, error) {
	l := &Logger{
		RunID:    uuid.NewString(),
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  os.Stdout,
		sometime: rate.Sometimes{First: 5, Interval: time.Second},
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// SetConsole redirects console lines to w. The first generations are
// always printed, later ones at most once per interval; w == nil silences
// the console.
func (l *Logger) SetConsole(w io.Writer, first int, interval time.Duration) {
	l.console = w
	l.sometime = rate.Sometimes{First: first, Interval: interval}
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	// Open CSV file
	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	// Write CSV header
	header := []string{
		"generation", "avg_cost", "min_cost", "max_cost", "best_cost", "worst_cost",
		"evaluated", "culled", "cull_draws", "cull_fallback", "born", "swaps", "mixes",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	// Open JSON file
	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close flushes and closes all log files and returns the first write error
func (l *Logger) Close() error {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		l.keep(l.csvWriter.Error())
	}
	if l.csvFile != nil {
		l.keep(l.csvFile.Close())
	}
	if l.jsonFile != nil {
		l.keep(l.jsonFile.Close())
	}
	return l.err
}

func (l *Logger) keep(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

// generationLine is one JSONL record
type generationLine struct {
	RunID string `json:"run_id"`
	experiment.Generation
}

// LogGeneration logs a generation summary
func (l *Logger) LogGeneration(g experiment.Generation) {
	if !l.initialized {
		return
	}

	// Write CSV row
	row := []string{
		strconv.Itoa(g.Index),
		fmt.Sprintf("%.4f", g.Average),
		fmt.Sprintf("%.4f", g.Min),
		fmt.Sprintf("%.4f", g.Max),
		fmt.Sprintf("%.4f", g.BestCost),
		fmt.Sprintf("%.4f", g.WorstCost),
		strconv.Itoa(g.Evaluated),
		strconv.Itoa(g.Culled),
		strconv.Itoa(g.CullDraws),
		strconv.FormatBool(g.CullFallback),
		strconv.Itoa(g.Born),
		strconv.Itoa(g.Swaps),
		strconv.Itoa(g.Mixes),
	}
	l.keep(l.csvWriter.Write(row))
	l.csvWriter.Flush()

	// Write JSON line
	jsonLine, err := json.Marshal(generationLine{RunID: l.RunID, Generation: g})
	l.keep(err)
	if err == nil {
		_, err = l.jsonFile.Write(append(jsonLine, '\n'))
		l.keep(err)
	}

	// Print to console
	if l.console == nil {
		return
	}
	l.sometime.Do(func() {
		fmt.Fprintf(l.console, "Gen %5d | Avg: %10.2f | Min: %10.2f | Max: %10.2f | Best: %10.2f | Mut: %d/%d\n",
			g.Index, g.Average, g.Min, g.Max, g.BestCost, g.Swaps, g.Mixes)
	})
}

// LogSummary prints the run result
func (l *Logger) LogSummary(res *experiment.Result, elapsed time.Duration) {
	if l.console == nil {
		return
	}
	fmt.Fprintln(l.console, "---")
	fmt.Fprintf(l.console, "Run %s %s after %d generations in %v\n", l.RunID, res.State, res.Generations, elapsed)
	for _, p := range res.Properties() {
		fmt.Fprintf(l.console, "  %s\n", p)
	}
}
