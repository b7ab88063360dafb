package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/config"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/experiment"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/logging"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/metrics"
	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/points"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (defaults when empty)")
	generations := flag.Int("generations", 0, "number of generations to run (overrides config)")
	pointsPath := flag.String("points", "", "CSV file with id,x,y rows (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	quiet := flag.Bool("quiet", false, "suppress per-generation console lines")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("loading config", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.GA.Generations = *generations
	}
	if *pointsPath != "" {
		cfg.Points.Path = *pointsPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	// Initialize RNG
	rng := rand.New(rand.NewSource(cfg.Seed))

	pts, err := loadPoints(cfg, rng)
	if err != nil {
		log.Error("loading points", "err", err)
		os.Exit(1)
	}

	summary := points.Summarize(pts)
	fmt.Printf("TSP Genetic Solver - %d points (center %.1f,%.1f spread %.1f,%.1f)\n",
		summary.Count, summary.CenterX, summary.CenterY, summary.StdDevX, summary.StdDevY)
	fmt.Printf("Population: %d, Generations: %d, Mutations/1000: %d, Transfer: %d, Seed: %d\n",
		cfg.GA.Population, cfg.GA.Generations, cfg.GA.MutationsPerThousand, cfg.GA.CrossoverTransferCount, cfg.Seed)
	fmt.Println("---")

	// Create logger
	logger, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		log.Error("creating logger", "err", err)
		os.Exit(1)
	}
	if *quiet {
		logger.SetConsole(nil, 0, 0)
	} else {
		logger.SetConsole(os.Stdout, cfg.Logging.ConsoleFirst, cfg.Logging.ConsoleInterval)
	}
	if err := logger.Init(); err != nil {
		log.Error("initializing logger", "err", err)
		os.Exit(1)
	}

	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr, log)
	}

	progress := func(g experiment.Generation) {
		if cfg.Logging.EveryGenSummary {
			logger.LogGeneration(g)
		}
		if cfg.Metrics.Addr != "" {
			metrics.Observe(g)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	res, runErr := experiment.Run(ctx, pts, cfg.Engine(), rng, experiment.WithProgress(progress))
	elapsed := time.Since(startTime)

	if err := logger.Close(); err != nil {
		log.Warn("writing run logs", "err", err)
	}
	if res == nil {
		log.Error("starting experiment", "err", runErr)
		os.Exit(1)
	}

	logger.LogSummary(res, elapsed)
	saveArtifacts(cfg.Logging.ArtifactDir, logger.RunID, res, log)

	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		log.Warn("run interrupted", "generations", res.Generations)
	default:
		log.Error("experiment failed", "err", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadPoints reads the configured CSV file or generates a random layout
func loadPoints(cfg *config.Config, rng *rand.Rand) ([]geom.Point, error) {
	var pts []geom.Point
	if cfg.Points.Path != "" {
		var err error
		pts, err = points.Load(cfg.Points.Path)
		if err != nil {
			return nil, err
		}
	} else {
		pts = points.Generate(cfg.Points.Count, cfg.Points.Width, cfg.Points.Height, rng)
	}
	if err := ga.ValidatePoints(pts); err != nil {
		return nil, err
	}
	return pts, nil
}

func serveMetrics(addr string, log *slog.Logger) {
	metrics.RegisterDefault()
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	go func() {
		log.Info("metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn("metrics server stopped", "err", err)
		}
	}()
}

func saveArtifacts(dir, runID string, res *experiment.Result, log *slog.Logger) {
	for _, label := range []string{logging.LabelBest, logging.LabelWorst} {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", label, runID))
		if err := logging.SaveTour(path, runID, label, res); err != nil {
			log.Warn("saving tour", "label", label, "err", err)
			continue
		}
		fmt.Printf("Saved %s tour to %s\n", label, path)
	}
}
