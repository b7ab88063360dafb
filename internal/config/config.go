package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/ga"
)

// ErrInvalid wraps every validation failure reported by Validate
var ErrInvalid = errors.New("config: invalid")

// Config is the root configuration structure
type Config struct {
	Seed    int64         `yaml:"seed"`
	Points  PointsConfig  `yaml:"points"`
	GA      GAConfig      `yaml:"ga"`
	Logging LogConfig     `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PointsConfig defines where the points come from
type PointsConfig struct {
	Path   string  `yaml:"path"`   // CSV file with id,x,y rows; empty means generate
	Count  int     `yaml:"count"`  // generated point count
	Width  float64 `yaml:"width"`  // generated area width
	Height float64 `yaml:"height"` // generated area height
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population             int `yaml:"population"`
	Generations            int `yaml:"generations"`
	MutationsPerThousand   int `yaml:"mutations_per_thousand"`
	CrossoverTransferCount int `yaml:"crossover_transfer_count"`
	CullBoundFactor        int `yaml:"cull_bound_factor"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	EveryGenSummary bool          `yaml:"every_gen_summary"`
	ConsoleFirst    int           `yaml:"console_first"`    // generations always printed at start
	ConsoleInterval time.Duration `yaml:"console_interval"` // minimum gap between later console lines
	CSVPath         string        `yaml:"csv_path"`
	JSONPath        string        `yaml:"json_path"`
	ArtifactDir     string        `yaml:"artifact_dir"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Apply defaults
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{Logging: LogConfig{EveryGenSummary: true}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Points.Count == 0 {
		cfg.Points.Count = 45
	}
	if cfg.Points.Width == 0 {
		cfg.Points.Width = 800
	}
	if cfg.Points.Height == 0 {
		cfg.Points.Height = 600
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = ga.DefaultPopulationSize
	}
	if cfg.GA.Generations == 0 {
		cfg.GA.Generations = ga.DefaultGenerations
	}
	if cfg.GA.MutationsPerThousand == 0 {
		cfg.GA.MutationsPerThousand = ga.DefaultMutationsPerThousand
	}
	if cfg.GA.CrossoverTransferCount == 0 {
		cfg.GA.CrossoverTransferCount = ga.DefaultCrossoverTransferCount
	}
	if cfg.GA.CullBoundFactor == 0 {
		cfg.GA.CullBoundFactor = ga.DefaultCullBoundFactor
	}
	if cfg.Logging.ConsoleFirst == 0 {
		cfg.Logging.ConsoleFirst = 5
	}
	if cfg.Logging.ConsoleInterval == 0 {
		cfg.Logging.ConsoleInterval = time.Second
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ArtifactDir == "" {
		cfg.Logging.ArtifactDir = "artifacts"
	}
}

// Engine returns the evolution parameters for the experiment loop
func (c *Config) Engine() ga.Config {
	return ga.Config{
		PopulationSize:         c.GA.Population,
		Generations:            c.GA.Generations,
		MutationsPerThousand:   c.GA.MutationsPerThousand,
		CrossoverTransferCount: c.GA.CrossoverTransferCount,
		CullBoundFactor:        c.GA.CullBoundFactor,
	}
}

// Validate checks ranges after defaults were applied
func (c *Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Points.Path == "" {
		if c.Points.Count < 1 {
			return fmt.Errorf("%w: points.count %d < 1", ErrInvalid, c.Points.Count)
		}
		if c.Points.Width <= 0 || c.Points.Height <= 0 {
			return fmt.Errorf("%w: points area %gx%g", ErrInvalid, c.Points.Width, c.Points.Height)
		}
	}
	if c.Logging.ConsoleFirst < 0 || c.Logging.ConsoleInterval < 0 {
		return fmt.Errorf("%w: negative console throttle", ErrInvalid)
	}
	return nil
}
