package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wellpipe/internal/table"
)

type Config struct {
	Inputs     Inputs     `yaml:"inputs"`
	Output     Output     `yaml:"output"`
	Normalize  Normalize  `yaml:"normalize"`
	Features   Features   `yaml:"features"`
	Clustering Clustering `yaml:"clustering"`
	LogLevel   string     `yaml:"log_level"`
}

type Inputs struct {
	Treatments string `yaml:"treatments"`
	Headers    string `yaml:"headers"`
	Production string `yaml:"production"`
}

type Output struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
	Sinks Sinks  `yaml:"sinks"`
}

// Sinks holds optional database DSNs; an empty DSN disables that sink.
type Sinks struct {
	Postgres string `yaml:"postgres"`
	MySQL    string `yaml:"mysql"`
	Mongo    string `yaml:"mongo"`
}

type Normalize struct {
	FillDirection string   `yaml:"fill_direction"`
	FillColumns   []string `yaml:"fill_columns"`
	ZeroColumns   []string `yaml:"zero_columns"`
}

type Features struct {
	HoursProduct     string `yaml:"hours_product"`
	NeighborDistance bool   `yaml:"neighbor_distance"`
}

// Clustering parameters are configuration, not constants: eps and
// min_points in particular are dataset-dependent values with no general
// derivation.
type Clustering struct {
	Enabled   bool     `yaml:"enabled"`
	Algorithm string   `yaml:"algorithm"`
	K         int      `yaml:"k"`
	Eps       float64  `yaml:"eps"`
	MinPoints int      `yaml:"min_points"`
	Columns   []string `yaml:"columns"`
	Label     string   `yaml:"label"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Table == "" {
		c.Output.Table = "well_features"
	}
	if c.Normalize.FillDirection == "" {
		c.Normalize.FillDirection = "forward"
	}
	if c.Clustering.Algorithm == "" {
		c.Clustering.Algorithm = "kmeans"
	}
	if c.Clustering.K == 0 {
		c.Clustering.K = 4
	}
	if c.Clustering.Eps == 0 {
		c.Clustering.Eps = 0.75
	}
	if c.Clustering.MinPoints == 0 {
		c.Clustering.MinPoints = 4
	}
	if c.Clustering.Label == "" {
		c.Clustering.Label = "cluster"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c.Inputs.Treatments == "" || c.Inputs.Headers == "" || c.Inputs.Production == "" {
		return fmt.Errorf("inputs: treatments, headers and production paths are required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output: path is required")
	}
	switch c.Normalize.FillDirection {
	case "forward", "backward":
	default:
		return fmt.Errorf("normalize: unknown fill_direction %q", c.Normalize.FillDirection)
	}
	if c.Clustering.Enabled {
		switch c.Clustering.Algorithm {
		case "kmeans", "dbscan":
		default:
			return fmt.Errorf("clustering: unknown algorithm %q", c.Clustering.Algorithm)
		}
		if len(c.Clustering.Columns) == 0 {
			return fmt.Errorf("clustering: columns are required")
		}
	}
	return nil
}

// FillDirection translates the configured direction for the table layer.
func (c *Config) FillDirection() table.FillDirection {
	if c.Normalize.FillDirection == "backward" {
		return table.FillBackward
	}
	return table.FillForward
}
