// Package config loads YAML run configurations and converts them into engine
// run options.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/optimizer"
	"github.com/planwise/procure/pkg/solver"
)

// File is the YAML schema of a run configuration. Every field is optional;
// missing fields keep the engine defaults.
type File struct {
	Strategies []string      `yaml:"strategies"`
	Solver     string        `yaml:"solver"`
	Base       string        `yaml:"base_currency"`
	TimeLimit  time.Duration `yaml:"time_limit"`
	Workers    int           `yaml:"workers"`
	Bunching   BunchConfig   `yaml:"bunching"`
	Factors    FactorConfig  `yaml:"factors"`
	TopPaths   int           `yaml:"top_paths"`
}

// BunchConfig controls how proposals are split into bunches
type BunchConfig struct {
	Count         int    `yaml:"count"`
	CostThreshold string `yaml:"cost_threshold"`
}

// FactorConfig holds the BALANCED strategy's decision-factor weights (1-10)
type FactorConfig struct {
	Cost     int `yaml:"cost"`
	Priority int `yaml:"priority"`
	Delivery int `yaml:"delivery"`
	Cashflow int `yaml:"cashflow"`
}

// Load reads a YAML run configuration and merges it over the engine defaults
func Load(path string) (optimizer.RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return optimizer.RunConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse merges YAML bytes over the engine defaults and validates the result
func Parse(data []byte) (optimizer.RunConfig, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return optimizer.RunConfig{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg := optimizer.DefaultRunConfig()

	if len(file.Strategies) > 0 {
		cfg.Strategies = cfg.Strategies[:0]
		for _, name := range file.Strategies {
			strategy, err := entities.ParseStrategy(name)
			if err != nil {
				return optimizer.RunConfig{}, err
			}
			cfg.Strategies = append(cfg.Strategies, strategy)
		}
	}
	if file.Solver != "" {
		kind, err := solver.ParseKind(file.Solver)
		if err != nil {
			return optimizer.RunConfig{}, err
		}
		cfg.Solver = kind
	}
	if file.Base != "" {
		cfg.BaseCurrency = entities.Currency(file.Base)
	}
	if file.TimeLimit > 0 {
		cfg.TimeLimit = file.TimeLimit
	}
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	if file.Bunching.Count > 0 {
		cfg.BunchCount = file.Bunching.Count
	}
	if file.Bunching.CostThreshold != "" {
		threshold, err := decimal.NewFromString(file.Bunching.CostThreshold)
		if err != nil {
			return optimizer.RunConfig{}, fmt.Errorf("invalid bunching cost_threshold: %s", file.Bunching.CostThreshold)
		}
		cfg.BunchCostThreshold = threshold
	}
	if file.Factors != (FactorConfig{}) {
		cfg.Factors = optimizer.FactorWeights{
			Cost:     file.Factors.Cost,
			Priority: file.Factors.Priority,
			Delivery: file.Factors.Delivery,
			Cashflow: file.Factors.Cashflow,
		}
	}
	if file.TopPaths > 0 {
		cfg.TopPaths = file.TopPaths
	}

	if err := cfg.Validate(); err != nil {
		return optimizer.RunConfig{}, fmt.Errorf("invalid run config: %w", err)
	}
	return cfg, nil
}
