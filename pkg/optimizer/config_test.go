package optimizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

func TestDefaultRunConfigIsValid(t *testing.T) {
	cfg := DefaultRunConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if len(cfg.Strategies) != 5 {
		t.Errorf("Expected all 5 strategies by default, got %d", len(cfg.Strategies))
	}
	if cfg.BaseCurrency != "USD" {
		t.Errorf("Expected USD base currency, got %s", cfg.BaseCurrency)
	}
}

func TestRunConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"no strategies", func(c *RunConfig) { c.Strategies = nil }},
		{"duplicate strategy", func(c *RunConfig) {
			c.Strategies = []entities.Strategy{entities.LowestCost, entities.LowestCost}
		}},
		{"empty base currency", func(c *RunConfig) { c.BaseCurrency = "" }},
		{"zero time limit", func(c *RunConfig) { c.TimeLimit = 0 }},
		{"zero workers", func(c *RunConfig) { c.Workers = 0 }},
		{"negative bunch count", func(c *RunConfig) { c.BunchCount = -1 }},
		{"negative threshold", func(c *RunConfig) {
			c.BunchCostThreshold = decimal.NewFromInt(-5)
		}},
		{"zero top paths", func(c *RunConfig) { c.TopPaths = 0 }},
		{"bad factor weight", func(c *RunConfig) { c.Factors.Cost = 11 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestFactorWeightsValidate(t *testing.T) {
	if err := DefaultFactorWeights().Validate(); err != nil {
		t.Fatalf("Default weights must validate: %v", err)
	}
	bad := FactorWeights{Cost: 0, Priority: 5, Delivery: 5, Cashflow: 5}
	if err := bad.Validate(); err == nil {
		t.Error("Weight 0 is below the 1..10 range")
	}
	bad = FactorWeights{Cost: 5, Priority: 5, Delivery: 5, Cashflow: 11}
	if err := bad.Validate(); err == nil {
		t.Error("Weight 11 is above the 1..10 range")
	}
}

func TestTimeLimitHonoredType(t *testing.T) {
	cfg := DefaultRunConfig()
	if cfg.TimeLimit != 30*time.Second {
		t.Errorf("Expected 30s default time limit, got %v", cfg.TimeLimit)
	}
}
