package optimizer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/solver"
)

// FactorWeights are the named decision-factor weights (1-10) used by the
// BALANCED strategy to combine the four base objectives
type FactorWeights struct {
	Cost     int
	Priority int
	Delivery int
	Cashflow int
}

// DefaultFactorWeights weighs all factors equally
func DefaultFactorWeights() FactorWeights {
	return FactorWeights{Cost: 5, Priority: 5, Delivery: 5, Cashflow: 5}
}

// Validate checks every weight is within the 1-10 scale
func (w FactorWeights) Validate() error {
	for name, v := range map[string]int{
		"cost": w.Cost, "priority": w.Priority, "delivery": w.Delivery, "cashflow": w.Cashflow,
	} {
		if v < 1 || v > 10 {
			return fmt.Errorf("factor weight %s must be in [1,10], got %d", name, v)
		}
	}
	return nil
}

// RunConfig controls one optimization run
type RunConfig struct {
	Strategies []entities.Strategy
	Solver     solver.Kind
	// BaseCurrency is the currency all money is normalized to
	BaseCurrency entities.Currency
	// TimeLimit bounds each strategy's solve wall-clock time
	TimeLimit time.Duration
	// Workers bounds how many strategies solve concurrently
	Workers int
	// BunchCount puts the top N decisions into FIRST_BUNCH. Ignored when
	// BunchCostThreshold is set.
	BunchCount int
	// BunchCostThreshold fills FIRST_BUNCH until its cumulative cost would
	// exceed this amount. Zero disables threshold splitting.
	BunchCostThreshold decimal.Decimal
	Factors            FactorWeights
	// TopPaths is how many critical paths to report
	TopPaths int
}

// DefaultRunConfig returns the standard configuration: all strategies, exact
// solver, 30 second limit per strategy
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Strategies: []entities.Strategy{
			entities.LowestCost,
			entities.PriorityWeighted,
			entities.FastDelivery,
			entities.SmoothCashflow,
			entities.Balanced,
		},
		Solver:       solver.KindCP,
		BaseCurrency: "USD",
		TimeLimit:    30 * time.Second,
		Workers:      2,
		BunchCount:   5,
		Factors:      DefaultFactorWeights(),
		TopPaths:     3,
	}
}

// Validate checks the configuration is usable
func (c *RunConfig) Validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("at least one strategy is required")
	}
	seen := make(map[entities.Strategy]bool)
	for _, s := range c.Strategies {
		if seen[s] {
			return fmt.Errorf("strategy %s listed twice", s)
		}
		seen[s] = true
	}
	if c.BaseCurrency == "" {
		return fmt.Errorf("base currency must not be empty")
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be positive, got %v", c.TimeLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.BunchCount < 0 {
		return fmt.Errorf("bunch count must not be negative, got %d", c.BunchCount)
	}
	if c.BunchCostThreshold.IsNegative() {
		return fmt.Errorf("bunch cost threshold must not be negative, got %s", c.BunchCostThreshold)
	}
	if c.TopPaths < 1 {
		return fmt.Errorf("top paths must be at least 1, got %d", c.TopPaths)
	}
	return c.Factors.Validate()
}
