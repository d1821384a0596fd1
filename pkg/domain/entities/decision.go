package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SolveStatus represents the outcome quality of a solve
type SolveStatus int

const (
	StatusOptimal SolveStatus = iota
	StatusFeasible
	StatusInfeasible
)

// String method for SolveStatus enum
func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "Unknown"
	}
}

// Strategy represents an objective strategy for the optimizer
type Strategy int

const (
	LowestCost Strategy = iota
	PriorityWeighted
	FastDelivery
	SmoothCashflow
	Balanced
)

// String method for Strategy enum
func (s Strategy) String() string {
	switch s {
	case LowestCost:
		return "LOWEST_COST"
	case PriorityWeighted:
		return "PRIORITY_WEIGHTED"
	case FastDelivery:
		return "FAST_DELIVERY"
	case SmoothCashflow:
		return "SMOOTH_CASHFLOW"
	case Balanced:
		return "BALANCED"
	default:
		return "Unknown"
	}
}

// ParseStrategy parses a strategy from its textual form
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "LOWEST_COST", "lowest_cost":
		return LowestCost, nil
	case "PRIORITY_WEIGHTED", "priority_weighted":
		return PriorityWeighted, nil
	case "FAST_DELIVERY", "fast_delivery":
		return FastDelivery, nil
	case "SMOOTH_CASHFLOW", "smooth_cashflow":
		return SmoothCashflow, nil
	case "BALANCED", "balanced":
		return Balanced, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %q", s)
	}
}

// BunchTag distinguishes the high-priority bunch from the remainder
type BunchTag int

const (
	FirstBunch BunchTag = iota
	RestBunch
)

// String method for BunchTag enum
func (t BunchTag) String() string {
	switch t {
	case FirstBunch:
		return "FIRST_BUNCH"
	case RestBunch:
		return "REST_BUNCH"
	default:
		return "Unknown"
	}
}

// Decision represents one committed-to purchase in a proposal: a chosen option
// and timing for one item. FinalCost is the discounted, base-currency total for
// the item's full quantity.
type Decision struct {
	ProjectID      ProjectID
	ItemCode       ItemCode
	OptionID       OptionID
	Supplier       string
	Quantity       Quantity
	PurchaseOffset int
	DeliveryOffset int
	PurchaseDate   time.Time
	DeliveryDate   time.Time
	UnitCost       decimal.Decimal
	FinalCost      decimal.Decimal
	BundleApplied  bool
	PaymentSummary string
}

// Bunch is an ordered, disjoint subset of a proposal's decisions that can be
// committed or reverted downstream as a unit
type Bunch struct {
	Tag       BunchTag
	Decisions []Decision
}

// Proposal is one full candidate solution for one objective strategy
type Proposal struct {
	Strategy     Strategy
	Status       SolveStatus
	SolverName   string
	Decisions    []Decision
	TotalCost    decimal.Decimal
	WeightedCost decimal.Decimal
	// Degraded marks proposals whose solution required post-solve repair
	// (LP rounding or bundle repricing) and should be trusted accordingly.
	Degraded bool
	// CashflowSpread is max-minus-min of per-period purchase outflow.
	CashflowSpread decimal.Decimal
	// Skipped lists items this strategy left unfulfilled, with reasons
	Skipped []UnschedulableItem
	Bunches []Bunch
}

// ValidateBunches verifies that the bunches partition the proposal's decisions
// exactly: no overlaps, no omissions
func (p *Proposal) ValidateBunches() error {
	if len(p.Bunches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(p.Decisions))
	total := 0
	for _, b := range p.Bunches {
		for _, d := range b.Decisions {
			key := string(d.ProjectID) + "|" + string(d.ItemCode)
			if seen[key] {
				return fmt.Errorf("bunches overlap on %s", key)
			}
			seen[key] = true
			total++
		}
	}
	if total != len(p.Decisions) {
		return fmt.Errorf("bunches cover %d decisions, proposal has %d", total, len(p.Decisions))
	}
	for _, d := range p.Decisions {
		key := string(d.ProjectID) + "|" + string(d.ItemCode)
		if !seen[key] {
			return fmt.Errorf("decision %s missing from bunches", key)
		}
	}
	return nil
}
