package dto

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/graph"
)

// RunResult contains the complete output of one optimization run
type RunResult struct {
	RunID                string
	Status               entities.SolveStatus
	ExecutionTimeSeconds float64
	// TotalCost is the total of the best proposal
	TotalCost      decimal.Decimal
	ItemsTotal     int
	ItemsOptimized int
	// Unschedulable lists items with no feasible option/time pair at all,
	// independent of strategy. Per-strategy budget squeezes are reported on
	// each proposal.
	Unschedulable []entities.UnschedulableItem
	Proposals     []entities.Proposal
	// CriticalPath reports the longest dependency chains, when relations were
	// supplied
	CriticalPath *graph.Analysis
}
