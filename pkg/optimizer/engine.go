// Package optimizer implements the procurement optimization engine: it builds
// a combinatorial decision model over (item, option, delivery-time) triples,
// solves it under one or more objective strategies, and packages the solutions
// into comparable, bunch-split purchase proposals.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/planwise/procure/pkg/application/dto"
	"github.com/planwise/procure/pkg/currency"
	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/graph"
	"github.com/planwise/procure/pkg/solver"
)

// Engine runs procurement optimizations. It holds no mutable state between
// runs: each run is a pure function of its snapshot, configuration, and time
// budget.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates an engine logging through the given logger. A nil logger
// falls back to slog.Default.
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// Run executes one optimization: validate inputs, price bundles, enumerate
// variables, build the shared constraint set, solve it once per strategy, and
// assemble ranked proposals. A missing FX rate aborts the run; unschedulable
// items and solver timeouts do not.
func (e *Engine) Run(ctx context.Context, snap *Snapshot, cfg RunConfig) (*dto.RunResult, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	snap.normalizeOrdering()

	result := &dto.RunResult{
		RunID:      uuid.NewString(),
		TotalCost:  decimal.Zero,
		ItemsTotal: len(snap.Items),
	}
	e.log.Info("optimization run started",
		"run_id", result.RunID,
		"items", len(snap.Items),
		"strategies", len(cfg.Strategies),
		"solver", cfg.Solver.String())

	// Step 1: normalize all money through the FX table; price bundles against
	// aggregate demand across projects.
	norm := currency.NewNormalizer(cfg.BaseCurrency,
		currency.NewTableProvider(currency.NewRateTable(snap.Rates)))
	pricing := computeBundlePricing(snap)

	// Step 2: enumerate feasible decision variables.
	set, err := buildVariables(ctx, snap, pricing, norm)
	if err != nil {
		return nil, err
	}
	result.Unschedulable = set.unschedulable
	e.log.Debug("variables built",
		"variables", len(set.vars),
		"schedulable_items", len(set.groups),
		"unschedulable_items", len(set.unschedulable))

	if len(set.vars) == 0 {
		// Nothing schedulable at all: a valid, empty result.
		result.Status = entities.StatusInfeasible
		result.ExecutionTimeSeconds = time.Since(start).Seconds()
		e.log.Warn("no schedulable items", "run_id", result.RunID)
		return result, nil
	}

	// Step 3: build the constraint set shared by every strategy.
	bm := buildConstraints(set, snap.Budgets)
	if len(snap.Budgets) == 0 {
		e.log.Warn("no budget periods supplied; solving unbudgeted")
	}

	// Step 4: solve once per strategy in a bounded worker pool. The model and
	// snapshot are read-only; each solve owns its solver instance and output.
	proposals := make([]*entities.Proposal, len(cfg.Strategies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, strategy := range cfg.Strategies {
		g.Go(func() error {
			p, err := e.solveStrategy(gctx, snap, bm, strategy, cfg)
			if err != nil {
				return fmt.Errorf("strategy %s: %w", strategy, err)
			}
			proposals[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, p := range proposals {
		result.Proposals = append(result.Proposals, *p)
	}

	// Step 5: dependency analysis, for reporting only.
	if len(snap.Relations) > 0 {
		analysis, err := e.analyzeDependencies(snap, set, cfg.TopPaths)
		if err != nil {
			e.log.Warn("dependency analysis skipped", "error", err)
		} else {
			result.CriticalPath = analysis
		}
	}

	// Step 6: headline numbers from the best proposal.
	if best := bestProposal(result.Proposals); best != nil {
		result.Status = best.Status
		result.TotalCost = best.TotalCost
		result.ItemsOptimized = len(best.Decisions)
	} else {
		result.Status = entities.StatusInfeasible
	}
	if result.ItemsOptimized == 0 {
		result.Status = entities.StatusInfeasible
	}

	result.ExecutionTimeSeconds = time.Since(start).Seconds()
	e.log.Info("optimization run finished",
		"run_id", result.RunID,
		"status", result.Status.String(),
		"items_optimized", result.ItemsOptimized,
		"total_cost", result.TotalCost.String(),
		"elapsed", time.Since(start))
	return result, nil
}

// solveStrategy solves the shared model under one strategy's objective and
// assembles the proposal
func (e *Engine) solveStrategy(ctx context.Context, snap *Snapshot, bm *builtModel, strategy entities.Strategy, cfg RunConfig) (*entities.Proposal, error) {
	builder, err := objectiveFor(strategy)
	if err != nil {
		return nil, err
	}
	obj := builder.Build(bm, cfg.Factors)

	s, err := solver.New(cfg.Solver)
	if err != nil {
		return nil, err
	}
	sol, err := s.Solve(ctx, bm.model, obj, cfg.TimeLimit)
	if err != nil {
		return nil, err
	}

	// Accepted solutions must satisfy the original constraints regardless of
	// backend; an approximate backend that failed to repair itself is reported
	// as infeasible rather than trusted.
	if violations := solver.Validate(bm.model, sol.Assignment); len(violations) > 0 {
		e.log.Warn("solution rejected after validation",
			"strategy", strategy.String(),
			"solver", sol.SolverName,
			"violations", len(violations))
		sol.Status = entities.StatusInfeasible
		sol.Assignment = make([]bool, bm.model.NumVars)
	}

	p := assembleProposal(snap, bm, strategy, sol)
	splitBunches(snap, p, cfg)
	if err := p.ValidateBunches(); err != nil {
		return nil, fmt.Errorf("bunch partition broken: %w", err)
	}

	e.log.Debug("strategy solved",
		"strategy", strategy.String(),
		"status", p.Status.String(),
		"decisions", len(p.Decisions),
		"total_cost", p.TotalCost.String(),
		"degraded", p.Degraded)
	return p, nil
}

// analyzeDependencies builds the item dependency graph and reports the longest
// lead-time chains. Each item code is weighted with the shortest lead time any
// of its feasible variables offers.
func (e *Engine) analyzeDependencies(snap *Snapshot, set *variableSet, topN int) (*graph.Analysis, error) {
	dg := graph.New()
	for _, code := range itemCodes(snap) {
		dg.AddNode(code)
	}
	for _, rel := range snap.Relations {
		dg.AddEdge(rel.From, rel.To)
	}

	weights := make(map[entities.ItemCode]int)
	for _, v := range set.vars {
		lead := v.Option.LeadTimePeriods
		if current, ok := weights[v.Item.ItemCode]; !ok || lead < current {
			weights[v.Item.ItemCode] = lead
		}
	}
	return graph.AnalyzeCriticalPaths(dg, weights, topN)
}

func itemCodes(snap *Snapshot) []entities.ItemCode {
	seen := make(map[entities.ItemCode]bool)
	var codes []entities.ItemCode
	for _, item := range snap.Items {
		if !seen[item.ItemCode] {
			seen[item.ItemCode] = true
			codes = append(codes, item.ItemCode)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// bestProposal picks the headline proposal: most items fulfilled, then lowest
// total cost, then configuration order
func bestProposal(proposals []entities.Proposal) *entities.Proposal {
	var best *entities.Proposal
	for i := range proposals {
		p := &proposals[i]
		if p.Status == entities.StatusInfeasible {
			continue
		}
		if best == nil ||
			len(p.Decisions) > len(best.Decisions) ||
			(len(p.Decisions) == len(best.Decisions) && p.TotalCost.LessThan(best.TotalCost)) {
			best = p
		}
	}
	return best
}
