package optimizer

import (
	"fmt"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/solver"
)

// objectiveBuilder produces the linear weighting for one strategy. All
// strategies share the same variables and constraints; only coefficients and
// skip penalties differ.
type objectiveBuilder interface {
	Strategy() entities.Strategy
	Build(bm *builtModel, factors FactorWeights) solver.Objective
}

// objectiveRegistry resolves strategies to builders. Strategies are a closed
// enumeration; lookups go through objectiveFor, never string comparisons.
var objectiveRegistry = map[entities.Strategy]objectiveBuilder{
	entities.LowestCost:       lowestCostObjective{},
	entities.PriorityWeighted: priorityWeightedObjective{},
	entities.FastDelivery:     fastDeliveryObjective{},
	entities.SmoothCashflow:   smoothCashflowObjective{},
	entities.Balanced:         balancedObjective{},
}

// objectiveFor returns the builder registered for a strategy
func objectiveFor(s entities.Strategy) (objectiveBuilder, error) {
	b, ok := objectiveRegistry[s]
	if !ok {
		return nil, fmt.Errorf("no objective registered for strategy %s", s)
	}
	return b, nil
}

// penaltyUnit returns a skip penalty larger than any single item's worst-case
// contribution summed over all items. With this penalty, fulfilling one more
// item always beats any cost saving, so a minimizer only skips items that
// cannot be scheduled within the constraints.
func penaltyUnit(bm *builtModel, coefs []float64) float64 {
	total := 0.0
	for _, group := range bm.set.groups {
		maxC := 0.0
		for _, v := range group {
			if coefs[v] > maxC {
				maxC = coefs[v]
			}
		}
		total += maxC
	}
	return total + 1
}

func uniformPenalties(bm *builtModel, unit float64) []float64 {
	penalties := make([]float64, len(bm.set.groups))
	for i := range penalties {
		penalties[i] = unit
	}
	return penalties
}

// lowestCostObjective minimizes total normalized final cost
type lowestCostObjective struct{}

func (lowestCostObjective) Strategy() entities.Strategy { return entities.LowestCost }

func (lowestCostObjective) Build(bm *builtModel, _ FactorWeights) solver.Objective {
	coefs := make([]float64, len(bm.set.vars))
	for _, v := range bm.set.vars {
		coefs[v.Index] = v.NormalizedCost.InexactFloat64()
	}
	return solver.Objective{
		VarCost:     coefs,
		SkipPenalty: uniformPenalties(bm, penaltyUnit(bm, coefs)),
	}
}

// priorityWeightedObjective divides cost by project priority weight, making
// high-priority projects look cheaper to fulfill, and scales skip penalties by
// the same weight so they are also costlier to abandon
type priorityWeightedObjective struct{}

func (priorityWeightedObjective) Strategy() entities.Strategy { return entities.PriorityWeighted }

func (priorityWeightedObjective) Build(bm *builtModel, _ FactorWeights) solver.Objective {
	coefs := make([]float64, len(bm.set.vars))
	for _, v := range bm.set.vars {
		coefs[v.Index] = v.NormalizedCost.InexactFloat64() / float64(v.Project.PriorityWeight)
	}
	unit := penaltyUnit(bm, coefs)
	penalties := make([]float64, len(bm.set.groups))
	for g := range bm.set.groups {
		weight := bm.set.vars[bm.set.groups[g][0]].Project.PriorityWeight
		penalties[g] = unit * float64(weight)
	}
	return solver.Objective{VarCost: coefs, SkipPenalty: penalties}
}

// fastDeliveryObjective minimizes total delivery time
type fastDeliveryObjective struct{}

func (fastDeliveryObjective) Strategy() entities.Strategy { return entities.FastDelivery }

func (fastDeliveryObjective) Build(bm *builtModel, _ FactorWeights) solver.Objective {
	coefs := make([]float64, len(bm.set.vars))
	for _, v := range bm.set.vars {
		coefs[v.Index] = float64(v.DeliveryTime)
	}
	return solver.Objective{
		VarCost:     coefs,
		SkipPenalty: uniformPenalties(bm, penaltyUnit(bm, coefs)),
	}
}

// smoothCashflowObjective penalizes purchases landing in already crowded
// budget periods. True outflow variance is not a linear function of boolean
// variables, so this uses a static linearization: each variable's cost is
// scaled by its period's load factor, the period's potential outflow relative
// to the mean across funded periods. The exact max-minus-min spread is
// reported per proposal for inspection.
type smoothCashflowObjective struct{}

func (smoothCashflowObjective) Strategy() entities.Strategy { return entities.SmoothCashflow }

func (smoothCashflowObjective) Build(bm *builtModel, _ FactorWeights) solver.Objective {
	numPeriods := len(bm.buckets.periods)
	load := make([]float64, numPeriods)
	for _, v := range bm.set.vars {
		if p := bm.periodOf[v.Index]; p >= 0 {
			load[p] += v.NormalizedCost.InexactFloat64()
		}
	}
	mean := 0.0
	active := 0
	for _, l := range load {
		if l > 0 {
			mean += l
			active++
		}
	}
	if active > 0 {
		mean /= float64(active)
	}

	coefs := make([]float64, len(bm.set.vars))
	for _, v := range bm.set.vars {
		cost := v.NormalizedCost.InexactFloat64()
		factor := 1.0
		if p := bm.periodOf[v.Index]; p >= 0 && mean > 0 {
			factor = load[p] / mean
		}
		coefs[v.Index] = cost * factor
	}
	return solver.Objective{
		VarCost:     coefs,
		SkipPenalty: uniformPenalties(bm, penaltyUnit(bm, coefs)),
	}
}

// balancedObjective combines the four base strategies, each normalized to a
// comparable scale, weighted by the run's decision-factor weights
type balancedObjective struct{}

func (balancedObjective) Strategy() entities.Strategy { return entities.Balanced }

func (balancedObjective) Build(bm *builtModel, factors FactorWeights) solver.Objective {
	parts := []struct {
		builder objectiveBuilder
		weight  int
	}{
		{lowestCostObjective{}, factors.Cost},
		{priorityWeightedObjective{}, factors.Priority},
		{fastDeliveryObjective{}, factors.Delivery},
		{smoothCashflowObjective{}, factors.Cashflow},
	}
	totalWeight := 0
	for _, p := range parts {
		totalWeight += p.weight
	}

	coefs := make([]float64, len(bm.set.vars))
	for _, p := range parts {
		sub := p.builder.Build(bm, factors)
		scale := maxAbs(sub.VarCost)
		if scale == 0 {
			continue
		}
		share := float64(p.weight) / float64(totalWeight)
		for i, c := range sub.VarCost {
			coefs[i] += share * c / scale
		}
	}
	return solver.Objective{
		VarCost:     coefs,
		SkipPenalty: uniformPenalties(bm, penaltyUnit(bm, coefs)),
	}
}

func maxAbs(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		if x < 0 {
			x = -x
		}
		if x > m {
			m = x
		}
	}
	return m
}
