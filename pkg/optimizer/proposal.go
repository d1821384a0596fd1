package optimizer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/solver"
)

// assembleProposal turns a solver solution into a proposal: one decision per
// selected variable, with dates, discounted costs, and the payment summary.
//
// Bundle discounts were priced against aggregate demanded quantity before the
// solve; here the aggregate actually selected per (item code, supplier) is
// re-checked. Options whose selected aggregate misses the threshold are
// repriced at the undiscounted unit cost, and if the repriced outflow overruns
// a budget period the proposal is marked degraded rather than presented as
// fully valid.
func assembleProposal(snap *Snapshot, bm *builtModel, strategy entities.Strategy, sol *solver.Solution) *entities.Proposal {
	p := &entities.Proposal{
		Strategy:     strategy,
		Status:       sol.Status,
		SolverName:   sol.SolverName,
		Degraded:     sol.Repaired,
		TotalCost:    decimal.Zero,
		WeightedCost: decimal.Zero,
	}

	var selected []*DecisionVariable
	for _, v := range bm.set.vars {
		if sol.Assignment[v.Index] {
			selected = append(selected, v)
		}
	}

	// Selected aggregate per bundle key, for the post-solve threshold check.
	selectedAgg := make(map[string]entities.Quantity)
	for _, v := range selected {
		selectedAgg[v.Option.BundleKey()] += v.Item.Quantity
	}

	for _, v := range selected {
		unitCost := v.EffectiveUnitCost
		normalized := v.NormalizedCost
		bundled := v.BundleApplied
		if bundled && selectedAgg[v.Option.BundleKey()] < v.Option.BundleThreshold {
			// Discount assumed pre-solve did not materialize; revert to the
			// cash-adjusted price. Normalization is linear in the amount, so
			// the normalized cost scales by the same ratio.
			full := v.Option.BaseEffectiveUnitCost()
			normalized = normalized.Mul(full).Div(unitCost)
			unitCost = full
			bundled = false
		}

		p.Decisions = append(p.Decisions, entities.Decision{
			ProjectID:      v.Item.ProjectID,
			ItemCode:       v.Item.ItemCode,
			OptionID:       v.Option.OptionID,
			Supplier:       v.Option.Supplier,
			Quantity:       v.Item.Quantity,
			PurchaseOffset: v.PurchaseTime,
			DeliveryOffset: v.DeliveryTime,
			PurchaseDate:   snap.Today.AddDate(0, 0, v.PurchaseTime),
			DeliveryDate:   snap.Today.AddDate(0, 0, v.DeliveryTime),
			UnitCost:       unitCost,
			FinalCost:      normalized,
			BundleApplied:  bundled,
			PaymentSummary: paymentSummary(v.Option),
		})

		p.TotalCost = p.TotalCost.Add(normalized)
		weight := decimal.NewFromInt(int64(v.Project.PriorityWeight))
		p.WeightedCost = p.WeightedCost.Add(normalized.DivRound(weight, 8))
	}

	sort.Slice(p.Decisions, func(i, j int) bool {
		if p.Decisions[i].ProjectID != p.Decisions[j].ProjectID {
			return p.Decisions[i].ProjectID < p.Decisions[j].ProjectID
		}
		return p.Decisions[i].ItemCode < p.Decisions[j].ItemCode
	})

	// Items with feasible variables that this strategy still left unfulfilled
	// were squeezed out by budget, distinct from globally unschedulable items.
	for g, group := range bm.set.groups {
		chosen := false
		for _, idx := range group {
			if sol.Assignment[idx] {
				chosen = true
				break
			}
		}
		if !chosen {
			item := bm.set.groupItems[g]
			p.Skipped = append(p.Skipped, entities.UnschedulableItem{
				ProjectID: item.ProjectID,
				ItemCode:  item.ItemCode,
				Reason:    entities.BudgetRestricted,
			})
		}
	}
	p.Skipped = append(p.Skipped, bm.set.unschedulable...)

	p.CashflowSpread = cashflowSpread(bm, p.Decisions)

	if overrunsBudget(bm, p.Decisions) {
		p.Degraded = true
		if p.Status == entities.StatusOptimal {
			p.Status = entities.StatusFeasible
		}
	}

	return p
}

func paymentSummary(opt *entities.ProcurementOption) string {
	terms := opt.PaymentTerms
	if terms == nil {
		terms = entities.CashTerms{}
	}
	return terms.Summary()
}

// cashflowSpread computes max-minus-min of per-period purchase outflow across
// funded periods
func cashflowSpread(bm *builtModel, decisions []entities.Decision) decimal.Decimal {
	if len(bm.buckets.periods) == 0 || len(decisions) == 0 {
		return decimal.Zero
	}
	outflow := make([]decimal.Decimal, len(bm.buckets.periods))
	for i := range outflow {
		outflow[i] = decimal.Zero
	}
	for _, d := range decisions {
		if idx := bm.buckets.BucketFor(d.PurchaseOffset); idx >= 0 {
			outflow[idx] = outflow[idx].Add(d.FinalCost)
		}
	}
	minOut, maxOut := outflow[0], outflow[0]
	for _, o := range outflow[1:] {
		if o.LessThan(minOut) {
			minOut = o
		}
		if o.GreaterThan(maxOut) {
			maxOut = o
		}
	}
	return maxOut.Sub(minOut)
}

// overrunsBudget re-checks the final decision costs against the budget
// periods. Needed after bundle repricing, which can raise costs past what the
// solver validated.
func overrunsBudget(bm *builtModel, decisions []entities.Decision) bool {
	if len(bm.buckets.periods) == 0 {
		return false
	}
	outflow := make([]decimal.Decimal, len(bm.buckets.periods))
	for i := range outflow {
		outflow[i] = decimal.Zero
	}
	for _, d := range decisions {
		idx := bm.buckets.BucketFor(d.PurchaseOffset)
		if idx < 0 {
			return true
		}
		outflow[idx] = outflow[idx].Add(d.FinalCost)
	}
	for i, period := range bm.buckets.periods {
		if outflow[i].GreaterThan(period.Available) {
			return true
		}
	}
	return false
}
