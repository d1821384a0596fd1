package optimizer

import (
	"fmt"
	"sort"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/solver"
)

// budgetBuckets maps purchase times onto budget periods. Periods are sorted by
// offset and each forms a half-open bucket ending at the next period's offset;
// a purchase belongs to the latest period starting on or before it. Purchases
// before the first period have no funds at all.
type budgetBuckets struct {
	periods []entities.BudgetPeriod
}

func newBudgetBuckets(periods []entities.BudgetPeriod) *budgetBuckets {
	sorted := append([]entities.BudgetPeriod(nil), periods...)
	entities.SortBudgetPeriods(sorted)
	return &budgetBuckets{periods: sorted}
}

// BucketFor returns the index of the period covering purchaseTime, or -1 when
// the purchase precedes the first period
func (b *budgetBuckets) BucketFor(purchaseTime int) int {
	idx := sort.Search(len(b.periods), func(i int) bool {
		return b.periods[i].Offset > purchaseTime
	})
	return idx - 1
}

// builtModel couples the solver model with the var-to-period mapping the
// objectives and the assembler need
type builtModel struct {
	model   *solver.Model
	set     *variableSet
	buckets *budgetBuckets
	// periodOf[v] is the budget bucket of variable v's purchase time, -1 if
	// pre-horizon
	periodOf []int
}

// buildConstraints constructs the shared constraint set: one at-most-one group
// per item and one budget constraint per period over normalized purchase-date
// costs. Budget constraints are skipped entirely when no periods were supplied.
// Variables purchasing before the first period are forced off through a
// zero-bound pre-horizon constraint.
func buildConstraints(set *variableSet, periods []entities.BudgetPeriod) *builtModel {
	buckets := newBudgetBuckets(periods)

	model := &solver.Model{
		NumVars: len(set.vars),
		Groups:  set.groups,
	}

	periodOf := make([]int, len(set.vars))
	periodTerms := make([][]solver.Term, len(buckets.periods))
	var preHorizon []solver.Term

	for _, v := range set.vars {
		idx := buckets.BucketFor(v.PurchaseTime)
		periodOf[v.Index] = idx
		if len(buckets.periods) == 0 {
			continue
		}
		if idx < 0 {
			preHorizon = append(preHorizon, solver.Term{Var: v.Index, Coef: 1})
			continue
		}
		periodTerms[idx] = append(periodTerms[idx], solver.Term{
			Var:  v.Index,
			Coef: v.NormalizedCost.InexactFloat64(),
		})
	}

	for i, terms := range periodTerms {
		if len(terms) == 0 {
			continue
		}
		model.Linear = append(model.Linear, solver.Constraint{
			Name:  fmt.Sprintf("budget[offset=%d]", buckets.periods[i].Offset),
			Terms: terms,
			Bound: buckets.periods[i].Available.InexactFloat64(),
		})
	}
	if len(preHorizon) > 0 {
		model.Linear = append(model.Linear, solver.Constraint{
			Name:  "budget[pre-horizon]",
			Terms: preHorizon,
			Bound: 0,
		})
	}

	return &builtModel{
		model:    model,
		set:      set,
		buckets:  buckets,
		periodOf: periodOf,
	}
}
