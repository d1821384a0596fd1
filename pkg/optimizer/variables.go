package optimizer

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/currency"
	"github.com/planwise/procure/pkg/domain/entities"
)

// DecisionVariable is one boolean choice: buy this option for this item,
// delivered at this time. It exists only while a model is being solved.
type DecisionVariable struct {
	Index        int
	Project      *entities.Project
	Item         *entities.Item
	Option       *entities.ProcurementOption
	DeliveryTime int
	PurchaseTime int
	// EffectiveUnitCost is the unit cost after cash and bundle discounts, in
	// the option's own currency
	EffectiveUnitCost decimal.Decimal
	// NormalizedCost is the full-quantity cost in base currency at the
	// purchase date
	NormalizedCost decimal.Decimal
	BundleApplied  bool
}

// variableSet is the output of the variable factory: one group of variables
// per schedulable item, plus the items that could not be scheduled at all
type variableSet struct {
	vars []*DecisionVariable
	// groups[i] lists variable indices for groupItems[i]
	groups     [][]int
	groupItems []*entities.Item
	// unschedulable lists items with zero feasible (option, time) pairs
	unschedulable []entities.UnschedulableItem
}

// buildVariables enumerates all feasible (item, option, delivery-time) triples.
// A pair is feasible iff purchase time = delivery - lead time >= 1; infeasible
// pairs are dropped silently. Items without options or without any feasible
// pair are collected as unschedulable, which is an expected outcome rather
// than an error. Costs are normalized at the purchase date, because payment
// timing drives cash outflow.
func buildVariables(ctx context.Context, snap *Snapshot, pricing *bundlePricing, norm *currency.Normalizer) (*variableSet, error) {
	set := &variableSet{}

	for _, item := range snap.Items {
		deliveries := usableDeliveryTimes(item.DeliveryWindow)
		options := snap.Options[item.ItemCode]
		project := snap.Projects[item.ProjectID]

		var group []int
		for _, opt := range options {
			effectiveUnit, bundled := pricing.EffectiveUnitCost(opt)
			for _, deliveryTime := range deliveries {
				purchaseTime := deliveryTime - opt.LeadTimePeriods
				if purchaseTime < 1 {
					continue
				}
				total := effectiveUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
				purchaseDate := snap.Today.AddDate(0, 0, purchaseTime)
				normalized, err := norm.ToBase(ctx, total, opt.Currency, purchaseDate)
				if err != nil {
					return nil, fmt.Errorf("normalizing option %s for item %s: %w",
						opt.OptionID, item.Key(), err)
				}
				v := &DecisionVariable{
					Index:             len(set.vars),
					Project:           project,
					Item:              item,
					Option:            opt,
					DeliveryTime:      deliveryTime,
					PurchaseTime:      purchaseTime,
					EffectiveUnitCost: effectiveUnit,
					NormalizedCost:    normalized,
					BundleApplied:     bundled,
				}
				set.vars = append(set.vars, v)
				group = append(group, v.Index)
			}
		}

		if len(group) == 0 {
			set.unschedulable = append(set.unschedulable, entities.UnschedulableItem{
				ProjectID: item.ProjectID,
				ItemCode:  item.ItemCode,
				Reason:    entities.NoFeasibleWindow,
			})
			continue
		}
		set.groups = append(set.groups, group)
		set.groupItems = append(set.groupItems, item)
	}

	return set, nil
}

// usableDeliveryTimes filters a delivery window to offsets >= 1, deduplicated
// and sorted ascending
func usableDeliveryTimes(window []int) []int {
	seen := make(map[int]bool, len(window))
	var out []int
	for _, t := range window {
		if t < 1 || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
