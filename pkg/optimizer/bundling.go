package optimizer

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

// bundlePricing applies company-wide bundle discounts as a price adjustment
// before constraint and objective construction. Demanded quantities for the
// same (item code, supplier) pair aggregate across all projects; where the
// aggregate reaches an option's threshold, that option's effective unit cost
// drops by its discount percent. Each project still decides independently
// which supplier to use.
type bundlePricing struct {
	aggregate map[string]entities.Quantity
}

// computeBundlePricing sums demanded quantities per bundle key across projects
func computeBundlePricing(snap *Snapshot) *bundlePricing {
	p := &bundlePricing{aggregate: make(map[string]entities.Quantity)}
	suppliers := make(map[entities.ItemCode]map[string]bool)
	for _, opts := range snap.Options {
		for _, opt := range opts {
			if suppliers[opt.ItemCode] == nil {
				suppliers[opt.ItemCode] = make(map[string]bool)
			}
			suppliers[opt.ItemCode][opt.Supplier] = true
		}
	}
	for _, item := range snap.Items {
		for supplier := range suppliers[item.ItemCode] {
			p.aggregate[string(item.ItemCode)+"|"+supplier] += item.Quantity
		}
	}
	return p
}

// AggregateDemand returns the total demanded quantity for an option's bundle key
func (p *bundlePricing) AggregateDemand(opt *entities.ProcurementOption) entities.Quantity {
	return p.aggregate[opt.BundleKey()]
}

// EffectiveUnitCost returns the option's unit cost after cash and bundle
// discounts, and whether the bundle discount applied
func (p *bundlePricing) EffectiveUnitCost(opt *entities.ProcurementOption) (decimal.Decimal, bool) {
	cost := opt.BaseEffectiveUnitCost()
	if opt.BundleThreshold <= 0 {
		return cost, false
	}
	if p.AggregateDemand(opt) < opt.BundleThreshold {
		return cost, false
	}
	factor := decimal.NewFromInt(1).Sub(opt.BundleDiscountPercent.Div(decimal.NewFromInt(100)))
	return cost.Mul(factor), true
}
