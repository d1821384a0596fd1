package entities

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents funds that become available at a given day offset
// from the run anchor date, expressed in base currency. Each period is a
// half-open bucket from its offset up to the next period's offset; funds do
// not roll over between periods.
type BudgetPeriod struct {
	Offset    int
	Available decimal.Decimal
}

// NewBudgetPeriod creates a budget period and validates its fields
func NewBudgetPeriod(offset int, available decimal.Decimal) (*BudgetPeriod, error) {
	if offset < 0 {
		return nil, fmt.Errorf("budget period offset must not be negative, got %d", offset)
	}
	if available.IsNegative() {
		return nil, fmt.Errorf("budget period at offset %d: available amount must not be negative, got %s",
			offset, available)
	}
	return &BudgetPeriod{Offset: offset, Available: available}, nil
}

// SortBudgetPeriods orders periods by offset ascending. The constraint builder
// relies on this ordering to form period buckets.
func SortBudgetPeriods(periods []BudgetPeriod) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Offset < periods[j].Offset
	})
}
