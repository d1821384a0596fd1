package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OptionID represents a unique procurement option identifier
type OptionID string

// Currency is an ISO-4217 style currency code
type Currency string

// ProcurementOption represents one way to buy an item: a supplier quote with
// cost, currency, lead time, and optional bundling and payment arrangements.
// A BundleThreshold of zero means no bundle pricing is offered.
type ProcurementOption struct {
	OptionID              OptionID
	ItemCode              ItemCode
	Supplier              string
	UnitCost              decimal.Decimal
	Currency              Currency
	LeadTimePeriods       int
	BundleThreshold       Quantity
	BundleDiscountPercent decimal.Decimal
	PaymentTerms          PaymentTerms
}

// NewProcurementOption creates an option and validates cost, lead time,
// bundling fields, and payment terms
func NewProcurementOption(
	id OptionID,
	itemCode ItemCode,
	supplier string,
	unitCost decimal.Decimal,
	currency Currency,
	leadTimePeriods int,
	bundleThreshold Quantity,
	bundleDiscountPercent decimal.Decimal,
	terms PaymentTerms,
) (*ProcurementOption, error) {
	if id == "" {
		return nil, fmt.Errorf("option id must not be empty")
	}
	if itemCode == "" {
		return nil, fmt.Errorf("option %s: item code must not be empty", id)
	}
	if supplier == "" {
		return nil, fmt.Errorf("option %s: supplier must not be empty", id)
	}
	if !unitCost.IsPositive() {
		return nil, fmt.Errorf("option %s: unit cost must be positive, got %s", id, unitCost)
	}
	if currency == "" {
		return nil, fmt.Errorf("option %s: currency must not be empty", id)
	}
	if leadTimePeriods < 0 {
		return nil, fmt.Errorf("option %s: lead time must not be negative, got %d", id, leadTimePeriods)
	}
	if bundleThreshold < 0 {
		return nil, fmt.Errorf("option %s: bundle threshold must not be negative, got %d", id, bundleThreshold)
	}
	if bundleThreshold > 0 {
		if !bundleDiscountPercent.IsPositive() || bundleDiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("option %s: bundle discount percent must be in (0,100), got %s",
				id, bundleDiscountPercent)
		}
	}
	if terms == nil {
		terms = CashTerms{}
	}
	if err := terms.Validate(); err != nil {
		return nil, fmt.Errorf("option %s: invalid payment terms: %w", id, err)
	}
	return &ProcurementOption{
		OptionID:              id,
		ItemCode:              itemCode,
		Supplier:              supplier,
		UnitCost:              unitCost,
		Currency:              currency,
		LeadTimePeriods:       leadTimePeriods,
		BundleThreshold:       bundleThreshold,
		BundleDiscountPercent: bundleDiscountPercent,
		PaymentTerms:          terms,
	}, nil
}

// BundleKey identifies an option for company-wide bundling. Quantities from
// different projects aggregate when they buy the same item code from the same
// supplier.
func (o *ProcurementOption) BundleKey() string {
	return string(o.ItemCode) + "|" + o.Supplier
}

// BaseEffectiveUnitCost returns the unit cost after the cash payment discount,
// before any bundling adjustment
func (o *ProcurementOption) BaseEffectiveUnitCost() decimal.Decimal {
	if cash, ok := o.PaymentTerms.(CashTerms); ok && cash.DiscountPercent.IsPositive() {
		factor := decimal.NewFromInt(1).Sub(cash.DiscountPercent.Div(decimal.NewFromInt(100)))
		return o.UnitCost.Mul(factor)
	}
	return o.UnitCost
}
