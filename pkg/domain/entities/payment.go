package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentKind discriminates the payment terms variants
type PaymentKind int

const (
	PaymentCash PaymentKind = iota
	PaymentInstallments
)

// String method for PaymentKind enum
func (k PaymentKind) String() string {
	switch k {
	case PaymentCash:
		return "Cash"
	case PaymentInstallments:
		return "Installments"
	default:
		return "Unknown"
	}
}

// installmentSumTolerance is the allowed deviation of an installment schedule
// from 100 percent.
var installmentSumTolerance = decimal.NewFromFloat(0.01)

// PaymentTerms is the tagged union of supported payment arrangements. All
// variants are validated at ingestion; the solver never sees malformed terms.
type PaymentTerms interface {
	Kind() PaymentKind
	// Summary renders a human-readable description for proposal output
	Summary() string
	Validate() error
}

// CashTerms represents up-front payment, optionally with an early-payment discount
type CashTerms struct {
	DiscountPercent decimal.Decimal
}

var _ PaymentTerms = CashTerms{}

// Kind returns PaymentCash
func (c CashTerms) Kind() PaymentKind { return PaymentCash }

// Summary renders the cash terms description
func (c CashTerms) Summary() string {
	if c.DiscountPercent.IsZero() {
		return "cash on purchase"
	}
	return fmt.Sprintf("cash on purchase, %s%% discount", c.DiscountPercent.String())
}

// Validate checks the discount is in [0,100)
func (c CashTerms) Validate() error {
	if c.DiscountPercent.IsNegative() || c.DiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("cash discount percent must be in [0,100), got %s", c.DiscountPercent)
	}
	return nil
}

// Installment is a single tranche of an installment schedule
type Installment struct {
	OffsetPeriods int
	Percent       decimal.Decimal
}

// InstallmentTerms represents payment split over a schedule of tranches whose
// percentages sum to 100 within tolerance
type InstallmentTerms struct {
	Schedule []Installment
}

var _ PaymentTerms = InstallmentTerms{}

// Kind returns PaymentInstallments
func (t InstallmentTerms) Kind() PaymentKind { return PaymentInstallments }

// Summary renders the schedule, e.g. "3 installments: 30% +0p, 30% +2p, 40% +4p"
func (t InstallmentTerms) Summary() string {
	parts := make([]string, 0, len(t.Schedule))
	for _, inst := range t.Schedule {
		parts = append(parts, fmt.Sprintf("%s%% +%dp", inst.Percent.String(), inst.OffsetPeriods))
	}
	return fmt.Sprintf("%d installments: %s", len(t.Schedule), strings.Join(parts, ", "))
}

// Validate checks offsets, per-tranche percentages, and the 100 +/- 0.01 sum rule
func (t InstallmentTerms) Validate() error {
	if len(t.Schedule) == 0 {
		return fmt.Errorf("installment schedule must not be empty")
	}
	sum := decimal.Zero
	for i, inst := range t.Schedule {
		if inst.OffsetPeriods < 0 {
			return fmt.Errorf("installment %d: offset must not be negative, got %d", i, inst.OffsetPeriods)
		}
		if !inst.Percent.IsPositive() || inst.Percent.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("installment %d: percent must be in (0,100], got %s", i, inst.Percent)
		}
		sum = sum.Add(inst.Percent)
	}
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(installmentSumTolerance) {
		return fmt.Errorf("installment percentages must sum to 100 (+/-0.01), got %s", sum)
	}
	return nil
}
