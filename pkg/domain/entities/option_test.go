package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProcurementOption_Validation(t *testing.T) {
	cost := decimal.NewFromInt(100)

	opt, err := NewProcurementOption(
		"OPT-1", "PUMP-A", "Acme Industrial", cost, "USD", 5,
		0, decimal.Zero, CashTerms{},
	)
	if err != nil {
		t.Fatalf("Expected valid option creation to succeed: %v", err)
	}
	if opt.LeadTimePeriods != 5 {
		t.Errorf("Expected lead time 5, got %d", opt.LeadTimePeriods)
	}

	testCases := []struct {
		name     string
		mutate   func() (*ProcurementOption, error)
	}{
		{"empty id", func() (*ProcurementOption, error) {
			return NewProcurementOption("", "PUMP-A", "Acme", cost, "USD", 5, 0, decimal.Zero, nil)
		}},
		{"zero cost", func() (*ProcurementOption, error) {
			return NewProcurementOption("OPT-1", "PUMP-A", "Acme", decimal.Zero, "USD", 5, 0, decimal.Zero, nil)
		}},
		{"negative lead time", func() (*ProcurementOption, error) {
			return NewProcurementOption("OPT-1", "PUMP-A", "Acme", cost, "USD", -1, 0, decimal.Zero, nil)
		}},
		{"threshold without discount", func() (*ProcurementOption, error) {
			return NewProcurementOption("OPT-1", "PUMP-A", "Acme", cost, "USD", 5, 10, decimal.Zero, nil)
		}},
		{"bad installment schedule", func() (*ProcurementOption, error) {
			terms := InstallmentTerms{Schedule: []Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromInt(60)},
			}}
			return NewProcurementOption("OPT-1", "PUMP-A", "Acme", cost, "USD", 5, 0, decimal.Zero, terms)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.mutate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestProcurementOption_BaseEffectiveUnitCost(t *testing.T) {
	opt, err := NewProcurementOption(
		"OPT-1", "PUMP-A", "Acme", decimal.NewFromInt(200), "USD", 5,
		0, decimal.Zero, CashTerms{DiscountPercent: decimal.NewFromInt(10)},
	)
	if err != nil {
		t.Fatalf("Option creation failed: %v", err)
	}
	if got := opt.BaseEffectiveUnitCost(); !got.Equal(decimal.NewFromInt(180)) {
		t.Errorf("Expected cash-discounted cost 180, got %s", got)
	}

	inst, err := NewProcurementOption(
		"OPT-2", "PUMP-A", "Acme", decimal.NewFromInt(200), "USD", 5,
		0, decimal.Zero, InstallmentTerms{Schedule: []Installment{
			{OffsetPeriods: 0, Percent: decimal.NewFromInt(100)},
		}},
	)
	if err != nil {
		t.Fatalf("Option creation failed: %v", err)
	}
	if got := inst.BaseEffectiveUnitCost(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected undiscounted cost 200 for installments, got %s", got)
	}
}

func TestProcurementOption_BundleKey(t *testing.T) {
	a, _ := NewProcurementOption("OPT-1", "PUMP-A", "Acme", decimal.NewFromInt(1), "USD", 1, 0, decimal.Zero, nil)
	b, _ := NewProcurementOption("OPT-2", "PUMP-A", "Acme", decimal.NewFromInt(2), "USD", 3, 0, decimal.Zero, nil)
	if a.BundleKey() != b.BundleKey() {
		t.Error("Options for the same item code and supplier must share a bundle key")
	}
	c, _ := NewProcurementOption("OPT-3", "PUMP-A", "Borealis", decimal.NewFromInt(2), "USD", 3, 0, decimal.Zero, nil)
	if a.BundleKey() == c.BundleKey() {
		t.Error("Options from different suppliers must not share a bundle key")
	}
}
