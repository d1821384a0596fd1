package entities

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInstallmentTerms_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		schedule    []Installment
		expectError string
	}{
		{
			"valid even split",
			[]Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromInt(50)},
				{OffsetPeriods: 2, Percent: decimal.NewFromInt(50)},
			},
			"",
		},
		{
			"valid within tolerance",
			[]Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromFloat(33.33)},
				{OffsetPeriods: 1, Percent: decimal.NewFromFloat(33.33)},
				{OffsetPeriods: 2, Percent: decimal.NewFromFloat(33.34)},
			},
			"",
		},
		{
			"empty schedule",
			nil,
			"schedule must not be empty",
		},
		{
			"sum below 100",
			[]Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromInt(40)},
				{OffsetPeriods: 1, Percent: decimal.NewFromInt(40)},
			},
			"must sum to 100",
		},
		{
			"sum just outside tolerance",
			[]Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromInt(50)},
				{OffsetPeriods: 1, Percent: decimal.NewFromFloat(50.02)},
			},
			"must sum to 100",
		},
		{
			"negative offset",
			[]Installment{
				{OffsetPeriods: -1, Percent: decimal.NewFromInt(100)},
			},
			"offset must not be negative",
		},
		{
			"zero percent tranche",
			[]Installment{
				{OffsetPeriods: 0, Percent: decimal.Zero},
				{OffsetPeriods: 1, Percent: decimal.NewFromInt(100)},
			},
			"percent must be in (0,100]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := InstallmentTerms{Schedule: tc.schedule}.Validate()
			if tc.expectError == "" {
				if err != nil {
					t.Fatalf("Expected valid schedule, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.expectError)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestCashTerms_Validation(t *testing.T) {
	if err := (CashTerms{DiscountPercent: decimal.NewFromInt(5)}).Validate(); err != nil {
		t.Fatalf("Expected valid cash terms, got error: %v", err)
	}
	if err := (CashTerms{DiscountPercent: decimal.NewFromInt(-1)}).Validate(); err == nil {
		t.Error("Expected error for negative discount")
	}
	if err := (CashTerms{DiscountPercent: decimal.NewFromInt(100)}).Validate(); err == nil {
		t.Error("Expected error for 100 percent discount")
	}
}

func TestPaymentTerms_Summary(t *testing.T) {
	cash := CashTerms{DiscountPercent: decimal.NewFromInt(3)}
	if got := cash.Summary(); got != "cash on purchase, 3% discount" {
		t.Errorf("Unexpected cash summary: %q", got)
	}

	plain := CashTerms{}
	if got := plain.Summary(); got != "cash on purchase" {
		t.Errorf("Unexpected plain cash summary: %q", got)
	}

	inst := InstallmentTerms{Schedule: []Installment{
		{OffsetPeriods: 0, Percent: decimal.NewFromInt(30)},
		{OffsetPeriods: 2, Percent: decimal.NewFromInt(70)},
	}}
	want := "2 installments: 30% +0p, 70% +2p"
	if got := inst.Summary(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
