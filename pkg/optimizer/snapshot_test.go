package optimizer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

func validSnapshot() *Snapshot {
	return newScenario().
		project("P1", 5).
		item("P1", "PUMP", 1, 20).
		option(optionSpec{id: "OPT-A", item: "PUMP", supplier: "Acme", cost: 100, leadTime: 5}).
		budget(0, 1000).
		build()
}

func TestSnapshotValidate(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("Valid snapshot rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Snapshot)
		wantErr string
	}{
		{"no items", func(s *Snapshot) { s.Items = nil }, "no items"},
		{"zero quantity", func(s *Snapshot) { s.Items[0].Quantity = 0 }, "quantity"},
		{"empty window", func(s *Snapshot) { s.Items[0].DeliveryWindow = nil }, "delivery window"},
		{"unknown project", func(s *Snapshot) { s.Items[0].ProjectID = "P9" }, "unknown project"},
		{"weight out of range", func(s *Snapshot) { s.Projects["P1"].PriorityWeight = 11 }, "priority weight"},
		{"non-positive cost", func(s *Snapshot) {
			s.Options["PUMP"][0].UnitCost = decimal.Zero
		}, "unit cost"},
		{"bad cash discount", func(s *Snapshot) {
			s.Options["PUMP"][0].PaymentTerms = entities.CashTerms{
				DiscountPercent: decimal.NewFromInt(100),
			}
		}, "discount"},
		{"negative budget", func(s *Snapshot) {
			s.Budgets[0].Available = decimal.NewFromInt(-1)
		}, "negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := validSnapshot()
			tc.mutate(snap)
			err := snap.Validate()
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSnapshotValidate_BadInstallmentSchedule(t *testing.T) {
	snap := validSnapshot()
	snap.Options["PUMP"][0].PaymentTerms = entities.InstallmentTerms{
		Schedule: []entities.Installment{
			{OffsetPeriods: 0, Percent: decimal.NewFromInt(40)},
			{OffsetPeriods: 30, Percent: decimal.NewFromInt(40)},
		},
	}
	if err := snap.Validate(); err == nil {
		t.Fatal("A schedule summing to 80% must be rejected")
	}
}

func TestNormalizeOrdering(t *testing.T) {
	snap := &Snapshot{
		Today: anchorDate,
		Items: []*entities.Item{
			{ItemCode: "Z", ProjectID: "P2"},
			{ItemCode: "A", ProjectID: "P2"},
			{ItemCode: "M", ProjectID: "P1"},
		},
		Projects: map[entities.ProjectID]*entities.Project{},
		Options: map[entities.ItemCode][]*entities.ProcurementOption{
			"M": {{OptionID: "O-2"}, {OptionID: "O-1"}},
		},
		Budgets: []entities.BudgetPeriod{{Offset: 20}, {Offset: 5}},
	}
	snap.normalizeOrdering()

	if snap.Items[0].ItemCode != "M" || snap.Items[1].ItemCode != "A" || snap.Items[2].ItemCode != "Z" {
		t.Errorf("Items not ordered by project then code: %v, %v, %v",
			snap.Items[0].ItemCode, snap.Items[1].ItemCode, snap.Items[2].ItemCode)
	}
	if snap.Options["M"][0].OptionID != "O-1" {
		t.Errorf("Options not ordered by ID: %s first", snap.Options["M"][0].OptionID)
	}
	if snap.Budgets[0].Offset != 5 {
		t.Errorf("Budgets not ordered by offset: %d first", snap.Budgets[0].Offset)
	}
}
