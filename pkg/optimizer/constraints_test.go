package optimizer

import (
	"testing"

	"github.com/planwise/procure/pkg/domain/entities"
)

func TestBudgetBuckets_HalfOpenPeriods(t *testing.T) {
	buckets := newBudgetBuckets([]entities.BudgetPeriod{
		{Offset: 15}, {Offset: 5}, {Offset: 30},
	})

	cases := []struct {
		purchaseTime int
		want         int
	}{
		{1, -1},  // before the first period: unfunded
		{4, -1},
		{5, 0},
		{14, 0},
		{15, 1},
		{29, 1},
		{30, 2},
		{100, 2}, // last period is open-ended
	}
	for _, tc := range cases {
		if got := buckets.BucketFor(tc.purchaseTime); got != tc.want {
			t.Errorf("BucketFor(%d) = %d, want %d", tc.purchaseTime, got, tc.want)
		}
	}
}

func TestBuildConstraints_OnePerPeriodPlusPreHorizon(t *testing.T) {
	snap := newScenario().
		project("P1", 5).
		item("P1", "PUMP", 1, 8, 20, 40).
		option(optionSpec{id: "OPT-A", item: "PUMP", supplier: "Acme", cost: 100, leadTime: 5}).
		budget(10, 500).
		budget(30, 500).
		build()

	set := buildTestVariables(t, snap, "USD")
	bm := buildConstraints(set, snap.Budgets)

	// Purchases at 3 (pre-horizon), 15 (period 10), 35 (period 30).
	if len(bm.model.Linear) != 3 {
		t.Fatalf("Expected 2 budget constraints + 1 pre-horizon, got %d", len(bm.model.Linear))
	}
	names := map[string]bool{}
	for _, c := range bm.model.Linear {
		names[c.Name] = true
	}
	for _, want := range []string{"budget[offset=10]", "budget[offset=30]", "budget[pre-horizon]"} {
		if !names[want] {
			t.Errorf("Missing constraint %s", want)
		}
	}
	for _, c := range bm.model.Linear {
		if c.Name == "budget[pre-horizon]" && c.Bound != 0 {
			t.Errorf("Pre-horizon bound must be 0, got %f", c.Bound)
		}
	}
	if bm.periodOf[0] != -1 {
		t.Errorf("Expected first variable (purchase 3) pre-horizon, got period %d", bm.periodOf[0])
	}
}

func TestBuildConstraints_NoBudgetsMeansNoLinearConstraints(t *testing.T) {
	snap := newScenario().
		project("P1", 5).
		item("P1", "PUMP", 1, 20).
		option(optionSpec{id: "OPT-A", item: "PUMP", supplier: "Acme", cost: 100, leadTime: 5}).
		build()

	set := buildTestVariables(t, snap, "USD")
	bm := buildConstraints(set, nil)
	if len(bm.model.Linear) != 0 {
		t.Errorf("Expected no linear constraints without budgets, got %d", len(bm.model.Linear))
	}
	if len(bm.model.Groups) != 1 {
		t.Errorf("Expected the at-most-one group to remain, got %d", len(bm.model.Groups))
	}
}
