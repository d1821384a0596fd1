package optimizer

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

func bunchFixture() (*Snapshot, *entities.Proposal) {
	snap := newScenario().
		project("P1", 9).
		project("P2", 4).
		build()
	p := &entities.Proposal{
		Strategy: entities.LowestCost,
		Status:   entities.StatusOptimal,
		Decisions: []entities.Decision{
			{ProjectID: "P1", ItemCode: "PUMP", FinalCost: decimal.NewFromInt(500)},
			{ProjectID: "P1", ItemCode: "VALVE", FinalCost: decimal.NewFromInt(800)},
			{ProjectID: "P2", ItemCode: "GASKET", FinalCost: decimal.NewFromInt(900)},
			{ProjectID: "P2", ItemCode: "SEAL", FinalCost: decimal.NewFromInt(100)},
		},
	}
	return snap, p
}

func TestSplitBunches_ByCount(t *testing.T) {
	snap, p := bunchFixture()
	cfg := DefaultRunConfig()
	cfg.BunchCount = 2

	splitBunches(snap, p, cfg)

	if len(p.Bunches) != 2 {
		t.Fatalf("Expected 2 bunches, got %d", len(p.Bunches))
	}
	first := p.Bunches[0]
	if first.Tag != entities.FirstBunch || len(first.Decisions) != 2 {
		t.Fatalf("Expected FIRST_BUNCH of 2, got %s of %d", first.Tag, len(first.Decisions))
	}
	// P1 outranks P2 on priority; within P1 the costlier decision leads.
	if first.Decisions[0].ItemCode != "VALVE" || first.Decisions[1].ItemCode != "PUMP" {
		t.Errorf("Expected VALVE then PUMP, got %s then %s",
			first.Decisions[0].ItemCode, first.Decisions[1].ItemCode)
	}
	if p.Bunches[1].Tag != entities.RestBunch || len(p.Bunches[1].Decisions) != 2 {
		t.Errorf("Expected REST_BUNCH of 2, got %s of %d", p.Bunches[1].Tag, len(p.Bunches[1].Decisions))
	}
	if err := p.ValidateBunches(); err != nil {
		t.Errorf("Bunches must partition the decisions: %v", err)
	}
}

func TestSplitBunches_ByCostThreshold(t *testing.T) {
	snap, p := bunchFixture()
	cfg := DefaultRunConfig()
	cfg.BunchCount = 1 // ignored once a threshold is set
	cfg.BunchCostThreshold = decimal.NewFromInt(1400)

	splitBunches(snap, p, cfg)

	// Ranked order: VALVE 800, PUMP 500, GASKET 900, SEAL 100. Cumulative
	// 800, 1300, 2200: the threshold cuts after PUMP.
	first := p.Bunches[0]
	if len(first.Decisions) != 2 {
		t.Fatalf("Expected 2 decisions under threshold 1400, got %d", len(first.Decisions))
	}
	if err := p.ValidateBunches(); err != nil {
		t.Errorf("Bunches must partition the decisions: %v", err)
	}
}

func TestSplitBunches_AllFitInFirst(t *testing.T) {
	snap, p := bunchFixture()
	cfg := DefaultRunConfig()
	cfg.BunchCount = 10

	splitBunches(snap, p, cfg)

	if len(p.Bunches) != 1 {
		t.Fatalf("Expected a single FIRST_BUNCH, got %d bunches", len(p.Bunches))
	}
	if len(p.Bunches[0].Decisions) != 4 {
		t.Errorf("Expected all 4 decisions in FIRST_BUNCH, got %d", len(p.Bunches[0].Decisions))
	}
}

func TestSplitBunches_EmptyProposal(t *testing.T) {
	snap, _ := bunchFixture()
	p := &entities.Proposal{Strategy: entities.LowestCost}

	splitBunches(snap, p, DefaultRunConfig())

	if p.Bunches != nil {
		t.Errorf("Expected no bunches for an empty proposal, got %d", len(p.Bunches))
	}
	if err := p.ValidateBunches(); err != nil {
		t.Errorf("An empty proposal partitions trivially: %v", err)
	}
}
