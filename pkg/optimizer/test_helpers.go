package optimizer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

// Test scenario builders shared by the optimizer tests.

// anchorDate is the fixed "today" used across test scenarios
var anchorDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

// scenarioBuilder accumulates snapshot inputs with minimal ceremony
type scenarioBuilder struct {
	snap *Snapshot
}

func newScenario() *scenarioBuilder {
	return &scenarioBuilder{snap: &Snapshot{
		Today:    anchorDate,
		Projects: make(map[entities.ProjectID]*entities.Project),
		Options:  make(map[entities.ItemCode][]*entities.ProcurementOption),
	}}
}

func (b *scenarioBuilder) project(id entities.ProjectID, weight int) *scenarioBuilder {
	b.snap.Projects[id] = &entities.Project{
		ProjectID:      id,
		Name:           string(id),
		PriorityWeight: weight,
	}
	return b
}

func (b *scenarioBuilder) item(project entities.ProjectID, code entities.ItemCode, qty entities.Quantity, window ...int) *scenarioBuilder {
	b.snap.Items = append(b.snap.Items, &entities.Item{
		ItemCode:       code,
		ProjectID:      project,
		Quantity:       qty,
		DeliveryWindow: window,
	})
	return b
}

type optionSpec struct {
	id        entities.OptionID
	item      entities.ItemCode
	supplier  string
	cost      float64
	currency  entities.Currency
	leadTime  int
	threshold entities.Quantity
	discount  float64
	terms     entities.PaymentTerms
}

func (b *scenarioBuilder) option(spec optionSpec) *scenarioBuilder {
	terms := spec.terms
	if terms == nil {
		terms = entities.CashTerms{}
	}
	if spec.currency == "" {
		spec.currency = "USD"
	}
	opt := &entities.ProcurementOption{
		OptionID:              spec.id,
		ItemCode:              spec.item,
		Supplier:              spec.supplier,
		UnitCost:              decimal.NewFromFloat(spec.cost),
		Currency:              spec.currency,
		LeadTimePeriods:       spec.leadTime,
		BundleThreshold:       spec.threshold,
		BundleDiscountPercent: decimal.NewFromFloat(spec.discount),
		PaymentTerms:          terms,
	}
	b.snap.Options[spec.item] = append(b.snap.Options[spec.item], opt)
	return b
}

func (b *scenarioBuilder) budget(offset int, amount float64) *scenarioBuilder {
	b.snap.Budgets = append(b.snap.Budgets, entities.BudgetPeriod{
		Offset:    offset,
		Available: decimal.NewFromFloat(amount),
	})
	return b
}

func (b *scenarioBuilder) rate(dayOffset int, from, to entities.Currency, rate float64) *scenarioBuilder {
	b.snap.Rates = append(b.snap.Rates, entities.ExchangeRate{
		Date: anchorDate.AddDate(0, 0, dayOffset),
		From: from,
		To:   to,
		Rate: decimal.NewFromFloat(rate),
	})
	return b
}

func (b *scenarioBuilder) relation(from, to entities.ItemCode) *scenarioBuilder {
	b.snap.Relations = append(b.snap.Relations, entities.ItemRelation{
		From: from,
		To:   to,
		Kind: entities.Blocks,
	})
	return b
}

func (b *scenarioBuilder) build() *Snapshot {
	b.snap.normalizeOrdering()
	return b.snap
}

// testRunConfig returns a config suitable for small test models
func testRunConfig(strategies ...entities.Strategy) RunConfig {
	cfg := DefaultRunConfig()
	cfg.TimeLimit = 5 * time.Second
	cfg.Workers = 1
	if len(strategies) > 0 {
		cfg.Strategies = strategies
	}
	return cfg
}

// findDecision returns the decision for a project/item pair, or nil
func findDecision(p *entities.Proposal, project entities.ProjectID, code entities.ItemCode) *entities.Decision {
	for i := range p.Decisions {
		if p.Decisions[i].ProjectID == project && p.Decisions[i].ItemCode == code {
			return &p.Decisions[i]
		}
	}
	return nil
}

// proposalFor returns the proposal for a strategy, or nil
func proposalFor(proposals []entities.Proposal, s entities.Strategy) *entities.Proposal {
	for i := range proposals {
		if proposals[i].Strategy == s {
			return &proposals[i]
		}
	}
	return nil
}
