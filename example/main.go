package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/optimizer"
)

func main() {
	ctx := context.Background()
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	snap := buildPlantScenario(today)

	fmt.Println("Running procurement optimization for the plant expansion...")
	fmt.Printf("Anchor date: %s, %d items across %d projects\n\n",
		today.Format("2006-01-02"), len(snap.Items), len(snap.Projects))

	cfg := optimizer.DefaultRunConfig()
	cfg.Strategies = []entities.Strategy{
		entities.LowestCost,
		entities.FastDelivery,
		entities.Balanced,
	}

	engine := optimizer.NewEngine(slog.Default())
	result, err := engine.Run(ctx, snap, cfg)
	if err != nil {
		fmt.Printf("Optimization failed: %v\n", err)
		return
	}

	fmt.Printf("Run %s finished: %s, best total cost %s\n\n",
		result.RunID, result.Status, result.TotalCost.StringFixed(2))

	for _, p := range result.Proposals {
		fmt.Printf("%s (%s): %d decisions, total %s\n",
			p.Strategy, p.Status, len(p.Decisions), p.TotalCost.StringFixed(2))
		for _, d := range p.Decisions {
			bundle := ""
			if d.BundleApplied {
				bundle = " [bundled]"
			}
			fmt.Printf("  %s/%s via %s (%s): buy %s deliver %s, %s%s\n",
				d.ProjectID, d.ItemCode, d.OptionID, d.Supplier,
				d.PurchaseDate.Format("2006-01-02"),
				d.DeliveryDate.Format("2006-01-02"),
				d.FinalCost.StringFixed(2), bundle)
		}
		for _, s := range p.Skipped {
			fmt.Printf("  skipped %s/%s: %s\n", s.ProjectID, s.ItemCode, s.Reason)
		}
		fmt.Println()
	}
}

// buildPlantScenario assembles a small two-project scenario: shared valves
// that can bundle across projects, one item with a fast/cheap supplier
// tradeoff, and a budget that opens in two tranches.
func buildPlantScenario(today time.Time) *optimizer.Snapshot {
	usd := entities.Currency("USD")
	eur := entities.Currency("EUR")

	lineA, _ := entities.NewProject("LINE-A", "Line A expansion", 8)
	lineB, _ := entities.NewProject("LINE-B", "Line B retrofit", 4)

	pump, _ := entities.NewItem("PUMP-200", "LINE-A", "Transfer pump", 1, []int{25, 40})
	valvesA, _ := entities.NewItem("VALVE-50", "LINE-A", "Control valve", 6, []int{30})
	valvesB, _ := entities.NewItem("VALVE-50", "LINE-B", "Control valve", 6, []int{30})

	pumpFast, _ := entities.NewProcurementOption(
		"OPT-PUMP-FAST", "PUMP-200", "RapidFlow", decimal.NewFromInt(5200), usd,
		10, 0, decimal.Zero, entities.CashTerms{})
	pumpCheap, _ := entities.NewProcurementOption(
		"OPT-PUMP-SLOW", "PUMP-200", "EuroPump", decimal.NewFromInt(4400), eur,
		24, 0, decimal.Zero, entities.InstallmentTerms{
			Schedule: []entities.Installment{
				{OffsetPeriods: 0, Percent: decimal.NewFromInt(50)},
				{OffsetPeriods: 30, Percent: decimal.NewFromInt(50)},
			},
		})
	valveBundle, _ := entities.NewProcurementOption(
		"OPT-VALVE", "VALVE-50", "ValveWorks", decimal.NewFromInt(180), usd,
		14, 10, decimal.NewFromInt(8),
		entities.CashTerms{DiscountPercent: decimal.NewFromInt(2)})

	return &optimizer.Snapshot{
		Today: today,
		Items: []*entities.Item{pump, valvesA, valvesB},
		Projects: map[entities.ProjectID]*entities.Project{
			lineA.ProjectID: lineA,
			lineB.ProjectID: lineB,
		},
		Options: map[entities.ItemCode][]*entities.ProcurementOption{
			"PUMP-200": {pumpFast, pumpCheap},
			"VALVE-50": {valveBundle},
		},
		Budgets: []entities.BudgetPeriod{
			{Offset: 0, Available: decimal.NewFromInt(6000)},
			{Offset: 15, Available: decimal.NewFromInt(8000)},
		},
		Rates: []entities.ExchangeRate{
			{Date: today, From: eur, To: usd, Rate: decimal.NewFromFloat(1.09)},
		},
		Relations: []entities.ItemRelation{
			{From: "VALVE-50", To: "PUMP-200", Kind: entities.Feeds},
		},
	}
}
