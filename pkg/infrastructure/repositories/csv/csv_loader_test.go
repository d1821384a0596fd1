package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadItems(t *testing.T) {
	path := writeFile(t, "items.csv",
		"project_id,item_code,description,quantity,delivery_window\n"+
			"ALPHA,PUMP-01,Centrifugal pump,2,20;35\n"+
			"BETA,VALVE-07,Gate valve,10,15\n")

	items, err := NewLoader().LoadItems(path)
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ItemCode != "PUMP-01" || items[0].ProjectID != "ALPHA" {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	if len(items[0].DeliveryWindow) != 2 || items[0].DeliveryWindow[1] != 35 {
		t.Errorf("Expected window [20 35], got %v", items[0].DeliveryWindow)
	}
}

func TestLoadItems_HeaderMismatch(t *testing.T) {
	path := writeFile(t, "items.csv",
		"item_code,project_id,description,quantity,delivery_window\n"+
			"PUMP-01,ALPHA,Pump,2,20\n")

	if _, err := NewLoader().LoadItems(path); err == nil {
		t.Fatal("Expected header mismatch error")
	}
}

func TestLoadOptions_PaymentTermForms(t *testing.T) {
	path := writeFile(t, "options.csv",
		"option_id,item_code,supplier,unit_cost,currency,lead_time_periods,bundle_threshold,bundle_discount_percent,payment_terms\n"+
			"OPT-1,PUMP-01,Acme,100.50,USD,5,,,cash\n"+
			"OPT-2,PUMP-01,Bolt,90,EUR,15,10,7.5,cash:2.5\n"+
			"OPT-3,VALVE-07,Acme,40,USD,3,,,installments:0=40;30=60\n")

	options, err := NewLoader().LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(options))
	}

	if options[0].PaymentTerms.Kind() != entities.PaymentCash {
		t.Errorf("OPT-1: expected cash terms, got %v", options[0].PaymentTerms.Kind())
	}
	if !options[0].UnitCost.Equal(decimal.NewFromFloat(100.50)) {
		t.Errorf("OPT-1: expected unit cost 100.50, got %s", options[0].UnitCost)
	}

	if options[1].BundleThreshold != 10 {
		t.Errorf("OPT-2: expected bundle threshold 10, got %d", options[1].BundleThreshold)
	}
	cash, ok := options[1].PaymentTerms.(entities.CashTerms)
	if !ok || !cash.DiscountPercent.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("OPT-2: expected 2.5%% cash discount, got %+v", options[1].PaymentTerms)
	}

	inst, ok := options[2].PaymentTerms.(entities.InstallmentTerms)
	if !ok || len(inst.Schedule) != 2 {
		t.Fatalf("OPT-3: expected 2 installments, got %+v", options[2].PaymentTerms)
	}
	if inst.Schedule[1].OffsetPeriods != 30 || !inst.Schedule[1].Percent.Equal(decimal.NewFromInt(60)) {
		t.Errorf("OPT-3: unexpected second tranche: %+v", inst.Schedule[1])
	}
}

func TestLoadOptions_BadInstallmentSumRejected(t *testing.T) {
	path := writeFile(t, "options.csv",
		"option_id,item_code,supplier,unit_cost,currency,lead_time_periods,bundle_threshold,bundle_discount_percent,payment_terms\n"+
			"OPT-1,PUMP-01,Acme,100,USD,5,,,installments:0=40;30=40\n")

	if _, err := NewLoader().LoadOptions(path); err == nil {
		t.Fatal("Expected installment sum validation error")
	}
}

func TestLoadBudgetPeriodsAndRates(t *testing.T) {
	budgets := writeFile(t, "budgets.csv",
		"offset_periods,available\n0,10000\n30,5000.25\n")
	periods, err := NewLoader().LoadBudgetPeriods(budgets)
	if err != nil {
		t.Fatalf("LoadBudgetPeriods failed: %v", err)
	}
	if len(periods) != 2 || periods[1].Offset != 30 {
		t.Fatalf("Unexpected periods: %+v", periods)
	}
	if !periods[1].Available.Equal(decimal.NewFromFloat(5000.25)) {
		t.Errorf("Expected 5000.25 available, got %s", periods[1].Available)
	}

	rates := writeFile(t, "rates.csv",
		"date,from_currency,to_currency,rate\n2026-06-01,EUR,USD,1.10\n")
	parsed, err := NewLoader().LoadRates(rates)
	if err != nil {
		t.Fatalf("LoadRates failed: %v", err)
	}
	if len(parsed) != 1 || parsed[0].From != "EUR" || parsed[0].To != "USD" {
		t.Fatalf("Unexpected rates: %+v", parsed)
	}
}

func TestLoadRelations(t *testing.T) {
	path := writeFile(t, "relations.csv",
		"from_item,to_item,kind\nFRAME,MOTOR,blocks\nMOTOR,PUMP,Feeds\n")

	relations, err := NewLoader().LoadRelations(path)
	if err != nil {
		t.Fatalf("LoadRelations failed: %v", err)
	}
	if len(relations) != 2 {
		t.Fatalf("Expected 2 relations, got %d", len(relations))
	}
	if relations[0].Kind != entities.Blocks || relations[1].Kind != entities.Feeds {
		t.Errorf("Unexpected kinds: %v, %v", relations[0].Kind, relations[1].Kind)
	}
}
