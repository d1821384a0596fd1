package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

// Loader handles loading procurement data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProjects loads projects from a CSV file
func (l *Loader) LoadProjects(filename string) ([]*entities.Project, error) {
	records, err := readAll(filename, "projects")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"project_id", "name", "priority_weight"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("projects CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var projects []*entities.Project
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("projects CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		project, err := parseProject(record)
		if err != nil {
			return nil, fmt.Errorf("projects CSV row %d: %w", i+2, err)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// LoadItems loads item needs from a CSV file
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readAll(filename, "items")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"project_id", "item_code", "description", "quantity", "delivery_window"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadOptions loads procurement options from a CSV file
func (l *Loader) LoadOptions(filename string) ([]*entities.ProcurementOption, error) {
	records, err := readAll(filename, "options")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"option_id", "item_code", "supplier", "unit_cost", "currency",
		"lead_time_periods", "bundle_threshold", "bundle_discount_percent", "payment_terms"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("options CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var options []*entities.ProcurementOption
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("options CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		option, err := parseOption(record)
		if err != nil {
			return nil, fmt.Errorf("options CSV row %d: %w", i+2, err)
		}
		options = append(options, option)
	}
	return options, nil
}

// LoadBudgetPeriods loads budget periods from a CSV file
func (l *Loader) LoadBudgetPeriods(filename string) ([]entities.BudgetPeriod, error) {
	records, err := readAll(filename, "budgets")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"offset_periods", "available"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("budgets CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var periods []entities.BudgetPeriod
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("budgets CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		period, err := parseBudgetPeriod(record)
		if err != nil {
			return nil, fmt.Errorf("budgets CSV row %d: %w", i+2, err)
		}
		periods = append(periods, *period)
	}
	return periods, nil
}

// LoadRates loads exchange rates from a CSV file
func (l *Loader) LoadRates(filename string) ([]entities.ExchangeRate, error) {
	records, err := readAll(filename, "rates")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"date", "from_currency", "to_currency", "rate"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("rates CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var rates []entities.ExchangeRate
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("rates CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		rate, err := parseRate(record)
		if err != nil {
			return nil, fmt.Errorf("rates CSV row %d: %w", i+2, err)
		}
		rates = append(rates, *rate)
	}
	return rates, nil
}

// LoadRelations loads item dependency relations from a CSV file
func (l *Loader) LoadRelations(filename string) ([]entities.ItemRelation, error) {
	records, err := readAll(filename, "relations")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"from_item", "to_item", "kind"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("relations CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var relations []entities.ItemRelation
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("relations CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		relation, err := parseRelation(record)
		if err != nil {
			return nil, fmt.Errorf("relations CSV row %d: %w", i+2, err)
		}
		relations = append(relations, *relation)
	}
	return relations, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProject(record []string) (*entities.Project, error) {
	weight, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid priority_weight: %s", record[2])
	}
	return entities.NewProject(entities.ProjectID(record[0]), record[1], weight)
}

func parseItem(record []string) (*entities.Item, error) {
	quantity, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}
	window, err := parseWindow(record[4])
	if err != nil {
		return nil, err
	}
	return entities.NewItem(
		entities.ItemCode(record[1]),
		entities.ProjectID(record[0]),
		record[2],
		entities.Quantity(quantity),
		window,
	)
}

// parseWindow parses a semicolon-separated list of day offsets, e.g. "20;35"
func parseWindow(s string) ([]int, error) {
	parts := strings.Split(s, ";")
	window := make([]int, 0, len(parts))
	for _, part := range parts {
		offset, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_window entry: %s", part)
		}
		window = append(window, offset)
	}
	return window, nil
}

func parseOption(record []string) (*entities.ProcurementOption, error) {
	unitCost, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_cost: %s", record[3])
	}
	leadTime, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_periods: %s", record[5])
	}
	threshold := int64(0)
	if record[6] != "" {
		threshold, err = strconv.ParseInt(record[6], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bundle_threshold: %s", record[6])
		}
	}
	discount := decimal.Zero
	if record[7] != "" {
		discount, err = decimal.NewFromString(record[7])
		if err != nil {
			return nil, fmt.Errorf("invalid bundle_discount_percent: %s", record[7])
		}
	}
	terms, err := parsePaymentTerms(record[8])
	if err != nil {
		return nil, err
	}
	return entities.NewProcurementOption(
		entities.OptionID(record[0]),
		entities.ItemCode(record[1]),
		record[2],
		unitCost,
		entities.Currency(record[4]),
		leadTime,
		entities.Quantity(threshold),
		discount,
		terms,
	)
}

// parsePaymentTerms parses the payment_terms column. Supported forms:
//
//	cash               cash on purchase, no discount
//	cash:2.5           cash on purchase with a 2.5% discount
//	installments:0=40;30=60
//	                   tranches as offset=percent pairs, semicolon-separated
func parsePaymentTerms(s string) (entities.PaymentTerms, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "cash":
		return entities.CashTerms{}, nil
	case strings.HasPrefix(s, "cash:"):
		discount, err := decimal.NewFromString(strings.TrimPrefix(s, "cash:"))
		if err != nil {
			return nil, fmt.Errorf("invalid cash discount in payment_terms: %s", s)
		}
		return entities.CashTerms{DiscountPercent: discount}, nil
	case strings.HasPrefix(s, "installments:"):
		var schedule []entities.Installment
		for _, pair := range strings.Split(strings.TrimPrefix(s, "installments:"), ";") {
			offsetStr, percentStr, found := strings.Cut(pair, "=")
			if !found {
				return nil, fmt.Errorf("invalid installment %q in payment_terms (expected offset=percent)", pair)
			}
			offset, err := strconv.Atoi(strings.TrimSpace(offsetStr))
			if err != nil {
				return nil, fmt.Errorf("invalid installment offset: %s", offsetStr)
			}
			percent, err := decimal.NewFromString(strings.TrimSpace(percentStr))
			if err != nil {
				return nil, fmt.Errorf("invalid installment percent: %s", percentStr)
			}
			schedule = append(schedule, entities.Installment{OffsetPeriods: offset, Percent: percent})
		}
		return entities.InstallmentTerms{Schedule: schedule}, nil
	default:
		return nil, fmt.Errorf("invalid payment_terms: %s (expected cash, cash:<pct>, or installments:<offset=pct;...>)", s)
	}
}

func parseBudgetPeriod(record []string) (*entities.BudgetPeriod, error) {
	offset, err := strconv.Atoi(record[0])
	if err != nil {
		return nil, fmt.Errorf("invalid offset_periods: %s", record[0])
	}
	available, err := decimal.NewFromString(record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid available: %s", record[1])
	}
	return entities.NewBudgetPeriod(offset, available)
}

func parseRate(record []string) (*entities.ExchangeRate, error) {
	date, err := time.Parse("2006-01-02", record[0])
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", record[0])
	}
	rate, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid rate: %s", record[3])
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("rate must be positive, got %s", record[3])
	}
	return &entities.ExchangeRate{
		Date: date,
		From: entities.Currency(record[1]),
		To:   entities.Currency(record[2]),
		Rate: rate,
	}, nil
}

func parseRelation(record []string) (*entities.ItemRelation, error) {
	kind, err := entities.ParseRelationKind(record[2])
	if err != nil {
		return nil, err
	}
	return entities.NewItemRelation(
		entities.ItemCode(record[0]),
		entities.ItemCode(record[1]),
		kind,
	)
}
