package memory

import (
	"fmt"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/domain/repositories"
)

// BudgetRepository provides in-memory budget period storage
type BudgetRepository struct {
	periods []entities.BudgetPeriod
	offsets map[int]bool
}

// NewBudgetRepository creates a new in-memory budget repository
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{offsets: make(map[int]bool)}
}

// Verify interface compliance
var _ repositories.BudgetRepository = (*BudgetRepository)(nil)

// LoadBudgetPeriods loads budget periods into the repository
func (r *BudgetRepository) LoadBudgetPeriods(periods []entities.BudgetPeriod) error {
	for _, p := range periods {
		if r.offsets[p.Offset] {
			return fmt.Errorf("duplicate budget period at offset %d", p.Offset)
		}
		r.offsets[p.Offset] = true
		r.periods = append(r.periods, p)
	}
	return nil
}

// GetBudgetPeriods returns all budget periods
func (r *BudgetRepository) GetBudgetPeriods() ([]entities.BudgetPeriod, error) {
	return append([]entities.BudgetPeriod(nil), r.periods...), nil
}

// RateRepository provides in-memory exchange-rate storage
type RateRepository struct {
	rates []entities.ExchangeRate
}

// NewRateRepository creates a new in-memory rate repository
func NewRateRepository() *RateRepository {
	return &RateRepository{}
}

// Verify interface compliance
var _ repositories.RateRepository = (*RateRepository)(nil)

// LoadRates loads exchange rates into the repository
func (r *RateRepository) LoadRates(rates []entities.ExchangeRate) error {
	r.rates = append(r.rates, rates...)
	return nil
}

// GetRates returns all exchange rates
func (r *RateRepository) GetRates() ([]entities.ExchangeRate, error) {
	return append([]entities.ExchangeRate(nil), r.rates...), nil
}

// RelationRepository provides in-memory item relation storage
type RelationRepository struct {
	relations []entities.ItemRelation
}

// NewRelationRepository creates a new in-memory relation repository
func NewRelationRepository() *RelationRepository {
	return &RelationRepository{}
}

// Verify interface compliance
var _ repositories.RelationRepository = (*RelationRepository)(nil)

// LoadRelations loads relations into the repository
func (r *RelationRepository) LoadRelations(relations []entities.ItemRelation) error {
	r.relations = append(r.relations, relations...)
	return nil
}

// GetRelations returns all relations
func (r *RelationRepository) GetRelations() ([]entities.ItemRelation, error) {
	return append([]entities.ItemRelation(nil), r.relations...), nil
}
