package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// BudgetRepository provides access to time-phased budget periods
type BudgetRepository interface {
	GetBudgetPeriods() ([]entities.BudgetPeriod, error)
	LoadBudgetPeriods(periods []entities.BudgetPeriod) error
}
