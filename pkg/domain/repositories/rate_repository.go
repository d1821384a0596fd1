package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// RateRepository provides access to the exchange-rate table
type RateRepository interface {
	GetRates() ([]entities.ExchangeRate, error)
	LoadRates(rates []entities.ExchangeRate) error
}
