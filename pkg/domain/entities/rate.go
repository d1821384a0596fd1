package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a directional FX quote effective on and after its
// date, until superseded by a more recent quote for the same pair
type ExchangeRate struct {
	Date time.Time
	From Currency
	To   Currency
	Rate decimal.Decimal
}

// NewExchangeRate creates an exchange rate and validates its fields
func NewExchangeRate(date time.Time, from, to Currency, rate decimal.Decimal) (*ExchangeRate, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("exchange rate currencies must not be empty")
	}
	if from == to {
		return nil, fmt.Errorf("exchange rate %s->%s: currencies must differ", from, to)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("exchange rate %s->%s: rate must be positive, got %s", from, to, rate)
	}
	return &ExchangeRate{Date: date, From: from, To: to, Rate: rate}, nil
}
