// Package currency provides date-aware conversion of monetary amounts into the
// run's base currency. Every monetary comparison inside the optimizer happens
// in base currency; a missing rate is a hard error, never approximated.
package currency

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

// MissingRateError reports an FX pair with no rate on or before the requested
// date. Callers must treat it as fatal for the run; there is no default rate.
type MissingRateError struct {
	From entities.Currency
	To   entities.Currency
	Date time.Time
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate %s->%s on or before %s",
		e.From, e.To, e.Date.Format("2006-01-02"))
}

// RateTable holds directional FX quotes indexed by pair and sorted by date
type RateTable struct {
	rates map[pairKey][]entities.ExchangeRate
}

type pairKey struct {
	from entities.Currency
	to   entities.Currency
}

// NewRateTable builds a table from a list of quotes
func NewRateTable(rates []entities.ExchangeRate) *RateTable {
	t := &RateTable{rates: make(map[pairKey][]entities.ExchangeRate)}
	for _, r := range rates {
		key := pairKey{from: r.From, to: r.To}
		t.rates[key] = append(t.rates[key], r)
	}
	for key := range t.rates {
		quotes := t.rates[key]
		sort.Slice(quotes, func(i, j int) bool {
			return quotes[i].Date.Before(quotes[j].Date)
		})
	}
	return t
}

// Lookup returns the most recent rate for the pair on or before asOf
func (t *RateTable) Lookup(from, to entities.Currency, asOf time.Time) (decimal.Decimal, error) {
	quotes := t.rates[pairKey{from: from, to: to}]
	// First quote strictly after asOf; the one before it is the answer.
	idx := sort.Search(len(quotes), func(i int) bool {
		return quotes[i].Date.After(asOf)
	})
	if idx == 0 {
		return decimal.Zero, &MissingRateError{From: from, To: to, Date: asOf}
	}
	return quotes[idx-1].Rate, nil
}

// Normalizer converts amounts into a single base currency using a RateProvider
type Normalizer struct {
	base     entities.Currency
	provider RateProvider
}

// NewNormalizer creates a normalizer for the given base currency
func NewNormalizer(base entities.Currency, provider RateProvider) *Normalizer {
	return &Normalizer{base: base, provider: provider}
}

// Base returns the base currency all amounts are normalized to
func (n *Normalizer) Base() entities.Currency {
	return n.base
}

// ToBase converts amount from the given currency into the base currency using
// the rate valid on or before asOf. Identity when currency equals base.
func (n *Normalizer) ToBase(ctx context.Context, amount decimal.Decimal, from entities.Currency, asOf time.Time) (decimal.Decimal, error) {
	if from == n.base {
		return amount, nil
	}
	rate, err := n.provider.Rate(ctx, from, n.base, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}
