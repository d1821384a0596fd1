package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/procure/pkg/domain/entities"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func testTable() *RateTable {
	return NewRateTable([]entities.ExchangeRate{
		{Date: day(1), From: "USD", To: "EUR", Rate: decimal.NewFromFloat(0.90)},
		{Date: day(10), From: "USD", To: "EUR", Rate: decimal.NewFromFloat(0.92)},
		{Date: day(20), From: "USD", To: "EUR", Rate: decimal.NewFromFloat(0.95)},
		{Date: day(5), From: "GBP", To: "EUR", Rate: decimal.NewFromFloat(1.15)},
	})
}

func TestRateTable_Lookup_MostRecentOnOrBefore(t *testing.T) {
	table := testTable()

	rate, err := table.Lookup("USD", "EUR", day(10))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.92)), "exact-date quote applies")

	rate, err = table.Lookup("USD", "EUR", day(15))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.92)), "most recent prior quote applies")

	rate, err = table.Lookup("USD", "EUR", day(25))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.95)))
}

func TestRateTable_Lookup_MissingRate(t *testing.T) {
	table := testTable()

	// No quote on or before the date.
	_, err := table.Lookup("GBP", "EUR", day(2))
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, entities.Currency("GBP"), missing.From)

	// Pair never quoted at all. Rates are directional: EUR->USD is not USD->EUR.
	_, err = table.Lookup("EUR", "USD", day(15))
	require.ErrorAs(t, err, &missing)
}

func TestNormalizer_ToBase(t *testing.T) {
	n := NewNormalizer("EUR", NewTableProvider(testTable()))
	ctx := context.Background()

	// Identity for base currency even with an empty table.
	amount, err := n.ToBase(ctx, decimal.NewFromInt(500), "EUR", day(2))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(500)))

	amount, err = n.ToBase(ctx, decimal.NewFromInt(100), "USD", day(12))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(92)))

	_, err = n.ToBase(ctx, decimal.NewFromInt(100), "IRR", day(12))
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing,
		"missing rate must surface as MissingRateError, never default")
	assert.False(t, errors.Is(err, context.Canceled))
}
