package trading_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

func TestDirection_Codes(t *testing.T) {
	buy, err := trading.ParseDirection("Buy")
	require.NoError(t, err)
	sell, err := trading.ParseDirection("Sell")
	require.NoError(t, err)

	assert.Equal(t, "B", buy.Code())
	assert.Equal(t, "S", sell.Code())

	_, err = trading.ParseDirection("Hold")
	assert.Error(t, err)
}

func TestSearchVariant_SkillCode(t *testing.T) {
	assert.Equal(t, "B", trading.StandardSearch.SkillCode())
	assert.Equal(t, "A", trading.OnlineSearch.SkillCode())
	assert.Equal(t, "S", trading.IllegalSearch.SkillCode())
}

func TestCargoOffer_QuoteAndUnlimited(t *testing.T) {
	// Arrange
	five := 5
	offer := trading.CargoOffer{Price: decimal.RequireFromString("1250.50"), Available: &five}

	// Act
	total := offer.Quote(4)

	// Assert
	assert.True(t, total.Equal(decimal.RequireFromString("5002")))
	assert.False(t, offer.Unlimited())
	assert.True(t, trading.CargoOffer{}.Unlimited())
}

func TestFindHoldEntry(t *testing.T) {
	entries := []trading.HoldEntry{{ID: 3, DTons: 10}, {ID: 7, DTons: 2}}

	found := trading.FindHoldEntry(entries, 7)

	require.NotNil(t, found)
	assert.Equal(t, 2, found.DTons)
	assert.Nil(t, trading.FindHoldEntry(entries, 99))
}

func TestTicketSale_Total(t *testing.T) {
	var sale trading.TicketSale
	sale.Tickets[vessel.Low] = 3
	sale.Tickets[vessel.Luxury] = 1

	assert.Equal(t, 4, sale.Total())
	assert.Equal(t, trading.ActionSellTickets, sale.Action())
}

func TestLedgerEntry_Net(t *testing.T) {
	revenue := decimal.NewFromInt(500)
	expense := decimal.NewFromInt(120)

	assert.True(t, trading.LedgerEntry{Revenue: &revenue, Expense: &expense}.Net().Equal(decimal.NewFromInt(380)))
	assert.True(t, trading.LedgerEntry{}.Net().IsZero())
}
