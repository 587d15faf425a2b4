package eligibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

func TestFuel_ByStarportCode(t *testing.T) {
	cases := []struct {
		code      string
		refined   bool
		unrefined bool
	}{
		{"A", true, true},
		{"B", true, true},
		{"C", false, true},
		{"D", false, true},
		{"E", false, false},
		{"X", false, false},
		{"", false, false},
		{"b", false, false},
	}

	for _, tc := range cases {
		t.Run("code_"+tc.code, func(t *testing.T) {
			opts := eligibility.Fuel(tc.code)

			assert.Equal(t, tc.refined, opts.Refined)
			assert.Equal(t, tc.unrefined, opts.Unrefined)
			assert.Equal(t, tc.refined || tc.unrefined, opts.Any())
		})
	}
}

func TestDefaultFuel(t *testing.T) {
	variant, ok := eligibility.DefaultFuel(eligibility.Fuel("B"))
	assert.True(t, ok)
	assert.Equal(t, trading.RefinedFuel, variant)

	variant, ok = eligibility.DefaultFuel(eligibility.Fuel("C"))
	assert.True(t, ok)
	assert.Equal(t, trading.UnrefinedFuel, variant)

	_, ok = eligibility.DefaultFuel(eligibility.Fuel("E"))
	assert.False(t, ok)
}

func TestBrokerSearch_TechLevelDigit(t *testing.T) {
	cases := []struct {
		uwp    vessel.UWP
		online bool
	}{
		{"A7888999", true},
		{"A7888998", true},
		{"B563664F", true},
		{"A788899C", true},
		{"A7888995", false},
		{"A7888997", false},
		{"A788899-9", false},
		{"A788899-C", false},
		{"A788899?", false},
		{"A78", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(string(tc.uwp), func(t *testing.T) {
			opts := eligibility.BrokerSearch(tc.uwp)

			assert.True(t, opts.Standard)
			assert.False(t, opts.Illegal)
			assert.Equal(t, tc.online, opts.Online)
		})
	}
}

func TestDefaultSearch(t *testing.T) {
	assert.Equal(t, trading.OnlineSearch, eligibility.DefaultSearch(eligibility.BrokerSearch("A7888999")))
	assert.Equal(t, trading.StandardSearch, eligibility.DefaultSearch(eligibility.BrokerSearch("A7888995")))
	assert.Equal(t, trading.StandardSearch, eligibility.DefaultSearch(eligibility.BrokerSearch("A788899-C")), "a separator in the tech level position is not a digit")
}

func TestTradeDirection(t *testing.T) {
	assert.Equal(t, trading.Buy, eligibility.TradeDirection(&vessel.ResourceState{PreparingForDeparture: true}))
	assert.Equal(t, trading.Sell, eligibility.TradeDirection(&vessel.ResourceState{}))
	assert.Equal(t, trading.Sell, eligibility.TradeDirection(nil))
}

func TestGates(t *testing.T) {
	preparing := &vessel.ResourceState{PreparingForDeparture: true}
	declared := &vessel.ResourceState{
		PreparingForDeparture: true,
		Destination:           &vessel.Destination{Name: "Regina"},
	}
	docked := &vessel.ResourceState{}

	assert.True(t, eligibility.CargoPurchase(preparing).Allowed)
	assert.False(t, eligibility.CargoPurchase(docked).Allowed)
	assert.True(t, eligibility.CargoSale(docked).Allowed)
	assert.False(t, eligibility.CargoSale(preparing).Allowed)

	assert.False(t, eligibility.FreightLoad(preparing).Allowed)
	assert.True(t, eligibility.FreightLoad(declared).Allowed)

	assert.False(t, eligibility.TicketSale(preparing).Allowed)
	assert.True(t, eligibility.TicketSale(declared).Allowed)

	assert.True(t, eligibility.PrepareForDeparture(docked).Allowed)
	assert.False(t, eligibility.PrepareForDeparture(preparing).Allowed)

	assert.False(t, eligibility.MoveShip(docked).Allowed)
	assert.True(t, eligibility.MoveShip(declared).Allowed)

	verdict := eligibility.CargoPurchase(nil)
	assert.False(t, verdict.Allowed)
	assert.NotEmpty(t, verdict.Reason)
}
