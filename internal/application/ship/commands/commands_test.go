package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

type fixture struct {
	reader     *helpers.MockGameReader
	transport  *helpers.MockTransport
	dispatcher *dispatch.Dispatcher
}

func newFixture(state *vessel.ResourceState) *fixture {
	transport := helpers.NewMockTransport()
	return &fixture{
		reader:     helpers.NewMockGameReader(state),
		transport:  transport,
		dispatcher: dispatch.NewDispatcher(transport, helpers.TestIdentity, shared.NewMockClock(time.Time{})),
	}
}

func wire(t *testing.T, payload interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func intPtr(v int) *int { return &v }

func buyOffer(id int, available *int) trading.CargoOffer {
	return trading.CargoOffer{
		ID:        id,
		TradeGood: "Electronics",
		Price:     decimal.NewFromInt(100),
		Available: available,
		Direction: trading.Buy,
	}
}

func sellOffer(id int) trading.CargoOffer {
	offer := buyOffer(id, nil)
	offer.Direction = trading.Sell
	offer.Price = decimal.NewFromInt(150)
	return offer
}

func assertIneligible(t *testing.T, err error) {
	t.Helper()
	var ineligible *shared.IneligibleError
	require.Error(t, err)
	assert.True(t, errors.As(err, &ineligible), "expected IneligibleError, got %v", err)
}

func TestPurchaseCargo_ClampsToHoldSpace(t *testing.T) {
	// Arrange
	f := newFixture(helpers.Preparing(helpers.NewResourceState()))
	f.reader.Offers = []trading.CargoOffer{buyOffer(3, nil)}
	handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3, Quantity: intPtr(100)})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.TransactionResponse)
	assert.Equal(t, 62, result.Quantity)
	assert.Equal(t, 62, result.Max)
	assert.True(t, decimal.NewFromInt(6200).Equal(result.Total))
	assert.Equal(t, "Purchase successful!", result.Confirmation)

	sent := f.transport.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, http.MethodPatch, sent.Method)
	assert.Equal(t, "/SpeculativePurchase", sent.Path)
	body := wire(t, sent.Payload)
	assert.EqualValues(t, 62, body["dTonsToPurchase"])
	assert.EqualValues(t, 3, body["OfferID"])
}

func TestPurchaseCargo_DefaultsToLimitedAvailability(t *testing.T) {
	// Arrange
	f := newFixture(helpers.Preparing(helpers.NewResourceState()))
	f.reader.Offers = []trading.CargoOffer{buyOffer(3, intPtr(5))}
	handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, resp.(*commands.TransactionResponse).Quantity)
}

func TestPurchaseCargo_QuantityTextIsReadAndClamped(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"40", 40},
		{" 12dt", 12},
		{"500", 62},
		{"4.8", 4},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			// Arrange
			f := newFixture(helpers.Preparing(helpers.NewResourceState()))
			f.reader.Offers = []trading.CargoOffer{buyOffer(3, nil)}
			handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

			// Act
			resp, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3, QuantityText: tt.text})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.(*commands.TransactionResponse).Quantity)
			body := wire(t, f.transport.LastSent().Payload)
			assert.EqualValues(t, tt.want, body["dTonsToPurchase"])
		})
	}
}

func TestBuyFuel_UnreadableQuantityTextIsRefused(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewBuyFuelHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.BuyFuelCommand{QuantityText: "lots"})

	// Assert
	assertIneligible(t, err)
	assert.Empty(t, f.transport.Sent())
}

func TestPurchaseCargo_RefusedUnlessPreparing(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	f.reader.Offers = []trading.CargoOffer{buyOffer(3, nil)}
	handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3})

	// Assert
	assertIneligible(t, err)
	assert.Empty(t, f.transport.Sent())
}

func TestPurchaseCargo_RejectsSaleOffer(t *testing.T) {
	// Arrange
	f := newFixture(helpers.Preparing(helpers.NewResourceState()))
	f.reader.Offers = []trading.CargoOffer{sellOffer(3)}
	handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3})

	// Assert
	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Empty(t, f.transport.Sent())
}

func TestPurchaseCargo_FullHoldIsRefused(t *testing.T) {
	// Arrange
	state := helpers.Preparing(helpers.NewResourceState())
	state.Cargo.Filled = state.Cargo.Capacity
	f := newFixture(state)
	f.reader.Offers = []trading.CargoOffer{buyOffer(3, nil)}
	handler := commands.NewPurchaseCargoHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.PurchaseCargoCommand{OfferID: 3, Quantity: intPtr(4)})

	// Assert
	assertIneligible(t, err)
	assert.Empty(t, f.transport.Sent())
}

func TestSellCargo_DefaultsToWholeEntry(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	f.reader.Offers = []trading.CargoOffer{sellOffer(8)}
	f.reader.Hold = []trading.HoldEntry{{ID: 21, Type: trading.CargoSpeculative, Description: "Electronics", DTons: 12}}
	handler := commands.NewSellCargoHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.SellCargoCommand{CargoID: 21, OfferID: 8})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.TransactionResponse)
	assert.Equal(t, 12, result.Quantity)
	assert.Equal(t, "Sale successful!", result.Confirmation)
	assert.True(t, decimal.NewFromInt(1800).Equal(result.Total))

	body := wire(t, f.transport.LastSent().Payload)
	assert.EqualValues(t, 21, body["CargoId"])
	assert.EqualValues(t, 12, body["dTonsToSell"])
}

func TestSellCargo_UnknownHoldEntryIsRefused(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	f.reader.Offers = []trading.CargoOffer{sellOffer(8)}
	handler := commands.NewSellCargoHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.SellCargoCommand{CargoID: 99, OfferID: 8})

	// Assert
	assertIneligible(t, err)
	assert.Empty(t, f.transport.Sent())
}

func TestSellCargo_RefusedWhilePreparing(t *testing.T) {
	// Arrange
	f := newFixture(helpers.Preparing(helpers.NewResourceState()))
	f.reader.Offers = []trading.CargoOffer{sellOffer(8)}
	f.reader.Hold = []trading.HoldEntry{{ID: 21, DTons: 12}}
	handler := commands.NewSellCargoHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.SellCargoCommand{CargoID: 21, OfferID: 8})

	// Assert
	assertIneligible(t, err)
}

func TestBuyFuel_UnrefinedAtClassCFillsTank(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithStarport(helpers.NewResourceState(), "C788899C"))
	handler := commands.NewBuyFuelHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.BuyFuelCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.TransactionResponse)
	assert.Equal(t, 30, result.Quantity)
	assert.Equal(t, "Fuel purchase successful!", result.Confirmation)
	body := wire(t, f.transport.LastSent().Payload)
	assert.Equal(t, false, body["BuyRefined"])
	assert.EqualValues(t, 30, body["dTonsOfFuel"])
}

func TestBuyFuel_RefinedDefaultAtClassA(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewBuyFuelHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.BuyFuelCommand{Quantity: intPtr(7)})

	// Assert
	require.NoError(t, err)
	body := wire(t, f.transport.LastSent().Payload)
	assert.Equal(t, true, body["BuyRefined"])
	assert.EqualValues(t, 7, body["dTonsOfFuel"])
}

func TestBuyFuel_VariantNotSoldIsRefused(t *testing.T) {
	tests := []struct {
		name    string
		uwp     string
		variant *trading.FuelVariant
	}{
		{"refined at class C", "C788899C", func() *trading.FuelVariant { v := trading.RefinedFuel; return &v }()},
		{"anything at class E", "E788899C", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(helpers.WithStarport(helpers.NewResourceState(), tt.uwp))
			handler := commands.NewBuyFuelHandler(f.reader, f.dispatcher)

			// Act
			_, err := handler.Handle(context.Background(), &commands.BuyFuelCommand{Variant: tt.variant})

			// Assert
			assertIneligible(t, err)
			assert.Empty(t, f.transport.Sent())
		})
	}
}

func TestLoadFreight(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithDestination(helpers.Preparing(helpers.NewResourceState()), "Efate"))
	f.reader.Freight = []trading.FreightLot{
		{ID: 7, System: "Efate", DTons: 12, Value: decimal.NewFromInt(6000)},
		{ID: 8, System: "Efate", DTons: 70, Value: decimal.NewFromInt(35000)},
	}
	handler := commands.NewLoadFreightHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.LoadFreightCommand{LotID: 7})
	_, tooBig := handler.Handle(context.Background(), &commands.LoadFreightCommand{LotID: 8})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Freight Lot 7 loaded successfully!", resp.(*commands.TransactionResponse).Confirmation)
	assertIneligible(t, tooBig)
	assert.Len(t, f.transport.Sent(), 1)
}

func TestLoadFreight_NeedsDestination(t *testing.T) {
	// Arrange
	f := newFixture(helpers.Preparing(helpers.NewResourceState()))
	f.reader.Freight = []trading.FreightLot{{ID: 7, DTons: 12}}
	handler := commands.NewLoadFreightHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.LoadFreightCommand{LotID: 7})

	// Assert
	assertIneligible(t, err)
}

func TestSellTickets_ClampsEachClass(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithDestination(helpers.NewResourceState(), "Efate"))
	f.reader.Demand = []trading.TicketDemand{
		helpers.Demand(vessel.Low, 5),
		helpers.Demand(vessel.Middle, 10),
		helpers.Demand(vessel.High, 2),
	}
	handler := commands.NewSellTicketsHandler(f.reader, f.dispatcher)
	var cmd commands.SellTicketsCommand
	cmd.Tickets[vessel.Low] = 30
	cmd.Tickets[vessel.Middle] = 30
	cmd.Tickets[vessel.High] = 1

	// Act
	resp, err := handler.Handle(context.Background(), &cmd)

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.SellTicketsResponse)
	assert.Equal(t, 5, result.Tickets[vessel.Low])
	assert.Equal(t, 3, result.Tickets[vessel.Middle])
	assert.Equal(t, 1, result.Tickets[vessel.High])
	assert.Equal(t, 9, result.Quantity)
	assert.True(t, decimal.NewFromInt(9000).Equal(result.Total))

	body := wire(t, f.transport.LastSent().Payload)
	assert.EqualValues(t, 5, body["LowBerthTickets"])
	assert.EqualValues(t, 3, body["MiddleTickets"])
	assert.EqualValues(t, 1, body["HighTickets"])
}

func TestSellTickets_SentinelRejection(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithDestination(helpers.NewResourceState(), "Efate"))
	f.reader.Demand = []trading.TicketDemand{helpers.Demand(vessel.Low, 5)}
	f.transport.Respond(http.StatusOK, "No passengers are waiting")
	handler := commands.NewSellTicketsHandler(f.reader, f.dispatcher)
	var cmd commands.SellTicketsCommand
	cmd.Tickets[vessel.Low] = 2

	// Act
	_, err := handler.Handle(context.Background(), &cmd)

	// Assert
	var rejection *shared.BusinessRejection
	require.True(t, errors.As(err, &rejection))
	assert.False(t, f.dispatcher.Busy(trading.ActionSellTickets))
}

func TestSellTickets_DisabledWithoutCapacity(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithDestination(helpers.NewResourceState(), "Efate"))
	handler := commands.NewSellTicketsHandler(f.reader, f.dispatcher)
	var cmd commands.SellTicketsCommand
	cmd.Tickets[vessel.Low] = 2

	// Act
	_, err := handler.Handle(context.Background(), &cmd)

	// Assert
	assertIneligible(t, err)
	assert.Empty(t, f.transport.Sent())
}

func TestFindBrokerOffer_DirectionAndSkill(t *testing.T) {
	tests := []struct {
		name      string
		state     *vessel.ResourceState
		variant   *trading.SearchVariant
		wantSkill string
		wantType  string
	}{
		{"online sell by default", helpers.NewResourceState(), nil, "A", "S"},
		{"online buy while preparing", helpers.Preparing(helpers.NewResourceState()), nil, "A", "B"},
		{"standard at low tech", helpers.WithStarport(helpers.NewResourceState(), "A7888997"), nil, "B", "S"},
		{"explicit standard", helpers.NewResourceState(), func() *trading.SearchVariant { v := trading.StandardSearch; return &v }(), "B", "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(tt.state)
			handler := commands.NewFindBrokerOfferHandler(f.reader, f.dispatcher)

			// Act
			resp, err := handler.Handle(context.Background(), &commands.FindBrokerOfferCommand{Variant: tt.variant})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Broker offer request sent successfully!", resp.(*commands.TransactionResponse).Confirmation)
			sent := f.transport.LastSent()
			assert.Equal(t, http.MethodPost, sent.Method)
			body := wire(t, sent.Payload)
			assert.Equal(t, tt.wantSkill, body["SkillUsed"])
			assert.Equal(t, tt.wantType, body["OfferType"])
		})
	}
}

func TestFindBrokerOffer_UnavailableVariantIsRefused(t *testing.T) {
	online := trading.OnlineSearch
	illegal := trading.IllegalSearch

	for name, variant := range map[string]*trading.SearchVariant{"online at low tech": &online, "illegal": &illegal} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			f := newFixture(helpers.WithStarport(helpers.NewResourceState(), "A7888997"))
			handler := commands.NewFindBrokerOfferHandler(f.reader, f.dispatcher)

			// Act
			_, err := handler.Handle(context.Background(), &commands.FindBrokerOfferCommand{Variant: variant})

			// Assert
			assertIneligible(t, err)
			assert.Empty(t, f.transport.Sent())
		})
	}
}

func TestDeclareDestination(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewDeclareDestinationHandler(f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.DeclareDestinationCommand{System: helpers.System("Efate", 3, 1705)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Destination set to Efate, Sector: Spinward Marches", resp.(*commands.TransactionResponse).Confirmation)
	sent := f.transport.LastSent()
	assert.Equal(t, "/DeclareDestination/1/1/3/1705", sent.Path)
	assert.Nil(t, sent.Payload)
}

func TestDeclareDestination_RequiresSelection(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewDeclareDestinationHandler(f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.DeclareDestinationCommand{})

	// Assert
	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Empty(t, f.transport.Sent())
}

func TestShipAction_MoveWelcomesAtDestination(t *testing.T) {
	// Arrange
	f := newFixture(helpers.WithDestination(helpers.NewResourceState(), "Efate"))
	handler := commands.NewShipActionHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ShipActionCommand{Action: trading.ActionMoveTheShip})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Efate!", resp.(*commands.TransactionResponse).Confirmation)
	assert.Equal(t, "/MoveTheShip", f.transport.LastSent().Path)
}

func TestShipAction_Gates(t *testing.T) {
	tests := []struct {
		name   string
		state  *vessel.ResourceState
		action trading.Action
	}{
		{"move without destination", helpers.NewResourceState(), trading.ActionMoveTheShip},
		{"prepare twice", helpers.Preparing(helpers.NewResourceState()), trading.ActionPrepareForDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(tt.state)
			handler := commands.NewShipActionHandler(f.reader, f.dispatcher)

			// Act
			_, err := handler.Handle(context.Background(), &commands.ShipActionCommand{Action: tt.action})

			// Assert
			assertIneligible(t, err)
			assert.Empty(t, f.transport.Sent())
		})
	}
}

func TestShipAction_UngatedActionsSkipShipData(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewShipActionHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ShipActionCommand{Action: trading.ActionPerformMaintenance})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Monthly maintenance has been performed!", resp.(*commands.TransactionResponse).Confirmation)
	assert.Zero(t, f.reader.Calls("ShipData"))
}

func TestShipAction_TransportFailure(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	f.transport.Fail(errors.New("connection reset"))
	handler := commands.NewShipActionHandler(f.reader, f.dispatcher)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ShipActionCommand{Action: trading.ActionRefineFuelOnboard})

	// Assert
	var transport *shared.TransportError
	require.True(t, errors.As(err, &transport))
	assert.Nil(t, resp)
	assert.False(t, f.dispatcher.Busy(trading.ActionRefineFuelOnboard))
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	// Arrange
	f := newFixture(helpers.NewResourceState())
	handler := commands.NewBuyFuelHandler(f.reader, f.dispatcher)

	// Act
	_, err := handler.Handle(context.Background(), &commands.LoadFreightCommand{})

	// Assert
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid request type"))
}
