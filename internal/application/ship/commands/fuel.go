package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// BuyFuelCommand buys fuel at the current starport
type BuyFuelCommand struct {
	Quantity     *int                 // nil = fill the tank
	QuantityText string               // free-form input; overrides Quantity when set
	Variant      *trading.FuelVariant // nil = refined when sold here, else unrefined
}

// BuyFuelHandler handles BuyFuelCommand
type BuyFuelHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewBuyFuelHandler creates a new buy fuel handler
func NewBuyFuelHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *BuyFuelHandler {
	return &BuyFuelHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the buy fuel command
func (h *BuyFuelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyFuelCommand)
	if !ok {
		return nil, invalidRequest("*BuyFuelCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), 0)
	if err != nil {
		return nil, err
	}

	code := snap.State.StarportCode()
	options := eligibility.Fuel(code)
	variant, ok := eligibility.DefaultFuel(options)
	if !ok {
		return nil, shared.NewIneligibleError("fuel purchase", fmt.Sprintf("no fuel is sold at a class %s starport", code))
	}
	if cmd.Variant != nil {
		if !options.Allows(*cmd.Variant) {
			return nil, shared.NewIneligibleError("fuel purchase", fmt.Sprintf("%s fuel is not sold at a class %s starport", cmd.Variant, code))
		}
		variant = *cmd.Variant
	}

	bound := constraint.FuelPurchase(snap.State, variant)
	quantity := resolveQuantity(cmd.Quantity, cmd.QuantityText, bound)
	if err := checkQuantity("fuel purchase", quantity); err != nil {
		return nil, err
	}

	return respond(submit(ctx, h.dispatcher,
		trading.FuelPurchase{DTons: quantity, Variant: variant},
		quantity, bound.Max, decimal.Zero))
}
