package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// PurchaseCargoCommand buys speculative cargo from a Buy offer.
//
// Business rules enforced:
//   - The ship must be preparing for departure
//   - Quantity is clamped to hold space and the offer's availability
//   - Nil Quantity buys the maximum
//   - QuantityText, when set, is read like an integer field before clamping
type PurchaseCargoCommand struct {
	OfferID      int
	Quantity     *int
	QuantityText string
}

// SellCargoCommand sells a hold entry into a Sell offer.
//
// Business rules enforced:
//   - The ship must not be preparing for departure
//   - Quantity is clamped to the tonnage of the hold entry
//   - Nil Quantity sells the whole entry
//   - QuantityText, when set, is read like an integer field before clamping
type SellCargoCommand struct {
	CargoID      int
	OfferID      int
	Quantity     *int
	QuantityText string
}

// PurchaseCargoHandler handles PurchaseCargoCommand
type PurchaseCargoHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewPurchaseCargoHandler creates a new purchase cargo handler
func NewPurchaseCargoHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *PurchaseCargoHandler {
	return &PurchaseCargoHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the purchase cargo command
func (h *PurchaseCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseCargoCommand)
	if !ok {
		return nil, invalidRequest("*PurchaseCargoCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), shipPkg.NeedOffers)
	if err != nil {
		return nil, err
	}
	if err := checkGate("cargo purchase", eligibility.CargoPurchase(snap.State)); err != nil {
		return nil, err
	}

	offer := snap.FindOffer(cmd.OfferID)
	if offer == nil {
		return nil, shared.NewValidationError("offer", fmt.Sprintf("offer %d not found", cmd.OfferID))
	}
	if offer.Direction != trading.Buy {
		return nil, shared.NewValidationError("offer", fmt.Sprintf("offer %d is not a purchase offer", cmd.OfferID))
	}

	bound := constraint.CargoPurchase(snap.State, offer)
	quantity := resolveQuantity(cmd.Quantity, cmd.QuantityText, bound)
	if err := checkQuantity("cargo purchase", quantity); err != nil {
		return nil, err
	}

	return respond(submit(ctx, h.dispatcher,
		trading.CargoPurchase{OfferID: offer.ID, DTons: quantity},
		quantity, bound.Max, offer.Quote(quantity)))
}

// SellCargoHandler handles SellCargoCommand
type SellCargoHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewSellCargoHandler creates a new sell cargo handler
func NewSellCargoHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *SellCargoHandler {
	return &SellCargoHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the sell cargo command
func (h *SellCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellCargoCommand)
	if !ok {
		return nil, invalidRequest("*SellCargoCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), shipPkg.NeedOffers|shipPkg.NeedHold)
	if err != nil {
		return nil, err
	}
	if err := checkGate("cargo sale", eligibility.CargoSale(snap.State)); err != nil {
		return nil, err
	}

	offer := snap.FindOffer(cmd.OfferID)
	if offer == nil {
		return nil, shared.NewValidationError("offer", fmt.Sprintf("offer %d not found", cmd.OfferID))
	}
	if offer.Direction != trading.Sell {
		return nil, shared.NewValidationError("offer", fmt.Sprintf("offer %d is not a sale offer", cmd.OfferID))
	}

	// A missing hold entry leaves an empty range and the sale is refused below
	entry := trading.FindHoldEntry(snap.Hold, cmd.CargoID)
	bound := constraint.CargoSale(snap.State, entry)
	quantity := resolveQuantity(cmd.Quantity, cmd.QuantityText, bound)
	if err := checkQuantity("cargo sale", quantity); err != nil {
		return nil, err
	}

	return respond(submit(ctx, h.dispatcher,
		trading.CargoSale{CargoID: entry.ID, OfferID: offer.ID, DTons: quantity},
		quantity, bound.Max, offer.Quote(quantity)))
}
