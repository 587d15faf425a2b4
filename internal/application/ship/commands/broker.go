package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// FindBrokerOfferCommand asks a broker for a new speculative offer. The
// offer direction follows the ship's trade mode.
type FindBrokerOfferCommand struct {
	Variant *trading.SearchVariant // nil = online when available, else standard
}

// FindBrokerOfferHandler handles FindBrokerOfferCommand
type FindBrokerOfferHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewFindBrokerOfferHandler creates a new find broker offer handler
func NewFindBrokerOfferHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *FindBrokerOfferHandler {
	return &FindBrokerOfferHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the find broker offer command
func (h *FindBrokerOfferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*FindBrokerOfferCommand)
	if !ok {
		return nil, invalidRequest("*FindBrokerOfferCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), 0)
	if err != nil {
		return nil, err
	}

	options := eligibility.BrokerSearch(snap.State.Location.UWP)
	variant := eligibility.DefaultSearch(options)
	if cmd.Variant != nil {
		if !options.Allows(*cmd.Variant) {
			return nil, shared.NewIneligibleError("broker search",
				fmt.Sprintf("%s search is not available in %s", cmd.Variant, snap.State.Location.System))
		}
		variant = *cmd.Variant
	}

	req := trading.BrokerSearch{Variant: variant, Direction: eligibility.TradeDirection(snap.State)}
	return respond(submit(ctx, h.dispatcher, req, 0, 0, decimal.Zero))
}
