package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

func invalidRequest(expected string) error {
	return fmt.Errorf("invalid request type: expected %s", expected)
}

// ShipStatusQuery loads the vessel snapshot
type ShipStatusQuery struct{}

// ShipStatusResponse is the vessel snapshot
type ShipStatusResponse struct {
	State *vessel.ResourceState
}

// CargoHoldQuery loads the hold contents
type CargoHoldQuery struct{}

// CargoHoldResponse lists the hold entries
type CargoHoldResponse struct {
	State *vessel.ResourceState
	Hold  []trading.HoldEntry
}

// FuelOptionsQuery reports which fuel can be bought here and how much
type FuelOptionsQuery struct{}

// FuelOptionsResponse describes the fuel purchase a buyer is offered
type FuelOptionsResponse struct {
	State      *vessel.ResourceState
	Options    eligibility.FuelOptions
	Default    trading.FuelVariant
	HasDefault bool
	Max        constraint.Range
}

// StatusHandler answers ShipStatusQuery, CargoHoldQuery and FuelOptionsQuery
type StatusHandler struct {
	reader   ports.GameReader
	identity trading.Identity
}

// NewStatusHandler creates a handler for the vessel status queries
func NewStatusHandler(reader ports.GameReader, identity trading.Identity) *StatusHandler {
	return &StatusHandler{reader: reader, identity: identity}
}

// Handle executes a status query
func (h *StatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch request.(type) {
	case *ShipStatusQuery:
		snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, 0)
		if err != nil {
			return nil, err
		}
		return &ShipStatusResponse{State: snap.State}, nil

	case *CargoHoldQuery:
		snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, shipPkg.NeedHold)
		if err != nil {
			return nil, err
		}
		return &CargoHoldResponse{State: snap.State, Hold: snap.Hold}, nil

	case *FuelOptionsQuery:
		snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, 0)
		if err != nil {
			return nil, err
		}
		options := eligibility.Fuel(snap.State.StarportCode())
		variant, ok := eligibility.DefaultFuel(options)
		resp := &FuelOptionsResponse{
			State:      snap.State,
			Options:    options,
			Default:    variant,
			HasDefault: ok,
		}
		if ok {
			resp.Max = constraint.FuelPurchase(snap.State, variant)
		}
		return resp, nil

	default:
		return nil, invalidRequest("a status query")
	}
}
