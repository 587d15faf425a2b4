package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// ShipActionCommand runs one of the quantity-free ship operations:
// PerformMaintenance, MoveTheShip, PrepareForDeparture, RefineFuelOnboard
// or RollForPassengers.
type ShipActionCommand struct {
	Action trading.Action
}

// ShipActionHandler handles ShipActionCommand
type ShipActionHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewShipActionHandler creates a new ship action handler
func NewShipActionHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *ShipActionHandler {
	return &ShipActionHandler{reader: reader, dispatcher: dispatcher}
}

type shipAction struct {
	operation string
	request   trading.TransactionRequest
	gate      func(*vessel.ResourceState) eligibility.Verdict
}

var shipActions = map[trading.Action]shipAction{
	trading.ActionPerformMaintenance:  {operation: "maintenance", request: trading.PerformMaintenance{}},
	trading.ActionMoveTheShip:         {operation: "jump", request: trading.MoveShip{}, gate: eligibility.MoveShip},
	trading.ActionPrepareForDeparture: {operation: "departure preparation", request: trading.PrepareForDeparture{}, gate: eligibility.PrepareForDeparture},
	trading.ActionRefineFuelOnboard:   {operation: "fuel refining", request: trading.RefineFuel{}},
	trading.ActionRollForPassengers:   {operation: "passenger roll", request: trading.RollForPassengers{}},
}

// Handle executes the ship action command
func (h *ShipActionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ShipActionCommand)
	if !ok {
		return nil, invalidRequest("*ShipActionCommand")
	}

	action, ok := shipActions[cmd.Action]
	if !ok {
		return nil, fmt.Errorf("unsupported ship action %q", cmd.Action)
	}

	var state *vessel.ResourceState
	if action.gate != nil {
		snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), 0)
		if err != nil {
			return nil, err
		}
		state = snap.State
		if err := checkGate(action.operation, action.gate(state)); err != nil {
			return nil, err
		}
	}

	resp, err := submit(ctx, h.dispatcher, action.request, 0, 0, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if cmd.Action == trading.ActionMoveTheShip {
		resp.Confirmation = fmt.Sprintf("Welcome to %s!", state.DestinationName())
	}
	return resp, nil
}
