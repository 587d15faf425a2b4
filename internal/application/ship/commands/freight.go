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

// LoadFreightCommand loads one standard freight lot
type LoadFreightCommand struct {
	LotID int
}

// LoadFreightHandler handles LoadFreightCommand
type LoadFreightHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewLoadFreightHandler creates a new load freight handler
func NewLoadFreightHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *LoadFreightHandler {
	return &LoadFreightHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the load freight command
func (h *LoadFreightHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LoadFreightCommand)
	if !ok {
		return nil, invalidRequest("*LoadFreightCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), shipPkg.NeedFreight)
	if err != nil {
		return nil, err
	}
	if err := checkGate("freight loading", eligibility.FreightLoad(snap.State)); err != nil {
		return nil, err
	}

	var lot *trading.FreightLot
	for i := range snap.Freight {
		if snap.Freight[i].ID == cmd.LotID {
			lot = &snap.Freight[i]
			break
		}
	}
	if lot == nil {
		return nil, shared.NewValidationError("lot", fmt.Sprintf("freight lot %d not found", cmd.LotID))
	}
	if !constraint.CanLoad(snap.State, *lot) {
		return nil, shared.NewIneligibleError("freight loading",
			fmt.Sprintf("lot %d needs %d dTons but only %d are free", lot.ID, lot.DTons, snap.State.Cargo.Free()))
	}

	resp, err := submit(ctx, h.dispatcher, trading.FreightLoad{LotID: lot.ID}, lot.DTons, lot.DTons, lot.Value)
	if err != nil {
		return nil, err
	}
	resp.Confirmation = fmt.Sprintf("Freight Lot %d loaded successfully!", lot.ID)
	return resp, nil
}
