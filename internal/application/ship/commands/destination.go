package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// DeclareDestinationCommand records the system selected from a lookup as
// the ship's next jump target
type DeclareDestinationCommand struct {
	System trading.StarSystem
}

// DeclareDestinationHandler handles DeclareDestinationCommand. Jump range
// is checked by the game service.
type DeclareDestinationHandler struct {
	dispatcher shipPkg.Dispatcher
}

// NewDeclareDestinationHandler creates a new declare destination handler
func NewDeclareDestinationHandler(dispatcher shipPkg.Dispatcher) *DeclareDestinationHandler {
	return &DeclareDestinationHandler{dispatcher: dispatcher}
}

// Handle executes the declare destination command
func (h *DeclareDestinationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeclareDestinationCommand)
	if !ok {
		return nil, invalidRequest("*DeclareDestinationCommand")
	}
	if cmd.System.Name == "" {
		return nil, shared.NewValidationError("system", "no destination selected")
	}

	req := trading.DestinationDeclaration{
		Name:     cmd.System.Name,
		SectorID: cmd.System.SectorID,
		SystemID: cmd.System.SystemID,
	}
	resp, err := submit(ctx, h.dispatcher, req, 0, 0, decimal.Zero)
	if err != nil {
		return nil, err
	}
	resp.Confirmation = fmt.Sprintf("Destination set to %s, Sector: %s", cmd.System.Name, cmd.System.Sector)
	return resp, nil
}
