package ports

import (
	"context"

	"github.com/andrescamacho/traveller-go/internal/domain/crew"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// GameReader is the read side of the game-state service.
//
// Collection reads never fail on a malformed payload: the adapter logs the
// schema violation and returns an empty slice. They fail only on transport
// errors. ShipData has no sensible empty value and returns an error instead.
type GameReader interface {
	ShipData(ctx context.Context, id trading.Identity) (*vessel.ResourceState, error)
	Cargo(ctx context.Context, id trading.Identity) ([]trading.HoldEntry, error)
	SpeculativeOffers(ctx context.Context, id trading.Identity) ([]trading.CargoOffer, error)
	PassengersAvailable(ctx context.Context, id trading.Identity) ([]trading.TicketDemand, error)
	StandardFreight(ctx context.Context, id trading.Identity) ([]trading.FreightLot, error)
	ShipsLedger(ctx context.Context, id trading.Identity) ([]trading.LedgerEntry, error)
	SpeculativeTransactions(ctx context.Context, id trading.Identity) ([]trading.TradeRecord, error)
	SpaceEncounters(ctx context.Context, id trading.Identity) ([]vessel.Encounter, error)
	CrewData(ctx context.Context, id trading.Identity) ([]crew.Member, error)
	CrewMemberSkills(ctx context.Context, id trading.Identity, memberID int) ([]crew.Skill, error)
	CrewMemberAssignments(ctx context.Context, id trading.Identity, memberID int) ([]crew.Assignment, error)
	SystemSearcher
}

// SystemSearcher resolves a partial system name to candidate destinations
type SystemSearcher interface {
	SystemsByName(ctx context.Context, query string) ([]trading.StarSystem, error)
}

// Reply is a raw mutation response
type Reply struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Reply) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport submits a mutation and returns the raw reply. A non-nil error
// means no reply was received; non-2xx replies are returned, not errored.
type Transport interface {
	Send(ctx context.Context, method, path string, payload interface{}) (*Reply, error)
}
