package ship

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// Dispatcher submits mutations for the configured vessel
type Dispatcher interface {
	Dispatch(ctx context.Context, req trading.TransactionRequest) (*dispatch.Outcome, error)
	Identity() trading.Identity
}

// Need selects the collections loaded alongside the vessel snapshot
type Need uint8

const (
	NeedHold Need = 1 << iota
	NeedOffers
	NeedDemand
	NeedFreight
)

// Snapshot is one view's worth of game state. Collections not requested
// are nil.
type Snapshot struct {
	State   *vessel.ResourceState
	Hold    []trading.HoldEntry
	Offers  []trading.CargoOffer
	Demand  []trading.TicketDemand
	Freight []trading.FreightLot
}

// FindOffer returns the offer with the given id, or nil
func (s *Snapshot) FindOffer(id int) *trading.CargoOffer {
	for i := range s.Offers {
		if s.Offers[i].ID == id {
			return &s.Offers[i]
		}
	}
	return nil
}

// LoadSnapshot fetches the vessel state and the requested collections
// concurrently. Any read failure fails the whole load.
func LoadSnapshot(ctx context.Context, reader ports.GameReader, id trading.Identity, need Need) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		state, err := reader.ShipData(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load ship data: %w", err)
		}
		snap.State = state
		return nil
	})
	if need&NeedHold != 0 {
		g.Go(func() error {
			hold, err := reader.Cargo(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to load cargo: %w", err)
			}
			snap.Hold = hold
			return nil
		})
	}
	if need&NeedOffers != 0 {
		g.Go(func() error {
			offers, err := reader.SpeculativeOffers(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to load offers: %w", err)
			}
			snap.Offers = offers
			return nil
		})
	}
	if need&NeedDemand != 0 {
		g.Go(func() error {
			demand, err := reader.PassengersAvailable(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to load passengers: %w", err)
			}
			snap.Demand = demand
			return nil
		})
	}
	if need&NeedFreight != 0 {
		g.Go(func() error {
			lots, err := reader.StandardFreight(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to load freight: %w", err)
			}
			snap.Freight = lots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
