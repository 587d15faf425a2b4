package queries

import (
	"context"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// OffersQuery lists the speculative offers at the current system
type OffersQuery struct{}

// OfferView is one offer with the quantity a trade could move right now
type OfferView struct {
	trading.CargoOffer
	Max constraint.Range
}

// OffersResponse lists offers and the broker search options
type OffersResponse struct {
	State         *vessel.ResourceState
	Offers        []OfferView
	Direction     trading.Direction
	Search        eligibility.SearchOptions
	DefaultSearch trading.SearchVariant
}

// FreightQuery lists the freight lots that fit the hold
type FreightQuery struct{}

// FreightResponse holds the loadable lots, smallest first
type FreightResponse struct {
	State    *vessel.ResourceState
	Loadable []trading.FreightLot
	Offered  int
	Verdict  eligibility.Verdict
}

// PassengersQuery reports passenger demand and sellable tickets per class
type PassengersQuery struct{}

// ClassAvailability is the ticket position of one passenger class
type ClassAvailability struct {
	Class  vessel.PassengerClass
	Berth  vessel.Berth
	Demand int
	Max    constraint.Range
}

// PassengersResponse lists per-class availability
type PassengersResponse struct {
	State        *vessel.ResourceState
	Demand       []trading.TicketDemand
	Classes      []ClassAvailability
	SaleDisabled bool
	Verdict      eligibility.Verdict
}

// MarketHandler answers OffersQuery, FreightQuery and PassengersQuery
type MarketHandler struct {
	reader   ports.GameReader
	identity trading.Identity
}

// NewMarketHandler creates a handler for the market queries
func NewMarketHandler(reader ports.GameReader, identity trading.Identity) *MarketHandler {
	return &MarketHandler{reader: reader, identity: identity}
}

// Handle executes a market query
func (h *MarketHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		resp mediator.Response
		err  error
	)
	switch request.(type) {
	case *OffersQuery:
		resp, err = h.offers(ctx)
	case *FreightQuery:
		resp, err = h.freight(ctx)
	case *PassengersQuery:
		resp, err = h.passengers(ctx)
	default:
		return nil, invalidRequest("a market query")
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (h *MarketHandler) offers(ctx context.Context) (*OffersResponse, error) {
	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, shipPkg.NeedOffers|shipPkg.NeedHold)
	if err != nil {
		return nil, err
	}

	search := eligibility.BrokerSearch(snap.State.Location.UWP)
	resp := &OffersResponse{
		State:         snap.State,
		Offers:        make([]OfferView, 0, len(snap.Offers)),
		Direction:     eligibility.TradeDirection(snap.State),
		Search:        search,
		DefaultSearch: eligibility.DefaultSearch(search),
	}
	for i := range snap.Offers {
		offer := &snap.Offers[i]
		view := OfferView{CargoOffer: *offer}
		switch offer.Direction {
		case trading.Buy:
			if eligibility.CargoPurchase(snap.State).Allowed {
				view.Max = constraint.CargoPurchase(snap.State, offer)
			}
		case trading.Sell:
			// a sale is bound by the largest matching hold entry
			if eligibility.CargoSale(snap.State).Allowed {
				for j := range snap.Hold {
					if snap.Hold[j].Description != offer.TradeGood {
						continue
					}
					if r := constraint.CargoSale(snap.State, &snap.Hold[j]); r.Max > view.Max.Max {
						view.Max = r
					}
				}
			}
		}
		resp.Offers = append(resp.Offers, view)
	}
	return resp, nil
}

func (h *MarketHandler) freight(ctx context.Context) (*FreightResponse, error) {
	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, shipPkg.NeedFreight)
	if err != nil {
		return nil, err
	}
	return &FreightResponse{
		State:    snap.State,
		Loadable: constraint.LoadableFreight(snap.State, snap.Freight),
		Offered:  len(snap.Freight),
		Verdict:  eligibility.FreightLoad(snap.State),
	}, nil
}

func (h *MarketHandler) passengers(ctx context.Context) (*PassengersResponse, error) {
	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.identity, shipPkg.NeedDemand)
	if err != nil {
		return nil, err
	}

	resp := &PassengersResponse{
		State:        snap.State,
		Demand:       snap.Demand,
		Classes:      make([]ClassAvailability, 0, len(vessel.PassengerClasses)),
		SaleDisabled: constraint.TicketSaleDisabled(snap.State, snap.Demand),
		Verdict:      eligibility.TicketSale(snap.State),
	}
	for _, class := range vessel.PassengerClasses {
		resp.Classes = append(resp.Classes, ClassAvailability{
			Class:  class,
			Berth:  snap.State.Passengers.Class(class),
			Demand: constraint.Demand(class, snap.Demand),
			Max:    constraint.TicketSale(snap.State, class, snap.Demand),
		})
	}
	return resp, nil
}
