package dispatch

import (
	"fmt"
	"net/http"

	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// route is the wire shape of one TransactionRequest
type route struct {
	method  string
	path    string
	payload interface{}
	// sentinel endpoints report business failure inside a 2xx body
	sentinel bool
}

type shipRef struct {
	GameID int `json:"GameID"`
	ShipID int `json:"ShipID"`
}

type purchasePayload struct {
	shipRef
	OfferID         int `json:"OfferID"`
	DTonsToPurchase int `json:"dTonsToPurchase"`
}

type salePayload struct {
	shipRef
	CargoID     int `json:"CargoId"`
	OfferID     int `json:"OfferID"`
	DTonsToSell int `json:"dTonsToSell"`
}

type fuelPayload struct {
	shipRef
	DTonsOfFuel int  `json:"dTonsOfFuel"`
	BuyRefined  bool `json:"BuyRefined"`
}

type freightPayload struct {
	shipRef
	LotID int `json:"LotID"`
}

type brokerPayload struct {
	shipRef
	SkillUsed string `json:"SkillUsed"`
	OfferType string `json:"OfferType"`
}

// ticketPayload is built as a map so the per-class field names come from
// the passenger class table
type ticketPayload map[string]int

func ticketsFor(ref shipRef, sale trading.TicketSale) ticketPayload {
	p := ticketPayload{"GameID": ref.GameID, "ShipID": ref.ShipID}
	for _, c := range vessel.PassengerClasses {
		p[c.TicketField()] = sale.Tickets[c]
	}
	return p
}

// routeFor maps a request to its endpoint and payload
func routeFor(id trading.Identity, req trading.TransactionRequest) (route, error) {
	ref := shipRef{GameID: id.GameID, ShipID: id.ShipID}
	patch := func(payload interface{}) route {
		return route{method: http.MethodPatch, path: "/" + string(req.Action()), payload: payload}
	}

	switch r := req.(type) {
	case trading.CargoPurchase:
		return patch(purchasePayload{shipRef: ref, OfferID: r.OfferID, DTonsToPurchase: r.DTons}), nil
	case trading.CargoSale:
		return patch(salePayload{shipRef: ref, CargoID: r.CargoID, OfferID: r.OfferID, DTonsToSell: r.DTons}), nil
	case trading.FuelPurchase:
		return patch(fuelPayload{shipRef: ref, DTonsOfFuel: r.DTons, BuyRefined: r.Variant == trading.RefinedFuel}), nil
	case trading.FreightLoad:
		return patch(freightPayload{shipRef: ref, LotID: r.LotID}), nil
	case trading.TicketSale:
		rt := patch(ticketsFor(ref, r))
		rt.sentinel = true
		return rt, nil
	case trading.RollForPassengers:
		rt := patch(ref)
		rt.sentinel = true
		return rt, nil
	case trading.BrokerSearch:
		return route{
			method:  http.MethodPost,
			path:    "/" + string(r.Action()),
			payload: brokerPayload{shipRef: ref, SkillUsed: r.Variant.SkillCode(), OfferType: r.Direction.Code()},
		}, nil
	case trading.DestinationDeclaration:
		return route{
			method: http.MethodPatch,
			path:   fmt.Sprintf("/%s/%d/%d/%d/%d", r.Action(), id.GameID, id.ShipID, r.SectorID, r.SystemID),
		}, nil
	case trading.PerformMaintenance, trading.MoveShip, trading.PrepareForDeparture, trading.RefineFuel:
		return patch(ref), nil
	default:
		return route{}, fmt.Errorf("unsupported transaction request %T", req)
	}
}
