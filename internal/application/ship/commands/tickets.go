package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// SellTicketsCommand sells passenger tickets. Each class count is clamped
// to min(vacant berths, demand) for that class.
type SellTicketsCommand struct {
	Tickets [len(vessel.PassengerClasses)]int
}

// SellTicketsResponse reports the clamped counts that were sold
type SellTicketsResponse struct {
	*TransactionResponse
	Tickets [len(vessel.PassengerClasses)]int
}

// SellTicketsHandler handles SellTicketsCommand
type SellTicketsHandler struct {
	reader     ports.GameReader
	dispatcher shipPkg.Dispatcher
}

// NewSellTicketsHandler creates a new sell tickets handler
func NewSellTicketsHandler(reader ports.GameReader, dispatcher shipPkg.Dispatcher) *SellTicketsHandler {
	return &SellTicketsHandler{reader: reader, dispatcher: dispatcher}
}

// Handle executes the sell tickets command
func (h *SellTicketsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellTicketsCommand)
	if !ok {
		return nil, invalidRequest("*SellTicketsCommand")
	}

	snap, err := shipPkg.LoadSnapshot(ctx, h.reader, h.dispatcher.Identity(), shipPkg.NeedDemand)
	if err != nil {
		return nil, err
	}
	if err := checkGate("ticket sale", eligibility.TicketSale(snap.State)); err != nil {
		return nil, err
	}
	if constraint.TicketSaleDisabled(snap.State, snap.Demand) {
		return nil, shared.NewIneligibleError("ticket sale", "no passenger class has sellable capacity")
	}

	var sale trading.TicketSale
	max := 0
	revenue := decimal.Zero
	for _, class := range vessel.PassengerClasses {
		bound := constraint.TicketSale(snap.State, class, snap.Demand)
		sale.Tickets[class] = bound.Clamp(cmd.Tickets[class])
		max += bound.Max
		revenue = revenue.Add(ticketPrice(class, snap.Demand).Mul(decimal.NewFromInt(int64(sale.Tickets[class]))))
	}
	if err := checkQuantity("ticket sale", sale.Total()); err != nil {
		return nil, err
	}

	resp, err := submit(ctx, h.dispatcher, sale, sale.Total(), max, revenue)
	if err != nil {
		return nil, err
	}
	return &SellTicketsResponse{TransactionResponse: resp, Tickets: sale.Tickets}, nil
}

func ticketPrice(class vessel.PassengerClass, demand []trading.TicketDemand) decimal.Decimal {
	for _, d := range demand {
		if d.PassageName == class.PassageName() {
			return d.TicketPrice
		}
	}
	return decimal.Zero
}
