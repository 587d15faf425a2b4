package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	shipPkg "github.com/andrescamacho/traveller-go/internal/application/ship"
	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// TransactionResponse reports a dispatched transaction
type TransactionResponse struct {
	Action   trading.Action
	Quantity int // units actually sent after clamping
	Max      int // upper bound of the legal range at dispatch time
	// Total is quantity times unit price for priced transactions
	Total        decimal.Decimal
	Confirmation string
	Outcome      *dispatch.Outcome
}

// confirmations are the user-facing texts shown after a successful dispatch
var confirmations = map[trading.Action]string{
	trading.ActionSpeculativePurchase: "Purchase successful!",
	trading.ActionSpeculativeSale:     "Sale successful!",
	trading.ActionBuyFuel:             "Fuel purchase successful!",
	trading.ActionSellTickets:         "Tickets sold!",
	trading.ActionFindBrokerOffer:     "Broker offer request sent successfully!",
	trading.ActionPerformMaintenance:  "Monthly maintenance has been performed!",
	trading.ActionPrepareForDeparture: "Ship is now preparing for departure!",
	trading.ActionRefineFuelOnboard:   "Fuel onboard the ship has been refined!",
	trading.ActionRollForPassengers:   "Passengers have been rolled.",
}

// resolveQuantity clamps a requested quantity into r. Non-empty text wins
// over requested; with neither, the maximum is requested.
func resolveQuantity(requested *int, text string, r constraint.Range) int {
	if text != "" {
		return constraint.ClampText(text, r)
	}
	if requested == nil {
		return r.Max
	}
	return r.Clamp(*requested)
}

func checkGate(operation string, verdict eligibility.Verdict) error {
	if !verdict.Allowed {
		return shared.NewIneligibleError(operation, verdict.Reason)
	}
	return nil
}

func checkQuantity(operation string, quantity int) error {
	if quantity < 1 {
		return shared.NewIneligibleError(operation, "nothing to transact: quantity must be at least 1")
	}
	return nil
}

// submit dispatches req and assembles the response
func submit(ctx context.Context, d shipPkg.Dispatcher, req trading.TransactionRequest, quantity, max int, total decimal.Decimal) (*TransactionResponse, error) {
	logger := logging.LoggerFromContext(ctx)
	logger.Log(logging.LevelDebug, "Submitting transaction", map[string]interface{}{
		"action":   string(req.Action()),
		"quantity": quantity,
		"max":      max,
	})

	outcome, err := d.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	confirmation := confirmations[req.Action()]
	if confirmation == "" {
		confirmation = outcome.Message
	}
	return &TransactionResponse{
		Action:       req.Action(),
		Quantity:     quantity,
		Max:          max,
		Total:        total,
		Confirmation: confirmation,
		Outcome:      outcome,
	}, nil
}

// respond keeps a failed submit from surfacing as a typed nil response
func respond(resp *TransactionResponse, err error) (mediator.Response, error) {
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func invalidRequest(expected string) error {
	return fmt.Errorf("invalid request type: expected %s", expected)
}
