package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

const waitTimeout = 2 * time.Second

type dispatchResult struct {
	outcome *dispatch.Outcome
	err     error
}

type dispatchContext struct {
	transport  *helpers.MockTransport
	dispatcher *dispatch.Dispatcher
	gate       chan struct{}
	background []chan dispatchResult

	outcome *dispatch.Outcome
	err     error
}

func (ctx *dispatchContext) reset() {
	ctx.transport = helpers.NewMockTransport()
	ctx.dispatcher = dispatch.NewDispatcher(ctx.transport, helpers.TestIdentity, shared.NewMockClock(time.Time{}))
	ctx.gate = nil
	ctx.background = nil
	ctx.outcome = nil
	ctx.err = nil
}

// requestFor builds a representative request for an action name
func requestFor(action string) (trading.TransactionRequest, error) {
	switch trading.Action(action) {
	case trading.ActionSpeculativePurchase:
		return trading.CargoPurchase{OfferID: 1, DTons: 5}, nil
	case trading.ActionSpeculativeSale:
		return trading.CargoSale{CargoID: 2, OfferID: 1, DTons: 5}, nil
	case trading.ActionBuyFuel:
		return trading.FuelPurchase{DTons: 10, Variant: trading.RefinedFuel}, nil
	case trading.ActionLoadStandardFreight:
		return trading.FreightLoad{LotID: 7}, nil
	case trading.ActionSellTickets:
		var sale trading.TicketSale
		sale.Tickets[0] = 2
		return sale, nil
	case trading.ActionFindBrokerOffer:
		return trading.BrokerSearch{Variant: trading.StandardSearch, Direction: trading.Sell}, nil
	case trading.ActionDeclareDestination:
		return trading.DestinationDeclaration{Name: "Efate", SectorID: 3, SystemID: 1705}, nil
	case trading.ActionPerformMaintenance:
		return trading.PerformMaintenance{}, nil
	case trading.ActionMoveTheShip:
		return trading.MoveShip{}, nil
	case trading.ActionPrepareForDeparture:
		return trading.PrepareForDeparture{}, nil
	case trading.ActionRefineFuelOnboard:
		return trading.RefineFuel{}, nil
	case trading.ActionRollForPassengers:
		return trading.RollForPassengers{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", action)
}

func (ctx *dispatchContext) theGameServiceAnswersStatusWithBody(status int, body string) error {
	ctx.transport.Respond(status, body)
	return nil
}

func (ctx *dispatchContext) theGameServiceIsUnreachable() error {
	ctx.transport.Fail(errors.New("dial tcp: connection refused"))
	return nil
}

func (ctx *dispatchContext) theGameServiceHoldsEveryReply() error {
	gate := make(chan struct{})
	ctx.gate = gate
	ctx.transport.SetSendFunc(func(c context.Context, method, path string, payload interface{}) (*ports.Reply, error) {
		select {
		case <-gate:
			return &ports.Reply{StatusCode: 200, Body: []byte("This API call succeeded")}, nil
		case <-c.Done():
			return nil, c.Err()
		}
	})
	return nil
}

func (ctx *dispatchContext) theGameServiceReleasesTheHeldReply() error {
	if ctx.gate == nil {
		return fmt.Errorf("no reply is being held")
	}
	close(ctx.gate)
	ctx.gate = nil
	return nil
}

func (ctx *dispatchContext) iDispatchARequest(action string) error {
	req, err := requestFor(action)
	if err != nil {
		return err
	}
	ctx.outcome, ctx.err = ctx.dispatcher.Dispatch(context.Background(), req)
	return nil
}

func (ctx *dispatchContext) iDispatchARequestInTheBackground(action string) error {
	req, err := requestFor(action)
	if err != nil {
		return err
	}
	sentBefore := len(ctx.transport.Sent())
	done := make(chan dispatchResult, 1)
	ctx.background = append(ctx.background, done)

	go func() {
		outcome, err := ctx.dispatcher.Dispatch(context.Background(), req)
		done <- dispatchResult{outcome: outcome, err: err}
	}()

	// wait until the request has reached the transport
	deadline := time.Now().Add(waitTimeout)
	for len(ctx.transport.Sent()) == sentBefore {
		if time.Now().After(deadline) {
			return fmt.Errorf("background %s dispatch never reached the game service", action)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

func (ctx *dispatchContext) theDispatchOutcomeShouldBe(expected string) error {
	actual := outcomeName(ctx.err)
	if actual != expected {
		return fmt.Errorf("expected outcome %q but got %q (err: %v)", expected, actual, ctx.err)
	}
	if expected == "success" && ctx.outcome == nil {
		return fmt.Errorf("expected an outcome for a successful dispatch")
	}
	if expected != "success" && ctx.outcome != nil {
		return fmt.Errorf("expected no outcome for a failed dispatch, got %+v", ctx.outcome)
	}
	return nil
}

func outcomeName(err error) string {
	var (
		transport  *shared.TransportError
		rejection  *shared.BusinessRejection
		inProgress *shared.DispatchInProgressError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &rejection):
		return "rejected"
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &inProgress):
		return "in progress"
	}
	return "error: " + err.Error()
}

func (ctx *dispatchContext) thePlayerShouldSee(message string) error {
	var (
		transport *shared.TransportError
		rejection *shared.BusinessRejection
		actual    string
	)
	switch {
	case errors.As(ctx.err, &rejection):
		actual = rejection.Reason
	case errors.As(ctx.err, &transport):
		actual = transport.UserMessage()
	case ctx.err != nil:
		actual = ctx.err.Error()
	case ctx.outcome != nil:
		actual = ctx.outcome.Message
	}
	if actual != message {
		return fmt.Errorf("expected player message %q but got %q", message, actual)
	}
	return nil
}

func (ctx *dispatchContext) theDispatchMessageShouldBe(message string) error {
	if ctx.outcome == nil {
		return fmt.Errorf("expected a successful dispatch, got %v", ctx.err)
	}
	if ctx.outcome.Message != message {
		return fmt.Errorf("expected message %q but got %q", message, ctx.outcome.Message)
	}
	return nil
}

func (ctx *dispatchContext) theGameServiceShouldHaveReceivedRequests(count int) error {
	if sent := len(ctx.transport.Sent()); sent != count {
		return fmt.Errorf("expected %d requests but the game service received %d", count, sent)
	}
	return nil
}

func (ctx *dispatchContext) theBackgroundDispatchShouldSucceed() error {
	for i, done := range ctx.background {
		select {
		case res := <-done:
			if res.err != nil {
				return fmt.Errorf("background dispatch %d failed: %w", i+1, res.err)
			}
		case <-time.After(waitTimeout):
			return fmt.Errorf("background dispatch %d did not finish", i+1)
		}
	}
	ctx.background = nil
	return nil
}

func (ctx *dispatchContext) shouldNoLongerBeBusy(action string) error {
	if ctx.dispatcher.Busy(trading.Action(action)) {
		return fmt.Errorf("expected %s to be released", action)
	}
	return nil
}

// InitializeDispatchScenario registers dispatcher step definitions
func InitializeDispatchScenario(sc *godog.ScenarioContext) {
	ctx := &dispatchContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})
	sc.After(func(c context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if ctx.gate != nil {
			close(ctx.gate)
			ctx.gate = nil
		}
		return c, nil
	})

	sc.Step(`^the game service answers status (\d+) with body "([^"]*)"$`, ctx.theGameServiceAnswersStatusWithBody)
	sc.Step(`^the game service is unreachable$`, ctx.theGameServiceIsUnreachable)
	sc.Step(`^the game service holds every reply$`, ctx.theGameServiceHoldsEveryReply)
	sc.Step(`^the game service releases the held reply$`, ctx.theGameServiceReleasesTheHeldReply)
	sc.Step(`^I dispatch a "([^"]*)" request$`, ctx.iDispatchARequest)
	sc.Step(`^I dispatch a "([^"]*)" request in the background$`, ctx.iDispatchARequestInTheBackground)
	sc.Step(`^the dispatch outcome should be "([^"]*)"$`, ctx.theDispatchOutcomeShouldBe)
	sc.Step(`^the player should see "([^"]*)"$`, ctx.thePlayerShouldSee)
	sc.Step(`^the dispatch message should be "([^"]*)"$`, ctx.theDispatchMessageShouldBe)
	sc.Step(`^the game service should have received (\d+) requests?$`, ctx.theGameServiceShouldHaveReceivedRequests)
	sc.Step(`^the background dispatch should succeed$`, ctx.theBackgroundDispatchShouldSucceed)
	sc.Step(`^"([^"]*)" should no longer be busy$`, ctx.shouldNoLongerBeBusy)
}
