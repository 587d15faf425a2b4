package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

type eligibilityContext struct {
	state   *vessel.ResourceState
	fuel    eligibility.FuelOptions
	search  eligibility.SearchOptions
	verdict eligibility.Verdict
}

func (ctx *eligibilityContext) reset() {
	ctx.state = helpers.NewResourceState()
	ctx.fuel = eligibility.FuelOptions{}
	ctx.search = eligibility.SearchOptions{}
	ctx.verdict = eligibility.Verdict{}
}

func offered(expected string, actual bool) error {
	if actual != (expected == "offered") {
		return fmt.Errorf("expected %s", expected)
	}
	return nil
}

func (ctx *eligibilityContext) iCheckTheFuelSoldAtAClassStarport(class string) error {
	ctx.fuel = eligibility.Fuel(class)
	return nil
}

func (ctx *eligibilityContext) refinedFuelShouldBe(expected string) error {
	if err := offered(expected, ctx.fuel.Allows(trading.RefinedFuel)); err != nil {
		return fmt.Errorf("refined fuel: %w", err)
	}
	return nil
}

func (ctx *eligibilityContext) unrefinedFuelShouldBe(expected string) error {
	if err := offered(expected, ctx.fuel.Allows(trading.UnrefinedFuel)); err != nil {
		return fmt.Errorf("unrefined fuel: %w", err)
	}
	return nil
}

func (ctx *eligibilityContext) theDefaultFuelShouldBe(expected string) error {
	variant, ok := eligibility.DefaultFuel(ctx.fuel)
	actual := "none"
	if ok {
		actual = variant.String()
	}
	if actual != expected {
		return fmt.Errorf("expected default fuel %q but got %q", expected, actual)
	}
	return nil
}

func (ctx *eligibilityContext) iCheckTheBrokerChannelsInASystemWithProfile(uwp string) error {
	ctx.search = eligibility.BrokerSearch(vessel.UWP(uwp))
	return nil
}

func (ctx *eligibilityContext) onlineSearchShouldBe(expected string) error {
	if err := offered(expected, ctx.search.Allows(trading.OnlineSearch)); err != nil {
		return fmt.Errorf("online search: %w", err)
	}
	return nil
}

func (ctx *eligibilityContext) illegalSearchShouldBe(expected string) error {
	if err := offered(expected, ctx.search.Allows(trading.IllegalSearch)); err != nil {
		return fmt.Errorf("illegal search: %w", err)
	}
	return nil
}

func (ctx *eligibilityContext) theDefaultSearchShouldBe(expected string) error {
	if actual := eligibility.DefaultSearch(ctx.search).String(); actual != expected {
		return fmt.Errorf("expected default search %q but got %q", expected, actual)
	}
	return nil
}

func (ctx *eligibilityContext) aDockedVesselThat(preparing, destination string) error {
	ctx.state.PreparingForDeparture = preparing == "is preparing for departure"
	if destination != "" {
		helpers.WithDestination(ctx.state, "Efate")
	}
	return nil
}

func (ctx *eligibilityContext) theTradeDirectionShouldBe(expected string) error {
	if actual := eligibility.TradeDirection(ctx.state).String(); actual != expected {
		return fmt.Errorf("expected trade direction %q but got %q", expected, actual)
	}
	return nil
}

func (ctx *eligibilityContext) iCheckWhetherIsAllowed(operation string) error {
	gates := map[string]func(*vessel.ResourceState) eligibility.Verdict{
		"cargo purchase":        eligibility.CargoPurchase,
		"cargo sale":            eligibility.CargoSale,
		"freight load":          eligibility.FreightLoad,
		"ticket sale":           eligibility.TicketSale,
		"prepare for departure": eligibility.PrepareForDeparture,
		"move ship":             eligibility.MoveShip,
	}
	gate, ok := gates[operation]
	if !ok {
		return fmt.Errorf("unknown operation %q", operation)
	}
	ctx.verdict = gate(ctx.state)
	return nil
}

func (ctx *eligibilityContext) theOperationShouldBe(expected string) error {
	if ctx.verdict.Allowed != (expected == "allowed") {
		return fmt.Errorf("expected operation to be %s (reason: %q)", expected, ctx.verdict.Reason)
	}
	if ctx.verdict.Allowed && ctx.verdict.Reason != "" {
		return fmt.Errorf("an allowed verdict should carry no reason, got %q", ctx.verdict.Reason)
	}
	if !ctx.verdict.Allowed && ctx.verdict.Reason == "" {
		return fmt.Errorf("a refusal should carry a reason")
	}
	return nil
}

func (ctx *eligibilityContext) theRefusalReasonShouldBe(expected string) error {
	if ctx.verdict.Reason != expected {
		return fmt.Errorf("expected reason %q but got %q", expected, ctx.verdict.Reason)
	}
	return nil
}

// InitializeEligibilityScenario registers eligibility step definitions
func InitializeEligibilityScenario(sc *godog.ScenarioContext) {
	ctx := &eligibilityContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^I check the fuel sold at a class "([^"]*)" starport$`, ctx.iCheckTheFuelSoldAtAClassStarport)
	sc.Step(`^refined fuel should be (offered|not offered)$`, ctx.refinedFuelShouldBe)
	sc.Step(`^unrefined fuel should be (offered|not offered)$`, ctx.unrefinedFuelShouldBe)
	sc.Step(`^the default fuel should be "([^"]*)"$`, ctx.theDefaultFuelShouldBe)
	sc.Step(`^I check the broker channels in a system with profile "([^"]*)"$`, ctx.iCheckTheBrokerChannelsInASystemWithProfile)
	sc.Step(`^online search should be (offered|not offered)$`, ctx.onlineSearchShouldBe)
	sc.Step(`^illegal search should be (offered|not offered)$`, ctx.illegalSearchShouldBe)
	sc.Step(`^the default search should be "([^"]*)"$`, ctx.theDefaultSearchShouldBe)
	sc.Step(`^a docked vessel that (is preparing for departure|is not preparing)( with a destination)?$`, ctx.aDockedVesselThat)
	sc.Step(`^the trade direction should be "([^"]*)"$`, ctx.theTradeDirectionShouldBe)
	sc.Step(`^I check whether "([^"]*)" is allowed$`, ctx.iCheckWhetherIsAllowed)
	sc.Step(`^the operation should be (allowed|refused)$`, ctx.theOperationShouldBe)
	sc.Step(`^the refusal reason should be "([^"]*)"$`, ctx.theRefusalReasonShouldBe)
}
