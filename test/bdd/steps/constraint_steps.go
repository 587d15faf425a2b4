package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/traveller-go/internal/domain/constraint"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

// rowValues returns the cell values of a data table row
func rowValues(row *messages.PickleTableRow) []string {
	values := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		values[i] = cell.Value
	}
	return values
}

// intCells parses every cell after the first as an integer
func intCells(row *messages.PickleTableRow) (string, []int, error) {
	values := rowValues(row)
	ints := make([]int, 0, len(values)-1)
	for _, v := range values[1:] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", nil, fmt.Errorf("invalid number %q in row %v", v, values)
		}
		ints = append(ints, n)
	}
	return values[0], ints, nil
}

type constraintContext struct {
	state   *vessel.ResourceState
	offer   *trading.CargoOffer
	entry   *trading.HoldEntry
	demand  []trading.TicketDemand
	freight []trading.FreightLot

	rng     constraint.Range
	clamped int
}

func (ctx *constraintContext) reset() {
	ctx.state = helpers.NewResourceState()
	ctx.offer = nil
	ctx.entry = nil
	ctx.demand = nil
	ctx.freight = nil
	ctx.rng = constraint.Range{}
	ctx.clamped = 0
}

func (ctx *constraintContext) aVesselWithACargoHoldOfHolding(capacity, filled int) error {
	ctx.state.Cargo = vessel.CargoHold{Capacity: capacity, Filled: filled}
	return nil
}

func (ctx *constraintContext) aFuelTankOfHolding(capacity, onboard int) error {
	ctx.state.Fuel = vessel.FuelTank{Capacity: capacity, Onboard: onboard}
	return nil
}

func (ctx *constraintContext) aBuyOfferWithAvailable(available string) error {
	ctx.offer = &trading.CargoOffer{ID: 1, TradeGood: "Electronics", Direction: trading.Buy}
	if available == "unlimited" {
		return nil
	}
	n, err := strconv.Atoi(available)
	if err != nil {
		return fmt.Errorf("invalid availability %q: %w", available, err)
	}
	ctx.offer.Available = &n
	return nil
}

func (ctx *constraintContext) aHoldEntryOf(dtons int) error {
	ctx.entry = &trading.HoldEntry{ID: 21, Type: trading.CargoSpeculative, Description: "Electronics", DTons: dtons}
	return nil
}

func (ctx *constraintContext) theVesselIsDockedAtAClassStarport(class string) error {
	helpers.WithStarport(ctx.state, class+"788899C")
	return nil
}

func (ctx *constraintContext) iResolveTheCargoPurchaseRange() error {
	ctx.rng = constraint.CargoPurchase(ctx.state, ctx.offer)
	return nil
}

func (ctx *constraintContext) iResolveTheCargoSaleRange() error {
	ctx.rng = constraint.CargoSale(ctx.state, ctx.entry)
	return nil
}

func (ctx *constraintContext) iResolveTheFuelRange(variant string) error {
	switch variant {
	case "refined":
		ctx.rng = constraint.FuelPurchase(ctx.state, trading.RefinedFuel)
	case "unrefined":
		ctx.rng = constraint.FuelPurchase(ctx.state, trading.UnrefinedFuel)
	default:
		return fmt.Errorf("unknown fuel variant %q", variant)
	}
	return nil
}

func (ctx *constraintContext) iEnterTheQuantity(text string) error {
	ctx.clamped = constraint.ClampText(text, ctx.rng)
	return nil
}

func (ctx *constraintContext) theMaximumQuantityShouldBe(max int) error {
	if ctx.rng.Max != max {
		return fmt.Errorf("expected maximum %d but got %d", max, ctx.rng.Max)
	}
	return nil
}

func (ctx *constraintContext) theClampedQuantityShouldBe(value int) error {
	if ctx.clamped != value {
		return fmt.Errorf("expected clamped quantity %d but got %d", value, ctx.clamped)
	}
	return nil
}

func (ctx *constraintContext) theBerths(table *godog.Table) error {
	ctx.state.Passengers = vessel.Manifest{}
	for _, row := range table.Rows[1:] {
		name, counts, err := intCells(row)
		if err != nil {
			return err
		}
		class, err := vessel.ParsePassengerClass(name)
		if err != nil {
			return err
		}
		ctx.state.Passengers[class] = vessel.Berth{Berths: counts[0], Onboard: counts[1]}
	}
	return nil
}

func (ctx *constraintContext) passengersWaiting(table *godog.Table) error {
	ctx.demand = nil
	for _, row := range table.Rows[1:] {
		name, counts, err := intCells(row)
		if err != nil {
			return err
		}
		class, err := vessel.ParsePassengerClass(name)
		if err != nil {
			return err
		}
		ctx.demand = append(ctx.demand, helpers.Demand(class, counts[0]))
	}
	return nil
}

func (ctx *constraintContext) theTicketLimitsShouldBe(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name, counts, err := intCells(row)
		if err != nil {
			return err
		}
		class, err := vessel.ParsePassengerClass(name)
		if err != nil {
			return err
		}
		if got := constraint.TicketSale(ctx.state, class, ctx.demand).Max; got != counts[0] {
			return fmt.Errorf("expected %s limit %d but got %d", class, counts[0], got)
		}
	}
	return nil
}

func (ctx *constraintContext) ticketSalesShouldBe(status string) error {
	disabled := constraint.TicketSaleDisabled(ctx.state, ctx.demand)
	if disabled != (status == "disabled") {
		return fmt.Errorf("expected ticket sales to be %s", status)
	}
	return nil
}

func (ctx *constraintContext) freightLots(table *godog.Table) error {
	ctx.freight = nil
	for _, row := range table.Rows[1:] {
		values := rowValues(row)
		id, err := strconv.Atoi(values[0])
		if err != nil {
			return err
		}
		dtons, err := strconv.Atoi(values[1])
		if err != nil {
			return err
		}
		ctx.freight = append(ctx.freight, trading.FreightLot{ID: id, System: "Efate", DTons: dtons})
	}
	return nil
}

func (ctx *constraintContext) theLoadableLotsShouldBe(expected string) error {
	lots := constraint.LoadableFreight(ctx.state, ctx.freight)
	ids := make([]string, len(lots))
	for i, lot := range lots {
		ids[i] = strconv.Itoa(lot.ID)
	}
	if actual := strings.Join(ids, ","); actual != expected {
		return fmt.Errorf("expected loadable lots %q but got %q", expected, actual)
	}
	return nil
}

// InitializeConstraintScenario registers quantity constraint step definitions
func InitializeConstraintScenario(sc *godog.ScenarioContext) {
	ctx := &constraintContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a vessel with a cargo hold of (\d+) dTons holding (\d+)$`, ctx.aVesselWithACargoHoldOfHolding)
	sc.Step(`^a fuel tank of (\d+) dTons holding (\d+)$`, ctx.aFuelTankOfHolding)
	sc.Step(`^a buy offer with (unlimited|\d+) dTons available$`, ctx.aBuyOfferWithAvailable)
	sc.Step(`^a hold entry of (\d+) dTons$`, ctx.aHoldEntryOf)
	sc.Step(`^the vessel is docked at a class "([^"]*)" starport$`, ctx.theVesselIsDockedAtAClassStarport)
	sc.Step(`^I resolve the cargo purchase range$`, ctx.iResolveTheCargoPurchaseRange)
	sc.Step(`^I resolve the cargo sale range$`, ctx.iResolveTheCargoSaleRange)
	sc.Step(`^I resolve the "([^"]*)" fuel range$`, ctx.iResolveTheFuelRange)
	sc.Step(`^I enter the quantity "([^"]*)"$`, ctx.iEnterTheQuantity)
	sc.Step(`^the maximum quantity should be (\d+)$`, ctx.theMaximumQuantityShouldBe)
	sc.Step(`^the clamped quantity should be (\d+)$`, ctx.theClampedQuantityShouldBe)
	sc.Step(`^the berths:$`, ctx.theBerths)
	sc.Step(`^passengers waiting:$`, ctx.passengersWaiting)
	sc.Step(`^the ticket limits should be:$`, ctx.theTicketLimitsShouldBe)
	sc.Step(`^ticket sales should be (enabled|disabled)$`, ctx.ticketSalesShouldBe)
	sc.Step(`^freight lots:$`, ctx.freightLots)
	sc.Step(`^the loadable lots should be "([^"]*)"$`, ctx.theLoadableLotsShouldBe)
}
