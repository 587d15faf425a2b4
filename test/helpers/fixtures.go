package helpers

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// TestIdentity is the game/ship pair used across tests
var TestIdentity = trading.Identity{GameID: 1, ShipID: 1}

// NewResourceState builds a consistent vessel snapshot docked at a class A
// starport with a tech level C profile
func NewResourceState() *vessel.ResourceState {
	state := &vessel.ResourceState{
		Name:     "Beowulf",
		Stardate: vessel.Stardate{Day: 12, Year: 1105, Time: "08:00"},
		Location: vessel.Location{System: "Regina", UWP: "A788899C"},
		Cargo:    vessel.CargoHold{Capacity: 82, Filled: 20},
		Fuel:     vessel.FuelTank{Capacity: 40, Onboard: 10},
		Bank:     decimal.NewFromInt(125000),
		Maintenance: vessel.Maintenance{
			Day:     1,
			Year:    1105,
			DueDays: 30,
		},
		HullSize:   200,
		JumpRating: 2,
	}
	state.Passengers[vessel.Low] = vessel.Berth{Berths: 20, Onboard: 2}
	state.Passengers[vessel.Middle] = vessel.Berth{Berths: 4, Onboard: 1}
	state.Passengers[vessel.High] = vessel.Berth{Berths: 4}
	return state
}

// WithStarport replaces the system profile code
func WithStarport(state *vessel.ResourceState, uwp string) *vessel.ResourceState {
	state.Location.UWP = vessel.UWP(uwp)
	return state
}

// WithDestination declares a destination on state
func WithDestination(state *vessel.ResourceState, name string) *vessel.ResourceState {
	state.Destination = &vessel.Destination{Name: name, Sector: "Spinward Marches", System: "1705"}
	return state
}

// Preparing sets the departure preparation flag
func Preparing(state *vessel.ResourceState) *vessel.ResourceState {
	state.PreparingForDeparture = true
	return state
}

// Demand builds a TicketDemand row for class
func Demand(class vessel.PassengerClass, available int) trading.TicketDemand {
	return trading.TicketDemand{
		PassageName: class.PassageName(),
		Available:   available,
		RevenueEach: decimal.NewFromInt(1000),
		TicketPrice: decimal.NewFromInt(1000),
		Origin:      "Regina",
		Destination: "Efate",
	}
}
