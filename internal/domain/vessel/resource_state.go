package vessel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CargoHold is the vessel's cargo capacity and current fill, in dTons
type CargoHold struct {
	Capacity int
	Filled   int
}

// Free returns the remaining hold space, never negative
func (h CargoHold) Free() int {
	if h.Filled >= h.Capacity {
		return 0
	}
	return h.Capacity - h.Filled
}

// FuelTank is the vessel's fuel capacity, quantity onboard and refinement state
type FuelTank struct {
	Capacity int
	Onboard  int
	Refined  bool
}

// Headroom returns how much fuel fits before the tank is full
func (f FuelTank) Headroom() int {
	return f.Capacity - f.Onboard
}

func (f FuelTank) String() string {
	kind := "Unrefined"
	if f.Refined {
		kind = "Refined"
	}
	return fmt.Sprintf("%d of %d (%s)", f.Onboard, f.Capacity, kind)
}

// Location is the star system the vessel is currently in
type Location struct {
	System string
	UWP    UWP
}

// Stardate is an in-game timestamp
type Stardate struct {
	Day  int
	Year int
	Time string
}

func (s Stardate) String() string {
	if s.Time == "" {
		return fmt.Sprintf("%d, %d", s.Day, s.Year)
	}
	return fmt.Sprintf("%d, %d - %s", s.Day, s.Year, s.Time)
}

// Destination is the declared jump target
type Destination struct {
	Name   string
	Sector string
	System string
}

// BrokerAttempts counts broker solicitations already made in the current system
type BrokerAttempts struct {
	Buy  int
	Sell int
}

// ResourceState is a point-in-time snapshot of one vessel as reported by the
// game service. It is never modified locally; views re-fetch after every dispatch.
type ResourceState struct {
	Name                  string
	Stardate              Stardate
	Location              Location
	Cargo                 CargoHold
	Fuel                  FuelTank
	Bank                  decimal.Decimal
	PreparingForDeparture bool
	Destination           *Destination
	Passengers            Manifest
	Maintenance           Maintenance
	// Mortgage is nil when the vessel carries no mortgage
	Mortgage       *Mortgage
	BrokerAttempts BrokerAttempts
	HullSize       int
	JumpRating     int
}

// StarportCode is the single-character starport grade of the current system
func (s *ResourceState) StarportCode() string {
	if s == nil {
		return ""
	}
	return s.Location.UWP.StarportCode()
}

// HasDestination reports whether a jump target has been declared
func (s *ResourceState) HasDestination() bool {
	return s != nil && s.Destination != nil && s.Destination.Name != ""
}

// DestinationName returns the declared destination or "Unknown"
func (s *ResourceState) DestinationName() string {
	if !s.HasDestination() {
		return "Unknown"
	}
	return s.Destination.Name
}

// TradeMode describes the direction the departure flag enables
func (s *ResourceState) TradeMode() string {
	if s != nil && s.PreparingForDeparture {
		return "The ship is preparing for departure. (Buy Goods)"
	}
	return "The ship is unprepared for departure. (Sell Goods)"
}

// Validate checks the invariants the rest of the engine relies on
func (s *ResourceState) Validate() error {
	if s == nil {
		return fmt.Errorf("resource state is nil")
	}
	if s.Cargo.Capacity < 0 || s.Cargo.Filled < 0 {
		return fmt.Errorf("cargo hold values cannot be negative")
	}
	if s.Cargo.Filled > s.Cargo.Capacity {
		return fmt.Errorf("cargo filled %d exceeds capacity %d", s.Cargo.Filled, s.Cargo.Capacity)
	}
	if s.Fuel.Capacity < 0 || s.Fuel.Onboard < 0 {
		return fmt.Errorf("fuel values cannot be negative")
	}
	for _, c := range PassengerClasses {
		b := s.Passengers[c]
		if b.Berths < 0 || b.Onboard < 0 {
			return fmt.Errorf("%s berth values cannot be negative", c)
		}
		if b.Onboard > b.Berths {
			return fmt.Errorf("%s passengers %d exceed berths %d", c, b.Onboard, b.Berths)
		}
	}
	return nil
}
