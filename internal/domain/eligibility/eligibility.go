// Package eligibility decides which transaction variants a vessel is offered.
// Everything here is a pure function of the vessel's environment; malformed
// inputs degrade to "nothing eligible" rather than failing.
package eligibility

import (
	"strings"

	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

const onlineSearchMinTechLevel = 8

// FuelOptions is the set of fuel variants sold at a starport
type FuelOptions struct {
	Refined   bool
	Unrefined bool
}

// Any reports whether fuel can be bought at all
func (o FuelOptions) Any() bool {
	return o.Refined || o.Unrefined
}

// Allows reports whether the variant is on sale
func (o FuelOptions) Allows(v trading.FuelVariant) bool {
	if v == trading.RefinedFuel {
		return o.Refined
	}
	return o.Unrefined
}

// Fuel maps a starport code to the fuel variants on sale.
// Refined fuel needs A or B; unrefined needs A through D.
func Fuel(starportCode string) FuelOptions {
	switch strings.TrimSpace(starportCode) {
	case "A", "B":
		return FuelOptions{Refined: true, Unrefined: true}
	case "C", "D":
		return FuelOptions{Unrefined: true}
	}
	return FuelOptions{}
}

// DefaultFuel prefers refined fuel when it is on sale. ok is false when
// nothing is on sale.
func DefaultFuel(o FuelOptions) (variant trading.FuelVariant, ok bool) {
	switch {
	case o.Refined:
		return trading.RefinedFuel, true
	case o.Unrefined:
		return trading.UnrefinedFuel, true
	}
	return trading.UnrefinedFuel, false
}

// SearchOptions is the set of broker search channels available
type SearchOptions struct {
	Standard bool
	Online   bool
	// Illegal is reserved and never enabled
	Illegal bool
}

// Allows reports whether the variant may be used
func (o SearchOptions) Allows(v trading.SearchVariant) bool {
	switch v {
	case trading.OnlineSearch:
		return o.Online
	case trading.IllegalSearch:
		return o.Illegal
	default:
		return o.Standard
	}
}

// BrokerSearch enables online search when the system profile's tech level
// digit is at least 8. A missing or non-hex digit disables it.
func BrokerSearch(uwp vessel.UWP) SearchOptions {
	level, ok := uwp.TechLevel()
	return SearchOptions{
		Standard: true,
		Online:   ok && level >= onlineSearchMinTechLevel,
	}
}

// DefaultSearch selects online search when available, otherwise standard
func DefaultSearch(o SearchOptions) trading.SearchVariant {
	if o.Online {
		return trading.OnlineSearch
	}
	return trading.StandardSearch
}

// TradeDirection is Buy while preparing for departure and Sell otherwise
func TradeDirection(state *vessel.ResourceState) trading.Direction {
	if state != nil && state.PreparingForDeparture {
		return trading.Buy
	}
	return trading.Sell
}

// Verdict is the outcome of a gate check; Reason is empty when allowed
type Verdict struct {
	Allowed bool
	Reason  string
}

func allow() Verdict             { return Verdict{Allowed: true} }
func deny(reason string) Verdict { return Verdict{Reason: reason} }

const noShipData = "ship data unavailable"

// CargoPurchase is allowed only while preparing for departure
func CargoPurchase(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if !state.PreparingForDeparture {
		return deny("goods are only bought while preparing for departure")
	}
	return allow()
}

// CargoSale is allowed only while not preparing for departure
func CargoSale(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if state.PreparingForDeparture {
		return deny("goods cannot be sold while preparing for departure")
	}
	return allow()
}

// FreightLoad needs departure preparation and a declared destination
func FreightLoad(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if !state.PreparingForDeparture {
		return deny("freight is only loaded while preparing for departure")
	}
	if !state.HasDestination() {
		return deny("declare a destination before loading freight")
	}
	return allow()
}

// TicketSale needs a declared destination
func TicketSale(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if !state.HasDestination() {
		return deny("declare a destination before selling tickets")
	}
	return allow()
}

// PrepareForDeparture is refused when the vessel is already preparing
func PrepareForDeparture(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if state.PreparingForDeparture {
		return deny("the ship is already preparing for departure")
	}
	return allow()
}

// MoveShip needs a declared destination
func MoveShip(state *vessel.ResourceState) Verdict {
	if state == nil {
		return deny(noShipData)
	}
	if !state.HasDestination() {
		return deny("no destination has been declared")
	}
	return allow()
}
