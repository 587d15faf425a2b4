// Package constraint computes the legal quantity bounds for each transaction
// kind from a vessel snapshot. Resolvers never fail: a nil snapshot or
// missing input yields an empty range.
package constraint

import (
	"math"
	"sort"

	"github.com/andrescamacho/traveller-go/internal/domain/eligibility"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
	"github.com/andrescamacho/traveller-go/pkg/utils"
)

// Range is the inclusive quantity range [0, Max]
type Range struct {
	Max int
}

// Clamp bounds v to the range
func (r Range) Clamp(v int) int {
	return utils.Clamp(v, 0, r.Max)
}

// Empty reports whether no positive quantity is legal
func (r Range) Empty() bool {
	return r.Max < 1
}

func bounded(max int) Range {
	return Range{Max: utils.Max(0, max)}
}

// CargoPurchase is bound by hold space and, when limited, the offer's quantity
func CargoPurchase(state *vessel.ResourceState, offer *trading.CargoOffer) Range {
	if state == nil || offer == nil {
		return Range{}
	}
	max := state.Cargo.Capacity - state.Cargo.Filled
	if offer.Available != nil {
		max = utils.Min(max, *offer.Available)
	}
	return bounded(max)
}

// CargoSale is bound only by what the selected hold entry physically holds
func CargoSale(state *vessel.ResourceState, entry *trading.HoldEntry) Range {
	if state == nil || entry == nil {
		return Range{}
	}
	return bounded(entry.DTons)
}

// FuelPurchase is bound by tank headroom when the variant is on sale here
func FuelPurchase(state *vessel.ResourceState, variant trading.FuelVariant) Range {
	if state == nil {
		return Range{}
	}
	if !eligibility.Fuel(state.StarportCode()).Allows(variant) {
		return Range{}
	}
	return bounded(state.Fuel.Headroom())
}

// CanLoad reports whether a lot fits the remaining hold space
func CanLoad(state *vessel.ResourceState, lot trading.FreightLot) bool {
	if state == nil {
		return false
	}
	return lot.DTons <= state.Cargo.Capacity-state.Cargo.Filled
}

// LoadableFreight returns the lots that fit, smallest first. Lots of equal
// size keep their original order. The input slice is not modified.
func LoadableFreight(state *vessel.ResourceState, lots []trading.FreightLot) []trading.FreightLot {
	fits := make([]trading.FreightLot, 0, len(lots))
	for _, lot := range lots {
		if CanLoad(state, lot) {
			fits = append(fits, lot)
		}
	}
	sort.SliceStable(fits, func(i, j int) bool { return fits[i].DTons < fits[j].DTons })
	return fits
}

// Demand returns the passengers available for a class, matched by passage
// name. No matching record means no demand.
func Demand(class vessel.PassengerClass, demand []trading.TicketDemand) int {
	name := class.PassageName()
	if name == "" {
		return 0
	}
	for _, d := range demand {
		if d.PassageName == name {
			return d.Available
		}
	}
	return 0
}

// TicketSale is min(berths - onboard, demand) for one class, floored at 0
func TicketSale(state *vessel.ResourceState, class vessel.PassengerClass, demand []trading.TicketDemand) Range {
	if state == nil || !class.Valid() {
		return Range{}
	}
	berth := state.Passengers.Class(class)
	return bounded(utils.Min(berth.Berths-berth.Onboard, Demand(class, demand)))
}

// TicketSaleDisabled is true when every class has onboard >= min(berths, demand)
func TicketSaleDisabled(state *vessel.ResourceState, demand []trading.TicketDemand) bool {
	if state == nil {
		return true
	}
	for _, class := range vessel.PassengerClasses {
		berth := state.Passengers.Class(class)
		if berth.Onboard < utils.Min(berth.Berths, Demand(class, demand)) {
			return false
		}
	}
	return true
}

// ClampText reads free-form quantity input the way an integer field does:
// leading whitespace and an optional sign, then as many digits as follow.
// Anything unparseable reads as 0. The result is clamped to the range.
func ClampText(text string, r Range) int {
	return r.Clamp(ParseQuantity(text))
}

// ParseQuantity parses the leading integer of text, saturating on overflow.
// It returns 0 when text has no leading digits.
func ParseQuantity(text string) int {
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	negative := false
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		negative = text[i] == '-'
		i++
	}
	n := 0
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		d := int(text[i] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			break
		}
		n = n*10 + d
	}
	if negative {
		return -n
	}
	return n
}
