package trading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// Direction is the side of a speculative trade
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	if d == Sell {
		return "Sell"
	}
	return "Buy"
}

// Code is the single-letter form the broker endpoint expects
func (d Direction) Code() string {
	if d == Sell {
		return "S"
	}
	return "B"
}

// ParseDirection accepts "Buy" or "Sell"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Buy":
		return Buy, nil
	case "Sell":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown offer direction %q", s)
}

// CargoOffer is a speculative trade offer in the current system.
// Available is nil when the offer has no quantity limit.
type CargoOffer struct {
	ID        int
	TradeGood string
	BasePrice decimal.Decimal
	Price     decimal.Decimal
	Percent   int
	Available *int
	System    string
	UWP       vessel.UWP
	Stardate  vessel.Stardate
	Direction Direction
	Attempt   int
}

// Unlimited reports whether the offer places no bound on quantity
func (o CargoOffer) Unlimited() bool {
	return o.Available == nil
}

// Quote is the total price for the given number of dTons
func (o CargoOffer) Quote(dTons int) decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(dTons)))
}

// CargoType classifies a hold entry
type CargoType string

const (
	CargoSpeculative       CargoType = "Speculative Freight"
	CargoStandardFreight   CargoType = "Standard Freight"
	CargoMail              CargoType = "Mail"
	CargoSpareParts        CargoType = "Spare Parts"
	CargoVehicle           CargoType = "Vehicle"
	CargoPassengersAsCargo CargoType = "Passengers as Cargo"
	CargoMisc              CargoType = "Misc"
)

// CargoTypes lists every type the service reports
var CargoTypes = []CargoType{
	CargoSpeculative,
	CargoStandardFreight,
	CargoMail,
	CargoSpareParts,
	CargoVehicle,
	CargoPassengersAsCargo,
	CargoMisc,
}

// HoldEntry is one lot physically in the cargo hold
type HoldEntry struct {
	ID               int
	Type             CargoType
	Description      string
	DTons            int
	ValuePerTon      *decimal.Decimal
	StandardTradeLot *int
}

// FindHoldEntry returns the entry with the given id, or nil
func FindHoldEntry(entries []HoldEntry, id int) *HoldEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// FreightLot is a fixed-size standard freight consignment
type FreightLot struct {
	ID     int
	System string
	Type   string
	DTons  int
	Value  decimal.Decimal
}

// TicketDemand is the passenger market for one class on the current route
type TicketDemand struct {
	PassageName    string
	Available      int
	RevenueEach    decimal.Decimal
	TicketPrice    decimal.Decimal
	Expenses       decimal.Decimal
	SoLExpense     decimal.Decimal
	Origin         string
	Destination    string
	OriginUWP      vessel.UWP
	DestinationUWP vessel.UWP
	Stardate       vessel.Stardate
	Description    string
}

// StarSystem is a destination candidate returned by the system search
type StarSystem struct {
	Name     string
	Sector   string
	UWP      vessel.UWP
	SectorID int
	SystemID int
	Zone     string
}

func (s StarSystem) String() string {
	return fmt.Sprintf("%s (%s) %s", s.Name, s.Sector, s.UWP)
}
