package trading

import "github.com/andrescamacho/traveller-go/internal/domain/vessel"

// Identity names the game and vessel every request acts on
type Identity struct {
	GameID int
	ShipID int
}

// Action names one mutation endpoint of the game service
type Action string

const (
	ActionSpeculativePurchase Action = "SpeculativePurchase"
	ActionSpeculativeSale     Action = "SpeculativeSale"
	ActionBuyFuel             Action = "BuyFuel"
	ActionLoadStandardFreight Action = "LoadStandardFreight"
	ActionSellTickets         Action = "SellTickets"
	ActionFindBrokerOffer     Action = "FindBrokerOffer"
	ActionDeclareDestination  Action = "DeclareDestination"
	ActionPerformMaintenance  Action = "PerformMaintenance"
	ActionMoveTheShip         Action = "MoveTheShip"
	ActionPrepareForDeparture Action = "PrepareForDeparture"
	ActionRefineFuelOnboard   Action = "RefineFuelOnboard"
	ActionRollForPassengers   Action = "RollForPassengers"
)

// FuelVariant selects refined or unrefined fuel
type FuelVariant int

const (
	UnrefinedFuel FuelVariant = iota
	RefinedFuel
)

func (v FuelVariant) String() string {
	if v == RefinedFuel {
		return "refined"
	}
	return "unrefined"
}

// SearchVariant is the channel used to solicit a broker offer
type SearchVariant int

const (
	StandardSearch SearchVariant = iota
	OnlineSearch
	IllegalSearch
)

func (v SearchVariant) String() string {
	switch v {
	case OnlineSearch:
		return "online"
	case IllegalSearch:
		return "illegal"
	default:
		return "standard"
	}
}

// SkillCode is the SkillUsed value the broker endpoint expects
func (v SearchVariant) SkillCode() string {
	switch v {
	case OnlineSearch:
		return "A"
	case IllegalSearch:
		return "S"
	default:
		return "B"
	}
}

// TransactionRequest is any mutation the dispatcher can submit
type TransactionRequest interface {
	Action() Action
}

type CargoPurchase struct {
	OfferID int
	DTons   int
}

type CargoSale struct {
	CargoID int
	OfferID int
	DTons   int
}

type FuelPurchase struct {
	DTons   int
	Variant FuelVariant
}

type FreightLoad struct {
	LotID int
}

// TicketSale carries a ticket count per passenger class
type TicketSale struct {
	Tickets [len(vessel.PassengerClasses)]int
}

// Total is the number of tickets across all classes
func (t TicketSale) Total() int {
	n := 0
	for _, c := range t.Tickets {
		n += c
	}
	return n
}

type BrokerSearch struct {
	Variant   SearchVariant
	Direction Direction
}

type DestinationDeclaration struct {
	Name     string
	SectorID int
	SystemID int
}

type PerformMaintenance struct{}

type MoveShip struct{}

type PrepareForDeparture struct{}

type RefineFuel struct{}

type RollForPassengers struct{}

func (CargoPurchase) Action() Action          { return ActionSpeculativePurchase }
func (CargoSale) Action() Action              { return ActionSpeculativeSale }
func (FuelPurchase) Action() Action           { return ActionBuyFuel }
func (FreightLoad) Action() Action            { return ActionLoadStandardFreight }
func (TicketSale) Action() Action             { return ActionSellTickets }
func (BrokerSearch) Action() Action           { return ActionFindBrokerOffer }
func (DestinationDeclaration) Action() Action { return ActionDeclareDestination }
func (PerformMaintenance) Action() Action     { return ActionPerformMaintenance }
func (MoveShip) Action() Action               { return ActionMoveTheShip }
func (PrepareForDeparture) Action() Action    { return ActionPrepareForDeparture }
func (RefineFuel) Action() Action             { return ActionRefineFuelOnboard }
func (RollForPassengers) Action() Action      { return ActionRollForPassengers }
