package api

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/domain/crew"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// Wire shapes of the game-state service. Pointer fields tagged "required"
// must be present; plain pointers and NullDecimal may be null.

type shipDataDTO struct {
	ShipName                  *string             `json:"ShipName" validate:"required"`
	PreparingForDeparture     *bool               `json:"PreparingForDeparture" validate:"required"`
	Day                       *int                `json:"Day" validate:"required"`
	Year                      *int                `json:"Year" validate:"required"`
	Time                      *string             `json:"Time" validate:"required"`
	System                    *string             `json:"System" validate:"required"`
	SystemUWP                 *string             `json:"SystemUWP" validate:"required"`
	DeclaredDestination       *string             `json:"DeclaredDestination"`
	DeclaredDestinationSector *string             `json:"DeclaredDestinationSector"`
	DeclaredDestinationSystem *string             `json:"DeclaredDestinationSystem"`
	FuelOnboard               *int                `json:"FuelOnboard" validate:"required,min=0"`
	FuelCapacity              *int                `json:"FuelCapacity" validate:"required,min=0"`
	RefinedFuel               *bool               `json:"RefinedFuel" validate:"required"`
	CargoSpaceFilled          *int                `json:"CargoSpaceFilled" validate:"required,min=0"`
	CargoSpace                *int                `json:"CargoSpace" validate:"required,min=0"`
	ShipsBank                 *decimal.Decimal    `json:"ShipsBank" validate:"required"`
	MaintenanceDay            *int                `json:"MaintenanceDay" validate:"required"`
	MaintenanceYear           *int                `json:"MaintenanceYear" validate:"required"`
	MaintenanceDue            *int                `json:"MaintenanceDue" validate:"required"`
	MortgageYear              *int                `json:"MortgageYear"`
	MortgageDay               *int                `json:"MortgageDay"`
	MortgageDue               *int                `json:"MortgageDue"`
	Payments                  *int                `json:"Payments" validate:"required"`
	Mortgage                  decimal.NullDecimal `json:"Mortgage"`
	HullSize                  *int                `json:"HullSize" validate:"required"`
	JDrive                    *int                `json:"JDrive" validate:"required"`
	LowBerths                 *int                `json:"LowBerths" validate:"required,min=0"`
	LowPassengers             *int                `json:"LowPassengers" validate:"required,min=0"`
	Basic                     *int                `json:"Basic" validate:"required,min=0"`
	BasicPassengers           *int                `json:"BasicPassengers" validate:"required,min=0"`
	Middle                    *int                `json:"Middle" validate:"required,min=0"`
	MiddlePassengers          *int                `json:"MiddlePassengers" validate:"required,min=0"`
	High                      *int                `json:"High" validate:"required,min=0"`
	HighPassengers            *int                `json:"HighPassengers" validate:"required,min=0"`
	Luxury                    *int                `json:"Luxury" validate:"required,min=0"`
	LuxuryPassengers          *int                `json:"LuxuryPassengers" validate:"required,min=0"`
	BuyBrokerAttempts         *int                `json:"BuyBrokerAttempts"`
	SellBrokerAttempts        *int                `json:"SellBrokerAttempts"`
}

func (d *shipDataDTO) toDomain() *vessel.ResourceState {
	state := &vessel.ResourceState{
		Name:     *d.ShipName,
		Stardate: vessel.Stardate{Day: *d.Day, Year: *d.Year, Time: *d.Time},
		Location: vessel.Location{System: *d.System, UWP: vessel.UWP(*d.SystemUWP)},
		Cargo:    vessel.CargoHold{Capacity: *d.CargoSpace, Filled: *d.CargoSpaceFilled},
		Fuel: vessel.FuelTank{
			Capacity: *d.FuelCapacity,
			Onboard:  *d.FuelOnboard,
			Refined:  *d.RefinedFuel,
		},
		Bank:                  *d.ShipsBank,
		PreparingForDeparture: *d.PreparingForDeparture,
		Maintenance: vessel.Maintenance{
			Day:     *d.MaintenanceDay,
			Year:    *d.MaintenanceYear,
			DueDays: *d.MaintenanceDue,
		},
		BrokerAttempts: vessel.BrokerAttempts{
			Buy:  derefInt(d.BuyBrokerAttempts),
			Sell: derefInt(d.SellBrokerAttempts),
		},
		HullSize:   *d.HullSize,
		JumpRating: *d.JDrive,
	}

	state.Passengers[vessel.Low] = vessel.Berth{Berths: *d.LowBerths, Onboard: *d.LowPassengers}
	state.Passengers[vessel.Basic] = vessel.Berth{Berths: *d.Basic, Onboard: *d.BasicPassengers}
	state.Passengers[vessel.Middle] = vessel.Berth{Berths: *d.Middle, Onboard: *d.MiddlePassengers}
	state.Passengers[vessel.High] = vessel.Berth{Berths: *d.High, Onboard: *d.HighPassengers}
	state.Passengers[vessel.Luxury] = vessel.Berth{Berths: *d.Luxury, Onboard: *d.LuxuryPassengers}

	if d.DeclaredDestination != nil && *d.DeclaredDestination != "" {
		state.Destination = &vessel.Destination{
			Name:   *d.DeclaredDestination,
			Sector: derefString(d.DeclaredDestinationSector),
			System: derefString(d.DeclaredDestinationSystem),
		}
	}

	// A null mortgage year means the ship carries no mortgage at all
	if d.MortgageYear != nil {
		state.Mortgage = &vessel.Mortgage{
			Day:      derefInt(d.MortgageDay),
			Year:     *d.MortgageYear,
			DueDays:  d.MortgageDue,
			Payments: *d.Payments,
			Amount:   d.Mortgage.Decimal,
		}
	}
	return state
}

type cargoDTO struct {
	CargoID          *int                `json:"CargoID" validate:"required"`
	CargoType        *string             `json:"CargoType" validate:"required,oneof='Speculative Freight' 'Standard Freight' 'Mail' 'Spare Parts' 'Vehicle' 'Passengers as Cargo' 'Misc'"`
	Description      *string             `json:"Description" validate:"required"`
	DTons            *int                `json:"dTons" validate:"required"`
	ValuePerTon      decimal.NullDecimal `json:"ValuePerTon"`
	StandardTradeLot *int                `json:"StandardTradeLot"`
}

func (d *cargoDTO) toDomain() trading.HoldEntry {
	entry := trading.HoldEntry{
		ID:               *d.CargoID,
		Type:             trading.CargoType(*d.CargoType),
		Description:      *d.Description,
		DTons:            *d.DTons,
		StandardTradeLot: d.StandardTradeLot,
	}
	if d.ValuePerTon.Valid {
		v := d.ValuePerTon.Decimal
		entry.ValuePerTon = &v
	}
	return entry
}

type offerDTO struct {
	OfferID        *int             `json:"OfferId" validate:"required"`
	TradeGood      *string          `json:"TradeGood" validate:"required"`
	BasePrice      *decimal.Decimal `json:"BasePrice" validate:"required"`
	DTonsAvailable *int             `json:"dTonsAvailable"`
	Price          *decimal.Decimal `json:"Price" validate:"required"`
	Percent        *int             `json:"Percent" validate:"required"`
	StarSystem     *string          `json:"StarSystem" validate:"required"`
	UWP            *string          `json:"UWP" validate:"required"`
	Day            *int             `json:"Day" validate:"required"`
	Year           *int             `json:"Year" validate:"required"`
	Time           *string          `json:"Time" validate:"required"`
	OfferType      *string          `json:"OfferType" validate:"required,oneof=Buy Sell"`
	Attempt        *int             `json:"Attempt" validate:"required"`
}

func (d *offerDTO) toDomain() trading.CargoOffer {
	// OfferType has already been checked by the oneof rule
	direction, _ := trading.ParseDirection(*d.OfferType)
	return trading.CargoOffer{
		ID:        *d.OfferID,
		TradeGood: *d.TradeGood,
		BasePrice: *d.BasePrice,
		Price:     *d.Price,
		Percent:   *d.Percent,
		Available: d.DTonsAvailable,
		System:    *d.StarSystem,
		UWP:       vessel.UWP(*d.UWP),
		Stardate:  vessel.Stardate{Day: *d.Day, Year: *d.Year, Time: *d.Time},
		Direction: direction,
		Attempt:   *d.Attempt,
	}
}

type passengersDTO struct {
	PassageName         *string          `json:"PassageName" validate:"required"`
	PassengersAvailable *int             `json:"PassengersAvailable" validate:"required"`
	TotalRevenueEach    *decimal.Decimal `json:"TotalRevenueEach" validate:"required"`
	TicketPrice         *decimal.Decimal `json:"TicketPrice" validate:"required"`
	Expenses            *decimal.Decimal `json:"Expenses" validate:"required"`
	SoLExpense          *decimal.Decimal `json:"SoLExpense" validate:"required"`
	Origin              *string          `json:"Origin" validate:"required"`
	Destination         *string          `json:"Destination" validate:"required"`
	OriginUWP           *string          `json:"OriginUWP" validate:"required"`
	DestinationUWP      *string          `json:"DestinationUWP" validate:"required"`
	Day                 *int             `json:"Day" validate:"required"`
	Year                *int             `json:"Year" validate:"required"`
	Time                *string          `json:"Time" validate:"required"`
	Description         *string          `json:"Description"`
}

func (d *passengersDTO) toDomain() trading.TicketDemand {
	return trading.TicketDemand{
		PassageName:    *d.PassageName,
		Available:      *d.PassengersAvailable,
		RevenueEach:    *d.TotalRevenueEach,
		TicketPrice:    *d.TicketPrice,
		Expenses:       *d.Expenses,
		SoLExpense:     *d.SoLExpense,
		Origin:         *d.Origin,
		Destination:    *d.Destination,
		OriginUWP:      vessel.UWP(*d.OriginUWP),
		DestinationUWP: vessel.UWP(*d.DestinationUWP),
		Stardate:       vessel.Stardate{Day: *d.Day, Year: *d.Year, Time: *d.Time},
		Description:    derefString(d.Description),
	}
}

type freightDTO struct {
	LotID   *int    `json:"LotID" validate:"required"`
	System  *string `json:"System" validate:"required"`
	LotType *string `json:"LotType" validate:"required"`
	DTons   *int    `json:"dTons" validate:"required,min=0,max=255"`
	Value   *int    `json:"Value" validate:"required"`
}

func (d *freightDTO) toDomain() trading.FreightLot {
	return trading.FreightLot{
		ID:     *d.LotID,
		System: *d.System,
		Type:   *d.LotType,
		DTons:  *d.DTons,
		Value:  decimal.NewFromInt(int64(*d.Value)),
	}
}

type starSystemDTO struct {
	System   *string `json:"System" validate:"required"`
	Sector   *string `json:"Sector" validate:"required"`
	UWP      *string `json:"UWP" validate:"required"`
	SectorID *int    `json:"SectorID" validate:"required"`
	SystemID *int    `json:"SystemID" validate:"required"`
	Zone     *string `json:"Zone" validate:"required"`
}

func (d *starSystemDTO) toDomain() trading.StarSystem {
	return trading.StarSystem{
		Name:     *d.System,
		Sector:   *d.Sector,
		UWP:      vessel.UWP(*d.UWP),
		SectorID: *d.SectorID,
		SystemID: *d.SystemID,
		Zone:     *d.Zone,
	}
}

type ledgerDTO struct {
	BankTransactionID *int                `json:"BankTransactionId" validate:"required"`
	Day               *int                `json:"Day" validate:"required"`
	Year              *int                `json:"Year" validate:"required"`
	Time              *string             `json:"Time" validate:"required"`
	Description       *string             `json:"Description" validate:"required"`
	RunningTotal      *decimal.Decimal    `json:"RunningTotal" validate:"required"`
	Revenue           decimal.NullDecimal `json:"Revenue"`
	Expense           decimal.NullDecimal `json:"Expense"`
	StarSystem        *string             `json:"StarSystem" validate:"required"`
	SystemUWP         *string             `json:"SystemUWP" validate:"required"`
}

func (d *ledgerDTO) toDomain() trading.LedgerEntry {
	return trading.LedgerEntry{
		ID:           *d.BankTransactionID,
		Stardate:     vessel.Stardate{Day: *d.Day, Year: *d.Year, Time: *d.Time},
		Description:  *d.Description,
		RunningTotal: *d.RunningTotal,
		Revenue:      nullable(d.Revenue),
		Expense:      nullable(d.Expense),
		StarSystem:   *d.StarSystem,
		SystemUWP:    vessel.UWP(*d.SystemUWP),
	}
}

type tradeRecordDTO struct {
	SpeculativeTransactionID *int                `json:"SpeculativeTransactionId" validate:"required"`
	Day                      *int                `json:"Day" validate:"required"`
	Year                     *int                `json:"Year" validate:"required"`
	Time                     *string             `json:"Time" validate:"required"`
	TradeGood                *string             `json:"TradeGood" validate:"required"`
	QuantityChange           *int                `json:"QuantityChange" validate:"required"`
	UnitValue                *decimal.Decimal    `json:"UnitValue" validate:"required"`
	Revenue                  decimal.NullDecimal `json:"Revenue"`
	Expense                  decimal.NullDecimal `json:"Expense"`
	StarSystem               *string             `json:"StarSystem" validate:"required"`
}

func (d *tradeRecordDTO) toDomain() trading.TradeRecord {
	return trading.TradeRecord{
		ID:             *d.SpeculativeTransactionID,
		Stardate:       vessel.Stardate{Day: *d.Day, Year: *d.Year, Time: *d.Time},
		TradeGood:      *d.TradeGood,
		QuantityChange: *d.QuantityChange,
		UnitValue:      *d.UnitValue,
		Revenue:        nullable(d.Revenue),
		Expense:        nullable(d.Expense),
		StarSystem:     *d.StarSystem,
	}
}

type encounterDTO struct {
	Encounter     *string `json:"Encounter" validate:"required"`
	Rolled        *int    `json:"Rolled" validate:"required"`
	System        *string `json:"System" validate:"required"`
	UWP           *string `json:"UWP" validate:"required"`
	SectorID      *int    `json:"SectorID" validate:"required"`
	SystemID      *int    `json:"SystemID" validate:"required"`
	Day           *int    `json:"Day" validate:"required"`
	EncounterYear *int    `json:"EncounterYear" validate:"required"`
	LoggedTime    *string `json:"LoggedTime" validate:"required"`
}

func (d *encounterDTO) toDomain() vessel.Encounter {
	return vessel.Encounter{
		Name:     *d.Encounter,
		Rolled:   *d.Rolled,
		System:   *d.System,
		UWP:      vessel.UWP(*d.UWP),
		SectorID: *d.SectorID,
		SystemID: *d.SystemID,
		Stardate: vessel.Stardate{Day: *d.Day, Year: *d.EncounterYear, Time: *d.LoggedTime},
	}
}

type crewMemberDTO struct {
	CrewMemberID *int             `json:"CrewMemberID" validate:"required"`
	FirstName    *string          `json:"FirstName" validate:"required"`
	LastName     *string          `json:"LastName" validate:"required"`
	STR          *int             `json:"STR" validate:"required"`
	DEX          *int             `json:"DEX" validate:"required"`
	END          *int             `json:"END" validate:"required"`
	INT          *int             `json:"INT" validate:"required"`
	EDU          *int             `json:"EDU" validate:"required"`
	SOC          *int             `json:"SOC" validate:"required"`
	CHA          *int             `json:"CHA"`
	CFI          *int             `json:"CFI" validate:"required"`
	FCM          *int             `json:"FCM" validate:"required"`
	FDM          *int             `json:"FDM" validate:"required"`
	Fatigued     *int             `json:"Fatigued" validate:"required"`
	Bank         *decimal.Decimal `json:"Bank" validate:"required"`
	Portrait     *string          `json:"Portrait"`
}

func (d *crewMemberDTO) toDomain() crew.Member {
	return crew.Member{
		ID:        *d.CrewMemberID,
		FirstName: *d.FirstName,
		LastName:  *d.LastName,
		Characteristics: crew.Characteristics{
			STR: *d.STR,
			DEX: *d.DEX,
			END: *d.END,
			INT: *d.INT,
			EDU: *d.EDU,
			SOC: *d.SOC,
		},
		Charisma: d.CHA,
		CFI:      *d.CFI,
		FCM:      *d.FCM,
		FDM:      *d.FDM,
		Fatigued: *d.Fatigued != 0,
		Bank:     *d.Bank,
		Portrait: derefString(d.Portrait),
	}
}

type crewSkillDTO struct {
	CrewMemberID *int    `json:"CrewMemberID" validate:"required"`
	SkillName    *string `json:"SkillName" validate:"required"`
	Level        *int    `json:"Level" validate:"required"`
}

func (d *crewSkillDTO) toDomain() crew.Skill {
	return crew.Skill{MemberID: *d.CrewMemberID, Name: *d.SkillName, Level: *d.Level}
}

type crewAssignmentDTO struct {
	CrewMemberID *int    `json:"CrewMemberID" validate:"required"`
	FirstName    *string `json:"FirstName" validate:"required"`
	LastName     *string `json:"LastName" validate:"required"`
	Assignment   *string `json:"Assignment" validate:"required"`
}

func (d *crewAssignmentDTO) toDomain() crew.Assignment {
	return crew.Assignment{MemberID: *d.CrewMemberID, Duty: *d.Assignment}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
