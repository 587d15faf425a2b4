package vessel

import "fmt"

// PassengerClass is one of the five berth comfort classes
type PassengerClass int

const (
	Low PassengerClass = iota
	Basic
	Middle
	High
	Luxury
)

// PassengerClasses lists every class in ascending comfort order
var PassengerClasses = [...]PassengerClass{Low, Basic, Middle, High, Luxury}

type classInfo struct {
	name        string
	passageName string
	ticketField string
}

var classTable = [...]classInfo{
	Low:    {name: "Low", passageName: "Low Passage", ticketField: "LowBerthTickets"},
	Basic:  {name: "Basic", passageName: "Basic Passage", ticketField: "BasicTickets"},
	Middle: {name: "Middle", passageName: "Middle Passage", ticketField: "MiddleTickets"},
	High:   {name: "High", passageName: "High Passage", ticketField: "HighTickets"},
	Luxury: {name: "Luxury", passageName: "Luxury Passage", ticketField: "LuxuryTickets"},
}

// Valid reports whether c is one of the five known classes
func (c PassengerClass) Valid() bool {
	return c >= Low && c <= Luxury
}

func (c PassengerClass) String() string {
	if !c.Valid() {
		return fmt.Sprintf("PassengerClass(%d)", int(c))
	}
	return classTable[c].name
}

// PassageName is the name the passenger market uses for this class ("Low Passage")
func (c PassengerClass) PassageName() string {
	if !c.Valid() {
		return ""
	}
	return classTable[c].passageName
}

// TicketField is the SellTickets payload key for this class
func (c PassengerClass) TicketField() string {
	if !c.Valid() {
		return ""
	}
	return classTable[c].ticketField
}

// ParsePassengerClass accepts a class name or passage name, case-sensitively
func ParsePassengerClass(s string) (PassengerClass, error) {
	for _, c := range PassengerClasses {
		if s == classTable[c].name || s == classTable[c].passageName {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown passenger class %q", s)
}

// Berth is the seat count and occupancy for one class
type Berth struct {
	Berths  int
	Onboard int
}

// Vacant returns the unoccupied seats, never negative
func (b Berth) Vacant() int {
	if b.Onboard >= b.Berths {
		return 0
	}
	return b.Berths - b.Onboard
}

// Manifest holds one Berth per PassengerClass
type Manifest [len(PassengerClasses)]Berth

// Class returns the berth record for c, or a zero Berth for an unknown class
func (m Manifest) Class(c PassengerClass) Berth {
	if !c.Valid() {
		return Berth{}
	}
	return m[c]
}
