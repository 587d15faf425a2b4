package vessel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MortgagePaymentTerm is the number of payments in a full mortgage
const MortgagePaymentTerm = 520

// Maintenance is the date of the last annual maintenance and the signed
// day count until the next one (negative means overdue).
type Maintenance struct {
	Day     int
	Year    int
	DueDays int
}

// Overdue reports whether maintenance is past due
func (m Maintenance) Overdue() bool {
	return m.DueDays < 0
}

func (m Maintenance) String() string {
	var due string
	if m.DueDays < 0 {
		due = fmt.Sprintf("%d days ago", -m.DueDays)
	} else {
		due = fmt.Sprintf("Due in %d days", m.DueDays)
	}
	return fmt.Sprintf("%d, %d (%s)", m.Day, m.Year, due)
}

// Mortgage describes an outstanding ship mortgage. DueDays is nil when the
// service does not report a next payment date.
type Mortgage struct {
	Day      int
	Year     int
	DueDays  *int
	Payments int
	Amount   decimal.Decimal
}

func (m *Mortgage) String() string {
	if m == nil {
		return "The ship has no mortgage."
	}
	due := "Not Available"
	if m.DueDays != nil {
		if *m.DueDays < 0 {
			due = fmt.Sprintf("%d days ago", -*m.DueDays)
		} else {
			due = fmt.Sprintf("In %d days", *m.DueDays)
		}
	}
	return fmt.Sprintf("%d, %d (%s)", m.Day, m.Year, due)
}

// PaymentProgress renders "N of 520"
func (m *Mortgage) PaymentProgress() string {
	if m == nil {
		return fmt.Sprintf("0 of %d", MortgagePaymentTerm)
	}
	return fmt.Sprintf("%d of %d", m.Payments, MortgagePaymentTerm)
}
