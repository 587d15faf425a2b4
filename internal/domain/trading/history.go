package trading

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// LedgerEntry is one row of the ship's bank ledger.
// Revenue and Expense are nil when the service leaves them blank.
type LedgerEntry struct {
	ID           int
	Stardate     vessel.Stardate
	Description  string
	RunningTotal decimal.Decimal
	Revenue      *decimal.Decimal
	Expense      *decimal.Decimal
	StarSystem   string
	SystemUWP    vessel.UWP
}

// Net returns revenue minus expense, treating blanks as zero
func (e LedgerEntry) Net() decimal.Decimal {
	net := decimal.Zero
	if e.Revenue != nil {
		net = net.Add(*e.Revenue)
	}
	if e.Expense != nil {
		net = net.Sub(*e.Expense)
	}
	return net
}

// TradeRecord is a completed speculative purchase or sale
type TradeRecord struct {
	ID             int
	Stardate       vessel.Stardate
	TradeGood      string
	QuantityChange int
	UnitValue      decimal.Decimal
	Revenue        *decimal.Decimal
	Expense        *decimal.Decimal
	StarSystem     string
}
