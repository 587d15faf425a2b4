package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// LedgerQuery loads the ship's bank ledger
type LedgerQuery struct{}

// LedgerResponse lists ledger rows in service order with their net effect
type LedgerResponse struct {
	Entries []trading.LedgerEntry
	Net     decimal.Decimal
}

// TransactionsQuery loads the completed speculative trades
type TransactionsQuery struct{}

// TransactionsResponse lists completed trades and their summed result
type TransactionsResponse struct {
	Records  []trading.TradeRecord
	Revenue  decimal.Decimal
	Expense  decimal.Decimal
	Profit   decimal.Decimal
	Quantity int
}

// SystemSearchQuery looks up star systems by partial name
type SystemSearchQuery struct {
	Name string
}

// SystemSearchResponse holds the matching systems
type SystemSearchResponse struct {
	Systems []trading.StarSystem
}

// HistoryHandler answers LedgerQuery, TransactionsQuery and SystemSearchQuery
type HistoryHandler struct {
	reader   ports.GameReader
	identity trading.Identity
}

// NewHistoryHandler creates a handler for the history queries
func NewHistoryHandler(reader ports.GameReader, identity trading.Identity) *HistoryHandler {
	return &HistoryHandler{reader: reader, identity: identity}
}

// Handle executes a history query
func (h *HistoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch q := request.(type) {
	case *LedgerQuery:
		entries, err := h.reader.ShipsLedger(ctx, h.identity)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		resp := &LedgerResponse{Entries: entries, Net: decimal.Zero}
		for _, e := range entries {
			resp.Net = resp.Net.Add(e.Net())
		}
		return resp, nil

	case *TransactionsQuery:
		records, err := h.reader.SpeculativeTransactions(ctx, h.identity)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}
		resp := &TransactionsResponse{Records: records, Revenue: decimal.Zero, Expense: decimal.Zero}
		for _, r := range records {
			if r.Revenue != nil {
				resp.Revenue = resp.Revenue.Add(*r.Revenue)
			}
			if r.Expense != nil {
				resp.Expense = resp.Expense.Add(*r.Expense)
			}
			resp.Quantity += r.QuantityChange
		}
		resp.Profit = resp.Revenue.Sub(resp.Expense)
		return resp, nil

	case *SystemSearchQuery:
		systems, err := h.reader.SystemsByName(ctx, q.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to search systems: %w", err)
		}
		return &SystemSearchResponse{Systems: systems}, nil

	default:
		return nil, invalidRequest("a history query")
	}
}
