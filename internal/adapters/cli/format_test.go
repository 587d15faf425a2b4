package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

func TestFormatCredits(t *testing.T) {
	assert.Equal(t, "Cr 125,000.50", formatCredits(decimal.RequireFromString("125000.50")))
	assert.Equal(t, "Cr 0.00", formatCredits(decimal.Zero))
	assert.Equal(t, "-", formatOptionalCredits(nil))
	assert.Equal(t, "1,250", formatCount(1250))
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{shared.NewBusinessRejection("SellTickets", "No passengers are waiting"), "✗ No passengers are waiting"},
		{shared.NewTransportError("BuyFuel", 503, "down", nil), "✗ The request could not be completed. Please try again."},
		{fmt.Errorf("wrapped: %w", shared.NewIneligibleError("ticket sale", "declare a destination")), "✗ ticket sale unavailable: declare a destination"},
		{shared.NewDispatchInProgressError("BuyFuel"), "✗ BuyFuel is already in progress"},
		{errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describeError(tt.err))
	}
}

func TestPrintTransaction(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	resp := &commands.TransactionResponse{
		Action:       trading.ActionSpeculativePurchase,
		Quantity:     20,
		Max:          62,
		Total:        decimal.NewFromInt(24000),
		Confirmation: "Purchase successful!",
		Outcome:      &dispatch.Outcome{RequestID: "req-1"},
	}

	// Act
	printTransaction(&buf, resp)

	// Assert
	out := buf.String()
	assert.Contains(t, out, "✓ Purchase successful!")
	assert.Contains(t, out, "20 of 62 allowed")
	assert.Contains(t, out, "Cr 24,000.00")
	assert.Contains(t, out, "req-1")
}
