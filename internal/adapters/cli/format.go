package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
)

var printer = message.NewPrinter(language.English)

// formatCredits renders an amount as grouped credits, e.g. "Cr 125,000.50"
func formatCredits(amount decimal.Decimal) string {
	return printer.Sprintf("Cr %.2f", amount.Round(2).InexactFloat64())
}

// formatOptionalCredits renders a blank amount as "-"
func formatOptionalCredits(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return formatCredits(*amount)
}

// formatCount groups an integer count, e.g. "1,250"
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// describeError maps engine errors to the text a player should see
func describeError(err error) string {
	var (
		transport  *shared.TransportError
		rejection  *shared.BusinessRejection
		ineligible *shared.IneligibleError
		inProgress *shared.DispatchInProgressError
		validation *shared.ValidationError
		schema     *shared.SchemaViolationError
	)
	switch {
	case errors.As(err, &rejection):
		return "✗ " + rejection.Reason
	case errors.As(err, &transport):
		return "✗ " + transport.UserMessage()
	case errors.As(err, &ineligible):
		return "✗ " + ineligible.Error()
	case errors.As(err, &inProgress):
		return "✗ " + inProgress.Error()
	case errors.As(err, &validation):
		return "✗ " + validation.Error()
	case errors.As(err, &schema):
		return "✗ The game service returned data this client does not understand."
	default:
		return "Error: " + err.Error()
	}
}

// printTransaction reports a successful dispatch
func printTransaction(w io.Writer, resp *commands.TransactionResponse) {
	fmt.Fprintf(w, "✓ %s\n", resp.Confirmation)
	if resp.Max > 0 {
		fmt.Fprintf(w, "  Quantity:    %s of %s allowed\n", formatCount(resp.Quantity), formatCount(resp.Max))
	}
	if !resp.Total.IsZero() {
		fmt.Fprintf(w, "  Total:       %s\n", formatCredits(resp.Total))
	}
	if resp.Outcome != nil {
		fmt.Fprintf(w, "  Request ID:  %s\n", resp.Outcome.RequestID)
	}
}
