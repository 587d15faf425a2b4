package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
)

// NewLedgerCommand creates the ledger command
func NewLedgerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show the ship's bank ledger",
		Long: `Show every entry in the ship's bank ledger in the order the game
service reports them, with the running total after each entry.

Example:
  traveller ledger`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.LedgerQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.LedgerResponse)
				w := cmd.OutOrStdout()

				if len(result.Entries) == 0 {
					fmt.Fprintln(w, "No ledger entries found.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "STARDATE\tDESCRIPTION\tREVENUE\tEXPENSE\tBALANCE\tSYSTEM")
				fmt.Fprintln(tw, "--------\t-----------\t-------\t-------\t-------\t------")
				for _, e := range result.Entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.Stardate,
						e.Description,
						formatOptionalCredits(e.Revenue),
						formatOptionalCredits(e.Expense),
						formatCredits(e.RunningTotal),
						e.StarSystem,
					)
				}
				tw.Flush()

				fmt.Fprintf(w, "\nNet: %s across %d entries\n", formatCredits(result.Net), len(result.Entries))
				return nil
			})
		},
	}
}

// NewTransactionsCommand creates the transactions command
func NewTransactionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "Show completed speculative trades",
		Long: `Show the speculative purchases and sales this ship has completed,
with total revenue, expense and profit.

Example:
  traveller transactions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.TransactionsQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.TransactionsResponse)
				w := cmd.OutOrStdout()

				if len(result.Records) == 0 {
					fmt.Fprintln(w, "No speculative trades found.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "STARDATE\tGOOD\tDTONS\tUNIT VALUE\tREVENUE\tEXPENSE\tSYSTEM")
				fmt.Fprintln(tw, "--------\t----\t-----\t----------\t-------\t-------\t------")
				for _, r := range result.Records {
					fmt.Fprintf(tw, "%s\t%s\t%+d\t%s\t%s\t%s\t%s\n",
						r.Stardate,
						r.TradeGood,
						r.QuantityChange,
						formatCredits(r.UnitValue),
						formatOptionalCredits(r.Revenue),
						formatOptionalCredits(r.Expense),
						r.StarSystem,
					)
				}
				tw.Flush()

				fmt.Fprintln(w, "\nSummary:")
				fmt.Fprintf(w, "  Revenue:     %s\n", formatCredits(result.Revenue))
				fmt.Fprintf(w, "  Expense:     %s\n", formatCredits(result.Expense))
				fmt.Fprintf(w, "  Profit:      %s\n", formatCredits(result.Profit))
				return nil
			})
		},
	}
}
