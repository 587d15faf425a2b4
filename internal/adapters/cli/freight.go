package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
)

// NewFreightCommand creates the freight command with subcommands
func NewFreightCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freight",
		Short: "List and load standard freight",
		Long: `List the standard freight lots that fit the hold and load one.

Freight is loaded only while preparing for departure, and only once a
destination has been declared.

Examples:
  traveller freight list
  traveller freight load --lot 7`,
	}

	cmd.AddCommand(newFreightListCommand())
	cmd.AddCommand(newFreightLoadCommand())

	return cmd
}

func newFreightListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List freight lots that fit, smallest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.FreightQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.FreightResponse)
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Free hold space: %d dTons (%d of %d lots fit)\n",
					result.State.Cargo.Free(), len(result.Loadable), result.Offered)
				if !result.Verdict.Allowed {
					fmt.Fprintf(w, "Loading unavailable: %s\n", result.Verdict.Reason)
				}
				fmt.Fprintln(w)

				if len(result.Loadable) == 0 {
					fmt.Fprintln(w, "No freight fits the hold.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "LOT\tDESTINATION\tTYPE\tDTONS\tVALUE")
				fmt.Fprintln(tw, "---\t-----------\t----\t-----\t-----")
				for _, lot := range result.Loadable {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", lot.ID, lot.System, lot.Type, lot.DTons, formatCredits(lot.Value))
				}
				return tw.Flush()
			})
		},
	}
}

func newFreightLoadCommand() *cobra.Command {
	var lotID int

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a freight lot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &commands.LoadFreightCommand{LotID: lotID})
				if err != nil {
					return err
				}
				printTransaction(cmd.OutOrStdout(), resp.(*commands.TransactionResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&lotID, "lot", 0, "Freight lot ID [required]")
	cmd.MarkFlagRequired("lot")

	return cmd
}
