package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// NewPassengersCommand creates the passengers command with subcommands
func NewPassengersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passengers",
		Short: "Sell passenger tickets",
		Long: `Review passenger demand for the declared destination and sell tickets.

Each class can sell at most min(vacant berths, passengers waiting).

Examples:
  traveller passengers list
  traveller passengers roll
  traveller passengers sell --low 6 --middle 2`,
	}

	cmd.AddCommand(newPassengersListCommand())
	cmd.AddCommand(newShipActionCommand("roll", "Roll for passengers", trading.ActionRollForPassengers))
	cmd.AddCommand(newPassengersSellCommand())

	return cmd
}

func newPassengersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show berths and demand per class",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.PassengersQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.PassengersResponse)
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Destination: %s\n", result.State.DestinationName())
				if !result.Verdict.Allowed {
					fmt.Fprintf(w, "Ticket sales unavailable: %s\n", result.Verdict.Reason)
				} else if result.SaleDisabled {
					fmt.Fprintln(w, "No class has sellable capacity.")
				}
				fmt.Fprintln(w)

				tw := newTable(w)
				fmt.Fprintln(tw, "CLASS\tONBOARD\tBERTHS\tWAITING\tSELLABLE")
				fmt.Fprintln(tw, "-----\t-------\t------\t-------\t--------")
				for _, c := range result.Classes {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", c.Class, c.Berth.Onboard, c.Berth.Berths, c.Demand, c.Max.Max)
				}
				tw.Flush()

				if len(result.Demand) > 0 {
					fmt.Fprintln(w)
					tw = newTable(w)
					fmt.Fprintln(tw, "PASSAGE\tAVAILABLE\tTICKET\tREVENUE EACH\tROUTE")
					for _, d := range result.Demand {
						fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s → %s\n",
							d.PassageName, d.Available, formatCredits(d.TicketPrice), formatCredits(d.RevenueEach), d.Origin, d.Destination)
					}
					tw.Flush()
				}
				return nil
			})
		},
	}
}

func newPassengersSellCommand() *cobra.Command {
	var tickets [len(vessel.PassengerClasses)]int

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell tickets per class",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &commands.SellTicketsCommand{Tickets: tickets})
				if err != nil {
					return err
				}
				result := resp.(*commands.SellTicketsResponse)
				w := cmd.OutOrStdout()

				printTransaction(w, result.TransactionResponse)
				sold := make([]string, 0, len(vessel.PassengerClasses))
				for _, class := range vessel.PassengerClasses {
					if n := result.Tickets[class]; n > 0 {
						sold = append(sold, fmt.Sprintf("%s %d", class, n))
					}
				}
				fmt.Fprintf(w, "  Sold:        %s\n", strings.Join(sold, ", "))
				return nil
			})
		},
	}

	for _, class := range vessel.PassengerClasses {
		name := strings.ToLower(class.String())
		cmd.Flags().IntVar(&tickets[class], name, 0, fmt.Sprintf("%s tickets to sell", class))
	}

	return cmd
}
