package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the ship's status",
		Long: `Show the configured ship's location, credits, hold, fuel tank,
passenger berths, maintenance and mortgage.

Example:
  traveller status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.ShipStatusQuery{})
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), resp.(*queries.ShipStatusResponse).State)
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, s *vessel.ResourceState) {
	fmt.Fprintf(w, "%s\n", s.Name)
	fmt.Fprintln(w, "==========================")
	fmt.Fprintf(w, "  Stardate:      %s\n", s.Stardate)
	fmt.Fprintf(w, "  Location:      %s (%s)\n", s.Location.System, s.Location.UWP)
	fmt.Fprintf(w, "  Destination:   %s\n", s.DestinationName())
	fmt.Fprintf(w, "  Trade Mode:    %s\n", s.TradeMode())
	fmt.Fprintf(w, "  Bank:          %s\n", formatCredits(s.Bank))

	fmt.Fprintln(w, "\nHold & Fuel:")
	fmt.Fprintf(w, "  Cargo:         %d of %d dTons (%d free)\n", s.Cargo.Filled, s.Cargo.Capacity, s.Cargo.Free())
	fmt.Fprintf(w, "  Fuel:          %s\n", s.Fuel)
	fmt.Fprintf(w, "  Jump Rating:   %d\n", s.JumpRating)

	fmt.Fprintln(w, "\nPassengers:")
	tw := newTable(w)
	fmt.Fprintln(tw, "  CLASS\tONBOARD\tBERTHS")
	for _, class := range vessel.PassengerClasses {
		berth := s.Passengers.Class(class)
		fmt.Fprintf(tw, "  %s\t%d\t%d\n", class, berth.Onboard, berth.Berths)
	}
	tw.Flush()

	fmt.Fprintln(w, "\nUpkeep:")
	fmt.Fprintf(w, "  Maintenance:   %s\n", s.Maintenance)
	fmt.Fprintf(w, "  Mortgage:      %s\n", s.Mortgage)
	if s.Mortgage != nil {
		fmt.Fprintf(w, "  Payments:      %s\n", s.Mortgage.PaymentProgress())
		fmt.Fprintf(w, "  Payment:       %s\n", formatCredits(s.Mortgage.Amount))
	}
	fmt.Fprintf(w, "  Broker Tries:  buy %d, sell %d\n", s.BrokerAttempts.Buy, s.BrokerAttempts.Sell)
}

// NewCargoCommand creates the cargo command
func NewCargoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cargo",
		Short: "List the cargo hold",
		Long: `List every lot in the cargo hold. The ID column is what
'traveller trade sell --cargo' expects.

Example:
  traveller cargo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.CargoHoldQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.CargoHoldResponse)
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Hold: %d of %d dTons\n\n", result.State.Cargo.Filled, result.State.Cargo.Capacity)
				if len(result.Hold) == 0 {
					fmt.Fprintln(w, "The hold is empty.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tTYPE\tDESCRIPTION\tDTONS\tVALUE/TON")
				fmt.Fprintln(tw, "--\t----\t-----------\t-----\t---------")
				for _, e := range result.Hold {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.Type, e.Description, e.DTons, formatOptionalCredits(e.ValuePerTon))
				}
				return tw.Flush()
			})
		},
	}
}
