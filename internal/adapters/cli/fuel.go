package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// NewFuelCommand creates the fuel command with subcommands
func NewFuelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuel",
		Short: "Buy or refine fuel",
		Long: `Buy fuel at the current starport or refine the fuel onboard.

Class A and B starports sell refined and unrefined fuel, C and D sell only
unrefined fuel, and anything else sells none.

Examples:
  traveller fuel options
  traveller fuel buy
  traveller fuel buy --unrefined --quantity 10
  traveller fuel refine`,
	}

	cmd.AddCommand(newFuelOptionsCommand())
	cmd.AddCommand(newFuelBuyCommand())
	cmd.AddCommand(newFuelRefineCommand())

	return cmd
}

func newFuelOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the fuel sold here",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.FuelOptionsQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.FuelOptionsResponse)
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Starport:   class %s\n", result.State.StarportCode())
				fmt.Fprintf(w, "Tank:       %s\n", result.State.Fuel)
				fmt.Fprintf(w, "Refined:    %s\n", yesNo(result.Options.Refined))
				fmt.Fprintf(w, "Unrefined:  %s\n", yesNo(result.Options.Unrefined))
				if !result.HasDefault {
					fmt.Fprintln(w, "\nFuel cannot be purchased here.")
					return nil
				}
				fmt.Fprintf(w, "\nDefault: %s, up to %d dTons\n", result.Default, result.Max.Max)
				return nil
			})
		},
	}
}

func newFuelBuyCommand() *cobra.Command {
	var (
		quantity  string
		refined   bool
		unrefined bool
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy fuel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refined && unrefined {
				return fmt.Errorf("--refined and --unrefined are mutually exclusive")
			}
			command := &commands.BuyFuelCommand{QuantityText: quantity}
			switch {
			case refined:
				v := trading.RefinedFuel
				command.Variant = &v
			case unrefined:
				v := trading.UnrefinedFuel
				command.Variant = &v
			}

			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), command)
				if err != nil {
					return err
				}
				printTransaction(cmd.OutOrStdout(), resp.(*commands.TransactionResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&quantity, "quantity", "", "dTons of fuel (default: fill the tank)")
	cmd.Flags().BoolVar(&refined, "refined", false, "Buy refined fuel")
	cmd.Flags().BoolVar(&unrefined, "unrefined", false, "Buy unrefined fuel")

	return cmd
}

func newFuelRefineCommand() *cobra.Command {
	return newShipActionCommand("refine", "Refine the fuel onboard", trading.ActionRefineFuelOnboard)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
