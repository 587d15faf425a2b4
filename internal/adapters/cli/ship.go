package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Maintain, prepare and jump the ship",
		Long: `Run the ship operations that take no quantity.

Preparing for departure switches the ship to buying mode: cargo can be
bought and freight loaded, but nothing can be sold. Jumping needs a
declared destination.

Examples:
  traveller ship maintain
  traveller ship prepare
  traveller ship move`,
	}

	cmd.AddCommand(newShipActionCommand("maintain", "Perform monthly maintenance", trading.ActionPerformMaintenance))
	cmd.AddCommand(newShipActionCommand("prepare", "Prepare for departure", trading.ActionPrepareForDeparture))
	cmd.AddCommand(newShipActionCommand("move", "Jump to the declared destination", trading.ActionMoveTheShip))

	return cmd
}

// newShipActionCommand builds a subcommand that dispatches a quantity-free action
func newShipActionCommand(use, short string, action trading.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &commands.ShipActionCommand{Action: action})
				if err != nil {
					return err
				}
				printTransaction(cmd.OutOrStdout(), resp.(*commands.TransactionResponse))
				return nil
			})
		},
	}
}
