package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/adapters/metrics"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	showMetrics bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "traveller",
		Short: "Traveller trading client - manage a ship against the game service",
		Long: `Traveller inspects a ship and issues trading commands against the
game-state service. Every quantity is clamped to what the ship can legally
carry, buy or sell before anything is sent.

The game and ship are set in configuration (game.game_id, game.ship_id) or
through TRAVELLER_GAME_GAME_ID and TRAVELLER_GAME_SHIP_ID.

Examples:
  traveller status
  traveller offers
  traveller trade buy --offer 12 --quantity 40
  traveller fuel buy --refined
  traveller passengers sell --low 4 --middle 2
  traveller destination select`,
		SilenceUsage: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !showMetrics {
				return nil
			}
			fmt.Println()
			return metrics.WriteSummary(os.Stdout)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/traveller)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false,
		"Print a metrics summary after the command")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewCargoCommand())
	rootCmd.AddCommand(NewOffersCommand())
	rootCmd.AddCommand(NewTradeCommand())
	rootCmd.AddCommand(NewFuelCommand())
	rootCmd.AddCommand(NewFreightCommand())
	rootCmd.AddCommand(NewPassengersCommand())
	rootCmd.AddCommand(NewBrokerCommand())
	rootCmd.AddCommand(NewDestinationCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewTransactionsCommand())
	rootCmd.AddCommand(NewEncountersCommand())
	rootCmd.AddCommand(NewCrewCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}
