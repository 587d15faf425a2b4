package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Traveller configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TRAVELLER_* prefix, e.g. TRAVELLER_API_BASE_URL)
2. Config file (config.yaml)
3. Default values

Example:
  traveller config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Traveller Configuration")
			fmt.Fprintln(w, "=======================")

			fmt.Fprintln(w, "\nGame:")
			fmt.Fprintf(w, "  Game ID:          %d\n", cfg.Game.GameID)
			fmt.Fprintf(w, "  Ship ID:          %d\n", cfg.Game.ShipID)

			fmt.Fprintln(w, "\nGame Service API:")
			fmt.Fprintf(w, "  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Fprintf(w, "  Timeout:          %s\n", cfg.API.Timeout)
			fmt.Fprintf(w, "  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.API.RateLimit.Requests, cfg.API.RateLimit.Burst)
			fmt.Fprintf(w, "  Circuit Breaker:  open after %d failures for %s\n",
				cfg.API.CircuitBreaker.MaxFailures, cfg.API.CircuitBreaker.Timeout)

			fmt.Fprintln(w, "\nDestination Lookup:")
			fmt.Fprintf(w, "  Debounce:         %s\n", cfg.Lookup.Debounce)
			fmt.Fprintf(w, "  Min Query Length: %d\n", cfg.Lookup.MinQueryLength)

			fmt.Fprintln(w, "\nLogging:")
			fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(w, "\nMetrics:")
			fmt.Fprintf(w, "  Enabled:          %t\n", cfg.Metrics.Enabled)

			return nil
		},
	}
}
