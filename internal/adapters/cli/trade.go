package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// NewOffersCommand creates the offers command
func NewOffersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List speculative trade offers in the current system",
		Long: `List the speculative offers in the current system. MAX is the
quantity a trade could move right now given the hold and the ship's trade
mode; buying needs the ship to be preparing for departure, selling needs it
not to be.

Example:
  traveller offers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.OffersQuery{})
				if err != nil {
					return err
				}
				result := resp.(*queries.OffersResponse)
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "%s - %s\n\n", result.State.Location.System, result.State.TradeMode())
				if len(result.Offers) == 0 {
					fmt.Fprintln(w, "No offers available.")
				} else {
					tw := newTable(w)
					fmt.Fprintln(tw, "ID\tDIRECTION\tGOOD\tPRICE\tBASE\tAVAILABLE\tMAX")
					fmt.Fprintln(tw, "--\t---------\t----\t-----\t----\t---------\t---")
					for _, o := range result.Offers {
						available := "Unlimited"
						if !o.Unlimited() {
							available = formatCount(*o.Available)
						}
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
							o.ID, o.Direction, o.TradeGood, formatCredits(o.Price), formatCredits(o.BasePrice), available, o.Max.Max)
					}
					tw.Flush()
				}

				fmt.Fprintf(w, "\nBroker search: %s offers, default %s", result.Direction, result.DefaultSearch)
				if !result.Search.Online {
					fmt.Fprint(w, " (online search needs tech level 8+)")
				}
				fmt.Fprintln(w)
				return nil
			})
		},
	}
}

// NewTradeCommand creates the trade command with buy and sell subcommands
func NewTradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Buy or sell speculative cargo",
		Long: `Buy cargo from a purchase offer or sell a hold entry into a sale offer.

Quantities are clamped to what is legal; leave --quantity out to trade the
maximum.

Examples:
  traveller trade buy --offer 12 --quantity 40
  traveller trade sell --offer 14 --cargo 3`,
	}

	cmd.AddCommand(newTradeBuyCommand())
	cmd.AddCommand(newTradeSellCommand())

	return cmd
}

func newTradeBuyCommand() *cobra.Command {
	var (
		offerID  int
		quantity string
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy speculative cargo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &commands.PurchaseCargoCommand{
					OfferID:      offerID,
					QuantityText: quantity,
				})
				if err != nil {
					return err
				}
				printTransaction(cmd.OutOrStdout(), resp.(*commands.TransactionResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&offerID, "offer", 0, "Offer ID [required]")
	cmd.Flags().StringVar(&quantity, "quantity", "", "dTons to buy (default: as many as fit)")
	cmd.MarkFlagRequired("offer")

	return cmd
}

func newTradeSellCommand() *cobra.Command {
	var (
		offerID  int
		cargoID  int
		quantity string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell a hold entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &commands.SellCargoCommand{
					CargoID:      cargoID,
					OfferID:      offerID,
					QuantityText: quantity,
				})
				if err != nil {
					return err
				}
				printTransaction(cmd.OutOrStdout(), resp.(*commands.TransactionResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&offerID, "offer", 0, "Offer ID [required]")
	cmd.Flags().IntVar(&cargoID, "cargo", 0, "Hold entry ID [required]")
	cmd.Flags().StringVar(&quantity, "quantity", "", "dTons to sell (default: the whole entry)")
	cmd.MarkFlagRequired("offer")
	cmd.MarkFlagRequired("cargo")

	return cmd
}

// NewBrokerCommand creates the broker command
func NewBrokerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "broker",
		Short: "Solicit speculative offers from a broker",
	}
	cmd.AddCommand(newBrokerFindCommand())
	return cmd
}

func newBrokerFindCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Ask a broker for a new offer",
		Long: `Ask a broker for a new speculative offer. The offer is a purchase
while the ship prepares for departure and a sale otherwise.

Search types:
  standard  - always available
  online    - needs a tech level 8 or higher system (default when available)

Examples:
  traveller broker find
  traveller broker find --search standard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.FindBrokerOfferCommand{}
			switch search {
			case "":
			case "standard":
				v := trading.StandardSearch
				command.Variant = &v
			case "online":
				v := trading.OnlineSearch
				command.Variant = &v
			case "illegal":
				v := trading.IllegalSearch
				command.Variant = &v
			default:
				return fmt.Errorf("unknown search type %q", search)
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

	cmd.Flags().StringVar(&search, "search", "", "Search type: standard or online")

	return cmd
}
