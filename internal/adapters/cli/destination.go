package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/lookup"
	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// NewDestinationCommand creates the destination command with subcommands
func NewDestinationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destination",
		Short: "Find and declare the next jump destination",
		Long: `Search star systems by name and declare one as the ship's destination.

Examples:
  traveller destination search Efa
  traveller destination select`,
	}

	cmd.AddCommand(newDestinationSearchCommand())
	cmd.AddCommand(newDestinationSelectCommand())

	return cmd
}

func newDestinationSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "List star systems matching a partial name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if utf8.RuneCountInString(args[0]) < a.cfg.Lookup.MinQueryLength {
					return shared.NewValidationError("name", fmt.Sprintf("enter at least %d characters", a.cfg.Lookup.MinQueryLength))
				}
				resp, err := a.send(a.context(), &queries.SystemSearchQuery{Name: args[0]})
				if err != nil {
					return err
				}
				systems := resp.(*queries.SystemSearchResponse).Systems
				if len(systems) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No systems found.")
					return nil
				}
				return printSystems(cmd.OutOrStdout(), systems)
			})
		},
	}
}

func newDestinationSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "Pick a destination interactively",
		Long: `Type part of a system name; matches appear after a short pause.

  #n       select result n
  confirm  declare the selected system as the destination
  ?        show the current results again
  (blank)  close the result list
  quit     leave without declaring`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				ctx := a.context()
				declare := func(system trading.StarSystem) (*commands.TransactionResponse, error) {
					resp, err := a.send(ctx, &commands.DeclareDestinationCommand{System: system})
					if err != nil {
						return nil, err
					}
					return resp.(*commands.TransactionResponse), nil
				}

				prompt := newDestinationPrompt(ctx, a.client, shared.NewRealClock(), lookup.Config{
					Debounce:       a.cfg.Lookup.Debounce,
					MinQueryLength: a.cfg.Lookup.MinQueryLength,
				}, cmd.OutOrStdout(), declare)
				defer prompt.Close()

				return prompt.Run(cmd.InOrStdin())
			})
		},
	}
}

func printSystems(w io.Writer, systems []trading.StarSystem) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tSYSTEM\tSECTOR\tUWP\tZONE")
	for i, s := range systems {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, s.Name, s.Sector, s.UWP, s.Zone)
	}
	return tw.Flush()
}

// destinationPrompt drives a Lookup from input lines. Search results arrive
// asynchronously and are printed as they are applied.
type destinationPrompt struct {
	lookup  *lookup.Lookup
	declare func(trading.StarSystem) (*commands.TransactionResponse, error)

	mu  sync.Mutex
	out io.Writer
}

func newDestinationPrompt(
	ctx context.Context,
	searcher ports.SystemSearcher,
	clock shared.Clock,
	cfg lookup.Config,
	out io.Writer,
	declare func(trading.StarSystem) (*commands.TransactionResponse, error),
) *destinationPrompt {
	p := &destinationPrompt{out: out, declare: declare}
	cfg.Listener = p.onEvent
	p.lookup = lookup.New(ctx, searcher, clock, cfg)
	return p
}

func (p *destinationPrompt) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *destinationPrompt) onEvent(e lookup.Event) {
	switch e.Kind {
	case lookup.Applied:
		if len(e.Results) == 0 {
			p.printf("No systems match %q.\n", e.Query)
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		fmt.Fprintf(p.out, "Matches for %q:\n", e.Query)
		printSystems(p.out, e.Results)
	case lookup.Failed:
		p.printf("%s\n", lookup.FetchErrorMessage)
	}
}

// Run reads lines until confirm, quit or end of input
func (p *destinationPrompt) Run(in io.Reader) error {
	p.printf("Type a system name (#n to select, confirm to declare, quit to leave).\n")
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		done, err := p.handle(scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// handle applies one input line. done is true once the prompt should exit.
func (p *destinationPrompt) handle(line string) (done bool, err error) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		p.lookup.Dismiss()
		return false, nil

	case trimmed == "quit" || trimmed == "exit":
		return true, nil

	case trimmed == "?":
		p.lookup.Focus()
		snap := p.lookup.Snapshot()
		switch {
		case snap.Error != "":
			p.printf("%s\n", snap.Error)
		case snap.Open:
			p.mu.Lock()
			printSystems(p.out, snap.Results)
			p.mu.Unlock()
		case snap.Selected != nil:
			p.printf("Selected: %s\n", snap.Selected)
		default:
			p.printf("No results.\n")
		}
		return false, nil

	case trimmed == "confirm":
		system, ok := p.lookup.Selected()
		if !ok {
			p.printf("Select a system first (#n).\n")
			return false, nil
		}
		resp, err := p.declare(system)
		if err != nil {
			return true, err
		}
		p.printf("✓ %s\n", resp.Confirmation)
		return true, nil

	case strings.HasPrefix(trimmed, "#"):
		n, convErr := strconv.Atoi(strings.TrimPrefix(trimmed, "#"))
		if convErr != nil {
			p.printf("Not a result number: %s\n", trimmed)
			return false, nil
		}
		system, selErr := p.lookup.Select(n - 1)
		if selErr != nil {
			p.printf("%v\n", selErr)
			return false, nil
		}
		p.printf("Selected: %s\n", system)
		return false, nil

	default:
		p.lookup.SetText(line)
		return false, nil
	}
}

// Close stops the underlying lookup
func (p *destinationPrompt) Close() {
	p.lookup.Close()
}
