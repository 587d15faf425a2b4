package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/crew"
)

// NewEncountersCommand creates the encounters command
func NewEncountersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encounters",
		Short: "Show the space encounter log",
		Long: `Show the encounters logged as the ship moved through space, oldest
first, with the rolled value and the system they happened in.

Example:
  traveller encounters`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.EncountersQuery{})
				if err != nil {
					return err
				}
				printEncounters(cmd.OutOrStdout(), resp.(*queries.EncountersResponse))
				return nil
			})
		},
	}
}

func printEncounters(w io.Writer, result *queries.EncountersResponse) {
	if len(result.Encounters) == 0 {
		fmt.Fprintln(w, "No space encounters logged.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tENCOUNTER\tROLLED\tSYSTEM\tUWP")
	fmt.Fprintln(tw, "----\t---------\t------\t------\t---")
	for _, e := range result.Encounters {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", e.LoggedAt(), e.Name, e.Rolled, e.System, e.UWP)
	}
	tw.Flush()
}

// NewCrewCommand creates the crew command
func NewCrewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crew",
		Short: "Show the crew roster",
		Long: `Show every crew member with their characteristics and dice modifiers,
bank balance, skills (alphabetical) and current assignments.

Example:
  traveller crew`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(a.context(), &queries.CrewRosterQuery{})
				if err != nil {
					return err
				}
				printRoster(cmd.OutOrStdout(), resp.(*queries.CrewRosterResponse))
				return nil
			})
		},
	}
}

func printRoster(w io.Writer, result *queries.CrewRosterResponse) {
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "No crew members available.")
		return
	}

	for i, entry := range result.Entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		m := entry.Member
		c := m.Characteristics
		fmt.Fprintf(w, "%s\n", m.Name())
		fmt.Fprintf(w, "  STR %s  DEX %s  END %s  INT %s  EDU %s  SOC %s\n",
			characteristic(c.STR), characteristic(c.DEX), characteristic(c.END),
			characteristic(c.INT), characteristic(c.EDU), characteristic(c.SOC))
		fatigue := "Not Fatigued"
		if m.Fatigued {
			fatigue = "Fatigued"
		}
		fmt.Fprintf(w, "  Bank: %s  %s  CFI: %d  FCM: %d  FDM: %d\n", formatCredits(m.Bank), fatigue, m.CFI, m.FCM, m.FDM)

		fmt.Fprint(w, "  Skills: ")
		switch {
		case entry.SkillsError != "":
			fmt.Fprintln(w, entry.SkillsError)
		case len(entry.Skills) == 0:
			fmt.Fprintln(w, "No skills found.")
		default:
			fmt.Fprintln(w, joinSkills(entry.Skills))
		}

		fmt.Fprint(w, "  Assignments: ")
		switch {
		case entry.AssignmentsError != "":
			fmt.Fprintln(w, entry.AssignmentsError)
		case len(entry.Assignments) == 0:
			fmt.Fprintln(w, "No assignments found.")
		default:
			duties := make([]string, len(entry.Assignments))
			for j, a := range entry.Assignments {
				duties[j] = a.Duty
			}
			fmt.Fprintln(w, strings.Join(duties, ", "))
		}
	}
}

// characteristic renders a value with its modifier, e.g. "9 (+1)"
func characteristic(value int) string {
	return fmt.Sprintf("%d (%s)", value, crew.ModifierString(value))
}

func joinSkills(skills []crew.Skill) string {
	parts := make([]string, len(skills))
	for i, s := range skills {
		parts[i] = fmt.Sprintf("%s: %d", s.Name, s.Level)
	}
	return strings.Join(parts, ", ")
}
