package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type transitionSummary struct {
	Molecule     string  `json:"molecule"`
	Descriptor   string  `json:"descriptor"`
	Label        string  `json:"label"`
	FrequencyGHz float64 `json:"frequency_ghz,omitempty"`
	Telescope    string  `json:"telescope,omitempty"`
	Datafiles    int     `json:"datafiles"`
}

func newTransitionsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Assemble and list the modeled transition set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			lines, err := store.GasLines()
			if err != nil {
				return err
			}

			summaries := make([]transitionSummary, 0, len(lines))
			for _, t := range lines {
				summaries = append(summaries, transitionSummary{
					Molecule:     t.Molecule.Short,
					Descriptor:   t.String(),
					Label:        t.Label(),
					FrequencyGHz: t.Frequency / 1e9,
					Telescope:    t.Telescope,
					Datafiles:    len(t.Datafiles()),
				})
			}

			if asJSON {
				return writeJSON(cmd, summaries)
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				freq := ""
				if s.FrequencyGHz != 0 {
					freq = fmt.Sprintf("%.4f", s.FrequencyGHz)
				}
				rows = append(rows, []string{
					s.Molecule,
					s.Label,
					freq,
					s.Telescope,
					strconv.Itoa(s.Datafiles),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Molecule", "Transition", "Freq (GHz)", "Telescope", "Data"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d transitions assembled\n", len(summaries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
