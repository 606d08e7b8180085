package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the model run database",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

type coolingView struct {
	ModelID  string  `json:"model_id"`
	TStar    float64 `json:"t_star"`
	RStarCM  float64 `json:"r_star_cm"`
	MdotGas  float64 `json:"mdot_gas"`
	LineRuns int     `json:"line_runs"`
	Created  string  `json:"created_at"`
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored cooling models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(func(db *modeldb.DB) error {
				records, err := db.ListCooling(cmd.Context())
				if err != nil {
					return err
				}

				views := make([]coolingView, 0, len(records))
				for _, rec := range records {
					runs, err := db.ListLineRuns(cmd.Context(), rec.ModelID)
					if err != nil {
						return err
					}
					views = append(views, coolingView{
						ModelID:  rec.ModelID,
						TStar:    rec.TStar,
						RStarCM:  rec.RStarCM,
						MdotGas:  rec.MdotGas,
						LineRuns: len(runs),
						Created:  rec.CreatedAt.Format(time.RFC3339),
					})
				}

				if asJSON {
					return writeJSON(cmd, views)
				}

				rows := make([][]string, 0, len(views))
				for _, v := range views {
					rows = append(rows, []string{
						v.ModelID,
						formatFloat(v.TStar),
						formatFloat(v.RStarCM),
						formatFloat(v.MdotGas),
						strconv.Itoa(v.LineRuns),
						v.Created,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Model", "T* (K)", "R* (cm)", "Mdot gas", "Line runs", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <model-id>",
		Short: "Show one cooling model and its line runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID := args[0]
			return ctx.withDB(func(db *modeldb.DB) error {
				rec, err := db.LookupCooling(cmd.Context(), modelID)
				if err != nil {
					return err
				}
				runs, err := db.ListLineRuns(cmd.Context(), modelID)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, map[string]any{
						"cooling":   rec,
						"line_runs": runs,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Model:       %s\n", rec.ModelID)
				fmt.Fprintf(out, "T star:      %s K\n", formatFloat(rec.TStar))
				fmt.Fprintf(out, "R star:      %s cm\n", formatFloat(rec.RStarCM))
				fmt.Fprintf(out, "Mdot gas:    %s Msun/yr\n", formatFloat(rec.MdotGas))
				if rec.TemdustFilename != "" {
					fmt.Fprintf(out, "Temdust:     %s\n", rec.TemdustFilename)
				}
				fmt.Fprintf(out, "Created:     %s\n", rec.CreatedAt.Format(time.RFC3339))

				if len(runs) == 0 {
					fmt.Fprintln(out, "No line runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.Molecule,
						run.RunKey,
						run.CreatedAt.Format(time.RFC3339),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Run", "Molecule", "Key", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
