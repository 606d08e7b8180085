package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DriesNicolaes/ComboCode/internal/linefit"
	"github.com/DriesNicolaes/ComboCode/internal/logging"
	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
	"github.com/DriesNicolaes/ComboCode/internal/solver"
)

type fitResult struct {
	Molecule      string  `json:"molecule"`
	Label         string  `json:"label"`
	Telescope     string  `json:"telescope"`
	State         string  `json:"state"`
	VLSR          float64 `json:"vlsr"`
	Chi2          float64 `json:"chi2,omitempty"`
	Loglikelihood float64 `json:"loglikelihood,omitempty"`
}

func newFitCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var register bool

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Match observed line profiles to the modeled ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(func(db *modeldb.DB) error {
				store, err := ctx.openStore(db)
				if err != nil {
					return err
				}
				lines, err := store.GasLines()
				if err != nil {
					return err
				}
				vlsr, err := store.GetFloat("V_LSR")
				if err != nil {
					return err
				}
				vexp, err := store.GetFloat("VEL_INFINITY_GAS")
				if err != nil {
					return err
				}
				modelID, err := store.GetString("LAST_GASTRONOOM_MODEL")
				if err != nil {
					return err
				}

				cfg := ctx.configValue()
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return err
				}
				matcher := linefit.NewMatcher(
					solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome),
					logging.NewComponentLogger(logger, "linefit"),
					linefit.WithProfileNumber(cfg.Fitting.ProfileNumber),
				)

				var results []fitResult
				for _, t := range lines {
					if len(t.Datafiles()) == 0 {
						continue
					}
					t.SetVexp(vexp)
					if t.ModelID() == "" && modelID != "" {
						if run, err := db.LookupLineRun(cmd.Context(), modelID, t.RunKey()); err == nil {
							t.SetModelID(run.ID)
						}
					}
					eval := matcher.Evaluate(t, vlsr)
					res := fitResult{
						Molecule:  t.Molecule.Short,
						Label:     t.Label(),
						Telescope: t.Telescope,
						State:     eval.State.String(),
						VLSR:      eval.VLSR,
					}
					if eval.State == linefit.Matched {
						res.Chi2 = eval.Chi2
						if ll, ok := eval.Loglikelihood(); ok {
							res.Loglikelihood = ll
						}
						if register && modelID != "" {
							if _, err := db.RegisterLineRun(cmd.Context(), modelID, t.Molecule.Short, t.RunKey()); err != nil {
								return fmt.Errorf("register line run: %w", err)
							}
						}
					}
					results = append(results, res)
				}

				if asJSON {
					return writeJSON(cmd, results)
				}

				rows := make([][]string, 0, len(results))
				for _, res := range results {
					chi2 := ""
					ll := ""
					if res.State == linefit.Matched.String() {
						chi2 = formatFloat(res.Chi2)
						ll = formatFloat(res.Loglikelihood)
					}
					rows = append(rows, []string{
						res.Molecule,
						res.Label,
						res.Telescope,
						res.State,
						fmt.Sprintf("%.2f", res.VLSR),
						chi2,
						ll,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Molecule", "Transition", "Telescope", "State", "VLSR", "Chi2", "LogL"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				fmt.Fprintf(cmd.OutOrStdout(), "%d transitions with observed data evaluated\n", len(results))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&register, "register", false, "Record matched transitions in the run database")
	return cmd
}
