package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DriesNicolaes/ComboCode/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify directories, reference tables, and disk space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)

			if asJSON {
				type view struct {
					Name   string `json:"name"`
					Passed bool   `json:"passed"`
					Detail string `json:"detail"`
				}
				views := make([]view, 0, len(results))
				for _, res := range results {
					views = append(views, view{Name: res.Name, Passed: res.Passed, Detail: res.Detail})
				}
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Preflight for "+displayStarName(cfg.Star.Name), colorize) {
					fmt.Fprintln(out, line)
				}
				for _, res := range results {
					kind := statusError
					if res.Passed {
						kind = statusOK
					}
					fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
				}
			}

			failed := 0
			for _, res := range results {
				if !res.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of status lines")
	return cmd
}
