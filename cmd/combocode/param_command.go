package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DriesNicolaes/ComboCode/internal/star"
)

type paramResult struct {
	Name   string `json:"name"`
	Value  any    `json:"value,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newParamCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "param <name> [name...]",
		Short: "Resolve model parameters against a model definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}

			results := make([]paramResult, 0, len(args))
			failures := 0
			for _, arg := range args {
				name := strings.ToUpper(strings.TrimSpace(arg))
				res := paramResult{Name: name}
				value, err := store.Get(name)
				if err != nil {
					res.Error = err.Error()
					failures++
					if errors.Is(err, star.ErrMissing) {
						res.Error = "not set and not derivable"
					}
				} else {
					res.Value = value
					if status, ok := store.Status(name); ok {
						res.Status = status.String()
					}
				}
				results = append(results, res)
			}

			if asJSON {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, res := range results {
					display := formatValue(res.Value)
					if res.Error != "" {
						display = "error: " + res.Error
					}
					rows = append(rows, []string{res.Name, display, res.Status})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Parameter", "Value", "Status"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d parameters failed to resolve", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
