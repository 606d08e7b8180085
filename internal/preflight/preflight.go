package preflight

import (
	"github.com/DriesNicolaes/ComboCode/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check applicable to the given config.
// Optional directories are only checked when configured.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Gas solver home", cfg.Paths.GasHome))
	results = append(results, CheckDirectoryAccess("Dust solver home", cfg.Paths.DustHome))
	results = append(results, CheckReadableDirectory("Reference data", cfg.Paths.DataDir))

	if cfg.Paths.GasDataDir != "" {
		results = append(results, CheckReadableDirectory("Observed line data", cfg.Paths.GasDataDir))
	}
	if cfg.Paths.MoleculeDataDir != "" {
		results = append(results, CheckReadableDirectory("Molecule data", cfg.Paths.MoleculeDataDir))
	}

	results = append(results, CheckReferenceTables(cfg.Paths.DataDir))
	results = append(results, CheckDatabasePath(cfg.Paths.DBPath))
	results = append(results, CheckDiskSpace("Solver disk space", cfg.Paths.GasHome))

	return results
}
