package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/config"
)

// WriteLines writes the given lines to path, creating parent directories.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteReferenceTables seeds the data directory with small Star.dat,
// Dust.dat and Molecule.dat tables covering the fixtures the tests use.
func WriteReferenceTables(t testing.TB, cfg *config.Config) {
	t.Helper()

	WriteLines(t, filepath.Join(cfg.Paths.DataDir, "Star.dat"),
		"# STAR_NAME STAR_NAME_PLOTS STAR_NAME_GASTRONOOM V_LSR A_K LONG LAT DISTANCE",
		"rdor R_Dor rdor 7.0 0.01 290.0 -30.0 59.0",
		"whya W_Hya whya 40.5 0.02 318.0 32.8 98.0",
	)
	WriteLines(t, filepath.Join(cfg.Paths.DataDir, "Dust.dat"),
		"# SPECIES_SHORT SPEC_DENS T_DES T_DESA T_DESB PART_FILE",
		"AMCDHSPREI 1.8 1300.0 0.0 0.0 amcdhsprei.particle",
		"FORSTERITE 3.3 900.0 28.355 0.02642 forsterite.particle",
		"ALUMINA 4.0 1500.0 0.0 0.0 alumina.particle",
	)
	WriteLines(t, filepath.Join(cfg.Paths.DataDir, "Molecule.dat"),
		"# TYPE_SHORT MOLEC_TYPE NY_LOW SPEC_INDICES",
		"12C16O CO 61 0",
		"1H1H16O H2O 45 1",
	)
}

// WriteDustStructure writes a dust model structure file with the radial
// grid followed by theta-resolved density and temperature sections. The
// dens and temp slices carry nrad*ntheta values each.
func WriteDustStructure(t testing.TB, cfg *config.Config, modelID, filename string, rad, dens, temp []float64) {
	t.Helper()

	if filename == "" {
		filename = "denstemp.dat"
	}
	lines := []string{"  RADIUS"}
	for _, r := range rad {
		lines = append(lines, fmt.Sprintf("  %.8e", r))
	}
	lines = append(lines, "  DENSITY")
	for _, d := range dens {
		lines = append(lines, fmt.Sprintf("  %.8e", d))
	}
	lines = append(lines, "  TEMPERATURE")
	for _, v := range temp {
		lines = append(lines, fmt.Sprintf("  %.8e", v))
	}
	path := filepath.Join(cfg.Paths.DustHome, "models", modelID, filename)
	WriteLines(t, path, lines...)
}

// WriteCooling writes the gas code's radial structure file with RADIUS,
// VEL and VDRIFT columns.
func WriteCooling(t testing.TB, cfg *config.Config, modelID string, radius, vel, vdrift []float64) {
	t.Helper()

	lines := []string{"# RADIUS VEL VDRIFT"}
	for i := range radius {
		lines = append(lines, fmt.Sprintf("%.8e  %.8e  %.8e", radius[i], vel[i], vdrift[i]))
	}
	path := filepath.Join(cfg.Paths.GasHome, "models", modelID, "coolfgr_all"+modelID+".dat")
	WriteLines(t, path, lines...)
}

// WriteGasInput writes the echoed input file of a gas model as a single
// row of whitespace-separated values.
func WriteGasInput(t testing.TB, cfg *config.Config, modelID string, fields ...float64) {
	t.Helper()

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%.6e", f)
	}
	path := filepath.Join(cfg.Paths.GasHome, "models", modelID, "input"+modelID+".dat")
	WriteLines(t, path, strings.Join(parts, "  "))
}

// WriteObservedProfile writes a two-column velocity/intensity data file
// with an optional vlsr header.
func WriteObservedProfile(t testing.TB, path string, velocity, flux []float64, vlsr float64, withHint bool) {
	t.Helper()

	var lines []string
	if withHint {
		lines = append(lines, fmt.Sprintf("# vlsr=%.2f", vlsr))
	}
	for i := range velocity {
		lines = append(lines, fmt.Sprintf("%.4f  %.6f", velocity[i], flux[i]))
	}
	WriteLines(t, path, lines...)
}

// WriteRadiat writes a molecule's radiative transition table under the
// molecule data directory. Each row is "upper lower frequencyGHz".
func WriteRadiat(t testing.TB, cfg *config.Config, short string, rows ...string) {
	t.Helper()

	lines := append([]string{"# up low freq"}, rows...)
	WriteLines(t, filepath.Join(cfg.Paths.MoleculeDataDir, short+"_radiat.dat"), lines...)
}
