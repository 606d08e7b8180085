package linefit_test

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/linefit"
	"github.com/DriesNicolaes/ComboCode/internal/logging"
	"github.com/DriesNicolaes/ComboCode/internal/solver"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

const testModelID = "model_2020-01-01h00-00-00"

func newTestTransition(t *testing.T, datafiles ...string) *transition.Transition {
	t.Helper()
	m := &transition.Molecule{
		Short: "12C16O",
		Full:  "CO",
		NyLow: 61,
		Lines: []transition.RadiativeLine{
			{Upper: 3, Lower: 2, Frequency: 230.538e9},
		},
	}
	tr, err := transition.New(transition.Params{
		Molecule:  m,
		Telescope: "APEX",
		JUp:       2,
		JLow:      1,
		Datafiles: datafiles,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

// triangle is a symmetric line profile peaking at centre, zero beyond
// centre +- width.
func triangle(v, centre, width float64) float64 {
	d := math.Abs(v - centre)
	if d >= width {
		return 0
	}
	return 1 - d/width
}

// writeModelProfile writes a zero-centred triangular model profile under
// the given ray-tracing output number.
func writeModelProfile(t *testing.T, gasHome string, tr *transition.Transition, number int) {
	t.Helper()

	var modelLines []string
	for v := -6.0; v <= 6.0+1e-9; v += 0.5 {
		modelLines = append(modelLines, formatSample(v, triangle(v, 0, 4)))
	}
	modelPath := filepath.Join(gasHome, "models", testModelID,
		tr.ProfileFilename(number, testModelID))
	testsupport.WriteLines(t, modelPath, modelLines...)
}

// writeObservedTriangle writes an observed profile of the model's shape
// shifted to vlsr, with low-level noise in the line-free wings.
func writeObservedTriangle(t *testing.T, datafile string, vlsr float64) {
	t.Helper()

	var vel, flux []float64
	sign := 1.0
	for v := -20.0; v <= 24.0+1e-9; v += 0.5 {
		f := triangle(v, vlsr, 4)
		if math.Abs(v-vlsr) > 4.8 {
			f += sign * 0.01
			sign = -sign
		}
		vel = append(vel, v)
		flux = append(flux, f)
	}
	testsupport.WriteObservedProfile(t, datafile, vel, flux, vlsr, true)
}

func writeProfiles(t *testing.T, gasHome, datafile string, tr *transition.Transition, vlsr float64) {
	t.Helper()
	writeModelProfile(t, gasHome, tr, 2)
	writeObservedTriangle(t, datafile, vlsr)
}

func formatSample(v, f float64) string {
	return fmt.Sprintf("%.6f %.6f", v, f)
}

func TestEvaluateRecoversVelocityShift(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	datafile := filepath.Join(cfg.Paths.GasDataDir, "rdor_12C16O21_APEX.dat")

	tr := newTestTransition(t, datafile)
	tr.SetModelID(testModelID)
	tr.SetVexp(4.0)
	writeProfiles(t, cfg.Paths.GasHome, datafile, tr, 2.0)

	m := linefit.NewMatcher(solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome), logging.NewNop())
	eval := m.Evaluate(tr, 0.0)

	if eval.State != linefit.Matched {
		t.Fatalf("expected matched state, got %v", eval.State)
	}
	// The header hint centres the search on the true velocity; the best
	// grid point should land on it.
	if math.Abs(eval.VLSR-2.0) > 0.1 {
		t.Fatalf("recovered velocity %g, want 2.0", eval.VLSR)
	}
	// Only the wing noise contributes residuals at the best offset.
	if eval.Chi2 > 50 {
		t.Fatalf("chi-squared too high at best offset: %g", eval.Chi2)
	}

	integral, ok := eval.IntegratedModel()
	if !ok {
		t.Fatal("integrated model unavailable after match")
	}
	if math.Abs(integral-4.0) > 0.05 {
		t.Fatalf("unexpected model integral %g", integral)
	}
	if _, ok := eval.Loglikelihood(); !ok {
		t.Fatal("loglikelihood unavailable after match")
	}
}

func TestEvaluateIgnoresDeepNegativeDips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	datafile := filepath.Join(cfg.Paths.GasDataDir, "rdor_12C16O21_APEX.dat")

	tr := newTestTransition(t, datafile)
	tr.SetModelID(testModelID)
	tr.SetVexp(4.0)
	writeModelProfile(t, cfg.Paths.GasHome, tr, 2)

	// One sample inside the line window carries a deep absorption
	// artifact. It sits well below the wing noise level and must not
	// contribute residuals.
	var vel, flux []float64
	sign := 1.0
	for v := -20.0; v <= 24.0+1e-9; v += 0.5 {
		f := triangle(v, 2.0, 4)
		switch {
		case v == -2.0:
			f = -5.0
		case math.Abs(v-2.0) > 4.8:
			f += sign * 0.01
			sign = -sign
		}
		vel = append(vel, v)
		flux = append(flux, f)
	}
	testsupport.WriteObservedProfile(t, datafile, vel, flux, 2.0, true)

	m := linefit.NewMatcher(solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome), logging.NewNop())
	eval := m.Evaluate(tr, 0.0)

	if eval.State != linefit.Matched {
		t.Fatalf("expected matched state, got %v", eval.State)
	}
	if math.Abs(eval.VLSR-2.0) > 0.1 {
		t.Fatalf("recovered velocity %g, want 2.0", eval.VLSR)
	}
	// The dip, roughly 500 sigma deep, would dominate the sum if it were
	// counted; only the wing noise should remain.
	if eval.Chi2 > 50 {
		t.Fatalf("negative dip not excluded, chi-squared %g", eval.Chi2)
	}
}

func TestEvaluateReadsConfiguredProfileNumber(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	datafile := filepath.Join(cfg.Paths.GasDataDir, "rdor_12C16O21_APEX.dat")

	tr := newTestTransition(t, datafile)
	tr.SetModelID(testModelID)
	tr.SetVexp(4.0)
	writeModelProfile(t, cfg.Paths.GasHome, tr, 3)
	writeObservedTriangle(t, datafile, 2.0)

	repo := solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome)

	// Only the number-3 output exists; the default of 2 finds nothing.
	m := linefit.NewMatcher(repo, logging.NewNop())
	if eval := m.Evaluate(tr, 0.0); eval.State != linefit.Unmatched {
		t.Fatalf("default profile number unexpectedly matched: %v", eval.State)
	}

	m = linefit.NewMatcher(repo, logging.NewNop(), linefit.WithProfileNumber(3))
	eval := m.Evaluate(tr, 0.0)
	if eval.State != linefit.Matched {
		t.Fatalf("expected matched state with profile number 3, got %v", eval.State)
	}
	if math.Abs(eval.VLSR-2.0) > 0.1 {
		t.Fatalf("recovered velocity %g, want 2.0", eval.VLSR)
	}
}

func TestEvaluateWithoutDataStaysUnmatched(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	tr := newTestTransition(t)
	m := linefit.NewMatcher(solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome), logging.NewNop())
	eval := m.Evaluate(tr, 7.5)

	if eval.State != linefit.Unmatched {
		t.Fatalf("expected unmatched state, got %v", eval.State)
	}
	if eval.VLSR != 7.5 {
		t.Fatalf("nominal velocity not preserved: %g", eval.VLSR)
	}
	if _, ok := eval.IntegratedModel(); ok {
		t.Fatal("integrated model should be unavailable")
	}
}

func TestEvaluateKeepsHeaderHintWithoutModel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	datafile := filepath.Join(cfg.Paths.GasDataDir, "rdor_12C16O21_APEX.dat")

	tr := newTestTransition(t, datafile)
	testsupport.WriteObservedProfile(t, datafile,
		[]float64{-10, 0, 10}, []float64{0, 1, 0}, 3.5, true)

	m := linefit.NewMatcher(solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome), logging.NewNop())
	eval := m.Evaluate(tr, 0.0)

	if eval.State != linefit.Unmatched {
		t.Fatalf("expected unmatched state, got %v", eval.State)
	}
	if eval.VLSR != 3.5 {
		t.Fatalf("header hint not adopted: %g", eval.VLSR)
	}
}

func TestEvaluateNeedsTerminalVelocity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	datafile := filepath.Join(cfg.Paths.GasDataDir, "rdor_12C16O21_APEX.dat")

	tr := newTestTransition(t, datafile)
	tr.SetModelID(testModelID)
	writeProfiles(t, cfg.Paths.GasHome, datafile, tr, 2.0)

	m := linefit.NewMatcher(solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome), logging.NewNop())
	eval := m.Evaluate(tr, 0.0)

	if eval.State != linefit.Unmatched {
		t.Fatalf("expected unmatched state without terminal velocity, got %v", eval.State)
	}
}
