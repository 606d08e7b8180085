package star_test

import (
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/star"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

func TestSublimationCoefficientsFromTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR": 2500.0,
		"R_STAR": 400.0,
	})

	// The reference table carries pressure-fit coefficients for
	// forsterite; the low-pressure sublimation temperature is their
	// ratio.
	a, err := store.GetFloat("T_DESA_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(T_DESA_FORSTERITE) failed: %v", err)
	}
	assertClose(t, a, 1e4*0.02642/28.355)

	b, err := store.GetFloat("T_DESB_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(T_DESB_FORSTERITE) failed: %v", err)
	}
	assertClose(t, b, 1e4/28.355)

	tdes, err := store.GetFloat("T_DES_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(T_DES_FORSTERITE) failed: %v", err)
	}
	assertClose(t, tdes, 28.355/0.02642)
}

func TestSublimationCoefficientsFromConstantTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR": 2500.0,
		"R_STAR": 400.0,
	})

	// Alumina has no pressure fit in the table; its constant T_DES
	// column of 1500 K stands in.
	tdes, err := store.GetFloat("T_DES_ALUMINA")
	if err != nil {
		t.Fatalf("GetFloat(T_DES_ALUMINA) failed: %v", err)
	}
	assertClose(t, tdes, 1500.0)
}

func TestSublimationCoefficientsFromExplicitMaximum(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR":        2500.0,
		"R_STAR":        400.0,
		"T_MAX_ALUMINA": 1400.0,
	})

	tdes, err := store.GetFloat("T_DES_ALUMINA")
	if err != nil {
		t.Fatalf("GetFloat(T_DES_ALUMINA) failed: %v", err)
	}
	assertClose(t, tdes, 1400.0)
}

func TestRMaxUnboundedWithoutMinimumTemperature(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR": 2500.0,
		"R_STAR": 400.0,
	})

	rmax, err := store.GetFloat("R_MAX_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(R_MAX_FORSTERITE) failed: %v", err)
	}
	if rmax != 0 {
		t.Fatalf("expected unbounded (zero), got %g", rmax)
	}
}

func TestRMaxPowerLawFallback(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR":          2500.0,
		"R_STAR":          400.0,
		"T_MIN_FORSTERITE": 500.0,
	})

	// Without dust model output the inverted power-law profile stands
	// in, halved.
	rmax, err := store.GetFloat("R_MAX_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(R_MAX_FORSTERITE) failed: %v", err)
	}
	assertClose(t, rmax, (2500.0/500.0)/2.0)
}

func TestRMaxInterpolatesSharedProfile(t *testing.T) {
	rad := []float64{1e13, 2e13, 3e13, 4e13}
	dens := []float64{1e-20, 1e-20, 1e-20, 1e-20}
	temp := []float64{1500, 1200, 900, 600}

	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)
	testsupport.WriteDustStructure(t, cfg, "mctest", "", rad, dens, temp)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR":           2500.0,
		"R_STAR":           1.0,
		"LAST_MCMAX_MODEL": "mctest",
		"NRAD":             4,
		"NTHETA":           1,
		"T_CONTACT":        1,
		"T_MIN_FORSTERITE": 750.0,
	})

	rmax, err := store.GetFloat("R_MAX_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(R_MAX_FORSTERITE) failed: %v", err)
	}
	// 750 K sits halfway between the 900 K and 600 K grid points.
	assertClose(t, rmax, 3.5e13/star.RSunCM)
}

func TestRMaxColdEnvelopeClampsToSurface(t *testing.T) {
	rad := []float64{1e13, 2e13}
	dens := []float64{1e-20, 1e-20}
	temp := []float64{500, 300}

	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)
	testsupport.WriteDustStructure(t, cfg, "mctest", "", rad, dens, temp)

	store := newTestStore(t, cfg, map[string]any{
		"T_STAR":           2500.0,
		"R_STAR":           1.0,
		"LAST_MCMAX_MODEL": "mctest",
		"NRAD":             2,
		"NTHETA":           1,
		"T_CONTACT":        1,
		"T_MIN_FORSTERITE": 800.0,
	})

	rmax, err := store.GetFloat("R_MAX_FORSTERITE")
	if err != nil {
		t.Fatalf("GetFloat(R_MAX_FORSTERITE) failed: %v", err)
	}
	assertClose(t, rmax, 1.0)
}

func TestRMinDefaultsToZero(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, nil)

	rmin, err := store.GetFloat("R_MIN_ALUMINA")
	if err != nil {
		t.Fatalf("GetFloat(R_MIN_ALUMINA) failed: %v", err)
	}
	if rmin != 0 {
		t.Fatalf("expected zero, got %g", rmin)
	}
}

func TestDustListFromAbundances(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"A_AMCDHSPREI": 0.8,
		"A_FORSTERITE": 0.0,
		"A_ALUMINA":    0.2,
	})

	list, err := store.GetStrings("DUST_LIST")
	if err != nil {
		t.Fatalf("GetStrings(DUST_LIST) failed: %v", err)
	}
	if len(list) != 2 || list[0] != "AMCDHSPREI" || list[1] != "ALUMINA" {
		t.Fatalf("unexpected dust list %v", list)
	}
}

func TestSpecDensDust(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, map[string]any{
		"A_AMCDHSPREI": 0.8,
		"A_ALUMINA":    0.2,
	})

	dens, err := store.GetFloat("SPEC_DENS_DUST")
	if err != nil {
		t.Fatalf("GetFloat(SPEC_DENS_DUST) failed: %v", err)
	}
	assertClose(t, dens, 0.8*1.8+0.2*4.0)
}

func TestUnknownSpeciesSuffixIsMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	store := newTestStore(t, cfg, nil)

	if _, err := store.Get("T_DES_NOTASPECIES"); err == nil {
		t.Fatal("expected an error for an unknown species suffix")
	}
}
