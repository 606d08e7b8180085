package transition_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

// newCO builds a plain-ladder CO-like molecule with a three-line
// rotational ladder in the ground vibrational state.
func newCO() *transition.Molecule {
	return &transition.Molecule{
		Short: "12C16O",
		Full:  "CO",
		NyLow: 61,
		Lines: []transition.RadiativeLine{
			{Upper: 2, Lower: 1, Frequency: 115.271e9},
			{Upper: 3, Lower: 2, Frequency: 230.538e9},
			{Upper: 4, Lower: 3, Frequency: 345.796e9},
		},
		EnergyLevels: []float64{0, 3.845, 11.535, 23.069},
	}
}

// newWater builds an indexed asymmetric-rotor molecule with one line.
func newWater() *transition.Molecule {
	return &transition.Molecule{
		Short:       "1H1H16O",
		Full:        "H2O",
		NyLow:       45,
		SpecIndices: 1,
		Levels: []transition.LevelIndex{
			{Index: 1, Quantum: []int{0, 1, 0, 1}},
			{Index: 2, Quantum: []int{0, 1, 1, 0}},
		},
		Lines: []transition.RadiativeLine{
			{Upper: 2, Lower: 1, Frequency: 556.936e9},
		},
	}
}

func TestFrequencyResolution(t *testing.T) {
	tr, err := transition.New(transition.Params{
		Molecule:  newCO(),
		Telescope: "apex",
		JUp:       2,
		JLow:      1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.Frequency != 230.538e9 {
		t.Fatalf("unexpected frequency %g", tr.Frequency)
	}
	if tr.Telescope != "APEX" {
		t.Fatalf("telescope not normalized: %q", tr.Telescope)
	}
	if tr.UpperIndex != 3 || tr.LowerIndex != 2 {
		t.Fatalf("unexpected level indices %d, %d", tr.UpperIndex, tr.LowerIndex)
	}
	want := 2.99792458e10 / 230.538e9
	if math.Abs(tr.Wavelength-want)/want > 1e-12 {
		t.Fatalf("unexpected wavelength %g", tr.Wavelength)
	}
}

func TestIndexedResolution(t *testing.T) {
	tr, err := transition.New(transition.Params{
		Molecule: newWater(),
		JUp:      1, KaUp: 1, KcUp: 0,
		JLow: 1, KaLow: 0, KcLow: 1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.Frequency != 556.936e9 {
		t.Fatalf("unexpected frequency %g", tr.Frequency)
	}
	if tr.Telescope != "N.A." {
		t.Fatalf("unexpected default telescope %q", tr.Telescope)
	}
}

func TestMissingLineFails(t *testing.T) {
	_, err := transition.New(transition.Params{
		Molecule: newCO(),
		JUp:      7,
		JLow:     6,
	})
	if !errors.Is(err, transition.ErrIndexResolution) {
		t.Fatalf("expected index resolution error, got %v", err)
	}
}

func TestLineListModeSkipsResolution(t *testing.T) {
	tr, err := transition.New(transition.Params{
		Molecule:  newCO(),
		Frequency: 880.0e9,
		JUp:       8,
		JLow:      7,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.UpperIndex != 0 || tr.LowerIndex != 0 {
		t.Fatalf("expected unresolved indices, got %d, %d", tr.UpperIndex, tr.LowerIndex)
	}
	if tr.Frequency != 880.0e9 {
		t.Fatalf("unexpected frequency %g", tr.Frequency)
	}
}

func TestDescriptorAndEquality(t *testing.T) {
	a, err := transition.New(transition.Params{Molecule: newCO(), JUp: 2, JLow: 1, Telescope: "APEX"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := transition.New(transition.Params{Molecule: newCO(), JUp: 2, JLow: 1, Telescope: "APEX", NQuad: 50})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("same line should compare equal regardless of run parameters")
	}
	if a.RunKey() == b.RunKey() {
		t.Fatal("run keys should differ on quadrature count")
	}
	want := "TRANSITION=CO 0 2 0 0 0 1 0 0 APEX 0.00"
	if a.String() != want {
		t.Fatalf("descriptor %q, want %q", a.String(), want)
	}
}

func TestEnergyLookup(t *testing.T) {
	tr, err := transition.New(transition.Params{Molecule: newCO(), JUp: 3, JLow: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.EnergyUpper() != 23.069 {
		t.Fatalf("unexpected upper energy %g", tr.EnergyUpper())
	}
	if tr.EnergyLower() != 11.535 {
		t.Fatalf("unexpected lower energy %g", tr.EnergyLower())
	}
}

func TestProfileFilename(t *testing.T) {
	tr, err := transition.New(transition.Params{Molecule: newCO(), JUp: 2, JLow: 1, Telescope: "APEX"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	name := tr.ProfileFilename(2, "model_2020-01-01h00-00-00")
	want := "sph2model_2020-01-01h00-00-00_12C16O_vup0_jup2_vlow0_jlow1_APEX_OFFSET0.00.dat"
	if name != want {
		t.Fatalf("filename %q, want %q", name, want)
	}
}

func TestLabelFormats(t *testing.T) {
	co, err := transition.New(transition.Params{Molecule: newCO(), JUp: 2, JLow: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if co.Label() != "2 - 1" {
		t.Fatalf("unexpected label %q", co.Label())
	}

	water, err := transition.New(transition.Params{
		Molecule: newWater(),
		JUp:      1, KaUp: 1, KcUp: 0,
		JLow: 1, KaLow: 0, KcLow: 1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !strings.Contains(water.Label(), "(1,0)") {
		t.Fatalf("unexpected label %q", water.Label())
	}
}

func TestSetVexpOnlyOnce(t *testing.T) {
	tr, err := transition.New(transition.Params{Molecule: newCO(), JUp: 2, JLow: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr.SetVexp(14.5)
	tr.SetVexp(99.0)
	if tr.Vexp != 14.5 {
		t.Fatalf("terminal velocity overwritten: %g", tr.Vexp)
	}
}

func TestIsWater(t *testing.T) {
	if newCO().IsWater() {
		t.Fatal("CO flagged as water")
	}
	if !newWater().IsWater() {
		t.Fatal("water not flagged")
	}
	para := newWater()
	para.Short = "p1H1H16O"
	if !para.IsWater() {
		t.Fatal("para-water not flagged")
	}
}
