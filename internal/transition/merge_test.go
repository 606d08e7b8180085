package transition_test

import (
	"errors"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

func mustTransition(t *testing.T, p transition.Params) *transition.Transition {
	t.Helper()
	tr, err := transition.New(p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func TestBuildSetMergesDuplicates(t *testing.T) {
	co := newCO()
	a := mustTransition(t, transition.Params{
		Molecule: co, JUp: 2, JLow: 1, Telescope: "APEX",
		Datafiles: []string{"rdor_12C16O21_APEX.dat"},
	})
	b := mustTransition(t, transition.Params{
		Molecule: co, JUp: 2, JLow: 1, Telescope: "APEX",
		Datafiles: []string{"rdor_12C16O21_APEX_2.dat"},
	})
	c := mustTransition(t, transition.Params{
		Molecule: co, JUp: 3, JLow: 2, Telescope: "APEX",
	})

	set, err := transition.BuildSet([]*transition.Transition{a, b, c})
	if err != nil {
		t.Fatalf("BuildSet failed: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected two distinct transitions, got %d", len(set))
	}
	if files := set[0].Datafiles(); len(files) != 2 {
		t.Fatalf("expected both data files on the survivor, got %v", files)
	}
}

func TestBuildSetRejectsConflictingRunParameters(t *testing.T) {
	co := newCO()
	a := mustTransition(t, transition.Params{Molecule: co, JUp: 2, JLow: 1, Telescope: "APEX"})
	b := mustTransition(t, transition.Params{Molecule: co, JUp: 2, JLow: 1, Telescope: "APEX", NQuad: 50})

	_, err := transition.BuildSet([]*transition.Transition{a, b})
	if !errors.Is(err, transition.ErrIdentity) {
		t.Fatalf("expected identity violation, got %v", err)
	}
}

func TestMergePreservesOrder(t *testing.T) {
	co := newCO()
	a := mustTransition(t, transition.Params{Molecule: co, JUp: 3, JLow: 2})
	b := mustTransition(t, transition.Params{Molecule: co, JUp: 2, JLow: 1})
	dup := mustTransition(t, transition.Params{
		Molecule: co, JUp: 3, JLow: 2,
		Datafiles: []string{"extra.dat"},
	})

	merged := transition.Merge([]*transition.Transition{a, b, dup})
	if len(merged) != 2 {
		t.Fatalf("expected two transitions, got %d", len(merged))
	}
	if merged[0] != a || merged[1] != b {
		t.Fatal("first-seen order not preserved")
	}
	if files := a.Datafiles(); len(files) != 1 || files[0] != "extra.dat" {
		t.Fatalf("duplicate data files not folded in: %v", files)
	}
}
