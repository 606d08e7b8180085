package refdata_test

import (
	"errors"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/refdata"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

func newStore(t *testing.T) *refdata.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)
	return refdata.Open(cfg.Paths.DataDir)
}

func TestSpeciesList(t *testing.T) {
	s := newStore(t)

	species, err := s.SpeciesList()
	if err != nil {
		t.Fatalf("SpeciesList failed: %v", err)
	}
	want := []string{"AMCDHSPREI", "FORSTERITE", "ALUMINA"}
	if len(species) != len(want) {
		t.Fatalf("unexpected species %v", species)
	}
	for i := range want {
		if species[i] != want[i] {
			t.Fatalf("unexpected species %v", species)
		}
	}
}

func TestStarIndex(t *testing.T) {
	s := newStore(t)

	index, err := s.StarIndex("whya")
	if err != nil {
		t.Fatalf("StarIndex failed: %v", err)
	}
	if index != 1 {
		t.Fatalf("unexpected index %d", index)
	}

	index, err = s.StarIndex("nobody")
	if err != nil {
		t.Fatalf("StarIndex failed: %v", err)
	}
	if index != -1 {
		t.Fatalf("expected -1 for unknown star, got %d", index)
	}
}

func TestCellLookup(t *testing.T) {
	s := newStore(t)

	cell, err := s.StarValue("DISTANCE", 0)
	if err != nil {
		t.Fatalf("StarValue failed: %v", err)
	}
	if cell != "59.0" {
		t.Fatalf("unexpected cell %q", cell)
	}

	if _, err := s.StarValue("NOPE", 0); !errors.Is(err, refdata.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if _, err := s.StarValue("DISTANCE", 12); !errors.Is(err, refdata.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestFloatsColumn(t *testing.T) {
	s := newStore(t)

	table, err := s.Table("Dust.dat")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	dens, err := table.Floats("SPEC_DENS")
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if len(dens) != 3 || dens[1] != 3.3 {
		t.Fatalf("unexpected densities %v", dens)
	}
}

func TestMissingTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := refdata.Open(cfg.Paths.DataDir)

	if _, err := s.Table("Star.dat"); !errors.Is(err, refdata.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
