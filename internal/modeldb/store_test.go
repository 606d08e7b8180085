package modeldb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

func addCooling(t *testing.T, db *modeldb.DB, modelID string) {
	t.Helper()
	err := db.AddCooling(context.Background(), modeldb.CoolingRecord{
		ModelID:         modelID,
		TStar:           2500,
		RStarCM:         2.78e13,
		MdotGas:         2e-6,
		TemdustFilename: "Td_" + modelID + ".dat",
	})
	if err != nil {
		t.Fatalf("AddCooling failed: %v", err)
	}
}

func TestNewModelID(t *testing.T) {
	ts := time.Date(2020, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := modeldb.NewModelID(ts); got != "model_2020-03-14h15-09-26" {
		t.Fatalf("unexpected model id %q", got)
	}
}

func TestCoolingRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	addCooling(t, db, "model_2020-03-14h15-09-26")

	rec, err := db.LookupCooling(context.Background(), "model_2020-03-14h15-09-26")
	if err != nil {
		t.Fatalf("LookupCooling failed: %v", err)
	}
	if rec.TStar != 2500 || rec.MdotGas != 2e-6 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.TemdustFilename != "Td_model_2020-03-14h15-09-26.dat" {
		t.Fatalf("unexpected filename %q", rec.TemdustFilename)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("created timestamp not recorded")
	}
}

func TestCoolingUpsert(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	addCooling(t, db, "model_2020-03-14h15-09-26")
	err := db.AddCooling(context.Background(), modeldb.CoolingRecord{
		ModelID: "model_2020-03-14h15-09-26",
		TStar:   2600,
		RStarCM: 2.78e13,
		MdotGas: 3e-6,
	})
	if err != nil {
		t.Fatalf("AddCooling failed: %v", err)
	}

	rec, err := db.LookupCooling(context.Background(), "model_2020-03-14h15-09-26")
	if err != nil {
		t.Fatalf("LookupCooling failed: %v", err)
	}
	if rec.TStar != 2600 || rec.MdotGas != 3e-6 {
		t.Fatalf("parameters not overwritten: %+v", rec)
	}

	list, err := db.ListCooling(context.Background())
	if err != nil {
		t.Fatalf("ListCooling failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single model, got %d", len(list))
	}
}

func TestLookupCoolingMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	_, err := db.LookupCooling(context.Background(), "model_absent")
	if !errors.Is(err, modeldb.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRegisterLineRunIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	addCooling(t, db, "model_2020-03-14h15-09-26")

	key := "TRANSITION=CO 0 2 0 0 0 1 0 0 APEX 0.00 N_QUAD=100 MASER=false"
	first, err := db.RegisterLineRun(context.Background(), "model_2020-03-14h15-09-26", "12C16O", key)
	if err != nil {
		t.Fatalf("RegisterLineRun failed: %v", err)
	}
	second, err := db.RegisterLineRun(context.Background(), "model_2020-03-14h15-09-26", "12C16O", key)
	if err != nil {
		t.Fatalf("RegisterLineRun failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("duplicate registration produced a new run: %s vs %s", first.ID, second.ID)
	}

	runs, err := db.ListLineRuns(context.Background(), "model_2020-03-14h15-09-26")
	if err != nil {
		t.Fatalf("ListLineRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one registered run, got %d", len(runs))
	}
	if runs[0].Molecule != "12C16O" || runs[0].RunKey != key {
		t.Fatalf("unexpected run %+v", runs[0])
	}
}

func TestLineRunsPerModel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	addCooling(t, db, "model_a")
	addCooling(t, db, "model_b")

	key := "TRANSITION=CO 0 2 0 0 0 1 0 0 APEX 0.00 N_QUAD=100 MASER=false"
	if _, err := db.RegisterLineRun(context.Background(), "model_a", "12C16O", key); err != nil {
		t.Fatalf("RegisterLineRun failed: %v", err)
	}

	if _, err := db.LookupLineRun(context.Background(), "model_b", key); !errors.Is(err, modeldb.ErrNotFound) {
		t.Fatalf("expected not-found error on the other model, got %v", err)
	}
}
