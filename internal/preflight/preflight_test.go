package preflight_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/preflight"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	res := preflight.CheckDirectoryAccess("Gas solver home", dir)
	if !res.Passed {
		t.Fatalf("expected pass for %s: %s", dir, res.Detail)
	}

	res = preflight.CheckDirectoryAccess("Gas solver home", filepath.Join(dir, "absent"))
	if res.Passed {
		t.Fatal("expected failure for a missing directory")
	}
	if !strings.Contains(res.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", res.Detail)
	}

	file := filepath.Join(dir, "file.dat")
	testsupport.WriteLines(t, file, "x")
	res = preflight.CheckDirectoryAccess("Gas solver home", file)
	if res.Passed {
		t.Fatal("expected failure for a plain file")
	}
}

func TestCheckReferenceTables(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	res := preflight.CheckReferenceTables(cfg.Paths.DataDir)
	if res.Passed {
		t.Fatal("expected failure without reference tables")
	}

	testsupport.WriteReferenceTables(t, cfg)
	res = preflight.CheckReferenceTables(cfg.Paths.DataDir)
	if !res.Passed {
		t.Fatalf("expected pass: %s", res.Detail)
	}
	if !strings.Contains(res.Detail, "3 dust species") {
		t.Fatalf("unexpected detail %q", res.Detail)
	}
}

func TestCheckDatabasePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	res := preflight.CheckDatabasePath(cfg.Paths.DBPath)
	if !res.Passed {
		t.Fatalf("expected pass for a creatable database: %s", res.Detail)
	}
	if !strings.Contains(res.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", res.Detail)
	}

	testsupport.MustOpenDB(t, cfg)
	res = preflight.CheckDatabasePath(cfg.Paths.DBPath)
	if !res.Passed || strings.Contains(res.Detail, "will be created") {
		t.Fatalf("expected size report for an existing database: %s", res.Detail)
	}
}

func TestRunAllCoversConfiguredPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	results := preflight.RunAll(cfg)
	if len(results) != 8 {
		t.Fatalf("expected 8 checks, got %d", len(results))
	}
	for _, res := range results {
		if res.Name == "Solver disk space" {
			continue
		}
		if !res.Passed {
			t.Fatalf("check %q failed: %s", res.Name, res.Detail)
		}
	}
}

func TestRunAllSkipsOptionalDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)
	cfg.Paths.GasDataDir = ""
	cfg.Paths.MoleculeDataDir = ""

	results := preflight.RunAll(cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(results))
	}
	for _, res := range results {
		if strings.Contains(res.Name, "line data") || strings.Contains(res.Name, "Molecule data") {
			t.Fatalf("optional check should be skipped: %q", res.Name)
		}
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if got := preflight.RunAll(nil); got != nil {
		t.Fatalf("expected no checks, got %v", got)
	}
}
