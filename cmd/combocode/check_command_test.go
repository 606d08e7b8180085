package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckReportsReadiness(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--config", env.configPath, "check"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Preflight for Rdor")
	requireContains(t, out, "Reference tables:")
	requireContains(t, out, "[OK]")
}

func TestCheckJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--config", env.configPath, "check", "--json"})
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}

	var results []struct {
		Name   string `json:"name"`
		Passed bool   `json:"passed"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(results) == 0 {
		t.Fatal("no check results reported")
	}
	found := false
	for _, res := range results {
		if res.Name == "Reference tables" {
			found = true
			if !res.Passed {
				t.Fatalf("reference tables check failed: %s", res.Detail)
			}
		}
	}
	if !found {
		t.Fatal("reference tables check missing")
	}
}

func TestCheckFailsOnMissingTables(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(env.cfg.Paths.DataDir, "Star.dat")); err != nil {
		t.Fatalf("remove star catalogue: %v", err)
	}

	if _, _, err := runCLI(t, []string{"--config", env.configPath, "check"}); err == nil {
		t.Fatal("expected failing checks to surface as an error")
	}
}
