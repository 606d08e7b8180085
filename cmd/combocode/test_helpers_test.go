package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/config"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

// setupCLITestEnv builds an isolated workspace: solver homes, reference
// tables and a config file pointing at them. HOME is redirected so the
// default config resolution never sees the invoking user's files.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	cfg := testsupport.NewConfig(t)
	testsupport.WriteReferenceTables(t, cfg)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	testsupport.WriteLines(t, configPath,
		"[paths]",
		fmt.Sprintf("gas_home = %q", cfg.Paths.GasHome),
		fmt.Sprintf("dust_home = %q", cfg.Paths.DustHome),
		fmt.Sprintf("data_dir = %q", cfg.Paths.DataDir),
		fmt.Sprintf("gas_data_dir = %q", cfg.Paths.GasDataDir),
		fmt.Sprintf("molecule_data_dir = %q", cfg.Paths.MoleculeDataDir),
		fmt.Sprintf("log_dir = %q", cfg.Paths.LogDir),
		fmt.Sprintf("db_path = %q", cfg.Paths.DBPath),
		"",
		"[star]",
		`name = "rdor"`,
	)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

// runCLI executes the root command with args, returning stdout and
// stderr.
func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
