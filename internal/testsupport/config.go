package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.GasHome = filepath.Join(base, "gastronoom")
	cfgVal.Paths.DustHome = filepath.Join(base, "mcmax")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.GasDataDir = filepath.Join(base, "linedata")
	cfgVal.Paths.MoleculeDataDir = filepath.Join(base, "molecdata")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DBPath = filepath.Join(base, "models.db")

	for _, dir := range []string{
		cfgVal.Paths.GasHome,
		cfgVal.Paths.DustHome,
		cfgVal.Paths.DataDir,
		cfgVal.Paths.GasDataDir,
		cfgVal.Paths.MoleculeDataDir,
		cfgVal.Paths.LogDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStarName sets the default modeling target on the test config.
func WithStarName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Star.Name = name
	}
}

// WithNQuad overrides the quadrature point count on the test config.
func WithNQuad(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fitting.NQuad = n
	}
}
