package testsupport

import (
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/config"
	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
)

// MustOpenDB opens the model database for tests and registers cleanup.
func MustOpenDB(t testing.TB, cfg *config.Config) *modeldb.DB {
	t.Helper()

	db, err := modeldb.Open(cfg.Paths.DBPath)
	if err != nil {
		t.Fatalf("modeldb.Open: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
