package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/DriesNicolaes/ComboCode/internal/refdata"
)

// minFreeBytes is the free-space floor below which the solver homes are
// considered too full for a model run.
const minFreeBytes = 1 << 30

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReadableDirectory verifies that the directory exists and is readable.
func CheckReadableDirectory(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckDiskSpace verifies that the filesystem holding path has room for
// solver output.
func CheckDiskSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/float64(1<<30))
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " below 1 GiB floor"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckReferenceTables verifies that the reference data directory holds
// parseable star, dust and molecule tables.
func CheckReferenceTables(dataDir string) Result {
	const name = "Reference tables"

	ref := refdata.Open(dataDir)
	for _, table := range []string{"Star.dat", "Dust.dat", "Molecule.dat"} {
		if _, err := ref.Table(table); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s: %v", table, err)}
		}
	}
	species, err := ref.SpeciesList()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d dust species)", dataDir, len(species))}
}

// CheckDatabasePath verifies that the model database location is usable.
func CheckDatabasePath(dbPath string) Result {
	const name = "Model database"

	dir := filepath.Dir(dbPath)
	if res := CheckDirectoryAccess(name, dir); !res.Passed {
		return res
	}
	if info, err := os.Stat(dbPath); err == nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", dbPath, info.Size())}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", dbPath)}
}
