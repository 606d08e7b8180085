package solver

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnavailable reports that a solver output could not be read: the
// model has not been computed yet, the file is missing, or the requested
// keyword does not appear in it.
var ErrUnavailable = errors.New("solver output unavailable")

// Repository locates gas and dust solver output below the configured
// solver home directories.
type Repository struct {
	gasHome  string
	dustHome string
}

// NewRepository returns a repository over the given solver home
// directories. Either may be empty when that code is not in use.
func NewRepository(gasHome, dustHome string) *Repository {
	return &Repository{gasHome: gasHome, dustHome: dustHome}
}

// DustModelDir returns the output directory of a dust model.
func (r *Repository) DustModelDir(modelID string) string {
	return filepath.Join(r.dustHome, "models", modelID)
}

// GasModelDir returns the output directory of a gas model.
func (r *Repository) GasModelDir(modelID string) string {
	return filepath.Join(r.gasHome, "models", modelID)
}

// DustExchangeDir returns the directory where dust-side files destined
// for the gas code are written.
func (r *Repository) DustExchangeDir() string {
	return filepath.Join(r.dustHome, "data_for_gastronoom")
}

// GasExchangeDir returns the directory where gas-side files destined
// for the dust code are written.
func (r *Repository) GasExchangeDir() string {
	return filepath.Join(r.gasHome, "data_for_mcmax")
}

// Read returns the first column of the n rows following the
// keyword-anchored header line in a dust model output file. With n <= 0
// a single row at the anchor is read. The default filename is
// denstemp.dat and the default keyword RADIUS, matching the dust code's
// structure file.
func (r *Repository) Read(modelID, keyword, filename string, n int) ([]float64, error) {
	rows, err := r.ReadRows(modelID, keyword, filename, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out = append(out, row[0])
	}
	return out, nil
}

// ReadRows is Read without the first-column reduction.
func (r *Repository) ReadRows(modelID, keyword, filename string, n int) ([][]float64, error) {
	if filename == "" {
		filename = "denstemp.dat"
	}
	if keyword == "" {
		keyword = "RADIUS"
	}
	path := filepath.Join(r.DustModelDir(modelID), filename)
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	// Row search is keyword-anchored: data starts after the first line
	// mentioning the keyword.
	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), strings.ToUpper(keyword)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: keyword %s in %s", ErrUnavailable, keyword, filename)
	}
	if n <= 0 {
		start--
		n = 1
	}
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}

	rows := make([][]float64, 0, end-start)
	for _, line := range lines[start:end] {
		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadGasColumn returns a named column from the gas code's radial
// structure file (coolfgr_all<model>.dat). The header line containing
// the keyword defines the column order.
func (r *Repository) ReadGasColumn(modelID, keyword string) ([]float64, error) {
	filename := "coolfgr_all" + modelID + ".dat"
	path := filepath.Join(r.GasModelDir(modelID), filename)
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	col := -1
	start := -1
	for i, line := range lines {
		fields := strings.Fields(strings.TrimLeft(line, "# "))
		for j, f := range fields {
			if strings.EqualFold(f, keyword) {
				col = j
				start = i + 1
				break
			}
		}
		if col >= 0 {
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: keyword %s in %s", ErrUnavailable, keyword, filename)
	}

	var out []float64
	for _, line := range lines[start:] {
		fields := strings.Fields(line)
		if col >= len(fields) {
			continue
		}
		v, err := strconv.ParseFloat(fields[col], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no data under %s in %s", ErrUnavailable, keyword, filename)
	}
	return out, nil
}

// ReadInputValue returns one whitespace-separated field of a gas model's
// echoed input file (input<model>.dat), by row and column.
func (r *Repository) ReadInputValue(modelID string, row, col int) (float64, error) {
	filename := "input" + modelID + ".dat"
	path := filepath.Join(r.GasModelDir(modelID), filename)
	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}
	if row >= len(lines) {
		return 0, fmt.Errorf("%w: row %d in %s", ErrUnavailable, row, filename)
	}
	fields := strings.Fields(lines[row])
	if col >= len(fields) {
		return 0, fmt.Errorf("%w: column %d in %s", ErrUnavailable, col, filename)
	}
	v, err := strconv.ParseFloat(fields[col], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, filename, err)
	}
	return v, nil
}

// ReadLineProfile reads a ray-traced line profile written by the gas code
// for one transition: velocity (km/s, centred on zero) and main-beam
// intensity columns.
func (r *Repository) ReadLineProfile(modelID, filename string) (velocity, flux []float64, err error) {
	path := filepath.Join(r.GasModelDir(modelID), filename)
	lines, err := readLines(path)
	if err != nil {
		return nil, nil, err
	}
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err1 := strconv.ParseFloat(fields[0], 64)
		f, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		velocity = append(velocity, v)
		flux = append(flux, f)
	}
	if len(velocity) == 0 {
		return nil, nil, fmt.Errorf("%w: empty line profile %s", ErrUnavailable, filename)
	}
	return velocity, flux, nil
}

// ReduceGrid averages an NRAD*NTHETA array over the angular dimension,
// returning NRAD radial values.
func ReduceGrid(values []float64, ntheta int) []float64 {
	if ntheta <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	nrad := len(values) / ntheta
	out := make([]float64, 0, nrad)
	for i := 0; i < nrad; i++ {
		sum := 0.0
		for j := 0; j < ntheta; j++ {
			sum += values[i*ntheta+j]
		}
		out = append(out, sum/float64(ntheta))
	}
	return out
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, filepath.Base(path))
		}
		return nil, fmt.Errorf("open solver output: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read solver output: %w", err)
	}
	return lines, nil
}
