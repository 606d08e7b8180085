package refdata

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound reports a missing table, column, or row.
var ErrNotFound = errors.New("reference data not found")

// Store provides keyword-indexed access to the reference tables in a
// data directory. Tables are parsed lazily and cached.
type Store struct {
	dir string

	mu     sync.Mutex
	tables map[string]*Table
}

// Open returns a store rooted at dir. The directory is not touched until
// the first lookup.
func Open(dir string) *Store {
	return &Store{dir: dir, tables: make(map[string]*Table)}
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Table returns the parsed table for a filename such as "Dust.dat".
func (s *Store) Table(name string) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[name]; ok {
		return t, nil
	}
	t, err := parseTable(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	s.tables[name] = t
	return t, nil
}

// Lookup returns a whole column of a table by keyword.
func (s *Store) Lookup(table, keyword string) ([]string, error) {
	t, err := s.Table(table)
	if err != nil {
		return nil, err
	}
	return t.Column(keyword)
}

// SpeciesList returns the dust species shorthand names from Dust.dat.
func (s *Store) SpeciesList() ([]string, error) {
	return s.Lookup("Dust.dat", "SPECIES_SHORT")
}

// StarIndex returns the row of a star in Star.dat, or -1 when the star
// is unknown.
func (s *Store) StarIndex(starName string) (int, error) {
	names, err := s.Lookup("Star.dat", "STAR_NAME")
	if err != nil {
		return -1, err
	}
	for i, n := range names {
		if n == starName {
			return i, nil
		}
	}
	return -1, nil
}

// StarValue returns one Star.dat cell by column keyword and row index.
func (s *Store) StarValue(keyword string, index int) (string, error) {
	t, err := s.Table("Star.dat")
	if err != nil {
		return "", err
	}
	return t.Cell(keyword, index)
}

// DustValue returns one Dust.dat cell by column keyword and species index.
func (s *Store) DustValue(keyword string, index int) (string, error) {
	t, err := s.Table("Dust.dat")
	if err != nil {
		return "", err
	}
	return t.Cell(keyword, index)
}

// Table is one parsed reference table.
type Table struct {
	keywords []string
	rows     [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns all values under a column keyword.
func (t *Table) Column(keyword string) ([]string, error) {
	col := t.columnIndex(keyword)
	if col < 0 {
		return nil, fmt.Errorf("%w: column %s", ErrNotFound, keyword)
	}
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if col >= len(row) {
			out = append(out, "")
			continue
		}
		out = append(out, row[col])
	}
	return out, nil
}

// Floats returns a column parsed as float64. Empty cells parse as zero.
func (t *Table) Floats(keyword string) ([]float64, error) {
	raw, err := t.Column(keyword)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, cell := range raw {
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", keyword, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Cell returns one value by column keyword and row index.
func (t *Table) Cell(keyword string, index int) (string, error) {
	col := t.columnIndex(keyword)
	if col < 0 {
		return "", fmt.Errorf("%w: column %s", ErrNotFound, keyword)
	}
	if index < 0 || index >= len(t.rows) {
		return "", fmt.Errorf("%w: row %d", ErrNotFound, index)
	}
	row := t.rows[index]
	if col >= len(row) {
		return "", nil
	}
	return row[col], nil
}

func (t *Table) columnIndex(keyword string) int {
	for i, k := range t.keywords {
		if k == keyword {
			return i
		}
	}
	return -1
}

func parseTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	table := &Table{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			// The last comment line before the data carries the
			// column keywords.
			if len(table.rows) == 0 {
				fields := strings.Fields(strings.TrimLeft(line, "# "))
				if len(fields) > 0 {
					table.keywords = fields
				}
			}
			continue
		}
		table.rows = append(table.rows, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reference table: %w", err)
	}
	if len(table.keywords) == 0 {
		return nil, fmt.Errorf("reference table %s: no column header", filepath.Base(path))
	}
	return table, nil
}
