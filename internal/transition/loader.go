package transition

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MoleculeFiles names the spectroscopic data files of one molecule
// below the gas data directory. Indices and Levels may be empty when
// the molecule uses the plain ladder and carries no energy table.
type MoleculeFiles struct {
	// Radiat lists the radiative transitions, one per line: upper level
	// index, lower level index, frequency in GHz.
	Radiat string

	// Indices maps level indices to quantum numbers: index followed by
	// v, J and optionally Ka, Kc.
	Indices string

	// Levels lists level energies: index, energy in 1/cm.
	Levels string
}

// LoadMolecule builds a molecule from its catalogue row and data files.
func LoadMolecule(short, full string, nyLow, specIndices int, files MoleculeFiles) (*Molecule, error) {
	m := &Molecule{
		Short:       short,
		Full:        full,
		NyLow:       nyLow,
		SpecIndices: specIndices,
	}

	rows, err := readNumericRows(files.Radiat)
	if err != nil {
		return nil, fmt.Errorf("radiative table for %s: %w", short, err)
	}
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		m.Lines = append(m.Lines, RadiativeLine{
			Upper:     int(row[0]),
			Lower:     int(row[1]),
			Frequency: row[2] * 1e9,
		})
	}
	if len(m.Lines) == 0 {
		return nil, fmt.Errorf("radiative table for %s is empty", short)
	}

	if specIndices != 0 && files.Indices != "" {
		rows, err := readNumericRows(files.Indices)
		if err != nil {
			return nil, fmt.Errorf("index table for %s: %w", short, err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			quantum := make([]int, 0, len(row)-1)
			for _, q := range row[1:] {
				quantum = append(quantum, int(q))
			}
			m.Levels = append(m.Levels, LevelIndex{Index: int(row[0]), Quantum: quantum})
		}
	}

	if files.Levels != "" {
		rows, err := readNumericRows(files.Levels)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("energy table for %s: %w", short, err)
			}
		} else {
			for _, row := range rows {
				if len(row) < 2 {
					continue
				}
				index := int(row[0])
				for len(m.EnergyLevels) < index {
					m.EnergyLevels = append(m.EnergyLevels, 0)
				}
				m.EnergyLevels[index-1] = row[1]
			}
		}
	}

	return m, nil
}

func readNumericRows(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				row = nil
				break
			}
			row = append(row, v)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
