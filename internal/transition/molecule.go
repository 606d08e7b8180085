package transition

import "strings"

// RadiativeLine is one entry of a molecule's radiative transition table:
// a lower and upper level index and the line frequency in Hz.
type RadiativeLine struct {
	Lower     int
	Upper     int
	Frequency float64
}

// LevelIndex maps a spectroscopic level index to its quantum numbers, in
// the order v, J, Ka, Kc (trailing numbers absent for molecules with
// fewer relevant quantum numbers).
type LevelIndex struct {
	Index   int
	Quantum []int
}

// Molecule carries the spectroscopic reference data a transition needs
// to resolve its frequency.
type Molecule struct {
	// Short is the shorthand name (e.g. "12C16O"), Full the gas code's
	// full identifier (e.g. "C18O 2-0.0E-4 1.0").
	Short string
	Full  string

	// NyLow is the number of levels in the ground vibrational state,
	// used for the plain ladder index when no index table exists.
	NyLow int

	// SpecIndices selects the quantum-number layout of the index
	// table; zero means no table (plain ladder).
	SpecIndices int

	// Levels is the spectroscopic index table, empty for plain-ladder
	// molecules.
	Levels []LevelIndex

	// Lines is the radiative transition table.
	Lines []RadiativeLine

	// EnergyLevels holds level energies in 1/cm, positioned by level
	// index (1-based).
	EnergyLevels []float64
}

// IsWater reports whether the molecule is a water isotopologue; water
// lines are routed to the dedicated instrument band.
func (m *Molecule) IsWater() bool {
	short := strings.TrimPrefix(m.Short, "p")
	switch short {
	case "1H1H16O", "1H1H17O", "1H1H18O":
		return true
	}
	return false
}

// EnergyLevel returns the energy of a 1-based level index, or 0 when the
// molecule has no energy table.
func (m *Molecule) EnergyLevel(index int) float64 {
	if index < 1 || index > len(m.EnergyLevels) {
		return 0
	}
	return m.EnergyLevels[index-1]
}

// levelIndex resolves quantum numbers to a level index. The boolean is
// false when the quantum numbers do not appear in the index table.
func (m *Molecule) levelIndex(v, j, ka, kc int) (int, bool) {
	if len(m.Levels) == 0 {
		return j + v*m.NyLow + 1, true
	}
	quantum := []int{v, j, ka, kc}
	for _, lvl := range m.Levels {
		if len(lvl.Quantum) > len(quantum) {
			continue
		}
		match := true
		for i, q := range lvl.Quantum {
			if quantum[i] != q {
				match = false
				break
			}
		}
		if match {
			return lvl.Index, true
		}
	}
	return 0, false
}
