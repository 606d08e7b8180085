package star

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

// calcDustList selects the dust species with a nonzero abundance, in
// reference-table order.
func calcDustList(s *Store) error {
	var list []string
	for _, species := range s.species {
		if !s.Has("A_" + species) {
			continue
		}
		a, err := s.GetFloatPresent("A_" + species)
		if err != nil {
			return err
		}
		if a != 0 {
			list = append(list, species)
		}
	}
	s.logger.Info("dust species selected", "species", strings.Join(list, ", "))
	s.setDerived("DUST_LIST", list)
	return nil
}

// GasList resolves the modeled molecule collection.
func (s *Store) GasList() ([]*transition.Molecule, error) {
	v, err := s.Get("GAS_LIST")
	if err != nil {
		return nil, err
	}
	list, ok := v.([]*transition.Molecule)
	if !ok {
		return nil, fmt.Errorf("parameter GAS_LIST: %T is not a molecule list", v)
	}
	return list, nil
}

// GasLines resolves the assembled transition collection.
func (s *Store) GasLines() ([]*transition.Transition, error) {
	v, err := s.Get("GAS_LINES")
	if err != nil {
		return nil, err
	}
	list, ok := v.([]*transition.Transition)
	if !ok {
		return nil, fmt.Errorf("parameter GAS_LINES: %T is not a transition list", v)
	}
	return list, nil
}

// calcGasList converts the MOLECULE input rows into loaded molecules.
// The same molecule requested twice is a configuration error.
func calcGasList(s *Store) error {
	rows, err := s.GetStrings("MOLECULE")
	if err != nil {
		return err
	}
	list := make([]*transition.Molecule, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) == 0 {
			continue
		}
		m, err := s.loadMolecule(fields[0])
		if err != nil {
			return err
		}
		if _, dup := seen[m.Short]; dup {
			return fmt.Errorf("molecule %s requested more than once", m.Short)
		}
		seen[m.Short] = struct{}{}
		list = append(list, m)
	}
	s.setDerived("GAS_LIST", list)
	return nil
}

// loadMolecule resolves a molecule identifier (short or full form)
// through the molecule catalogue and loads its spectroscopic files.
func (s *Store) loadMolecule(name string) (*transition.Molecule, error) {
	if m, ok := s.molecules[name]; ok {
		return m, nil
	}
	if s.ref == nil {
		return nil, fmt.Errorf("no reference data to resolve molecule %s", name)
	}
	table, err := s.ref.Table("Molecule.dat")
	if err != nil {
		return nil, err
	}
	shorts, err := table.Column("TYPE_SHORT")
	if err != nil {
		return nil, err
	}
	fulls, err := table.Column("MOLEC_TYPE")
	if err != nil {
		return nil, err
	}
	row := -1
	for i := range shorts {
		if shorts[i] == name || (i < len(fulls) && fulls[i] == name) {
			row = i
			break
		}
	}
	if row < 0 {
		return nil, fmt.Errorf("molecule %s not in catalogue", name)
	}

	nyLow, err := tableInt(table.Cell("NY_LOW", row))
	if err != nil {
		return nil, fmt.Errorf("molecule %s: %w", name, err)
	}
	specIndices, err := tableInt(table.Cell("SPEC_INDICES", row))
	if err != nil {
		return nil, fmt.Errorf("molecule %s: %w", name, err)
	}

	dataDir, err := s.GetString("PATH_MOLECULE_DATA")
	if err != nil {
		return nil, err
	}
	short := shorts[row]
	files := transition.MoleculeFiles{
		Radiat: filepath.Join(dataDir, short+"_radiat.dat"),
		Levels: filepath.Join(dataDir, short+"_levels.dat"),
	}
	if specIndices != 0 {
		files.Indices = filepath.Join(dataDir, short+"_indices.dat")
	}
	m, err := transition.LoadMolecule(short, fulls[row], nyLow, specIndices, files)
	if err != nil {
		return nil, err
	}
	s.molecules[name] = m
	s.molecules[short] = m
	return m, nil
}

func tableInt(cell string, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("catalogue cell %q is not an integer", cell)
	}
	return v, nil
}

// calcGasLines assembles the full transition collection: observed data
// files matched to molecules, explicitly requested transitions, and
// line-list selections. The assembled set must hold exactly one entry
// per canonical descriptor.
func calcGasLines(s *Store) error {
	gasList, err := s.GasList()
	if err != nil {
		return err
	}
	var lines []*transition.Transition

	fromData, err := s.transitionsFromData(gasList)
	if err != nil {
		return err
	}
	lines = append(lines, fromData...)

	fromInput, err := s.transitionsFromInput(gasList)
	if err != nil {
		return err
	}
	lines = append(lines, fromInput...)

	fromLists, err := s.transitionsFromLineLists(gasList)
	if err != nil {
		return err
	}
	lines = append(lines, fromLists...)

	assembled, err := transition.BuildSet(lines)
	if err != nil {
		return err
	}
	sort.Slice(assembled, func(i, j int) bool {
		return assembled[i].String() < assembled[j].String()
	})
	s.setDerived("GAS_LINES", assembled)
	return nil
}

// transitionsFromData scans the observed data directory for line
// profiles of this star. Filenames follow
// <star>_<molec><Jup><Jlow>_..._<telescope>.<ext>; each match becomes a
// transition carrying its data file.
func (s *Store) transitionsFromData(gasList []*transition.Molecule) ([]*transition.Transition, error) {
	dataPath, err := s.GetString("PATH_GAS_DATA")
	if err != nil {
		return nil, err
	}
	dataMol, err := s.GetBool("DATA_MOL")
	if err != nil {
		return nil, err
	}
	if dataPath == "" || !dataMol {
		return nil, nil
	}
	starName, err := s.GetString("STAR_NAME_GASTRONOOM")
	if err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(dataPath, starName+"_*.*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	nquad, err := s.GetInt("N_QUAD")
	if err != nil {
		return nil, err
	}
	maser, err := s.GetBool("USE_MASER_IN_SPHINX")
	if err != nil {
		return nil, err
	}

	var lines []*transition.Transition
	for _, path := range matches {
		if strings.HasSuffix(path, "~") {
			continue
		}
		base := filepath.Base(path)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		rest := strings.TrimPrefix(base, starName+"_")
		parts := strings.Split(rest, "_")
		if len(parts) < 2 {
			continue
		}
		tag := parts[0]
		telescope := parts[len(parts)-1]
		for _, m := range gasList {
			if !strings.HasPrefix(tag, m.Short) {
				continue
			}
			// The two digits trailing the molecule tag are Jup and Jlow.
			if len(tag) < len(m.Short)+2 {
				continue
			}
			jup, err1 := strconv.Atoi(tag[len(tag)-2 : len(tag)-1])
			jlow, err2 := strconv.Atoi(tag[len(tag)-1:])
			if err1 != nil || err2 != nil {
				continue
			}
			t, err := transition.New(transition.Params{
				Molecule:  m,
				Telescope: telescope,
				JUp:       jup,
				JLow:      jlow,
				NQuad:     nquad,
				UseMaser:  maser,
				Datafiles: []string{path},
			})
			if err != nil {
				return nil, fmt.Errorf("data file %s: %w", filepath.Base(path), err)
			}
			lines = append(lines, t)
		}
	}
	return lines, nil
}

// transitionsFromInput converts explicit TRANSITION rows, dropping rows
// for molecules not in the gas list.
func (s *Store) transitionsFromInput(gasList []*transition.Molecule) ([]*transition.Transition, error) {
	if !s.Has("TRANSITION") {
		return nil, nil
	}
	rows, err := s.GetStrings("TRANSITION")
	if err != nil {
		return nil, err
	}
	var lines []*transition.Transition
	for _, row := range rows {
		fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(row), "TRANSITION="))
		if len(fields) == 0 {
			continue
		}
		m := findMolecule(gasList, fields[0])
		if m == nil {
			continue
		}
		t, err := s.makeTransition(m, fields)
		if err != nil {
			return nil, fmt.Errorf("transition row %q: %w", row, err)
		}
		lines = append(lines, t)
	}
	return lines, nil
}

// makeTransition parses one transition row:
// molecule vup jup kaup kcup vlow jlow kalow kclow [telescope [offset]].
func (s *Store) makeTransition(m *transition.Molecule, fields []string) (*transition.Transition, error) {
	quantum := make([]int, 8)
	for i := range quantum {
		if i+1 >= len(fields) {
			break
		}
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("quantum number %q: %w", fields[i+1], err)
		}
		quantum[i] = v
	}
	p := transition.Params{
		Molecule: m,
		VUp:      quantum[0], JUp: quantum[1], KaUp: quantum[2], KcUp: quantum[3],
		VLow: quantum[4], JLow: quantum[5], KaLow: quantum[6], KcLow: quantum[7],
	}
	if len(fields) > 9 {
		p.Telescope = fields[9]
	}
	if len(fields) > 10 {
		offset, err := strconv.ParseFloat(fields[10], 64)
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", fields[10], err)
		}
		p.Offset = offset
	}
	var err error
	p.NQuad, err = s.GetInt("N_QUAD")
	if err != nil {
		return nil, err
	}
	p.UseMaser, err = s.GetBool("USE_MASER_IN_SPHINX")
	if err != nil {
		return nil, err
	}
	return transition.New(p)
}

// transitionsFromLineLists selects every radiative line of the modeled
// molecules inside the requested frequency window, in line-list mode.
func (s *Store) transitionsFromLineLists(gasList []*transition.Molecule) ([]*transition.Transition, error) {
	mode, err := s.GetInt("LINE_LISTS")
	if err != nil {
		return nil, err
	}
	if mode == 0 {
		return nil, nil
	}
	minGHz, err := s.GetFloat("LL_MIN")
	if err != nil {
		return nil, err
	}
	maxGHz, err := s.GetFloat("LL_MAX")
	if err != nil {
		return nil, err
	}
	offset, err := s.GetFloat("LL_OFFSET")
	if err != nil {
		return nil, err
	}
	nquad, err := s.GetInt("N_QUAD")
	if err != nil {
		return nil, err
	}
	maser, err := s.GetBool("USE_MASER_IN_SPHINX")
	if err != nil {
		return nil, err
	}

	var lines []*transition.Transition
	for _, m := range gasList {
		for _, rl := range m.Lines {
			freqGHz := rl.Frequency / 1e9
			if minGHz != 0 && freqGHz < minGHz {
				continue
			}
			if maxGHz != 0 && freqGHz > maxGHz {
				continue
			}
			vup, jup, kaup, kcup := quantumForIndex(m, rl.Upper)
			vlow, jlow, kalow, kclow := quantumForIndex(m, rl.Lower)
			t, err := transition.New(transition.Params{
				Molecule:  m,
				Frequency: rl.Frequency,
				VUp:       vup, JUp: jup, KaUp: kaup, KcUp: kcup,
				VLow: vlow, JLow: jlow, KaLow: kalow, KcLow: kclow,
				Offset:   offset,
				NQuad:    nquad,
				UseMaser: maser,
			})
			if err != nil {
				return nil, err
			}
			lines = append(lines, t)
		}
	}
	return lines, nil
}

// quantumForIndex inverts a level index back to quantum numbers, via
// the index table or the plain ladder.
func quantumForIndex(m *transition.Molecule, index int) (v, j, ka, kc int) {
	for _, lvl := range m.Levels {
		if lvl.Index != index {
			continue
		}
		q := lvl.Quantum
		switch {
		case len(q) >= 4:
			return q[0], q[1], q[2], q[3]
		case len(q) == 3:
			return q[0], q[1], q[2], 0
		case len(q) == 2:
			return q[0], q[1], 0, 0
		}
	}
	if m.NyLow > 0 {
		return (index - 1) / m.NyLow, (index - 1) % m.NyLow, 0, 0
	}
	return 0, index - 1, 0, 0
}

func findMolecule(list []*transition.Molecule, name string) *transition.Molecule {
	for _, m := range list {
		if m.Short == name || m.Full == name {
			return m
		}
	}
	return nil
}

// calcLLGasList restricts the gas list to molecules participating in
// line-list mode; water and its isotopologues are excluded since their
// masing lines need the dedicated treatment.
func calcLLGasList(s *Store) error {
	gasList, err := s.GasList()
	if err != nil {
		return err
	}
	var list []*transition.Molecule
	for _, m := range gasList {
		if m.IsWater() {
			continue
		}
		list = append(list, m)
	}
	s.setDerived("LL_GAS_LIST", list)
	return nil
}
