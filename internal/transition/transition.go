package transition

import (
	"errors"
	"fmt"
	"strings"
)

// speedOfLight in cm/s, matching the gas code's units.
const speedOfLight = 2.99792458e10

var (
	// ErrIndexResolution reports quantum numbers that do not map to
	// exactly one entry of the molecule's radiative table. A
	// non-unique pair signals a malformed reference table and is never
	// recovered.
	ErrIndexResolution = errors.New("transition index resolution failed")

	// ErrIdentity reports two distinct parameter sets collapsing to
	// one canonical transition descriptor.
	ErrIdentity = errors.New("duplicate transition identity")
)

// Params collects the constructor inputs of a Transition. Molecule and
// Telescope are required; quantum numbers default to zero and Frequency,
// when nonzero, skips table resolution (line-list mode).
type Params struct {
	Molecule  *Molecule
	Telescope string

	VUp, JUp, KaUp, KcUp     int
	VLow, JLow, KaLow, KcLow int

	// NUp/NLow override the N quantum number for SO/HCN-type
	// molecules; when nil they alias Ka.
	NUp, NLow *int

	Offset    float64
	Frequency float64
	NQuad     int
	UseMaser  bool
	Vexp      float64

	// Vibrational tags line-list transitions with their vibrational
	// excitation band; empty for the ground state.
	Vibrational string

	Datafiles []string
}

// Transition is one spectral line transition. Identity is the canonical
// descriptor computed at construction; everything else is provenance.
type Transition struct {
	Molecule  *Molecule
	Telescope string

	VUp, JUp, KaUp, KcUp     int
	VLow, JLow, KaLow, KcLow int
	NUp, NLow                int

	Offset    float64
	Frequency float64
	// Wavelength in cm.
	Wavelength float64

	NQuad       int
	UseMaser    bool
	Vexp        float64
	Vibrational string

	// UpperIndex/LowerIndex are the resolved level indices in the
	// molecule's radiative table (zero in line-list mode).
	UpperIndex int
	LowerIndex int

	descriptor string
	datafiles  []string
	modelID    string
}

// New builds a transition and resolves its frequency. The telescope
// defaults to "N.A." and is upper-cased; quantum numbers default to
// zero. When Frequency is zero the molecule's radiative table must
// contain exactly one line for the resolved level indices.
func New(p Params) (*Transition, error) {
	if p.Molecule == nil {
		return nil, fmt.Errorf("transition: molecule required")
	}
	telescope := strings.ToUpper(strings.TrimSpace(p.Telescope))
	if telescope == "" {
		telescope = "N.A."
	}
	nquad := p.NQuad
	if nquad == 0 {
		nquad = 100
	}
	t := &Transition{
		Molecule:    p.Molecule,
		Telescope:   telescope,
		VUp:         p.VUp,
		JUp:         p.JUp,
		KaUp:        p.KaUp,
		KcUp:        p.KcUp,
		VLow:        p.VLow,
		JLow:        p.JLow,
		KaLow:       p.KaLow,
		KcLow:       p.KcLow,
		Offset:      p.Offset,
		NQuad:       nquad,
		UseMaser:    p.UseMaser,
		Vexp:        p.Vexp,
		Vibrational: p.Vibrational,
		datafiles:   append([]string(nil), p.Datafiles...),
	}
	// SO-type molecules carry N in the Ka slot.
	if p.NUp != nil {
		t.NUp = *p.NUp
	} else {
		t.NUp = t.KaUp
	}
	if p.NLow != nil {
		t.NLow = *p.NLow
	} else {
		t.NLow = t.KaLow
	}

	if p.Frequency != 0 {
		t.Frequency = p.Frequency
	} else if err := t.resolveIndices(); err != nil {
		return nil, err
	}
	t.Wavelength = speedOfLight / t.Frequency
	t.descriptor = fmt.Sprintf("TRANSITION=%s %d %d %d %d %d %d %d %d %s %.2f",
		t.Molecule.Full, t.VUp, t.JUp, t.KaUp, t.KcUp,
		t.VLow, t.JLow, t.KaLow, t.KcLow, t.Telescope, t.Offset)
	return t, nil
}

func (t *Transition) resolveIndices() error {
	up, ok := t.Molecule.levelIndex(t.VUp, t.JUp, t.KaUp, t.KcUp)
	if !ok {
		return fmt.Errorf("%w: upper state %d,%d,%d,%d not in %s index table",
			ErrIndexResolution, t.VUp, t.JUp, t.KaUp, t.KcUp, t.Molecule.Short)
	}
	low, ok := t.Molecule.levelIndex(t.VLow, t.JLow, t.KaLow, t.KcLow)
	if !ok {
		return fmt.Errorf("%w: lower state %d,%d,%d,%d not in %s index table",
			ErrIndexResolution, t.VLow, t.JLow, t.KaLow, t.KcLow, t.Molecule.Short)
	}

	var line *RadiativeLine
	for i := range t.Molecule.Lines {
		rl := &t.Molecule.Lines[i]
		if rl.Lower == low && rl.Upper == up {
			if line != nil {
				return fmt.Errorf("%w: index pair (%d,%d) not unique in %s radiative table",
					ErrIndexResolution, low, up, t.Molecule.Short)
			}
			line = rl
		}
	}
	if line == nil {
		return fmt.Errorf("%w: index pair (%d,%d) missing from %s radiative table",
			ErrIndexResolution, low, up, t.Molecule.Short)
	}
	t.UpperIndex = up
	t.LowerIndex = low
	t.Frequency = line.Frequency
	return nil
}

// String returns the canonical descriptor, formatted as the gas code's
// transition input line.
func (t *Transition) String() string {
	return t.descriptor
}

// Equal reports canonical-descriptor equality.
func (t *Transition) Equal(other *Transition) bool {
	return other != nil && t.descriptor == other.descriptor
}

// RunKey widens the descriptor with the per-run ray-tracing parameters.
// Two transitions with equal descriptors but different run keys are two
// conflicting parameter sets for one physical line.
func (t *Transition) RunKey() string {
	return fmt.Sprintf("%s N_QUAD=%d MASER=%t", t.descriptor, t.NQuad, t.UseMaser)
}

// InputLine returns the transition as a pipeline input line, using the
// molecule shorthand and including the quadrature point count.
func (t *Transition) InputLine() string {
	return fmt.Sprintf("TRANSITION=%s %d %d %d %d %d %d %d %d %s %.2f %d",
		t.Molecule.Short, t.VUp, t.JUp, t.KaUp, t.KcUp,
		t.VLow, t.JLow, t.KaLow, t.KcLow, t.Telescope, t.Offset, t.NQuad)
}

// Label returns a short human-readable identification of the line.
func (t *Transition) Label() string {
	base := fmt.Sprintf("%d,%d", t.JUp, t.JLow)
	switch {
	case t.Molecule.SpecIndices == 0 && t.VUp == 0 && t.VLow == 0:
		base = fmt.Sprintf("%d - %d", t.JUp, t.JLow)
	case t.Molecule.SpecIndices == 0:
		base = fmt.Sprintf("%d,%d - %d,%d", t.VUp, t.JUp, t.VLow, t.JLow)
	case t.Molecule.SpecIndices == 2 || t.Molecule.SpecIndices == 3:
		base = fmt.Sprintf("%d,%d(%d) - %d,%d(%d)", t.VUp, t.JUp, t.NUp, t.VLow, t.JLow, t.NLow)
	default:
		base = fmt.Sprintf("%d,%d(%d,%d) - %d,%d(%d,%d)",
			t.VUp, t.JUp, t.KaUp, t.KcUp, t.VLow, t.JLow, t.KaLow, t.KcLow)
	}
	if t.Vibrational != "" {
		return t.Vibrational + ": " + base
	}
	return base
}

// ProfileFilename returns the gas code's ray-traced output filename for
// this transition under a line-run id.
func (t *Transition) ProfileFilename(number int, runID string) string {
	parts := []string{
		fmt.Sprintf("sph%d%s", number, runID),
		t.Molecule.Short,
	}
	switch {
	case t.Molecule.SpecIndices == 0 || t.Molecule.SpecIndices == 3:
		parts = append(parts,
			fmt.Sprintf("vup%d", t.VUp), fmt.Sprintf("jup%d", t.JUp),
			fmt.Sprintf("vlow%d", t.VLow), fmt.Sprintf("jlow%d", t.JLow))
	case t.Molecule.SpecIndices == 2:
		parts = append(parts,
			fmt.Sprintf("vup%d", t.VUp), fmt.Sprintf("Jup%d", t.JUp),
			fmt.Sprintf("Nup%d", t.NUp), fmt.Sprintf("vlow%d", t.VLow),
			fmt.Sprintf("jlow%d", t.JLow), fmt.Sprintf("Nlow%d", t.NLow))
	default:
		parts = append(parts,
			fmt.Sprintf("vup%d", t.VUp), fmt.Sprintf("jup%d", t.JUp),
			fmt.Sprintf("Kaup%d", t.KaUp), fmt.Sprintf("Kcup%d", t.KcUp),
			fmt.Sprintf("vlow%d", t.VLow), fmt.Sprintf("jlow%d", t.JLow),
			fmt.Sprintf("Kalow%d", t.KaLow), fmt.Sprintf("Kclow%d", t.KcLow))
	}
	parts = append(parts, t.Telescope, fmt.Sprintf("OFFSET%.2f.dat", t.Offset))
	return strings.Join(parts, "_")
}

// EnergyUpper returns the upper-state energy in 1/cm, or 0 when the
// molecule carries no energy table or the transition is in line-list
// mode.
func (t *Transition) EnergyUpper() float64 {
	return t.Molecule.EnergyLevel(t.UpperIndex)
}

// EnergyLower returns the lower-state energy in 1/cm.
func (t *Transition) EnergyLower() float64 {
	return t.Molecule.EnergyLevel(t.LowerIndex)
}

// Datafiles returns the attached observed data files.
func (t *Transition) Datafiles() []string {
	return t.datafiles
}

// AddDatafiles appends observed data file references. Duplicates are
// kept; a file attached twice was supplied twice.
func (t *Transition) AddDatafiles(files ...string) {
	t.datafiles = append(t.datafiles, files...)
}

// SetModelID records the line-run id this transition was ray-traced
// under. Empty means the run failed.
func (t *Transition) SetModelID(id string) {
	t.modelID = id
}

// ModelID returns the recorded line-run id.
func (t *Transition) ModelID() string {
	return t.modelID
}

// SetVexp sets the terminal gas velocity if not yet known.
func (t *Transition) SetVexp(vexp float64) {
	if t.Vexp == 0 {
		t.Vexp = vexp
	}
}
