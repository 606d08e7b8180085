package star

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DriesNicolaes/ComboCode/internal/solver"
)

// speciesIndex returns the row of a dust species in the reference
// table, which SpeciesList preserves in order.
func (s *Store) speciesIndex(species string) (int, error) {
	for i, sp := range s.species {
		if sp == species {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown dust species %s", species)
}

// dustTableFloat reads a numeric column of the dust reference table for
// one species. A blank or zero cell reads as zero.
func (s *Store) dustTableFloat(keyword, species string) (float64, error) {
	if s.ref == nil {
		return 0, fmt.Errorf("no reference data for dust species %s", species)
	}
	index, err := s.speciesIndex(species)
	if err != nil {
		return 0, err
	}
	cell, err := s.ref.DustValue(keyword, index)
	if err != nil {
		return 0, err
	}
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

// calcTDesCoefficients sets the pressure-dependent sublimation
// coefficients of a species. The sublimation temperature follows
// T_des(p) = 1e4 / (A + B log10 p); an explicit constant T_MAX yields
// coefficients reproducing it at any pressure.
func calcTDesCoefficients(s *Store, species string) error {
	if s.Has("T_DESA_"+species) && s.Has("T_DESB_"+species) {
		return nil
	}
	if tmax, err := s.GetFloatPresent("T_MAX_" + species); err == nil && tmax != 0 {
		s.setDerived("T_DESA_"+species, 1e4/tmax)
		s.setDerived("T_DESB_"+species, 1e-4)
		return nil
	}
	tdesa, err := s.dustTableFloat("T_DESA", species)
	if err != nil {
		return err
	}
	if tdesa != 0 {
		tdesb, err := s.dustTableFloat("T_DESB", species)
		if err != nil {
			return err
		}
		s.setDerived("T_DESA_"+species, 1e4*tdesb/tdesa)
		s.setDerived("T_DESB_"+species, 1e4/tdesa)
		return nil
	}
	tdes, err := s.dustTableFloat("T_DES", species)
	if err != nil {
		return err
	}
	if tdes == 0 {
		return fmt.Errorf("no sublimation data for dust species %s", species)
	}
	s.setDerived("T_DESA_"+species, 1e4/tdes)
	s.setDerived("T_DESB_"+species, 1e-4)
	return nil
}

// calcTDes evaluates the sublimation temperature in the low-pressure
// limit of the coefficient fit.
func calcTDes(s *Store, species string) error {
	a, err := s.GetFloat("T_DESA_" + species)
	if err != nil {
		return err
	}
	if a == 0 {
		return fmt.Errorf("degenerate sublimation fit for dust species %s", species)
	}
	s.setDerived("T_DES_"+species, 1e4/a)
	return nil
}

// calcRDes locates the radius where the species' temperature profile
// drops to its sublimation temperature, in stellar radii. Without dust
// model output a power-law profile stands in.
func calcRDes(s *Store, species string) error {
	tdes, err := s.GetFloat("T_DES_" + species)
	if err != nil {
		return err
	}
	rad, err := s.radiusForTemperature(species, tdes, false)
	if err != nil {
		return err
	}
	s.setDerived("R_DES_"+species, rad)
	return nil
}

// calcRMax bounds the existence region of a species at its requested
// minimum temperature. Zero means unbounded: either no minimum was
// requested or the whole envelope stays above it.
func calcRMax(s *Store, species string) error {
	name := "R_MAX_" + species
	tmin, err := s.GetFloatPresent("T_MIN_" + species)
	if err != nil || tmin == 0 {
		s.setDerived(name, 0.0)
		return nil
	}
	rad, err := s.radiusForTemperature(species, tmin, true)
	if err != nil {
		return err
	}
	s.setDerived(name, rad)
	return nil
}

// radiusForTemperature interpolates the species' radial temperature
// profile at temp, in stellar radii. outer selects the behaviour at the
// grid edges: for an outer bound a too-cold envelope clamps to the
// stellar surface and a too-warm one means unbounded (zero).
func (s *Store) radiusForTemperature(species string, temp float64, outer bool) (float64, error) {
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return 0, err
	}
	tstar, err := s.GetFloat("T_STAR")
	if err != nil {
		return 0, err
	}
	power, err := s.GetFloat("POWER_T_DUST")
	if err != nil {
		return 0, err
	}

	filename, err := s.speciesProfileFilename(species)
	if err != nil {
		return powerRfromT(temp, tstar, 1, power) / 2, nil
	}
	rad, tprof, err := s.dustGrid("TEMPERATURE", filename)
	if err != nil {
		return powerRfromT(temp, tstar, 1, power) / 2, nil
	}

	// The profile decreases outward; find the bracketing pair.
	for i := 0; i+1 < len(rad) && i+1 < len(tprof); i++ {
		if tprof[i] >= temp && tprof[i+1] <= temp {
			span := tprof[i] - tprof[i+1]
			frac := 0.0
			if span != 0 {
				frac = (tprof[i] - temp) / span
			}
			return (rad[i] + frac*(rad[i+1]-rad[i])) / (rstar * RSunCM), nil
		}
	}
	if len(tprof) > 0 && temp > tprof[0] {
		return 1.0, nil
	}
	if outer {
		return 0.0, nil
	}
	return powerRfromT(temp, tstar, 1, power) / 2, nil
}

// speciesProfileFilename names the structure file holding the species'
// own temperature profile. With thermal contact between species there
// is a single shared profile.
func (s *Store) speciesProfileFilename(species string) (string, error) {
	contact, err := s.GetBool("T_CONTACT")
	if err != nil {
		return "", err
	}
	if contact {
		return "denstemp.dat", nil
	}
	list, err := s.GetStrings("DUST_LIST")
	if err != nil {
		return "", err
	}
	for i, sp := range list {
		if sp == species {
			return fmt.Sprintf("denstempP%02d.dat", i+1), nil
		}
	}
	return "", fmt.Errorf("%w: species %s not in dust list", solver.ErrUnavailable, species)
}

// calcAbundanceFraction defaults absent dust abundances to zero, which
// keeps the species out of the dust list.
func calcAbundanceFraction(s *Store, species string) error {
	s.setDerived("A_"+species, 0.0)
	return nil
}
