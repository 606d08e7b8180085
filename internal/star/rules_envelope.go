package star

import (
	"fmt"
	"math"
	"strings"

	"github.com/DriesNicolaes/ComboCode/internal/solver"
)

// dustModelID returns the last computed dust model, or an error when no
// model or repository is available.
func (s *Store) dustModelID() (string, error) {
	if s.repo == nil {
		return "", fmt.Errorf("%w: no solver repository", solver.ErrUnavailable)
	}
	id, err := s.GetString("LAST_MCMAX_MODEL")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: no dust model computed", solver.ErrUnavailable)
	}
	return id, nil
}

func (s *Store) gasModelID() (string, error) {
	if s.repo == nil {
		return "", fmt.Errorf("%w: no solver repository", solver.ErrUnavailable)
	}
	id, err := s.GetString("LAST_GASTRONOOM_MODEL")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: no gas model computed", solver.ErrUnavailable)
	}
	return id, nil
}

// dustGrid reads the radial grid and one angular-resolved quantity from
// the dust structure file, averaging the quantity over theta.
func (s *Store) dustGrid(keyword, filename string) (rad, values []float64, err error) {
	modelID, err := s.dustModelID()
	if err != nil {
		return nil, nil, err
	}
	nrad, err := s.GetInt("NRAD")
	if err != nil {
		return nil, nil, err
	}
	ntheta, err := s.GetInt("NTHETA")
	if err != nil {
		return nil, nil, err
	}
	if nrad <= 0 || ntheta <= 0 {
		return nil, nil, fmt.Errorf("%w: dust grid dimensions unknown", solver.ErrUnavailable)
	}
	rad, err = s.repo.Read(modelID, "RADIUS", filename, nrad)
	if err != nil {
		return nil, nil, err
	}
	full, err := s.repo.Read(modelID, keyword, filename, nrad*ntheta)
	if err != nil {
		return nil, nil, err
	}
	return rad, solver.ReduceGrid(full, ntheta), nil
}

// averageDrift returns the grain-size averaged drift velocity profile
// in cm/s, rescaled from the solver's 0.25 micron reference grain to
// the size distribution between 0.005 and 0.25 micron.
func (s *Store) averageDrift() ([]float64, error) {
	modelID, err := s.gasModelID()
	if err != nil {
		return nil, err
	}
	drift, err := s.repo.ReadGasColumn(modelID, "VDRIFT")
	if err != nil {
		return nil, err
	}
	const gsMax, gsMin = 2.5e-1, 5.0e-3
	factor := 1.25 / math.Sqrt(0.25) *
		(math.Pow(gsMax, -2) - math.Pow(gsMin, -2)) /
		(math.Pow(gsMax, -2.5) - math.Pow(gsMin, -2.5))
	out := make([]float64, len(drift))
	for i, v := range drift {
		out[i] = v * factor
	}
	return out, nil
}

func (s *Store) fallback(name string, value any, err error) {
	s.logger.Warn("parameter fallback", "parameter", name, "value", value, "reason", err)
	s.setDerived(name, value)
}

// calcRInnerDust locates the inner dust radius where the dust density
// first exceeds the mode's threshold, in stellar radii. Without dust
// model output the radius falls back to the stellar surface.
func calcRInnerDust(s *Store) error {
	if au, err := s.GetFloatPresent("R_INNER_DUST_AU"); err == nil {
		rstar, err := s.GetFloat("R_STAR")
		if err != nil {
			return err
		}
		s.setDerived("R_INNER_DUST", au*AUCM/(rstar*RSunCM))
		return nil
	}
	mode, err := s.GetString("R_INNER_DUST_MODE")
	if err != nil {
		return err
	}
	rad, dens, err := s.dustGrid("DENSITY", "denstemp.dat")
	if err != nil {
		s.fallback("R_INNER_DUST", 1.0, err)
		return nil
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}

	riCM := -1.0
	switch strings.ToUpper(mode) {
	case "MAX":
		best := -1
		for i, d := range dens {
			if best < 0 || d > dens[best] {
				best = i
			}
		}
		if best >= 0 && best < len(rad) {
			riCM = rad[best]
		}
	case "ABSOLUTE":
		for i, d := range dens {
			if d > 1e-50 && i < len(rad) {
				riCM = rad[i]
				break
			}
		}
	default:
		max := 0.0
		for _, d := range dens {
			if d > max {
				max = d
			}
		}
		for i, d := range dens {
			if d > 0.01*max && i < len(rad) {
				riCM = rad[i]
				break
			}
		}
	}
	if riCM < 0 {
		s.fallback("R_INNER_DUST", 1.0, fmt.Errorf("%w: density threshold never reached", solver.ErrUnavailable))
		return nil
	}
	s.setDerived("R_INNER_DUST", riCM/(rstar*RSunCM))
	return nil
}

// calcTInnerDust reads the dust temperature at the grid point nearest
// the inner radius. Zero means no dust model is available yet.
func calcTInnerDust(s *Store) error {
	rad, temp, err := s.dustGrid("TEMPERATURE", "denstemp.dat")
	if err != nil {
		s.fallback("T_INNER_DUST", 0.0, err)
		return nil
	}
	ri, err := s.GetFloat("R_INNER_DUST")
	if err != nil {
		return err
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	rinCM := ri * rstar * RSunCM
	best := 0
	for i := range rad {
		if math.Abs(rad[i]-rinCM) < math.Abs(rad[best]-rinCM) {
			best = i
		}
	}
	if best >= len(temp) {
		s.fallback("T_INNER_DUST", 0.0, fmt.Errorf("%w: temperature grid shorter than radius grid", solver.ErrUnavailable))
		return nil
	}
	s.setDerived("T_INNER_DUST", temp[best])
	return nil
}

func calcRInnerGas(s *Store) error {
	ri, err := s.GetFloat("R_INNER_DUST")
	if err != nil {
		return err
	}
	s.setDerived("R_INNER_GAS", ri)
	return nil
}

func calcROuterDust(s *Store) error {
	if au, err := s.GetFloatPresent("R_OUTER_DUST_AU"); err == nil {
		rstar, err := s.GetFloat("R_STAR")
		if err != nil {
			return err
		}
		s.setDerived("R_OUTER_DUST", au*AUCM/(rstar*RSunCM))
		return nil
	}
	if mult, err := s.GetFloatPresent("R_OUTER_MULTIPLY"); err == nil {
		ri, err := s.GetFloat("R_INNER_DUST")
		if err != nil {
			return err
		}
		s.setDerived("R_OUTER_DUST", ri*mult)
	}
	return nil
}

// calcROuterEffective reads the effective outer radius the gas code
// settled on, echoed in its input file.
func calcROuterEffective(s *Store) error {
	modelID, err := s.gasModelID()
	if err != nil {
		return err
	}
	v, err := s.repo.ReadInputValue(modelID, 0, 4)
	if err != nil {
		return err
	}
	s.setDerived("R_OUTER_EFFECTIVE", v)
	return nil
}

// calcDrift takes the terminal grain drift velocity from the cooling
// output, in km/s. The fifth entry from the end sits safely in the
// terminal-velocity regime.
func calcDrift(s *Store) error {
	drift, err := s.averageDrift()
	if err != nil || len(drift) < 5 {
		if err == nil {
			err = fmt.Errorf("%w: drift profile too short", solver.ErrUnavailable)
		}
		s.fallback("DRIFT", 0.0, err)
		return nil
	}
	s.setDerived("DRIFT", drift[len(drift)-5]/1e5)
	return nil
}

func calcVExpDust(s *Store) error {
	vgas, err := s.GetFloat("VEL_INFINITY_GAS")
	if err != nil {
		return err
	}
	drift, err := s.GetFloat("DRIFT")
	if err != nil {
		return err
	}
	s.setDerived("V_EXP_DUST", vgas+drift)
	return nil
}

// calcDustToGas is the empirical dust-to-gas ratio from the two
// mass-loss rates and terminal velocities.
func calcDustToGas(s *Store) error {
	mdotDust, err := s.GetFloat("MDOT_DUST")
	if err != nil {
		return err
	}
	mdotGas, err := s.GetFloat("MDOT_GAS")
	if err != nil {
		return err
	}
	vgas, err := s.GetFloat("VEL_INFINITY_GAS")
	if err != nil {
		return err
	}
	vdust, err := s.GetFloat("V_EXP_DUST")
	if err != nil {
		return err
	}
	if mdotGas == 0 || vdust == 0 {
		return fmt.Errorf("dust-to-gas ratio undefined for zero gas mass loss or dust velocity")
	}
	s.setDerived("DUST_TO_GAS", mdotDust*vgas/(mdotGas*vdust))
	return nil
}

// calcDustToGasIterated fetches the iterated dust-to-gas ratio the
// cooling code converged on, echoed in its input file.
func calcDustToGasIterated(s *Store) error {
	modelID, err := s.gasModelID()
	if err != nil {
		s.fallback("DUST_TO_GAS_ITERATED", 0.0, err)
		return nil
	}
	v, err := s.repo.ReadInputValue(modelID, 0, 6)
	if err != nil {
		s.fallback("DUST_TO_GAS_ITERATED", 0.0, err)
		return nil
	}
	s.setDerived("DUST_TO_GAS_ITERATED", v)
	return nil
}

func calcDustToGasChangeMLSP(s *Store) error {
	d2g, err := s.GetFloat("DUST_TO_GAS")
	if err != nil {
		return err
	}
	s.setDerived("DUST_TO_GAS_CHANGE_ML_SP", d2g)
	return nil
}

// calcSpecDensDust averages the specific densities of the modeled dust
// species, weighted by their abundance fractions.
func calcSpecDensDust(s *Store) error {
	list, err := s.GetStrings("DUST_LIST")
	if err != nil {
		return err
	}
	total := 0.0
	for _, species := range list {
		a, err := s.GetFloat("A_" + species)
		if err != nil {
			return err
		}
		dens, err := s.dustTableFloat("SPEC_DENS", species)
		if err != nil {
			return err
		}
		total += a * dens
	}
	s.setDerived("SPEC_DENS_DUST", total)
	return nil
}

// calcMDust integrates the dust mass of a power-law surface density
// shell, in solar masses. Other density types carry no analytic mass.
func calcMDust(s *Store) error {
	densType, err := s.GetString("DENSTYPE")
	if err != nil {
		return err
	}
	if densType != "POW" {
		return nil
	}
	sigma0, err := s.GetFloat("DENSSIGMA_0")
	if err != nil {
		return err
	}
	power, err := s.GetFloat("DENSPOW")
	if err != nil {
		return err
	}
	ri, err := s.GetFloat("R_INNER_DUST")
	if err != nil {
		return err
	}
	ro, err := s.GetFloat("R_OUTER_DUST")
	if err != nil {
		return err
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	riCM := ri * rstar * RSunCM
	var mass float64
	if power == 2 {
		mass = 2 * math.Pi * sigma0 * riCM * riCM * math.Log(ro/ri) / MSunG
	} else {
		mass = 2 * math.Pi * sigma0 * riCM * riCM / (2 - power) / MSunG *
			(math.Pow(ro/ri, 2-power) - 1)
	}
	s.setDerived("M_DUST", mass)
	return nil
}

func calcMdotGasStart(s *Store) error {
	mdot, err := s.GetFloat("MDOT_GAS")
	if err != nil {
		return err
	}
	s.setDerived("MDOT_GAS_START", mdot)
	return nil
}

func calcROH1612AS(s *Store) error {
	s.setDerived("R_OH1612_AS", 0.0)
	return nil
}

// calcROH1612 converts the observed angular OH maser radius to stellar
// radii through the distance.
func calcROH1612(s *Store) error {
	angular, err := s.GetFloat("R_OH1612_AS")
	if err != nil {
		return err
	}
	distance, err := s.GetFloat("DISTANCE")
	if err != nil {
		return err
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	// One arcsecond at one parsec subtends one astronomical unit.
	s.setDerived("R_OH1612", angular*distance*AUCM/(rstar*RSunCM))
	return nil
}

// calcROH1612Netzer predicts the OH maser peak radius from the
// mass-loss rate and wind velocity, after Netzer & Knapp (1987) eq. 29
// with the average interstellar radiation field.
func calcROH1612Netzer(s *Store) error {
	mdot, err := s.GetFloat("MDOT_GAS")
	if err != nil {
		return err
	}
	vgas, err := s.GetFloat("VEL_INFINITY_GAS")
	if err != nil {
		return err
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	mg := mdot / 1e-5
	inner := math.Pow(5.4*math.Pow(mg, 0.7)/math.Pow(vgas, 0.4), -4.8) +
		math.Pow(74*mg/vgas, -4.8)
	s.setDerived("R_OH1612_NETZER", math.Pow(inner, -1/4.8)*1e16/(rstar*RSunCM))
	return nil
}
