package star

import "math"

// The stellar triplet obeys the blackbody relation
// L/Lsun = (R/Rsun)^2 (T/Tsun)^4; any member derives from the other two.

func calcTStar(s *Store) error {
	l, err := s.GetFloat("L_STAR")
	if err != nil {
		return err
	}
	r, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	s.setDerived("T_STAR", math.Pow(l/(r*r), 0.25)*TSun)
	return nil
}

func calcLStar(s *Store) error {
	r, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	t, err := s.GetFloat("T_STAR")
	if err != nil {
		return err
	}
	s.setDerived("L_STAR", r*r*math.Pow(t/TSun, 4))
	return nil
}

func calcRStar(s *Store) error {
	l, err := s.GetFloat("L_STAR")
	if err != nil {
		return err
	}
	t, err := s.GetFloat("T_STAR")
	if err != nil {
		return err
	}
	s.setDerived("R_STAR", math.Sqrt(l)*math.Pow(TSun/t, 2))
	return nil
}

// powerRfromT inverts the power-law temperature profile
// T(r) = T_STAR (R_STAR/r)^power, returning the radius where the
// profile reaches temp. Radius comes back in the units of rstar.
func powerRfromT(temp, tstar, rstar, power float64) float64 {
	if power == 0 {
		power = 0.5
	}
	return math.Pow(tstar/temp, 1/power) * rstar
}
