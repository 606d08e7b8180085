package star

import "math"

// BlackBody returns the stellar blackbody intensity profile over a
// logarithmic wavelength grid from 1e-9 to 1e2 cm. Wavelengths come
// back in micron and intensities in Jy per steradian.
func (s *Store) BlackBody() (wavelength, intensity []float64, err error) {
	tstar, err := s.GetFloat("T_STAR")
	if err != nil {
		return nil, nil, err
	}
	const points = 5000
	wavelength = make([]float64, points)
	intensity = make([]float64, points)
	for i := 0; i < points; i++ {
		logw := -9 + 11*float64(i)/float64(points-1)
		w := math.Pow(10, logw)
		freq := CLight / w
		bb := 2 * PlanckErg * freq * freq * freq / (CLight * CLight) /
			(math.Exp(PlanckErg*freq/(BoltzmannErg*tstar)) - 1)
		wavelength[i] = w * 1e4
		intensity[i] = bb * 1e23
	}
	return wavelength, intensity, nil
}

// ObservedBlackBody scales the blackbody profile to the observed flux
// at the star's distance, in Jy.
func (s *Store) ObservedBlackBody() (wavelength, flux []float64, err error) {
	wavelength, flux, err = s.BlackBody()
	if err != nil {
		return nil, nil, err
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return nil, nil, err
	}
	distance, err := s.GetFloat("DISTANCE")
	if err != nil {
		return nil, nil, err
	}
	rCM := rstar * RSunCM
	dCM := distance * ParsecCM
	scale := math.Pi * rCM * rCM / (dCM * dCM)
	for i := range flux {
		flux[i] *= scale
	}
	return wavelength, flux, nil
}
