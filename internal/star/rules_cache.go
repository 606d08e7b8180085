package star

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// calcDustTemperatureFilename points the gas code at the dust
// temperature stratification of the last dust model, writing the
// exchange file when it does not exist yet. Without dust output an
// empty name keeps the gas code on its power-law profile.
func calcDustTemperatureFilename(s *Store) error {
	const name = "DUST_TEMPERATURE_FILENAME"
	modelID, err := s.dustModelID()
	if err != nil {
		s.fallback(name, "", err)
		return nil
	}
	filename := filepath.Join(s.repo.DustExchangeDir(), "Td_"+modelID+".dat")
	if _, err := os.Stat(filename); err == nil {
		s.setDerived(name, filename)
		return nil
	}

	rad, temp, err := s.dustGrid("TEMPERATURE", "denstemp.dat")
	if err != nil {
		s.fallback(name, "", err)
		return nil
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return err
	}
	var radOut, tempOut []float64
	for i := range rad {
		if i >= len(temp) {
			break
		}
		r := rad[i] / (rstar * RSunCM)
		// The stratification starts outside the stellar surface.
		if r <= 1 {
			continue
		}
		radOut = append(radOut, r)
		tempOut = append(tempOut, temp[i])
	}
	if len(radOut) == 0 {
		s.fallback(name, "", fmt.Errorf("dust temperature grid lies inside the star"))
		return nil
	}
	if err := s.cache.WriteColumns(filename, radOut, tempOut); err != nil {
		s.fallback(name, "", err)
		return nil
	}
	s.logger.Info("wrote dust temperature stratification", "path", filename, "points", len(radOut))
	s.setDerived(name, filename)
	s.Set("KEYWORD_DUST_TEMPERATURE_TABLE", 1)
	s.Set("NUMBER_INPUT_DUST_TEMP_VALUES", len(radOut))
	return nil
}

func calcKeywordDustTemperatureTable(s *Store) error {
	filename, err := s.GetString("DUST_TEMPERATURE_FILENAME")
	if err != nil {
		return err
	}
	if filename != "" {
		s.setDerived("KEYWORD_DUST_TEMPERATURE_TABLE", 1)
	} else {
		s.setDerived("KEYWORD_DUST_TEMPERATURE_TABLE", 0)
	}
	return nil
}

func calcNumberInputDustTempValues(s *Store) error {
	filename, err := s.GetString("DUST_TEMPERATURE_FILENAME")
	if err != nil {
		return err
	}
	if filename == "" {
		s.setDerived("NUMBER_INPUT_DUST_TEMP_VALUES", 0)
		return nil
	}
	n, err := countDataLines(filename)
	if err != nil {
		return err
	}
	s.setDerived("NUMBER_INPUT_DUST_TEMP_VALUES", n)
	return nil
}

// calcDensType decides how the dust code sees the density structure.
// After a gas model exists, a shell file with the drift-corrected dust
// density replaces the plain mass-loss law.
func calcDensType(s *Store) error {
	if s.Has("DENSTYPE") && s.Has("DENSFILE") {
		return nil
	}
	mdotDust, err := s.GetFloat("MDOT_DUST")
	if err != nil {
		return err
	}
	modelID, gasErr := s.gasModelID()
	if gasErr != nil {
		s.fallback("DENSTYPE", "MASSLOSS", gasErr)
		s.setDerived("DENSFILE", "")
		return nil
	}
	filename := filepath.Join(s.repo.GasExchangeDir(),
		fmt.Sprintf("dens_%s_mdotd%.2e.dat", modelID, mdotDust))
	if _, err := os.Stat(filename); err == nil {
		s.setDerived("DENSFILE", filename)
		s.setDerived("DENSTYPE", "SHELLFILE")
		return nil
	}
	if t, ok := s.params["DENSTYPE"]; ok {
		if str, _ := t.value.(string); str == "MASSLOSS" {
			s.setDerived("DENSFILE", "")
			return nil
		}
	}

	radius, err := s.repo.ReadGasColumn(modelID, "RADIUS")
	if err != nil {
		s.fallback("DENSTYPE", "MASSLOSS", err)
		s.setDerived("DENSFILE", "")
		return nil
	}
	gasVel, err := s.repo.ReadGasColumn(modelID, "VEL")
	if err != nil {
		s.fallback("DENSTYPE", "MASSLOSS", err)
		s.setDerived("DENSFILE", "")
		return nil
	}
	drift, err := s.averageDrift()
	if err != nil {
		s.fallback("DENSTYPE", "MASSLOSS", err)
		s.setDerived("DENSFILE", "")
		return nil
	}

	n := len(radius)
	if len(gasVel) < n {
		n = len(gasVel)
	}
	if len(drift) < n {
		n = len(drift)
	}
	radAU := make([]float64, n)
	density := make([]float64, n)
	for i := 0; i < n; i++ {
		radAU[i] = radius[i] / AUCM
		density[i] = mdotDust * MSunG /
			((gasVel[i] + drift[i]) * 4 * math.Pi * radius[i] * radius[i] * YearSec)
	}
	if err := s.cache.WriteColumns(filename, radAU, density); err != nil {
		s.fallback("DENSTYPE", "MASSLOSS", err)
		s.setDerived("DENSFILE", "")
		return nil
	}
	s.logger.Info("wrote dust density shell file", "path", filename, "points", n)
	s.setDerived("DENSTYPE", "SHELLFILE")
	s.setDerived("DENSFILE", filename)
	return nil
}

// calcDensFile defers to the density type decision, which fills in both
// parameters.
func calcDensFile(s *Store) error {
	return calcDensType(s)
}

func countDataLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
