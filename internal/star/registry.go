package star

import "strings"

// Rule derives one or more parameters, storing results through
// setDerived. A rule observing the set-if-absent discipline is safe to
// run repeatedly.
type Rule func(*Store) error

// Registry is the closed derivation table: exact-name rules plus a
// fixed set of prefix rules that bind per dust species.
type Registry struct {
	exact    map[string]Rule
	patterns []patternRule
}

type patternRule struct {
	prefix string
	rule   func(*Store, string) error
}

func (r *Registry) register(name string, rule Rule) {
	r.exact[name] = rule
}

func (r *Registry) registerPattern(prefix string, rule func(*Store, string) error) {
	r.patterns = append(r.patterns, patternRule{prefix: prefix, rule: rule})
}

// dispatch runs the rule for name, if any. An unknown name is not an
// error here; the store reports it missing when no value materializes.
func (r *Registry) dispatch(s *Store, name string) error {
	if rule, ok := r.exact[name]; ok {
		return rule(s)
	}
	for _, p := range r.patterns {
		if !strings.HasPrefix(name, p.prefix) {
			continue
		}
		species := strings.TrimPrefix(name, p.prefix)
		if !s.hasSpecies(species) {
			continue
		}
		return p.rule(s, species)
	}
	return nil
}

func (s *Store) hasSpecies(name string) bool {
	for _, sp := range s.species {
		if sp == name {
			return true
		}
	}
	return false
}

// defaultRegistry wires every derivation the store knows about.
func defaultRegistry() *Registry {
	r := &Registry{exact: make(map[string]Rule)}

	for name, value := range constantDefaults {
		name, value := name, value
		r.register(name, func(s *Store) error {
			s.setDerived(name, value)
			return nil
		})
	}

	// Stellar parameters.
	r.register("T_STAR", calcTStar)
	r.register("L_STAR", calcLStar)
	r.register("R_STAR", calcRStar)

	// Envelope structure.
	r.register("R_INNER_DUST", calcRInnerDust)
	r.register("T_INNER_DUST", calcTInnerDust)
	r.register("R_INNER_GAS", calcRInnerGas)
	r.register("R_OUTER_DUST", calcROuterDust)
	r.register("R_OUTER_EFFECTIVE", calcROuterEffective)
	r.register("R_OH1612", calcROH1612)
	r.register("R_OH1612_AS", calcROH1612AS)
	r.register("R_OH1612_NETZER", calcROH1612Netzer)
	r.register("DRIFT", calcDrift)
	r.register("V_EXP_DUST", calcVExpDust)
	r.register("DUST_TO_GAS", calcDustToGas)
	r.register("DUST_TO_GAS_ITERATED", calcDustToGasIterated)
	r.register("DUST_TO_GAS_CHANGE_ML_SP", calcDustToGasChangeMLSP)
	r.register("SPEC_DENS_DUST", calcSpecDensDust)
	r.register("M_DUST", calcMDust)
	r.register("MDOT_GAS_START", calcMdotGasStart)

	// Solver output passthrough and cache files.
	r.register("DUST_TEMPERATURE_FILENAME", calcDustTemperatureFilename)
	r.register("KEYWORD_DUST_TEMPERATURE_TABLE", calcKeywordDustTemperatureTable)
	r.register("NUMBER_INPUT_DUST_TEMP_VALUES", calcNumberInputDustTempValues)
	r.register("DENSTYPE", calcDensType)
	r.register("DENSFILE", calcDensFile)

	// Structural lists.
	r.register("DUST_LIST", calcDustList)
	r.register("GAS_LIST", calcGasList)
	r.register("GAS_LINES", calcGasLines)
	r.register("LL_GAS_LIST", calcLLGasList)

	// Star catalogue references.
	r.register("STAR_INDEX", calcStarIndex)
	for _, name := range []string{"V_LSR", "A_K", "LONG", "LAT", "DISTANCE"} {
		name := name
		r.register(name, func(s *Store) error {
			return calcStarColumn(s, name)
		})
	}
	r.register("STAR_NAME_PLOTS", calcStarNamePlots)
	r.register("STAR_NAME_GASTRONOOM", calcStarNameGastronoom)

	// Per-species families.
	r.registerPattern("T_DESA_", calcTDesCoefficients)
	r.registerPattern("T_DESB_", calcTDesCoefficients)
	r.registerPattern("T_DES_", calcTDes)
	r.registerPattern("R_DES_", calcRDes)
	r.registerPattern("R_MAX_", calcRMax)
	r.registerPattern("R_MIN_", func(s *Store, species string) error {
		s.setDerived("R_MIN_"+species, 0.0)
		return nil
	})
	r.registerPattern("A_", calcAbundanceFraction)

	return r
}

// constantDefaults are parameters whose absence means a fixed value.
var constantDefaults = map[string]any{
	"STAR_NAME":                "model",
	"STARTYPE":                 "BB",
	"STARFILE":                 "",
	"N_QUAD":                   100,
	"LL_OFFSET":                0.0,
	"LL_MIN":                   0.0,
	"LL_MAX":                   0.0,
	"LINE_LISTS":               0,
	"DATA_MOL":                 0,
	"LOGG":                     0.0,
	"OPR":                      0,
	"RATIO_12C_TO_13C":         0,
	"RATIO_16O_TO_17O":         0,
	"RATIO_16O_TO_18O":         0,
	"TEMPERATURE_EPSILON_GAS":  0.5,
	"TEMPERATURE_EPSILON2_GAS": 0.0,
	"TEMPERATURE_EPSILON3_GAS": 0.0,
	"RADIUS_EPSILON2_GAS":      0.0,
	"RADIUS_EPSILON3_GAS":      0.0,
	"R_INNER_DUST_MODE":        "ABSOLUTE",
	"R_SHELL_UNIT":             "R_STAR",
	"MDOT_MODE":                "CONSTANT",
	"DUST_TO_GAS_INITIAL":      0.002,
	"POWER_T_DUST":             1.0,
	"T_CONTACT":                0,
	"V_EXP_DUST_MODE":          "CALC",
	"SHELLMASS":                0.0,
	"SHELLDENS":                0.0,
	"USE_MASER_IN_SPHINX":      0,
	"N_FREQ":                   30,
	"START_APPROX":             0,
	"USE_FRACTION_LEVEL_CORR":  1,
	"FRACTION_LEVEL_CORR":      0.8,
	"NUMBER_LEVEL_MAX_CORR":    1e-12,
	"TELESCOPE_SIZE_MAX":       32.0,
	"PATH_GAS_DATA":            "",
	"PATH_MOLECULE_DATA":       "",
	"NRAD":                     0,
	"NTHETA":                   0,
	"MOLECULE":                 []string{},
	"LAST_GASTRONOOM_MODEL":    "",
	"LAST_MCMAX_MODEL":         "",
}
