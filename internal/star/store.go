package star

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
	"github.com/DriesNicolaes/ComboCode/internal/refdata"
	"github.com/DriesNicolaes/ComboCode/internal/solver"
	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

var (
	// ErrMissing reports a parameter with no explicit value and no
	// rule able to produce one.
	ErrMissing = errors.New("missing parameter")

	// ErrCycle reports a derivation that directly or transitively
	// requires its own value.
	ErrCycle = errors.New("circular parameter derivation")
)

// Options collects the collaborators a store resolves against. All are
// optional; rules that need an absent collaborator fall back to their
// documented defaults.
type Options struct {
	// Initial seeds the store with explicit parameters. String values
	// equal to "%" mark the entry volatile instead.
	Initial map[string]any

	RefData *refdata.Store
	Repo    *solver.Repository
	DB      *modeldb.DB
	Cache   CacheWriter
	Logger  *slog.Logger
}

// Store is one model's parameter set. A store is owned by a single
// caller; resolution is synchronous and reentrant through the call
// stack.
type Store struct {
	params    map[string]entry
	registry  *Registry
	resolving map[string]struct{}

	ref    *refdata.Store
	repo   *solver.Repository
	db     *modeldb.DB
	cache  CacheWriter
	logger *slog.Logger

	// species is the dust species reference list; pattern rules match
	// suffixes against it.
	species []string

	// molecules caches loaded spectroscopic tables by short and full
	// name.
	molecules map[string]*transition.Molecule
}

// NewStore seeds a store from an initial parameter set and wires the
// default derivation registry.
func NewStore(opts Options) (*Store, error) {
	s := &Store{
		params:    make(map[string]entry),
		registry:  defaultRegistry(),
		resolving: make(map[string]struct{}),
		molecules: make(map[string]*transition.Molecule),
		ref:       opts.RefData,
		repo:      opts.Repo,
		db:        opts.DB,
		cache:     opts.Cache,
		logger:    opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.cache == nil {
		s.cache = FileCacheWriter{}
	}
	if s.ref != nil {
		species, err := s.ref.SpeciesList()
		if err != nil {
			return nil, fmt.Errorf("load species list: %w", err)
		}
		s.species = species
	}
	for name, value := range opts.Initial {
		if str, ok := value.(string); ok && str == volatileMarker {
			s.params[name] = entry{status: Volatile}
			continue
		}
		s.params[name] = entry{value: value, status: Explicit}
	}
	if err := s.convertRadialUnits(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns a parameter value, deriving it on demand. Volatile
// entries are recomputed on every call and the volatile marker is
// reinstated afterwards; the computed value is never persisted.
func (s *Store) Get(name string) (any, error) {
	e, ok := s.params[name]
	if ok && e.status != Volatile {
		return e.value, nil
	}
	if ok {
		delete(s.params, name)
		value, err := s.resolve(name)
		s.params[name] = entry{status: Volatile}
		if err != nil {
			return nil, err
		}
		return value, nil
	}
	return s.resolve(name)
}

func (s *Store) resolve(name string) (any, error) {
	if _, active := s.resolving[name]; active {
		return nil, fmt.Errorf("%w: %s requires itself", ErrCycle, name)
	}
	s.resolving[name] = struct{}{}
	defer delete(s.resolving, name)

	if err := s.registry.dispatch(s, name); err != nil {
		return nil, err
	}
	e, ok := s.params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	return e.value, nil
}

// Set stores an explicit value, overwriting whatever was present.
func (s *Store) Set(name string, value any) {
	s.params[name] = entry{value: value, status: Explicit}
}

// SetVolatile flags a parameter as always-recompute.
func (s *Store) SetVolatile(name string) {
	s.params[name] = entry{status: Volatile}
}

// Has reports whether an entry is present, without triggering
// derivation.
func (s *Store) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Status returns the status of a present entry.
func (s *Store) Status(name string) (Status, bool) {
	e, ok := s.params[name]
	return e.status, ok
}

// Names returns the currently present parameter names.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.params))
	for name := range s.params {
		names = append(names, name)
	}
	return names
}

// setDerived stores a rule result under the set-if-absent discipline: a
// present value, whatever its status, is never overwritten.
func (s *Store) setDerived(name string, value any) {
	if _, ok := s.params[name]; ok {
		return
	}
	s.params[name] = entry{value: value, status: Derived}
}

// Purge deletes every mutable entry so the next iteration re-derives
// it. The per-species maximum-radius and destruction families are
// always mutable. Names in varPars are intentionally varied across
// iterations and survive unchanged, as do all other entries.
func (s *Store) Purge(mutable, varPars []string) {
	keep := make(map[string]struct{}, len(varPars))
	for _, name := range varPars {
		keep[name] = struct{}{}
	}
	drop := make(map[string]struct{}, len(mutable))
	for _, name := range mutable {
		drop[name] = struct{}{}
	}
	for _, species := range s.species {
		drop["R_MAX_"+species] = struct{}{}
		drop["T_DES_"+species] = struct{}{}
		drop["R_DES_"+species] = struct{}{}
	}
	for name := range s.params {
		if _, mutable := drop[name]; !mutable {
			continue
		}
		if _, protected := keep[name]; protected {
			continue
		}
		delete(s.params, name)
	}
	// Zero destruction or minimum temperatures carry no information.
	for _, species := range s.species {
		for _, prefix := range []string{"T_DES_", "T_MIN_"} {
			name := prefix + species
			if v, err := s.GetFloatPresent(name); err == nil && v == 0 {
				delete(s.params, name)
			}
		}
	}
}

// AddCoolingPars overwrites the stellar parameters with the cooling
// database record of the last gas model. Existing values are replaced;
// the database is authoritative after a cooling run.
func (s *Store) AddCoolingPars(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("cooling database not configured")
	}
	modelID, err := s.GetString("LAST_GASTRONOOM_MODEL")
	if err != nil {
		return err
	}
	rec, err := s.db.LookupCooling(ctx, modelID)
	if err != nil {
		return fmt.Errorf("cooling record for %s: %w", modelID, err)
	}
	s.Set("T_STAR", rec.TStar)
	s.Set("R_STAR", rec.RStarCM/RSunCM)
	s.Set("MDOT_GAS", rec.MdotGas)
	s.Set("TEMDUST_FILENAME", rec.TemdustFilename)
	return nil
}

// GetFloat resolves a parameter and coerces it to float64.
func (s *Store) GetFloat(name string) (float64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	return coerceFloat(name, v)
}

// GetFloatPresent is GetFloat without derivation; it fails when the
// entry is absent.
func (s *Store) GetFloatPresent(name string) (float64, error) {
	e, ok := s.params[name]
	if !ok || e.status == Volatile {
		return 0, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	return coerceFloat(name, e.value)
}

// GetInt resolves a parameter and coerces it to int.
func (s *Store) GetInt(name string) (int, error) {
	f, err := s.GetFloat(name)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// GetString resolves a parameter as a string.
func (s *Store) GetString(name string) (string, error) {
	v, err := s.Get(name)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// GetStrings resolves a parameter as a string slice; a scalar string
// becomes a one-element slice.
func (s *Store) GetStrings(name string) ([]string, error) {
	v, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []string:
		return t, nil
	case string:
		if t == "" {
			return nil, nil
		}
		return []string{t}, nil
	default:
		return nil, fmt.Errorf("parameter %s: %T is not a string list", name, v)
	}
}

// GetBool resolves a parameter as a flag; numeric values follow the
// legacy 0/1 convention.
func (s *Store) GetBool(name string) (bool, error) {
	v, err := s.Get(name)
	if err != nil {
		return false, err
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	default:
		f, err := coerceFloat(name, v)
		if err != nil {
			return false, err
		}
		return f != 0, nil
	}
}

func coerceFloat(name string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %q is not numeric", name, t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter %s: %T is not numeric", name, v)
	}
}

// convertRadialUnits normalizes seeded shell radii to stellar radii
// when the input declared another unit.
func (s *Store) convertRadialUnits() error {
	e, ok := s.params["R_SHELL_UNIT"]
	if !ok {
		return nil
	}
	unit, _ := e.value.(string)
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if unit == "" || unit == "R_STAR" {
		return nil
	}
	rstar, err := s.GetFloat("R_STAR")
	if err != nil {
		return fmt.Errorf("convert %s shell radii: %w", unit, err)
	}
	var factor float64
	switch unit {
	case "CM":
		factor = 1 / (RSunCM * rstar)
	case "M":
		factor = 100 / (RSunCM * rstar)
	case "KM":
		factor = 1e5 / (RSunCM * rstar)
	case "AU":
		factor = AUCM / (RSunCM * rstar)
	default:
		return fmt.Errorf("unknown shell radius unit %q", unit)
	}
	names := []string{"R_INNER_GAS", "R_INNER_DUST", "R_OUTER_GAS", "R_OUTER_DUST"}
	for _, species := range s.species {
		names = append(names, "R_MAX_"+species, "R_MIN_"+species)
	}
	for _, name := range names {
		e, ok := s.params[name]
		if !ok || e.status == Volatile {
			continue
		}
		v, err := coerceFloat(name, e.value)
		if err != nil {
			return err
		}
		s.params[name] = entry{value: v * factor, status: e.status}
	}
	s.params["R_SHELL_UNIT"] = entry{value: "R_STAR", status: e.status}
	return nil
}
