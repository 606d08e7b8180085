package linefit

import (
	"log/slog"

	"github.com/DriesNicolaes/ComboCode/internal/observed"
	"github.com/DriesNicolaes/ComboCode/internal/solver"
	"github.com/DriesNicolaes/ComboCode/internal/transition"
)

// gridPoints is the number of candidate offsets in the velocity search.
const gridPoints = 31

// State is the matcher's terminal state for one transition.
type State int

const (
	// Unmatched means no model fit was performed: observed or modeled
	// data were unavailable.
	Unmatched State = iota
	// Matched means the grid search completed and fit scores exist.
	Matched
)

func (s State) String() string {
	if s == Matched {
		return "matched"
	}
	return "unmatched"
}

// Matcher aligns observed line profiles to modeled ones.
type Matcher struct {
	repo          *solver.Repository
	logger        *slog.Logger
	profileNumber int

	// readProfile is swappable for tests.
	readProfile func(path string) (*observed.Profile, error)
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithProfileNumber selects which numbered ray-tracing output the
// matcher reads. Non-positive values keep the default of 2.
func WithProfileNumber(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.profileNumber = n
		}
	}
}

// NewMatcher returns a matcher reading modeled profiles through repo.
func NewMatcher(repo *solver.Repository, logger *slog.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Matcher{repo: repo, logger: logger, profileNumber: 2, readProfile: observed.Read}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Evaluation is the outcome of matching one transition. VLSR always
// holds the best available systemic velocity: the nominal input when
// nothing could be read, the instrument hint when only data exist, and
// the grid-search winner once Matched.
type Evaluation struct {
	State State
	VLSR  float64

	// Chi2 is the minimized chi-squared; meaningful only when Matched.
	Chi2 float64

	noise      float64
	modelVel   []float64
	modelFlux  []float64
	dataAtBest []float64
}

// Evaluate runs the velocity match for one transition around the nominal
// systemic velocity. Collaborator failures are absorbed: the returned
// evaluation degrades to Unmatched with the best velocity refinement the
// available inputs allow.
func (m *Matcher) Evaluate(t *transition.Transition, vlsr float64) *Evaluation {
	eval := &Evaluation{State: Unmatched, VLSR: vlsr}

	data := m.readFirstDatafile(t)
	if data == nil {
		return eval
	}
	if data.HasVLSRHint {
		eval.VLSR = data.VLSRHint
	}

	if t.ModelID() == "" {
		return eval
	}
	mvel, mtmb, err := m.repo.ReadLineProfile(t.ModelID(), t.ProfileFilename(m.profileNumber, t.ModelID()))
	if err != nil {
		m.logger.Info("modeled profile unavailable, keeping data velocity",
			"transition", t.String(), "run", t.ModelID(), "error", err)
		return eval
	}
	if t.Vexp == 0 {
		m.logger.Warn("terminal gas velocity unset, cannot search velocity offset",
			"transition", t.String())
		return eval
	}

	noise := data.Noise(eval.VLSR, t.Vexp)
	if noise == 0 {
		m.logger.Warn("noise estimate is zero, skipping velocity search",
			"transition", t.String())
		return eval
	}

	// The model velocity axis is centred on zero; each candidate
	// offset shifts it into the observed frame. Half the expansion
	// velocity bounds the search so the shifted grid stays inside the
	// observed range.
	grid := linspace(eval.VLSR-0.5*t.Vexp, eval.VLSR+0.5*t.Vexp, gridPoints)
	shifted := make([]float64, len(mvel))
	bestChi2 := 0.0
	bestIdx := -1
	var bestData []float64
	for gi, offset := range grid {
		for i, v := range mvel {
			shifted[i] = v + offset
		}
		dtmb := interpolate(data.Velocity, data.Flux, shifted)
		chi2 := chiSquared(dtmb, mtmb, noise)
		if bestIdx < 0 || chi2 < bestChi2 {
			bestIdx = gi
			bestChi2 = chi2
			bestData = dtmb
		}
	}

	eval.State = Matched
	eval.VLSR = grid[bestIdx]
	eval.Chi2 = bestChi2
	eval.noise = noise
	eval.modelVel = mvel
	eval.modelFlux = mtmb
	eval.dataAtBest = bestData

	m.logger.Info("velocity match complete",
		"transition", t.String(),
		"vlsr", eval.VLSR,
		"nominal", vlsr,
		"chi2", eval.Chi2)
	return eval
}

func (m *Matcher) readFirstDatafile(t *transition.Transition) *observed.Profile {
	for _, path := range t.Datafiles() {
		p, err := m.readProfile(path)
		if err != nil {
			m.logger.Info("observed data unavailable", "path", path, "error", err)
			continue
		}
		return p
	}
	return nil
}

// IntegratedModel returns the trapezoidal integral of the modeled flux
// over velocity. The boolean is false before the transition is Matched.
func (e *Evaluation) IntegratedModel() (float64, bool) {
	if e.State != Matched {
		return 0, false
	}
	return trapz(e.modelVel, e.modelFlux), true
}

// IntegratedData integrates the observed flux interpolated at the best
// offset over the model velocity grid.
func (e *Evaluation) IntegratedData() (float64, bool) {
	if e.State != Matched {
		return 0, false
	}
	return trapz(e.modelVel, e.dataAtBest), true
}

// PeakModel is the mean of the 5 modeled samples centred on the profile
// midpoint.
func (e *Evaluation) PeakModel() (float64, bool) {
	if e.State != Matched {
		return 0, false
	}
	return midMean(e.modelFlux), true
}

// PeakData is the observed counterpart of PeakModel, on the same
// velocity bin.
func (e *Evaluation) PeakData() (float64, bool) {
	if e.State != Matched {
		return 0, false
	}
	return midMean(e.dataAtBest), true
}

// Loglikelihood scores the shape agreement between data and a model
// rescaled by the ratio of integrated intensities.
func (e *Evaluation) Loglikelihood() (float64, bool) {
	if e.State != Matched {
		return 0, false
	}
	intModel, _ := e.IntegratedModel()
	if intModel == 0 {
		return 0, false
	}
	intData, _ := e.IntegratedData()
	scale := intData / intModel
	scaled := make([]float64, len(e.modelFlux))
	for i, v := range e.modelFlux {
		scaled[i] = v * scale
	}
	return loglikelihood(e.dataAtBest, scaled, e.noise), true
}
