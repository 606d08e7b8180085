// Package linefit aligns observed line profiles to modeled ones and
// scores the fit.
//
// For each transition the matcher runs a uniform grid search for the
// systemic-velocity offset, interpolating the observed flux onto the
// shifted model velocity grid and minimizing chi-squared against the
// model at a fixed noise level. Quantities that compare data against the
// model (integrated and peak intensities, log-likelihood) exist only
// once a transition is matched; before that they short-circuit with no
// result rather than erroring.
package linefit
