// Package preflight provides readiness checks for the filesystem paths
// and reference tables the modeling pipeline depends on.
//
// The CLI "combocode check" command runs RunAll and renders the results;
// individual checks are exported for callers that only care about one
// concern. Each check returns a Result rather than an error so a single
// failing path does not hide the state of the others.
package preflight
