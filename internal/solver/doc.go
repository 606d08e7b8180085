// Package solver reads the output files written by the external gas and
// dust radiative-transfer codes.
//
// The codes are run out of band; this package only locates and parses
// their model output by model identifier and field keyword. Every read
// can fail with ErrUnavailable (model not yet computed, file missing,
// keyword absent) and callers are expected to absorb that error into a
// documented default.
package solver
