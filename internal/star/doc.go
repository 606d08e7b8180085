// Package star holds the demand-driven parameter store at the heart of
// the modeling pipeline.
//
// A Store maps parameter names to values. Reads of missing parameters
// consult a registry of derivation rules that compute the value from
// other parameters, solver output, prior-run records, and reference
// data; derivation recurses through the store as deep as the rules
// require, with a resolving-set guard that fails fast on circular
// dependencies. Entries are Explicit (input), Derived (computed once),
// or Volatile (recomputed on every read, the marker surviving each
// recomputation).
//
// Rules never overwrite a present value, and every collaborator failure
// (solver output missing, database record absent) is absorbed by the
// rule that issued the read and logged together with the default it
// falls back to.
package star
