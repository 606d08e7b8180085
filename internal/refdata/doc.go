// Package refdata loads the static reference tables shipped with the
// pipeline: dust species (Dust.dat), molecule metadata (Molecule.dat),
// known stars (Star.dat) and telescope properties (Telescope.dat).
//
// Tables are whitespace-separated columns with #-prefixed comments; the
// last comment line before the data names the columns. Tables are parsed
// once and cached; the store is read-only.
package refdata
