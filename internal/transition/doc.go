// Package transition models spectral line transitions and their
// deduplication.
//
// A Transition is identified by its canonical descriptor: molecule,
// upper/lower vibrational and rotational (and asymmetric-rotor) quantum
// numbers, telescope, and pointing offset. Attached data files, model
// ids, and cached fit results never participate in identity. Two
// transitions with equal descriptors are the same physical line
// regardless of provenance.
package transition
