package transition

import (
	"fmt"
	"strings"
)

// Merge collapses a transition list to one representative per canonical
// descriptor, preserving first-seen order. Data files of collapsed
// duplicates are appended to the surviving representative, never
// dropped. Membership is a linear scan with descriptor equality;
// transition lists are small.
func Merge(list []*Transition) []*Transition {
	var merged []*Transition
	for _, t := range list {
		kept := find(merged, t)
		if kept == nil {
			merged = append(merged, t)
			continue
		}
		kept.AddDatafiles(t.Datafiles()...)
	}
	return merged
}

// CheckUniqueness verifies that a fully assembled collection has exactly
// one entity per descriptor serialization. A violation means two
// different parameter sets were supplied for what is physically one
// transition; that is a configuration error, not recoverable here.
func CheckUniqueness(list []*Transition) error {
	seen := make(map[string]int, len(list))
	for _, t := range list {
		seen[t.String()]++
	}
	if len(seen) == len(list) {
		return nil
	}
	var guilty []string
	for _, t := range list {
		if seen[t.String()] > 1 {
			guilty = append(guilty, t.String())
		}
	}
	return fmt.Errorf("%w: %d entries for %d distinct transitions:\n%s",
		ErrIdentity, len(list), len(seen), strings.Join(guilty, "\n"))
}

// BuildSet assembles a deduplicated transition collection. Exact
// duplicates (same descriptor and same run parameters) are merged with
// their data files unioned; two entries sharing a descriptor but
// disagreeing on run parameters are an identity violation.
func BuildSet(list []*Transition) ([]*Transition, error) {
	var assembled []*Transition
	byRunKey := make(map[string]*Transition)
	for _, t := range list {
		if kept, ok := byRunKey[t.RunKey()]; ok {
			kept.AddDatafiles(t.Datafiles()...)
			continue
		}
		byRunKey[t.RunKey()] = t
		assembled = append(assembled, t)
	}
	if err := CheckUniqueness(assembled); err != nil {
		return nil, err
	}
	return assembled, nil
}

func find(list []*Transition, t *Transition) *Transition {
	for _, kept := range list {
		if kept.Equal(t) {
			return kept
		}
	}
	return nil
}
