package star

// Status tags how a store entry came to be and how reads must treat it.
type Status int

const (
	// Explicit values were supplied by the caller and are never
	// recomputed.
	Explicit Status = iota
	// Derived values were computed by a rule, at most once per entry
	// lifetime.
	Derived
	// Volatile entries are never trusted as cached: every read
	// recomputes the value and reinstates the marker.
	Volatile
)

func (s Status) String() string {
	switch s {
	case Explicit:
		return "explicit"
	case Derived:
		return "derived"
	case Volatile:
		return "volatile"
	}
	return "unknown"
}

// volatileMarker is the legacy input convention for flagging a
// parameter volatile; seeding translates it to the typed status.
const volatileMarker = "%"

type entry struct {
	value  any
	status Status
}
