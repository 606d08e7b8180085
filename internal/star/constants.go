package star

// Physical constants in cgs units, as used by the external codes.
const (
	RSunCM       = 6.955e10    // solar radius, cm
	MSunG        = 1.98892e33  // solar mass, g
	YearSec      = 31557600.0  // julian year, s
	AUCM         = 1.49598e13  // astronomical unit, cm
	CLight       = 2.99792458e10
	PlanckErg    = 6.62606957e-27
	BoltzmannErg = 1.3806488e-16
	ParsecCM     = 3.08568025e18
)

// Stefan-Boltzmann solar reference values. TLR completion works in
// solar units with these anchors.
const (
	TSun = 5778.0
	LSun = 3.839e33
	RSun = 6.96e10
)
