package state

const (
	INF = ^(Cost)(0)
	// INFM is the largest finite cost. Sums saturate here instead of wrapping into INF, which
	// no sum of int weights can reach.
	INFM = INF - 1

	// RemoveWeight in a topology edit deletes the link instead of setting its weight.
	RemoveWeight = -1
)

// protocol section terminators
const (
	StartMarker  = "START"
	UpdateMarker = "UPDATE"
	EndMarker    = "END"
)

var (
	// MaxRounds bounds a single convergence phase. Zero leaves it unbounded, which lets a
	// count-to-infinity run forever exactly like the plain algorithm does.
	MaxRounds = 0
	LogPrefix = "dvsim"

	// output tokens
	InfToken         = "INF"
	RouteInfToken    = "inf"
	NoNextHopToken   = "None"
	TableCornerToken = " "
)
