package sat

// LBool represents a lifted boolean. That is, a boolean that can either be
// True, False, or Unknown. Solve also uses it as the search status: True for
// satisfiable, False for unsatisfiable, and Unknown when the search stopped
// early.
type LBool int8

const (
	Unknown LBool = 0
	True    LBool = 1
	False   LBool = -1
)

// Opposite returns the opposite of the lifted boolean as follows:
//
//	True -> False
//	False -> True
//	Unknown -> Unknown
func (l LBool) Opposite() LBool {
	return -l
}

// Lift returns a LBool corresponding to the given bool.
func Lift(b bool) LBool {
	if b {
		return True
	}
	return False
}

func (l LBool) String() string {
	switch l {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Verdict returns the competition style answer for a search status, as
// printed on the "s" line of a solver output.
func (l LBool) Verdict() string {
	switch l {
	case True:
		return "SATISFIABLE"
	case False:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}
