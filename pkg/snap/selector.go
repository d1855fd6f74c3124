package snap

import "math"

// Criteria holds the device-dependent thresholds used by SelectTarget.
type Criteria struct {
	// VelocityThreshold is the release speed above which the sheet moves one
	// step in the direction of travel, in the same units as the velocity.
	VelocityThreshold float64
	// Thresholds holds one extent fraction per snap point, ascending.
	// The fraction selects the first point whose threshold it does not
	// exceed. Missing entries never match.
	Thresholds []float64
}

// Rule names which half of the selector produced a Decision.
type Rule int

const (
	// ByPosition means the position thresholds decided.
	ByPosition Rule = iota
	// ByVelocity means the release was fast enough to step in its direction.
	ByVelocity
)

func (r Rule) String() string {
	if r == ByVelocity {
		return "velocity"
	}
	return "position"
}

// Decision is the outcome of Decide.
type Decision struct {
	Target Point
	Rule   Rule
}

// SelectTarget decides which snap point to settle into after a gesture.
//
// fraction is the displayed extent as a fraction of the viewport. velocity is
// signed with screen coordinates: negative means the pointer moved up, which
// expands the sheet. A fast release moves exactly one step from current,
// clamped at the ends of seq; otherwise the position thresholds decide.
//
// SelectTarget is total: it always returns a member of seq, which must be
// non-empty. When current is not in seq the velocity rule is skipped.
func SelectTarget(seq Sequence, current Point, fraction, velocity float64, c Criteria) Point {
	return Decide(seq, current, fraction, velocity, c).Target
}

// Decide is SelectTarget that also reports which rule applied. Callers use
// the rule to tell a downward fling clamped at the first point apart from a
// slow release there.
func Decide(seq Sequence, current Point, fraction, velocity float64, c Criteria) Decision {
	if seq.Contains(current) && math.Abs(velocity) > c.VelocityThreshold {
		if velocity < 0 {
			return Decision{Target: seq.Step(current, 1), Rule: ByVelocity}
		}
		return Decision{Target: seq.Step(current, -1), Rule: ByVelocity}
	}
	return Decision{Target: byPosition(seq, fraction, c.Thresholds), Rule: ByPosition}
}

func byPosition(seq Sequence, fraction float64, thresholds []float64) Point {
	if math.IsNaN(fraction) {
		fraction = 0
	}
	for i, p := range seq {
		if i < len(thresholds) && fraction <= thresholds[i] {
			return p
		}
	}
	return seq.Last()
}
