package trendengine

import "github.com/evdnx/gots-trend/bar"

// cusExhaustionMaxBarsFromCandidate bounds how far past the PUS candidate a
// bar may confirm it via EXHAUSTION_REVERSAL.
const cusExhaustionMaxBarsFromCandidate = 6

// cusRule is one named predicate in the CUS battery. c is the current bar,
// p the previous bar, U the snapshotted PUS candidate being tested, D the
// snapshotted PDS candidate (nil if none).
type cusRule struct {
	Name string
	Fire func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool
}

var cusRuleBattery = []cusRule{
	{
		Name: "EXHAUSTION_REVERSAL",
		Fire: func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool {
			return isLowerOHLC(c, p) &&
				(D == nil || c.L >= D.Low) &&
				c.Index-U.Index <= cusExhaustionMaxBarsFromCandidate
		},
	},
	{
		Name: "LowUndercutHighRespect",
		Fire: func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool {
			if D == nil || D.Index <= U.Index {
				return false
			}
			return c.L < D.Low && c.H <= D.High && c.C > p.C
		},
	},
	{
		Name: "HigherHighLowerLowDownClose",
		Fire: func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool {
			return isHHLLDownClose(c, p)
		},
	},
	{
		Name: "EngulfingUpPDSLowBreak",
		Fire: func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool {
			if D == nil {
				return false
			}
			return c.H > p.H && c.L < p.L && c.C > p.C && c.C > c.O && c.L < D.Low
		},
	},
	{
		Name: "BreakoutAfterFailedLowV2",
		Fire: func(eng *EngineState, c, p bar.Bar, U pendingCandidate, D *pendingCandidate) bool {
			if D == nil || D.Index <= U.Index {
				return false
			}
			if !eng.pusLowIntact(U, c.Index) {
				return false
			}
			return c.H > D.High && c.C > p.C && c.C > c.O
		},
	},
}

// pusLowIntact reports whether every bar strictly between U and upTo kept
// its low at or above U's low.
func (eng *EngineState) pusLowIntact(U pendingCandidate, upTo int) bool {
	for idx := U.Index + 1; idx < upTo; idx++ {
		if idx < 1 || idx > len(eng.history) {
			continue
		}
		if eng.history[idx-1].L < U.Low {
			return false
		}
	}
	return true
}

// evaluateCUS runs the battery in order and returns the first matching
// rule's name, or ("", false) if none match or no PUS candidate exists.
func (eng *EngineState) evaluateCUS(c, p bar.Bar, gates containmentGates) (string, bool) {
	if eng.pus == nil || gates.SuppressCUS {
		return "", false
	}
	U := *eng.pus
	var D *pendingCandidate
	if eng.pds != nil {
		d := *eng.pds
		D = &d
	}
	for _, r := range cusRuleBattery {
		if r.Fire(eng, c, p, U, D) {
			return r.Name, true
		}
	}
	return "", false
}
