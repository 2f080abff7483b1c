package trendengine

import "github.com/evdnx/gots-trend/bar"

// cdsRule is one named predicate in the CDS battery. c is the current bar,
// p the previous bar, P the snapshotted PDS candidate under test.
type cdsRule struct {
	Name string
	Fire func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool
}

var cdsRuleBattery = []cdsRule{
	{
		Name: "LowThenHigherClose_vs_PDSOpen",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			pBar := eng.barAt(P.Index)
			return isLowThenHigherClose(c, p) &&
				eng.noIntermediateHigherHigh(P, p.Index) &&
				c.L < pBar.O
		},
	},
	{
		Name: "RallyLowBreaksPeakLow_A",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			return eng.foundPullback(P, p.Index) &&
				c.H > p.H && c.C > p.C &&
				eng.noIntermediateHigherHigh(P, p.Index) &&
				c.L < P.Low
		},
	},
	{
		Name: "NewHighWeakAdvance_B",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			return eng.foundPullback(P, p.Index) &&
				c.C > p.C && c.L >= p.L && c.H > P.High &&
				eng.noIntermediateHigherHigh(P, p.Index)
		},
	},
	{
		Name: "FailedRallyAfterLowBreak_F",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			return eng.noIntermediateHigherHigh(P, p.Index) &&
				p.L < P.Low && c.H > p.H && c.C < p.C && c.C < c.O
		},
	},
	{
		Name: "HigherOHLCAfterLowBreak_G",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			return isHigherOHLC(c, p) &&
				eng.noIntermediateHigherHigh(P, p.Index) &&
				p.L < P.Low
		},
	},
	{
		Name: "OutsideBarStrongerClose_H",
		Fire: func(eng *EngineState, c, p bar.Bar, P pendingCandidate) bool {
			if P.Index != p.Index {
				return false
			}
			return c.H > p.H && c.L < p.L && c.C > p.C
		},
	},
}

// noIntermediateHigherHigh reports whether no bar strictly after P up to
// and including upTo exceeded P's high.
func (eng *EngineState) noIntermediateHigherHigh(P pendingCandidate, upTo int) bool {
	for idx := P.Index + 1; idx <= upTo; idx++ {
		if idx < 1 || idx > len(eng.history) {
			continue
		}
		if eng.history[idx-1].H > P.High {
			return false
		}
	}
	return true
}

// foundPullback reports whether some bar strictly after P up to and
// including upTo traded at or below P's low.
func (eng *EngineState) foundPullback(P pendingCandidate, upTo int) bool {
	for idx := P.Index + 1; idx <= upTo; idx++ {
		if idx < 1 || idx > len(eng.history) {
			continue
		}
		if eng.history[idx-1].L <= P.Low {
			return true
		}
	}
	return false
}

// evaluateCDS runs the battery in order and returns the first matching
// rule's name, or ("", false) if none match or no PDS candidate exists.
func (eng *EngineState) evaluateCDS(c, p bar.Bar, gates containmentGates) (string, bool) {
	if eng.pds == nil || gates.SuppressCDS {
		return "", false
	}
	P := *eng.pds
	for _, r := range cdsRuleBattery {
		if r.Fire(eng, c, p, P) {
			return r.Name, true
		}
	}
	return "", false
}
