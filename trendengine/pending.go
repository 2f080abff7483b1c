package trendengine

import "github.com/evdnx/gots-trend/bar"

// pdsPromotionPrecondition mirrors the forward-test variant's guard: a bar
// may only be promoted to PDS if its own high is not below the high of the
// bar immediately preceding it (when one exists).
func (eng *EngineState) pdsPromotionPrecondition(b bar.Bar) bool {
	prevIdx := b.Index - 1
	if prevIdx < 1 || prevIdx > len(eng.history) {
		return true
	}
	return b.H >= eng.history[prevIdx-1].H
}

// tryPromotePDS offers b as the PDS candidate, honoring the precondition
// above. Returns whether the precondition passed (not whether it actually
// replaced the stored candidate: offerPDS only replaces on a strictly
// higher high, per monotone-replacement).
func (eng *EngineState) tryPromotePDS(b bar.Bar) bool {
	if !eng.pdsPromotionPrecondition(b) {
		return false
	}
	eng.pds = offerPDS(eng.pds, b)
	return true
}

// scanNewPendingSignals runs the Rule-C / PDS-on-prev / PUS-on-prev scan
// described in the pending-signal tracker. Returns whether Rule-C fired
// (setting the current bar itself as PDS), which suppresses PDS-on-prev
// for this step.
func (eng *EngineState) scanNewPendingSignals(c, p bar.Bar, prevPrev *bar.Bar, cusFired, cdsFired bool, gates containmentGates) bool {
	if gates.SuppressNewSignal {
		return false
	}

	ruleCFired := false
	if c.H > p.H && c.C < c.O {
		eng.pds = offerPDS(eng.pds, c)
		ruleCFired = true
	}

	if !cdsFired && !ruleCFired {
		if isLowerOHLC(c, p) || isPDSRule(c, p) || isSimplePDS(c, p) {
			ok := true
			if prevPrev != nil && p.H < prevPrev.H {
				ok = false
			}
			if ok {
				eng.pds = offerPDS(eng.pds, p)
			}
		}
	}

	if !cusFired {
		if isHigherOHLC(c, p) || isPUSRule(c, p) || isSimplePUS(c, p) || isHHLLDownClose(c, p) {
			eng.pus = offerPUS(eng.pus, p)
		}
	}

	return ruleCFired
}
