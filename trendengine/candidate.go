package trendengine

import "github.com/evdnx/gots-trend/bar"

// pendingCandidate is the "best" bar currently nominated as a pending
// uptrend or downtrend start: for PUS the lowest low seen, for PDS the
// highest high seen, each awaiting confirmation by a later bar.
type pendingCandidate struct {
	Index int
	High  float64
	Low   float64
}

func candidateFromBar(b bar.Bar) pendingCandidate {
	return pendingCandidate{Index: b.Index, High: b.H, Low: b.L}
}

// offerPUS replaces the stored PUS candidate only if b's low is strictly
// lower than the stored candidate's low, or there is no stored candidate.
func offerPUS(stored *pendingCandidate, b bar.Bar) *pendingCandidate {
	if stored == nil || b.L < stored.Low {
		c := candidateFromBar(b)
		return &c
	}
	return stored
}

// offerPDS replaces the stored PDS candidate only if b's high is strictly
// higher than the stored candidate's high, or there is no stored candidate.
func offerPDS(stored *pendingCandidate, b bar.Bar) *pendingCandidate {
	if stored == nil || b.H > stored.High {
		c := candidateFromBar(b)
		return &c
	}
	return stored
}
