package trendengine

import "github.com/evdnx/gots-trend/bar"

// findInterveningExtremum scans bars strictly between lo and hi (exclusive
// on both ends) and returns the bar a forced alternation event should name:
// the highest high (ties broken by lowest index) for a forced downtrend
// start, the lowest low (ties broken by lowest index) for a forced uptrend
// start. ok is false if the range is empty.
func (eng *EngineState) findInterveningExtremum(lo, hi int, forSignal bar.SignalType) (b bar.Bar, ok bool) {
	for idx := lo + 1; idx < hi; idx++ {
		if idx < 1 || idx > len(eng.history) {
			continue
		}
		cand := eng.history[idx-1]
		if !ok {
			b, ok = cand, true
			continue
		}
		switch forSignal {
		case bar.DowntrendStart:
			if cand.H > b.H {
				b = cand
			}
		case bar.UptrendStart:
			if cand.L < b.L {
				b = cand
			}
		}
	}
	return b, ok
}

// forceAlternation synthesizes the opposite-polarity event required to
// keep the stream alternating, naming the intervening extremum bar between
// the last confirmed bar and confirmIndex (the candidate about to be
// confirmed). It updates last-confirmed state in place so the caller's own
// confirmation follows it. ok is false if the intervening range was empty,
// in which case no event is produced and alternation is tolerated as a gap.
func (eng *EngineState) forceAlternation(forcedSignal bar.SignalType, callerRule string, confirmIndex, triggeringBarIndex int) (bar.TrendEvent, bool) {
	extremum, ok := eng.findInterveningExtremum(eng.lastConfirmedBarIndex, confirmIndex, forcedSignal)
	if !ok {
		return bar.TrendEvent{}, false
	}
	ev := bar.TrendEvent{
		Timestamp:             extremum.Timestamp,
		ContractID:            eng.contractID,
		Timeframe:             eng.timeframe,
		SignalType:            forcedSignal,
		SignalPrice:           extremum.C,
		SignalOpen:            extremum.O,
		SignalHigh:            extremum.H,
		SignalLow:             extremum.L,
		SignalClose:           extremum.C,
		SignalVolume:          extremum.Volume,
		ConfirmedBarIndex:     extremum.Index,
		ConfirmedBarTimestamp: extremum.Timestamp,
		TriggeringBarIndex:    triggeringBarIndex,
		RuleType:              "FORCED_by_" + callerRule,
	}
	eng.lastConfirmedTrend = forcedSignal
	eng.lastConfirmedBarIndex = extremum.Index
	return ev, true
}
