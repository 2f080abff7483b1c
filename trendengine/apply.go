package trendengine

import "github.com/evdnx/gots-trend/bar"

// applyCUS applies the consequences of a fired CUS rule: possibly forcing
// a CDS first to preserve alternation, emitting the uptrend_start event,
// clearing the PUS candidate, and seeding a fresh PDS per the fired rule.
func (eng *EngineState) applyCUS(c, p bar.Bar, rule string, triggeringIndex int) []bar.TrendEvent {
	U := *eng.pus
	var out []bar.TrendEvent

	if eng.lastConfirmedTrend == bar.UptrendStart && U.Index > eng.lastConfirmedBarIndex {
		if forced, ok := eng.forceAlternation(bar.DowntrendStart, rule, U.Index, triggeringIndex); ok {
			out = append(out, forced)
		}
	}

	out = append(out, eng.makeEvent(bar.UptrendStart, U.Index, triggeringIndex, rule))
	eng.lastConfirmedTrend = bar.UptrendStart
	eng.lastConfirmedBarIndex = U.Index
	eng.pus = nil

	switch rule {
	case "HigherHighLowerLowDownClose":
		eng.tryPromotePDS(c)
	case "EngulfingUpPDSLowBreak":
		// no PDS seeding
	default:
		uBar := eng.barAt(U.Index)
		if isLowerOHLC(c, uBar) || isPDSRule(c, uBar) || isSimplePDS(c, uBar) {
			eng.tryPromotePDS(uBar)
		}
	}

	return out
}

// applyCDS applies the consequences of a fired CDS rule: possibly forcing
// a CUS first to preserve alternation, emitting the downtrend_start event,
// and clearing PUS/PDS candidates per §4.F.
func (eng *EngineState) applyCDS(c, p bar.Bar, rule string, triggeringIndex int) []bar.TrendEvent {
	P := *eng.pds
	var out []bar.TrendEvent

	if eng.lastConfirmedTrend == bar.DowntrendStart && P.Index > eng.lastConfirmedBarIndex {
		if forced, ok := eng.forceAlternation(bar.UptrendStart, rule, P.Index, triggeringIndex); ok {
			out = append(out, forced)
		}
	}

	out = append(out, eng.makeEvent(bar.DowntrendStart, P.Index, triggeringIndex, rule))
	eng.lastConfirmedTrend = bar.DowntrendStart
	eng.lastConfirmedBarIndex = P.Index

	if eng.pus != nil && eng.pus.Index < P.Index {
		eng.pus = nil
	}
	if eng.pds != nil && eng.pds.Index == P.Index {
		eng.pds = nil
	}

	return out
}
