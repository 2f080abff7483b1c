package trendengine

import (
	"github.com/evdnx/gots-trend/bar"
	"github.com/evdnx/gots-trend/metrics"
)

// containmentWindow tracks a run of bars whose range stays inside a
// reference candidate's [low, high], suppressing rule confirmations once
// the run has lasted long enough that the move looks like coiling rather
// than a breakout setup.
type containmentWindow struct {
	RefIndex int
	RefHigh  float64
	RefLow   float64
	Start    int
	Inside   int
}

func (w containmentWindow) contains(b bar.Bar) bool {
	return b.H <= w.RefHigh && b.L >= w.RefLow
}

// containmentGates is what the rule batteries and the pending-signal
// tracker consult before acting.
type containmentGates struct {
	SuppressCUS       bool
	SuppressCDS       bool
	SuppressNewSignal bool
}

// updateContainment advances the containment window for the current bar
// and returns the gates it implies for this step. suppressionBars is the
// number of bars a window may run before confirmations are suppressed
// (spec default 5, see config.DefaultContainmentSuppressionBars).
func (s *EngineState) updateContainment(current bar.Bar, suppressionBars int) containmentGates {
	if s.containment == nil {
		s.tryOpenContainment(current)
		return containmentGates{}
	}

	w := s.containment
	switch {
	case current.Index == w.Start:
		// the bar that opened the window; no change.
	case w.contains(current):
		w.Inside++
	default:
		s.containment = nil
		metrics.ContainmentActive.WithLabelValues(s.contractID).Set(0)
		// a fresh PDS/PUS reference may have been offered on this very
		// bar, so re-run the open check immediately instead of waiting
		// for the next bar, matching the canonical
		// _handle_containment_logic's same-step re-check.
		s.tryOpenContainment(current)
	}

	if s.containment == nil {
		return containmentGates{}
	}
	w = s.containment

	delta := current.Index - w.Start
	suppress := delta > suppressionBars
	return containmentGates{
		SuppressCUS:       suppress,
		SuppressCDS:       suppress,
		SuppressNewSignal: current.Index != w.Start,
	}
}

// tryOpenContainment opens a new window against the current PDS/PUS
// reference candidate if current is already inside its range, setting the
// live gauge the way strategy.TrendComposite's position gauges are set on
// every state transition rather than left to a periodic sweep.
func (s *EngineState) tryOpenContainment(current bar.Bar) {
	var ref *pendingCandidate
	switch {
	case s.pds != nil:
		ref = s.pds
	case s.pus != nil:
		ref = s.pus
	}
	if ref == nil || ref.Index == current.Index ||
		current.H > ref.High || current.L < ref.Low {
		return
	}
	s.containment = &containmentWindow{
		RefIndex: ref.Index,
		RefHigh:  ref.High,
		RefLow:   ref.Low,
		Start:    current.Index,
		Inside:   1,
	}
	metrics.ContainmentActive.WithLabelValues(s.contractID).Set(1)
}
