// Package trendengine implements the forward-causal trend-start detector:
// a single-threaded state machine that watches a chronological stream of
// price bars and emits events naming the bar where an uptrend or downtrend
// began, as soon as a later bar's geometry confirms it.
package trendengine

import (
	"fmt"
	"sort"

	"github.com/evdnx/gots-trend/bar"
	"github.com/evdnx/gots-trend/logger"
)

// EngineState is the full mutable state of one detector instance: bar
// history, the two pending candidates, the containment window, and the
// alternation bookkeeping. It is touched by at most one goroutine at a
// time; callers running multiple contract/timeframe streams should give
// each its own Engine.
type EngineState struct {
	contractID string
	timeframe  string

	history []bar.Bar

	pus         *pendingCandidate
	pds         *pendingCandidate
	containment *containmentWindow

	lastConfirmedTrend   bar.SignalType // "" means no confirmation yet
	lastConfirmedBarIndex int

	suppressionBars int

	events   []bar.TrendEvent
	seen     map[string]struct{}
	debug    *debugCollector
}

// Engine is the public handle around an EngineState.
type Engine struct {
	state *EngineState
	log   logger.Logger
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithContainmentSuppressionBars overrides the default 5-bar containment
// suppression threshold shared by the CUS and CDS batteries.
func WithContainmentSuppressionBars(n int) EngineOption {
	return func(e *Engine) {
		e.state.suppressionBars = n
	}
}

// WithLogger attaches a logger used for debug-record mirroring.
func WithLogger(l logger.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithDebugRange enables debug-record collection for bars in [start, end].
// A zero end leaves the range open-ended, so a zero start and end collects
// for every bar.
func WithDebugRange(start, end int) EngineOption {
	return func(e *Engine) {
		e.state.debug = newDebugCollector(start, end, e.log)
	}
}

const defaultSuppressionBars = 5

// NewEngine creates a fresh, empty detector for one contract/timeframe pair.
func NewEngine(contractID, timeframe string, opts ...EngineOption) *Engine {
	e := &Engine{
		state: &EngineState{
			contractID:      contractID,
			timeframe:       timeframe,
			suppressionBars: defaultSuppressionBars,
			seen:            make(map[string]struct{}),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state.debug == nil {
		e.state.debug = newDebugCollector(0, 0, e.log)
		e.state.debug.enabled = false
	}
	return e
}

func (eng *EngineState) barAt(index int) bar.Bar {
	if index < 1 || index > len(eng.history) {
		return bar.Bar{}
	}
	return eng.history[index-1]
}

func (eng *EngineState) makeEvent(signal bar.SignalType, confirmedIndex, triggeringIndex int, rule string) bar.TrendEvent {
	b := eng.barAt(confirmedIndex)
	return bar.TrendEvent{
		Timestamp:             b.Timestamp,
		ContractID:            eng.contractID,
		Timeframe:             eng.timeframe,
		SignalType:            signal,
		SignalPrice:           b.C,
		SignalOpen:            b.O,
		SignalHigh:            b.H,
		SignalLow:             b.L,
		SignalClose:           b.C,
		SignalVolume:          b.Volume,
		ConfirmedBarIndex:     confirmedIndex,
		ConfirmedBarTimestamp: b.Timestamp,
		TriggeringBarIndex:    triggeringIndex,
		RuleType:              rule,
	}
}

func dedupeKey(idx int, st bar.SignalType) string {
	return fmt.Sprintf("%d|%s", idx, st)
}

// appendEvent records ev unless its (confirmed_bar_index, signal_type) pair
// has already been emitted.
func (eng *EngineState) appendEvent(ev bar.TrendEvent) {
	k := dedupeKey(ev.ConfirmedBarIndex, ev.SignalType)
	if _, dup := eng.seen[k]; dup {
		return
	}
	eng.seen[k] = struct{}{}
	eng.events = append(eng.events, ev)
}

// validateIncoming checks structural invariants plus the stream-ordering
// contract against the last appended bar.
func (eng *EngineState) validateIncoming(b bar.Bar) error {
	if err := b.Validate(); err != nil {
		return &InvalidBarError{Index: b.Index, Reason: err.Error()}
	}
	if n := len(eng.history); n > 0 {
		last := eng.history[n-1]
		if b.Index != last.Index+1 {
			return &InvalidBarError{Index: b.Index, Reason: fmt.Sprintf("non-contiguous index, expected %d", last.Index+1)}
		}
		if !b.Timestamp.After(last.Timestamp) {
			return &InvalidBarError{Index: b.Index, Reason: "timestamp does not strictly increase"}
		}
	} else if b.Index != 1 {
		return &InvalidBarError{Index: b.Index, Reason: "first bar must have index 1"}
	}
	return nil
}

// ProcessNewBar appends b to the history and runs the full detection
// pipeline for it, returning any trend-start events its arrival produced.
// A rejected bar leaves state untouched.
func (e *Engine) ProcessNewBar(b bar.Bar) ([]bar.TrendEvent, error) {
	eng := e.state
	if err := eng.validateIncoming(b); err != nil {
		return nil, err
	}
	eng.history = append(eng.history, b)
	k := b.Index

	if k == 1 {
		eng.debug.note(k, "first bar, nothing to evaluate")
		return nil, nil
	}

	p := eng.barAt(k - 1)
	var prevPrev *bar.Bar
	if pp := eng.barAt(k - 2); pp.Index != 0 {
		prevPrev = &pp
	}

	pusBefore := eng.pus
	eng.invalidatePUS(k)
	if pusBefore != nil && eng.pus == nil {
		eng.debug.note(k, fmt.Sprintf("PUS on bar %d invalidated by an intervening lower low", pusBefore.Index))
	}
	gates := eng.updateContainment(b, eng.suppressionBars)

	var stepEvents []bar.TrendEvent

	cusRule, cusFired := eng.evaluateCUS(b, p, gates)
	cdsRule, cdsFired := eng.evaluateCDS(b, p, gates)

	if cusFired {
		stepEvents = append(stepEvents, eng.applyCUS(b, p, cusRule, k)...)
	}
	if cdsFired {
		stepEvents = append(stepEvents, eng.applyCDS(b, p, cdsRule, k)...)
	}

	eng.scanNewPendingSignals(b, p, prevPrev, cusFired, cdsFired, gates)

	for _, ev := range stepEvents {
		eng.debug.note(k, fmt.Sprintf("%s confirmed on bar %d by %s", ev.SignalType, ev.ConfirmedBarIndex, ev.RuleType))
		eng.appendEvent(ev)
	}

	out := make([]bar.TrendEvent, len(stepEvents))
	copy(out, stepEvents)
	return out, nil
}

// AllSignals returns every emitted event, deduplicated and sorted by
// (confirmed_bar_index, signal_type).
func (e *Engine) AllSignals() []bar.TrendEvent {
	out := make([]bar.TrendEvent, len(e.state.events))
	copy(out, e.state.events)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConfirmedBarIndex != out[j].ConfirmedBarIndex {
			return out[i].ConfirmedBarIndex < out[j].ConfirmedBarIndex
		}
		return out[i].SignalType < out[j].SignalType
	})
	return out
}

// DebugLogs returns the structured trace records collected for bars inside
// the configured debug range (see WithDebugRange).
func (e *Engine) DebugLogs() []DebugRecord {
	if e.state.debug == nil {
		return nil
	}
	out := make([]DebugRecord, len(e.state.debug.records))
	copy(out, e.state.debug.records)
	return out
}

// ContractID returns the contract this engine instance tracks.
func (e *Engine) ContractID() string { return e.state.contractID }

// Timeframe returns the bar interval label this engine instance tracks.
func (e *Engine) Timeframe() string { return e.state.timeframe }

// BarCount returns the number of bars processed so far.
func (e *Engine) BarCount() int { return len(e.state.history) }
