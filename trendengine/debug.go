package trendengine

import "github.com/evdnx/gots-trend/logger"

// DebugRecord is one structured trace entry describing what the engine
// observed or decided while processing a bar. Collection is gated by an
// optional bar-index range so long replays can be traced selectively.
type DebugRecord struct {
	BarIndex int
	Messages []string
}

// debugCollector accumulates DebugRecords for bars inside [start, end].
// It lives on EngineState, not as a package-level flag, so independent
// Engine instances never share debug state.
type debugCollector struct {
	enabled bool
	start   int
	end     int
	log     logger.Logger
	records []DebugRecord
}

func newDebugCollector(start, end int, log logger.Logger) *debugCollector {
	return &debugCollector{enabled: true, start: start, end: end, log: log}
}

func (d *debugCollector) inRange(idx int) bool {
	if d == nil || !d.enabled {
		return false
	}
	if d.end == 0 {
		return idx >= d.start
	}
	return idx >= d.start && idx <= d.end
}

// note appends msg to the current bar's record (creating one if needed)
// and, when a logger is attached, mirrors it at debug level via Info.
func (d *debugCollector) note(idx int, msg string) {
	if !d.inRange(idx) {
		return
	}
	if n := len(d.records); n == 0 || d.records[n-1].BarIndex != idx {
		d.records = append(d.records, DebugRecord{BarIndex: idx})
	}
	last := &d.records[len(d.records)-1]
	last.Messages = append(last.Messages, msg)
	if d.log != nil {
		d.log.Info(msg, logger.Int("bar_index", idx))
	}
}
