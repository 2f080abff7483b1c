package trendengine

import (
	"testing"
	"time"

	"github.com/evdnx/gots-trend/bar"
)

// ohlc is the shorthand tests use to describe a single bar; index and
// timestamp are assigned by mkBars in stream order.
type ohlc struct {
	o, h, l, c float64
}

func mkBars(rows []ohlc) []bar.Bar {
	out := make([]bar.Bar, len(rows))
	base := time.Unix(1_700_000_000, 0)
	for i, r := range rows {
		out[i] = bar.Bar{
			Index:     i + 1,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			O:         r.o, H: r.h, L: r.l, C: r.c,
			Volume: 100,
		}
	}
	return out
}

// feedAll pushes every bar through the engine in order, failing the test
// on the first rejection, and returns every event emitted across the run.
func feedAll(t *testing.T, eng *Engine, bars []bar.Bar) []bar.TrendEvent {
	t.Helper()
	var all []bar.TrendEvent
	for _, bb := range bars {
		evs, err := eng.ProcessNewBar(bb)
		if err != nil {
			t.Fatalf("bar %d rejected: %v", bb.Index, err)
		}
		all = append(all, evs...)
	}
	return all
}
