// Package bar defines the immutable OHLC bar and the trend-start event
// record that the trendengine package consumes and produces.
package bar

import (
	"fmt"
	"math"
	"time"
)

// Bar is one completed price interval. It is immutable once constructed;
// the engine never mutates a Bar after appending it to history.
type Bar struct {
	Index     int       // 1-based chronological position in the stream
	Timestamp time.Time // absolute instant, strictly increasing across a stream
	O, H, L, C float64
	Volume    float64
}

// Validate checks the structural invariants a Bar must satisfy before the
// engine will accept it: finite fields, a well-formed OHLC range, and a
// non-negative volume. It does not check ordering against prior bars; that
// is the caller's responsibility (see trendengine.Engine.ProcessNewBar).
func (b Bar) Validate() error {
	for name, v := range map[string]float64{"open": b.O, "high": b.H, "low": b.L, "close": b.C, "volume": b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bar %d: %s is not finite (%v)", b.Index, name, v)
		}
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %d: volume %v is negative", b.Index, b.Volume)
	}
	if b.H < b.L {
		return fmt.Errorf("bar %d: high %v < low %v", b.Index, b.H, b.L)
	}
	lo := math.Min(b.O, b.C)
	hi := math.Max(b.O, b.C)
	if b.L > lo || hi > b.H {
		return fmt.Errorf("bar %d: open/close (%v,%v) outside [low,high] (%v,%v)", b.Index, b.O, b.C, b.L, b.H)
	}
	return nil
}

// SignalType identifies which side of the market a TrendEvent names.
type SignalType string

const (
	UptrendStart   SignalType = "uptrend_start"
	DowntrendStart SignalType = "downtrend_start"
)

// TrendEvent is a single emitted trend-start confirmation, carrying enough
// of the confirmed bar's OHLCV to let a downstream consumer act on it
// without re-fetching history.
type TrendEvent struct {
	Timestamp  time.Time
	ContractID string
	Timeframe  string

	SignalType SignalType

	SignalPrice float64 // confirmed bar's close
	SignalOpen  float64
	SignalHigh  float64
	SignalLow   float64
	SignalClose float64
	SignalVolume float64

	ConfirmedBarIndex     int
	ConfirmedBarTimestamp time.Time
	TriggeringBarIndex    int
	RuleType              string
}

// DedupeKey returns the (confirmed bar, signal type) pair used to
// deduplicate the event stream per spec.
func (e TrendEvent) DedupeKey() (int, SignalType) {
	return e.ConfirmedBarIndex, e.SignalType
}
