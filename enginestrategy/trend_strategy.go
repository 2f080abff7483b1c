// Package enginestrategy wraps the trend-start detector for live use,
// turning emitted events into order flow the way the teacher's strategy
// package turns indicator crossovers into order flow.
package enginestrategy

import (
	"github.com/evdnx/goti"

	"github.com/evdnx/gots-trend/bar"
	"github.com/evdnx/gots-trend/config"
	"github.com/evdnx/gots-trend/executor"
	"github.com/evdnx/gots-trend/logger"
	"github.com/evdnx/gots-trend/metrics"
	"github.com/evdnx/gots-trend/strategybase"
	"github.com/evdnx/gots-trend/trendengine"
	"github.com/evdnx/gots-trend/types"
)

// minVolatilityFallback is the priceBuffer volatility proxy used as a gate
// when no goti suite is configured, mirroring the teacher's
// bullishFallback/bearishFallback pattern for strategies that can run
// without the full indicator suite.
const minVolatilityFallback = 1e-9

// TrendStartStrategy feeds bars to a trendengine.Engine and, on every
// confirmed uptrend/downtrend start, flips the live position the way
// strategy.TrendComposite flips on a crossover signal. An optional
// *goti.IndicatorSuite (via Base.Suite) gates entries on ATSO momentum so
// a confirmed trend start with no volatility behind it is not traded.
type TrendStartStrategy struct {
	*strategybase.Base
	Engine *trendengine.Engine

	buf *priceBuffer
}

// NewTrendStartStrategy wires a fresh Engine for (contractID, timeframe)
// and an optional goti.IndicatorSuite volatility gate into a strategybase.Base.
// suiteFactory may be nil to run without the secondary gate (buffer-based
// volatility fallback is used instead).
func NewTrendStartStrategy(symbol, contractID, timeframe string, cfg config.StrategyConfig,
	exec executor.Executor,
	suiteFactory func() (*goti.IndicatorSuite, error),
	log logger.Logger) (*TrendStartStrategy, error) {

	base, err := strategybase.NewBase(symbol, cfg, exec, suiteFactory, log)
	if err != nil {
		return nil, err
	}

	suppression := cfg.ContainmentSuppressionBars
	if suppression <= 0 {
		suppression = config.DefaultContainmentSuppressionBars
	}

	eng := trendengine.NewEngine(contractID, timeframe,
		trendengine.WithContainmentSuppressionBars(suppression),
		trendengine.WithLogger(log),
	)

	return &TrendStartStrategy{
		Base:   base,
		Engine: eng,
		buf:    newPriceBuffer(32),
	}, nil
}

// ProcessBar feeds b to the detector and acts on every event it produces,
// in the order the engine emitted them (forced alternation events first).
func (t *TrendStartStrategy) ProcessBar(b bar.Bar) error {
	t.buf.Add(b.C)

	// Step 1, same as TrendComposite.ProcessBar and BreakoutMomentum.ProcessBar:
	// feed the suite before anything reads it. A failed suite update is
	// logged and the volatility gate still reads the suite for this bar,
	// but the bar is never skipped: the core always needs a contiguous
	// stream regardless of the suite's health.
	if t.Suite != nil {
		if err := t.Suite.Add(b.H, b.L, b.C, b.Volume); err != nil {
			t.Log.Warn("suite_add_error", logger.Err(err))
		}
	}

	events, err := t.Engine.ProcessNewBar(b)
	if err != nil {
		t.Log.Warn("bar_rejected",
			logger.Int("bar_index", b.Index),
			logger.Err(err))
		return err
	}

	for _, ev := range events {
		t.handleEvent(ev)
	}
	return nil
}

// handleEvent flips the live position on a confirmed trend start, subject
// to the optional volatility gate, mirroring TrendComposite.ProcessBar's
// close-then-open sequencing.
func (t *TrendStartStrategy) handleEvent(ev bar.TrendEvent) {
	metrics.TrendEventsEmitted.WithLabelValues(string(ev.SignalType), ev.RuleType).Inc()

	if !t.volatilityConfirms(ev.SignalType) {
		t.Log.Info("trend_event_suppressed_by_volatility_gate",
			logger.String("signal_type", string(ev.SignalType)),
			logger.String("rule_type", ev.RuleType),
			logger.Int("confirmed_bar_index", ev.ConfirmedBarIndex))
		return
	}

	side := types.Buy
	if ev.SignalType == bar.DowntrendStart {
		side = types.Sell
	}

	if err := t.FlipPosition(ev.SignalPrice, side, ev.RuleType); err != nil {
		t.Log.Error("flip_position_failed",
			logger.String("signal_type", string(ev.SignalType)),
			logger.Err(err))
	}
}

// volatilityConfirms reports whether the optional secondary gate agrees
// with the direction of the trend event. With no suite configured it falls
// back to requiring a non-trivial rolling price buffer volatility, the
// same bare-minimum fallback the teacher's strategies use when run without
// their indicator suite.
func (t *TrendStartStrategy) volatilityConfirms(signal bar.SignalType) bool {
	if t.Suite == nil {
		return t.buf.Volatility() > minVolatilityFallback
	}
	atso := t.Suite.GetATSO()
	switch signal {
	case bar.UptrendStart:
		return atso.IsBullishCrossover()
	case bar.DowntrendStart:
		return atso.IsBearishCrossover()
	default:
		return true
	}
}
