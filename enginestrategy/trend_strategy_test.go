package enginestrategy

import (
	"testing"
	"time"

	"github.com/evdnx/goti"

	"github.com/evdnx/gots-trend/bar"
	"github.com/evdnx/gots-trend/config"
	"github.com/evdnx/gots-trend/testutils"
)

func buildConfig() config.StrategyConfig {
	return config.StrategyConfig{
		RSIOverbought:              -1e9,
		RSIOversold:                1e9,
		MFIOverbought:              -1e9,
		MFIOversold:                1e9,
		VWAOStrongTrend:            1e9,
		HMAPeriod:                  9,
		ATSEMAperiod:               5,
		MaxRiskPerTrade:            0.01,
		StopLossPct:                0.015,
		QuantityPrecision:          2,
		MinQty:                     0.001,
		StepSize:                   0.0001,
		ContainmentSuppressionBars: 5,
	}
}

func mkStrategyBars(rows [][4]float64) []bar.Bar {
	out := make([]bar.Bar, len(rows))
	base := time.Unix(1_700_000_000, 0)
	for i, r := range rows {
		out[i] = bar.Bar{
			Index:     i + 1,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			O:         r[0], H: r[1], L: r[2], C: r[3],
			Volume: 100,
		}
	}
	return out
}

// buildStrategy returns a TrendStartStrategy with no goti suite (nil
// factory), so entries are gated by the price-buffer volatility fallback.
func buildStrategy(t *testing.T) (*TrendStartStrategy, *testutils.MockExecutor) {
	t.Helper()
	exec := testutils.NewMockExecutor(100_000)
	log := testutils.NewMockLogger()
	strat, err := NewTrendStartStrategy("ESZ5", "ESZ5", "1m", buildConfig(), exec, nil, log)
	if err != nil {
		t.Fatalf("NewTrendStartStrategy: %v", err)
	}
	return strat, exec
}

func TestTrendStartStrategy_ExhaustionReversalOpensLong(t *testing.T) {
	strat, exec := buildStrategy(t)

	bars := mkStrategyBars([][4]float64{
		{10, 11, 9, 10},
		{10, 12, 10, 11.5},
		{11.5, 12.5, 11, 12},
		{12, 12.2, 10.5, 10.6},
	})
	for _, b := range bars {
		if err := strat.ProcessBar(b); err != nil {
			t.Fatalf("ProcessBar(%d): %v", b.Index, err)
		}
	}

	orders := exec.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d: %+v", len(orders), orders)
	}
	if orders[0].Comment != "EXHAUSTION_REVERSAL" {
		t.Fatalf("expected order tagged with the firing rule, got %q", orders[0].Comment)
	}
}

// buildStrategyWithSuite wires a real *goti.IndicatorSuite in, mirroring
// buildBreakoutMomentum's suiteFactory pattern: thresholds are left at their
// permissive defaults so only the ATSO crossover gate is exercised.
func buildStrategyWithSuite(t *testing.T) (*TrendStartStrategy, *testutils.MockExecutor) {
	t.Helper()
	cfg := buildConfig()
	exec := testutils.NewMockExecutor(100_000)
	log := testutils.NewMockLogger()

	suiteFactory := func() (*goti.IndicatorSuite, error) {
		ic := goti.DefaultConfig()
		ic.RSIOverbought = cfg.RSIOverbought
		ic.RSIOversold = cfg.RSIOversold
		ic.MFIOverbought = cfg.MFIOverbought
		ic.MFIOversold = cfg.MFIOversold
		ic.VWAOStrongTrend = cfg.VWAOStrongTrend
		ic.ATSEMAperiod = cfg.ATSEMAperiod
		return goti.NewIndicatorSuiteWithConfig(ic)
	}

	strat, err := NewTrendStartStrategy("ESZ5", "ESZ5", "1m", cfg, exec, suiteFactory, log)
	if err != nil {
		t.Fatalf("NewTrendStartStrategy: %v", err)
	}
	return strat, exec
}

// TestTrendStartStrategy_FeedsSuite proves ProcessBar actually feeds every
// bar into the configured goti suite (not just the price buffer): once
// enough bars have passed, the suite's ATSO series is non-empty and the
// volatility gate reads real crossover state instead of a zero-value
// default.
func TestTrendStartStrategy_FeedsSuite(t *testing.T) {
	strat, _ := buildStrategyWithSuite(t)

	bars := mkStrategyBars([][4]float64{
		{10, 11, 9, 10.2},
		{10.2, 11.2, 9.8, 10.8},
		{10.8, 11.8, 10.3, 11.4},
		{11.4, 12.4, 10.9, 12.0},
		{12.0, 13.0, 11.5, 12.6},
		{12.6, 13.6, 12.1, 13.2},
		{13.2, 14.2, 12.7, 13.8},
		{13.8, 14.8, 13.3, 14.4},
		{14.4, 15.4, 13.9, 15.0},
		{15.0, 16.0, 14.5, 15.6},
		{15.6, 16.6, 15.1, 16.2},
		{16.2, 17.2, 15.7, 16.8},
		{16.8, 17.8, 16.3, 17.4},
		{17.4, 18.4, 16.9, 18.0},
		{18.0, 19.0, 17.5, 18.6},
	})
	for _, b := range bars {
		if err := strat.ProcessBar(b); err != nil {
			t.Fatalf("ProcessBar(%d): %v", b.Index, err)
		}
	}

	if strat.Suite == nil {
		t.Fatal("expected a non-nil suite")
	}
	atrVals := strat.Suite.GetATSO().GetATSOValues()
	if len(atrVals) == 0 {
		t.Fatal("expected ATSO values after feeding bars, suite was never fed by ProcessBar")
	}
}

func TestTrendStartStrategy_RejectedBarPropagatesError(t *testing.T) {
	strat, _ := buildStrategy(t)

	bad := bar.Bar{Index: 1, Timestamp: time.Unix(1_700_000_000, 0), O: 10, H: 9, L: 11, C: 10}
	if err := strat.ProcessBar(bad); err == nil {
		t.Fatal("expected malformed bar to be rejected")
	}
}
