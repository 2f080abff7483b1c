// Package strategybase provides the dependency bundle and order-management
// helpers shared by every strategy that turns a signal into broker calls.
package strategybase

import (
	"math"

	"github.com/evdnx/goti"
	"github.com/evdnx/gots-trend/config"
	"github.com/evdnx/gots-trend/executor"
	"github.com/evdnx/gots-trend/logger"
	"github.com/evdnx/gots-trend/metrics"
	"github.com/evdnx/gots-trend/risk"
	"github.com/evdnx/gots-trend/types"
)

// Base bundles the common dependencies and helpers shared by every strategy
// that drives an executor from a signal source.
type Base struct {
	Exec   executor.Executor
	Log    logger.Logger
	Cfg    config.StrategyConfig
	Suite  *goti.IndicatorSuite // optional secondary gate, nil if unused
	Symbol string
}

// NewBase validates cfg and, when suiteFactory is non-nil, builds the
// optional indicator suite. Concrete strategies call this from their own
// constructors.
func NewBase(symbol string, cfg config.StrategyConfig,
	exec executor.Executor,
	suiteFactory func() (*goti.IndicatorSuite, error),
	log logger.Logger) (*Base, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var suite *goti.IndicatorSuite
	if suiteFactory != nil {
		s, err := suiteFactory()
		if err != nil {
			return nil, err
		}
		suite = s
	}
	return &Base{
		Exec:   exec,
		Log:    log,
		Cfg:    cfg,
		Suite:  suite,
		Symbol: symbol,
	}, nil
}

// SubmitOrder records metrics and logs around a raw executor submission.
func (b *Base) SubmitOrder(o types.Order, ctx string) error {
	err := b.Exec.Submit(o)
	if err != nil {
		b.Log.Error("order_submit_failed",
			logger.String("symbol", o.Symbol),
			logger.String("side", string(o.Side)),
			logger.Float64("qty", o.Qty),
			logger.Err(err))
		return err
	}
	b.Log.Info("order_submitted",
		logger.String("symbol", o.Symbol),
		logger.String("side", string(o.Side)),
		logger.Float64("qty", o.Qty),
		logger.Float64("price", o.Price),
		logger.String("ctx", ctx))
	metrics.OrdersSubmitted.WithLabelValues(ctx).Inc()
	return nil
}

// CalcQty delegates to the risk package using the stored config.
func (b *Base) CalcQty(price float64) float64 {
	return risk.CalcQty(b.Exec.Equity(), b.Cfg.MaxRiskPerTrade, b.Cfg.StopLossPct, price, b.Cfg)
}

// TrailingStopLevel returns the price level at which a trailing stop would fire.
func (b *Base) TrailingStopLevel(entryAvg, side float64) float64 {
	if side > 0 { // long
		return entryAvg * (1 + b.Cfg.TrailingPct)
	}
	return entryAvg * (1 - b.Cfg.TrailingPct) // short
}

// ApplyTrailingStop checks the current price against the trailing level and
// closes the position if it has been breached.
func (b *Base) ApplyTrailingStop(currentPrice float64) {
	if b.Cfg.TrailingPct <= 0 {
		return
	}
	qty, avg := b.Exec.Position(b.Symbol)
	if qty == 0 {
		return
	}
	level := b.TrailingStopLevel(avg, math.Copysign(1, qty))
	if (qty > 0 && currentPrice >= level) || (qty < 0 && currentPrice <= level) {
		b.ClosePosition(currentPrice, "trailing_stop")
	}
}

// ClosePosition flattens the current position at the supplied price.
func (b *Base) ClosePosition(price float64, ctx string) {
	qty, _ := b.Exec.Position(b.Symbol)
	if qty == 0 {
		return
	}
	side := types.Sell
	if qty < 0 {
		side = types.Buy
	}
	o := types.Order{
		Symbol:  b.Symbol,
		Side:    side,
		Qty:     math.Abs(qty),
		Price:   price,
		Comment: ctx,
	}
	_ = b.SubmitOrder(o, ctx)
}

// FlipPosition closes any open position and, if the risk-sized quantity
// from CalcQty is positive, opens a new one in the requested direction at
// price.
func (b *Base) FlipPosition(price float64, targetSide types.Side, ctx string) error {
	qty, _ := b.Exec.Position(b.Symbol)
	if qty != 0 {
		b.ClosePosition(price, ctx)
	}
	size := b.CalcQty(price)
	if size <= 0 {
		return nil
	}
	o := types.Order{
		Symbol:  b.Symbol,
		Side:    targetSide,
		Qty:     size,
		Price:   price,
		Comment: ctx,
	}
	return b.SubmitOrder(o, ctx)
}
