// Package risk sizes orders from account equity and a strategy's risk
// parameters.
package risk

import (
	"math"

	"github.com/evdnx/gots-trend/config"
)

// CalcQty returns the position size that risks at most maxRisk fraction of
// equity given a stop-loss distance of stopLossPct around price, rounded
// down to the exchange's StepSize and then to QuantityPrecision decimal
// places. Returns 0 if the sized quantity falls below cfg.MinQty.
func CalcQty(equity, maxRisk, stopLossPct, price float64, cfg config.StrategyConfig) float64 {
	// Dollar risk per trade
	riskAmt := equity * maxRisk
	// Stop‑loss distance in dollars
	slDist := price * stopLossPct
	if slDist <= 0 {
		return 0
	}
	qty := riskAmt / slDist

	if cfg.StepSize > 0 {
		qty = math.Floor(qty/cfg.StepSize) * cfg.StepSize
	}
	mult := math.Pow(10, float64(cfg.QuantityPrecision))
	qty = math.Round(qty*mult) / mult

	if qty < 0 || qty < cfg.MinQty {
		return 0
	}
	return qty
}
