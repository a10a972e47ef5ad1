// Package risk computes single-asset risk analyses: statistical risk
// metrics, a 0-100 composite score, technical indicators, and a rule-based
// trading signal.
package risk

import (
	"math"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/stats"
)

// Normalization bounds for the composite score. Calibrated for crypto-asset
// ranges; recalibrate here per asset class, the scoring formula stays fixed.
const (
	VolatilityBoundPct = 200.0 // annualized volatility domain [0,200]%
	DrawdownBoundPct   = 100.0 // |max drawdown| domain [0,100]%
	VaRBoundPct        = 20.0  // |VaR95| domain [0,20]%
)

// Composite score weights.
const (
	weightVolatility  = 40.0
	weightDrawdown    = 30.0
	weightCorrelation = 20.0
	weightVaR         = 10.0
)

// tradingDaysPerYear is 365, not 252: crypto markets trade every day.
const tradingDaysPerYear = 365.0

// Analyze produces the full risk analysis for one asset. It is total over
// well-formed input: fewer than 2 price points degrades every derived metric
// to its stats-package fallback rather than failing.
func Analyze(chart *model.MarketChart, snapshot *model.AssetSnapshot) model.RiskAnalysis {
	prices := chart.PriceValues()
	returns := stats.DailyReturns(prices)

	volatility := stats.StdDev(returns) * math.Sqrt(tradingDaysPerYear) * 100
	drawdown := maxDrawdown(prices)
	var95 := (stats.Mean(returns) - 1.65*stats.StdDev(returns)) * 100
	corrRisk := correlationRisk(returns)

	score := CompositeScore(volatility, drawdown, corrRisk, var95)

	currentPrice := snapshot.CurrentPrice
	if currentPrice == 0 && len(prices) > 0 {
		currentPrice = prices[len(prices)-1]
	}

	technicals := model.TechnicalIndicators{
		RSI14:        stats.RSI(prices, 14),
		SMA50:        stats.SMA(prices, 50),
		SMA200:       stats.SMA(prices, 200),
		Momentum30d:  momentum30d(prices),
		CurrentPrice: currentPrice,
	}

	return model.RiskAnalysis{
		Metrics: model.RiskMetrics{
			DailyReturns:         returns,
			AnnualizedVolatility: volatility,
			MaxDrawdown:          drawdown,
			VaR95:                var95,
			CorrelationRisk:      corrRisk,
			PortfolioVolatility:  volatility, // single-asset case
		},
		RiskScore:  score,
		RiskLevel:  model.LevelForScore(score),
		Technicals: technicals,
		Signal:     classifySignal(returns, technicals),
		Confidence: Confidence(volatility),
	}
}

// CompositeScore combines volatility, drawdown, correlation risk, and VaR
// into a 0-100 score. Shared with the portfolio aggregator, which feeds it
// portfolio-level figures.
func CompositeScore(volatilityPct, drawdownPct, correlation, var95Pct float64) int {
	volNorm := stats.Normalize(volatilityPct, 0, VolatilityBoundPct)
	mddNorm := stats.Normalize(math.Abs(drawdownPct), 0, DrawdownBoundPct)
	varNorm := stats.Normalize(math.Abs(var95Pct), 0, VaRBoundPct)

	score := math.Round(volNorm*weightVolatility + mddNorm*weightDrawdown +
		correlation*weightCorrelation + varNorm*weightVaR)
	return int(clamp(score, 0, 100))
}

// Confidence derives signal confidence from volatility alone: the noisier
// the asset, the less the signal is worth.
func Confidence(volatilityPct float64) float64 {
	volNorm := stats.Normalize(volatilityPct, 0, VolatilityBoundPct)
	return clamp(100-volNorm*100, 0, 100)
}

// maxDrawdown returns the most negative peak-to-trough decline in percent
// (<= 0), from a single forward pass tracking the running peak.
func maxDrawdown(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	peak := prices[0]
	worst := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			dd := (p - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100
}

// correlationRisk is a single-asset concentration proxy: the absolute
// Pearson correlation between the first and second halves of the return
// series. It is not a diversification measure.
func correlationRisk(returns []float64) float64 {
	half := len(returns) / 2
	if half < 3 {
		return 0
	}
	return math.Abs(stats.PearsonCorrelation(returns[:half], returns[half:half*2]))
}

// momentum30d is the percent change over the trailing 30 chart points,
// or 0 when the series is shorter than that.
func momentum30d(prices []float64) float64 {
	if len(prices) < 30 {
		return 0
	}
	base := prices[len(prices)-30]
	if base == 0 {
		return 0
	}
	return (prices[len(prices)-1] - base) / base * 100
}

// classifySignal runs the ordered rule cascade; the first match wins.
func classifySignal(returns []float64, t model.TechnicalIndicators) model.Signal {
	switch {
	case t.RSI14 < 35 && t.CurrentPrice < t.SMA50:
		return model.SignalAccumulate
	case t.RSI14 > 70 && volatilityRising(returns):
		return model.SignalReduceRisk
	case t.SMA50 > t.SMA200:
		if t.RSI14 > 65 {
			return model.SignalHold // overbought in an uptrend
		}
		return model.SignalBuy
	case t.SMA50 < t.SMA200 && t.RSI14 > 50:
		return model.SignalHold
	case t.SMA50 < t.SMA200:
		if t.RSI14 < 30 {
			return model.SignalAccumulate // oversold override
		}
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

// volatilityRising reports whether the second half of the return series is
// more volatile than the first.
func volatilityRising(returns []float64) bool {
	half := len(returns) / 2
	if half < 2 {
		return false
	}
	return stats.StdDev(returns[half:]) > stats.StdDev(returns[:half])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
