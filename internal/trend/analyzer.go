// Package trend classifies short, medium, and long-term price direction
// using SMA-cross and momentum heuristics.
package trend

import (
	"math"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/stats"
)

// horizon couples an SMA period with the price-change threshold (percent)
// that must be cleared before a direction call. Longer horizons use wider
// thresholds so they do not flip on noise.
type horizon struct {
	smaPeriod    int
	thresholdPct float64
}

var (
	shortTerm  = horizon{smaPeriod: 7, thresholdPct: 1}
	mediumTerm = horizon{smaPeriod: 50, thresholdPct: 3}
	longTerm   = horizon{smaPeriod: 200, thresholdPct: 5}
)

// neutralConfidenceCap keeps a neutral call from reporting high confidence.
const neutralConfidenceCap = 50

// trailingShortWindow is the number of chart points backing the short-term
// price change.
const trailingShortWindow = 24

// Analyze classifies the three horizons for one asset.
func Analyze(chart *model.MarketChart, snapshot *model.AssetSnapshot) model.MarketTrend {
	prices := chart.PriceValues()
	current := snapshot.CurrentPrice
	if current == 0 && len(prices) > 0 {
		current = prices[len(prices)-1]
	}

	return model.MarketTrend{
		ShortTerm:  classify(trailingChange(prices, trailingShortWindow), smaCross(prices, current, shortTerm.smaPeriod), shortTerm.thresholdPct),
		MediumTerm: classify(snapshot.Change7d, smaCross(prices, current, mediumTerm.smaPeriod), mediumTerm.thresholdPct),
		LongTerm:   classify(snapshot.Change30d, smaCross(prices, current, longTerm.smaPeriod), longTerm.thresholdPct),
	}
}

// classify turns a price change and an SMA cross into a direction call with
// a confidence figure.
func classify(priceChangePct, cross, thresholdPct float64) model.TrendAnalysis {
	direction := model.TrendNeutral
	switch {
	case priceChangePct > thresholdPct && cross > 0:
		direction = model.TrendBullish
	case priceChangePct < -thresholdPct && cross < 0:
		direction = model.TrendBearish
	}

	confidence := math.Min(95, 30+2*math.Abs(priceChangePct)+20*math.Abs(cross))
	if direction == model.TrendNeutral && confidence > neutralConfidenceCap {
		confidence = neutralConfidenceCap
	}

	return model.TrendAnalysis{
		Direction:   direction,
		Confidence:  confidence,
		PriceChange: priceChangePct,
	}
}

// smaCross is the current price's fractional distance from the k-period SMA.
func smaCross(prices []float64, current float64, period int) float64 {
	sma := stats.SMA(prices, period)
	if sma == 0 {
		return 0
	}
	return (current - sma) / sma
}

// trailingChange is the percent change over the last n chart points.
func trailingChange(prices []float64, n int) float64 {
	if len(prices) < n || n < 1 {
		return 0
	}
	base := prices[len(prices)-n]
	if base == 0 {
		return 0
	}
	return (prices[len(prices)-1] - base) / base * 100
}
