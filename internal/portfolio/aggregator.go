// Package portfolio aggregates per-asset risk analyses into a single
// dashboard-level summary: weighted risk metrics, cross-asset correlation,
// Sharpe ratio, a reconstructed historical value series, and allocation.
package portfolio

import (
	"math"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/risk"
	"CoinSentinel/internal/stats"
)

const (
	// riskFreeRate is the annual risk-free rate used by the Sharpe ratio.
	riskFreeRate = 0.045

	// volatilityFloor keeps the Sharpe denominator away from zero.
	volatilityFloor = 0.001

	// valueChartPoints caps the reconstructed value series length.
	valueChartPoints = 30
)

// palette is assigned round-robin to allocation slices.
var palette = []string{
	"#F7931A", "#627EEA", "#26A17B", "#E84142", "#8247E5",
	"#F3BA2F", "#00AEEF", "#C2A633", "#345D9D", "#2775CA",
}

// Analyze aggregates the supplied assets into a portfolio risk summary.
// Every asset must carry a non-nil chart and snapshot. An empty input
// yields an all-zero summary with an empty chart and allocation, never
// an error.
func Analyze(assets []model.PortfolioAsset) model.PortfolioRiskSummary {
	if len(assets) == 0 {
		return model.PortfolioRiskSummary{
			RiskLevel:  model.RiskLow,
			ValueChart: []model.ValuePoint{},
			Allocation: []model.AllocationSlice{},
		}
	}

	analyses := make([]model.RiskAnalysis, len(assets))
	returns := make([][]float64, len(assets))
	for i, a := range assets {
		analyses[i] = risk.Analyze(a.Chart, a.Snapshot)
		returns[i] = analyses[i].Metrics.DailyReturns
	}

	var weightedVol, weightedVaR, weightedMeanReturn float64
	worstDrawdown := 0.0
	for i, a := range assets {
		weightedVol += a.Weight * analyses[i].Metrics.AnnualizedVolatility
		weightedVaR += a.Weight * analyses[i].Metrics.VaR95
		weightedMeanReturn += a.Weight * stats.Mean(returns[i])
		if analyses[i].Metrics.MaxDrawdown < worstDrawdown {
			worstDrawdown = analyses[i].Metrics.MaxDrawdown
		}
	}

	avgCorrelation := meanAbsPairwiseCorrelation(returns)
	sharpe := (weightedMeanReturn*365 - riskFreeRate) / math.Max(weightedVol/100, volatilityFloor)
	score := risk.CompositeScore(weightedVol, worstDrawdown, avgCorrelation, weightedVaR)

	return model.PortfolioRiskSummary{
		RiskScore:      score,
		RiskLevel:      model.LevelForScore(score),
		Volatility:     weightedVol,
		VaR95:          weightedVaR,
		Sharpe:         sharpe,
		MaxDrawdown:    worstDrawdown,
		AvgCorrelation: avgCorrelation,
		Confidence:     risk.Confidence(weightedVol),
		ValueChart:     reconstructValueChart(assets),
		Allocation:     buildAllocation(assets),
	}
}

// meanAbsPairwiseCorrelation averages |pearson| over all unordered asset
// pairs. Returns 0 with fewer than 2 assets. Absolute values are used:
// perfectly anti-correlated assets still register as high correlation risk.
func meanAbsPairwiseCorrelation(returns [][]float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	var sum float64
	var pairs int
	for i := 0; i < len(returns); i++ {
		for j := i + 1; j < len(returns); j++ {
			sum += math.Abs(stats.PearsonCorrelation(returns[i], returns[j]))
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// reconstructValueChart rescales each holding's value backward in time by
// its own price ratio (constant quantity assumed) and sums across assets.
// Timestamps come from the first asset's series; all series are assumed to
// share a timestamp grid.
func reconstructValueChart(assets []model.PortfolioAsset) []model.ValuePoint {
	points := valueChartPoints
	for _, a := range assets {
		if len(a.Chart.Prices) < points {
			points = len(a.Chart.Prices)
		}
	}
	if points == 0 {
		return []model.ValuePoint{}
	}

	first := assets[0].Chart.Prices
	chart := make([]model.ValuePoint, 0, points)
	for offset := points; offset >= 1; offset-- {
		var total float64
		for _, a := range assets {
			prices := a.Chart.Prices
			hist := prices[len(prices)-offset].Price
			current := a.Snapshot.CurrentPrice
			if current == 0 {
				current = prices[len(prices)-1].Price
			}
			if current == 0 {
				continue
			}
			total += a.HoldingValue * (hist / current)
		}
		chart = append(chart, model.ValuePoint{
			Timestamp: first[len(first)-offset].Timestamp,
			Value:     total,
		})
	}
	return chart
}

// buildAllocation computes per-asset value shares with round-robin colors.
func buildAllocation(assets []model.PortfolioAsset) []model.AllocationSlice {
	var total float64
	for _, a := range assets {
		total += a.HoldingValue
	}

	slices := make([]model.AllocationSlice, len(assets))
	for i, a := range assets {
		pct := 0.0
		if total > 0 {
			pct = a.HoldingValue / total * 100
		}
		slices[i] = model.AllocationSlice{
			Name:    a.Name,
			Symbol:  a.Symbol,
			Value:   a.HoldingValue,
			Percent: pct,
			Color:   palette[i%len(palette)],
		}
	}
	return slices
}
