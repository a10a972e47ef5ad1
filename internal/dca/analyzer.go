// Package dca derives dollar-cost-averaging guidance for one asset:
// support/resistance, volume profile, market-cycle phase, an accumulation
// grade, and four price zones over the observed range.
package dca

import (
	"math"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/stats"
)

const (
	// extremaWindow is the half-width of the symmetric window used when
	// scanning for local minima/maxima.
	extremaWindow = 14

	// volumeProfileBuckets partitions the observed price range for the
	// volume profile.
	volumeProfileBuckets = 50
)

// Weights of the recommended accumulation price blend.
const (
	vwapWeight    = 0.40
	supportWeight = 0.35
	volumeWeight  = 0.25
)

// Analyze produces the full DCA analysis for one asset. Total over
// well-formed input; degenerate series degrade per the stats fallbacks.
func Analyze(chart *model.MarketChart, snapshot *model.AssetSnapshot) model.DCAAnalysis {
	prices := chart.PriceValues()
	volumes := chart.VolumeValues()

	current := snapshot.CurrentPrice
	if current == 0 && len(prices) > 0 {
		current = prices[len(prices)-1]
	}

	drawdown := 0.0
	if snapshot.ATH > 0 {
		drawdown = (current - snapshot.ATH) / snapshot.ATH * 100
	}

	vwap := stats.VWAP(prices, volumes)
	support, resistance := supportResistance(prices, current)
	volumeAccum := volumeAccumulationPrice(prices, volumes)

	sma200 := stats.SMA(prices, 200)
	priceVsSMA200 := 0.0
	if sma200 > 0 {
		priceVsSMA200 = (current - sma200) / sma200 * 100
	}
	momentum := momentum30d(prices)

	score := gradeScore(current, drawdown, vwap, support, volumeAccum)

	return model.DCAAnalysis{
		CurrentPrice:            current,
		VWAP:                    vwap,
		Support:                 support,
		Resistance:              resistance,
		ATH:                     snapshot.ATH,
		ATL:                     snapshot.ATL,
		DrawdownFromATH:         drawdown,
		CyclePhase:              cyclePhase(drawdown, priceVsSMA200, momentum),
		CurrentGrade:            gradeForScore(score),
		DCARecommendedPrice:     vwap*vwapWeight + support*supportWeight + volumeAccum*volumeWeight,
		Zones:                   priceZones(prices, vwap),
		VolumeAccumulationPrice: volumeAccum,
		GradeConfidence:         clamp(math.Abs(score-50)*2+30, 20, 95),
	}
}

// supportResistance scans for local extrema with a symmetric ±extremaWindow
// window. Support is the largest local minimum strictly below the current
// price (falling back to the global minimum); resistance is the smallest
// local maximum strictly above it (falling back to the global maximum).
func supportResistance(prices []float64, current float64) (support, resistance float64) {
	if len(prices) == 0 {
		return 0, 0
	}

	globalMin, globalMax := prices[0], prices[0]
	for _, p := range prices {
		if p < globalMin {
			globalMin = p
		}
		if p > globalMax {
			globalMax = p
		}
	}

	support, resistance = globalMin, globalMax

	// Only interior points with a full window on both sides qualify;
	// series edges are not extrema.
	for i := extremaWindow; i < len(prices)-extremaWindow; i++ {
		lo, hi := i-extremaWindow, i+extremaWindow

		isMin, isMax := true, true
		for j := lo; j <= hi; j++ {
			if prices[j] < prices[i] {
				isMin = false
			}
			if prices[j] > prices[i] {
				isMax = false
			}
		}

		if isMin && prices[i] < current && prices[i] > support {
			support = prices[i]
		}
		if isMax && prices[i] > current && prices[i] < resistance {
			resistance = prices[i]
		}
	}
	return support, resistance
}

// volumeAccumulationPrice partitions the observed price range into equal
// buckets, accumulates volume per bucket by the price at each timestamp, and
// returns the midpoint of the heaviest bucket.
func volumeAccumulationPrice(prices, volumes []float64) float64 {
	n := len(prices)
	if len(volumes) < n {
		n = len(volumes)
	}
	if n == 0 {
		return 0
	}

	minP, maxP := prices[0], prices[0]
	for _, p := range prices[:n] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	if maxP == minP {
		return minP
	}

	bucketWidth := (maxP - minP) / volumeProfileBuckets
	buckets := make([]float64, volumeProfileBuckets)
	for i := 0; i < n; i++ {
		idx := int((prices[i] - minP) / bucketWidth)
		if idx >= volumeProfileBuckets {
			idx = volumeProfileBuckets - 1
		}
		buckets[idx] += volumes[i]
	}

	best := 0
	for i, v := range buckets {
		if v > buckets[best] {
			best = i
		}
	}
	return minP + (float64(best)+0.5)*bucketWidth
}

// cyclePhase classifies the market cycle from drawdown depth, position
// relative to SMA200, and 30-day momentum.
func cyclePhase(drawdownPct, priceVsSMA200Pct, momentumPct float64) model.CyclePhase {
	dd := math.Abs(drawdownPct)
	aboveSMA := priceVsSMA200Pct > 0

	switch {
	case dd > 50 && !aboveSMA:
		return model.PhaseAccumulation
	case dd < 20 && aboveSMA && momentumPct > 0:
		return model.PhaseDistribution
	case aboveSMA && momentumPct > 0:
		return model.PhaseMarkup
	case !aboveSMA && momentumPct < 0:
		return model.PhaseMarkdown
	}

	// Tie-breakers when no primary rule fires.
	switch {
	case dd > 35:
		return model.PhaseAccumulation
	case dd < 15:
		return model.PhaseDistribution
	case aboveSMA:
		return model.PhaseMarkup
	default:
		return model.PhaseMarkdown
	}
}

// gradeScore starts at 50 and applies additive adjustments for drawdown
// depth, position versus VWAP, support proximity, and proximity to the
// volume accumulation zone.
func gradeScore(current, drawdownPct, vwap, support, volumeAccum float64) float64 {
	score := 50.0

	// Deeper drawdown means cheaper accumulation, up to +30.
	dd := math.Abs(drawdownPct)
	switch {
	case dd > 70:
		score += 30
	case dd > 50:
		score += 22
	case dd > 30:
		score += 14
	case dd > 15:
		score += 7
	}

	// Below VWAP is favorable, above unfavorable, up to ±15.
	if vwap > 0 {
		vsVWAP := (current - vwap) / vwap * 100
		switch {
		case vsVWAP < -20:
			score += 15
		case vsVWAP < -10:
			score += 10
		case vsVWAP < 0:
			score += 5
		case vsVWAP > 20:
			score -= 15
		case vsVWAP > 10:
			score -= 10
		default:
			score -= 5
		}
	}

	// Close to support is favorable.
	if support > 0 {
		vsSupport := (current - support) / support * 100
		if vsSupport < 5 {
			score += 12
		} else if vsSupport < 15 {
			score += 5
		}
	}

	// Inside or below the heaviest traded zone is favorable.
	if volumeAccum > 0 {
		vsZone := (current - volumeAccum) / volumeAccum * 100
		if vsZone < -5 {
			score += 8
		} else if vsZone > 15 {
			score -= 8
		}
	}

	return score
}

func gradeForScore(score float64) model.DCAGrade {
	switch {
	case score >= 75:
		return model.GradeStrongBuy
	case score >= 55:
		return model.GradeBuy
	case score >= 35:
		return model.GradeHold
	default:
		return model.GradeOvervalued
	}
}

// priceZones splits the observed [min,max] range into the four accumulation
// bands. When VWAP falls outside the range the zones can come out inverted
// or zero-width; that degenerate output is part of the contract and is not
// corrected here.
func priceZones(prices []float64, vwap float64) model.PriceZones {
	if len(prices) == 0 {
		return model.PriceZones{}
	}

	minP, maxP := prices[0], prices[0]
	for _, p := range prices {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	priceRange := maxP - minP

	return model.PriceZones{
		StrongBuy:  model.PriceZone{Low: minP, High: minP + 0.20*priceRange},
		Buy:        model.PriceZone{Low: minP + 0.20*priceRange, High: vwap},
		Hold:       model.PriceZone{Low: vwap, High: vwap + 0.25*priceRange},
		Overvalued: model.PriceZone{Low: vwap + 0.25*priceRange, High: maxP},
	}
}

// momentum30d is the percent change over the trailing 30 chart points.
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

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
