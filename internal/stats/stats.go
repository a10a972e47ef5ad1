// Package stats provides the numeric primitives shared by all analyzers.
//
// Every function is total: degenerate input (empty or single-point series,
// zero variance, zero volume) produces a documented fallback value instead
// of an error or NaN. A risk dashboard must always render something, so the
// fallbacks are part of the contract, not an accident.
package stats

import "math"

// DailyReturns computes fractional period-over-period returns.
// Pairs with a zero previous price are skipped. The result has at most
// len(prices)-1 elements.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (n-1 denominator).
// Returns 0 for fewer than 2 values.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	sum := 0.0
	for _, v := range xs {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// SMA returns the mean of the last `period` prices. When fewer points
// exist it returns the last available price, not a partial average.
func SMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if period <= 0 || len(prices) < period {
		return prices[len(prices)-1]
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// RSI computes the Wilder-smoothed Relative Strength Index: initial average
// gain/loss over the first `period` deltas, then exponential smoothing over
// the remainder. Returns 50 (neutral) when fewer than period+1 points exist
// or when the series has no moves at all, and 100 when the average loss is
// exactly 0 but gains exist.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50 // no directional moves at all
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// VWAP returns the volume-weighted average price over the overlapping prefix
// of the two series. Falls back to the last price when total volume is 0.
func VWAP(prices, volumes []float64) float64 {
	n := len(prices)
	if len(volumes) < n {
		n = len(volumes)
	}
	if n == 0 {
		if len(prices) > 0 {
			return prices[len(prices)-1]
		}
		return 0
	}

	var pv, vol float64
	for i := 0; i < n; i++ {
		pv += prices[i] * volumes[i]
		vol += volumes[i]
	}
	if vol == 0 {
		return prices[len(prices)-1]
	}
	return pv / vol
}

// Normalize maps v into [0,1] relative to [lo,hi], clamping out-of-range
// values. Returns 0.5 when lo == hi.
func Normalize(v, lo, hi float64) float64 {
	if lo == hi {
		return 0.5
	}
	n := (v - lo) / (hi - lo)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// PearsonCorrelation computes the Pearson coefficient over the overlapping
// prefix of a and b. Returns 0 when either side has fewer than 3 points or
// zero variance.
func PearsonCorrelation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 3 {
		return 0
	}

	var sumA, sumB, sumAB, sumA2, sumB2 float64
	for i := 0; i < n; i++ {
		sumA += a[i]
		sumB += b[i]
		sumAB += a[i] * b[i]
		sumA2 += a[i] * a[i]
		sumB2 += b[i] * b[i]
	}

	fn := float64(n)
	numerator := fn*sumAB - sumA*sumB
	denominator := math.Sqrt((fn*sumA2 - sumA*sumA) * (fn*sumB2 - sumB*sumB))
	if denominator == 0 {
		return 0
	}

	r := numerator / denominator
	if math.IsNaN(r) {
		return 0
	}
	return r
}
