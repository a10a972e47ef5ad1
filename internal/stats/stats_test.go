package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if !almostEqual(returns[0], 0.10, 1e-9) {
		t.Errorf("expected first return 0.10, got %f", returns[0])
	}
	if !almostEqual(returns[1], -0.10, 1e-9) {
		t.Errorf("expected second return -0.10, got %f", returns[1])
	}
}

func TestDailyReturns_SkipsZeroDenominator(t *testing.T) {
	returns := DailyReturns([]float64{100, 0, 50})
	// 100->0 gives -1.0, 0->50 is skipped
	if len(returns) != 1 {
		t.Fatalf("expected 1 return, got %d", len(returns))
	}
	if returns[0] != -1.0 {
		t.Errorf("expected -1.0, got %f", returns[0])
	}
}

func TestDailyReturns_TooShort(t *testing.T) {
	if r := DailyReturns([]float64{100}); r != nil {
		t.Errorf("expected nil for single point, got %v", r)
	}
	if r := DailyReturns(nil); r != nil {
		t.Errorf("expected nil for empty input, got %v", r)
	}
}

func TestStdDev(t *testing.T) {
	// Sample stddev of {2,4,4,4,5,5,7,9} is sqrt(32/7)
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestStdDev_Degenerate(t *testing.T) {
	if StdDev(nil) != 0 {
		t.Error("expected 0 for empty input")
	}
	if StdDev([]float64{42}) != 0 {
		t.Error("expected 0 for single value")
	}
	if StdDev([]float64{5, 5, 5}) != 0 {
		t.Error("expected 0 for constant series")
	}
}

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6}
	if got := SMA(prices, 3); !almostEqual(got, 5, 1e-9) {
		t.Errorf("SMA(3) expected 5, got %f", got)
	}
	if got := SMA(prices, 6); !almostEqual(got, 3.5, 1e-9) {
		t.Errorf("SMA(6) expected 3.5, got %f", got)
	}
}

func TestSMA_FallsBackToLastPrice(t *testing.T) {
	// Fewer points than the period: last price, not a partial average.
	if got := SMA([]float64{10, 20}, 50); got != 20 {
		t.Errorf("expected last price 20, got %f", got)
	}
	if got := SMA([]float64{7}, 50); got != 7 {
		t.Errorf("expected sole element 7, got %f", got)
	}
	if got := SMA(nil, 50); got != 0 {
		t.Errorf("expected 0 for empty series, got %f", got)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	if got := RSI([]float64{1, 2, 3, 4, 5}, 14); got != 50 {
		t.Errorf("expected neutral 50 for 5-point series, got %f", got)
	}
}

func TestRSI_AllGains(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	if got := RSI(prices, 14); got != 100 {
		t.Errorf("expected 100 when average loss is zero, got %f", got)
	}
}

func TestRSI_FlatSeries(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100
	}
	// No gains and no losses is neutral, not overbought.
	if got := RSI(prices, 14); got != 50 {
		t.Errorf("expected 50 for flat series, got %f", got)
	}
}

func TestRSI_Balanced(t *testing.T) {
	// Alternating equal gains and losses should sit near 50.
	prices := make([]float64, 30)
	for i := range prices {
		if i%2 == 0 {
			prices[i] = 100
		} else {
			prices[i] = 101
		}
	}
	got := RSI(prices, 14)
	if got < 45 || got > 55 {
		t.Errorf("expected RSI near 50 for balanced series, got %f", got)
	}
}

func TestVWAP(t *testing.T) {
	prices := []float64{10, 20, 30}
	volumes := []float64{1, 1, 2}
	want := (10 + 20 + 60) / 4.0
	if got := VWAP(prices, volumes); !almostEqual(got, want, 1e-9) {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestVWAP_ZeroVolume(t *testing.T) {
	if got := VWAP([]float64{10, 20, 30}, []float64{0, 0, 0}); got != 30 {
		t.Errorf("expected last price 30 for zero volume, got %f", got)
	}
}

func TestVWAP_LengthMismatch(t *testing.T) {
	// Overlapping prefix only: third price ignored.
	prices := []float64{10, 20, 30}
	volumes := []float64{1, 1}
	if got := VWAP(prices, volumes); !almostEqual(got, 15, 1e-9) {
		t.Errorf("expected 15 over 2-point prefix, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{50, 0, 100, 0.5},
		{0, 0, 100, 0},
		{100, 0, 100, 1},
		{-10, 0, 100, 0},  // clamped
		{150, 0, 100, 1},  // clamped
		{7, 7, 7, 0.5},    // lo == hi
	}
	for _, tt := range tests {
		if got := Normalize(tt.v, tt.lo, tt.hi); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("Normalize(%f,%f,%f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestPearsonCorrelation_Perfect(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	if got := PearsonCorrelation(a, b); !almostEqual(got, 1, 1e-9) {
		t.Errorf("expected 1 for perfectly correlated series, got %f", got)
	}
}

func TestPearsonCorrelation_AntiCorrelated(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{-1, -2, -3, -4, -5}
	if got := PearsonCorrelation(a, b); !almostEqual(got, -1, 1e-9) {
		t.Errorf("expected -1 for anti-correlated series, got %f", got)
	}
}

func TestPearsonCorrelation_Symmetry(t *testing.T) {
	a := []float64{1.2, -0.4, 3.3, 0.9, -2.1, 0.5}
	b := []float64{0.7, 1.1, -0.2, 2.4, 0.3, -1.8}
	if PearsonCorrelation(a, b) != PearsonCorrelation(b, a) {
		t.Error("correlation must be symmetric")
	}
}

func TestPearsonCorrelation_Degenerate(t *testing.T) {
	if got := PearsonCorrelation([]float64{1, 2}, []float64{3, 4}); got != 0 {
		t.Errorf("expected 0 for fewer than 3 points, got %f", got)
	}
	if got := PearsonCorrelation([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4}); got != 0 {
		t.Errorf("expected 0 for zero-variance side, got %f", got)
	}
}
