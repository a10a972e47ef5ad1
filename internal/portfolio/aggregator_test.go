package portfolio

import (
	"math"
	"testing"

	"CoinSentinel/internal/model"
)

func chartFromPrices(prices []float64) *model.MarketChart {
	chart := &model.MarketChart{}
	for i, p := range prices {
		ts := int64(i) * 86400000
		chart.Prices = append(chart.Prices, model.PricePoint{Timestamp: ts, Price: p})
		chart.Volumes = append(chart.Volumes, model.VolumePoint{Timestamp: ts, Volume: 1000})
	}
	return chart
}

func asset(name string, weight, value float64, prices []float64) model.PortfolioAsset {
	return model.PortfolioAsset{
		Name:         name,
		Symbol:       name,
		Weight:       weight,
		HoldingValue: value,
		Chart:        chartFromPrices(prices),
		Snapshot:     &model.AssetSnapshot{CurrentPrice: prices[len(prices)-1]},
	}
}

func TestAnalyze_EmptyPortfolio(t *testing.T) {
	s := Analyze(nil)

	if s.RiskScore != 0 {
		t.Errorf("expected zero risk score, got %d", s.RiskScore)
	}
	if s.RiskLevel != model.RiskLow {
		t.Errorf("expected low risk level, got %s", s.RiskLevel)
	}
	if len(s.ValueChart) != 0 {
		t.Errorf("expected empty value chart, got %d points", len(s.ValueChart))
	}
	if len(s.Allocation) != 0 {
		t.Errorf("expected empty allocation, got %d slices", len(s.Allocation))
	}
	if s.Sharpe != 0 || s.Volatility != 0 || s.VaR95 != 0 {
		t.Error("expected all-zero metrics for empty portfolio")
	}
}

func TestAnalyze_AntiCorrelatedAssets(t *testing.T) {
	// b's daily returns are the exact negation of a's. Absolute correlation
	// is used, so -1 correlation still registers as high correlation risk.
	aPrices := []float64{100}
	bPrices := []float64{100}
	deltas := []float64{0.02, -0.01, 0.03, -0.02, 0.01, 0.02, -0.03, 0.01, -0.01, 0.02}
	for _, d := range deltas {
		aPrices = append(aPrices, aPrices[len(aPrices)-1]*(1+d))
		bPrices = append(bPrices, bPrices[len(bPrices)-1]*(1-d))
	}

	s := Analyze([]model.PortfolioAsset{
		asset("A", 0.5, 5000, aPrices),
		asset("B", 0.5, 5000, bPrices),
	})

	if s.AvgCorrelation < 0.95 {
		t.Errorf("expected avg |correlation| near 1, got %f", s.AvgCorrelation)
	}
}

func TestAnalyze_WeightedMetrics(t *testing.T) {
	calm := []float64{100, 100.5, 100, 100.5, 100, 100.5, 100, 100.5, 100, 100.5}
	wild := []float64{100, 130, 80, 140, 70, 150, 60, 160, 50, 170}

	full := Analyze([]model.PortfolioAsset{asset("WILD", 1.0, 10000, wild)})
	mixed := Analyze([]model.PortfolioAsset{
		asset("CALM", 0.9, 9000, calm),
		asset("WILD", 0.1, 1000, wild),
	})

	if mixed.Volatility >= full.Volatility {
		t.Error("down-weighting the volatile asset must reduce portfolio volatility")
	}
	// Worst single-asset drawdown is inherited, not weighted.
	if !almost(mixed.MaxDrawdown, full.MaxDrawdown) {
		t.Errorf("expected worst-asset drawdown %f, got %f", full.MaxDrawdown, mixed.MaxDrawdown)
	}
}

func TestAnalyze_ValueChartReconstruction(t *testing.T) {
	// One asset, price halved from 200 to 100, holding now worth 1000:
	// the first reconstructed point must be worth 2000.
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 200 - 100*float64(i)/29
	}
	a := asset("X", 1.0, 1000, prices)

	s := Analyze([]model.PortfolioAsset{a})

	if len(s.ValueChart) != 30 {
		t.Fatalf("expected 30 chart points, got %d", len(s.ValueChart))
	}
	if !almost(s.ValueChart[0].Value, 2000) {
		t.Errorf("expected first point 2000, got %f", s.ValueChart[0].Value)
	}
	if !almost(s.ValueChart[29].Value, 1000) {
		t.Errorf("expected last point 1000, got %f", s.ValueChart[29].Value)
	}
	if s.ValueChart[0].Timestamp >= s.ValueChart[29].Timestamp {
		t.Error("value chart must be in ascending time order")
	}
}

func TestAnalyze_ValueChartCapsAtShortestSeries(t *testing.T) {
	long := make([]float64, 60)
	short := make([]float64, 10)
	for i := range long {
		long[i] = 100 + float64(i)
	}
	for i := range short {
		short[i] = 50 + float64(i)
	}

	s := Analyze([]model.PortfolioAsset{
		asset("LONG", 0.5, 1000, long),
		asset("SHORT", 0.5, 1000, short),
	})

	if len(s.ValueChart) != 10 {
		t.Errorf("expected chart capped at shortest series (10), got %d", len(s.ValueChart))
	}
}

func TestAnalyze_Allocation(t *testing.T) {
	s := Analyze([]model.PortfolioAsset{
		asset("BTC", 0.75, 7500, []float64{100, 101, 102}),
		asset("ETH", 0.25, 2500, []float64{50, 51, 52}),
	})

	if len(s.Allocation) != 2 {
		t.Fatalf("expected 2 allocation slices, got %d", len(s.Allocation))
	}
	if !almost(s.Allocation[0].Percent, 75) {
		t.Errorf("expected 75%%, got %f", s.Allocation[0].Percent)
	}
	if !almost(s.Allocation[1].Percent, 25) {
		t.Errorf("expected 25%%, got %f", s.Allocation[1].Percent)
	}
	if s.Allocation[0].Color == "" || s.Allocation[0].Color == s.Allocation[1].Color {
		t.Error("expected distinct palette colors")
	}
}

func TestAnalyze_ScoreBoundsAndLevel(t *testing.T) {
	wild := []float64{100, 300, 50, 400, 20, 500, 10, 600}
	s := Analyze([]model.PortfolioAsset{asset("W", 1.0, 1000, wild)})

	if s.RiskScore < 0 || s.RiskScore > 100 {
		t.Errorf("score out of bounds: %d", s.RiskScore)
	}
	if s.RiskLevel != model.LevelForScore(s.RiskScore) {
		t.Errorf("level %s inconsistent with score %d", s.RiskLevel, s.RiskScore)
	}
	if s.Confidence < 0 || s.Confidence > 100 {
		t.Errorf("confidence out of bounds: %f", s.Confidence)
	}
}

func TestMeanAbsPairwiseCorrelation_SingleAsset(t *testing.T) {
	if got := meanAbsPairwiseCorrelation([][]float64{{0.1, 0.2, 0.3}}); got != 0 {
		t.Errorf("expected 0 for a single asset, got %f", got)
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
