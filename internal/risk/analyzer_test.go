package risk

import (
	"math"
	"reflect"
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

func flatChart(price float64, n int) *model.MarketChart {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}
	return chartFromPrices(prices)
}

func TestAnalyze_FlatSeries(t *testing.T) {
	chart := flatChart(100, 30)
	snap := &model.AssetSnapshot{CurrentPrice: 100, ATH: 100, ATL: 100}

	a := Analyze(chart, snap)

	if a.Metrics.AnnualizedVolatility != 0 {
		t.Errorf("expected zero volatility, got %f", a.Metrics.AnnualizedVolatility)
	}
	if a.Metrics.MaxDrawdown != 0 {
		t.Errorf("expected zero drawdown, got %f", a.Metrics.MaxDrawdown)
	}
	if a.Metrics.VaR95 != 0 {
		t.Errorf("expected zero VaR, got %f", a.Metrics.VaR95)
	}
	if a.RiskScore != 0 {
		t.Errorf("expected zero risk score, got %d", a.RiskScore)
	}
	if a.RiskLevel != model.RiskLow {
		t.Errorf("expected low risk, got %s", a.RiskLevel)
	}
	if a.Technicals.RSI14 != 50 {
		t.Errorf("expected neutral RSI 50, got %f", a.Technicals.RSI14)
	}
}

func TestAnalyze_SinglePointDoesNotPanic(t *testing.T) {
	chart := chartFromPrices([]float64{100})
	snap := &model.AssetSnapshot{CurrentPrice: 100}

	a := Analyze(chart, snap)

	if a.Technicals.SMA50 != 100 {
		t.Errorf("SMA50 on 1-element series must return that element, got %f", a.Technicals.SMA50)
	}
	if a.Metrics.AnnualizedVolatility != 0 || a.Metrics.MaxDrawdown != 0 {
		t.Error("expected all metrics to degrade to zero")
	}
}

func TestAnalyze_EmptyChart(t *testing.T) {
	a := Analyze(&model.MarketChart{}, &model.AssetSnapshot{})
	if a.RiskScore != 0 || a.RiskLevel != model.RiskLow {
		t.Errorf("expected zero score / low level, got %d / %s", a.RiskScore, a.RiskLevel)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	chart := chartFromPrices(prices)
	snap := &model.AssetSnapshot{CurrentPrice: prices[len(prices)-1]}

	first := Analyze(chart, snap)
	second := Analyze(chart, snap)
	if !reflect.DeepEqual(first, second) {
		t.Error("analysis must be deterministic for fixed input")
	}
}

func TestAnalyze_Bounds(t *testing.T) {
	// Wild series to push metrics toward the bounds.
	prices := []float64{100, 300, 50, 400, 20, 500, 10, 600, 5, 700, 2, 800}
	a := Analyze(chartFromPrices(prices), &model.AssetSnapshot{CurrentPrice: 800})

	if a.RiskScore < 0 || a.RiskScore > 100 {
		t.Errorf("risk score out of bounds: %d", a.RiskScore)
	}
	if a.Confidence < 0 || a.Confidence > 100 {
		t.Errorf("confidence out of bounds: %f", a.Confidence)
	}
	if a.RiskLevel != model.LevelForScore(a.RiskScore) {
		t.Errorf("level %s inconsistent with score %d", a.RiskLevel, a.RiskScore)
	}
	if a.Metrics.MaxDrawdown > 0 {
		t.Errorf("drawdown must be <= 0, got %f", a.Metrics.MaxDrawdown)
	}
}

func TestAnalyze_VolatilityMonotonic(t *testing.T) {
	calm := []float64{100, 101, 100, 101, 100, 101, 100, 101, 100, 101}
	rough := []float64{100, 120, 90, 130, 80, 140, 70, 150, 60, 160}

	calmRes := Analyze(chartFromPrices(calm), &model.AssetSnapshot{CurrentPrice: 101})
	roughRes := Analyze(chartFromPrices(rough), &model.AssetSnapshot{CurrentPrice: 160})

	if roughRes.Metrics.AnnualizedVolatility <= calmRes.Metrics.AnnualizedVolatility {
		t.Error("higher return stddev must mean higher annualized volatility")
	}
	if roughRes.RiskScore < calmRes.RiskScore {
		t.Error("higher volatility cannot decrease the risk score")
	}
}

func TestMaxDrawdown(t *testing.T) {
	// Peak 200, trough 100 -> -50%.
	got := maxDrawdown([]float64{100, 200, 150, 100, 180})
	if !almost(got, -50) {
		t.Errorf("expected -50, got %f", got)
	}
}

func TestMaxDrawdown_MonotonicRise(t *testing.T) {
	if got := maxDrawdown([]float64{1, 2, 3, 4}); got != 0 {
		t.Errorf("expected 0 for rising series, got %f", got)
	}
}

func TestClassifySignal_Cascade(t *testing.T) {
	tests := []struct {
		name string
		tech model.TechnicalIndicators
		want model.Signal
	}{
		{
			name: "oversold below SMA50 accumulates",
			tech: model.TechnicalIndicators{RSI14: 30, CurrentPrice: 90, SMA50: 100, SMA200: 110},
			want: model.SignalAccumulate,
		},
		{
			name: "golden cross buys",
			tech: model.TechnicalIndicators{RSI14: 55, CurrentPrice: 120, SMA50: 110, SMA200: 100},
			want: model.SignalBuy,
		},
		{
			name: "golden cross overbought holds",
			tech: model.TechnicalIndicators{RSI14: 68, CurrentPrice: 120, SMA50: 110, SMA200: 100},
			want: model.SignalHold,
		},
		{
			name: "death cross strong RSI holds",
			tech: model.TechnicalIndicators{RSI14: 55, CurrentPrice: 100, SMA50: 95, SMA200: 105},
			want: model.SignalHold,
		},
		{
			name: "death cross weak RSI sells",
			tech: model.TechnicalIndicators{RSI14: 40, CurrentPrice: 100, SMA50: 95, SMA200: 105},
			want: model.SignalSell,
		},
		{
			name: "death cross deeply oversold accumulates",
			tech: model.TechnicalIndicators{RSI14: 25, CurrentPrice: 100, SMA50: 95, SMA200: 105},
			want: model.SignalAccumulate,
		},
		{
			name: "equal SMAs default to hold",
			tech: model.TechnicalIndicators{RSI14: 45, CurrentPrice: 100, SMA50: 100, SMA200: 100},
			want: model.SignalHold,
		},
	}
	for _, tt := range tests {
		if got := classifySignal(nil, tt.tech); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestClassifySignal_ReduceRisk(t *testing.T) {
	// RSI > 70 with volatility rising in the second half.
	returns := []float64{0.001, -0.001, 0.001, -0.001, 0.05, -0.06, 0.07, -0.08}
	tech := model.TechnicalIndicators{RSI14: 75, CurrentPrice: 200, SMA50: 150, SMA200: 100}
	if got := classifySignal(returns, tech); got != model.SignalReduceRisk {
		t.Errorf("expected reduceRisk, got %s", got)
	}
}

func TestCompositeScore_Weights(t *testing.T) {
	// Everything at its bound saturates the score.
	if got := CompositeScore(VolatilityBoundPct, -DrawdownBoundPct, 1, -VaRBoundPct); got != 100 {
		t.Errorf("expected 100 at all bounds, got %d", got)
	}
	if got := CompositeScore(0, 0, 0, 0); got != 0 {
		t.Errorf("expected 0 at zero input, got %d", got)
	}
	// Half-volatility alone: 0.25 * 40 = 10.
	if got := CompositeScore(50, 0, 0, 0); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestConfidence_Bounds(t *testing.T) {
	if got := Confidence(0); got != 100 {
		t.Errorf("zero volatility should give full confidence, got %f", got)
	}
	if got := Confidence(500); got != 0 {
		t.Errorf("volatility past the bound should give zero confidence, got %f", got)
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
