package model

// RiskLevel buckets a 0-100 composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"      // score <= 30
	RiskModerate RiskLevel = "moderate" // score <= 60
	RiskHigh     RiskLevel = "high"     // score <= 80
	RiskExtreme  RiskLevel = "extreme"  // score > 80
)

// LevelForScore maps a composite risk score to its level.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= 30:
		return RiskLow
	case score <= 60:
		return RiskModerate
	case score <= 80:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// Signal is the rule-based trading recommendation for a single asset.
type Signal string

const (
	SignalBuy        Signal = "buy"
	SignalHold       Signal = "hold"
	SignalSell       Signal = "sell"
	SignalAccumulate Signal = "accumulate"
	SignalReduceRisk Signal = "reduceRisk"
)

// RiskMetrics holds the derived statistical measures for one asset.
type RiskMetrics struct {
	DailyReturns         []float64 `json:"daily_returns"`
	AnnualizedVolatility float64   `json:"annualized_volatility"` // percent, >= 0
	MaxDrawdown          float64   `json:"max_drawdown"`          // percent, <= 0
	VaR95                float64   `json:"var_95"`                // percent, expected <= 0
	// CorrelationRisk is a single-asset autocorrelation proxy: the absolute
	// Pearson correlation between the first and second halves of the return
	// series. It is NOT cross-asset correlation; see
	// PortfolioRiskSummary.AvgCorrelation for that.
	CorrelationRisk     float64 `json:"correlation_risk"` // 0-1
	PortfolioVolatility float64 `json:"portfolio_volatility"`
}

// TechnicalIndicators are the chart-derived technicals backing the signal.
type TechnicalIndicators struct {
	RSI14        float64 `json:"rsi_14"`
	SMA50        float64 `json:"sma_50"`
	SMA200       float64 `json:"sma_200"`
	Momentum30d  float64 `json:"momentum_30d"` // percent change over last 30 points
	CurrentPrice float64 `json:"current_price"`
}

// RiskAnalysis is the full single-asset result.
type RiskAnalysis struct {
	Metrics    RiskMetrics         `json:"metrics"`
	RiskScore  int                 `json:"risk_score"` // 0-100
	RiskLevel  RiskLevel           `json:"risk_level"`
	Technicals TechnicalIndicators `json:"technicals"`
	Signal     Signal              `json:"signal"`
	Confidence float64             `json:"confidence"` // 0-100
}
