package recorder

import "CoinSentinel/internal/model"

// AssetRiskSnapshot holds one asset's analysis results at a point in time.
type AssetRiskSnapshot struct {
	AssetID string
	Symbol  string
	Risk    *model.RiskAnalysis
	Trend   *model.MarketTrend
	DCA     *model.DCAAnalysis
}

// PortfolioSnapshot holds one portfolio-level analysis run.
type PortfolioSnapshot struct {
	Summary    *model.PortfolioRiskSummary
	TotalValue float64
	AssetCount int
}

// Recorder persists analysis history for later review.
type Recorder interface {
	RecordAssetRisk(snap *AssetRiskSnapshot) error
	RecordPortfolio(snap *PortfolioSnapshot) error
	Close() error
}
