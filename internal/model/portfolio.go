package model

// PortfolioAsset is one aggregator input: a held asset together with its
// market data and its share of the portfolio.
type PortfolioAsset struct {
	Name         string
	Symbol       string
	Weight       float64 // fraction of total portfolio value, 0-1
	HoldingValue float64 // current USD value of the position
	Chart        *MarketChart
	Snapshot     *AssetSnapshot
}

// ValuePoint is one point of the reconstructed portfolio value series.
type ValuePoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// AllocationSlice describes one asset's share of the portfolio.
type AllocationSlice struct {
	Name    string  `json:"name"`
	Symbol  string  `json:"symbol"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// PortfolioRiskSummary is the dashboard-level aggregate result.
type PortfolioRiskSummary struct {
	RiskScore  int       `json:"risk_score"` // 0-100
	RiskLevel  RiskLevel `json:"risk_level"`
	Volatility float64   `json:"volatility"` // weighted, percent
	VaR95      float64   `json:"var_95"`     // weighted, percent
	Sharpe     float64   `json:"sharpe"`
	// MaxDrawdown is the worst single-asset drawdown, a conservative bound
	// rather than a weighted figure.
	MaxDrawdown float64 `json:"max_drawdown"`
	// AvgCorrelation is the mean absolute pairwise Pearson correlation of
	// daily returns across assets (0 when fewer than 2 assets).
	AvgCorrelation float64           `json:"avg_correlation"` // 0-1
	Confidence     float64           `json:"confidence"`      // 0-100
	ValueChart     []ValuePoint      `json:"value_chart"`     // <= 30 points
	Allocation     []AllocationSlice `json:"allocation"`
}
