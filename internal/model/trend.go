package model

// TrendDirection classifies price direction over one horizon.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// TrendAnalysis is the classification for a single horizon.
type TrendAnalysis struct {
	Direction   TrendDirection `json:"direction"`
	Confidence  float64        `json:"confidence"`   // 0-100
	PriceChange float64        `json:"price_change"` // percent
}

// MarketTrend bundles the three horizon classifications.
type MarketTrend struct {
	ShortTerm  TrendAnalysis `json:"short_term"`
	MediumTerm TrendAnalysis `json:"medium_term"`
	LongTerm   TrendAnalysis `json:"long_term"`
}
