package model

// PricePoint is a single (timestamp, price) observation.
// Timestamp is in milliseconds since the Unix epoch.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// VolumePoint is a single (timestamp, volume) observation.
type VolumePoint struct {
	Timestamp int64   `json:"timestamp"`
	Volume    float64 `json:"volume"`
}

// MarketChart holds the raw time series for one asset. Both arrays are
// ordered by ascending timestamp. They need not be the same length;
// computations use the overlapping prefix.
type MarketChart struct {
	Prices  []PricePoint  `json:"prices"`
	Volumes []VolumePoint `json:"volumes"`
}

// PriceValues returns the price column as a flat slice.
func (c *MarketChart) PriceValues() []float64 {
	out := make([]float64, len(c.Prices))
	for i, p := range c.Prices {
		out[i] = p.Price
	}
	return out
}

// VolumeValues returns the volume column as a flat slice.
func (c *MarketChart) VolumeValues() []float64 {
	out := make([]float64, len(c.Volumes))
	for i, v := range c.Volumes {
		out[i] = v.Volume
	}
	return out
}

// AssetSnapshot is a point-in-time view of one asset, supplied by the
// market-data source. Values are treated as ground truth and never
// recomputed from the chart series.
type AssetSnapshot struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	High24h           float64 `json:"high_24h"`
	Low24h            float64 `json:"low_24h"`
	ATH               float64 `json:"ath"`
	ATL               float64 `json:"atl"`
	MarketCap         float64 `json:"market_cap"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
	MaxSupply         float64 `json:"max_supply"`
	Change24h         float64 `json:"change_24h"` // percent
	Change7d          float64 `json:"change_7d"`
	Change30d         float64 `json:"change_30d"`
	Change1y          float64 `json:"change_1y"`
}
