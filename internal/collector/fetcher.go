package collector

import (
	"context"

	"CoinSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data for one asset.
type Fetcher interface {
	FetchMarketChart(ctx context.Context, assetID string, days int) (*model.MarketChart, error)
	FetchSnapshot(ctx context.Context, assetID string) (*model.AssetSnapshot, error)
	Name() string
}
