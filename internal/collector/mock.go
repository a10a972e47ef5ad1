package collector

import (
	"context"
	"time"

	"CoinSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price    float64
	Chart    *model.MarketChart
	Snapshot *model.AssetSnapshot

	ChartCalls    int
	SnapshotCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMarketChart(_ context.Context, _ string, days int) (*model.MarketChart, error) {
	m.ChartCalls++
	if m.Chart != nil {
		return m.Chart, nil
	}
	return generateMockChart(m.Price, days), nil
}

func (m *MockFetcher) FetchSnapshot(_ context.Context, assetID string) (*model.AssetSnapshot, error) {
	m.SnapshotCalls++
	if m.Snapshot != nil {
		return m.Snapshot, nil
	}
	return &model.AssetSnapshot{
		ID:           assetID,
		Symbol:       assetID,
		Name:         assetID,
		CurrentPrice: m.Price,
		ATH:          m.Price * 1.5,
		ATL:          m.Price * 0.2,
	}, nil
}

func generateMockChart(basePrice float64, count int) *model.MarketChart {
	chart := &model.MarketChart{}
	start := time.Now().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		ts := start.AddDate(0, 0, i).UnixMilli()
		chart.Prices = append(chart.Prices, model.PricePoint{Timestamp: ts, Price: p})
		chart.Volumes = append(chart.Volumes, model.VolumePoint{Timestamp: ts, Volume: 1000000})
	}
	return chart
}
