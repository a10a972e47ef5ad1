// Package service joins the holdings ledger, the data collector, and the
// analytics engine into the operations the API and scheduler expose.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/dca"
	"CoinSentinel/internal/holdings"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/portfolio"
	"CoinSentinel/internal/risk"
	"CoinSentinel/internal/trend"
)

// AnalysisService wires market data and holdings into analysis results.
type AnalysisService struct {
	Holdings  *holdings.Manager
	Collector *collector.Collector
	log       *logrus.Entry
}

// NewAnalysisService creates the service.
func NewAnalysisService(hm *holdings.Manager, col *collector.Collector, log *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		Holdings:  hm,
		Collector: col,
		log:       log.WithField("component", "analysis"),
	}
}

// AssetRisk runs the single-asset risk analysis for one asset id.
func (s *AnalysisService) AssetRisk(ctx context.Context, assetID string) (*model.RiskAnalysis, error) {
	data, err := s.Collector.Collect(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", assetID, err)
	}
	analysis := risk.Analyze(data.Chart, data.Snapshot)
	return &analysis, nil
}

// AssetTrend runs the trend classification for one asset id.
func (s *AnalysisService) AssetTrend(ctx context.Context, assetID string) (*model.MarketTrend, error) {
	data, err := s.Collector.Collect(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", assetID, err)
	}
	t := trend.Analyze(data.Chart, data.Snapshot)
	return &t, nil
}

// AssetDCA runs the DCA zone analysis for one asset id.
func (s *AnalysisService) AssetDCA(ctx context.Context, assetID string) (*model.DCAAnalysis, error) {
	data, err := s.Collector.Collect(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", assetID, err)
	}
	analysis := dca.Analyze(data.Chart, data.Snapshot)
	return &analysis, nil
}

// PortfolioSummary aggregates the full ledger into the dashboard summary.
// The second return value is the portfolio's total current value.
func (s *AnalysisService) PortfolioSummary(ctx context.Context) (*model.PortfolioRiskSummary, float64, error) {
	assets, totalValue, err := s.buildPortfolio(ctx)
	if err != nil {
		return nil, 0, err
	}
	summary := portfolio.Analyze(assets)
	return &summary, totalValue, nil
}

// buildPortfolio groups holdings by asset, joins them with market data, and
// computes current values and weights. Assets whose data cannot be fetched
// are skipped rather than failing the whole portfolio.
func (s *AnalysisService) buildPortfolio(ctx context.Context) ([]model.PortfolioAsset, float64, error) {
	positions := s.Holdings.List()
	if len(positions) == 0 {
		return nil, 0, nil
	}

	// Sum quantities per asset; multiple lots of the same asset are one
	// position for analysis purposes.
	quantities := make(map[string]float64)
	var order []string
	names := make(map[string]model.Holding)
	for _, h := range positions {
		if _, seen := quantities[h.AssetID]; !seen {
			order = append(order, h.AssetID)
			names[h.AssetID] = h
		}
		quantities[h.AssetID] += h.Quantity
	}

	collected := s.Collector.CollectAll(ctx, order)

	var assets []model.PortfolioAsset
	var totalValue float64
	for _, id := range order {
		data, ok := collected[id]
		if !ok {
			continue
		}
		value := quantities[id] * data.Snapshot.CurrentPrice
		assets = append(assets, model.PortfolioAsset{
			Name:         names[id].Name,
			Symbol:       names[id].Symbol,
			HoldingValue: value,
			Chart:        data.Chart,
			Snapshot:     data.Snapshot,
		})
		totalValue += value
	}

	if totalValue > 0 {
		for i := range assets {
			assets[i].Weight = assets[i].HoldingValue / totalValue
		}
	}

	if len(assets) < len(order) {
		s.log.Warnf("portfolio built from %d of %d assets", len(assets), len(order))
	}
	return assets, totalValue, nil
}
