package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/model"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"

	retryCount    = 3
	retryWaitBase = 2 * time.Second
	retryWaitMax  = 30 * time.Second
)

// CoinGeckoFetcher implements Fetcher against the CoinGecko v3 REST API.
// Rate-limit responses (429) are retried with exponential backoff up to
// retryCount attempts; anything past that surfaces as an error.
type CoinGeckoFetcher struct {
	client *resty.Client
	log    *logrus.Entry
}

// NewCoinGeckoFetcher creates a fetcher. baseURL may be empty to use the
// public endpoint; apiKey is the optional demo key.
func NewCoinGeckoFetcher(baseURL, apiKey string, log *logrus.Logger) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(retryCount)
	client.SetRetryWaitTime(retryWaitBase)
	client.SetRetryMaxWaitTime(retryWaitMax)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err == nil && r.StatusCode() == http.StatusTooManyRequests
	})
	if apiKey != "" {
		client.SetHeader("x-cg-demo-api-key", apiKey)
	}

	return &CoinGeckoFetcher{
		client: client,
		log:    log.WithField("component", "coingecko"),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// geckoChart is the market_chart response shape: arrays of [timestamp, value].
type geckoChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// geckoCoin is the subset of the coin detail response the engine needs.
type geckoCoin struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		ATH                      map[string]float64 `json:"ath"`
		ATL                      map[string]float64 `json:"atl"`
		MarketCap                map[string]float64 `json:"market_cap"`
		CirculatingSupply        float64            `json:"circulating_supply"`
		TotalSupply              float64            `json:"total_supply"`
		MaxSupply                float64            `json:"max_supply"`
		PriceChangePct24h        float64            `json:"price_change_percentage_24h"`
		PriceChangePct7d         float64            `json:"price_change_percentage_7d"`
		PriceChangePct30d        float64            `json:"price_change_percentage_30d"`
		PriceChangePct1y         float64            `json:"price_change_percentage_1y"`
	} `json:"market_data"`
}

// FetchMarketChart retrieves the daily price/volume series for one asset.
func (f *CoinGeckoFetcher) FetchMarketChart(ctx context.Context, assetID string, days int) (*model.MarketChart, error) {
	var body geckoChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("id", assetID).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        strconv.Itoa(days),
			"interval":    "daily",
		}).
		SetResult(&body).
		Get("/coins/{id}/market_chart")
	if err != nil {
		return nil, fmt.Errorf("coingecko market_chart %s: %w", assetID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko market_chart %s: status %d", assetID, resp.StatusCode())
	}
	if len(body.Prices) == 0 {
		return nil, fmt.Errorf("coingecko market_chart %s: empty series", assetID)
	}

	chart := &model.MarketChart{
		Prices:  make([]model.PricePoint, 0, len(body.Prices)),
		Volumes: make([]model.VolumePoint, 0, len(body.TotalVolumes)),
	}
	for _, p := range body.Prices {
		chart.Prices = append(chart.Prices, model.PricePoint{Timestamp: int64(p[0]), Price: p[1]})
	}
	for _, v := range body.TotalVolumes {
		chart.Volumes = append(chart.Volumes, model.VolumePoint{Timestamp: int64(v[0]), Volume: v[1]})
	}

	f.log.WithFields(logrus.Fields{"asset": assetID, "points": len(chart.Prices)}).Debug("fetched market chart")
	return chart, nil
}

// FetchSnapshot retrieves the point-in-time coin detail for one asset.
func (f *CoinGeckoFetcher) FetchSnapshot(ctx context.Context, assetID string) (*model.AssetSnapshot, error) {
	var body geckoCoin
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("id", assetID).
		SetQueryParams(map[string]string{
			"localization":   "false",
			"tickers":        "false",
			"market_data":    "true",
			"community_data": "false",
			"developer_data": "false",
		}).
		SetResult(&body).
		Get("/coins/{id}")
	if err != nil {
		return nil, fmt.Errorf("coingecko coin %s: %w", assetID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko coin %s: status %d", assetID, resp.StatusCode())
	}

	md := body.MarketData
	return &model.AssetSnapshot{
		ID:                body.ID,
		Symbol:            body.Symbol,
		Name:              body.Name,
		CurrentPrice:      md.CurrentPrice["usd"],
		High24h:           md.High24h["usd"],
		Low24h:            md.Low24h["usd"],
		ATH:               md.ATH["usd"],
		ATL:               md.ATL["usd"],
		MarketCap:         md.MarketCap["usd"],
		CirculatingSupply: md.CirculatingSupply,
		TotalSupply:       md.TotalSupply,
		MaxSupply:         md.MaxSupply,
		Change24h:         md.PriceChangePct24h,
		Change7d:          md.PriceChangePct7d,
		Change30d:         md.PriceChangePct30d,
		Change1y:          md.PriceChangePct1y,
	}, nil
}
