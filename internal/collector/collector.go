package collector

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/model"
)

// AssetData is a complete chart+snapshot pair, the unit the analytics
// engine consumes.
type AssetData struct {
	Chart    *model.MarketChart
	Snapshot *model.AssetSnapshot
}

type cacheEntry struct {
	data      *AssetData
	fetchedAt time.Time
}

// inflightCall deduplicates concurrent requests for the same asset.
type inflightCall struct {
	done chan struct{}
	data *AssetData
	err  error
}

// Collector orchestrates data fetching for the analytics engine: it
// memoizes results per asset with a TTL, deduplicates concurrent requests
// for the same asset, and spaces upstream calls by a fixed delay to stay
// under the provider's rate limit. The engine itself never fetches.
type Collector struct {
	fetcher      Fetcher
	chartDays    int
	cacheTTL     time.Duration
	requestDelay time.Duration
	log          *logrus.Entry

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inflight map[string]*inflightCall
	lastCall time.Time
}

// NewCollector creates a Collector around the given fetcher.
func NewCollector(fetcher Fetcher, chartDays int, cacheTTL, requestDelay time.Duration, log *logrus.Logger) *Collector {
	return &Collector{
		fetcher:      fetcher,
		chartDays:    chartDays,
		cacheTTL:     cacheTTL,
		requestDelay: requestDelay,
		log:          log.WithField("component", "collector"),
		cache:        make(map[string]cacheEntry),
		inflight:     make(map[string]*inflightCall),
	}
}

// Collect returns the chart+snapshot pair for one asset, from cache when
// fresh. Concurrent calls for the same asset share a single upstream fetch.
func (c *Collector) Collect(ctx context.Context, assetID string) (*AssetData, error) {
	c.mu.Lock()
	if entry, ok := c.cache[assetID]; ok && time.Since(entry.fetchedAt) < c.cacheTTL {
		c.mu.Unlock()
		return entry.data, nil
	}
	if call, ok := c.inflight[assetID]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.data, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &inflightCall{done: make(chan struct{})}
	c.inflight[assetID] = call
	c.mu.Unlock()

	call.data, call.err = c.fetch(ctx, assetID)
	close(call.done)

	c.mu.Lock()
	delete(c.inflight, assetID)
	if call.err == nil {
		c.cache[assetID] = cacheEntry{data: call.data, fetchedAt: time.Now()}
	}
	c.mu.Unlock()

	return call.data, call.err
}

// CollectAll fetches data for every asset sequentially, preserving input
// order. Assets that fail are logged and skipped; the returned map holds
// only the successes.
func (c *Collector) CollectAll(ctx context.Context, assetIDs []string) map[string]*AssetData {
	out := make(map[string]*AssetData, len(assetIDs))
	for _, id := range assetIDs {
		data, err := c.Collect(ctx, id)
		if err != nil {
			c.log.WithError(err).WithField("asset", id).Warn("collect failed, skipping asset")
			continue
		}
		out[id] = data
	}
	return out
}

// fetch performs the two upstream calls for one asset, pacing each by the
// configured inter-request delay.
func (c *Collector) fetch(ctx context.Context, assetID string) (*AssetData, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}
	chart, err := c.fetcher.FetchMarketChart(ctx, assetID, c.chartDays)
	if err != nil {
		return nil, err
	}

	if err := c.pace(ctx); err != nil {
		return nil, err
	}
	snapshot, err := c.fetcher.FetchSnapshot(ctx, assetID)
	if err != nil {
		return nil, err
	}

	c.log.WithField("asset", assetID).Debug("collected asset data")
	return &AssetData{Chart: chart, Snapshot: snapshot}, nil
}

// pace blocks until the inter-request delay since the previous upstream
// call has elapsed.
func (c *Collector) pace(ctx context.Context) error {
	c.mu.Lock()
	wait := c.requestDelay - time.Since(c.lastCall)
	if wait <= 0 {
		c.lastCall = time.Now()
		c.mu.Unlock()
		return nil
	}
	// Claim the next slot before sleeping so concurrent callers queue up
	// behind it instead of sharing the same slot.
	c.lastCall = time.Now().Add(wait)
	c.mu.Unlock()

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Invalidate drops any cached entry for the asset.
func (c *Collector) Invalidate(assetID string) {
	c.mu.Lock()
	delete(c.cache, assetID)
	c.mu.Unlock()
}
