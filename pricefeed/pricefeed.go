// Best-effort USD prices for the supported assets. One GET for all ids,
// refreshed every minute; failures keep the previous values in place so a
// flaky feed degrades to stale prices instead of blocking every checkout.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"onlyexchange/checkout"
	"onlyexchange/logger"
	"onlyexchange/metrics"
)

const PollInterval = 60 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
	rec     metrics.Recorder

	mu     sync.RWMutex
	prices map[checkout.Method]float64 // absent key = unknown
}

func New(baseURL string, log logger.Logger, rec metrics.Recorder) *Client {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
		rec:     rec,
		prices:  make(map[checkout.Method]float64),
	}
}

// Price returns the last known USD price of the asset.
func (c *Client) Price(m checkout.Method) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[m]
	return p, ok
}

// Snapshot returns a copy of the current price map.
func (c *Client) Snapshot() map[checkout.Method]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[checkout.Method]float64, len(c.prices))
	for k, v := range c.prices {
		out[k] = v
	}
	return out
}

// FetchPrices refreshes the price map once. On any error the previous values
// stay in place and the failure is only logged.
func (c *Client) FetchPrices(ctx context.Context) error {
	ids := make([]string, 0, len(checkout.Methods))
	for _, m := range checkout.Methods {
		ids = append(ids, m.GeckoID())
	}
	url := fmt.Sprintf("%s/api/price?ids=%s", c.baseURL, strings.Join(ids, ","))

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.fetchFailed(err)
		return err
	}
	defer resp.Body.Close()
	c.rec.ObserveLatency("price_fetch", time.Since(start), nil)

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("price endpoint returned %s", resp.Status)
		c.fetchFailed(err)
		return err
	}

	var body map[string]struct {
		USD *float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.fetchFailed(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range checkout.Methods {
		entry, ok := body[m.GeckoID()]
		if !ok || entry.USD == nil {
			delete(c.prices, m)
			continue
		}
		c.prices[m] = *entry.USD
	}
	return nil
}

func (c *Client) fetchFailed(err error) {
	c.rec.IncCounter(metrics.PriceFetchError, nil)
	c.log.Warn("price fetch failed, keeping previous values", map[string]any{"error": err.Error()})
}

// Start fetches once immediately and then polls every PollInterval until the
// context is cancelled.
func (c *Client) Start(ctx context.Context) {
	c.FetchPrices(ctx)
	go func() {
		ticker := time.NewTicker(PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.FetchPrices(ctx)
			}
		}
	}()
}
