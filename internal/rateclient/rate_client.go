package rateclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
)

// cachedRate is one quote held until its TTL expires.
type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// Client fetches advisory market rates from an external quote API and
// caches them per currency pair. Quotes pre-fill the rate form only; the
// stored rate an operator confirms is always authoritative.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu    sync.RWMutex
	ttl   time.Duration
	cache map[string]cachedRate
}

// Ensure implementation matches interface
var _ portssvc.LiveRateProvider = (*Client)(nil)

// New creates a rate client against the given quote API base URL.
func New(baseURL, apiKey string, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ttl:   ttl,
		cache: make(map[string]cachedRate),
	}
}

// quoteResponse mirrors the upstream API payload.
type quoteResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRate returns the market rate for an ISO code pair, serving from the
// cache while the quote is fresh.
func (c *Client) FetchRate(ctx context.Context, sourceISOCode, targetISOCode string) (decimal.Decimal, time.Time, error) {
	key := sourceISOCode + "_" + targetISOCode

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) <= c.ttl {
		return cached.rate, cached.fetchedAt, nil
	}

	rate, err := c.fetchLive(ctx, sourceISOCode, targetISOCode)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, err
	}

	now := time.Now().UTC()
	c.mu.Lock()
	c.cache[key] = cachedRate{rate: rate, fetchedAt: now}
	c.mu.Unlock()

	return rate, now, nil
}

func (c *Client) fetchLive(ctx context.Context, sourceISOCode, targetISOCode string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.baseURL, url.QueryEscape(sourceISOCode), url.QueryEscape(targetISOCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to build rate request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode rate API response: %w", err)
	}

	rate, ok := quote.Rates[targetISOCode]
	if !ok || rate <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: no quote for %s->%s", apperrors.ErrNotFound, sourceISOCode, targetISOCode)
	}

	return decimal.NewFromFloat(rate), nil
}
