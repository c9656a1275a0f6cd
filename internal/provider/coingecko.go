// Package provider implements the external price oracle against the
// CoinGecko simple-price API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/registry"

	"go.opentelemetry.io/otel/trace"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

type CoinGeckoProvider struct {
	tracer  trace.Tracer
	client  *http.Client
	baseURL string
}

func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		tracer:  tracer,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: coinGeckoBaseURL,
	}
}

// NewCoinGeckoProviderWithBase points the provider at a custom endpoint,
// used by tests with httptest servers.
func NewCoinGeckoProviderWithBase(tracer trace.Tracer, baseURL string) *CoinGeckoProvider {
	p := NewCoinGeckoProvider(tracer)
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p
}

// FetchPrices pulls current USD prices for the whole registry universe in
// one call.
func (p *CoinGeckoProvider) FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-prices")
	defer span.End()

	ids := make([]string, 0, len(registry.CoinGeckoID))
	idToSymbol := make(map[string]string, len(registry.CoinGeckoID))
	for symbol, id := range registry.CoinGeckoID {
		ids = append(ids, id)
		idToSymbol[id] = symbol
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")
	q.Set("include_24hr_vol", "true")

	endpoint := p.baseURL + "/simple/price?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewCollaboratorError("coingecko.fetch-prices", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewCollaboratorError("coingecko.fetch-prices", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
		USD24hVol    float64 `json:"usd_24h_vol"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewCollaboratorError("coingecko.fetch-prices", fmt.Errorf("decode response: %w", err))
	}

	now := time.Now().UTC()
	out := make(map[string]*domain.PriceSnapshot, len(payload))
	for id, entry := range payload {
		symbol, ok := idToSymbol[id]
		if !ok {
			continue
		}
		out[symbol] = &domain.PriceSnapshot{
			Symbol:       symbol,
			PriceUSD:     entry.USD,
			Change24hPct: entry.USD24hChange,
			Volume24h:    entry.USD24hVol,
			FetchedAt:    now,
		}
	}
	return out, nil
}
