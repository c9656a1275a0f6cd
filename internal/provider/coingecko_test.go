package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wallet-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestFetchPricesMapsIDsToSymbols(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"solana": {"usd": 150.25, "usd_24h_change": -2.1, "usd_24h_vol": 1200000000},
			"jupiter-exchange-solana": {"usd": 0.85, "usd_24h_change": 3.4, "usd_24h_vol": 90000000},
			"unrelated-coin": {"usd": 1}
		}`))
	}))
	defer srv.Close()

	p := NewCoinGeckoProviderWithBase(noop.NewTracerProvider().Tracer("test"), srv.URL)
	prices, err := p.FetchPrices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol := prices["SOL"]
	if sol == nil || sol.PriceUSD != 150.25 || sol.Change24hPct != -2.1 {
		t.Fatalf("unexpected SOL snapshot: %+v", sol)
	}
	jup := prices["JUP"]
	if jup == nil || jup.PriceUSD != 0.85 {
		t.Fatalf("unexpected JUP snapshot: %+v", jup)
	}
	if sol.FetchedAt.IsZero() {
		t.Fatal("expected FetchedAt stamped")
	}
	if _, ok := prices["unrelated-coin"]; ok {
		t.Fatal("unknown ids must be dropped")
	}
	if !strings.Contains(gotQuery, "vs_currencies=usd") {
		t.Fatalf("expected usd quote in query, got %q", gotQuery)
	}
}

func TestFetchPricesNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewCoinGeckoProviderWithBase(noop.NewTracerProvider().Tracer("test"), srv.URL)
	_, err := p.FetchPrices(context.Background())
	if err == nil {
		t.Fatal("expected error on rate-limited response")
	}
	if domain.Classify(err) != domain.FailureCollaborator {
		t.Fatalf("expected collaborator classification, got %v", domain.Classify(err))
	}
}

func TestFetchPricesBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	p := NewCoinGeckoProviderWithBase(noop.NewTracerProvider().Tracer("test"), srv.URL)
	if _, err := p.FetchPrices(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
