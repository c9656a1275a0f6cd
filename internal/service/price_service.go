package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/registry"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const defaultPriceTTL = 60 * time.Second

type PriceProvider interface {
	FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error)
}

// PriceService caches oracle prices with a time-boxed staleness policy: a
// snapshot is fresh for the TTL, a failed refresh leaves the stale entry in
// place, and callers degrade rather than block on price data.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceProvider
	redis    *redis.Client
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	local map[string]*domain.PriceSnapshot
}

func NewPriceService(tracer trace.Tracer, provider PriceProvider, redisClient *redis.Client) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		redis:    redisClient,
		ttl:      defaultPriceTTL,
		now:      time.Now,
		local:    make(map[string]*domain.PriceSnapshot),
	}
}

func (s *PriceService) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// GetCurrentPrice returns a price snapshot for symbol, refreshing the cache
// when the stored one has gone stale. A failed refresh falls back to the
// stale snapshot rather than erroring.
func (s *PriceService) GetCurrentPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-current-price")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !registry.IsSupported(symbol) {
		return nil, domain.NewUserInputError("price-service.get-current-price", fmt.Errorf("unsupported symbol: %s", symbol))
	}

	cached := s.lookup(ctx, symbol)
	if cached != nil && s.now().Sub(cached.FetchedAt) < s.ttl {
		return cached, nil
	}

	if err := s.RefreshAll(ctx); err != nil {
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}

	if fresh := s.lookup(ctx, symbol); fresh != nil {
		return fresh, nil
	}
	if cached != nil {
		return cached, nil
	}
	return nil, domain.NewCollaboratorError("price-service.get-current-price", fmt.Errorf("no price for %s", symbol))
}

// RefreshAll fetches the full universe from the provider and replaces cache
// entries on success. Entries are stored without expiry so stale values
// survive provider outages.
func (s *PriceService) RefreshAll(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "price-service.refresh-all")
	defer span.End()

	if s.provider == nil {
		return domain.NewCollaboratorError("price-service.refresh-all", fmt.Errorf("no price provider configured"))
	}
	prices, err := s.provider.FetchPrices(ctx)
	if err != nil {
		return domain.NewCollaboratorError("price-service.refresh-all", err)
	}
	for symbol, snap := range prices {
		s.store(ctx, symbol, snap)
	}
	return nil
}

func (s *PriceService) lookup(ctx context.Context, symbol string) *domain.PriceSnapshot {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, priceKey(symbol)).Result()
		if err == nil {
			var snap domain.PriceSnapshot
			if json.Unmarshal([]byte(raw), &snap) == nil {
				return &snap
			}
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.local[symbol]
}

func (s *PriceService) store(ctx context.Context, symbol string, snap *domain.PriceSnapshot) {
	if s.redis != nil {
		if raw, err := json.Marshal(snap); err == nil {
			// No expiry: the staleness policy lives in GetCurrentPrice so a
			// stale value is still servable when the provider is down.
			s.redis.Set(ctx, priceKey(symbol), raw, 0)
		}
	}
	s.mu.Lock()
	s.local[symbol] = snap
	s.mu.Unlock()
}

func priceKey(symbol string) string {
	return "price:" + symbol
}
