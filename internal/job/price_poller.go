package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type PriceRefresher interface {
	RefreshAll(ctx context.Context) error
}

// PricePoller keeps the price cache warm so chat turns rarely pay for a
// synchronous oracle round trip.
type PricePoller struct {
	tracer   trace.Tracer
	prices   PriceRefresher
	interval time.Duration
}

func NewPricePoller(tracer trace.Tracer, prices PriceRefresher, pollSecs int) *PricePoller {
	if pollSecs <= 0 {
		pollSecs = 60
	}
	return &PricePoller{
		tracer:   tracer,
		prices:   prices,
		interval: time.Duration(pollSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled, refreshing on each tick. Refresh
// failures are logged and skipped; the stale cache keeps serving.
func (p *PricePoller) Start(ctx context.Context) {
	if p.prices == nil {
		log.Println("Price poller disabled: no price service")
		<-ctx.Done()
		return
	}

	log.Println("Price poller starting...")
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Price poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *PricePoller) refresh(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "price-poller.refresh")
	defer span.End()

	if err := p.prices.RefreshAll(ctx); err != nil {
		log.Printf("price refresh failed: %v", err)
	}
}
