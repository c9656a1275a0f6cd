// Package history resolves natural-language date ranges and formats wallet
// transaction history for display. The actual chain lookup is delegated to a
// Fetcher collaborator.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defaultRetryBudget = 3

// Fetcher is the upstream transaction source (RPC indexer, explorer API).
type Fetcher interface {
	Transactions(ctx context.Context, address string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

type Service struct {
	tracer     trace.Tracer
	fetcher    Fetcher
	retryMax   int
	now        func() time.Time
	retrySleep time.Duration
}

func NewService(tracer trace.Tracer, fetcher Fetcher) *Service {
	return &Service{
		tracer:     tracer,
		fetcher:    fetcher,
		retryMax:   defaultRetryBudget,
		now:        time.Now,
		retrySleep: 200 * time.Millisecond,
	}
}

// ParseDateQuery extracts a date range from free text. Unrecognized text
// yields an open filter with a default limit.
func (s *Service) ParseDateQuery(text string) domain.TransactionFilter {
	lower := strings.ToLower(text)
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	filter := domain.TransactionFilter{Limit: 10}
	switch {
	case strings.Contains(lower, "today"):
		filter.StartDate = &startOfDay
	case strings.Contains(lower, "yesterday"):
		start := startOfDay.AddDate(0, 0, -1)
		filter.StartDate = &start
		filter.EndDate = &startOfDay
	case strings.Contains(lower, "this week"), strings.Contains(lower, "last 7 days"), strings.Contains(lower, "past week"):
		start := startOfDay.AddDate(0, 0, -7)
		filter.StartDate = &start
	case strings.Contains(lower, "this month"), strings.Contains(lower, "last 30 days"), strings.Contains(lower, "past month"):
		start := startOfDay.AddDate(0, -1, 0)
		filter.StartDate = &start
	}
	return filter
}

// Query fetches transactions with a small fixed retry budget. Once the
// budget is exhausted the failure is surfaced rather than retried silently.
func (s *Service) Query(ctx context.Context, address string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	_, span := s.tracer.Start(ctx, "history.query")
	defer span.End()

	if s.fetcher == nil {
		return nil, domain.NewCollaboratorError("history.query", fmt.Errorf("no transaction source configured"))
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	var lastErr error
	for attempt := 0; attempt < s.retryMax; attempt++ {
		txs, err := s.fetcher.Transactions(ctx, address, filter)
		if err == nil {
			return txs, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, domain.NewCollaboratorError("history.query", ctx.Err())
		case <-time.After(s.retrySleep):
		}
	}
	return nil, domain.NewCollaboratorError("history.query", fmt.Errorf("after %d attempts: %w", s.retryMax, lastErr))
}

// FormatForDisplay renders transactions as a compact, newest-first listing.
func (s *Service) FormatForDisplay(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return "No transactions found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are your last %d transactions:\n", len(txs))
	for _, tx := range txs {
		arrow := "received"
		if tx.Direction == "out" {
			arrow = "sent"
		}
		fmt.Fprintf(&b, "%s  %s %v %s", tx.Timestamp.UTC().Format("Jan 2 15:04"), arrow, tx.Amount, tx.Token)
		if tx.Counterparty != "" {
			fmt.Fprintf(&b, " (%s)", shorten(tx.Counterparty))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func shorten(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}
