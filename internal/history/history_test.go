package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wallet-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

type scriptedFetcher struct {
	calls    int
	failures int
	txs      []domain.Transaction
}

func (f *scriptedFetcher) Transactions(ctx context.Context, address string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("rpc timeout")
	}
	return f.txs, nil
}

func newTestService(fetcher Fetcher) *Service {
	s := NewService(noop.NewTracerProvider().Tracer("test"), fetcher)
	s.retrySleep = 0
	return s
}

func TestParseDateQuery(t *testing.T) {
	s := newTestService(nil)
	fixed := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	startOfDay := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		text      string
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{"show my transactions today", &startOfDay, nil},
		{"what did I send yesterday", timePtr(startOfDay.AddDate(0, 0, -1)), &startOfDay},
		{"transactions this week", timePtr(startOfDay.AddDate(0, 0, -7)), nil},
		{"transactions from the last 30 days", timePtr(startOfDay.AddDate(0, -1, 0)), nil},
		{"show my transaction history", nil, nil},
	}
	for _, tc := range cases {
		got := s.ParseDateQuery(tc.text)
		if got.Limit != 10 {
			t.Fatalf("%q: expected default limit 10, got %d", tc.text, got.Limit)
		}
		if !sameTimePtr(got.StartDate, tc.wantStart) {
			t.Fatalf("%q: start date mismatch: got %v want %v", tc.text, got.StartDate, tc.wantStart)
		}
		if !sameTimePtr(got.EndDate, tc.wantEnd) {
			t.Fatalf("%q: end date mismatch: got %v want %v", tc.text, got.EndDate, tc.wantEnd)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func sameTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func TestQueryRetriesWithinBudget(t *testing.T) {
	f := &scriptedFetcher{failures: 2, txs: []domain.Transaction{{Signature: "sig"}}}
	s := newTestService(f)

	txs, err := s.Query(context.Background(), "addr", domain.TransactionFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected one transaction, got %d", len(txs))
	}
	if f.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", f.calls)
	}
}

func TestQuerySurfacesExhaustedBudget(t *testing.T) {
	f := &scriptedFetcher{failures: 10}
	s := newTestService(f)

	_, err := s.Query(context.Background(), "addr", domain.TransactionFilter{})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if f.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", f.calls)
	}
	if domain.Classify(err) != domain.FailureCollaborator {
		t.Fatalf("expected collaborator classification, got %v", domain.Classify(err))
	}
}

func TestQueryWithoutFetcher(t *testing.T) {
	s := newTestService(nil)
	_, err := s.Query(context.Background(), "addr", domain.TransactionFilter{})
	if err == nil {
		t.Fatal("expected error without a fetcher")
	}
}

func TestQueryStopsOnCancelledContext(t *testing.T) {
	f := &scriptedFetcher{failures: 10}
	s := NewService(noop.NewTracerProvider().Tracer("test"), f)
	s.retrySleep = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Query(ctx, "addr", domain.TransactionFilter{})
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
	if f.calls != 1 {
		t.Fatalf("expected a single attempt before bailing, got %d", f.calls)
	}
}

func TestFormatForDisplay(t *testing.T) {
	s := newTestService(nil)
	ts := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{Signature: "a", Timestamp: ts, Direction: "out", Amount: 1.5, Token: "SOL", Counterparty: "So11111111111111111111111111111111111111112"},
		{Signature: "b", Timestamp: ts.Add(-time.Hour), Direction: "in", Amount: 40, Token: "USDC"},
	}
	out := s.FormatForDisplay(txs)
	if !strings.Contains(out, "last 2 transactions") {
		t.Fatalf("expected transaction count, got %q", out)
	}
	if !strings.Contains(out, "sent 1.5 SOL (So11...1112)") {
		t.Fatalf("expected shortened counterparty, got %q", out)
	}
	if !strings.Contains(out, "received 40 USDC") {
		t.Fatalf("expected inbound row, got %q", out)
	}
}

func TestFormatForDisplayEmpty(t *testing.T) {
	s := newTestService(nil)
	if got := s.FormatForDisplay(nil); got != "No transactions found." {
		t.Fatalf("unexpected empty output: %q", got)
	}
}
