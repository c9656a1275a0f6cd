// Package catalog declares the ordered operation table that maps free text
// to typed intents. Declaration order is a contract: the first operation
// whose first matching pattern fires wins, never the most specific match.
package catalog

import (
	"context"
	"regexp"
	"strings"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/registry"
)

// PriceQuerier is the read-only price capability handlers consult for
// enrichment. Failures degrade the reply, they never fail the turn.
type PriceQuerier interface {
	GetCurrentPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
}

// HistoryService is the transaction-history collaborator.
type HistoryService interface {
	ParseDateQuery(text string) domain.TransactionFilter
	Query(ctx context.Context, address string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	FormatForDisplay(txs []domain.Transaction) string
}

type Deps struct {
	Prices  PriceQuerier
	History HistoryService
}

// Handler runs a matched operation. match holds the full regex submatch
// slice; reqCtx is the per-message wallet snapshot.
type Handler func(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse

// Operation is a named capability with its ordered pattern list. Within an
// operation, patterns are tried in listed order and the first match wins.
type Operation struct {
	Name        string
	Description string
	Patterns    []*regexp.Regexp
	Handler     Handler
}

// Match returns the submatches of the first pattern that fires, or nil.
func (op *Operation) Match(prompt string) []string {
	for _, p := range op.Patterns {
		if m := p.FindStringSubmatch(prompt); m != nil {
			return m
		}
	}
	return nil
}

type Catalog struct {
	ops  []Operation
	deps Deps
}

func New(deps Deps) *Catalog {
	return &Catalog{
		deps: deps,
		ops: []Operation{
			{
				Name:        domain.ActionBalance,
				Description: "Report SOL and token balances for the connected wallet",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(?:check|show|view|display|what(?:'s| is))\s+(?:me\s+)?(?:my\s+)?(?:wallet\s+)?balance\b`),
					regexp.MustCompile(`(?i)\bmy\s+balance\b`),
					regexp.MustCompile(`(?i)\bhow\s+much\s+(?:sol|money|crypto)\s+do\s+i\s+have\b`),
				},
				Handler: handleBalance,
			},
			{
				Name:        domain.ActionSwap,
				Description: "Propose a token swap intent",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bswap\s+(\d+(?:\.\d+)?)\s+([a-z]{2,10})\s+(?:to|for|into)\s+\$?([a-z]{2,10})\b`),
					// Looser numeric form; shadow-prone, which is why
					// transfers get a fast path in the router.
					regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+([a-z]{2,10})\s+(?:to|for)\s+\$?([a-z]{2,10})\b`),
				},
				Handler: handleSwap,
			},
			{
				Name:        domain.ActionTransfer,
				Description: "Validate and propose a guarded transfer intent",
				Patterns: []*regexp.Regexp{
					transferPattern,
				},
				Handler: handleTransfer,
			},
			{
				Name:        domain.ActionTokenInfo,
				Description: "Describe a token from the registry",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\btell\s+me\s+about\s+\$?([a-z]{2,10})\b`),
					regexp.MustCompile(`(?i)\bwhat(?:'s| is)\s+\$?([a-z]{2,10})\s*\??$`),
					regexp.MustCompile(`(?i)\binfo(?:rmation)?\s+(?:about|on)\s+\$?([a-z]{2,10})\b`),
				},
				Handler: handleTokenInfo,
			},
			{
				Name:        domain.ActionMarketTrends,
				Description: "Summarize market sentiment across the token universe",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bmarket\s+(?:trends?|overview|update)\b`),
					regexp.MustCompile(`(?i)\bwhat'?s\s+(?:hot|trending)\b`),
					regexp.MustCompile(`(?i)\btrending\s+(?:today|now)\b`),
					regexp.MustCompile(`(?i)\bhow(?:'s| is)\s+the\s+market\b`),
				},
				Handler: handleMarketTrends,
			},
			{
				Name:        domain.ActionHistory,
				Description: "Show recent wallet transactions",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(?:transaction|tx)\s+history\b`),
					regexp.MustCompile(`(?i)\b(?:show|list)\s+(?:me\s+)?(?:my\s+)?(?:recent\s+)?transactions\b`),
					regexp.MustCompile(`(?i)\bwhat\s+did\s+i\s+(?:send|receive)\b`),
				},
				Handler: handleHistory,
			},
		},
	}
}

// transferPattern is the strict form shared by the catalog entry and the
// router's fast path.
var transferPattern = regexp.MustCompile(`(?i)^\s*(?:send|transfer|pay|give)\s+(\d+(?:\.\d+)?)\s+([a-z]{2,10})\s+to\s+([1-9A-HJ-NP-Za-km-z]{32,44})\b`)

// TransferPattern exposes the strict transfer form for the router fast path.
func TransferPattern() *regexp.Regexp { return transferPattern }

func (c *Catalog) Operations() []Operation { return c.ops }

func (c *Catalog) Deps() *Deps { return &c.deps }

// Operation looks up a declared operation by name.
func (c *Catalog) Operation(name string) (*Operation, bool) {
	for i := range c.ops {
		if c.ops[i].Name == name {
			return &c.ops[i], true
		}
	}
	return nil, false
}

// ExtractTokens returns registry symbols mentioned in the prompt, in order
// of first appearance.
func ExtractTokens(prompt string) []string {
	upper := strings.ToUpper(prompt)
	var out []string
	type hit struct {
		idx int
		sym string
	}
	var hits []hit
	for _, sym := range registry.Symbols() {
		idx := indexWord(upper, sym)
		if idx >= 0 {
			hits = append(hits, hit{idx: idx, sym: sym})
		}
	}
	for len(hits) > 0 {
		best := 0
		for i := range hits {
			if hits[i].idx < hits[best].idx {
				best = i
			}
		}
		out = append(out, hits[best].sym)
		hits = append(hits[:best], hits[best+1:]...)
	}
	return out
}

// indexWord finds sym as a whole word inside text, -1 when absent.
func indexWord(text, sym string) int {
	for start := 0; ; {
		idx := strings.Index(text[start:], sym)
		if idx < 0 {
			return -1
		}
		idx += start
		before := idx == 0 || !isWordChar(text[idx-1])
		afterIdx := idx + len(sym)
		after := afterIdx >= len(text) || !isWordChar(text[afterIdx])
		if before && after {
			return idx
		}
		start = idx + 1
		if start >= len(text) {
			return -1
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}
