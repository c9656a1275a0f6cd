package domain

import "time"

// SOLTransferFee is the flat network fee, in SOL, reserved for a single
// transfer transaction.
const SOLTransferFee = 0.000005

const NativeSymbol = "SOL"

type ExpertiseLevel string

const (
	ExpertiseBeginner     ExpertiseLevel = "beginner"
	ExpertiseIntermediate ExpertiseLevel = "intermediate"
	ExpertiseAdvanced     ExpertiseLevel = "advanced"
)

// TokenDescriptor is the immutable registry entry for a supported token.
type TokenDescriptor struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Decimals    int      `json:"decimals"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	PriceRange  string   `json:"price_range"`
	Sentiment   string   `json:"sentiment"`
	Trends      []string `json:"trends"`
	LaunchYear  int      `json:"launch_year"`
}

type TokenBalance struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// RequestContext is the per-message snapshot of wallet and session state.
// It is built fresh for every incoming message and never persisted.
type RequestContext struct {
	WalletConnected bool
	WalletAddress   string
	Balance         float64
	TokenBalances   []TokenBalance
	Expertise       ExpertiseLevel
	Prompt          string
}

func (c *RequestContext) TokenBalance(symbol string) (float64, bool) {
	for _, tb := range c.TokenBalances {
		if tb.Symbol == symbol {
			return tb.Amount, true
		}
	}
	return 0, false
}

const (
	ActionBalance      = "balance"
	ActionSwap         = "swap"
	ActionTransfer     = "transfer"
	ActionTokenInfo    = "tokenInfo"
	ActionMarketTrends = "marketTrends"
	ActionHistory      = "history"
)

// TransferIntent is only ever produced after the transfer guard has passed
// every check; a nil intent means the turn must not reach the signing layer.
type TransferIntent struct {
	Recipient string  `json:"recipient"`
	Token     string  `json:"token"`
	Amount    float64 `json:"amount"`
}

type SwapIntent struct {
	FromToken string  `json:"from_token"`
	Token     string  `json:"token"`
	Price     float64 `json:"price"`
}

// Intent is the tagged payload describing a recognized, executable request.
type Intent struct {
	Action   string          `json:"action"`
	Transfer *TransferIntent `json:"transfer,omitempty"`
	Swap     *SwapIntent     `json:"swap,omitempty"`
}

// AssistantResponse is the single shape every turn resolves to. Constructed
// fresh per request and never mutated after return.
type AssistantResponse struct {
	Message     string         `json:"message"`
	Intent      *Intent        `json:"intent,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// MergeData folds extra enrichment into the response without overwriting
// keys that are already present.
func (r *AssistantResponse) MergeData(extra map[string]any) {
	if len(extra) == 0 {
		return
	}
	if r.Data == nil {
		r.Data = make(map[string]any, len(extra))
	}
	for k, v := range extra {
		if _, exists := r.Data[k]; !exists {
			r.Data[k] = v
		}
	}
}

type ConversationMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

type PriceSnapshot struct {
	Symbol       string    `json:"symbol"`
	PriceUSD     float64   `json:"price_usd"`
	Change24hPct float64   `json:"change_24h_pct"`
	Volume24h    float64   `json:"volume_24h"`
	FetchedAt    time.Time `json:"fetched_at"`
}

type Transaction struct {
	Signature    string    `json:"signature"`
	Timestamp    time.Time `json:"timestamp"`
	Token        string    `json:"token"`
	Amount       float64   `json:"amount"`
	Direction    string    `json:"direction"` // "in" | "out"
	Counterparty string    `json:"counterparty"`
}

type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Token     string
	Limit     int
}
