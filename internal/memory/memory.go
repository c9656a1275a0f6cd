// Package memory tracks bounded, session-scoped recency state used to
// personalize suggestions and tips.
package memory

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"wallet-copilot/internal/domain"
)

const (
	maxRecentTopics     = 8
	maxRecentTokens     = 10
	maxPreferredActions = 3
	maxFavoriteTokens   = 5
	maxSuggestions      = 3

	defaultTipProbability = 0.25
)

type InteractionStyle string

const (
	StyleTechnical InteractionStyle = "technical"
	StyleCasual    InteractionStyle = "casual"
	StyleNeutral   InteractionStyle = "neutral"
)

var technicalTerms = []string{"tvl", "liquidity pool", "liquidity", "amm", "slippage", "apy", "yield"}
var casualTerms = []string{"moon", "dump", "pump", "wen", "lambo", "fomo", "yolo"}

// Memory is the mutable dialogue state for one session. All methods are safe
// for concurrent use; mutations are serialized per session.
type Memory struct {
	mu               sync.Mutex
	recentTopics     []string
	recentTokens     []string
	preferredActions []string
	favoriteTokens   []string
	style            InteractionStyle
	rng              *rand.Rand
	tipProbability   float64
}

// NewMemory creates session state with the given randomness source. A nil
// rng falls back to a time-seeded one; tests inject a fixed seed.
func NewMemory(rng *rand.Rand) *Memory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Memory{
		style:          StyleNeutral,
		rng:            rng,
		tipProbability: defaultTipProbability,
	}
}

// SetTipProbability overrides the gate applied to each tip candidate.
// Values outside [0,1] are clamped.
func (m *Memory) SetTipProbability(p float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	m.tipProbability = p
}

// Update records the outcome of a matched turn: the operation topic, any
// token symbols mentioned, and a style re-inference from the raw prompt.
func (m *Memory) Update(prompt, operation string, tokens []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if operation != "" {
		m.recentTopics = pushFront(m.recentTopics, operation, maxRecentTopics)
		m.preferredActions = pushFront(m.preferredActions, operation, maxPreferredActions)
	}
	for _, tok := range tokens {
		sym := strings.ToUpper(strings.TrimSpace(tok))
		if sym == "" {
			continue
		}
		m.recentTokens = pushFront(m.recentTokens, sym, maxRecentTokens)
		if sym != domain.NativeSymbol {
			m.favoriteTokens = pushFront(m.favoriteTokens, sym, maxFavoriteTokens)
		}
	}
	m.inferStyle(prompt)
}

// pushFront inserts most-recent-first, moving duplicates to the head and
// evicting from the tail past cap.
func pushFront(buf []string, v string, cap int) []string {
	out := make([]string, 0, cap)
	out = append(out, v)
	for _, existing := range buf {
		if existing == v {
			continue
		}
		out = append(out, existing)
		if len(out) == cap {
			break
		}
	}
	return out
}

// inferStyle flips the style only on an unambiguous signal: technical terms
// without casual ones, or the reverse. Mixed or absent signals leave it
// unchanged.
func (m *Memory) inferStyle(prompt string) {
	lower := strings.ToLower(prompt)
	technical := containsAny(lower, technicalTerms)
	casual := containsAny(lower, casualTerms)
	switch {
	case technical && !casual:
		m.style = StyleTechnical
	case casual && !technical:
		m.style = StyleCasual
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func (m *Memory) Style() InteractionStyle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.style
}

func (m *Memory) RecentTokens() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recentTokens...)
}

func (m *Memory) RecentTopics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recentTopics...)
}

// Suggestions derives up to three follow-ups from the most recent topic.
// The cascade is keyed on recentTopics[0] only; older topics never override
// the latest one.
func (m *Memory) Suggestions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	topic := ""
	if len(m.recentTopics) > 0 {
		topic = m.recentTopics[0]
	}

	switch topic {
	case domain.ActionBalance:
		out = append(out, "Swap 1 SOL to USDC", "Show my transaction history")
	case domain.ActionTokenInfo:
		tok := m.lastInterestingToken()
		out = append(out, "Swap 1 SOL to "+tok, "What's trending today?")
	case domain.ActionMarketTrends:
		tok := m.lastInterestingToken()
		out = append(out, "Tell me about "+tok, "Check my balance")
	case domain.ActionHistory:
		out = append(out, "Check my balance", "What's trending today?")
	case domain.ActionSwap:
		out = append(out, "Check my balance", "Show my transaction history")
	}

	for _, generic := range []string{"Check my balance", "What's trending today?", "Tell me about SOL"} {
		if len(out) >= maxSuggestions {
			break
		}
		if !containsString(out, generic) {
			out = append(out, generic)
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// lastInterestingToken prefers the most recent non-native token; the native
// asset only shows up when nothing else has been discussed.
func (m *Memory) lastInterestingToken() string {
	if len(m.recentTokens) > 0 && m.recentTokens[0] != domain.NativeSymbol {
		return m.recentTokens[0]
	}
	if len(m.favoriteTokens) > 0 {
		return m.favoriteTokens[0]
	}
	return "USDC"
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Tip returns at most one personalized tip per call. Candidates are tried in
// declared order; each draws its own probability gate and must pass its
// context gate.
func (m *Memory) Tip(reqCtx *domain.RequestContext) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type candidate struct {
		applies bool
		text    string
	}
	candidates := []candidate{
		{
			applies: reqCtx != nil && reqCtx.WalletConnected && reqCtx.Balance > 0 && reqCtx.Balance < 0.01,
			text:    "Heads up: your SOL balance is running low. Keep a little SOL around for network fees.",
		},
		{
			applies: m.hasTopic(domain.ActionTokenInfo) && !m.hasTopic(domain.ActionSwap),
			text:    "You can swap straight from chat. Try \"Swap 1 SOL to USDC\".",
		},
		{
			applies: m.hasTopic(domain.ActionBalance) && !m.hasTopic(domain.ActionHistory),
			text:    "Ask for your transaction history to see where your funds have been going.",
		},
	}

	for _, c := range candidates {
		if !c.applies {
			continue
		}
		if m.rng.Float64() < m.tipProbability {
			return c.text, true
		}
	}
	return "", false
}

func (m *Memory) hasTopic(topic string) bool {
	for _, t := range m.recentTopics {
		if t == topic {
			return true
		}
	}
	return false
}
