package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/guard"
	"wallet-copilot/internal/registry"
)

func handleBalance(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	if reqCtx == nil || !reqCtx.WalletConnected {
		return &domain.AssistantResponse{
			Message:     "Connect your wallet and I'll show you exactly what's in it.",
			Suggestions: []string{"What can you do?", "What's trending today?"},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your wallet holds %s SOL", formatAmount(reqCtx.Balance))
	if snap := fetchPrice(ctx, deps, domain.NativeSymbol); snap != nil {
		fmt.Fprintf(&b, " (about $%.2f)", reqCtx.Balance*snap.PriceUSD)
	}
	b.WriteString(".")
	if len(reqCtx.TokenBalances) > 0 {
		b.WriteString(" Other tokens:")
		for _, tb := range reqCtx.TokenBalances {
			fmt.Fprintf(&b, " %s %s,", formatAmount(tb.Amount), tb.Symbol)
		}
	}
	return &domain.AssistantResponse{
		Message: strings.TrimSuffix(b.String(), ","),
	}
}

func handleSwap(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	amountText, from, to := match[1], strings.ToUpper(match[2]), strings.ToUpper(match[3])

	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 {
		return &domain.AssistantResponse{
			Message:     fmt.Sprintf("%q isn't an amount I can work with. Try something like \"Swap 1 SOL to USDC\".", amountText),
			Suggestions: []string{"Swap 1 SOL to USDC"},
		}
	}
	if !registry.IsSupported(from) || !registry.IsSupported(to) {
		unknown := from
		if registry.IsSupported(from) {
			unknown = to
		}
		return &domain.AssistantResponse{
			Message: fmt.Sprintf(
				"I don't know the token %s. I can swap between: %s.",
				unknown, strings.Join(registry.Symbols(), ", "),
			),
		}
	}
	if from == to {
		return &domain.AssistantResponse{
			Message: fmt.Sprintf("Swapping %s for itself wouldn't get you anywhere. Pick two different tokens.", from),
		}
	}

	msg := fmt.Sprintf("Setting up a swap of %s %s to %s.", formatAmount(amount), from, to)
	if snap := fetchPrice(ctx, deps, from); snap != nil {
		msg += fmt.Sprintf(" At current prices that's roughly $%.2f.", amount*snap.PriceUSD)
	}
	msg += " Review the quote in your wallet before approving."

	return &domain.AssistantResponse{
		Message: msg,
		Intent: &domain.Intent{
			Action: domain.ActionSwap,
			Swap: &domain.SwapIntent{
				FromToken: from,
				Token:     to,
				Price:     amount,
			},
		},
		Suggestions: []string{"Check my balance", "Show my transaction history"},
	}
}

func handleTransfer(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	amountText, token := match[1], match[2]
	raw := ""
	if reqCtx != nil {
		raw = reqCtx.Prompt
	}
	return guard.ValidateTransfer(amountText, token, raw, reqCtx)
}

func handleTokenInfo(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	symbol := strings.ToUpper(match[1])
	td, ok := registry.Lookup(symbol)
	if !ok {
		return &domain.AssistantResponse{
			Message: fmt.Sprintf(
				"I don't have %s in my books. Tokens I know: %s.",
				symbol, strings.Join(registry.Symbols(), ", "),
			),
			Suggestions: []string{"Tell me about SOL", "What's trending today?"},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) is a %s launched in %d. %s", td.Name, td.Symbol, td.Category, td.LaunchYear, td.Description)
	fmt.Fprintf(&b, " It usually trades in the %s range and sentiment is %s.", td.PriceRange, td.Sentiment)
	if len(td.Trends) > 0 {
		fmt.Fprintf(&b, " Worth watching: %s.", strings.Join(td.Trends, ", "))
	}

	resp := &domain.AssistantResponse{Message: b.String()}
	if snap := fetchPrice(ctx, deps, td.Symbol); snap != nil {
		resp.MergeData(map[string]any{
			"token": td,
			"price": snap,
		})
		resp.Message += fmt.Sprintf(" Right now it's at $%.4f (%+.2f%% over 24h).", snap.PriceUSD, snap.Change24hPct)
	} else {
		resp.MergeData(map[string]any{"token": td})
	}
	return resp
}

func handleMarketTrends(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	var b strings.Builder
	b.WriteString("Here's the market at a glance.")

	var snapshots []*domain.PriceSnapshot
	for _, sym := range []string{"SOL", "JUP", "BONK", "WIF"} {
		if snap := fetchPrice(ctx, deps, sym); snap != nil {
			snapshots = append(snapshots, snap)
			fmt.Fprintf(&b, " %s: $%.4f (%+.2f%%).", snap.Symbol, snap.PriceUSD, snap.Change24hPct)
		}
	}
	if len(snapshots) == 0 {
		b.WriteString(" Live prices are unavailable right now, but sentiment-wise:")
		for _, sym := range []string{"SOL", "JUP", "BONK"} {
			if td, ok := registry.Lookup(sym); ok {
				fmt.Fprintf(&b, " %s is %s.", td.Symbol, td.Sentiment)
			}
		}
	}

	resp := &domain.AssistantResponse{Message: b.String()}
	if len(snapshots) > 0 {
		resp.MergeData(map[string]any{"market": snapshots})
	}
	return resp
}

func handleHistory(ctx context.Context, match []string, reqCtx *domain.RequestContext, deps *Deps) *domain.AssistantResponse {
	if reqCtx == nil || !reqCtx.WalletConnected {
		return &domain.AssistantResponse{
			Message:     "Connect your wallet first and I'll pull up your transaction history.",
			Suggestions: []string{"What can you do?"},
		}
	}
	if deps == nil || deps.History == nil {
		return &domain.AssistantResponse{
			Message: "Transaction history isn't available right now. Try again in a bit.",
		}
	}

	filter := deps.History.ParseDateQuery(reqCtx.Prompt)
	txs, err := deps.History.Query(ctx, reqCtx.WalletAddress, filter)
	if err != nil {
		return &domain.AssistantResponse{
			Message: "I couldn't reach the transaction history service. Your funds are fine; try again in a moment.",
		}
	}
	if len(txs) == 0 {
		return &domain.AssistantResponse{
			Message: "No transactions found for that period.",
		}
	}

	return &domain.AssistantResponse{
		Message: deps.History.FormatForDisplay(txs),
		Data:    map[string]any{"transactions": txs},
	}
}

// fetchPrice is the degrade-gracefully price lookup used for enrichment. A
// nil return means the reply simply goes out without price data.
func fetchPrice(ctx context.Context, deps *Deps, symbol string) *domain.PriceSnapshot {
	if deps == nil || deps.Prices == nil {
		return nil
	}
	snap, err := deps.Prices.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return nil
	}
	return snap
}

func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
