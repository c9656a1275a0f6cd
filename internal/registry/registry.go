// Package registry holds the static token universe the assistant can talk
// about. Pure data, no mutation after load.
package registry

import (
	"sort"
	"strings"

	"wallet-copilot/internal/domain"
)

var tokens = map[string]domain.TokenDescriptor{
	"SOL": {
		Symbol:      "SOL",
		Name:        "Solana",
		Decimals:    9,
		Category:    "Layer 1",
		Description: "Native asset of the Solana network, used for fees, staking and as the base pair for most swaps.",
		PriceRange:  "high double digits to low hundreds USD",
		Sentiment:   "broadly bullish with high volatility",
		Trends:      []string{"staking growth", "DeFi TVL", "validator count"},
		LaunchYear:  2020,
	},
	"USDC": {
		Symbol:      "USDC",
		Name:        "USD Coin",
		Decimals:    6,
		Category:    "Stablecoin",
		Description: "Fully-reserved USD stablecoin, the most common quote asset for swaps and payments on Solana.",
		PriceRange:  "pegged to 1 USD",
		Sentiment:   "neutral by design",
		Trends:      []string{"on-chain volume", "peg stability"},
		LaunchYear:  2018,
	},
	"USDT": {
		Symbol:      "USDT",
		Name:        "Tether",
		Decimals:    6,
		Category:    "Stablecoin",
		Description: "Largest stablecoin by supply, widely used for trading pairs and cross-exchange settlement.",
		PriceRange:  "pegged to 1 USD",
		Sentiment:   "neutral by design",
		Trends:      []string{"supply growth", "peg stability"},
		LaunchYear:  2014,
	},
	"JUP": {
		Symbol:      "JUP",
		Name:        "Jupiter",
		Decimals:    6,
		Category:    "DEX token",
		Description: "Governance token of Jupiter, the leading swap aggregator on Solana routing most on-chain trades.",
		PriceRange:  "under a few USD",
		Sentiment:   "constructive, tracks DEX volume",
		Trends:      []string{"aggregator volume", "governance activity", "perps rollout"},
		LaunchYear:  2024,
	},
	"BONK": {
		Symbol:      "BONK",
		Name:        "Bonk",
		Decimals:    5,
		Category:    "Meme coin",
		Description: "Community meme coin distributed broadly to Solana users; high-beta sentiment proxy for the ecosystem.",
		PriceRange:  "fractions of a cent",
		Sentiment:   "speculative, sentiment driven",
		Trends:      []string{"social volume", "burn events"},
		LaunchYear:  2022,
	},
	"WIF": {
		Symbol:      "WIF",
		Name:        "dogwifhat",
		Decimals:    6,
		Category:    "Meme coin",
		Description: "Meme coin centered on a dog in a hat; one of the highest-volume meme assets on Solana.",
		PriceRange:  "low single digit USD",
		Sentiment:   "speculative, sentiment driven",
		Trends:      []string{"social volume", "exchange listings"},
		LaunchYear:  2023,
	},
	"PYTH": {
		Symbol:      "PYTH",
		Name:        "Pyth Network",
		Decimals:    6,
		Category:    "Oracle",
		Description: "Token of the Pyth price oracle network publishing low-latency market data to Solana and other chains.",
		PriceRange:  "under 1 USD",
		Sentiment:   "constructive, tracks integrations",
		Trends:      []string{"price feeds shipped", "chains integrated"},
		LaunchYear:  2023,
	},
	"RAY": {
		Symbol:      "RAY",
		Name:        "Raydium",
		Decimals:    6,
		Category:    "DEX token",
		Description: "Token of Raydium, an AMM providing much of the base liquidity for new Solana tokens.",
		PriceRange:  "low single digit USD",
		Sentiment:   "tracks AMM volume",
		Trends:      []string{"pool launches", "AMM volume"},
		LaunchYear:  2021,
	},
	"ORCA": {
		Symbol:      "ORCA",
		Name:        "Orca",
		Decimals:    6,
		Category:    "DEX token",
		Description: "Token of Orca, a concentrated-liquidity DEX known for its simple swap interface.",
		PriceRange:  "low single digit USD",
		Sentiment:   "tracks DEX volume",
		Trends:      []string{"CLMM liquidity", "fee revenue"},
		LaunchYear:  2021,
	},
	"JTO": {
		Symbol:      "JTO",
		Name:        "Jito",
		Decimals:    9,
		Category:    "Liquid staking",
		Description: "Governance token of Jito, the largest liquid-staking and MEV infrastructure provider on Solana.",
		PriceRange:  "low single digit USD",
		Sentiment:   "tracks staking flows",
		Trends:      []string{"stake pool growth", "MEV tips"},
		LaunchYear:  2023,
	},
}

// CoinGeckoID maps registry symbols to CoinGecko API identifiers for the
// price provider.
var CoinGeckoID = map[string]string{
	"SOL":  "solana",
	"USDC": "usd-coin",
	"USDT": "tether",
	"JUP":  "jupiter-exchange-solana",
	"BONK": "bonk",
	"WIF":  "dogwifcoin",
	"PYTH": "pyth-network",
	"RAY":  "raydium",
	"ORCA": "orca",
	"JTO":  "jito-governance-token",
}

// Lookup returns the descriptor for a symbol, case-insensitively.
func Lookup(symbol string) (domain.TokenDescriptor, bool) {
	td, ok := tokens[strings.ToUpper(strings.TrimSpace(symbol))]
	return td, ok
}

func IsSupported(symbol string) bool {
	_, ok := tokens[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Symbols returns all registry symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(tokens))
	for sym := range tokens {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// All returns every descriptor, sorted by symbol.
func All() []domain.TokenDescriptor {
	out := make([]domain.TokenDescriptor, 0, len(tokens))
	for _, sym := range Symbols() {
		out = append(out, tokens[sym])
	}
	return out
}
