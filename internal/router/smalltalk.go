package router

import (
	"math/rand"
	"regexp"
)

// chatCategory pairs a small pattern set with a pool of canned replies. The
// category a prompt resolves to is deterministic; the reply within the pool
// is a random draw.
type chatCategory struct {
	name     string
	patterns []*regexp.Regexp
	pool     []string
}

type smallTalker struct {
	rng        *rand.Rand
	categories []chatCategory
}

func newSmallTalker(rng *rand.Rand) *smallTalker {
	return &smallTalker{
		rng: rng,
		categories: []chatCategory{
			{
				name: "greeting",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)^\s*(?:hi|hey|hello|yo|gm|good\s+(?:morning|afternoon|evening))\b`),
				},
				pool: []string{
					"Hey! Ready to look at your wallet?",
					"Hello! What can I help you with today?",
					"Hi there! Balances, swaps, transfers: take your pick.",
				},
			},
			{
				name: "farewell",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)^\s*(?:bye|goodbye|see\s+you|later|gn|good\s*night)\b`),
				},
				pool: []string{
					"See you around. Your wallet will be right here.",
					"Bye! Come back any time.",
				},
			},
			{
				name: "thanks",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(?:thanks|thank\s+you|thx|ty)\b`),
				},
				pool: []string{
					"Any time!",
					"Happy to help.",
					"You're welcome, that's what I'm here for.",
				},
			},
			{
				name: "identity",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bwho\s+are\s+you\b`),
					regexp.MustCompile(`(?i)\bwhat\s+are\s+you\b`),
				},
				pool: []string{
					"I'm your wallet copilot. I read balances, set up swaps and transfers, and keep an eye on the market for you.",
				},
			},
			{
				name: "capabilities",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bwhat\s+can\s+you\s+do\b`),
					regexp.MustCompile(`(?i)\bhelp\s*$`),
				},
				pool: []string{
					"I can check your balance, swap tokens, send transfers, describe tokens, summarize market trends and pull up your transaction history. Just ask in plain words.",
				},
			},
			{
				name: "joke",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(?:tell\s+me\s+a\s+)?joke\b`),
					regexp.MustCompile(`(?i)\bmake\s+me\s+laugh\b`),
				},
				pool: []string{
					"Why did the crypto trader bring a ladder? To get to the next level of support.",
					"My seed phrase is 'correct horse battery staple'... just kidding. Never tell anyone your seed phrase. Even me.",
				},
			},
		},
	}
}

// Reply resolves the prompt to a category (in declared order) and draws one
// reply from its pool.
func (s *smallTalker) Reply(prompt string) (string, bool) {
	for _, cat := range s.categories {
		for _, p := range cat.patterns {
			if p.MatchString(prompt) {
				return cat.pool[s.rng.Intn(len(cat.pool))], true
			}
		}
	}
	return "", false
}

// Category reports which pool a prompt would draw from, without drawing.
func (s *smallTalker) Category(prompt string) (string, bool) {
	for _, cat := range s.categories {
		for _, p := range cat.patterns {
			if p.MatchString(prompt) {
				return cat.name, true
			}
		}
	}
	return "", false
}
