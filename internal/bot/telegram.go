package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/registry"
	"wallet-copilot/internal/service"

	tele "gopkg.in/telebot.v3"
)

type PriceQuerier interface {
	GetCurrentPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
}

type Assistant interface {
	ProcessMessage(ctx context.Context, sessionID, text string, opts service.ProcessOptions) *domain.AssistantResponse
}

func StartTelegramBot(assistant Assistant, priceService PriceQuerier) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/start", func(c tele.Context) error {
		return c.Send("Hi! I'm your wallet copilot. Ask me about balances, swaps, token info, market trends or transaction history, in plain words.")
	})

	b.Handle("/balance", balanceHandler(assistant))

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price SOL\nSupported: %s", strings.Join(registry.Symbols(), ", ")))
		}
		symbol := strings.ToUpper(args[0])
		if !registry.IsSupported(symbol) {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(registry.Symbols(), ", ")))
		}
		snapshot, err := priceService.GetCurrentPrice(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", symbol, err))
		}
		msg := fmt.Sprintf(
			"%s\nPrice: $%.4f\n24h Change: %.2f%%\n24h Volume: $%.0f",
			symbol, snapshot.PriceUSD, snapshot.Change24hPct, snapshot.Volume24h,
		)
		return c.Send(msg)
	})

	b.Handle("/tokens", func(c tele.Context) error {
		var lines []string
		for _, td := range registry.All() {
			lines = append(lines, fmt.Sprintf("%s - %s (%s)", td.Symbol, td.Name, td.Category))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return nil
		}
		return handleAssistantQuery(c, assistant, text)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

// balanceHandler answers /balance by asking the orchestrator, so the reply
// reflects the chat's wallet session rather than a static lookup.
func balanceHandler(assistant Assistant) tele.HandlerFunc {
	return func(c tele.Context) error {
		return handleAssistantQuery(c, assistant, "check my balance")
	}
}

func handleAssistantQuery(c tele.Context, assistant Assistant, text string) error {
	_ = c.Notify(tele.Typing)

	sessionID := "tg:" + strconv.FormatInt(c.Chat().ID, 10)
	resp := assistant.ProcessMessage(context.Background(), sessionID, text, service.ProcessOptions{})
	return c.Send(formatReply(resp))
}

// formatReply renders an assistant response as a single Telegram message,
// within the message size limit.
func formatReply(resp *domain.AssistantResponse) string {
	reply := resp.Message
	if len(resp.Suggestions) > 0 {
		reply += "\n\nTry: " + strings.Join(resp.Suggestions, " | ")
	}
	if len(reply) > 4000 {
		reply = reply[:4000] + "\n\n[truncated]"
	}
	return reply
}
