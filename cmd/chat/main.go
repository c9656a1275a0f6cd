package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"wallet-copilot/internal/catalog"
	"wallet-copilot/internal/config"
	"wallet-copilot/internal/history"
	"wallet-copilot/internal/llm"
	"wallet-copilot/internal/memory"
	"wallet-copilot/internal/provider"
	"wallet-copilot/internal/router"
	"wallet-copilot/internal/service"
	"wallet-copilot/internal/tui"
	"wallet-copilot/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// Standalone terminal client: everything in-process, no server required.
func main() {
	godotenv.Load()
	log.SetOutput(os.Stderr)

	cfg := config.Load()
	ctx := context.Background()

	_, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}

	cgProvider := provider.NewCoinGeckoProvider(tracer)
	priceService := service.NewPriceService(tracer, cgProvider, nil)

	cat := catalog.New(catalog.Deps{
		Prices:  priceService,
		History: history.NewService(tracer, nil),
	})
	sessions := memory.NewStore()
	sessions.SetTipProbability(cfg.TipProbability)
	rt := router.New(tracer, cat, sessions)

	var generator service.ResponseGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = llm.NewGenerator(tracer, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}

	walletStates := service.NewWalletStateStore()
	assistant := service.NewAssistantService(
		tracer, rt, sessions, walletStates, nil, generator, priceService, cfg.AdvisorMaxHistory,
	)

	sessionID := fmt.Sprintf("tui:%d", time.Now().UnixNano())
	model := tui.NewChatModel(assistant, sessionID)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("chat exited with error: %v", err)
	}
}
