package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"wallet-copilot/internal/bot"
	"wallet-copilot/internal/cache"
	"wallet-copilot/internal/catalog"
	"wallet-copilot/internal/config"
	"wallet-copilot/internal/db"
	"wallet-copilot/internal/handler"
	"wallet-copilot/internal/history"
	"wallet-copilot/internal/job"
	"wallet-copilot/internal/llm"
	"wallet-copilot/internal/memory"
	"wallet-copilot/internal/provider"
	"wallet-copilot/internal/repository"
	"wallet-copilot/internal/router"
	"wallet-copilot/internal/service"
	"wallet-copilot/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc             = godotenv.Load
	loadConfigFunc          = config.Load
	initPostgresFunc        = db.InitPostgres
	initRedisFunc           = cache.InitRedis
	initTracerFunc          = tracing.InitTracer
	newConversationRepoFunc = func(pool repository.Pool, tracer trace.Tracer) service.TranscriptStore {
		return repository.NewConversationRepository(pool, tracer)
	}
	runMigrationsFunc = func(ctx context.Context, store service.TranscriptStore) error {
		if repo, ok := store.(*repository.ConversationRepository); ok {
			return repo.RunMigrations(ctx)
		}
		return nil
	}
	newCoinGeckoProviderFunc = func(tracer trace.Tracer) service.PriceProvider {
		return provider.NewCoinGeckoProvider(tracer)
	}
	newGeneratorFunc = func(tracer trace.Tracer, apiKey, model string, maxHistory int) service.ResponseGenerator {
		return llm.NewGenerator(tracer, apiKey, model, maxHistory)
	}
	newPricePollerFunc     = job.NewPricePoller
	startPollerFunc        = func(p *job.PricePoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Transcripts persist only when a database is configured
	var transcripts service.TranscriptStore
	if db.Pool != nil {
		transcripts = newConversationRepoFunc(db.Pool, tracer)
		if err := runMigrationsFunc(ctx, transcripts); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Prices, history and the operation catalog
	cgProvider := newCoinGeckoProviderFunc(tracer)
	priceService := service.NewPriceService(tracer, cgProvider, cache.Client)
	priceService.SetTTL(time.Duration(cfg.PriceCacheSecs) * time.Second)

	historyService := history.NewService(tracer, nil)
	cat := catalog.New(catalog.Deps{
		Prices:  priceService,
		History: historyService,
	})

	sessions := memory.NewStore()
	sessions.SetTipProbability(cfg.TipProbability)
	rt := router.New(tracer, cat, sessions)

	var generator service.ResponseGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = newGeneratorFunc(tracer, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}

	walletStates := service.NewWalletStateStore()
	assistant := service.NewAssistantService(
		tracer, rt, sessions, walletStates, transcripts, generator, priceService, cfg.AdvisorMaxHistory,
	)

	// Background price poller (stopped by ctx cancel)
	poller := newPricePollerFunc(tracer, priceService, cfg.PricePollSecs)
	startPollerFunc(poller, ctx)

	// Telegram surface
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(assistant, priceService)

	// HTTP surface
	h := newHandlerFunc(tracer, assistant, priceService, walletStates)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("wallet-copilot"))
	r.Use(cors.Default())
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
