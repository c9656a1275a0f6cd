package handler

import (
	"net/http"

	"wallet-copilot/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer       trace.Tracer
	assistant    *service.AssistantService
	priceService *service.PriceService
	walletStates *service.WalletStateStore
}

func New(
	tracer trace.Tracer,
	assistant *service.AssistantService,
	priceService *service.PriceService,
	walletStates *service.WalletStateStore,
) *Handler {
	return &Handler{
		tracer:       tracer,
		assistant:    assistant,
		priceService: priceService,
		walletStates: walletStates,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/chat", h.Chat)
	r.DELETE("/api/sessions/:id", h.EndSession)
	r.GET("/api/tokens", h.GetTokens)
	r.GET("/api/tokens/:symbol", h.GetToken)
	r.GET("/api/prices/:symbol", h.GetPrice)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
