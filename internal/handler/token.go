package handler

import (
	"net/http"
	"strings"

	"wallet-copilot/internal/registry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetTokens(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-tokens")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"tokens": registry.All()})
}

func (h *Handler) GetToken(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-token")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	span.SetAttributes(attribute.String("symbol", symbol))

	td, ok := registry.Lookup(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": registry.Symbols(),
		})
		return
	}
	c.JSON(http.StatusOK, td)
}

func (h *Handler) GetPrice(c *gin.Context) {
	if h.priceService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "price service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if !registry.IsSupported(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": registry.Symbols(),
		})
		return
	}

	snapshot, err := h.priceService.GetCurrentPrice(ctx, symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
