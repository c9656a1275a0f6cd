package handler

import (
	"net/http"
	"strings"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type chatWallet struct {
	Connected     bool                  `json:"connected"`
	Address       string                `json:"address"`
	Balance       float64               `json:"balance"`
	TokenBalances []domain.TokenBalance `json:"token_balances"`
}

type chatOptions struct {
	MarketData   bool   `json:"market_data"`
	TokenData    bool   `json:"token_data"`
	FullAnalysis bool   `json:"full_analysis"`
	Expertise    string `json:"expertise"`
}

type chatRequest struct {
	SessionID string      `json:"session_id" binding:"required"`
	Message   string      `json:"message" binding:"required"`
	Wallet    *chatWallet `json:"wallet"`
	Options   chatOptions `json:"options"`
}

// Chat runs one assistant turn. The caller reports the current wallet
// snapshot inline; the response always carries a message and may carry an
// intent, suggestions and a data bag.
func (h *Handler) Chat(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.chat")
	defer span.End()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and message are required"})
		return
	}
	span.SetAttributes(attribute.String("session_id", req.SessionID))

	if req.Wallet != nil {
		h.walletStates.Update(req.SessionID, domain.RequestContext{
			WalletConnected: req.Wallet.Connected,
			WalletAddress:   req.Wallet.Address,
			Balance:         req.Wallet.Balance,
			TokenBalances:   req.Wallet.TokenBalances,
		})
	}

	opts := service.ProcessOptions{
		IncludeMarketData: req.Options.MarketData,
		IncludeTokenData:  req.Options.TokenData,
		FullAnalysis:      req.Options.FullAnalysis,
		Expertise:         parseExpertise(req.Options.Expertise),
	}

	resp := h.assistant.ProcessMessage(ctx, req.SessionID, req.Message, opts)
	c.JSON(http.StatusOK, resp)
}

// EndSession tears down conversation memory and wallet state for a session.
func (h *Handler) EndSession(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}
	h.assistant.EndSession(sessionID)
	h.walletStates.Forget(sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func parseExpertise(raw string) domain.ExpertiseLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(domain.ExpertiseIntermediate):
		return domain.ExpertiseIntermediate
	case string(domain.ExpertiseAdvanced):
		return domain.ExpertiseAdvanced
	default:
		return domain.ExpertiseBeginner
	}
}
