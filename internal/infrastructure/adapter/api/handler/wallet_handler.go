package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
)

// WalletHandler handles wallet reads and the health probe
type WalletHandler struct {
	wallet usecase.WalletUseCase
	db     Pinger
	logger coreport.Logger
}

// Pinger checks database reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(wallet usecase.WalletUseCase, db Pinger, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		wallet: wallet,
		db:     db,
		logger: logger,
	}
}

// GetBalance handles GET /user/balance for the authenticated caller
func (h *WalletHandler) GetBalance(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, h.logger, "get_balance", unauthenticated())
		return
	}

	balance, err := h.wallet.GetBalance(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, h.logger, "get_balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		CreditBalance: balance.CreditBalance,
		RemainingTime: balance.RemainingTime,
	})
}

// Health handles GET /health
func (h *WalletHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok"})
}

func unauthenticated() error {
	return domainerr.ErrUnauthorized
}
