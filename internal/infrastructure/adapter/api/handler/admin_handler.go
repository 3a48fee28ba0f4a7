package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler handles operator-only endpoints
type AdminHandler struct {
	payments usecase.PaymentUseCase
	logger   coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(payments usecase.PaymentUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		payments: payments,
		logger:   logger,
	}
}

// Recharge handles POST /admin/recharge
func (h *AdminHandler) Recharge(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, h.logger, "admin_recharge", unauthenticated())
		return
	}

	var req dto.AdminRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.payments.AdminRecharge(c.Request.Context(), principal, usecase.AdminRechargeRequest{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "admin_recharge", err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminRechargeResponse{
		Message:       "Balance recharged",
		TransactionID: res.TransactionID,
		UserID:        res.UserID,
		Balance:       res.Balance,
	})
}
