package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
)

// statusFor maps a domain error to its HTTP status and a client-safe message
func statusFor(err error) (int, string) {
	switch {
	case domainerr.IsValidationError(err):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domainerr.ErrUnsupportedGateway):
		return http.StatusUnprocessableEntity, "Unsupported gateway"
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthenticated"
	case errors.Is(err, domainerr.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domainerr.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		return http.StatusNotFound, "Transaction not found"
	case errors.Is(err, domainerr.ErrCallbackInProgress):
		return http.StatusConflict, "Callback is already being processed"
	case errors.Is(err, domainerr.ErrDuplicateAuthority):
		return http.StatusConflict, "Authority already in use"
	case errors.Is(err, domainerr.ErrInvalidStatusTransition):
		return http.StatusConflict, "Transaction is not pending"
	case errors.Is(err, domainerr.ErrVerificationFailed):
		return http.StatusUnprocessableEntity, "Payment verification failed"
	case errors.Is(err, domainerr.ErrGatewayStartFailed):
		return http.StatusBadGateway, "Payment gateway rejected the request"
	case errors.Is(err, domainerr.ErrGatewayTransport):
		return http.StatusBadGateway, "Payment gateway unavailable"
	case errors.Is(err, domainerr.ErrDatabaseConnection):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the JSON error body; server-side failures are logged
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status, message := statusFor(err)

	fields := map[string]any{
		"operation":  operation,
		"status":     status,
		"error":      err.Error(),
		"error_code": domainerr.ErrorCode(err),
		"request_id": coreport.RequestIDFromContext(c.Request.Context()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Debug("Request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:      domainerr.ErrorCode(err),
		Message:   message,
		RequestID: coreport.RequestIDFromContext(c.Request.Context()),
	})
}

// respondBadRequest reports a body that could not be bound
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Code:      domainerr.CodeValidation,
		Message:   "Invalid request format: " + err.Error(),
		RequestID: coreport.RequestIDFromContext(c.Request.Context()),
	})
}
