package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler middleware recovers from panics and returns a JSON 500
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": coreport.RequestIDFromContext(c.Request.Context()),
					"user_agent": c.Request.UserAgent(),
					"stack":      string(debug.Stack()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:      domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message:   "Internal server error",
					RequestID: coreport.RequestIDFromContext(c.Request.Context()),
				})
			}
		}()

		c.Next()
	}
}

// NoRoute answers unknown paths with the standard error body
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Code:      http.StatusNotFound,
		Message:   "Route not found",
		RequestID: coreport.RequestIDFromContext(c.Request.Context()),
	})
}
