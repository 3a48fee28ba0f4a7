package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domainerr "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
)

const principalKey = "principal"

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	Secret string
	Issuer string // optional
}

// Auth verifies an HS256 bearer token and stores the principal on the context.
// The user ID comes from the user_id claim, falling back to sub.
func Auth(cfg AuthConfig, logger coreport.Logger) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(cfg.Secret)

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return key, nil
		}); err != nil {
			logger.Debug("Rejected bearer token", map[string]any{
				"error":      err.Error(),
				"request_id": coreport.RequestIDFromContext(c.Request.Context()),
			})
			abortUnauthorized(c)
			return
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			logger.Debug("Bearer token has no usable subject", map[string]any{
				"error": err.Error(),
			})
			abortUnauthorized(c)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Auth
func PrincipalFrom(c *gin.Context) (usecase.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return usecase.Principal{}, false
	}
	principal, ok := v.(usecase.Principal)
	return principal, ok && principal.UserID != 0
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principalFromClaims(claims jwt.MapClaims) (usecase.Principal, error) {
	userID, err := claimUserID(claims)
	if err != nil {
		return usecase.Principal{}, err
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return usecase.Principal{UserID: userID, IsAdmin: isAdmin}, nil
}

func claimUserID(claims jwt.MapClaims) (uint64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		if v > 0 && v == float64(uint64(v)) {
			return uint64(v), nil
		}
		return 0, fmt.Errorf("invalid user_id claim %v", v)
	case string:
		return parseUserID(v)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}
	return parseUserID(sub)
}

func parseUserID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("subject is not a positive user id")
	}
	return id, nil
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:      domainerr.ErrorCode(domainerr.ErrUnauthorized),
		Message:   "Unauthenticated",
		RequestID: coreport.RequestIDFromContext(c.Request.Context()),
	})
}
