package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
	coremocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/core"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newQuietLogger(t *testing.T) *coremocks.MockLogger {
	log := coremocks.NewMockLogger(t)
	log.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	log.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	log.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	log.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return log
}

func bearer(t *testing.T, userID uint64, isAdmin bool) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func authed(t *testing.T) gin.HandlerFunc {
	return middleware.Auth(middleware.AuthConfig{Secret: testSecret}, newQuietLogger(t))
}

type apiRequest struct {
	method      string
	path        string
	body        string
	contentType string
	auth        string
}

func serve(router *gin.Engine, req apiRequest) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if req.body != "" {
		body = bytes.NewBufferString(req.body)
	} else {
		body = &bytes.Buffer{}
	}

	r := httptest.NewRequest(req.method, req.path, body)
	if req.contentType != "" {
		r.Header.Set("Content-Type", req.contentType)
	} else if req.body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.auth != "" {
		r.Header.Set("Authorization", req.auth)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
