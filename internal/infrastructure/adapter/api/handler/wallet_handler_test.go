package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	usecasemocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/usecase"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newWalletRouter(t *testing.T, wallet *usecasemocks.MockWalletUseCase, db Pinger) *gin.Engine {
	h := NewWalletHandler(wallet, db, newQuietLogger(t))
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/api/user/balance", authed(t), h.GetBalance)
	return router
}

func TestWalletHandler_GetBalance(t *testing.T) {
	healthy := pingerFunc(func(context.Context) error { return nil })

	t.Run("returns the caller's balance", func(t *testing.T) {
		wallet := usecasemocks.NewMockWalletUseCase(t)
		wallet.EXPECT().GetBalance(mock.Anything, uint64(7)).
			Return(&entity.WalletBalance{CreditBalance: "20000.00", RemainingTime: 30}, nil).
			Once()

		w := serve(newWalletRouter(t, wallet, healthy), apiRequest{
			method: http.MethodGet,
			path:   "/api/user/balance",
			auth:   bearer(t, 7, false),
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "20000.00", body["credit_balance"])
		assert.Equal(t, float64(30), body["remaining_time"])
	})

	t.Run("unknown user", func(t *testing.T) {
		wallet := usecasemocks.NewMockWalletUseCase(t)
		wallet.EXPECT().GetBalance(mock.Anything, uint64(7)).Return(nil, domainerr.ErrUserNotFound).Once()

		w := serve(newWalletRouter(t, wallet, healthy), apiRequest{
			method: http.MethodGet,
			path:   "/api/user/balance",
			auth:   bearer(t, 7, false),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects a bad token", func(t *testing.T) {
		wallet := usecasemocks.NewMockWalletUseCase(t)

		w := serve(newWalletRouter(t, wallet, healthy), apiRequest{
			method: http.MethodGet,
			path:   "/api/user/balance",
			auth:   "Bearer not-a-jwt",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWalletHandler_Health(t *testing.T) {
	wallet := usecasemocks.NewMockWalletUseCase(t)

	w := serve(newWalletRouter(t, wallet, pingerFunc(func(context.Context) error { return nil })),
		apiRequest{method: http.MethodGet, path: "/health"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["database"])

	w = serve(newWalletRouter(t, wallet, pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") })),
		apiRequest{method: http.MethodGet, path: "/health"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unreachable", decodeBody(t, w)["database"])
}

func TestAdminHandler_Recharge(t *testing.T) {
	newRouter := func(t *testing.T, payments *usecasemocks.MockPaymentUseCase) *gin.Engine {
		h := NewAdminHandler(payments, newQuietLogger(t))
		router := gin.New()
		router.POST("/api/admin/recharge", authed(t), h.Recharge)
		return router
	}

	t.Run("credits the target user", func(t *testing.T) {
		payments := usecasemocks.NewMockPaymentUseCase(t)
		payments.EXPECT().
			AdminRecharge(mock.Anything, usecase.Principal{UserID: 1, IsAdmin: true}, usecase.AdminRechargeRequest{
				UserID:      9,
				Amount:      2500,
				Description: "support credit",
			}).
			Return(&usecase.AdminRechargeResult{TransactionID: 30, UserID: 9, Balance: "2500.00"}, nil).
			Once()

		w := serve(newRouter(t, payments), apiRequest{
			method: http.MethodPost,
			path:   "/api/admin/recharge",
			body:   `{"user_id":9,"amount":2500,"description":"support credit"}`,
			auth:   bearer(t, 1, true),
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "2500.00", body["balance"])
		assert.Equal(t, float64(30), body["transaction_id"])
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		payments := usecasemocks.NewMockPaymentUseCase(t)
		payments.EXPECT().AdminRecharge(mock.Anything, usecase.Principal{UserID: 7}, mock.Anything).
			Return(nil, domainerr.ErrForbidden).
			Once()

		w := serve(newRouter(t, payments), apiRequest{
			method: http.MethodPost,
			path:   "/api/admin/recharge",
			body:   `{"user_id":9,"amount":2500}`,
			auth:   bearer(t, 7, false),
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing user id", func(t *testing.T) {
		payments := usecasemocks.NewMockPaymentUseCase(t)

		w := serve(newRouter(t, payments), apiRequest{
			method: http.MethodPost,
			path:   "/api/admin/recharge",
			body:   `{"amount":2500}`,
			auth:   bearer(t, 1, true),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
