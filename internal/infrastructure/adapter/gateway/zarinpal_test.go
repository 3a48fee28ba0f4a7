package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/config"
)

func newZarinpalServer(t *testing.T, handler http.HandlerFunc) *Zarinpal {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewZarinpal(config.ZarinpalConfig{
		MerchantID:  "merchant-1",
		BaseURL:     server.URL,
		GatewayBase: "https://www.zarinpal.com/pg/StartPay/",
	}, NewHTTPClient(2*time.Second))
}

func TestZarinpal_Start(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		z := newZarinpalServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/payment/request.json", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req zarinpalRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "merchant-1", req.MerchantID)
			assert.Equal(t, int64(20000), req.Amount)
			assert.Equal(t, "https://cb", req.CallbackURL)

			_, _ = w.Write([]byte(`{"data":{"code":100,"message":"Success","authority":"A0000012345"},"errors":[]}`))
		})

		res, err := z.Start(context.Background(), 20000, "https://cb", "Wallet recharge")

		require.NoError(t, err)
		assert.Equal(t, "A0000012345", res.Authority)
		assert.Equal(t, "https://www.zarinpal.com/pg/StartPay/A0000012345", res.RedirectURL)
	})

	t.Run("provider error with empty data array", func(t *testing.T) {
		z := newZarinpalServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"data":[],"errors":{"code":-9,"message":"The input params invalid"}}`))
		})

		_, err := z.Start(context.Background(), 20000, "https://cb", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrGatewayStartFailed)
		assert.Contains(t, err.Error(), "input params invalid")
	})

	t.Run("transport failure is a start failure", func(t *testing.T) {
		z := newZarinpalServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := z.Start(context.Background(), 20000, "https://cb", "")

		assert.ErrorIs(t, err, errs.ErrGatewayStartFailed)
		assert.NotErrorIs(t, err, errs.ErrGatewayTransport)
	})
}

func TestZarinpal_Verify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		success   bool
		reference string
		transport bool
	}{
		{name: "verified", status: http.StatusOK, body: `{"data":{"code":100,"ref_id":201},"errors":[]}`, success: true, reference: "201"},
		{name: "already verified", status: http.StatusOK, body: `{"data":{"code":101,"ref_id":201},"errors":[]}`, success: true, reference: "201"},
		{name: "not paid", status: http.StatusOK, body: `{"data":{"code":-51},"errors":[]}`},
		{name: "amount mismatch reported by provider", status: http.StatusBadRequest, body: `{"data":[],"errors":{"code":-50}}`},
		{name: "server error", status: http.StatusBadGateway, body: ``, transport: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := newZarinpalServer(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/payment/verify.json", r.URL.Path)
				var req zarinpalRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "A1", req.Authority)
				assert.Equal(t, int64(20000), req.Amount)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := z.Verify(context.Background(), "A1", 20000)

			if tt.transport {
				assert.ErrorIs(t, err, errs.ErrGatewayTransport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.success, res.Success)
			if tt.reference != "" {
				require.NotNil(t, res.ReferenceID)
				assert.Equal(t, tt.reference, *res.ReferenceID)
			}
		})
	}
}

func TestZarinpal_IsCancellation(t *testing.T) {
	z := NewZarinpal(config.ZarinpalConfig{}, nil)
	assert.True(t, z.IsCancellation("NOK"))
	assert.True(t, z.IsCancellation("nok"))
	assert.False(t, z.IsCancellation("OK"))
}
