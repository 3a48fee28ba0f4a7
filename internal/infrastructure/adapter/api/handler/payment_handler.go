package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/usecase/payment"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
)

const maxCallbackBody = 64 << 10

// PaymentHandler handles payment start and provider callbacks
type PaymentHandler struct {
	payments usecase.PaymentUseCase
	logger   coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments usecase.PaymentUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// StartPayment handles POST /payment/start
func (h *PaymentHandler) StartPayment(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, h.logger, "start_payment", unauthenticated())
		return
	}

	var req dto.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.payments.StartPayment(c.Request.Context(), principal, usecase.StartPaymentRequest{
		Amount:      req.Amount,
		Gateway:     req.Gateway,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "start_payment", err)
		return
	}

	c.JSON(http.StatusOK, dto.StartPaymentResponse{
		PaymentURL:    res.PaymentURL,
		TransactionID: res.TransactionID,
		Gateway:       res.Gateway,
		Authority:     res.Authority,
	})
}

// Callback handles GET and POST /payment/callback. Parameters may arrive in the
// query string, a form body or a JSON body.
func (h *PaymentHandler) Callback(c *gin.Context) {
	values, err := callbackValues(c.Request)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.payments.HandleCallback(c.Request.Context(), payment.ParseCallbackParams(values))
	if err != nil {
		respondError(c, h.logger, "payment_callback", err)
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{
		Message:       res.Message,
		TransactionID: res.TransactionID,
		Status:        string(res.Status),
		ReferenceID:   res.ReferenceID,
	})
}

// callbackValues merges query parameters with body parameters; body values come first
func callbackValues(r *http.Request) (url.Values, error) {
	values := url.Values{}

	if r.Method == http.MethodPost && r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxCallbackBody)
		contentType := r.Header.Get("Content-Type")

		switch {
		case strings.HasPrefix(contentType, "application/json"):
			var body map[string]any
			decoder := json.NewDecoder(r.Body)
			decoder.UseNumber()
			if err := decoder.Decode(&body); err != nil {
				return nil, fmt.Errorf("decode json body: %w", err)
			}
			for k, v := range body {
				if v == nil {
					continue
				}
				values.Add(k, fmt.Sprint(v))
			}
		case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"),
			strings.HasPrefix(contentType, "multipart/form-data"):
			if err := r.ParseMultipartForm(maxCallbackBody); err != nil && err != http.ErrNotMultipart {
				return nil, fmt.Errorf("parse form body: %w", err)
			}
			for k, vs := range r.PostForm {
				values[k] = append(values[k], vs...)
			}
		}
	}

	for k, vs := range r.URL.Query() {
		values[k] = append(values[k], vs...)
	}
	return values, nil
}
