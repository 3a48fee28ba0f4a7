package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
)

// StartPayment validates the request, records a pending transaction and opens a provider session.
// Nothing is written before validation and gateway resolution succeed. When the provider
// refuses, the pending row is left without an authority and can never be matched by a callback.
func (s *Service) StartPayment(
	ctx context.Context,
	principal usecase.Principal,
	req usecase.StartPaymentRequest,
) (*usecase.StartPaymentResponse, error) {
	if principal.UserID == 0 {
		return nil, errs.ErrUnauthorized
	}

	description, err := s.validateStart(req)
	if err != nil {
		return nil, err
	}

	client, err := s.resolver.Resolve(req.Gateway)
	if err != nil {
		s.metrics.ObservePaymentStarted(req.Gateway, "unsupported_gateway")
		return nil, err
	}
	gatewayName := client.Name()

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	// refuse payments the wallet could never absorb once the provider captures them
	if err := user.CanCredit(entity.AmountFromMinorUnits(req.Amount)); err != nil {
		s.metrics.ObservePaymentStarted(gatewayName, "rejected")
		return nil, errs.NewValidationError("amount",
			fmt.Sprintf("would take the wallet past its limit of %s", entity.FormatAmount(entity.MaxBalance)))
	}

	txn, err := entity.NewPendingCredit(principal.UserID, req.Amount, gatewayName, description, s.cfg.CallbackURL, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txnRepo := s.uow.GetTransactionRepository(ctx)
	if err := txnRepo.Create(ctx, txn); err != nil {
		s.logger.Error("Failed to record pending transaction", map[string]any{
			"user_id": principal.UserID,
			"gateway": gatewayName,
			"amount":  req.Amount,
			"error":   err.Error(),
		})
		return nil, err
	}

	started := s.timeProvider.Now()
	result, err := client.Start(ctx, req.Amount, s.cfg.CallbackURL, description)
	s.metrics.ObserveGatewayCall(gatewayName, "start", s.timeProvider.Since(started), err)

	if err == nil && (result == nil || result.Authority == "") {
		err = errs.NewGatewayStartError(gatewayName, 0, "provider returned no authority")
	}
	if err != nil {
		fields := map[string]any{
			"transaction_id": txn.ID,
			"user_id":        principal.UserID,
			"gateway":        gatewayName,
			"amount":         req.Amount,
			"error":          err.Error(),
		}
		var gwErr *errs.GatewayError
		if errors.As(err, &gwErr) {
			fields = gwErr.LogFields()
			fields["transaction_id"] = txn.ID
		}
		s.logger.Warn("Gateway refused payment start", fields)
		s.metrics.ObservePaymentStarted(gatewayName, "gateway_error")

		if !errors.Is(err, errs.ErrGatewayStartFailed) {
			err = fmt.Errorf("%w: %v", errs.ErrGatewayStartFailed, err)
		}
		return nil, err
	}

	if err := txnRepo.SetAuthority(ctx, txn.ID, result.Authority); err != nil {
		s.logger.Error("Failed to bind authority to transaction", map[string]any{
			"transaction_id": txn.ID,
			"gateway":        gatewayName,
			"authority":      result.Authority,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Payment started", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        principal.UserID,
		"gateway":        gatewayName,
		"amount":         req.Amount,
		"authority":      result.Authority,
	})
	s.metrics.ObservePaymentStarted(gatewayName, "started")

	return &usecase.StartPaymentResponse{
		PaymentURL:    result.RedirectURL,
		TransactionID: txn.ID,
		Gateway:       gatewayName,
		Authority:     result.Authority,
	}, nil
}
