package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/event"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
)

// HandleCallback resolves a provider callback to a definitive outcome.
//
// The provider is consulted outside any database transaction. The outcome is then applied in
// a unit of work that re-reads the transaction under a row lock, so of N concurrent deliveries
// exactly one moves it out of pending and credits the wallet; the rest see the final state.
func (s *Service) HandleCallback(ctx context.Context, req usecase.CallbackRequest) (*usecase.CallbackResult, error) {
	authority := strings.TrimSpace(req.Authority)
	if authority == "" {
		s.metrics.ObserveCallback("unknown", "not_found")
		return nil, fmt.Errorf("%w: callback carries no authority", errs.ErrTransactionNotFound)
	}

	acquired, release, err := s.guard.Acquire(ctx, authority)
	defer release()
	if err != nil {
		s.logger.Warn("Callback guard unavailable, continuing without it", map[string]any{
			"authority": authority,
			"error":     err.Error(),
		})
	}
	if !acquired {
		s.metrics.ObserveCallback("unknown", "in_progress")
		return nil, errs.ErrCallbackInProgress
	}

	txn, err := s.uow.GetTransactionRepository(ctx).GetByAuthority(ctx, authority)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			s.logger.Warn("Callback for unknown authority", map[string]any{
				"authority": authority,
			})
			s.metrics.ObserveCallback("unknown", "not_found")
		}
		return nil, err
	}

	if !txn.IsPending() {
		s.metrics.ObserveCallback(txn.Gateway, "already_"+string(txn.Status))
		return finalizedResult(txn), nil
	}

	// generic cancel hints are definitive even when the gateway is no longer registered
	client, resolveErr := s.resolver.Resolve(txn.Gateway)
	if resolveErr != nil {
		client = nil
	}

	if isCancellation(client, req.Status) {
		result, err := s.finalizeFailed(ctx, authority, cancellationMeta(req.Status))
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveCallback(txn.Gateway, "cancelled")
		return result, nil
	}

	if resolveErr != nil {
		// The gateway was disabled after the payment started; keep the row pending so a
		// provider retry succeeds once it is re-enabled.
		s.logger.Error("Gateway of pending transaction is not registered", map[string]any{
			"transaction_id": txn.ID,
			"gateway":        txn.Gateway,
			"error":          resolveErr.Error(),
		})
		return nil, errs.NewGatewayTransportError(txn.Gateway, "verify", 0, "gateway not registered")
	}

	started := s.timeProvider.Now()
	verification, err := client.Verify(ctx, authority, txn.AmountMinorUnits())
	s.metrics.ObserveGatewayCall(txn.Gateway, "verify", s.timeProvider.Since(started), err)

	if err == nil && verification == nil {
		err = errs.NewGatewayTransportError(txn.Gateway, "verify", 0, "empty verification result")
	}
	if err != nil {
		s.logger.Warn("Payment verification could not reach a verdict", map[string]any{
			"transaction_id": txn.ID,
			"gateway":        txn.Gateway,
			"authority":      authority,
			"error":          err.Error(),
		})
		s.metrics.ObserveCallback(txn.Gateway, "transport_error")
		if !errs.IsGatewayTransportError(err) {
			err = fmt.Errorf("%w: %v", errs.ErrGatewayTransport, err)
		}
		return nil, err
	}

	if !verification.Success {
		result, err := s.finalizeFailed(ctx, authority, verification.Raw)
		if err != nil {
			return nil, err
		}
		if result.Status == entity.StatusCompleted {
			// a concurrent delivery already verified and credited
			s.metrics.ObserveCallback(txn.Gateway, "already_completed")
			return result, nil
		}
		s.metrics.ObserveCallback(txn.Gateway, "verification_failed")
		return nil, errs.NewTransactionError(txn.ID, txn.UserID, txn.Gateway, string(result.Status),
			entity.FormatAmount(txn.Amount), "provider did not confirm payment", errs.ErrVerificationFailed)
	}

	return s.finalizeCompleted(ctx, txn.Gateway, authority, verification)
}

// finalizeCompleted marks the transaction completed and credits the wallet in one unit of work
func (s *Service) finalizeCompleted(
	ctx context.Context,
	gatewayName string,
	authority string,
	verification *gateway.VerifyResult,
) (*usecase.CallbackResult, error) {
	var (
		result   *usecase.CallbackResult
		credited *entity.Transaction
		user     *entity.User
	)

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		result, credited, user = nil, nil, nil

		txnRepo := s.uow.GetTransactionRepository(txCtx)
		txn, err := txnRepo.GetByAuthorityForUpdate(txCtx, authority)
		if err != nil {
			return err
		}

		if err := txn.MarkCompleted(verification.ReferenceID, verification.Raw, s.timeProvider); err != nil {
			if errs.IsAlreadyFinalizedError(err) {
				result = finalizedResult(txn)
				return nil
			}
			s.logger.Error("Provider confirmed payment for a finalized transaction, reconciliation required", map[string]any{
				"transaction_id": txn.ID,
				"status":         string(txn.Status),
				"reference_id":   derefString(verification.ReferenceID),
			})
			return errs.NewTransactionError(txn.ID, txn.UserID, txn.Gateway, string(txn.Status),
				entity.FormatAmount(txn.Amount), "cannot complete", err)
		}

		if err := txnRepo.Update(txCtx, txn); err != nil {
			return err
		}

		updated, err := s.wallet.Credit(txCtx, txn.UserID, txn.Amount)
		if err != nil {
			return err
		}

		credited, user = txn, updated
		result = &usecase.CallbackResult{
			Message:       MessageVerified,
			TransactionID: txn.ID,
			Status:        txn.Status,
			ReferenceID:   txn.ReferenceID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrAmountOutOfRange) {
			s.logger.Error("Verified payment exceeds the wallet limit, reconciliation required", map[string]any{
				"authority": authority,
				"gateway":   gatewayName,
				"error":     err.Error(),
			})
			s.metrics.ObserveCallback(gatewayName, "balance_limit")
			return nil, err
		}
		s.logger.Error("Failed to finalize verified payment", map[string]any{
			"authority": authority,
			"error":     err.Error(),
		})
		return nil, err
	}

	if credited == nil {
		s.metrics.ObserveCallback(gatewayName, "already_completed")
		return result, nil
	}

	s.logger.Info("Payment verified and wallet credited", map[string]any{
		"transaction_id": credited.ID,
		"user_id":        credited.UserID,
		"gateway":        credited.Gateway,
		"amount":         entity.FormatAmount(credited.Amount),
		"authority":      credited.AuthorityValue(),
		"reference_id":   credited.ReferenceValue(),
		"balance":        user.FormattedBalance(),
	})
	s.metrics.ObserveCallback(credited.Gateway, "completed")
	s.metrics.ObserveCredit(credited.Gateway, credited.Amount.InexactFloat64())
	s.publish(ctx, event.PaymentEvent{
		Type:          event.TypeWalletCredited,
		TransactionID: credited.ID,
		UserID:        credited.UserID,
		Amount:        entity.FormatAmount(credited.Amount),
		Gateway:       credited.Gateway,
		ReferenceID:   credited.ReferenceValue(),
		Balance:       user.FormattedBalance(),
	})

	return result, nil
}

// finalizeFailed marks a pending transaction failed. A transaction finalized concurrently is
// reported in its current state.
func (s *Service) finalizeFailed(ctx context.Context, authority string, raw json.RawMessage) (*usecase.CallbackResult, error) {
	var (
		result *usecase.CallbackResult
		failed *entity.Transaction
	)

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		result, failed = nil, nil

		txnRepo := s.uow.GetTransactionRepository(txCtx)
		txn, err := txnRepo.GetByAuthorityForUpdate(txCtx, authority)
		if err != nil {
			return err
		}

		if err := txn.MarkFailed(raw, s.timeProvider); err != nil {
			if errs.IsAlreadyFinalizedError(err) || errors.Is(err, errs.ErrInvalidStatusTransition) {
				result = finalizedResult(txn)
				return nil
			}
			return err
		}

		if err := txnRepo.Update(txCtx, txn); err != nil {
			return err
		}

		failed = txn
		result = &usecase.CallbackResult{
			Message:       MessagePaymentFailed,
			TransactionID: txn.ID,
			Status:        txn.Status,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record failed payment", map[string]any{
			"authority": authority,
			"error":     err.Error(),
		})
		return nil, err
	}

	if failed != nil {
		s.logger.Info("Payment marked failed", map[string]any{
			"transaction_id": failed.ID,
			"user_id":        failed.UserID,
			"gateway":        failed.Gateway,
		})
		s.publish(ctx, event.PaymentEvent{
			Type:          event.TypePaymentFailed,
			TransactionID: failed.ID,
			UserID:        failed.UserID,
			Amount:        entity.FormatAmount(failed.Amount),
			Gateway:       failed.Gateway,
		})
	}

	return result, nil
}

// finalizedResult describes a transaction that already left pending
func finalizedResult(txn *entity.Transaction) *usecase.CallbackResult {
	result := &usecase.CallbackResult{
		TransactionID:    txn.ID,
		Status:           txn.Status,
		ReferenceID:      txn.ReferenceID,
		AlreadyProcessed: true,
	}
	switch txn.Status {
	case entity.StatusCompleted:
		result.Message = MessageAlreadyVerified
	case entity.StatusRefunded:
		result.Message = MessageRefunded
	default:
		result.Message = MessagePaymentFailed
	}
	return result
}

func cancellationMeta(status string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"callback_status": status})
	return raw
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
