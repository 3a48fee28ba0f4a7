package payment

import (
	"context"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/event"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
)

// AdminRecharge credits a user's wallet on behalf of an operator. The completed ledger row
// and the credit commit together or not at all.
func (s *Service) AdminRecharge(
	ctx context.Context,
	principal usecase.Principal,
	req usecase.AdminRechargeRequest,
) (*usecase.AdminRechargeResult, error) {
	if principal.UserID == 0 {
		return nil, errs.ErrUnauthorized
	}
	if !principal.IsAdmin {
		s.logger.Warn("Non-admin attempted a recharge", map[string]any{
			"principal_id": principal.UserID,
			"user_id":      req.UserID,
		})
		return nil, errs.ErrForbidden
	}

	description, err := s.validateRecharge(req)
	if err != nil {
		return nil, err
	}

	var (
		txn  *entity.Transaction
		user *entity.User
	)
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		txn, user = nil, nil

		if _, err := s.uow.GetUserRepository(txCtx).GetByIDForUpdate(txCtx, req.UserID); err != nil {
			return err
		}

		created, err := entity.NewAdminCredit(req.UserID, req.Amount, description, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, created); err != nil {
			return err
		}

		updated, err := s.wallet.Credit(txCtx, req.UserID, created.Amount)
		if err != nil {
			return err
		}

		txn, user = created, updated
		return nil
	})
	if err != nil {
		s.logger.Warn("Admin recharge failed", map[string]any{
			"principal_id": principal.UserID,
			"user_id":      req.UserID,
			"amount":       req.Amount,
			"error":        err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Admin recharge applied", map[string]any{
		"principal_id":   principal.UserID,
		"user_id":        req.UserID,
		"transaction_id": txn.ID,
		"amount":         entity.FormatAmount(txn.Amount),
		"balance":        user.FormattedBalance(),
	})
	s.metrics.ObserveCredit(entity.GatewayAdmin, txn.Amount.InexactFloat64())
	s.publish(ctx, event.PaymentEvent{
		Type:          event.TypeWalletCredited,
		TransactionID: txn.ID,
		UserID:        txn.UserID,
		Amount:        entity.FormatAmount(txn.Amount),
		Gateway:       entity.GatewayAdmin,
		Balance:       user.FormattedBalance(),
	})

	return &usecase.AdminRechargeResult{
		TransactionID: txn.ID,
		UserID:        user.ID,
		Balance:       user.FormattedBalance(),
	}, nil
}
