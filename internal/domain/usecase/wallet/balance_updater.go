package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/persistence"
)

// BalanceUpdater is the only code path that changes a user's credit balance
type BalanceUpdater struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewBalanceUpdater creates a new BalanceUpdater
func NewBalanceUpdater(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *BalanceUpdater {
	return &BalanceUpdater{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Credit adds amount to the user's balance under a row lock.
// txCtx must come from UnitOfWork.Begin or Execute so the change commits or rolls back
// together with the ledger row that justifies it.
func (b *BalanceUpdater) Credit(txCtx context.Context, userID uint64, amount decimal.Decimal) (*entity.User, error) {
	if !b.uow.InTransaction(txCtx) {
		return nil, errs.ErrNoActiveTransaction
	}
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	userRepo := b.uow.GetUserRepository(txCtx)

	user, err := userRepo.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	previous := user.FormattedBalance()
	if err := user.Credit(amount, b.timeProvider); err != nil {
		return nil, err
	}

	if err := userRepo.UpdateCreditBalance(txCtx, user); err != nil {
		b.logger.Error("Failed to persist credit balance", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatAmount(amount),
			"error":   err.Error(),
		})
		return nil, err
	}

	b.logger.Info("Wallet credited", map[string]any{
		"user_id":          userID,
		"amount":           entity.FormatAmount(amount),
		"previous_balance": previous,
		"new_balance":      user.FormattedBalance(),
	})

	return user, nil
}
