package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/persistence"
)

// DefaultUser describes an account created by development seeding
type DefaultUser struct {
	ID      uint64
	Balance decimal.Decimal
	IsAdmin bool
}

// DefaultUsers are seeded when seed.defaultUsers is enabled; user 1 is the operator account
var DefaultUsers = []DefaultUser{
	{ID: 1, Balance: decimal.Zero, IsAdmin: true},
	{ID: 2, Balance: decimal.Zero},
	{ID: 3, Balance: decimal.NewFromInt(50000)},
}

// UseCase serves wallet reads and development seeding
type UseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new wallet UseCase
func NewUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetBalance returns the user's credit balance and remaining time
func (u *UseCase) GetBalance(ctx context.Context, userID uint64) (*entity.WalletBalance, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errs.IsNotFoundError(err) {
			u.logger.Error("Failed to get user", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	balance := entity.UserToWalletBalance(user)
	return &balance, nil
}

// SeedDefaultUsers creates the missing DefaultUsers, leaves existing ones untouched
// and returns how many were inserted
func (u *UseCase) SeedDefaultUsers(ctx context.Context) (int, error) {
	created := 0
	for _, defaultUser := range DefaultUsers {
		_, err := u.userRepo.GetByID(ctx, defaultUser.ID)
		if err == nil {
			u.logger.Debug("Default user already exists", map[string]any{
				"user_id": defaultUser.ID,
			})
			continue
		}
		if !errs.IsNotFoundError(err) {
			return created, err
		}

		user, err := entity.NewUser(defaultUser.ID, defaultUser.Balance, defaultUser.IsAdmin, u.timeProvider)
		if err != nil {
			return created, err
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return created, err
		}
		created++

		u.logger.Info("Default user created", map[string]any{
			"user_id":  defaultUser.ID,
			"is_admin": defaultUser.IsAdmin,
			"balance":  user.FormattedBalance(),
		})
	}
	return created, nil
}
