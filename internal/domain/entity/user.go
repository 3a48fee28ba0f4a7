package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
)

// User is the wallet view of an account
type User struct {
	ID            uint64
	creditBalance decimal.Decimal // never negative; only Credit changes it
	RemainingTime uint
	IsAdmin       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a new user with the given ID and initial balance
func NewUser(id uint64, initialBalance decimal.Decimal, isAdmin bool, timeProvider coreport.TimeProvider) (*User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", errs.ErrInvalidAmount)
	}

	now := timeProvider.Now()
	return &User{
		ID:            id,
		creditBalance: initialBalance,
		IsAdmin:       isAdmin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RestoreUser rebuilds a user from persisted state (for repositories)
func RestoreUser(id uint64, balance decimal.Decimal, remainingTime uint, isAdmin bool, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:            id,
		creditBalance: balance,
		RemainingTime: remainingTime,
		IsAdmin:       isAdmin,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// CreditBalance returns the current wallet balance
func (u *User) CreditBalance() decimal.Decimal {
	return u.creditBalance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatAmount(u.creditBalance)
}

// CanCredit reports whether amount is a valid credit for this wallet
func (u *User) CanCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit must be positive, got %s", errs.ErrInvalidAmount, amount.String())
	}
	if !IsWholeAmount(amount) {
		return fmt.Errorf("%w: credit must be whole rials, got %s", errs.ErrInvalidAmount, amount.String())
	}
	if u.creditBalance.Add(amount).GreaterThan(MaxBalance) {
		return fmt.Errorf("%w: balance %s plus %s exceeds %s", errs.ErrAmountOutOfRange,
			FormatAmount(u.creditBalance), amount.String(), FormatAmount(MaxBalance))
	}
	return nil
}

// Credit adds a positive whole-rial amount to the balance
func (u *User) Credit(amount decimal.Decimal, timeProvider coreport.TimeProvider) error {
	if err := u.CanCredit(amount); err != nil {
		return err
	}

	u.creditBalance = u.creditBalance.Add(amount)
	u.UpdatedAt = timeProvider.Now()
	return nil
}
