package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser(1, decimal.NewFromInt(100), true, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), user.ID)
		assert.Equal(t, "100.00", user.FormattedBalance())
		assert.True(t, user.IsAdmin)
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Zero ID should return error", func(t *testing.T) {
		user, err := NewUser(0, decimal.Zero, false, mockTime)

		assert.Equal(t, errs.ErrInvalidUserID, err)
		assert.Nil(t, user)
	})

	t.Run("Negative balance should return error", func(t *testing.T) {
		user, err := NewUser(1, decimal.NewFromInt(-1), false, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, user)
	})
}

func TestUser_Credit(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	creditedAt := createdAt.Add(time.Hour)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(creditedAt).Maybe()

	t.Run("Adds to balance", func(t *testing.T) {
		user := RestoreUser(5, decimal.RequireFromString("10.50"), 0, false, createdAt, createdAt)

		require.NoError(t, user.Credit(decimal.NewFromInt(2500), mockTime))
		assert.Equal(t, "2510.50", user.FormattedBalance())
		assert.Equal(t, creditedAt, user.UpdatedAt)
	})

	t.Run("Rejects non-positive and fractional amounts", func(t *testing.T) {
		user := RestoreUser(5, decimal.NewFromInt(100), 0, false, createdAt, createdAt)

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10), decimal.RequireFromString("0.5")} {
			err := user.Credit(amount, mockTime)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		}
		assert.Equal(t, "100.00", user.FormattedBalance())
		assert.Equal(t, createdAt, user.UpdatedAt)
	})

	t.Run("Rejects credits past the storable balance", func(t *testing.T) {
		user := RestoreUser(5, decimal.NewFromInt(MaxWholeAmount-10), 0, false, createdAt, createdAt)

		err := user.Credit(decimal.NewFromInt(11), mockTime)
		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, "9999999989.00", user.FormattedBalance())

		require.NoError(t, user.Credit(decimal.NewFromInt(10), mockTime))
		assert.Equal(t, "9999999999.00", user.FormattedBalance())
	})
}

func TestUserToWalletBalance(t *testing.T) {
	user := RestoreUser(9, decimal.NewFromInt(2500), 42, false, time.Time{}, time.Time{})

	balance := UserToWalletBalance(user)
	assert.Equal(t, "2500.00", balance.CreditBalance)
	assert.Equal(t, uint(42), balance.RemainingTime)
}
