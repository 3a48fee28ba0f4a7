package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/core"
)

var transactionColumns = []string{
	"id", "user_id", "amount", "transaction_type", "payment_status", "gateway", "authority",
	"reference_id", "description", "callback_url", "meta", "created_at", "updated_at",
}

func newTransactionRepo(t *testing.T) (*TransactionRepository, sqlmock.Sqlmock, time.Time) {
	t.Helper()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now).Maybe()

	db, sqlMock := newMockDB(t)
	return NewTransactionRepository(db, mockTime, newQuietLogger(t)), sqlMock, now
}

func TestTransactionRepository_Create(t *testing.T) {
	pending := func() *entity.Transaction {
		return &entity.Transaction{
			ID:      99,
			UserID:  2,
			Amount:  decimal.NewFromInt(15000),
			Type:    entity.TypeCredit,
			Status:  entity.StatusPending,
			Gateway: "payir",
		}
	}

	t.Run("assigns the generated ID", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		txn := pending()
		require.NoError(t, repo.Create(context.Background(), txn))
		assert.Equal(t, uint64(42), txn.ID)
	})

	t.Run("maps foreign key violation to missing user", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

		assert.ErrorIs(t, repo.Create(context.Background(), pending()), errs.ErrUserNotFound)
	})

	t.Run("maps numeric overflow to a validation error", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

		err := repo.Create(context.Background(), pending())
		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.NotErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestTransactionRepository_SetAuthority(t *testing.T) {
	t.Run("binds authority to a row without one", func(t *testing.T) {
		repo, sqlMock, now := newTransactionRepo(t)

		sqlMock.ExpectExec(`UPDATE "transactions" SET "authority"=\$1,"updated_at"=\$2 WHERE id = \$3 AND authority IS NULL`).
			WithArgs("tok-1", now, uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetAuthority(context.Background(), 7, "tok-1"))
	})

	t.Run("refuses to rebind", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectExec(`UPDATE "transactions"`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetAuthority(context.Background(), 7, "tok-1"), errs.ErrTransactionNotFound)
	})

	t.Run("maps unique violation to duplicate authority", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectExec(`UPDATE "transactions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		assert.ErrorIs(t, repo.SetAuthority(context.Background(), 7, "tok-1"), errs.ErrDuplicateAuthority)
	})
}

func TestTransactionRepository_GetByAuthority(t *testing.T) {
	t.Run("maps row to entity", func(t *testing.T) {
		repo, sqlMock, now := newTransactionRepo(t)

		sqlMock.ExpectQuery(`SELECT \* FROM "transactions" WHERE authority = \$1`).
			WillReturnRows(sqlmock.NewRows(transactionColumns).AddRow(
				7, 2, "15000.00", "credit", "completed", "zarinpal", "A0001",
				"REF-1", "Wallet recharge", "http://cb", []byte(`{"code":100}`), now, now,
			))

		txn, err := repo.GetByAuthority(context.Background(), "A0001")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), txn.ID)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, "A0001", txn.AuthorityValue())
		assert.Equal(t, "REF-1", txn.ReferenceValue())
		assert.Equal(t, int64(15000), txn.AmountMinorUnits())
		assert.JSONEq(t, `{"code":100}`, string(txn.Meta))
	})

	t.Run("unknown authority", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(sqlmock.NewRows(transactionColumns))

		_, err := repo.GetByAuthority(context.Background(), "missing")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("locking read needs a transaction", func(t *testing.T) {
		repo, _, _ := newTransactionRepo(t)

		_, err := repo.GetByAuthorityForUpdate(context.Background(), "A0001")
		assert.ErrorIs(t, err, errs.ErrNoActiveTransaction)
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	ref := "REF-9"
	txn := &entity.Transaction{
		ID:          7,
		Status:      entity.StatusCompleted,
		ReferenceID: &ref,
		Meta:        json.RawMessage(`{"status":1}`),
		UpdatedAt:   time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC),
	}

	t.Run("writes status, reference and meta", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectExec(`UPDATE "transactions" SET "meta"=\$1,"payment_status"=\$2,"reference_id"=\$3,"updated_at"=\$4 WHERE id = \$5`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), txn))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, sqlMock, _ := newTransactionRepo(t)

		sqlMock.ExpectExec(`UPDATE "transactions"`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), txn), errs.ErrTransactionNotFound)
	})
}
