package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
)

// TransactionRepository defines the ledger operations on payment transactions
type TransactionRepository interface {
	// Create saves a new transaction and assigns its ID
	//
	// Possible errors:
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// SetAuthority binds the provider token to a pending transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given ID
	// - ErrDuplicateAuthority: If another transaction already carries the token
	// - ErrDatabaseConnection: If database connection fails
	SetAuthority(ctx context.Context, id uint64, authority string) error

	// GetByID retrieves a transaction by its primary key
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// GetByAuthority retrieves a transaction by its provider token without locking
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the token
	// - ErrDatabaseConnection: If database connection fails
	GetByAuthority(ctx context.Context, authority string) (*entity.Transaction, error)

	// GetByAuthorityForUpdate retrieves a transaction and holds its row lock until
	// the surrounding unit of work ends. Must be called inside a unit of work.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the token
	// - ErrNoActiveTransaction: If called outside a unit of work
	// - ErrDatabaseConnection: If database connection fails
	GetByAuthorityForUpdate(ctx context.Context, authority string) (*entity.Transaction, error)

	// Update persists status, reference ID and meta of an existing transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error
}
