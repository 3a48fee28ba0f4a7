package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
)

// UserRepository defines the wallet-side operations on users.
// User CRUD lives outside this service; Create exists for development seeding.
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user and holds its row lock until the
	// surrounding unit of work ends
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrNoActiveTransaction: If called outside a unit of work
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// UpdateCreditBalance persists the user's credit balance
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateCreditBalance(ctx context.Context, user *entity.User) error

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error
}
