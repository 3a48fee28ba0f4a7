package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	tport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

// Transaction types
const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// PaymentStatus defines possible status values for a transaction
type PaymentStatus string

// PaymentStatus constants
const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
	StatusRefunded  PaymentStatus = "refunded"
)

// GatewayAdmin is the gateway value recorded for operator-initiated credits
const GatewayAdmin = "admin"

// Transaction is one ledger row: a funding attempt through a gateway or an admin credit
type Transaction struct {
	ID          uint64
	UserID      uint64
	Amount      decimal.Decimal // whole rials, stored with two decimal places
	Type        TransactionType
	Status      PaymentStatus
	Gateway     string
	Authority   *string // provider token, set once Start succeeded
	ReferenceID *string // provider receipt, set only on successful verification
	Description string
	CallbackURL string
	Meta        json.RawMessage // raw provider payload from the last verification
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPendingCredit creates the ledger row for a gateway payment before the provider is contacted
func NewPendingCredit(
	userID uint64,
	amount int64,
	gateway string,
	description string,
	callbackURL string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if err := validateCredit(userID, amount); err != nil {
		return nil, err
	}
	if gateway == "" || gateway == GatewayAdmin {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedGateway, gateway)
	}

	now := timeProvider.Now()
	return &Transaction{
		UserID:      userID,
		Amount:      AmountFromMinorUnits(amount),
		Type:        TypeCredit,
		Status:      StatusPending,
		Gateway:     gateway,
		Description: description,
		CallbackURL: callbackURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewAdminCredit creates an already-completed ledger row for an operator recharge
func NewAdminCredit(userID uint64, amount int64, description string, timeProvider tport.TimeProvider) (*Transaction, error) {
	if err := validateCredit(userID, amount); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Transaction{
		UserID:      userID,
		Amount:      AmountFromMinorUnits(amount),
		Type:        TypeCredit,
		Status:      StatusCompleted,
		Gateway:     GatewayAdmin,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkCompleted moves a pending transaction to completed.
// A transaction that is already completed yields ErrAlreadyFinalized so callers can treat it as a no-op.
func (t *Transaction) MarkCompleted(referenceID *string, raw json.RawMessage, timeProvider tport.TimeProvider) error {
	switch t.Status {
	case StatusPending:
	case StatusCompleted:
		return errs.ErrAlreadyFinalized
	default:
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidStatusTransition, t.Status, StatusCompleted)
	}

	t.Status = StatusCompleted
	t.ReferenceID = referenceID
	if len(raw) > 0 {
		t.Meta = raw
	}
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkFailed moves a pending transaction to failed
func (t *Transaction) MarkFailed(raw json.RawMessage, timeProvider tport.TimeProvider) error {
	switch t.Status {
	case StatusPending:
	case StatusFailed:
		return errs.ErrAlreadyFinalized
	default:
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidStatusTransition, t.Status, StatusFailed)
	}

	t.Status = StatusFailed
	if len(raw) > 0 {
		t.Meta = raw
	}
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// IsPending reports whether the transaction still awaits a callback
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// AmountMinorUnits returns the amount in whole rials as sent to providers
func (t *Transaction) AmountMinorUnits() int64 {
	return t.Amount.IntPart()
}

// AuthorityValue returns the provider token or an empty string
func (t *Transaction) AuthorityValue() string {
	if t.Authority == nil {
		return ""
	}
	return *t.Authority
}

// ReferenceValue returns the provider reference or an empty string
func (t *Transaction) ReferenceValue() string {
	if t.ReferenceID == nil {
		return ""
	}
	return *t.ReferenceID
}

func validateCredit(userID uint64, amount int64) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", errs.ErrInvalidAmount, amount)
	}
	return nil
}
