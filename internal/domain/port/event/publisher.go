package event

import (
	"context"
	"time"
)

// Event types published after a unit of work commits
const (
	TypeWalletCredited = "wallet.credited"
	TypePaymentFailed  = "payment.failed"
)

// PaymentEvent is the payload published for downstream consumers
type PaymentEvent struct {
	Type          string    `json:"type"`
	TransactionID uint64    `json:"transaction_id"`
	UserID        uint64    `json:"user_id"`
	Amount        string    `json:"amount"`
	Gateway       string    `json:"gateway"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Balance       string    `json:"balance,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers payment events. Delivery is best effort: the ledger is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, evt PaymentEvent) error
}
