package usecase

import (
	"context"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
)

// Principal is the authenticated caller as resolved by the transport layer
type Principal struct {
	UserID  uint64
	IsAdmin bool
}

// StartPaymentRequest is a user's request to fund their wallet
type StartPaymentRequest struct {
	Amount      int64
	Gateway     string // empty selects the configured default
	Description string
}

// StartPaymentResponse tells the client where to send the user
type StartPaymentResponse struct {
	PaymentURL    string
	TransactionID uint64
	Gateway       string
	Authority     string
}

// CallbackRequest carries the correlation token and status hint a provider sent back
type CallbackRequest struct {
	Authority string
	Status    string
}

// CallbackResult is the definitive outcome of a callback delivery
type CallbackResult struct {
	Message       string
	TransactionID uint64
	Status        entity.PaymentStatus
	ReferenceID   *string
	// AlreadyProcessed is true when the delivery found the transaction finalized
	AlreadyProcessed bool
}

// AdminRechargeRequest credits a user's wallet without a gateway
type AdminRechargeRequest struct {
	UserID      uint64
	Amount      int64
	Description string
}

// AdminRechargeResult describes the ledger row created by a recharge
type AdminRechargeResult struct {
	TransactionID uint64
	UserID        uint64
	Balance       string
}

// PaymentUseCase defines the payment orchestration operations
type PaymentUseCase interface {
	// StartPayment opens a gateway session and records a pending transaction
	StartPayment(ctx context.Context, principal Principal, req StartPaymentRequest) (*StartPaymentResponse, error)

	// HandleCallback verifies a provider callback and credits the wallet exactly once
	HandleCallback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)

	// AdminRecharge credits a wallet directly on behalf of an operator
	AdminRecharge(ctx context.Context, principal Principal, req AdminRechargeRequest) (*AdminRechargeResult, error)
}

// WalletUseCase exposes wallet reads
type WalletUseCase interface {
	// GetBalance returns the caller's credit balance and remaining time
	GetBalance(ctx context.Context, userID uint64) (*entity.WalletBalance, error)
}
