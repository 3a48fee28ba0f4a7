package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4002
	CodeInvalidUserID       = 4003
	CodeUnsupportedGateway  = 4007
	CodeUnauthorized        = 4010
	CodeForbidden           = 4030
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeCallbackInProgress  = 4090
	CodeDuplicateAuthority  = 4091
	CodeVerificationFailed  = 4220
	CodeInvalidStatusChange = 4221

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayStartFailed = 5020
	CodeGatewayTransport   = 5021
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrValidation is returned when input is malformed or out of range; it is always
	// reported before any side effect
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount is not a positive integer above the minimum
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

	// ErrAmountOutOfRange is returned when an amount or resulting balance exceeds what the ledger can store
	ErrAmountOutOfRange = fmt.Errorf("%w: out of storable range", ErrInvalidAmount)

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = fmt.Errorf("%w: user ID must be positive", ErrValidation)

	// ErrUnsupportedGateway is returned when a gateway name has no registered client
	ErrUnsupportedGateway = errors.New("unsupported gateway")

	// ErrGatewayStartFailed is returned when a provider rejects a start request
	ErrGatewayStartFailed = errors.New("gateway start failed")

	// ErrGatewayTransport is returned on provider timeouts, 5xx responses or unreadable bodies
	ErrGatewayTransport = errors.New("gateway transport error")

	// ErrVerificationFailed is returned when the provider confirms the payment did not succeed
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrAlreadyFinalized is returned internally when a transaction already left pending
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	// ErrInvalidStatusTransition is returned for state changes the ledger does not allow
	ErrInvalidStatusTransition = errors.New("invalid transaction status transition")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateAuthority is returned when a provider token is already bound to another transaction
	ErrDuplicateAuthority = errors.New("authority already assigned to another transaction")

	// ErrCallbackInProgress is returned when another delivery of the same callback is being handled
	ErrCallbackInProgress = errors.New("callback is already being processed")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthorized is returned when no valid principal is attached to the request
	ErrUnauthorized = errors.New("unauthenticated")

	// ErrForbidden is returned when the principal lacks the required role
	ErrForbidden = errors.New("forbidden")

	// ErrNoActiveTransaction is returned when a balance mutation is attempted outside a unit of work
	ErrNoActiveTransaction = errors.New("balance mutation requires an active unit of work")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrUnsupportedGateway):
		return CodeUnsupportedGateway
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrCallbackInProgress):
		return CodeCallbackInProgress
	case errors.Is(err, ErrDuplicateAuthority):
		return CodeDuplicateAuthority
	case errors.Is(err, ErrVerificationFailed):
		return CodeVerificationFailed
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusChange
	case errors.Is(err, ErrGatewayStartFailed):
		return CodeGatewayStartFailed
	case errors.Is(err, ErrGatewayTransport):
		return CodeGatewayTransport
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// ValidationError describes which input field was rejected and why
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Is makes ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// GatewayError represents a failure while talking to a payment provider
type GatewayError struct {
	Gateway    string
	Operation  string
	StatusCode int
	Reason     string
	Err        error
}

// Error implements the error interface for GatewayError
func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gateway %s %s failed (http %d): %s: %v",
			e.Gateway, e.Operation, e.StatusCode, e.Reason, e.Err)
	}
	return fmt.Sprintf("gateway %s %s failed: %s: %v", e.Gateway, e.Operation, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "gateway_error",
		"gateway":     e.Gateway,
		"operation":   e.Operation,
		"status_code": e.StatusCode,
		"reason":      e.Reason,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// NewGatewayStartError wraps a provider start failure
func NewGatewayStartError(gateway string, statusCode int, reason string) error {
	return &GatewayError{
		Gateway:    gateway,
		Operation:  "start",
		StatusCode: statusCode,
		Reason:     reason,
		Err:        ErrGatewayStartFailed,
	}
}

// NewGatewayTransportError wraps a provider transport failure for the given operation
func NewGatewayTransportError(gateway, operation string, statusCode int, reason string) error {
	return &GatewayError{
		Gateway:    gateway,
		Operation:  operation,
		StatusCode: statusCode,
		Reason:     reason,
		Err:        ErrGatewayTransport,
	}
}

// TransactionError represents an error related to ledger processing
type TransactionError struct {
	TransactionID uint64
	UserID        uint64
	Gateway       string
	Status        string
	Amount        string
	Reason        string
	Err           error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error for ID %d (user: %d, gateway: %s, amount: %s): %s - %v",
		e.TransactionID, e.UserID, e.Gateway, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transaction_error",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"gateway":        e.Gateway,
		"status":         e.Status,
		"amount":         e.Amount,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(transactionID, userID uint64, gateway, status, amount, reason string, err error) error {
	return &TransactionError{
		TransactionID: transactionID,
		UserID:        userID,
		Gateway:       gateway,
		Status:        status,
		Amount:        amount,
		Reason:        reason,
		Err:           err,
	}
}

// IsValidationError checks if the error was caused by bad input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsGatewayTransportError checks if a provider call failed in a retryable way
func IsGatewayTransportError(err error) bool {
	return errors.Is(err, ErrGatewayTransport)
}

// IsAlreadyFinalizedError checks if the ledger reported an idempotent no-op
func IsAlreadyFinalizedError(err error) bool {
	return errors.Is(err, ErrAlreadyFinalized)
}
