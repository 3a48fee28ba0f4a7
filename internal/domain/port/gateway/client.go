package gateway

import (
	"context"
	"encoding/json"
)

// StartResult is what a provider returns when a payment session is opened
type StartResult struct {
	RedirectURL string
	Authority   string
}

// VerifyResult is the provider's verdict on a payment session.
// Success=false with a nil error means the provider answered that the payment did not complete.
type VerifyResult struct {
	Success     bool
	ReferenceID *string
	Raw         json.RawMessage
}

// Client talks to one payment provider
type Client interface {
	// Name returns the normalised provider name stored on transactions
	Name() string

	// Start opens a payment session for amount rials.
	//
	// Possible errors:
	// - ErrGatewayStartFailed: provider refused, returned no authority or could not be reached
	Start(ctx context.Context, amount int64, callbackURL, description string) (*StartResult, error)

	// Verify asks the provider whether the session behind authority was paid.
	// expectedAmount is always the amount recorded on the ledger row.
	//
	// Possible errors:
	// - ErrGatewayTransport: timeout, 5xx or unreadable response; the outcome is unknown
	Verify(ctx context.Context, authority string, expectedAmount int64) (*VerifyResult, error)
}

// CancellationDetector is implemented by providers whose callback status values
// identify a user cancellation
type CancellationDetector interface {
	IsCancellation(status string) bool
}

// Resolver maps gateway names to clients
type Resolver interface {
	// Resolve returns the client registered under name; an empty name selects the default.
	//
	// Possible errors:
	// - ErrUnsupportedGateway: no client is registered under name
	Resolve(name string) (Client, error)

	// Names lists the registered gateway names
	Names() []string
}
