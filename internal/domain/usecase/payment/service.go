package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/event"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/lock"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/persistence"
)

// Response messages returned to callers
const (
	MessageVerified        = "Payment verified"
	MessageAlreadyVerified = "Already verified"
	MessagePaymentFailed   = "Payment failed"
	MessageRefunded        = "Payment refunded"
)

// Default descriptions recorded on ledger rows
const (
	DefaultStartDescription    = "Wallet recharge"
	DefaultRechargeDescription = "Admin recharge"
	MaxDescriptionLength       = 191
)

// Config holds the payment rules injected from configuration
type Config struct {
	CallbackURL    string
	MinAmount      int64
	AdminMinAmount int64
	MaxAmount      int64 // shared by gateway payments and admin recharges
}

// DefaultConfig returns the amounts enforced when nothing is configured
func DefaultConfig() Config {
	return Config{
		MinAmount:      1000,
		AdminMinAmount: 1000,
		MaxAmount:      entity.MaxWholeAmount,
	}
}

// WalletCrediter credits a wallet inside an active unit of work
type WalletCrediter interface {
	Credit(txCtx context.Context, userID uint64, amount decimal.Decimal) (*entity.User, error)
}

// Service orchestrates gateway payments, callbacks and admin recharges
type Service struct {
	cfg          Config
	resolver     gateway.Resolver
	uow          persistence.UnitOfWork
	wallet       WalletCrediter
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	publisher event.Publisher
	guard     lock.CallbackGuard
	metrics   coreport.PaymentMetrics
}

// NewService creates a new payment Service.
// Event publishing, the callback guard and metrics default to no-ops.
func NewService(
	cfg Config,
	resolver gateway.Resolver,
	uow persistence.UnitOfWork,
	wallet WalletCrediter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	defaults := DefaultConfig()
	if cfg.MinAmount <= 0 {
		cfg.MinAmount = defaults.MinAmount
	}
	if cfg.AdminMinAmount <= 0 {
		cfg.AdminMinAmount = defaults.AdminMinAmount
	}
	if cfg.MaxAmount <= 0 || cfg.MaxAmount > defaults.MaxAmount {
		cfg.MaxAmount = defaults.MaxAmount
	}

	return &Service{
		cfg:          cfg,
		resolver:     resolver,
		uow:          uow,
		wallet:       wallet,
		timeProvider: timeProvider,
		logger:       logger,
		publisher:    noopPublisher{},
		guard:        noopGuard{},
		metrics:      noopMetrics{},
	}
}

// WithPublisher sets the publisher for post-commit events
func (s *Service) WithPublisher(publisher event.Publisher) *Service {
	if publisher != nil {
		s.publisher = publisher
	}
	return s
}

// WithCallbackGuard sets the in-flight guard for callbacks
func (s *Service) WithCallbackGuard(guard lock.CallbackGuard) *Service {
	if guard != nil {
		s.guard = guard
	}
	return s
}

// WithMetrics sets the payment metrics recorder
func (s *Service) WithMetrics(metrics coreport.PaymentMetrics) *Service {
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// publish sends an event after commit; failures are logged, never returned
func (s *Service) publish(ctx context.Context, evt event.PaymentEvent) {
	evt.OccurredAt = s.timeProvider.Now()
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish payment event", map[string]any{
			"type":           evt.Type,
			"transaction_id": evt.TransactionID,
			"error":          err.Error(),
		})
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, event.PaymentEvent) error { return nil }

type noopGuard struct{}

func (noopGuard) Acquire(context.Context, string) (bool, func(), error) {
	return true, func() {}, nil
}

type noopMetrics struct{}

func (noopMetrics) ObservePaymentStarted(string, string) {}
func (noopMetrics) ObserveCallback(string, string) {}
func (noopMetrics) ObserveCredit(string, float64) {}
func (noopMetrics) ObserveGatewayCall(string, string, time.Duration, error) {}
