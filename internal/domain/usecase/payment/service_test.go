package payment

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/event"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/core"
	eventmocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/event"
	gatewaymocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/gateway"
	lockmocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/lock"
	persistencemocks "github.com/amirhossein-jamali/wallet-funding/mocks/port/persistence"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time                  { return testNow }
func (fixedClock) Since(t time.Time) time.Duration { return testNow.Sub(t) }

const callbackURL = "http://localhost:8080/api/payment/callback"

type fixture struct {
	store    *memStore
	resolver *gatewaymocks.MockResolver
	client   *gatewaymocks.MockClient
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	store.addUser(1, 0, true)
	store.addUser(2, 0, false)

	client := gatewaymocks.NewMockClient(t)
	client.EXPECT().Name().Return("payir").Maybe()

	resolver := gatewaymocks.NewMockResolver(t)
	resolver.EXPECT().Resolve(mock.MatchedBy(func(name string) bool {
		return name == "" || name == "payir"
	})).Return(client, nil).Maybe()

	service := NewService(
		Config{CallbackURL: callbackURL, MinAmount: 1000, AdminMinAmount: 1000},
		resolver,
		store,
		memWallet{store},
		fixedClock{},
		newQuietLogger(t),
	)

	return &fixture{store: store, resolver: resolver, client: client, service: service}
}

func newQuietLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

// startPending records a pending transaction for user 2 bound to authority
func (f *fixture) startPending(t *testing.T, amount int64, authority string) uint64 {
	t.Helper()

	f.client.EXPECT().Start(mock.Anything, amount, callbackURL, DefaultStartDescription).
		Return(&gateway.StartResult{
			RedirectURL: "https://pay.ir/pg/go/" + authority,
			Authority:   authority,
		}, nil).Once()

	resp, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
		usecase.StartPaymentRequest{Amount: amount})
	require.NoError(t, err)
	return resp.TransactionID
}

// ledgerWithTxnRepo serves transactions from a substitute repository and everything else from the store
type ledgerWithTxnRepo struct {
	*memStore
	txns persistence.TransactionRepository
}

func (l ledgerWithTxnRepo) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return l.txns
}

func verified(ref string) *gateway.VerifyResult {
	return &gateway.VerifyResult{
		Success:     true,
		ReferenceID: &ref,
		Raw:         json.RawMessage(`{"status":1}`),
	}
}

func TestService_StartPayment(t *testing.T) {
	t.Run("should record pending transaction and bind authority", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().Start(mock.Anything, int64(15000), callbackURL, "Top up").
			Return(&gateway.StartResult{RedirectURL: "https://pay.ir/pg/go/tok-1", Authority: "tok-1"}, nil).Once()

		resp, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 15000, Description: "  Top up "})

		require.NoError(t, err)
		assert.Equal(t, "https://pay.ir/pg/go/tok-1", resp.PaymentURL)
		assert.Equal(t, "payir", resp.Gateway)
		assert.Equal(t, "tok-1", resp.Authority)

		txn := f.store.transaction(resp.TransactionID)
		assert.Equal(t, entity.StatusPending, txn.Status)
		assert.Equal(t, "tok-1", txn.AuthorityValue())
		assert.Equal(t, "15000.00", entity.FormatAmount(txn.Amount))
		assert.Equal(t, "Top up", txn.Description)
		assert.Equal(t, callbackURL, txn.CallbackURL)
		assert.Equal(t, "0.00", f.store.balance(2))
	})

	t.Run("should reject invalid input before any side effect", func(t *testing.T) {
		testCases := []struct {
			name string
			req  usecase.StartPaymentRequest
		}{
			{"amount below minimum", usecase.StartPaymentRequest{Amount: 999}},
			{"zero amount", usecase.StartPaymentRequest{Amount: 0}},
			{"amount above maximum", usecase.StartPaymentRequest{Amount: entity.MaxWholeAmount + 1}},
			{"amount beyond any ledger column", usecase.StartPaymentRequest{Amount: 1_000_000_000_000}},
			{"description too long", usecase.StartPaymentRequest{Amount: 5000, Description: strings.Repeat("x", MaxDescriptionLength+1)}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t)

				_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2}, tc.req)

				assert.ErrorIs(t, err, errs.ErrValidation)
				assert.Zero(t, f.store.transactionCount())
			})
		}
	})

	t.Run("should honour a configured maximum amount", func(t *testing.T) {
		f := newFixture(t)
		service := NewService(
			Config{CallbackURL: callbackURL, MinAmount: 1000, AdminMinAmount: 1000, MaxAmount: 20000},
			f.resolver, f.store, memWallet{f.store}, fixedClock{}, newQuietLogger(t),
		)

		_, err := service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 20001})

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "amount", validationErr.Field)
		assert.Zero(t, f.store.transactionCount())
	})

	t.Run("should cap a configured maximum at the ledger limit", func(t *testing.T) {
		service := NewService(Config{MaxAmount: 1_000_000_000_000}, nil, nil, nil, fixedClock{}, newQuietLogger(t))
		assert.Equal(t, entity.MaxWholeAmount, service.cfg.MaxAmount)

		service = NewService(Config{}, nil, nil, nil, fixedClock{}, newQuietLogger(t))
		assert.Equal(t, entity.MaxWholeAmount, service.cfg.MaxAmount)
	})

	t.Run("should refuse a payment the wallet could not absorb", func(t *testing.T) {
		f := newFixture(t)
		f.store.addUser(3, entity.MaxWholeAmount-1000, false)

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 3},
			usecase.StartPaymentRequest{Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Zero(t, f.store.transactionCount())
		f.client.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should surface a failure to bind the authority", func(t *testing.T) {
		f := newFixture(t)
		repo := persistencemocks.NewMockTransactionRepository(t)
		repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			RunAndReturn(func(_ context.Context, txn *entity.Transaction) error {
				txn.ID = 41
				return nil
			}).Once()
		repo.EXPECT().SetAuthority(mock.Anything, uint64(41), "tok-dup").Return(errs.ErrDuplicateAuthority).Once()
		f.client.EXPECT().Start(mock.Anything, int64(5000), callbackURL, DefaultStartDescription).
			Return(&gateway.StartResult{RedirectURL: "https://pay.ir/pg/go/tok-dup", Authority: "tok-dup"}, nil).Once()

		service := NewService(
			Config{CallbackURL: callbackURL, MinAmount: 1000, AdminMinAmount: 1000},
			f.resolver, ledgerWithTxnRepo{memStore: f.store, txns: repo}, memWallet{f.store}, fixedClock{}, newQuietLogger(t),
		)

		resp, err := service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 5000})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, errs.ErrDuplicateAuthority)
	})

	t.Run("should require an authenticated principal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{}, usecase.StartPaymentRequest{Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should reject unsupported gateway", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().Resolve("paypal").Return(nil, errs.ErrUnsupportedGateway).Once()

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 5000, Gateway: "paypal"})

		assert.ErrorIs(t, err, errs.ErrUnsupportedGateway)
		assert.Zero(t, f.store.transactionCount())
	})

	t.Run("should fail for unknown user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 77},
			usecase.StartPaymentRequest{Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Zero(t, f.store.transactionCount())
	})

	t.Run("should leave row without authority when provider refuses", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().Start(mock.Anything, int64(5000), callbackURL, DefaultStartDescription).
			Return(nil, errs.NewGatewayStartError("payir", 0, "status 0")).Once()

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrGatewayStartFailed)
		require.Equal(t, 1, f.store.transactionCount())
		txn := f.store.transaction(1)
		assert.Equal(t, entity.StatusPending, txn.Status)
		assert.Nil(t, txn.Authority)
	})

	t.Run("should treat empty authority as a start failure", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().Start(mock.Anything, int64(5000), callbackURL, DefaultStartDescription).
			Return(&gateway.StartResult{RedirectURL: "https://pay.ir/pg/go/"}, nil).Once()

		_, err := f.service.StartPayment(context.Background(), usecase.Principal{UserID: 2},
			usecase.StartPaymentRequest{Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrGatewayStartFailed)
	})
}

func TestService_HandleCallback(t *testing.T) {
	t.Run("should verify with recorded amount and credit once", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 15000, "tok-1")
		f.client.EXPECT().Verify(mock.Anything, "tok-1", int64(15000)).Return(verified("REF-9"), nil).Once()

		result, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-1", Status: "1"})

		require.NoError(t, err)
		assert.Equal(t, MessageVerified, result.Message)
		assert.Equal(t, id, result.TransactionID)
		assert.Equal(t, entity.StatusCompleted, result.Status)
		require.NotNil(t, result.ReferenceID)
		assert.Equal(t, "REF-9", *result.ReferenceID)
		assert.False(t, result.AlreadyProcessed)

		assert.Equal(t, "15000.00", f.store.balance(2))
		txn := f.store.transaction(id)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, "REF-9", txn.ReferenceValue())
		assert.JSONEq(t, `{"status":1}`, string(txn.Meta))
	})

	t.Run("should be idempotent on a repeated callback", func(t *testing.T) {
		f := newFixture(t)
		f.startPending(t, 15000, "tok-1")
		f.client.EXPECT().Verify(mock.Anything, "tok-1", int64(15000)).Return(verified("REF-9"), nil).Once()

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-1"})
		require.NoError(t, err)

		again, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-1"})

		require.NoError(t, err)
		assert.Equal(t, MessageAlreadyVerified, again.Message)
		assert.True(t, again.AlreadyProcessed)
		assert.Equal(t, "REF-9", *again.ReferenceID)
		assert.Equal(t, "15000.00", f.store.balance(2))
	})

	t.Run("should credit exactly once under concurrent callbacks", func(t *testing.T) {
		f := newFixture(t)
		f.startPending(t, 20000, "tok-c")
		f.client.EXPECT().Verify(mock.Anything, "tok-c", int64(20000)).Return(verified("REF-C"), nil)

		const deliveries = 16
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			fresh   int
			failure error
		)
		for i := 0; i < deliveries; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-c"})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failure = err
					return
				}
				if !result.AlreadyProcessed {
					fresh++
				}
			}()
		}
		wg.Wait()

		require.NoError(t, failure)
		assert.Equal(t, 1, fresh)
		assert.Equal(t, "20000.00", f.store.balance(2))
	})

	t.Run("should report unknown authority without mutation", func(t *testing.T) {
		f := newFixture(t)
		f.startPending(t, 5000, "tok-1")

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "nope"})

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		assert.Equal(t, entity.StatusPending, f.store.transaction(1).Status)
		assert.Equal(t, "0.00", f.store.balance(2))
		assert.Zero(t, f.store.commits)
	})

	t.Run("should treat missing authority as not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "  "})

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("should short-circuit cancellations without verifying", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 5000, "tok-x")

		result, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-x", Status: "NOK"})

		require.NoError(t, err)
		assert.Equal(t, MessagePaymentFailed, result.Message)
		assert.Equal(t, entity.StatusFailed, result.Status)
		assert.False(t, result.AlreadyProcessed)
		assert.Equal(t, entity.StatusFailed, f.store.transaction(id).Status)
		assert.Equal(t, "0.00", f.store.balance(2))
		f.client.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should mark failed when provider rejects", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 5000, "tok-r")
		f.client.EXPECT().Verify(mock.Anything, "tok-r", int64(5000)).
			Return(&gateway.VerifyResult{Success: false, Raw: json.RawMessage(`{"code":-51}`)}, nil).Once()

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-r"})

		assert.ErrorIs(t, err, errs.ErrVerificationFailed)
		txn := f.store.transaction(id)
		assert.Equal(t, entity.StatusFailed, txn.Status)
		assert.Nil(t, txn.ReferenceID)
		assert.Equal(t, "0.00", f.store.balance(2))

		again, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-r"})
		require.NoError(t, err)
		assert.Equal(t, MessagePaymentFailed, again.Message)
		assert.True(t, again.AlreadyProcessed)
	})

	t.Run("should keep row pending on transport error and succeed on retry", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 5000, "tok-t")
		f.client.EXPECT().Verify(mock.Anything, "tok-t", int64(5000)).
			Return(nil, errs.NewGatewayTransportError("payir", "verify", 502, "bad gateway")).Once()

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-t"})

		assert.ErrorIs(t, err, errs.ErrGatewayTransport)
		assert.Equal(t, entity.StatusPending, f.store.transaction(id).Status)

		f.client.EXPECT().Verify(mock.Anything, "tok-t", int64(5000)).Return(verified("REF-T"), nil).Once()

		result, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-t"})
		require.NoError(t, err)
		assert.Equal(t, MessageVerified, result.Message)
		assert.Equal(t, "5000.00", f.store.balance(2))
	})

	t.Run("should keep row pending when its gateway is no longer registered", func(t *testing.T) {
		f := newFixture(t)
		f.store.addUser(3, 0, false)
		authority := "zp-1"
		txn, err := entity.NewPendingCredit(3, 5000, "zarinpal", "", callbackURL, fixedClock{})
		require.NoError(t, err)
		require.NoError(t, f.store.GetTransactionRepository(context.Background()).Create(context.Background(), txn))
		require.NoError(t, f.store.GetTransactionRepository(context.Background()).SetAuthority(context.Background(), txn.ID, authority))
		f.resolver.EXPECT().Resolve("zarinpal").Return(nil, errs.ErrUnsupportedGateway).Once()

		_, err = f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: authority})

		assert.ErrorIs(t, err, errs.ErrGatewayTransport)
		assert.Equal(t, entity.StatusPending, f.store.transaction(txn.ID).Status)
	})

	t.Run("should fail a cancelled payment even when its gateway is no longer registered", func(t *testing.T) {
		f := newFixture(t)
		f.store.addUser(3, 0, false)
		authority := "zp-2"
		txn, err := entity.NewPendingCredit(3, 5000, "zarinpal", "", callbackURL, fixedClock{})
		require.NoError(t, err)
		require.NoError(t, f.store.GetTransactionRepository(context.Background()).Create(context.Background(), txn))
		require.NoError(t, f.store.GetTransactionRepository(context.Background()).SetAuthority(context.Background(), txn.ID, authority))
		f.resolver.EXPECT().Resolve("zarinpal").Return(nil, errs.ErrUnsupportedGateway).Once()

		result, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: authority, Status: "NOK"})

		require.NoError(t, err)
		assert.Equal(t, MessagePaymentFailed, result.Message)
		assert.Equal(t, entity.StatusFailed, f.store.transaction(txn.ID).Status)
		assert.Equal(t, "0.00", f.store.balance(3))
	})

	t.Run("should keep row pending when the credit would overflow the wallet", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 5000, "tok-big")
		f.store.addUser(2, entity.MaxWholeAmount-1000, false)
		f.client.EXPECT().Verify(mock.Anything, "tok-big", int64(5000)).Return(verified("REF-BIG"), nil).Once()

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-big"})

		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
		assert.Equal(t, entity.StatusPending, f.store.transaction(id).Status)
		assert.Equal(t, "9999998999.00", f.store.balance(2))
	})

	t.Run("should refuse a delivery while another holds the guard", func(t *testing.T) {
		f := newFixture(t)
		guard := lockmocks.NewMockCallbackGuard(t)
		guard.EXPECT().Acquire(mock.Anything, "tok-g").Return(false, func() {}, nil).Once()
		f.service.WithCallbackGuard(guard)

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-g"})

		assert.ErrorIs(t, err, errs.ErrCallbackInProgress)
	})

	t.Run("should continue when the guard store fails open", func(t *testing.T) {
		f := newFixture(t)
		f.startPending(t, 5000, "tok-o")
		released := false
		guard := lockmocks.NewMockCallbackGuard(t)
		guard.EXPECT().Acquire(mock.Anything, "tok-o").
			Return(true, func() { released = true }, assert.AnError).Once()
		f.service.WithCallbackGuard(guard)
		f.client.EXPECT().Verify(mock.Anything, "tok-o", int64(5000)).Return(verified("REF-O"), nil).Once()

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-o"})

		require.NoError(t, err)
		assert.True(t, released)
		assert.Equal(t, "5000.00", f.store.balance(2))
	})

	t.Run("should publish and record metrics after crediting", func(t *testing.T) {
		f := newFixture(t)
		id := f.startPending(t, 7000, "tok-p")
		f.client.EXPECT().Verify(mock.Anything, "tok-p", int64(7000)).Return(verified("REF-P"), nil).Once()

		publisher := eventmocks.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt event.PaymentEvent) bool {
			return evt.Type == event.TypeWalletCredited &&
				evt.TransactionID == id &&
				evt.Amount == "7000.00" &&
				evt.Balance == "7000.00" &&
				evt.ReferenceID == "REF-P" &&
				evt.OccurredAt.Equal(testNow)
		})).Return(nil).Once()

		metrics := coremocks.NewMockPaymentMetrics(t)
		metrics.EXPECT().ObserveGatewayCall("payir", "verify", mock.Anything, nil).Once()
		metrics.EXPECT().ObserveCallback("payir", "completed").Once()
		metrics.EXPECT().ObserveCredit("payir", float64(7000)).Once()

		f.service.WithPublisher(publisher).WithMetrics(metrics)

		_, err := f.service.HandleCallback(context.Background(), usecase.CallbackRequest{Authority: "tok-p"})
		require.NoError(t, err)
	})
}

func TestService_AdminRecharge(t *testing.T) {
	admin := usecase.Principal{UserID: 1, IsAdmin: true}

	t.Run("should credit and record a completed ledger row", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.service.AdminRecharge(context.Background(), admin,
			usecase.AdminRechargeRequest{UserID: 2, Amount: 2500})

		require.NoError(t, err)
		assert.Equal(t, "2500.00", result.Balance)
		assert.Equal(t, uint64(2), result.UserID)
		assert.Equal(t, "2500.00", f.store.balance(2))

		txn := f.store.transaction(result.TransactionID)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, entity.GatewayAdmin, txn.Gateway)
		assert.Equal(t, DefaultRechargeDescription, txn.Description)
		assert.Nil(t, txn.Authority)
	})

	t.Run("should forbid non-admin principals", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AdminRecharge(context.Background(), usecase.Principal{UserID: 2},
			usecase.AdminRechargeRequest{UserID: 2, Amount: 2500})

		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Zero(t, f.store.transactionCount())
	})

	t.Run("should leave no ledger row for an unknown user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AdminRecharge(context.Background(), admin,
			usecase.AdminRechargeRequest{UserID: 404, Amount: 2500})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Zero(t, f.store.transactionCount())
	})

	t.Run("should validate amount and user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AdminRecharge(context.Background(), admin, usecase.AdminRechargeRequest{UserID: 2, Amount: 10})
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = f.service.AdminRecharge(context.Background(), admin, usecase.AdminRechargeRequest{Amount: 2500})
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = f.service.AdminRecharge(context.Background(), admin,
			usecase.AdminRechargeRequest{UserID: 2, Amount: 1_000_000_000_000})
		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "amount", validationErr.Field)

		assert.Zero(t, f.store.transactionCount())
		assert.Equal(t, "0.00", f.store.balance(2))
	})

	t.Run("should reject a recharge that overflows the balance", func(t *testing.T) {
		f := newFixture(t)
		f.store.addUser(3, entity.MaxWholeAmount-1000, false)

		_, err := f.service.AdminRecharge(context.Background(), admin,
			usecase.AdminRechargeRequest{UserID: 3, Amount: 5000})

		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Zero(t, f.store.transactionCount())
		assert.Equal(t, "9999998999.00", f.store.balance(3))
	})
}

func TestParseCallbackParams(t *testing.T) {
	testCases := []struct {
		name      string
		values    map[string][]string
		authority string
		status    string
	}{
		{"zarinpal", map[string][]string{"Authority": {"A000123"}, "Status": {"OK"}}, "A000123", "OK"},
		{"payir", map[string][]string{"token": {"tok-1"}, "status": {"1"}}, "tok-1", "1"},
		{"case insensitive", map[string][]string{"AUTHORITY": {" A9 "}}, "A9", ""},
		{"exact key wins", map[string][]string{"Authority": {"exact"}, "authority": {"lower"}}, "exact", ""},
		{"empty", map[string][]string{}, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := ParseCallbackParams(tc.values)
			assert.Equal(t, tc.authority, req.Authority)
			assert.Equal(t, tc.status, req.Status)
		})
	}
}
