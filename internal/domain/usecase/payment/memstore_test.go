package payment

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/persistence"
)

type memTxKey struct{}

// memStore is an in-memory ledger. A unit of work holds txLock for its whole duration,
// which is at least as strict as the row locks the database takes.
type memStore struct {
	txLock sync.Mutex

	mu     sync.Mutex
	users  map[uint64]entity.User
	txns   map[uint64]entity.Transaction
	nextID uint64

	commits int
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uint64]entity.User),
		txns:  make(map[uint64]entity.Transaction),
	}
}

func (s *memStore) addUser(id uint64, balance int64, isAdmin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = *entity.RestoreUser(id, decimal.NewFromInt(balance), 0, isAdmin, testNow, testNow)
}

func (s *memStore) balance(id uint64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[id]
	return u.FormattedBalance()
}

func (s *memStore) transaction(id uint64) entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txns[id]
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

func (s *memStore) snapshot() (map[uint64]entity.User, map[uint64]entity.Transaction, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make(map[uint64]entity.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	txns := make(map[uint64]entity.Transaction, len(s.txns))
	for k, v := range s.txns {
		txns[k] = v
	}
	return users, txns, s.nextID
}

func (s *memStore) restore(users map[uint64]entity.User, txns map[uint64]entity.Transaction, nextID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.txns, s.nextID = users, txns, nextID
}

// UnitOfWork

func (s *memStore) Begin(ctx context.Context) (context.Context, error) {
	s.txLock.Lock()
	return context.WithValue(ctx, memTxKey{}, true), nil
}

func (s *memStore) Commit(ctx context.Context) error {
	if !s.InTransaction(ctx) {
		return errs.ErrNoActiveTransaction
	}
	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
	s.txLock.Unlock()
	return nil
}

func (s *memStore) Rollback(ctx context.Context) error {
	if !s.InTransaction(ctx) {
		return errs.ErrNoActiveTransaction
	}
	s.txLock.Unlock()
	return nil
}

func (s *memStore) InTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(memTxKey{}).(bool)
	return v
}

func (s *memStore) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if s.InTransaction(ctx) {
		return fn(ctx)
	}

	txCtx, _ := s.Begin(ctx)
	users, txns, nextID := s.snapshot()
	if err := fn(txCtx); err != nil {
		s.restore(users, txns, nextID)
		_ = s.Rollback(txCtx)
		return err
	}
	return s.Commit(txCtx)
}

func (s *memStore) GetUserRepository(context.Context) persistence.UserRepository {
	return memUserRepo{s}
}

func (s *memStore) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return memTxnRepo{s}
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return &u, nil
}

func (r memUserRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	if !r.s.InTransaction(ctx) {
		return nil, errs.ErrNoActiveTransaction
	}
	return r.GetByID(ctx, id)
}

func (r memUserRepo) UpdateCreditBalance(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *user
	return nil
}

type memTxnRepo struct{ s *memStore }

func (r memTxnRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[txn.UserID]; !ok {
		return errs.ErrUserNotFound
	}
	r.s.nextID++
	txn.ID = r.s.nextID
	r.s.txns[txn.ID] = *txn
	return nil
}

func (r memTxnRepo) SetAuthority(_ context.Context, id uint64, authority string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.txns {
		if t.Authority != nil && *t.Authority == authority {
			return errs.ErrDuplicateAuthority
		}
	}
	t, ok := r.s.txns[id]
	if !ok || t.Authority != nil {
		return errs.ErrTransactionNotFound
	}
	t.Authority = &authority
	r.s.txns[id] = t
	return nil
}

func (r memTxnRepo) GetByID(_ context.Context, id uint64) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.txns[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return &t, nil
}

func (r memTxnRepo) GetByAuthority(_ context.Context, authority string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.txns {
		if t.Authority != nil && *t.Authority == authority {
			return &t, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

func (r memTxnRepo) GetByAuthorityForUpdate(ctx context.Context, authority string) (*entity.Transaction, error) {
	if !r.s.InTransaction(ctx) {
		return nil, errs.ErrNoActiveTransaction
	}
	return r.GetByAuthority(ctx, authority)
}

func (r memTxnRepo) Update(_ context.Context, txn *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.txns[txn.ID]; !ok {
		return errs.ErrTransactionNotFound
	}
	r.s.txns[txn.ID] = *txn
	return nil
}

// memWallet credits through the store's user repository the way BalanceUpdater does
type memWallet struct{ s *memStore }

func (w memWallet) Credit(txCtx context.Context, userID uint64, amount decimal.Decimal) (*entity.User, error) {
	if !w.s.InTransaction(txCtx) {
		return nil, errs.ErrNoActiveTransaction
	}
	repo := w.s.GetUserRepository(txCtx)
	user, err := repo.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Credit(amount, fixedClock{}); err != nil {
		return nil, err
	}
	if err := repo.UpdateCreditBalance(txCtx, user); err != nil {
		return nil, err
	}
	return user, nil
}
