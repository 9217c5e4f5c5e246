package service

import (
	"context"
	"strings"

	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/internal/locking"
	"concurrent-ledger/internal/metrics"
	"concurrent-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AccountServiceImpl implements ports.AccountService. Every mutation runs
// its read-modify-write under the account's lock from the shared lock
// manager, so single-key operations and transfers serialize on the same
// mutex per id.
type AccountServiceImpl struct {
	store ports.AccountStore
	locks *locking.Manager
	log   zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(store ports.AccountStore, locks *locking.Manager, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		store: store,
		locks: locks,
		log:   log,
	}
}

// Create makes a new account with the given non-negative initial balance.
// Creation of distinct ids proceeds in parallel; concurrent creation of the
// same id serializes on the per-account lock so exactly one succeeds.
func (s *AccountServiceImpl) Create(ctx context.Context, id string, initialBalance decimal.Decimal) (*domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Validation("account id is required")
	}
	if initialBalance.IsNegative() {
		return nil, apperror.Validation("initial balance cannot be negative")
	}

	mu := s.locks.LockFor(id)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}
	if exists {
		return nil, apperror.ErrAccountExists(id)
	}

	account := domain.NewAccount(id, initialBalance)
	if err := s.store.Put(ctx, account); err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}

	metrics.AccountsCreated.Inc()
	s.log.Info().
		Str("account_id", id).
		Str("initial_balance", initialBalance.String()).
		Msg("account created")

	return account, nil
}

// Get fetches an account without locking.
func (s *AccountServiceImpl) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(id)
	}
	return account, nil
}

// List returns all accounts.
func (s *AccountServiceImpl) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}
	return accounts, nil
}

// SetBalance overwrites the account balance. The negative check runs before
// any lock is taken.
func (s *AccountServiceImpl) SetBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error) {
	if balance.IsNegative() {
		return nil, apperror.Validation("balance cannot be negative")
	}

	mu := s.locks.LockFor(id)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(id)
	}

	updated := account.WithBalance(balance)
	if err := s.store.Put(ctx, updated); err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}

	s.log.Info().
		Str("account_id", id).
		Str("balance", balance.String()).
		Msg("balance set")

	return updated, nil
}

// AdjustBalance adds delta (possibly negative) to the balance under the
// account lock. A result below zero fails with insufficient funds and
// leaves the balance untouched.
func (s *AccountServiceImpl) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (*domain.Account, error) {
	mu := s.locks.LockFor(id)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(id)
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, apperror.ErrInsufficientFunds(id)
	}

	updated := account.WithBalance(newBalance)
	if err := s.store.Put(ctx, updated); err != nil {
		return nil, apperror.ErrStoreFailure(err)
	}

	s.log.Debug().
		Str("account_id", id).
		Str("delta", delta.String()).
		Str("balance", newBalance.String()).
		Msg("balance adjusted")

	return updated, nil
}

// Delete removes an account under its lock, so deletion never interleaves
// with an in-flight mutation on the same id.
func (s *AccountServiceImpl) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Validation("account id is required")
	}

	mu := s.locks.LockFor(id)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return apperror.ErrStoreFailure(err)
	}
	if !exists {
		return apperror.ErrAccountNotFound(id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return apperror.ErrStoreFailure(err)
	}

	s.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}
