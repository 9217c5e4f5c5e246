// Package memory provides the default in-process AccountStore.
package memory

import (
	"context"
	"fmt"
	"sync"

	"concurrent-ledger/internal/core/domain"
)

// AccountStore implements ports.AccountStore on a mutex-guarded map.
//
// Values are stored and handed out by copy, so callers never alias stored
// state. PutAll stages every write before touching the map: a validation
// failure leaves the store byte-for-byte unchanged, and the merge happens
// under one write lock so readers observe either none or all of the batch.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewAccountStore creates an empty in-memory store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]domain.Account),
	}
}

// Get fetches an account by id. Missing accounts return (nil, nil).
func (s *AccountStore) Get(_ context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return acc.Clone(), nil
}

// Put stores a single account.
func (s *AccountStore) Put(_ context.Context, account *domain.Account) error {
	if account == nil {
		return fmt.Errorf("cannot store nil account")
	}
	if account.ID == "" {
		return fmt.Errorf("account id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = *account
	return nil
}

// PutAll stores all accounts atomically. Phase 1 validates every argument
// into a staging map without touching the store; phase 2 merges the staging
// map under the write lock in one step.
func (s *AccountStore) PutAll(_ context.Context, accounts ...*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	staging := make(map[string]domain.Account, len(accounts))
	for _, account := range accounts {
		if account == nil {
			return fmt.Errorf("cannot store nil account")
		}
		if account.ID == "" {
			return fmt.Errorf("account id is required")
		}
		staging[account.ID] = *account
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, acc := range staging {
		s.accounts[id] = acc
	}
	return nil
}

// Exists reports whether an account with the given id is stored.
func (s *AccountStore) Exists(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok, nil
}

// Delete removes an account. Deleting a missing id is a no-op.
func (s *AccountStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, id)
	return nil
}

// List returns a snapshot of all stored accounts.
func (s *AccountStore) List(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (s *AccountStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.accounts)), nil
}

// HealthCheck implements ports.HealthChecker for the in-memory store.
type HealthCheck struct {
	store *AccountStore
}

// NewHealthCheck creates a health checker for the store.
func NewHealthCheck(store *AccountStore) *HealthCheck {
	return &HealthCheck{store: store}
}

// Ping verifies the store is usable.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.store.Count(ctx)
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "memory-store"
}
