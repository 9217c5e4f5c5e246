package ports

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

import (
	"context"

	"concurrent-ledger/internal/core/domain"
)

// AccountStore defines persistence operations for accounts.
//
// Implementations must support concurrent readers and writers without any
// synchronization by the caller, and PutAll must be all-or-nothing: either
// every listed account becomes visible with its new value, or (on any
// validation failure) the store is untouched.
//
// Missing accounts are reported as (nil, nil), not as errors.
type AccountStore interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Put(ctx context.Context, account *domain.Account) error
	PutAll(ctx context.Context, accounts ...*domain.Account) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
}
