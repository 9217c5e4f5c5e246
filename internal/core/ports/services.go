package ports

import (
	"context"

	"concurrent-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// --- Service Ports (Business Logic) ---

// AccountService defines single-account operations. Every mutation takes the
// per-account lock; reads do not.
type AccountService interface {
	Create(ctx context.Context, id string, initialBalance decimal.Decimal) (*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SetBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error)
	// AdjustBalance atomically adds delta (possibly negative) to the balance.
	// This is the only safe way to increment under concurrency; a separate
	// read followed by SetBalance reintroduces lost-update races.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// TransferService moves funds between two accounts atomically.
type TransferService interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.TransferResult, error)
}
