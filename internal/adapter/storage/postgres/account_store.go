package postgres

import (
	"context"
	"errors"
	"fmt"

	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountStore persists accounts in PostgreSQL. Balances are stored as
// NUMERIC and travel as text to keep decimal precision intact.
type AccountStore struct {
	pool Pool
}

func NewAccountStore(pool Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id         TEXT PRIMARY KEY,
	balance    NUMERIC(20, 4) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the accounts table if it does not exist yet.
func (s *AccountStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("creating schema: %w", err))
	}
	return nil
}

const upsertQuery = `
INSERT INTO accounts (id, balance, created_at, updated_at)
VALUES ($1, $2::numeric, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	balance    = EXCLUDED.balance,
	updated_at = EXCLUDED.updated_at`

func (s *AccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT id, balance::text, created_at, updated_at FROM accounts WHERE id = $1`

	var (
		account domain.Account
		balance string
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&account.ID, &balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("getting account: %w", err))
	}

	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("parsing balance for account %s: %w", id, err))
	}
	return &account, nil
}

func (s *AccountStore) Put(ctx context.Context, account *domain.Account) error {
	if account == nil || account.ID == "" {
		return apperror.Validation("account must have an id")
	}

	_, err := s.pool.Exec(ctx, upsertQuery,
		account.ID, account.Balance.String(), account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("putting account: %w", err))
	}
	return nil
}

// PutAll writes every account in a single transaction; either all rows
// land or none do.
func (s *AccountStore) PutAll(ctx context.Context, accounts ...*domain.Account) error {
	for _, account := range accounts {
		if account == nil || account.ID == "" {
			return apperror.Validation("every account in a batch must have an id")
		}
	}
	if len(accounts) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	for _, account := range accounts {
		_, err := tx.Exec(ctx, upsertQuery,
			account.ID, account.Balance.String(), account.CreatedAt, account.UpdatedAt,
		)
		if err != nil {
			return apperror.ErrStoreFailure(fmt.Errorf("putting account %s: %w", account.ID, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("committing batch: %w", err))
	}
	return nil
}

func (s *AccountStore) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, apperror.ErrStoreFailure(fmt.Errorf("checking account: %w", err))
	}
	return exists, nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("deleting account: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAccountNotFound(id)
	}
	return nil
}

func (s *AccountStore) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT id, balance::text, created_at, updated_at FROM accounts ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("listing accounts: %w", err))
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var (
			account domain.Account
			balance string
		)
		if err := rows.Scan(&account.ID, &balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, apperror.ErrStoreFailure(fmt.Errorf("scanning account: %w", err))
		}
		account.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, apperror.ErrStoreFailure(fmt.Errorf("parsing balance for account %s: %w", account.ID, err))
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("iterating accounts: %w", err))
	}
	return accounts, nil
}

func (s *AccountStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, apperror.ErrStoreFailure(fmt.Errorf("counting accounts: %w", err))
	}
	return count, nil
}
