package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is an identified, non-negative monetary balance. The identifier is
// immutable once created; the balance is only mutated while the account's
// lock is held.
type Account struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewAccount creates an account with the given initial balance.
func NewAccount(id string, initialBalance decimal.Decimal) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        id,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy of the account. The store hands out and accepts
// copies so no caller ever aliases the stored value.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// WithBalance returns a copy of the account carrying the new balance.
func (a *Account) WithBalance(balance decimal.Decimal) *Account {
	cp := *a
	cp.Balance = balance
	cp.UpdatedAt = time.Now().UTC()
	return &cp
}
