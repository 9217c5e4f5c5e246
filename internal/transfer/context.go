package transfer

import (
	"concurrent-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Context is the per-call mutable state threaded through pipeline stages.
// It is created for one transfer and discarded when the call returns.
type Context struct {
	FromID string
	ToID   string
	Amount decimal.Decimal

	// Populated by the loading stage.
	FromAccount *domain.Account
	ToAccount   *domain.Account

	// Populated by the fee stage.
	Fee decimal.Decimal
}

// NewContext creates a transfer context with a zero fee.
func NewContext(fromID, toID string, amount decimal.Decimal) *Context {
	return &Context{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Fee:    decimal.Zero,
	}
}

// TotalDebit is what the source account pays: the transferred amount plus
// the fee. The destination is credited the amount only.
func (c *Context) TotalDebit() decimal.Decimal {
	return c.Amount.Add(c.Fee)
}
