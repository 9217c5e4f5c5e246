package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferResult is the outcome of a committed transfer: the updated account
// states, the credited amount and the fee deducted from the source on top of
// it.
type TransferResult struct {
	TransferID  uuid.UUID       `json:"transfer_id"`
	FromAccount *Account        `json:"from_account"`
	ToAccount   *Account        `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
}
