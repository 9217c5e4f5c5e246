package service

import (
	"context"

	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/internal/locking"
	"concurrent-ledger/internal/metrics"
	"concurrent-ledger/internal/transfer"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferServiceImpl implements ports.TransferService on top of the
// transfer executor. It shares the lock manager with the account service so
// transfers and single-account mutations coordinate on the same per-id
// mutexes.
type TransferServiceImpl struct {
	executor *transfer.Executor
	locks    *locking.Manager
}

// NewTransferService creates a transfer service with the default stage
// chain: validation, account loading, fee, sufficient funds.
func NewTransferService(store ports.AccountStore, locks *locking.Manager, fees transfer.FeePolicy, log zerolog.Logger) *TransferServiceImpl {
	return NewTransferServiceWithStages(store, locks, transfer.DefaultStages(store, fees), log)
}

// NewTransferServiceWithStages creates a transfer service with a custom
// stage chain, for tests and extensions.
func NewTransferServiceWithStages(store ports.AccountStore, locks *locking.Manager, stages []transfer.Stage, log zerolog.Logger) *TransferServiceImpl {
	return &TransferServiceImpl{
		executor: transfer.NewExecutor(store, stages, locks, log),
		locks:    locks,
	}
}

// Transfer moves amount from fromID to toID atomically. Locks for both
// accounts are held for the duration and released on every exit path.
func (s *TransferServiceImpl) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.TransferResult, error) {
	result, err := s.executor.Execute(ctx, transfer.NewContext(fromID, toID, amount))
	if err != nil {
		metrics.TransfersTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.TransfersTotal.WithLabelValues("success").Inc()
	metrics.LocksTracked.Set(float64(s.locks.Count()))
	return result, nil
}
