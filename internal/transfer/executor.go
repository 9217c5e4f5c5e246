package transfer

import (
	"context"

	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/internal/locking"
	"concurrent-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Executor coordinates one transfer: it acquires the lock pair, drives the
// stage chain, commits the debit and credit in a single batch write, and
// releases the locks on every exit path.
type Executor struct {
	store  ports.AccountStore
	stages []Stage
	locks  *locking.Manager
	log    zerolog.Logger
}

// NewExecutor creates an Executor over the given store, stage chain and
// shared lock manager.
func NewExecutor(store ports.AccountStore, stages []Stage, locks *locking.Manager, log zerolog.Logger) *Executor {
	return &Executor{
		store:  store,
		stages: stages,
		locks:  locks,
		log:    log,
	}
}

// Execute runs the transfer described by tc. The commit is the innermost
// continuation of the stage chain, so any stage error prevents it entirely;
// on success both account writes become visible together via PutAll.
func (e *Executor) Execute(ctx context.Context, tc *Context) (*domain.TransferResult, error) {
	pair, err := e.locks.AcquirePair(tc.FromID, tc.ToID)
	if err != nil {
		return nil, err
	}
	defer e.locks.Release(pair)

	var result *domain.TransferResult
	commit := func() error {
		from := tc.FromAccount.WithBalance(tc.FromAccount.Balance.Sub(tc.TotalDebit()))
		to := tc.ToAccount.WithBalance(tc.ToAccount.Balance.Add(tc.Amount))

		if err := e.store.PutAll(ctx, from, to); err != nil {
			return apperror.ErrStoreFailure(err)
		}

		result = &domain.TransferResult{
			TransferID:  uuid.New(),
			FromAccount: from,
			ToAccount:   to,
			Amount:      tc.Amount,
			Fee:         tc.Fee,
		}
		return nil
	}

	if err := chain(ctx, tc, e.stages, 0, commit)(); err != nil {
		e.log.Debug().
			Err(err).
			Str("from", tc.FromID).
			Str("to", tc.ToID).
			Str("amount", tc.Amount.String()).
			Msg("transfer aborted")
		return nil, err
	}

	e.log.Info().
		Str("transfer_id", result.TransferID.String()).
		Str("from", tc.FromID).
		Str("to", tc.ToID).
		Str("amount", tc.Amount.String()).
		Str("fee", tc.Fee.String()).
		Msg("transfer committed")

	return result, nil
}
