package transfer

import (
	"context"
	"strings"

	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// ValidationStage rejects malformed transfer requests: missing ids, a
// non-positive amount, or a self-transfer.
type ValidationStage struct{}

func (ValidationStage) Name() string { return "validation" }

func (ValidationStage) Process(_ context.Context, tc *Context, next func() error) error {
	if strings.TrimSpace(tc.FromID) == "" {
		return apperror.Validation("from account id is required")
	}
	if strings.TrimSpace(tc.ToID) == "" {
		return apperror.Validation("to account id is required")
	}
	if !tc.Amount.IsPositive() {
		return apperror.Validation("amount must be greater than zero")
	}
	if tc.FromID == tc.ToID {
		return apperror.Validation("cannot transfer to the same account")
	}
	return next()
}

// LoadingStage fetches both accounts from the store into the context. It
// must run before any stage reading loaded accounts.
type LoadingStage struct {
	store ports.AccountStore
}

// NewLoadingStage creates a LoadingStage backed by the given store.
func NewLoadingStage(store ports.AccountStore) *LoadingStage {
	return &LoadingStage{store: store}
}

func (*LoadingStage) Name() string { return "account-loading" }

func (s *LoadingStage) Process(ctx context.Context, tc *Context, next func() error) error {
	from, err := s.store.Get(ctx, tc.FromID)
	if err != nil {
		return apperror.ErrStoreFailure(err)
	}
	if from == nil {
		return apperror.ErrAccountNotFound(tc.FromID)
	}

	to, err := s.store.Get(ctx, tc.ToID)
	if err != nil {
		return apperror.ErrStoreFailure(err)
	}
	if to == nil {
		return apperror.ErrAccountNotFound(tc.ToID)
	}

	tc.FromAccount = from
	tc.ToAccount = to
	return next()
}

// FeePolicy derives the fee charged on top of a transfer amount.
type FeePolicy interface {
	Fee(amount decimal.Decimal) decimal.Decimal
}

// ZeroFee charges nothing. The default policy.
type ZeroFee struct{}

func (ZeroFee) Fee(decimal.Decimal) decimal.Decimal { return decimal.Zero }

// PercentFee charges a percentage of the amount plus a fixed component,
// rounded to two places.
type PercentFee struct {
	Percent decimal.Decimal // e.g. 1.5 for 1.5%
	Fixed   decimal.Decimal
}

func (p PercentFee) Fee(amount decimal.Decimal) decimal.Decimal {
	pct := amount.Mul(p.Percent).Div(decimal.NewFromInt(100)).Round(2)
	return pct.Add(p.Fixed)
}

// FeeStage computes the fee via the configured policy and records it on the
// context. The fee is deducted from the source on commit and credited
// nowhere.
type FeeStage struct {
	policy FeePolicy
}

// NewFeeStage creates a FeeStage; a nil policy means zero fee.
func NewFeeStage(policy FeePolicy) *FeeStage {
	if policy == nil {
		policy = ZeroFee{}
	}
	return &FeeStage{policy: policy}
}

func (*FeeStage) Name() string { return "fee" }

func (s *FeeStage) Process(_ context.Context, tc *Context, next func() error) error {
	tc.Fee = s.policy.Fee(tc.Amount)
	return next()
}

// FundsStage verifies the source balance covers amount plus fee. It must run
// after loading and before commit.
type FundsStage struct{}

func (FundsStage) Name() string { return "sufficient-funds" }

func (FundsStage) Process(_ context.Context, tc *Context, next func() error) error {
	if tc.FromAccount.Balance.LessThan(tc.TotalDebit()) {
		return apperror.ErrInsufficientFunds(tc.FromID)
	}
	return next()
}

// DefaultStages returns the standard chain: validation, loading, fee,
// sufficient funds. Loading must precede funds; extensions slot in anywhere
// that respects those two constraints.
func DefaultStages(store ports.AccountStore, fees FeePolicy) []Stage {
	return []Stage{
		ValidationStage{},
		NewLoadingStage(store),
		NewFeeStage(fees),
		FundsStage{},
	}
}
