// Package transfer implements the staged transfer pipeline and the
// coordinator that drives it under per-account locks.
//
// A transfer runs validation, account loading, fee computation and the
// sufficient-funds check as independent stages over a shared Context.
// Stages can be appended, removed or reordered without touching each other
// or the coordinator; a stage aborts the whole chain, including the final
// commit, by returning an error instead of calling next.
package transfer

import "context"

// Stage is one unit of transfer processing. It inspects or mutates the
// transfer context, then either calls next to proceed or returns an error
// to abort the chain.
type Stage interface {
	// Name identifies the stage in logs.
	Name() string
	Process(ctx context.Context, tc *Context, next func() error) error
}

// chain builds the continuation for the stage at index i; the innermost
// continuation is terminal.
func chain(ctx context.Context, tc *Context, stages []Stage, i int, terminal func() error) func() error {
	if i >= len(stages) {
		return terminal
	}
	return func() error {
		return stages[i].Process(ctx, tc, chain(ctx, tc, stages, i+1, terminal))
	}
}
