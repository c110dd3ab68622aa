package vm

import "context"

// Computation is the long-running unit of work behind a Launch.
// Compute may block for an arbitrary time; it should return early when
// ctx is cancelled.
type Computation interface {
	Compute(ctx context.Context) (string, error)
}

// ComputationFunc adapts a plain function to Computation.
type ComputationFunc func(ctx context.Context) (string, error)

// Compute calls f(ctx).
func (f ComputationFunc) Compute(ctx context.Context) (string, error) {
	return f(ctx)
}
