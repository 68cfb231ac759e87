package tasks

import "context"

// Runner executes a batch of tasks and returns once every task has run.
// Tasks keep their own results, so callers read them back in the order they
// were submitted regardless of completion order.
//
//	pool := NewPool(workerCount)
//	pool.Run(ctx, batch)
type Runner interface {
	Run(ctx context.Context, batch []TaskInterface)
}
