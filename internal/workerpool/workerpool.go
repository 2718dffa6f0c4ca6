// Package workerpool provides the single concurrency abstraction the
// mixer core uses for both of its parallelism idioms: element-wise batch
// processing (order-preserving, e.g. re-encrypting each ciphertext in a
// shuffle) and task-level joins (e.g. running the permutation proof
// concurrently with the re-encryption pass and shuffle proof in the
// one-shot variant). Both are
// expressed as a bounded errgroup.Group, grounded on
// vocdoni-davinci-node's worker-pool usage of golang.org/x/sync/errgroup.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MapOrdered applies fn to every element of in concurrently, bounded to
// at most maxWorkers in flight, and returns the results in the same
// order as in. It returns the first error encountered (if any); on error
// the context passed to fn is cancelled, and MapOrdered returns once every
// call to fn that was started has returned. Calls are not interrupted:
// fn stops early only if it checks its context.
func MapOrdered[T, R any](ctx context.Context, maxWorkers int, in []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}

	out := make([]R, len(in))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxWorkers)

	for i, item := range in {
		i, item := i, item
		group.Go(func() error {
			result, err := fn(groupCtx, item)
			if err != nil {
				return err
			}
			out[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Join runs every task in tasks concurrently and waits for all of them,
// used for the one-shot PreShuffleAndShuffle variant's task-level join of
// the permutation proof and the re-encryption-and-shuffle-proof task. It
// returns the first
// error encountered, if any.
func Join(ctx context.Context, tasks ...func(context.Context) error) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		group.Go(func() error {
			return task(groupCtx)
		})
	}
	return group.Wait()
}
