// Package batch runs a per-file operation across many files with bounded
// parallelism, keeping outputs in input order.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const defaultMaxParallel = 4

// Outcome is the result of processing one item.
type Outcome struct {
	Item   string
	Output string
	Err    error
}

// Map applies fn to every item with at most maxParallel concurrent calls
// and returns one Outcome per item, in item order. Errors from fn are
// recorded per item rather than aborting the run. Once ctx is canceled,
// items that have not started record the context error instead of running
// fn.
func Map(
	ctx context.Context,
	items []string,
	maxParallel int,
	fn func(ctx context.Context, item string) (string, error),
) []Outcome {
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}

	outcomes := make([]Outcome, len(items))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for i, item := range items {
		group.Go(func() error {
			var output string
			err := groupCtx.Err()
			if err == nil {
				output, err = fn(groupCtx, item)
			}

			mu.Lock()
			outcomes[i] = Outcome{Item: item, Output: output, Err: err}
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = group.Wait()

	return outcomes
}

// FirstErr returns the first recorded error in item order, or nil.
func FirstErr(outcomes []Outcome) error {
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			return outcome.Err
		}
	}
	return nil
}
