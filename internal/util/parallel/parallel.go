// Package parallel runs independent work items on a bounded number of
// goroutines while keeping results in input order.
package parallel

import (
	"context"
	"sync"
)

// Result is the outcome for one input item.
type Result[R any] struct {
	Value R
	Err   error
}

// Map applies fn to every item using at most workers goroutines. Result i
// belongs to items[i]. Items not started before ctx is canceled carry ctx's
// error.
func Map[T any, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]Result[R], len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i] = Result[R]{Err: err}
					continue
				}
				v, err := fn(ctx, items[i])
				results[i] = Result[R]{Value: v, Err: err}
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return results
}
