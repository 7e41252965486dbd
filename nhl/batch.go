package nhl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultParallelism is the number of requests FetchMany runs at once.
	DefaultParallelism = 6
	// MaxParallelism caps caller-supplied parallelism.
	MaxParallelism = 20
)

// BatchResult holds the outcome of FetchMany, keyed by input.
type BatchResult[K comparable, T any] struct {
	Results map[K]T
	Failed  map[K]error

	keys []K // input order, duplicates removed
}

// Err joins every per-key failure in input order, or returns nil when all
// succeeded.
func (r BatchResult[K, T]) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, key := range r.keys {
		if err, failed := r.Failed[key]; failed {
			errs = append(errs, fmt.Errorf("%v: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// FetchMany runs fetch for every key with at most parallelism calls in
// flight. A failing key does not cancel the others; each failure is recorded
// in Failed. Duplicate keys are fetched once.
func FetchMany[K comparable, T any](ctx context.Context, keys []K, parallelism int, fetch func(context.Context, K) (T, error)) BatchResult[K, T] {
	result := BatchResult[K, T]{
		Results: make(map[K]T, len(keys)),
		Failed:  make(map[K]error),
	}
	if len(keys) == 0 {
		return result
	}

	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	parallelism = min(parallelism, MaxParallelism)

	var g errgroup.Group
	g.SetLimit(parallelism)

	var mu sync.Mutex
	seen := make(map[K]struct{}, len(keys))

	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result.keys = append(result.keys, key)

		g.Go(func() error {
			value, err := fetch(ctx, key)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[key] = err
				return nil
			}
			result.Results[key] = value
			return nil
		})
	}

	_ = g.Wait()
	return result
}
