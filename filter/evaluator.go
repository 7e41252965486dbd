package filter

import (
	"context"
	"runtime"
	"sync"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*evaluatorSettings)

type evaluatorSettings struct {
	workerCount int
	batchSize   int
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(s *evaluatorSettings) {
		s.workerCount = workers
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(s *evaluatorSettings) {
		s.batchSize = size
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator
type ConcurrentEvaluator[T any] struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

var (
	_ Evaluator[int]      = (*ConcurrentEvaluator[int])(nil)
	_ BatchEvaluator[int] = (*ConcurrentEvaluator[int])(nil)
)

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator[T any](opts ...EvaluatorOption) *ConcurrentEvaluator[T] {
	s := evaluatorSettings{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.batchSize <= 0 {
		s.batchSize = 1
	}

	return &ConcurrentEvaluator[T]{
		workerCount: max(s.workerCount, 1),
		batchSize:   s.batchSize,
		pool:        NewWorkerPool(s.workerCount),
	}
}

// Evaluate returns the records matching filter, in input order
func (e *ConcurrentEvaluator[T]) Evaluate(ctx context.Context, filter CompiledFilter[T], items []T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}

	// Small inputs and filters that cannot run in parallel stay on this goroutine
	if len(items) < e.batchSize || !filter.IsThreadSafe() {
		return e.evaluateSequential(ctx, filter, items)
	}

	return e.evaluateConcurrent(ctx, filter, items)
}

// EvaluateBatch evaluates multiple filters against the same records concurrently.
// Filters that fail are left out of the result.
func (e *ConcurrentEvaluator[T]) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter[T], items []T) (map[string][]T, error) {
	results := make(map[string][]T, len(filters))
	if len(filters) == 0 || len(items) == 0 {
		return results, nil
	}

	resultChan := make(chan BatchResult[T], len(filters))

	var wg sync.WaitGroup
	for name, filter := range filters {
		wg.Add(1)

		err := e.pool.Submit(func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				resultChan <- BatchResult[T]{FilterName: name, Error: err}
				return
			}

			// Nested chunking would submit to the pool from a pool worker
			matches, err := e.evaluateSequential(ctx, filter, items)
			resultChan <- BatchResult[T]{FilterName: name, Matches: matches, Error: err}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		if result.Error != nil {
			continue
		}
		results[result.FilterName] = result.Matches
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *ConcurrentEvaluator[T]) evaluateSequential(ctx context.Context, filter CompiledFilter[T], items []T) ([]T, error) {
	matches := make([]T, 0, len(items)/4)
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// evaluateConcurrent splits items into chunks evaluated on the worker pool
func (e *ConcurrentEvaluator[T]) evaluateConcurrent(ctx context.Context, filter CompiledFilter[T], items []T) ([]T, error) {
	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunkCount := (len(items) + chunkSize - 1) / chunkSize

	// each chunk writes only its own slot
	chunks := make([][]T, chunkCount)
	var wg sync.WaitGroup

	for index := 0; index < chunkCount; index++ {
		start := index * chunkSize
		chunk := items[start:min(start+chunkSize, len(items))]

		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}

			matches := make([]T, 0, len(chunk)/4)
			for _, item := range chunk {
				if filter.Evaluate(item) {
					matches = append(matches, item)
				}
			}
			chunks[index] = matches
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	matches := make([]T, 0, total)
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	return matches, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator[T]) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}
