package filter

import (
	"context"
)

// Filter defines the basic interface for record filters
type Filter[T any] interface {
	// Evaluate checks if a record matches the filter criteria
	Evaluate(item T) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter[T any] interface {
	Filter[T]

	// Check evaluates the filter and reports runtime failures instead of
	// treating them as a non-match
	Check(item T) (bool, error)

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler[T any] interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter[T], error)
}

// Evaluator evaluates filters against records
type Evaluator[T any] interface {
	// Evaluate evaluates a filter against all records
	Evaluate(ctx context.Context, filter CompiledFilter[T], items []T) ([]T, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator[T any] interface {
	// EvaluateBatch evaluates multiple filters against records concurrently
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter[T], items []T) (map[string][]T, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler[T any] interface {
	Compiler[T]

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchResult represents the result of evaluating a filter
type BatchResult[T any] struct {
	FilterName string
	Matches    []T
	Error      error
}

// WorkerPool defines the interface for concurrent work execution
type WorkerPool interface {
	// Submit submits work to the pool
	Submit(work func()) error

	// Stop gracefully stops the worker pool
	Stop(ctx context.Context) error
}
