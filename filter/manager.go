package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager holds named filters, such as the presets from the config file
type Manager[T any] struct {
	compiler  Compiler[T]
	evaluator *ConcurrentEvaluator[T]
	filters   map[string]CompiledFilter[T]
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption[T any] func(*Manager[T])

// WithCompiler sets a custom compiler
func WithCompiler[T any](compiler Compiler[T]) ManagerOption[T] {
	return func(m *Manager[T]) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator[T any](evaluator *ConcurrentEvaluator[T]) ManagerOption[T] {
	return func(m *Manager[T]) {
		m.evaluator = evaluator
	}
}

// NewManager creates a filter manager for records exposed through env
func NewManager[T any](env Environment[T], opts ...ManagerOption[T]) *Manager[T] {
	m := &Manager[T]{
		filters: make(map[string]CompiledFilter[T]),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.compiler == nil {
		m.compiler = NewExprCompiler(env, WithCache(100))
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator[T]()
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager[T]) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// if any expression fails to compile.
func (m *Manager[T]) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter[T], len(filters))

	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// UnregisterFilter removes a filter
func (m *Manager[T]) UnregisterFilter(name string) {
	m.mu.Lock()
	delete(m.filters, name)
	m.mu.Unlock()
}

// GetFilter returns a compiled filter by name
func (m *Manager[T]) GetFilter(name string) (CompiledFilter[T], bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager[T]) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Apply compiles expression (or reuses the cached program) and evaluates it
func (m *Manager[T]) Apply(ctx context.Context, expression string, items []T) ([]T, error) {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, filter, items)
}

// EvaluateFilter evaluates a single registered filter
func (m *Manager[T]) EvaluateFilter(ctx context.Context, name string, items []T) ([]T, error) {
	filter, exists := m.GetFilter(name)
	if !exists {
		return nil, fmt.Errorf("filter '%s' not found", name)
	}

	return m.evaluator.Evaluate(ctx, filter, items)
}

// EvaluateAll evaluates all registered filters
func (m *Manager[T]) EvaluateAll(ctx context.Context, items []T) (map[string][]T, error) {
	m.mu.RLock()
	filters := maps.Clone(m.filters)
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, items)
}

// EvaluateSelected evaluates only the specified filters
func (m *Manager[T]) EvaluateSelected(ctx context.Context, filterNames []string, items []T) (map[string][]T, error) {
	m.mu.RLock()
	filters := make(map[string]CompiledFilter[T], len(filterNames))
	for _, name := range filterNames {
		filter, exists := m.filters[name]
		if !exists {
			m.mu.RUnlock()
			return nil, fmt.Errorf("filter '%s' not found", name)
		}
		filters[name] = filter
	}
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, items)
}

// Close gracefully shuts down the manager
func (m *Manager[T]) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}
