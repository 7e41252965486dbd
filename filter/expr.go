package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/nhlapi/nhl"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter[T any] struct {
	expression string
	program    *vm.Program
	env        Environment[T]
	helpers    map[string]any
}

type compilerSettings struct {
	cacheSize int
	helpers   map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*compilerSettings)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(s *compilerSettings) {
		s.cacheSize = size
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(s *compilerSettings) {
		maps.Copy(s.helpers, funcs)
	}
}

// NewExprCompiler creates an expr-based compiler for records exposed through env
func NewExprCompiler[T any](env Environment[T], opts ...ExprCompilerOption) CachingCompiler[T] {
	settings := &compilerSettings{helpers: createHelperFunctions()}
	for _, opt := range opts {
		opt(settings)
	}

	c := &exprCompiler[T]{
		env:     env,
		helpers: settings.helpers,
	}
	if settings.cacheSize > 0 {
		c.cache = newLRUCache[CompiledFilter[T]](settings.cacheSize)
	}

	// Type-check against a zero record so unknown names fail at compile time
	var zero T
	c.checkEnv = make(map[string]any, len(c.helpers)+32)
	maps.Copy(c.checkEnv, c.helpers)
	maps.Copy(c.checkEnv, env.Fields(zero))

	return c
}

// NewStandingsCompiler compiles filters over standings rows
func NewStandingsCompiler(opts ...ExprCompilerOption) CachingCompiler[nhl.Standing] {
	return NewExprCompiler(Standings, opts...)
}

// NewGamesCompiler compiles filters over schedule games
func NewGamesCompiler(opts ...ExprCompilerOption) CachingCompiler[nhl.ScheduleGame] {
	return NewExprCompiler(Games, opts...)
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler[T any] struct {
	env      Environment[T]
	helpers  map[string]any
	checkEnv map[string]any
	cache    *lruCache[CompiledFilter[T]]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler[T]) Compile(expression string) (CompiledFilter[T], error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
			Err:        ErrEmptyExpression,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.checkEnv),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &exprFilter[T]{
		expression: expression,
		program:    program,
		env:        c.env,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler[T]) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler[T]) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether item matches. Records that fail at runtime do not match.
func (f *exprFilter[T]) Evaluate(item T) bool {
	ok, err := f.Check(item)
	return err == nil && ok
}

// Check evaluates the filter against item
func (f *exprFilter[T]) Check(item T) (bool, error) {
	env := make(map[string]any, len(f.helpers)+32)
	maps.Copy(env, f.helpers)
	maps.Copy(env, f.env.Fields(item))

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			RecordKind: f.env.Kind,
			Record:     f.env.Label(item),
			Reason:     "expression failed at runtime",
			Err:        err,
		}
	}

	// AsBool at compile time guarantees a bool
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter[T]) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter[T]) IsThreadSafe() bool {
	return true
}

// createHelperFunctions creates the static helpers shared by every environment.
// Names must not shadow expr's operators (contains, startsWith, endsWith) or
// builtins (lower, upper, now).
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 8)

	// Date helpers
	funcs["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}

	// String helpers
	funcs["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["iequals"] = strings.EqualFold

	return funcs
}
