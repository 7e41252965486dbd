package filter

import (
	"context"
	"testing"

	"github.com/s0up4200/nhlapi/nhl"
)

func BenchmarkCompileFilter(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `Points > 100`},
		{"complex", `inDivision("A") and Points >= 100 and PointPct > 0.6`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			compiler := NewStandingsCompiler()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := compiler.Compile(tc.expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileFilterWithCache(b *testing.B) {
	compiler := NewStandingsCompiler(WithCache(100))
	expression := `inConference("W") and Wins > 40`

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := compiler.Compile(expression); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateFilter(b *testing.B) {
	rows := generateTestStandings(1000)
	filter, err := NewStandingsCompiler().Compile(`inConference("W") and Points > 60`)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		matches := 0
		for _, row := range rows {
			if filter.Evaluate(row) {
				matches++
			}
		}
		_ = matches
	}
}

func BenchmarkEvaluateConcurrent(b *testing.B) {
	rows := generateTestStandings(10000)
	filter, err := NewStandingsCompiler().Compile(`onStreak("W", 3) and GoalDiff > 0`)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	evaluators := []struct {
		name      string
		evaluator *ConcurrentEvaluator[nhl.Standing]
	}{
		{"workers-1", NewConcurrentEvaluator[nhl.Standing](WithWorkers(1))},
		{"workers-4", NewConcurrentEvaluator[nhl.Standing](WithWorkers(4))},
		{"workers-default", NewConcurrentEvaluator[nhl.Standing]()},
	}

	for _, tc := range evaluators {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tc.evaluator.Evaluate(ctx, filter, rows); err != nil {
					b.Fatal(err)
				}
			}
		})
		_ = tc.evaluator.Stop(ctx)
	}
}

func BenchmarkEvaluateBatch(b *testing.B) {
	rows := generateTestStandings(5000)
	manager := NewManager(Standings)
	ctx := context.Background()
	defer manager.Close(ctx)

	err := manager.RegisterFilters(map[string]string{
		"atlantic":  `inDivision("A")`,
		"contender": `Points >= 100`,
		"hot":       `onStreak("W", 4)`,
		"complex":   `inConference("E") and Wins > 30 and GoalDiff > 0`,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := manager.EvaluateAll(ctx, rows); err != nil {
			b.Fatal(err)
		}
	}
}
