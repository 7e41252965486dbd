package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/filter"
)

// filterSource describes where a command's filter comes from
type filterSource struct {
	expression string // from --filter, already converted from shorthand
	preset     string // registered preset name
}

func (s filterSource) empty() bool {
	return s.expression == "" && s.preset == ""
}

// resolveFilter determines the filter to use.
// Priority: command line filter > preset > default.
func resolveFilter(presets map[string]string, defaultExpression string) (filterSource, error) {
	if filterExpr != "" {
		return filterSource{expression: filter.ConvertShorthand(filterExpr)}, nil
	}

	if preset != "" {
		name := strings.ToLower(preset)
		if _, ok := presets[name]; !ok {
			return filterSource{}, fmt.Errorf("preset '%s' not found in config", preset)
		}
		return filterSource{preset: name}, nil
	}

	if defaultExpression != "" {
		return filterSource{expression: filter.ConvertShorthand(defaultExpression)}, nil
	}

	return filterSource{}, nil
}

// applyFilter narrows items with the resolved filter. Presets are compiled
// up front so a broken preset is reported even when another one is selected.
func applyFilter[T any](ctx context.Context, env filter.Environment[T], presets map[string]string, source filterSource, items []T) ([]T, error) {
	if source.empty() {
		return items, nil
	}

	manager := filter.NewManager(env)
	defer func() { _ = manager.Close(ctx) }()

	converted := make(map[string]string, len(presets))
	for name, expression := range presets {
		converted[name] = filter.ConvertShorthand(expression)
	}
	if err := manager.RegisterFilters(converted); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}

	if source.preset != "" {
		logger.Debug().Str("preset", source.preset).Msg("Applying preset filter")
		return manager.EvaluateFilter(ctx, source.preset, items)
	}

	logger.Debug().Str("filter", source.expression).Msg("Applying filter")
	matched, err := manager.Apply(ctx, source.expression, items)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return matched, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression or shorthand (e.g. 'team:TOR')")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
