package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/filter"
	"github.com/s0up4200/nhlapi/nhl"
)

var (
	standingsDate   nhl.GameDate
	standingsSeason string
)

// standingsCmd represents the standings command
var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show league standings",
	Long: `Show the league standings for a date or for the end of a season.

Standings can be narrowed with --filter, a preset from config, or
filter.default_expression. Examples:

  nhlapi standings --date 2024-01-15
  nhlapi standings --season 20222023 --filter 'conference:E and points:>=100'
  nhlapi standings --filter 'PointPct > 0.6 or onStreak("W", 5)'`,
	Args: cobra.NoArgs,
	RunE: runStandings,
}

func init() {
	rootCmd.AddCommand(standingsCmd)

	standingsCmd.Flags().Var(&standingsDate, "date", "standings as of date (YYYY-MM-DD or 'now')")
	standingsCmd.Flags().StringVar(&standingsSeason, "season", "", "final standings of a season (e.g. 20232024)")
	standingsCmd.MarkFlagsMutuallyExclusive("date", "season")
	addFilterFlags(standingsCmd)
}

func runStandings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	source, err := resolveFilter(cfg.Filter.Presets, cfg.Filter.DefaultExpression)
	if err != nil {
		return err
	}

	var standings []nhl.Standing
	if standingsSeason != "" {
		season, ok := nhl.ParseSeason(standingsSeason)
		if !ok {
			return fmt.Errorf("invalid season '%s': expected two consecutive years such as 20232024", standingsSeason)
		}
		logger.Info().Str("season", season.String()).Msg("Fetching season standings")
		standings, err = client.StandingsForSeason(ctx, season)
	} else {
		logger.Info().Str("date", standingsDate.String()).Msg("Fetching standings")
		standings, err = client.Standings(ctx, standingsDate)
	}
	if err != nil {
		return err
	}

	standings, err = applyFilter(ctx, filter.Standings, cfg.Filter.Presets, source, standings)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(standings)
	}

	if len(standings) == 0 {
		fmt.Println("No teams found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d %s:\n", len(standings), plural(len(standings), "team", "teams"))
	separator()
	fmt.Printf("%-4s %-28s %-4s %4s %4s %4s %4s %5s %6s %s\n",
		"#", "TEAM", "DIV", "GP", "W", "L", "OTL", "PTS", "DIFF", "STRK")
	separator()

	for i, s := range standings {
		fmt.Printf("%-4d %-28s %-4s %4d %4d %4d %4d %5d %+6d %s%d\n",
			i+1,
			truncate(s.TeamName.Default, 28),
			s.DivisionAbbrev,
			s.GamesPlayed,
			s.Wins,
			s.Losses,
			s.OTLosses,
			s.Points,
			s.GoalDifferential,
			s.StreakCode,
			s.StreakCount,
		)
	}
	separator()

	return nil
}
