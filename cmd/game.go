package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/nhl"
)

// gameCmd groups the game center commands
var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Show game center data for one or more games",
	Long: `Fetch game center data for one or more game ids. Several ids are fetched
in parallel, bounded by concurrency.max_parallel.

  nhlapi game boxscore 2023020204
  nhlapi game landing 2023020204 2023020205`,
}

var boxscoreCmd = &cobra.Command{
	Use:   "boxscore GAME_ID...",
	Short: "Show boxscores",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGames(cmd, args, client.Boxscore, printBoxscore)
	},
}

var playByPlayCmd = &cobra.Command{
	Use:     "play-by-play GAME_ID...",
	Aliases: []string{"pbp"},
	Short:   "Show the goals from play-by-play feeds",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGames(cmd, args, client.PlayByPlay, printPlayByPlay)
	},
}

var landingCmd = &cobra.Command{
	Use:   "landing GAME_ID...",
	Short: "Show game summaries with scoring by period",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGames(cmd, args, client.Landing, printLanding)
	},
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.AddCommand(boxscoreCmd)
	gameCmd.AddCommand(playByPlayCmd)
	gameCmd.AddCommand(landingCmd)
}

func parseGameIDs(args []string) ([]nhl.GameID, error) {
	ids := make([]nhl.GameID, 0, len(args))
	for _, arg := range args {
		id, err := nhl.ParseGameID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence
func uniqueIDs(ids []nhl.GameID) []nhl.GameID {
	seen := make(map[nhl.GameID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// runGames fetches every id and prints the successes in argument order.
// The command fails if any id failed, after printing the rest.
func runGames[T any](cmd *cobra.Command, args []string, fetch func(context.Context, nhl.GameID) (T, error), show func(T)) error {
	ids, err := parseGameIDs(args)
	if err != nil {
		return err
	}

	logger.Debug().Int("games", len(ids)).Int("parallel", cfg.Concurrency.MaxParallel).Msg("Fetching games")

	result := nhl.FetchMany(cmd.Context(), ids, cfg.Concurrency.MaxParallel, fetch)

	ids = uniqueIDs(ids)
	if jsonOutput() {
		ordered := make([]T, 0, len(result.Results))
		for _, id := range ids {
			if value, ok := result.Results[id]; ok {
				ordered = append(ordered, value)
			}
		}
		if err := printJSON(ordered); err != nil {
			return err
		}
	} else {
		for _, id := range ids {
			if value, ok := result.Results[id]; ok {
				show(value)
			}
		}
	}

	for _, id := range ids {
		if err, failed := result.Failed[id]; failed {
			logger.Error().Err(err).Str("game", id.String()).Msg("Failed to fetch game")
		}
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to fetch %d of %d %s", len(result.Failed), len(ids), plural(len(ids), "game", "games"))
	}
	return nil
}

func printHeader(h *nhl.GameHeader) {
	fmt.Printf("\n%s  %s  %s (%s)\n", h.ID, h.GameDate, h.Scoreline(), h.GameState)
	if h.Venue.Default != "" {
		fmt.Printf("Venue: %s\n", h.Venue.Default)
	}
	separator()
}

func printBoxscore(b *nhl.Boxscore) {
	printHeader(&b.GameHeader)
	fmt.Printf("Shots: %s %d, %s %d\n", b.AwayTeam.Abbrev, b.AwayTeam.SOG, b.HomeTeam.Abbrev, b.HomeTeam.SOG)

	teams := []struct {
		abbrev string
		stats  nhl.TeamPlayerStats
	}{
		{b.AwayTeam.Abbrev, b.PlayerByGameStats.AwayTeam},
		{b.HomeTeam.Abbrev, b.PlayerByGameStats.HomeTeam},
	}
	for _, team := range teams {
		var scorers []nhl.SkaterStats
		for _, s := range slices.Concat(team.stats.Forwards, team.stats.Defense) {
			if s.Points > 0 {
				scorers = append(scorers, s)
			}
		}
		if len(scorers) == 0 {
			continue
		}
		fmt.Printf("\n%s scoring:\n", team.abbrev)
		for _, s := range scorers {
			fmt.Printf("  #%-3d %-24s %dG %dA\n", s.SweaterNumber, truncate(s.Name.Default, 24), s.Goals, s.Assists)
		}
		for _, g := range team.stats.Goalies {
			if g.Decision != "" {
				fmt.Printf("  Goalie: %s (%s) %s\n", g.Name.Default, g.Decision, g.SaveShotsAgainst)
			}
		}
	}
}

func printPlayByPlay(p *nhl.PlayByPlay) {
	printHeader(&p.GameHeader)

	goals := p.Goals()
	if len(goals) == 0 {
		fmt.Println("No goals.")
		return
	}
	for _, g := range goals {
		score := ""
		if g.Details != nil && g.Details.AwayScore != nil && g.Details.HomeScore != nil {
			score = fmt.Sprintf("%d - %d", *g.Details.AwayScore, *g.Details.HomeScore)
		}
		fmt.Printf("  P%d %-6s %s\n", g.PeriodDescriptor.Number, g.TimeInPeriod, score)
	}
}

func printLanding(m *nhl.GameMatchup) {
	printHeader(&m.GameHeader)

	if m.Summary == nil {
		fmt.Println("No summary available.")
		return
	}
	for _, period := range m.Summary.Scoring {
		fmt.Printf("Period %d:\n", period.PeriodDescriptor.Number)
		if len(period.Goals) == 0 {
			fmt.Println("  No scoring")
			continue
		}
		for _, g := range period.Goals {
			fmt.Printf("  %-6s %-4s %s %s (%d - %d)\n",
				g.TimeInPeriod, g.TeamAbbrev.Default, g.FirstName.Default, g.LastName.Default, g.AwayScore, g.HomeScore)
		}
	}
}
