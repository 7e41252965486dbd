package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/filter"
	"github.com/s0up4200/nhlapi/nhl"
)

var (
	scheduleDate nhl.GameDate
	scheduleWeek bool
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the games on a date or in a week",
	Long: `Show the games scheduled on a date, or the whole week starting at it.

Games can be narrowed with --filter or a preset from filter.game_presets:

  nhlapi schedule --date 2024-10-19
  nhlapi schedule --week --filter 'involves:TOR'
  nhlapi schedule --filter 'IsLive or startsWithin(2)'`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().Var(&scheduleDate, "date", "schedule date (YYYY-MM-DD or 'now')")
	scheduleCmd.Flags().BoolVarP(&scheduleWeek, "week", "w", false, "show the whole week starting at date")
	addFilterFlags(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	source, err := resolveFilter(cfg.Filter.GamePresets, "")
	if err != nil {
		return err
	}

	var days []nhl.GameDay
	if scheduleWeek {
		week, err := client.WeeklySchedule(ctx, scheduleDate)
		if err != nil {
			return err
		}
		days = week.GameWeek
	} else {
		day, err := client.DailySchedule(ctx, scheduleDate)
		if err != nil {
			return err
		}
		days = []nhl.GameDay{{Date: day.Date, Games: day.Games}}
	}

	for i := range days {
		days[i].Games, err = applyFilter(ctx, filter.Games, cfg.Filter.GamePresets, source, days[i].Games)
		if err != nil {
			return err
		}
	}

	if jsonOutput() {
		return printJSON(days)
	}

	var total int
	for _, day := range days {
		total += len(day.Games)
	}
	if total == 0 {
		fmt.Println("No games found.")
		return nil
	}

	for _, day := range days {
		if len(day.Games) == 0 {
			continue
		}
		fmt.Printf("\n%s: %d %s\n", day.Date, len(day.Games), plural(len(day.Games), "game", "games"))
		separator()
		for _, game := range day.Games {
			fmt.Printf("%-12d %-16s %-6s %s\n", game.ID, matchup(game), game.GameState, startOrScore(game))
		}
	}
	separator()

	return nil
}

func matchup(game nhl.ScheduleGame) string {
	return fmt.Sprintf("%s @ %s", game.AwayTeam.Abbrev, game.HomeTeam.Abbrev)
}

// startOrScore shows the score once a game has one and the local start time before
func startOrScore(game nhl.ScheduleGame) string {
	if game.AwayTeam.Score != nil && game.HomeTeam.Score != nil {
		return fmt.Sprintf("%d - %d", *game.AwayTeam.Score, *game.HomeTeam.Score)
	}
	start, err := time.Parse(time.RFC3339, game.StartTimeUTC)
	if err != nil {
		return game.StartTimeUTC
	}
	return start.Local().Format("15:04 MST")
}
