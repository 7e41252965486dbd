package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/nhl"
)

var (
	teamsDate    nhl.GameDate
	rosterSeason string
)

// teamsCmd represents the teams command
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams with their conference and division",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

// rosterCmd represents the roster command
var rosterCmd = &cobra.Command{
	Use:   "roster TEAM",
	Short: "Show a team's roster",
	Long: `Show a team's roster for a season, grouped by position.

  nhlapi roster TOR
  nhlapi roster EDM --season 20222023`,
	Args: cobra.ExactArgs(1),
	RunE: runRoster,
}

// franchisesCmd represents the franchises command
var franchisesCmd = &cobra.Command{
	Use:   "franchises",
	Short: "List every NHL franchise",
	Args:  cobra.NoArgs,
	RunE:  runFranchises,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(franchisesCmd)

	teamsCmd.Flags().Var(&teamsDate, "date", "team alignment as of date (YYYY-MM-DD or 'now')")
	rosterCmd.Flags().StringVar(&rosterSeason, "season", "", "season (e.g. 20232024, default is the current season)")
}

func runTeams(cmd *cobra.Command, args []string) error {
	teams, err := client.Teams(cmd.Context(), teamsDate)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(teams)
	}

	fmt.Printf("\nFound %d %s:\n", len(teams), plural(len(teams), "team", "teams"))
	separator()
	fmt.Printf("%-5s %-30s %-14s %s\n", "ABBR", "NAME", "CONFERENCE", "DIVISION")
	separator()
	for _, team := range teams {
		fmt.Printf("%-5s %-30s %-14s %s\n", team.Abbr, truncate(team.Name, 30), team.Conference.Name, team.Division.Name)
	}
	separator()

	return nil
}

func runRoster(cmd *cobra.Command, args []string) error {
	team := strings.ToUpper(args[0])

	season := nhl.CurrentSeason(time.Now())
	if rosterSeason != "" {
		var ok bool
		season, ok = nhl.ParseSeason(rosterSeason)
		if !ok {
			return fmt.Errorf("invalid season '%s': expected two consecutive years such as 20232024", rosterSeason)
		}
	}

	roster, err := client.Roster(cmd.Context(), team, season)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(roster)
	}

	fmt.Printf("\n%s roster, %s season\n", team, season)

	groups := []struct {
		title   string
		players []nhl.RosterPlayer
	}{
		{"Forwards", roster.Forwards},
		{"Defensemen", roster.Defensemen},
		{"Goalies", roster.Goalies},
	}
	for _, group := range groups {
		if len(group.players) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", group.title)
		separator()
		for _, p := range group.players {
			fmt.Printf("#%-3d %-30s %-3s %s\n", p.SweaterNumber, truncate(p.FullName(), 30), p.PositionCode, p.BirthCountry)
		}
	}

	return nil
}

func runFranchises(cmd *cobra.Command, args []string) error {
	franchises, err := client.Franchises(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(franchises)
	}

	fmt.Printf("\nFound %d %s:\n", len(franchises), plural(len(franchises), "franchise", "franchises"))
	separator()
	for _, f := range franchises {
		fmt.Printf("%-5d %s\n", f.ID, f.FullName)
	}
	separator()

	return nil
}
