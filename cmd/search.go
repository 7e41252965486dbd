package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchLimit  int
	searchActive bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search for players by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchActive, "active", false, "only return active players")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	players, err := client.SearchPlayers(cmd.Context(), query, searchLimit, searchActive)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(players)
	}

	if len(players) == 0 {
		fmt.Printf("No players found matching '%s'.\n", query)
		return nil
	}

	fmt.Printf("\nFound %d %s:\n", len(players), plural(len(players), "player", "players"))
	separator()
	for _, p := range players {
		team := p.TeamAbbrev
		if team == "" {
			team = "-"
		}
		fmt.Printf("%-10s %-28s %-3s %-4s", p.PlayerID, truncate(p.Name, 28), p.PositionCode, team)
		if !p.Active {
			fmt.Printf(" [RETIRED]")
		}
		fmt.Println()
	}
	separator()

	return nil
}
