package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// seasonsCmd represents the seasons command
var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons with their standings windows",
	Args:  cobra.NoArgs,
	RunE:  runSeasons,
}

func init() {
	rootCmd.AddCommand(seasonsCmd)
}

func runSeasons(cmd *cobra.Command, args []string) error {
	seasons, err := client.SeasonManifest(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(seasons)
	}

	fmt.Printf("\nFound %d %s:\n", len(seasons), plural(len(seasons), "season", "seasons"))
	separator()
	fmt.Printf("%-10s %-12s %s\n", "SEASON", "START", "END")
	separator()
	for _, s := range seasons {
		fmt.Printf("%-10d %-12s %s\n", s.ID, s.StandingsStart, s.StandingsEnd)
	}
	separator()

	return nil
}
