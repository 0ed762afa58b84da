package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRankingsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rankings <game-type>",
		Short: "Show the leaderboard for a game type",
		Long:  `Fetch the all-time leaderboard for one of: mole, balloon, dice.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/rankings/%s", args[0])
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result RankingsResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries (default: server decides)")

	return cmd
}
