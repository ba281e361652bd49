package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player commands",
	}

	var clubID int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List a club's players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get(fmt.Sprintf("/clubs/%d/players", clubID), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	var firstName, lastName, position string
	var teamID int64
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a player to a club",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"first_name": firstName,
				"last_name":  lastName,
				"position":   position,
			}
			if teamID != 0 {
				req["team_id"] = teamID
			}
			var result Player

			if err := client.Post(fmt.Sprintf("/clubs/%d/players", clubID), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
	create.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	create.Flags().StringVar(&lastName, "last-name", "", "Last name")
	create.Flags().StringVar(&position, "position", "", "Playing position")
	create.Flags().Int64Var(&teamID, "team", 0, "Team ID")
	_ = create.MarkFlagRequired("first-name")

	for _, c := range []*cobra.Command{list, create} {
		c.Flags().Int64Var(&clubID, "club", 0, "Club ID (required)")
		_ = c.MarkFlagRequired("club")
	}

	del := &cobra.Command{
		Use:   "delete PLAYER_ID",
		Short: "Delete a player (staff only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/players/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Player deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
