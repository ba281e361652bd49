package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Team commands",
	}

	var clubID int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List a club's teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Team

			if err := client.Get(fmt.Sprintf("/clubs/%d/teams", clubID), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	var name, ageGroup string
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a team to a club",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "age_group": ageGroup}
			var result Team

			if err := client.Post(fmt.Sprintf("/clubs/%d/teams", clubID), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Team name (required)")
	create.Flags().StringVar(&ageGroup, "age-group", "", "Age group, e.g. U12")
	_ = create.MarkFlagRequired("name")

	for _, c := range []*cobra.Command{list, create} {
		c.Flags().Int64Var(&clubID, "club", 0, "Club ID (required)")
		_ = c.MarkFlagRequired("club")
	}

	del := &cobra.Command{
		Use:   "delete TEAM_ID",
		Short: "Delete a team (staff only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/teams/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Team deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
