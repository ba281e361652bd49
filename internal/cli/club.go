package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clubs",
		Aliases: []string{"club"},
		Short:   "Club directory commands",
	}

	cmd.AddCommand(newClubListCmd())
	cmd.AddCommand(newClubGetCmd())
	cmd.AddCommand(newClubCreateCmd())
	cmd.AddCommand(newClubStaffCmd())

	return cmd
}

func newClubListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the clubs visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Club

			if err := client.Get("/clubs", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newClubGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get CLUB_ID",
		Short: "Show a club",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Club

			if err := client.Get("/clubs/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newClubCreateCmd() *cobra.Command {
	var name, code string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a club (superadmins only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "code": code}
			var result Club

			if err := client.Post("/clubs", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Club name (required)")
	cmd.Flags().StringVar(&code, "code", "", "Enrollment code (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newClubStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "staff CLUB_ID",
		Short: "List a club's staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []StaffMember

			if err := client.Get(fmt.Sprintf("/clubs/%s/staff", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
