package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInviteCmd() *cobra.Command {
	var email, role string
	var clubID int64

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite someone to a club (admins and superadmins only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"email": email, "role": role}
			if clubID != 0 {
				req["club_id"] = clubID
			}
			var result InviteResult

			if err := client.Post("/invitations", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Invitee email (required)")
	cmd.Flags().StringVar(&role, "role", "member", "Role: member, staff or admin")
	cmd.Flags().Int64Var(&clubID, "club", 0, "Club ID to invite into (superadmins only, defaults to your club)")
	_ = cmd.MarkFlagRequired("email")

	cmd.AddCommand(&cobra.Command{
		Use:   "list CLUB_ID",
		Short: "List a club's invitations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Invitation

			if err := client.Get(fmt.Sprintf("/clubs/%s/invitations", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}
