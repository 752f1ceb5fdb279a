package cli

import (
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Play session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionEndCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	var platform, space, userAgent, playerID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a play session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"platform":  platform,
				"spaceName": space,
				"userAgent": userAgent,
			}
			if playerID != "" {
				req["playerId"] = playerID
			}
			var result SessionResult

			if err := client.Post("/api/v1/player-session/start", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform the session runs on (required)")
	cmd.Flags().StringVar(&space, "space", "", "Space name (required)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "Client user agent")
	cmd.Flags().StringVar(&playerID, "player", "", "Player id; omit for an anonymous session")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("space")

	return cmd
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "Close a play session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"sessionId": args[0]}

			if err := client.Post("/api/v1/player-session/end", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session ended")
			return nil
		},
	}
}
