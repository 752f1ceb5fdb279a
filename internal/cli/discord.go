package cli

import (
	"github.com/spf13/cobra"
)

func newDiscordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discord",
		Short: "Relay space events to Discord",
	}

	cmd.AddCommand(newDiscordEventCmd("login", "Announce a visitor entering a space", false))
	cmd.AddCommand(newDiscordEventCmd("logout", "Announce a visitor leaving a space", false))
	cmd.AddCommand(newDiscordEventCmd("chat", "Relay a chat message", true))

	return cmd
}

func newDiscordEventCmd(event, short string, withText bool) *cobra.Command {
	var space, spaceURL, user, wallet, text string
	var season float64

	cmd := &cobra.Command{
		Use:   event,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"spaceName": space,
				"spaceUrl":  spaceURL,
				"season":    season,
				"userName":  user,
				"walletId":  wallet,
			}
			if withText {
				req["text"] = text
			}

			if err := client.Post("/api/v1/discord/sendWebHook/"+event, req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Event relayed")
			return nil
		},
	}

	cmd.Flags().StringVar(&space, "space", "", "Space name (required)")
	cmd.Flags().StringVar(&spaceURL, "url", "", "Space URL (required)")
	cmd.Flags().Float64Var(&season, "season", 0, "Season number (required)")
	cmd.Flags().StringVar(&user, "user", "", "Visitor name")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Visitor wallet")
	_ = cmd.MarkFlagRequired("space")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("season")
	if withText {
		cmd.Flags().StringVar(&text, "text", "", "Chat message (required)")
		_ = cmd.MarkFlagRequired("text")
	}

	return cmd
}
