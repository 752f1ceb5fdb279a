package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerExternalCmd())
	cmd.AddCommand(newPlayerWalletCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <platform> <id>",
		Short: "Look up a player by platform id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerResult

			if err := client.Get("/api/v1/player/"+pathEscape(args[0])+"/"+pathEscape(args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerExternalCmd() *cobra.Command {
	var platform, id, name string

	cmd := &cobra.Command{
		Use:   "create-external",
		Short: "Register a player coming from an external platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"id":         id,
				"platform":   platform,
				"playerName": name,
			}
			var result PlayerResult

			if err := client.Post("/api/v1/player/external", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform: oncyber, hyperfy (required)")
	cmd.Flags().StringVar(&id, "id", "", "Platform user id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerWalletCmd() *cobra.Command {
	var wallet, name string

	cmd := &cobra.Command{
		Use:   "create-wallet",
		Short: "Register a wallet player if it does not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"walletId": wallet,
				"userName": name,
			}

			if err := client.Post("/api/v1/player/create", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player registered")
			return nil
		},
	}

	cmd.Flags().StringVar(&wallet, "wallet", "", "Wallet address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
