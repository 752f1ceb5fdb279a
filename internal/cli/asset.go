package cli

import (
	"github.com/spf13/cobra"
)

func newAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "On-chain asset commands",
	}

	cmd.AddCommand(newAssetDeliverCmd())

	return cmd
}

func newAssetDeliverCmd() *cobra.Command {
	var wallet, option string

	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Send a configured token to a wallet (requires --api-key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"walletId":      wallet,
				"deliverOption": option,
			}
			var result DeliveryResult

			if err := client.Post("/api/v1/asset/deliver", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&wallet, "wallet", "", "Recipient wallet address (required)")
	cmd.Flags().StringVar(&option, "option", "default", "Deliver option naming the token")
	_ = cmd.MarkFlagRequired("wallet")

	return cmd
}
