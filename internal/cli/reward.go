package cli

import (
	"github.com/spf13/cobra"
)

func newRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Reward catalog and grant commands",
	}

	cmd.AddCommand(newRewardListCmd())
	cmd.AddCommand(newRewardCreateCmd())
	cmd.AddCommand(newRewardPlayerCmd())
	cmd.AddCommand(newRewardGrantCmd())

	return cmd
}

func newRewardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the reward catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Reward

			if err := client.Get("/api/v1/reward/list", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRewardCreateCmd() *cobra.Command {
	var req struct {
		TokenID         string `json:"tokenId"`
		Blockchain      string `json:"blockchain"`
		ContractAddress string `json:"contractAddress"`
		Name            string `json:"name"`
		Type            string `json:"type"`
		ImageURL        string `json:"imageUrl"`
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a reward to the catalog (requires --api-key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Reward

			if err := client.Post("/api/v1/reward", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TokenID, "token-id", "", "Token id (required)")
	cmd.Flags().StringVar(&req.Blockchain, "blockchain", "", "Chain name (required)")
	cmd.Flags().StringVar(&req.ContractAddress, "contract", "", "Token contract address (required)")
	cmd.Flags().StringVar(&req.Name, "name", "", "Reward name (required)")
	cmd.Flags().StringVar(&req.Type, "type", "", "Reward type")
	cmd.Flags().StringVar(&req.ImageURL, "image", "", "Image URL")
	_ = cmd.MarkFlagRequired("token-id")
	_ = cmd.MarkFlagRequired("blockchain")
	_ = cmd.MarkFlagRequired("contract")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRewardPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "List the rewards granted to a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PlayerReward

			if err := client.Get("/api/v1/reward/"+pathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRewardGrantCmd() *cobra.Command {
	var rewardID string

	cmd := &cobra.Command{
		Use:   "grant <player-id>",
		Short: "Grant a reward to a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"rewardId": rewardID}
			var result Grant

			if err := client.Post("/api/v1/reward/"+pathEscape(args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&rewardID, "reward", "", "Reward id (required)")
	_ = cmd.MarkFlagRequired("reward")

	return cmd
}
