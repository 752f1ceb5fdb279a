package cli

import (
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Game score commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())
	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreGameCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	var game, wallet string
	var score, timer float64

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a score for a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":  game,
				"score": score,
				"timer": timer,
			}
			if wallet != "" {
				req["walletId"] = wallet
			}
			var result Score

			if err := client.Post("/api/v1/score", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game name (required)")
	cmd.Flags().Float64Var(&score, "score", 0, "Score value (required)")
	cmd.Flags().Float64Var(&timer, "timer", 0, "Time taken in seconds (required)")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Wallet of the player who scored")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("timer")

	return cmd
}

func newScoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <game>",
		Short: "List the scores recorded for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Score

			if err := client.Get("/api/v1/score/"+pathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreGameCmd() *cobra.Command {
	var name, origin, mode string
	var difficulty, averageTime int
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create-game",
		Short: "Add a game to the catalog (requires --api-key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        name,
				"origin":      origin,
				"mode":        mode,
				"difficulty":  difficulty,
				"averageTime": averageTime,
				"isActive":    !inactive,
			}
			var result Game

			if err := client.Post("/api/v1/score/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&origin, "origin", "", "Where the game is played")
	cmd.Flags().StringVar(&mode, "mode", "", "Game mode")
	cmd.Flags().IntVar(&difficulty, "difficulty", 0, "Difficulty level")
	cmd.Flags().IntVar(&averageTime, "average-time", 0, "Average completion time in seconds")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the game disabled")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
