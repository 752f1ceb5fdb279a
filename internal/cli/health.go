package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server and storage health",
		Long:  "Check server health. Exits non-zero when the server reports degraded storage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			status, err := client.Probe("/api/v1/monit/health", &result)
			if err != nil {
				return err
			}
			if result.Status == "" {
				return fmt.Errorf("HTTP %d: unexpected health response", status)
			}

			NewOutput(cfg.Output).Print(result)
			if status != http.StatusOK {
				return fmt.Errorf("server is %s", result.Status)
			}
			return nil
		},
	}
}
