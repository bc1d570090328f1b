package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func warmupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warmup",
		Short: "Obtain an Amadeus access token on the server now",
		Long: "Ask the running server to fetch or reuse its Amadeus access token " +
			"ahead of the next scheduled warm-up.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := newClient().WarmupToken(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(map[string]string{"status": status})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	}
}
