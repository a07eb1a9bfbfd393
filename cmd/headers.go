package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newHeadersCmd creates the 'headers' subcommand, which draws an identity
// and prints the ordered header set it would send navigating to the URL.
func newHeadersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers <url>",
		Short: "Compose the full browser header set for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			hdrs, err := appInstance.Engine().Headers(args[0])
			if err != nil {
				return fmt.Errorf("compose headers: %w", err)
			}
			for _, h := range hdrs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Name, h.Value)
			}
			return nil
		},
	}
	return cmd
}
