package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newIdentityCmd creates the 'identity' subcommand, which prints a single
// weighted-random User-Agent string.
func newIdentityCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print weighted-random User-Agent strings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			for i := 0; i < count; i++ {
				ua, err := appInstance.Engine().Identity()
				if err != nil {
					return fmt.Errorf("draw identity: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), ua)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identities to draw")
	return cmd
}
