package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uaforge/uaforge/internal/headers"
)

// newCrawlerCmd creates the 'crawler' subcommand, which prints the fixed
// header signature a well-known search-engine crawler sends.
func newCrawlerCmd() *cobra.Command {
	kinds := headers.NewRegistry().Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "crawler <kind>",
		Short: fmt.Sprintf("Print a fixed crawler signature (%s)", strings.Join(names, ", ")),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			kind, err := headers.ParseCrawlerKind(args[0])
			if err != nil {
				return err
			}
			hdrs, err := appInstance.Engine().CrawlerHeaders(kind)
			if err != nil {
				return fmt.Errorf("crawler headers: %w", err)
			}
			for _, h := range hdrs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Name, h.Value)
			}
			return nil
		},
	}
	return cmd
}
