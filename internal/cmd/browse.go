package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// BrowseCmd returns the `mailsearch browse` command: the archive in date order.
func BrowseCmd(g *Globals) *cobra.Command {
	var (
		page   int
		sort   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List mails by date without a query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			return withEnv(g, func(env *Env) error {
				if sort == "" {
					sort = env.Config.Sort
				}
				if sort != "asc" && sort != "desc" {
					return fmt.Errorf("--sort must be asc or desc, got %q", sort)
				}
				size := env.Config.PageSize
				ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.Timeout)
				defer cancel()

				resp, err := env.Client().Browse(ctx, api.BrowseParams{
					From: (page - 1) * size,
					Size: size,
					Sort: sort,
				})
				if err != nil {
					return fmt.Errorf("browse: %w", err)
				}

				out := newResultPage("", page-1, size, resp)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				return writeResultPage(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().StringVar(&sort, "sort", "", "date order: asc or desc (defaults to config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
