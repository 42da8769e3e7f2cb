package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/session"
)

// SearchCmd returns the `mailsearch search` command: one composed query, printed.
func SearchCmd(g *Globals) *cobra.Command {
	var (
		draft  string
		page   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Run one search and print the results",
		Long: "Confirmed terms are joined with AND. --draft is matched as a prefix, the way\n" +
			"the interactive search treats text still being typed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			draft = strings.TrimSpace(draft)
			terms := session.NewTermSet(args...)
			query := session.Compose(terms.Terms(), draft)
			if query == "" {
				return fmt.Errorf("nothing to search: pass terms or --draft")
			}

			return withEnv(g, func(env *Env) error {
				size := env.Config.PageSize
				ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.Timeout)
				defer cancel()

				client := env.Client()
				resp, err := client.Search(ctx, api.SearchParams{
					Query: query,
					From:  (page - 1) * size,
					Size:  size,
					Sort:  env.Config.Sort,
				})
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				env.Logger.Info("cli search", "base_url", client.BaseURL(), "query", query, "page", page, "total", int(resp.Hits.Total))

				out := newResultPage(query, page-1, size, resp)
				if draft != "" {
					out.Suggestion, _ = session.ExtractSuggestion(resp.Hits.Hits, draft, terms)
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				return writeResultPage(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&draft, "draft", "", "trailing text matched as a prefix")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
