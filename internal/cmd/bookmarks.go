package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// BookmarksCmd returns the `mailsearch bookmarks` command group.
func BookmarksCmd(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage saved mails",
	}
	cmd.AddCommand(bookmarksListCmd(g))
	cmd.AddCommand(bookmarksShowCmd(g))
	cmd.AddCommand(bookmarksRemoveCmd(g))
	cmd.AddCommand(bookmarksFindCmd(g))
	return cmd
}

func bookmarksListCmd(g *Globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved mails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(g, func(env *Env) error {
				book, err := env.Bookmarks(cmd.Context())
				if err != nil {
					return err
				}
				return printMails(cmd, book.List(), asJSON, "no saved mails")
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func bookmarksShowCmd(g *Globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved mail in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(g, func(env *Env) error {
				book, err := env.Bookmarks(cmd.Context())
				if err != nil {
					return err
				}
				mail, err := book.Get(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), mail)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), mailText(mail))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func bookmarksRemoveCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(g, func(env *Env) error {
				book, err := env.Bookmarks(cmd.Context())
				if err != nil {
					return err
				}
				if err := book.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("remove bookmark: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}
}

func bookmarksFindCmd(g *Globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "find <pattern>",
		Short: "Fuzzy-find saved mails by sender, recipient or subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(g, func(env *Env) error {
				book, err := env.Bookmarks(cmd.Context())
				if err != nil {
					return err
				}
				matches := book.Find(args[0])
				mails := make([]api.Email, len(matches))
				for i, m := range matches {
					mails[i] = m.Email
				}
				return printMails(cmd, mails, asJSON, "no matches")
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printMails(cmd *cobra.Command, mails []api.Email, asJSON bool, empty string) error {
	out := cmd.OutOrStdout()
	if asJSON {
		if mails == nil {
			mails = []api.Email{}
		}
		return writeJSON(out, mails)
	}
	if len(mails) == 0 {
		_, err := fmt.Fprintln(out, empty)
		return err
	}
	_, err := fmt.Fprintln(out, mailTable(mails))
	return err
}
