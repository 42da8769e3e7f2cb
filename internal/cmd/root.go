package cmd

import "github.com/spf13/cobra"

// RootCmd assembles the CLI. Without a subcommand it runs tui against a loaded Env.
func RootCmd(tui func(*Env) error) *cobra.Command {
	g := &Globals{}
	root := &cobra.Command{
		Use:   "mailsearch",
		Short: "Type-ahead search over the Enron mail archive",
		Long: "mailsearch opens an interactive search over the Enron corpus. Typed text is\n" +
			"matched as a prefix, confirmed terms are joined with AND, and results page by 30.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withEnv(g, tui)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.Bind(root)

	root.AddCommand(SearchCmd(g))
	root.AddCommand(BrowseCmd(g))
	root.AddCommand(BookmarksCmd(g))
	root.AddCommand(ConfigCmd(g))
	return root
}
