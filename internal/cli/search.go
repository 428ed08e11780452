package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// newSearchCmd creates the 'search' command.
func newSearchCmd(opts *rootOptions) *cobra.Command {
	var flags criteriaFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search quotes with a query and filters",
		Long: `Search the corpus. The query matches text, author, category and
collection names case-insensitively. Filters narrow the results; a search
with neither a query nor a filter returns nothing and is not recorded.`,
		Example: `  quote-discovery search courage
  quote-discovery search --author "Maya Angelou" --liked liked
  quote-discovery search --from 2024-01-01 --to 2024-03-31 --sort date --order asc
  quote-discovery search --must life --exclude death --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, &flags, args, jsonOutput)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *rootOptions, flags *criteriaFlags, args []string, jsonOutput bool) error {
	c, err := flags.criteria(args)
	if err != nil {
		return err
	}

	return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
		results := a.session.Search(c)
		out := cmd.OutOrStdout()
		if jsonOutput {
			if results == nil {
				results = []corpus.Quote{}
			}
			return writeJSON(out, results)
		}

		if !c.HasIntent() {
			fmt.Fprintln(out, "Nothing to search for. Pass a query or a filter.")
			return nil
		}
		fmt.Fprintf(out, "%s for %q:\n", plural(len(results), "result"), c.Label())
		printQuotes(out, results)
		return nil
	})
}

// newSuggestCmd creates the 'suggest' command.
func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "Suggest completions for a partial query",
		Long:  `List quote texts, authors and categories containing the partial query, case-insensitively.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				suggestions := a.session.Suggest(joinArgs(args))
				if jsonOutput {
					if suggestions == nil {
						suggestions = []string{}
					}
					return writeJSON(cmd.OutOrStdout(), suggestions)
				}
				for _, s := range suggestions {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
