package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/analytics"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
)

// newAnalyticsCmd creates the 'analytics' command with a reset subcommand.
func newAnalyticsCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show search analytics",
		Long: `Display aggregate search statistics: total searches, average result
count, the most repeated queries, and the authors and categories of the most
recent search's results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				snap := a.session.Analytics()
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), snap)
				}
				printAnalytics(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget all search analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				a.session.Do(func(e *engine.Engine) error {
					e.ResetAnalytics()
					return nil
				})
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Analytics reset")
				return nil
			})
		},
	})

	return cmd
}

func printAnalytics(w io.Writer, s analytics.Snapshot) {
	if s.TotalSearches == 0 {
		fmt.Fprintln(w, "No searches recorded yet.")
		return
	}
	fmt.Fprintf(w, "Total searches:  %d\n", s.TotalSearches)
	fmt.Fprintf(w, "Average results: %.2f\n", s.AverageResults)

	if len(s.PopularSearches) > 0 {
		fmt.Fprintln(w, "\nPopular searches:")
		for _, p := range s.PopularSearches {
			fmt.Fprintf(w, "  %-40q %d\n", p.Query, p.Count)
		}
	}
	if len(s.PopularAuthors) > 0 {
		fmt.Fprintln(w, "\nAuthors in last results:")
		for _, p := range s.PopularAuthors {
			fmt.Fprintf(w, "  %-40s %d\n", p.Author, p.Count)
		}
	}
	if len(s.PopularCategories) > 0 {
		fmt.Fprintln(w, "\nCategories in last results:")
		for _, p := range s.PopularCategories {
			fmt.Fprintf(w, "  %-40s %d\n", p.Category, p.Count)
		}
	}
}

// newInsightsCmd creates the 'insights' command.
func newInsightsCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show favorites and the seven-day search trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				in := a.session.Insights()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, in)
				}
				fmt.Fprintf(out, "Favorite author:    %s\n", orNone(in.FavoriteAuthor))
				fmt.Fprintf(out, "Favorite category:  %s\n", orNone(in.FavoriteCategory))
				fmt.Fprintf(out, "Most quoted author: %s\n", orNone(in.MostQuotedAuthor))
				fmt.Fprintf(out, "Unique authors:     %d\n", in.UniqueAuthorsCount)
				fmt.Fprintf(out, "Unique categories:  %d\n", in.UniqueCategoriesCount)
				fmt.Fprintln(out, "\nSearches per day:")
				for _, d := range in.SearchTrends {
					fmt.Fprintf(out, "  %s  %d\n", d.Date, d.Count)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// newRecommendCmd creates the 'recommend' command.
func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recommend [query...]",
		Short: "Recommend quotes",
		Long: `Recommend up to five quotes: up to three similar to the query, up to
two liked quotes, and one unliked quote by your favorite author.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				recs := a.session.Recommendations(joinArgs(args))
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, recs)
				}
				if len(recs) == 0 {
					fmt.Fprintln(out, "No recommendations.")
					return nil
				}
				for _, r := range recs {
					fmt.Fprintf(out, "%-10s %s\n", r.Type, r.Reason)
					printQuotes(out, []corpus.Quote{r.Quote})
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// newRelatedCmd creates the 'related' command.
func newRelatedCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "related <quote-id>",
		Short: "Show quotes related to a quote",
		Long: `List up to three quotes each sharing the author, the category, a
collection, or the first word of the given quote.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				rel, err := a.session.Related(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, rel)
				}
				printRelated(out, "Same author", rel.SameAuthor)
				printRelated(out, "Same category", rel.SameCategory)
				printRelated(out, "Same collection", rel.SameCollection)
				printRelated(out, "Similar wording", rel.SimilarQuotes)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func printRelated(w io.Writer, title string, quotes []corpus.Quote) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(quotes))
	printQuotes(w, quotes)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
