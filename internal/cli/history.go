package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
)

// newHistoryCmd creates the 'history' command with clear and remove subcommands.
func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Long:  `Display the ten most recent searches, newest first. Repeating a search moves it to the top.`,
		Example: `  quote-discovery history
  quote-discovery history clear
  quote-discovery history remove "courage"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				entries := a.session.History()
				out := cmd.OutOrStdout()
				if jsonOutput {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(out, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No recent searches.")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "  %s  %-40q %s\n",
						e.Timestamp.Local().Format("2006-01-02 15:04"), e.Query, plural(e.ResultCount, "result"))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				a.session.ClearHistory()
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Search history cleared")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <query>",
		Short: "Remove one search from history",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinArgs(args)
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				var removed bool
				a.session.Do(func(e *engine.Engine) error {
					removed = e.RemoveHistoryEntry(query)
					return nil
				})
				if !removed {
					return fmt.Errorf("%q is not in the search history", query)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %q from history\n", query)
				return nil
			})
		},
	})

	return cmd
}
