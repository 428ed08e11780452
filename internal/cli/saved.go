package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/history"
)

// newSavedCmd creates the 'saved' command group for named searches.
func newSavedCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved searches",
		Long:  `Save a query with its filters under a name, list saved searches, and run them again.`,
		Example: `  quote-discovery saved save "Morning courage" courage --liked liked
  quote-discovery saved list
  quote-discovery saved load 0190c5f2-...
  quote-discovery saved rename 0190c5f2-... "Evening courage"
  quote-discovery saved delete 0190c5f2-...`,
	}

	cmd.AddCommand(newSavedListCmd(opts))
	cmd.AddCommand(newSavedSaveCmd(opts))
	cmd.AddCommand(newSavedLoadCmd(opts))
	cmd.AddCommand(newSavedDeleteCmd(opts))
	cmd.AddCommand(newSavedRenameCmd(opts))
	return cmd
}

func newSavedListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved searches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				saved := a.session.SavedSearches()
				out := cmd.OutOrStdout()
				if jsonOutput {
					if saved == nil {
						saved = []history.SavedSearch{}
					}
					return writeJSON(out, saved)
				}
				if len(saved) == 0 {
					fmt.Fprintln(out, "No saved searches.")
					fmt.Fprintln(out, "Run 'quote-discovery saved save <name> [query]' to create one.")
					return nil
				}
				fmt.Fprintf(out, "Saved searches (%d):\n\n", len(saved))
				for _, s := range saved {
					printSaved(out, s)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newSavedSaveCmd(opts *rootOptions) *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "save <name> [query...]",
		Short: "Save a query and filters under a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.criteria(args[1:])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				s, err := a.session.SaveSearch(args[0], c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %q (%s)\n", s.Name, s.ID)
				return nil
			})
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newSavedLoadCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Run a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				s, results, err := a.session.LoadSavedSearch(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, map[string]interface{}{"savedSearch": s, "results": results})
				}
				fmt.Fprintf(out, "%s: %s\n", s.Name, plural(len(results), "result"))
				printQuotes(out, results)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newSavedDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				if err := a.session.DeleteSavedSearch(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted saved search %s\n", args[0])
				return nil
			})
		},
	}
}

func newSavedRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a saved search",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				s, err := a.session.RenameSavedSearch(args[0], joinArgs(args[1:]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed to %q\n", s.Name)
				return nil
			})
		},
	}
}

func printSaved(w io.Writer, s history.SavedSearch) {
	fmt.Fprintf(w, "  %s\n", s.Name)
	fmt.Fprintf(w, "    ID:      %s\n", s.ID)
	if s.Query != "" {
		fmt.Fprintf(w, "    Query:   %q\n", s.Query)
	}
	fmt.Fprintf(w, "    Created: %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "    Used:    %d times\n\n", s.UseCount)
}
