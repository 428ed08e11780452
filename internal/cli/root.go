/*
Package cli implements the quote-discovery command tree.

Every command loads ~/.quote-discovery.yml (or --config), opens the
configured storage backend, loads the corpus, runs one engine operation
and exits. Search history, saved searches and analytics persist between
invocations through the storage backend.
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/version"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	corpusPath string
	logLevel   string
}

// NewRootCmd creates the quote-discovery root command with all subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quote-discovery",
		Short: "Search, filter and explore a personal quote collection",
		Long: `quote-discovery searches a personal collection of quotes.

Searches combine a free-text query with equality filters (author, category,
collection, liked) and advanced filters (date range, length range, boolean
terms, sorting). Recent searches, saved searches and aggregate analytics are
kept between runs, and drive insights and recommendations.

The corpus is a JSON or YAML file with "quotes" and "collections" lists,
set with --corpus, $QUOTE_DISCOVERY_CORPUS or the config file.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ~/.quote-discovery.yml)")
	cmd.PersistentFlags().StringVar(&opts.corpusPath, "corpus", "", "Corpus file, overrides config and environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newSuggestCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newSavedCmd(opts))
	cmd.AddCommand(newAnalyticsCmd(opts))
	cmd.AddCommand(newInsightsCmd(opts))
	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newRelatedCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		return fmt.Errorf("quote-discovery: %w", err)
	}
	return nil
}
