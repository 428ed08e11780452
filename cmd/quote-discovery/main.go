/*
Package main is the entry point for the quote-discovery CLI.

quote-discovery searches a personal quote collection with free-text queries,
equality and advanced filters, and keeps search history, saved searches and
analytics between runs.

Usage:

	quote-discovery [command]

Available Commands:

	search      Search quotes with a query and filters
	suggest     Suggest completions for a partial query
	history     Show recent searches
	saved       Manage saved searches
	analytics   Show search analytics
	insights    Show favorites and the seven-day search trend
	recommend   Recommend quotes
	related     Show quotes related to a quote
	export      Export search results to a JSON file
	serve       Run the MCP server (stdio transport)
	config      Create or inspect the configuration file
	version     Show version information

Examples:

	# Create ~/.quote-discovery.yml pointing at a corpus
	quote-discovery config init --corpus ~/quotes.json

	# Search liked quotes about courage
	quote-discovery search courage --liked liked

	# Run as MCP server
	quote-discovery serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
