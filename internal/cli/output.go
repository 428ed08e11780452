package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
)

// previewLength is the number of characters of quote text shown in listings.
const previewLength = 72

// writeJSON pretty-prints v.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength-3]) + "..."
}

// printQuotes writes one line per quote.
func printQuotes(w io.Writer, quotes []corpus.Quote) {
	for _, q := range quotes {
		liked := " "
		if q.IsLiked {
			liked = "*"
		}
		author := q.Author
		if author == "" {
			author = corpus.UnknownAuthor
		}
		fmt.Fprintf(w, "  %s %-8s %q - %s", liked, q.ID, preview(q.Text), author)
		if q.Category != "" {
			fmt.Fprintf(w, " [%s]", q.Category)
		}
		fmt.Fprintln(w)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func joinArgs(args []string) string { return strings.Join(args, " ") }
