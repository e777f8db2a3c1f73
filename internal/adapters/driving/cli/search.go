package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve the passages closest to a query",
	Long: `Embeds the query and prints the closest stored passages, one per
line, in ascending distance order. No answer is generated; use 'ask'
for that.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of passages")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	passages, err := queryService.Search(context.Background(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if passages == "" {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(passages)
	return nil
}
