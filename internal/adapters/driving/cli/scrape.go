package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordlaw/lagrum/internal/logger"
)

var (
	scrapeFrom int
	scrapeTo   int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape legislation from the SFS register",
	Long: `Walks the SFS register post by post, extracts each instrument's
metadata and full text, and caches the records locally. The cache is
the input of the ingest command.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeFrom, "from", 1, "first post id to fetch (inclusive)")
	scrapeCmd.Flags().IntVar(&scrapeTo, "to", 4540, "last post id to fetch (exclusive)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	if corpusSource == nil || recordStore == nil {
		return errors.New("scraper not configured")
	}

	ctx := context.Background()

	failed := 0
	records, err := corpusSource.Fetch(ctx, scrapeFrom, scrapeTo, func(postID int, err error) {
		failed++
		logger.Warn("Post %d failed: %v", postID, err)
	})
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if err := recordStore.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("caching records: %w", err)
	}

	cmd.Printf("Scraped %d records (%d posts failed)\n", len(records), failed)
	return nil
}
