package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Chunk, embed and load the cached corpus",
	Long: `Expands the cached records into overlapping chunks, prefixes them
with their instrument's context, embeds each chunk and loads the
vectors into the store. Chunks whose embedding call fails are skipped.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || recordStore == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	records, err := recordStore.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("reading cached records: %w", err)
	}
	if len(records) == 0 {
		return errors.New("no cached records; run 'lagrum scrape' first")
	}

	stored, err := ingestService.Ingest(ctx, records)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Stored %d chunks from %d records\n", stored, len(records))
	return nil
}
