package driven

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// RecordStore caches scraped source records between the scrape and
// ingest commands, so a corpus scan does not have to be repeated to
// re-run the embedding pipeline.
type RecordStore interface {
	// SaveRecords upserts records keyed by their ID.
	SaveRecords(ctx context.Context, records []domain.SourceRecord) error

	// ListRecords returns all cached records in insertion order.
	ListRecords(ctx context.Context) ([]domain.SourceRecord, error)

	// CountRecords returns the number of cached records.
	CountRecords(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}
